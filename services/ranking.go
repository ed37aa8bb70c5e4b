package services

import (
	"sort"

	"healthtrack-server/models"
)

const fallbackFriendName = "Arkadaş"

// BuildLeaderboard merges self and friends, self first, and orders the
// entries by points descending. Equal points keep merge order. The champion
// is the first entry in merge order with the most weekly points, provided
// that is above zero.
func BuildLeaderboard(self models.User, friends []models.User) models.Leaderboard {
	entries := make([]models.RankingEntry, 0, len(friends)+1)
	entries = append(entries, rankingEntry(self, true))
	for _, f := range friends {
		entries = append(entries, rankingEntry(f, false))
	}

	var champion *models.RankingEntry
	for i := range entries {
		if entries[i].WeeklyPoints <= 0 {
			continue
		}
		if champion == nil || entries[i].WeeklyPoints > champion.WeeklyPoints {
			e := entries[i]
			champion = &e
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	return models.Leaderboard{Entries: entries, Champion: champion}
}

func rankingEntry(u models.User, self bool) models.RankingEntry {
	name := u.Name
	if name == "" {
		name = u.Email
	}
	if name == "" && !self {
		name = fallbackFriendName
	}
	avatar := models.DefaultAvatar
	if u.AvatarURL != nil && *u.AvatarURL != "" {
		avatar = *u.AvatarURL
	}
	return models.RankingEntry{
		ID:            u.ID,
		Name:          name,
		Email:         u.Email,
		Points:        u.Points,
		WeeklyPoints:  u.WeeklyPoints,
		Avatar:        avatar,
		Streak:        u.CurrentStreak,
		StreakLevel:   LevelFor(u.CurrentStreak).Name,
		IsCurrentUser: self,
	}
}
