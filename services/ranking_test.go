package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthtrack-server/models"
)

func TestBuildLeaderboardOrdering(t *testing.T) {
	avatar := "https://example.com/me.png"
	self := models.User{ID: "me", Name: "Ben", Points: 20, AvatarURL: &avatar, CurrentStreak: 8}
	friends := []models.User{
		{ID: "f1", Name: "Deniz", Points: 20},
		{ID: "f2", Email: "ece@example.com", Points: 50},
		{ID: "f3", Points: 5},
	}

	board := BuildLeaderboard(self, friends)
	require.Len(t, board.Entries, 4)

	ids := make([]string, 0, 4)
	for _, e := range board.Entries {
		ids = append(ids, e.ID)
	}
	// Ties keep merge order, so self stays ahead of f1.
	assert.Equal(t, []string{"f2", "me", "f1", "f3"}, ids)

	assert.Equal(t, "ece@example.com", board.Entries[0].Name)
	assert.Equal(t, fallbackFriendName, board.Entries[3].Name)
	assert.Equal(t, models.DefaultAvatar, board.Entries[0].Avatar)
	assert.Equal(t, avatar, board.Entries[1].Avatar)
	assert.Equal(t, "İstikrarlı", board.Entries[1].StreakLevel)
	assert.True(t, board.Entries[1].IsCurrentUser)
	assert.Nil(t, board.Champion)
}

func TestBuildLeaderboardChampion(t *testing.T) {
	self := models.User{ID: "me", Points: 100}
	friends := []models.User{
		{ID: "f1", Points: 10, WeeklyPoints: 30},
		{ID: "f2", Points: 20, WeeklyPoints: 30},
		{ID: "f3", Points: 30, WeeklyPoints: 5},
	}

	board := BuildLeaderboard(self, friends)
	require.NotNil(t, board.Champion)
	assert.Equal(t, "f1", board.Champion.ID)
}

func TestBuildLeaderboardSelfOnly(t *testing.T) {
	board := BuildLeaderboard(models.User{ID: "me", Name: "Ben"}, nil)
	require.Len(t, board.Entries, 1)
	assert.Equal(t, "Ben", board.Entries[0].Name)
	assert.Equal(t, "Başlangıç", board.Entries[0].StreakLevel)
}
