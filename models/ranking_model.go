package models

const DefaultAvatar = "https://placehold.co/100x100?text=Default"

type RankingEntry struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Points        int    `json:"points"`
	WeeklyPoints  int    `json:"weeklyPoints"`
	Avatar        string `json:"avatar"`
	Streak        int    `json:"streak"`
	StreakLevel   string `json:"streakLevel"`
	IsCurrentUser bool   `json:"isCurrentUser"`
}

type Leaderboard struct {
	Entries  []RankingEntry `json:"leaderboard"`
	Champion *RankingEntry  `json:"champion"`
}
