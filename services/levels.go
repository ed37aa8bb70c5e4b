package services

// StreakLevel is a named rung on the streak ladder.
type StreakLevel struct {
	Name    string `json:"name"`
	MinDays int    `json:"minDays"`
}

var StreakLevels = []StreakLevel{
	{Name: "Başlangıç", MinDays: 0},
	{Name: "Çaylak", MinDays: 3},
	{Name: "İstikrarlı", MinDays: 7},
	{Name: "Kararlı", MinDays: 14},
	{Name: "Tutkulu", MinDays: 30},
	{Name: "Şampiyon", MinDays: 60},
	{Name: "Efsane", MinDays: 100},
}

func LevelFor(streak int) StreakLevel {
	level := StreakLevels[0]
	for _, l := range StreakLevels {
		if streak >= l.MinDays {
			level = l
		}
	}
	return level
}

// NextLevel returns the first level above streak, or false at the top.
func NextLevel(streak int) (StreakLevel, bool) {
	for _, l := range StreakLevels {
		if l.MinDays > streak {
			return l, true
		}
	}
	return StreakLevel{}, false
}

type AvatarTier struct {
	Name      string `json:"name"`
	MinPoints int    `json:"minPoints"`
}

var AvatarTiers = []AvatarTier{
	{Name: "default", MinPoints: 0},
	{Name: "bronze", MinPoints: 100},
	{Name: "silver", MinPoints: 300},
	{Name: "gold", MinPoints: 600},
	{Name: "platinum", MinPoints: 1000},
	{Name: "diamond", MinPoints: 2000},
}

func UnlockedAvatars(points int) []AvatarTier {
	out := make([]AvatarTier, 0, len(AvatarTiers))
	for _, t := range AvatarTiers {
		if points >= t.MinPoints {
			out = append(out, t)
		}
	}
	return out
}

// Progress summarises a user's gamification state.
type Progress struct {
	Points          int          `json:"points"`
	CurrentStreak   int          `json:"currentStreak"`
	Level           StreakLevel  `json:"level"`
	NextLevel       *StreakLevel `json:"nextLevel"`
	UnlockedAvatars []AvatarTier `json:"unlockedAvatars"`
}

func ProgressFor(points, streak int) Progress {
	p := Progress{
		Points:          points,
		CurrentStreak:   streak,
		Level:           LevelFor(streak),
		UnlockedAvatars: UnlockedAvatars(points),
	}
	if next, ok := NextLevel(streak); ok {
		p.NextLevel = &next
	}
	return p
}
