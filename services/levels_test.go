package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFor(t *testing.T) {
	cases := map[int]string{
		0:   "Başlangıç",
		2:   "Başlangıç",
		3:   "Çaylak",
		13:  "İstikrarlı",
		14:  "Kararlı",
		59:  "Tutkulu",
		60:  "Şampiyon",
		365: "Efsane",
	}
	for streak, want := range cases {
		assert.Equal(t, want, LevelFor(streak).Name, "streak %d", streak)
	}
}

func TestNextLevel(t *testing.T) {
	next, ok := NextLevel(7)
	require.True(t, ok)
	assert.Equal(t, "Kararlı", next.Name)

	_, ok = NextLevel(100)
	assert.False(t, ok)
}

func TestProgressFor(t *testing.T) {
	p := ProgressFor(650, 30)
	assert.Equal(t, "Tutkulu", p.Level.Name)
	require.NotNil(t, p.NextLevel)
	assert.Equal(t, 60, p.NextLevel.MinDays)

	names := make([]string, 0, len(p.UnlockedAvatars))
	for _, a := range p.UnlockedAvatars {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"default", "bronze", "silver", "gold"}, names)
}
