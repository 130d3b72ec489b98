package history

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studybuddy/internal/store"
)

func seededRepo(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	repo := s.EventRepo()
	ctx := context.Background()
	require.NoError(t, repo.AppendPointsEvent(ctx, store.PointsEventData{Delta: 10, Balance: 10, Reason: "study-time"}))
	require.NoError(t, repo.AppendPointsEvent(ctx, store.PointsEventData{Delta: -10, Balance: 0, Reason: "armor-purchase"}))
	require.NoError(t, repo.AppendRewardEvent(ctx, store.RewardEventData{Chest: "beginner", Outcome: "Double up", Kind: "multiplier", Stake: 50, NetValue: 100, Claimed: true}))
	require.NoError(t, repo.AppendBattleEvent(ctx, store.BattleEventData{EncounterID: "e1", Result: "won", Questions: 3, Armor: 1, PlayerHealth: 2}))
	return repo
}

func TestHistoryLoad(t *testing.T) {
	h := New(seededRepo(t))
	h.Update(h.Init()())

	require.True(t, h.loaded)
	assert.Empty(t, h.errMsg)

	lines := h.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "armor-purchase", "newest first")
	assert.Contains(t, lines[1], "+10")

	h.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, TabRewards, h.Tab())
	require.Len(t, h.Lines(), 1)
	assert.Contains(t, h.Lines()[0], "50 → 100  claimed")

	h.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	require.Len(t, h.Lines(), 1)
	assert.Contains(t, h.Lines()[0], "WON")

	h.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	assert.Equal(t, TabRewards, h.Tab())
}

func TestHistoryEmpty(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	defer s.Close()

	h := New(s.EventRepo())
	assert.Contains(t, h.View(80, 24), "Loading history")

	h.Update(h.Init()())
	assert.True(t, strings.Contains(h.View(80, 24), "Nothing here yet"))
}
