package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelProgress(t *testing.T) {
	assert.Equal(t, 347, XPIntoLevel(1847))
	assert.InDelta(t, 69.4, LevelProgress(1847), 0.0001)
	assert.Equal(t, 0.0, LevelProgress(1500))
	assert.Equal(t, 0, XPIntoLevel(-10))
}

func TestSystemHealth(t *testing.T) {
	assert.Equal(t, 50.0, SystemHealth(DefaultSeed().Servers))
	assert.Equal(t, 0.0, SystemHealth(nil))
}

func TestCounts(t *testing.T) {
	state := DefaultSeed()
	tasks := TaskCounts(state.Tasks)
	assert.Equal(t, 2, tasks[TaskTodo])
	assert.Equal(t, 1, tasks[TaskProgress])
	assert.Equal(t, 0, tasks[TaskDone])

	users := UserCounts(state.Users)
	assert.Equal(t, 2, users[UserActive])
	assert.Equal(t, 1, users[UserInactive])
	assert.Equal(t, 0, users[UserBanned])
}

func TestActiveNPCAndDialogue(t *testing.T) {
	state := DefaultSeed()
	npc, ok := ActiveNPC(state)
	if !ok || npc.ID != "aria" {
		t.Fatalf("expected aria active at dashboard, got %+v", npc)
	}
	assert.Equal(t, "Welcome back, Admin Warrior! Your kingdom needs you.", CurrentDialogue(npc))

	moved := Reduce(state, ChangeLocation{LocationID: "analytics"})
	_, ok = ActiveNPC(moved)
	assert.False(t, ok)

	assert.Equal(t, "", CurrentDialogue(NPC{}))
	assert.Equal(t, "a", CurrentDialogue(NPC{Dialogue: []string{"a"}, CurrentDialogue: 7}))
}

func TestCanAffordAndClaimable(t *testing.T) {
	r := Resources{Coins: 500, Gems: 10}
	assert.True(t, CanAfford(r, ShopItem{Price: 500, Currency: CurrencyCoins}))
	assert.False(t, CanAfford(r, ShopItem{Price: 15, Currency: CurrencyGems}))

	assert.False(t, QuestClaimable(Quest{Status: QuestActive, Progress: 0, MaxProgress: 1}))
	assert.True(t, QuestClaimable(Quest{Status: QuestActive, Progress: 1, MaxProgress: 1}))
	assert.False(t, QuestClaimable(Quest{Status: QuestCompleted, Progress: 1, MaxProgress: 1}))
}

func TestBuildOverview(t *testing.T) {
	state := Reduce(DefaultSeed(), PurchaseItem{ItemID: "neural-sword"})
	overview := BuildOverview(state)
	assert.Equal(t, 5, overview.Level)
	assert.Equal(t, 347, overview.XPIntoLevel)
	assert.Equal(t, 50.0, overview.SystemHealth)
	assert.Equal(t, "aria", overview.ActiveNPC)
	assert.Equal(t, 1, overview.OwnedItems)
	assert.Empty(t, overview.Claimable)
	assert.NotContains(t, overview.Affordable, "neural-sword")
	assert.Contains(t, overview.Affordable, "speed-boost")
	assert.NotContains(t, overview.Affordable, "ai-assistant")

	assert.Equal(t, Overview{}, BuildOverview(nil))
}
