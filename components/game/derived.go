package game

import "slices"

// LevelXP is the XP span of one level bar.
const LevelXP = 500

// XPIntoLevel returns how far xp has progressed into the current level bar.
func XPIntoLevel(xp int) int {
	if xp <= 0 {
		return 0
	}
	return xp % LevelXP
}

// LevelProgress returns the level bar fill as a percentage in [0,100).
func LevelProgress(xp int) float64 {
	return float64(XPIntoLevel(xp)) * 100 / LevelXP
}

// SystemHealth returns the percentage of servers online. An empty fleet
// reports 0.
func SystemHealth(servers []Server) float64 {
	if len(servers) == 0 {
		return 0
	}
	online := 0
	for _, s := range servers {
		if s.Status == ServerOnline {
			online++
		}
	}
	return float64(online) * 100 / float64(len(servers))
}

// TaskCounts tallies tasks per kanban column.
func TaskCounts(tasks []Task) map[TaskStatus]int {
	counts := map[TaskStatus]int{TaskTodo: 0, TaskProgress: 0, TaskDone: 0}
	for _, t := range tasks {
		counts[t.Status]++
	}
	return counts
}

// UserCounts tallies users per status.
func UserCounts(users []User) map[UserStatus]int {
	counts := map[UserStatus]int{UserActive: 0, UserInactive: 0, UserBanned: 0}
	for _, u := range users {
		counts[u.Status]++
	}
	return counts
}

// ActiveNPC returns the first active NPC at the current location.
func ActiveNPC(state *State) (NPC, bool) {
	if state == nil {
		return NPC{}, false
	}
	idx := slices.IndexFunc(state.NPCs, func(n NPC) bool {
		return n.IsActive && n.Location == state.ActiveLocation
	})
	if idx < 0 {
		return NPC{}, false
	}
	return state.NPCs[idx], true
}

// CurrentDialogue returns the line the NPC is currently saying.
func CurrentDialogue(npc NPC) string {
	if len(npc.Dialogue) == 0 {
		return ""
	}
	idx := npc.CurrentDialogue
	if idx < 0 || idx >= len(npc.Dialogue) {
		idx = 0
	}
	return npc.Dialogue[idx]
}

// CanAfford reports whether the balance covers the item price in its currency.
func CanAfford(r Resources, item ShopItem) bool {
	switch item.Currency {
	case CurrencyGems:
		return r.Gems >= item.Price
	default:
		return r.Coins >= item.Price
	}
}

// QuestClaimable reports whether COMPLETE_QUEST would pay out.
func QuestClaimable(q Quest) bool {
	return q.Status == QuestActive && q.Progress >= q.MaxProgress
}

// Overview bundles the values the dashboard header and sidebars show.
type Overview struct {
	Level          int                `json:"level"`
	XP             int                `json:"xp"`
	XPIntoLevel    int                `json:"xp_into_level"`
	LevelProgress  float64            `json:"level_progress"`
	SystemHealth   float64            `json:"system_health"`
	Tasks          map[TaskStatus]int `json:"tasks"`
	Users          map[UserStatus]int `json:"users"`
	ActiveLocation string             `json:"active_location"`
	ActiveNPC      string             `json:"active_npc,omitempty"`
	Dialogue       string             `json:"dialogue,omitempty"`
	Claimable      []string           `json:"claimable_quests"`
	Affordable     []string           `json:"affordable_items"`
	OwnedItems     int                `json:"owned_items"`
}

// BuildOverview recomputes the overview from a snapshot.
func BuildOverview(state *State) Overview {
	if state == nil {
		return Overview{}
	}
	out := Overview{
		Level:          state.Player.Level,
		XP:             state.Player.XP,
		XPIntoLevel:    XPIntoLevel(state.Player.XP),
		LevelProgress:  LevelProgress(state.Player.XP),
		SystemHealth:   SystemHealth(state.Servers),
		Tasks:          TaskCounts(state.Tasks),
		Users:          UserCounts(state.Users),
		ActiveLocation: state.ActiveLocation,
		Claimable:      []string{},
		Affordable:     []string{},
	}
	if npc, ok := ActiveNPC(state); ok {
		out.ActiveNPC = npc.ID
		out.Dialogue = CurrentDialogue(npc)
	}
	for _, q := range state.Quests {
		if QuestClaimable(q) {
			out.Claimable = append(out.Claimable, q.ID)
		}
	}
	for _, item := range state.Shop {
		if state.Owned[item.ID] {
			out.OwnedItems++
			continue
		}
		if CanAfford(state.Resources, item) {
			out.Affordable = append(out.Affordable, item.ID)
		}
	}
	return out
}
