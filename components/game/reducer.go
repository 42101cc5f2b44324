package game

import (
	"fmt"
	"maps"
	"slices"
)

const (
	// LevelUpCost is the coin price of one stat point.
	LevelUpCost = 100
	// DefaultTaskXP is granted when a completed task carries no reward.
	DefaultTaskXP = 20
	// EventCoinBonus is paid on top of an event's XP when it completes.
	EventCoinBonus = 15
)

// Reducer computes the next state for an action.
type Reducer func(state *State, action Action) *State

// Reduce applies action to state. It never mutates state: when nothing changes
// it returns the same pointer, otherwise a new snapshot that shares every
// branch it did not touch.
func Reduce(state *State, action Action) *State {
	if state == nil || action == nil {
		return state
	}
	switch a := action.(type) {
	case TalkToNPC:
		return reduceTalkToNPC(state, a)
	case DismissNPC:
		return reduceDismissNPC(state, a)
	case ChangeLocation:
		return reduceChangeLocation(state, a)
	case GainResources:
		return reduceGainResources(state, a)
	case GainXP:
		if a.Amount == 0 {
			return state
		}
		next := *state
		next.Player.XP += a.Amount
		return &next
	case LevelUpStat:
		return reduceLevelUpStat(state, a)
	case UpdateSystemStats:
		return reduceSystemStats(state, a)
	case UpdateServerMetrics:
		return reduceServerMetrics(state, a)
	case ServerAction:
		return reduceServerAction(state, a)
	case ToggleRetro:
		next := *state
		next.Retro = !state.Retro
		return &next
	case AdvanceTutorial:
		next := *state
		next.TutorialStep++
		return &next
	case AddTask:
		return reduceAddTask(state, a)
	case MoveTask:
		return reduceMoveTask(state, a)
	case CompleteTask:
		return reduceCompleteTask(state, a)
	case AddEvent:
		return reduceAddEvent(state, a)
	case CompleteEvent:
		return reduceCompleteEvent(state, a)
	case AddUser:
		return reduceAddUser(state, a)
	case SetUserStatus:
		return reduceSetUserStatus(state, a)
	case AdvanceQuest:
		return reduceAdvanceQuest(state, a)
	case CompleteQuest:
		return reduceCompleteQuest(state, a)
	case PurchaseItem:
		return reducePurchaseItem(state, a)
	case StartBattle:
		return reduceStartBattle(state, a)
	case BattleRound:
		return reduceBattleRound(state, a)
	case RefreshAnalytics:
		return reduceRefreshAnalytics(state, a)
	default:
		return state
	}
}

func reduceTalkToNPC(state *State, a TalkToNPC) *State {
	idx := slices.IndexFunc(state.NPCs, func(n NPC) bool { return n.ID == a.NPCID })
	if idx < 0 {
		return state
	}
	npc := state.NPCs[idx]
	nextDialogue := 0
	if len(npc.Dialogue) > 0 {
		nextDialogue = (npc.CurrentDialogue + 1) % len(npc.Dialogue)
	}
	if nextDialogue == npc.CurrentDialogue && npc.IsActive {
		return state
	}
	npc.CurrentDialogue = nextDialogue
	npc.IsActive = true
	next := *state
	next.NPCs = slices.Clone(state.NPCs)
	next.NPCs[idx] = npc
	return &next
}

func reduceDismissNPC(state *State, a DismissNPC) *State {
	idx := slices.IndexFunc(state.NPCs, func(n NPC) bool { return n.ID == a.NPCID })
	if idx < 0 || !state.NPCs[idx].IsActive {
		return state
	}
	next := *state
	next.NPCs = slices.Clone(state.NPCs)
	next.NPCs[idx].IsActive = false
	return &next
}

func reduceChangeLocation(state *State, a ChangeLocation) *State {
	known := slices.ContainsFunc(state.WorldMap, func(l WorldLocation) bool { return l.ID == a.LocationID })
	if !known {
		return state
	}
	dirty := state.ActiveLocation != a.LocationID
	for _, npc := range state.NPCs {
		if npc.IsActive != (npc.Location == a.LocationID) {
			dirty = true
			break
		}
	}
	if !dirty {
		return state
	}
	next := *state
	next.ActiveLocation = a.LocationID
	next.NPCs = slices.Clone(state.NPCs)
	for i := range next.NPCs {
		next.NPCs[i].IsActive = next.NPCs[i].Location == a.LocationID
	}
	return &next
}

func reduceGainResources(state *State, a GainResources) *State {
	if a.Delta == (Resources{}) {
		return state
	}
	next := *state
	next.Resources = addResources(state.Resources, a.Delta)
	return &next
}

func addResources(r, delta Resources) Resources {
	r.Coins += delta.Coins
	r.Gems += delta.Gems
	r.Energy += delta.Energy
	r.Mana += delta.Mana
	r.Reputation += delta.Reputation
	return r
}

func reduceLevelUpStat(state *State, a LevelUpStat) *State {
	if state.Resources.Coins < LevelUpCost {
		return state
	}
	stats := state.Player.Stats
	switch a.Stat {
	case StatStrength:
		stats.Strength++
	case StatIntelligence:
		stats.Intelligence++
	case StatAgility:
		stats.Agility++
	case StatLeadership:
		stats.Leadership++
	default:
		return state
	}
	next := *state
	next.Player.Stats = stats
	next.Resources.Coins -= LevelUpCost
	return &next
}

func reduceSystemStats(state *State, a UpdateSystemStats) *State {
	stats := state.SystemStats
	stats.CPUUsage = clampPercent(stats.CPUUsage + a.Delta.CPU)
	stats.MemoryUsage = clampPercent(stats.MemoryUsage + a.Delta.Memory)
	stats.NetworkTraffic = clampPercent(stats.NetworkTraffic + a.Delta.Network)
	stats.ActiveUsers = max(0, stats.ActiveUsers+a.Delta.ActiveUsers)
	if stats == state.SystemStats {
		return state
	}
	next := *state
	next.SystemStats = stats
	return &next
}

func reduceServerMetrics(state *State, a UpdateServerMetrics) *State {
	var servers []Server
	for _, delta := range a.Deltas {
		idx := slices.IndexFunc(state.Servers, func(s Server) bool { return s.ID == delta.ServerID })
		if idx < 0 || state.Servers[idx].Status == ServerOffline {
			continue
		}
		current := state.Servers[idx]
		if servers != nil {
			current = servers[idx]
		}
		cpu := clampPercent(current.CPU + delta.CPU)
		mem := clampPercent(current.Memory + delta.Memory)
		if cpu == current.CPU && mem == current.Memory {
			continue
		}
		if servers == nil {
			servers = slices.Clone(state.Servers)
		}
		servers[idx].CPU = cpu
		servers[idx].Memory = mem
	}
	if servers == nil {
		return state
	}
	next := *state
	next.Servers = servers
	return &next
}

// ServerReward is what the operator earns for a server command.
func ServerReward(op ServerOp) (xp, coins int, ok bool) {
	switch op {
	case ServerRestart:
		return 75, 35, true
	case ServerOptimize:
		return 50, 25, true
	case ServerShutdown:
		return 25, 10, true
	default:
		return 0, 0, false
	}
}

func reduceServerAction(state *State, a ServerAction) *State {
	idx := slices.IndexFunc(state.Servers, func(s Server) bool { return s.ID == a.ServerID })
	if idx < 0 {
		return state
	}
	xp, coins, ok := ServerReward(a.Op)
	if !ok {
		return state
	}
	server := state.Servers[idx]
	switch a.Op {
	case ServerRestart:
		server.Status = ServerOnline
		server.CPU = 20
		server.Memory = 30
	case ServerOptimize:
		server.CPU = max(10, server.CPU-20)
		server.Memory = max(10, server.Memory-15)
	case ServerShutdown:
		server.Status = ServerOffline
		server.CPU = 0
		server.Memory = 0
	}
	next := *state
	next.Servers = slices.Clone(state.Servers)
	next.Servers[idx] = server
	next.Player.XP += xp
	next.Resources.Coins += coins
	return &next
}

func reduceAddTask(state *State, a AddTask) *State {
	task := a.Task
	if task.ID == "" || slices.ContainsFunc(state.Tasks, func(t Task) bool { return t.ID == task.ID }) {
		return state
	}
	if task.Status == "" {
		task.Status = TaskTodo
	}
	if !validTaskStatus(task.Status) {
		return state
	}
	if task.Priority == "" {
		task.Priority = PriorityMedium
	}
	task.Rewarded = false
	next := *state
	next.Tasks = append(slices.Clip(state.Tasks), task)
	return &next
}

func validTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskTodo, TaskProgress, TaskDone:
		return true
	}
	return false
}

func reduceMoveTask(state *State, a MoveTask) *State {
	if !validTaskStatus(a.Status) {
		return state
	}
	idx := slices.IndexFunc(state.Tasks, func(t Task) bool { return t.ID == a.TaskID })
	if idx < 0 || state.Tasks[idx].Status == a.Status {
		return state
	}
	next := *state
	next.Tasks = slices.Clone(state.Tasks)
	next.Tasks[idx].Status = a.Status
	return &next
}

func reduceCompleteTask(state *State, a CompleteTask) *State {
	idx := slices.IndexFunc(state.Tasks, func(t Task) bool { return t.ID == a.TaskID })
	if idx < 0 {
		return state
	}
	if state.Tasks[idx].Rewarded {
		// reward already granted; only the status moves back to done
		if state.Tasks[idx].Status == TaskDone {
			return state
		}
		next := *state
		next.Tasks = slices.Clone(state.Tasks)
		next.Tasks[idx].Status = TaskDone
		return &next
	}
	reward := state.Tasks[idx].XPReward
	if reward == 0 {
		reward = DefaultTaskXP
	}
	next := *state
	next.Tasks = slices.Clone(state.Tasks)
	next.Tasks[idx].Status = TaskDone
	next.Tasks[idx].Rewarded = true
	next.Player.XP += reward
	return &next
}

func reduceAddEvent(state *State, a AddEvent) *State {
	event := a.Event
	if event.ID == "" || slices.ContainsFunc(state.Events, func(e CalendarEvent) bool { return e.ID == event.ID }) {
		return state
	}
	if event.Type == "" {
		event.Type = EventGeneric
	}
	next := *state
	next.Events = append(slices.Clip(state.Events), event)
	return &next
}

func reduceCompleteEvent(state *State, a CompleteEvent) *State {
	idx := slices.IndexFunc(state.Events, func(e CalendarEvent) bool { return e.ID == a.EventID })
	if idx < 0 || state.Events[idx].Completed {
		return state
	}
	next := *state
	next.Events = slices.Clone(state.Events)
	next.Events[idx].Completed = true
	next.Player.XP += state.Events[idx].XPReward
	next.Resources.Coins += EventCoinBonus
	return &next
}

func reduceAddUser(state *State, a AddUser) *State {
	user := a.User
	if user.ID == "" || slices.ContainsFunc(state.Users, func(u User) bool { return u.ID == user.ID }) {
		return state
	}
	if user.Status == "" {
		user.Status = UserActive
	}
	if !validUserStatus(user.Status) {
		return state
	}
	if user.Level == 0 {
		user.Level = 1
	}
	next := *state
	next.Users = append(slices.Clip(state.Users), user)
	return &next
}

func validUserStatus(s UserStatus) bool {
	switch s {
	case UserActive, UserInactive, UserBanned:
		return true
	}
	return false
}

func reduceSetUserStatus(state *State, a SetUserStatus) *State {
	if !validUserStatus(a.Status) {
		return state
	}
	idx := slices.IndexFunc(state.Users, func(u User) bool { return u.ID == a.UserID })
	if idx < 0 {
		return state
	}
	current := state.Users[idx].Status
	// banned accounts have no way back
	if current == a.Status || current == UserBanned {
		return state
	}
	next := *state
	next.Users = slices.Clone(state.Users)
	next.Users[idx].Status = a.Status
	return &next
}

func reduceAdvanceQuest(state *State, a AdvanceQuest) *State {
	idx := slices.IndexFunc(state.Quests, func(q Quest) bool { return q.ID == a.QuestID })
	if idx < 0 || a.Amount <= 0 {
		return state
	}
	quest := state.Quests[idx]
	if quest.Status != QuestActive || quest.Progress >= quest.MaxProgress {
		return state
	}
	next := *state
	next.Quests = slices.Clone(state.Quests)
	next.Quests[idx].Progress = min(quest.MaxProgress, quest.Progress+a.Amount)
	return &next
}

func reduceCompleteQuest(state *State, a CompleteQuest) *State {
	idx := slices.IndexFunc(state.Quests, func(q Quest) bool { return q.ID == a.QuestID })
	if idx < 0 || !QuestClaimable(state.Quests[idx]) {
		return state
	}
	next := *state
	next.Quests = slices.Clone(state.Quests)
	next.Quests[idx].Status = QuestCompleted
	ownedCopied := false
	for _, reward := range state.Quests[idx].Rewards {
		switch reward.Type {
		case RewardXP:
			next.Player.XP += reward.Amount
		case RewardCoins:
			next.Resources.Coins += reward.Amount
		case RewardGems:
			next.Resources.Gems += reward.Amount
		case RewardItem:
			if reward.ItemID == "" || next.Owned[reward.ItemID] {
				continue
			}
			if !ownedCopied {
				next.Owned = cloneOwned(state.Owned)
				ownedCopied = true
			}
			next.Owned[reward.ItemID] = true
		}
	}
	return &next
}

func reducePurchaseItem(state *State, a PurchaseItem) *State {
	idx := slices.IndexFunc(state.Shop, func(i ShopItem) bool { return i.ID == a.ItemID })
	if idx < 0 || state.Owned[a.ItemID] {
		return state
	}
	item := state.Shop[idx]
	if !CanAfford(state.Resources, item) {
		return state
	}
	next := *state
	switch item.Currency {
	case CurrencyGems:
		next.Resources.Gems -= item.Price
	default:
		next.Resources.Coins -= item.Price
	}
	next.Owned = cloneOwned(state.Owned)
	next.Owned[item.ID] = true
	return &next
}

func cloneOwned(owned map[string]bool) map[string]bool {
	if owned == nil {
		return map[string]bool{}
	}
	return maps.Clone(owned)
}

func reduceStartBattle(state *State, a StartBattle) *State {
	if state.Battle != nil && state.Battle.Status == BattleActive {
		return state
	}
	idx := slices.IndexFunc(state.Enemies, func(e Enemy) bool { return e.ID == a.EnemyID })
	if idx < 0 {
		return state
	}
	enemy := state.Enemies[idx]
	next := *state
	next.Battle = &Battle{
		Enemy:        enemy,
		PlayerHealth: state.Player.Health,
		Status:       BattleActive,
		Log:          []string{fmt.Sprintf("A wild %s appears!", enemy.Name)},
	}
	return &next
}

func reduceBattleRound(state *State, a BattleRound) *State {
	if state.Battle == nil || state.Battle.Status != BattleActive {
		return state
	}
	switch a.Move {
	case MoveAttack, MoveSpecial, MoveDefend:
	default:
		return state
	}
	battle := *state.Battle
	battle.Log = slices.Clip(state.Battle.Log)

	dealt := max(0, a.PlayerDamage)
	battle.Enemy.Health = max(0, battle.Enemy.Health-dealt)
	battle.Log = append(battle.Log, fmt.Sprintf("You used %s for %d damage.", a.Move, dealt))

	next := *state
	if battle.Enemy.Health == 0 {
		battle.Status = BattleWon
		battle.Log = append(battle.Log, fmt.Sprintf("%s defeated! +%d XP, +%d coins.", battle.Enemy.Name, battle.Enemy.XPReward, battle.Enemy.CoinReward))
		next.Player.XP += battle.Enemy.XPReward
		next.Resources.Coins += battle.Enemy.CoinReward
		next.Enemies = slices.DeleteFunc(slices.Clone(state.Enemies), func(e Enemy) bool { return e.ID == battle.Enemy.ID })
	} else {
		taken := battle.Enemy.Damage
		if a.Move == MoveDefend {
			taken /= 2
		}
		battle.PlayerHealth = max(0, battle.PlayerHealth-taken)
		battle.Log = append(battle.Log, fmt.Sprintf("%s hits you for %d damage.", battle.Enemy.Name, taken))
		if battle.PlayerHealth == 0 {
			battle.Status = BattleLost
			battle.Log = append(battle.Log, "You were defeated.")
		}
	}
	next.Battle = &battle
	return &next
}

func reduceRefreshAnalytics(state *State, a RefreshAnalytics) *State {
	current := state.Analytics
	if slices.Equal(current.DailyUsers, a.Data.DailyUsers) &&
		slices.Equal(current.Revenue, a.Data.Revenue) &&
		slices.Equal(current.Performance, a.Data.Performance) {
		return state
	}
	next := *state
	next.Analytics = AnalyticsData{
		DailyUsers:  slices.Clone(a.Data.DailyUsers),
		Revenue:     slices.Clone(a.Data.Revenue),
		Performance: slices.Clone(a.Data.Performance),
	}
	return &next
}

func clampPercent(v float64) float64 {
	return min(100, max(0, v))
}
