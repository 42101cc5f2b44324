package game

// Kind is the tag of an Action.
type Kind string

const (
	KindTalkToNPC           Kind = "TALK_TO_NPC"
	KindDismissNPC          Kind = "DISMISS_NPC"
	KindChangeLocation      Kind = "CHANGE_LOCATION"
	KindGainResources       Kind = "GAIN_RESOURCES"
	KindGainXP              Kind = "GAIN_XP"
	KindLevelUpStat         Kind = "LEVEL_UP_STAT"
	KindUpdateSystemStats   Kind = "UPDATE_SYSTEM_STATS"
	KindUpdateServerMetrics Kind = "UPDATE_SERVER_METRICS"
	KindServerAction        Kind = "SERVER_ACTION"
	KindToggleRetro         Kind = "TOGGLE_RETRO"
	KindAdvanceTutorial     Kind = "ADVANCE_TUTORIAL"
	KindAddTask             Kind = "ADD_TASK"
	KindMoveTask            Kind = "MOVE_TASK"
	KindCompleteTask        Kind = "COMPLETE_TASK"
	KindAddEvent            Kind = "ADD_EVENT"
	KindCompleteEvent       Kind = "COMPLETE_EVENT"
	KindAddUser             Kind = "ADD_USER"
	KindSetUserStatus       Kind = "SET_USER_STATUS"
	KindAdvanceQuest        Kind = "ADVANCE_QUEST"
	KindCompleteQuest       Kind = "COMPLETE_QUEST"
	KindPurchaseItem        Kind = "PURCHASE_ITEM"
	KindStartBattle         Kind = "START_BATTLE"
	KindBattleRound         Kind = "BATTLE_ROUND"
	KindRefreshAnalytics    Kind = "REFRESH_ANALYTICS"
)

// Action is a requested state transition. The set is closed: only this
// package can implement it.
type Action interface {
	Kind() Kind
	action()
}

type TalkToNPC struct {
	NPCID string `json:"npc_id"`
}

type DismissNPC struct {
	NPCID string `json:"npc_id"`
}

type ChangeLocation struct {
	LocationID string `json:"location_id"`
}

// GainResources adds each field to the current balance. Negative values spend.
type GainResources struct {
	Delta Resources `json:"delta"`
}

type GainXP struct {
	Amount int `json:"amount"`
}

// LevelUpStat spends LevelUpCost coins to raise one stat by one.
type LevelUpStat struct {
	Stat StatName `json:"stat"`
}

// StatsDelta is a precomputed random walk step for SystemStats.
type StatsDelta struct {
	CPU         float64 `json:"cpu"`
	Memory      float64 `json:"memory"`
	Network     float64 `json:"network"`
	ActiveUsers int     `json:"active_users"`
}

type UpdateSystemStats struct {
	Delta StatsDelta `json:"delta"`
}

// ServerDelta is a precomputed drift for one server.
type ServerDelta struct {
	ServerID string  `json:"server_id"`
	CPU      float64 `json:"cpu"`
	Memory   float64 `json:"memory"`
}

type UpdateServerMetrics struct {
	Deltas []ServerDelta `json:"deltas"`
}

// ServerOp is an operator command against a server.
type ServerOp string

const (
	ServerRestart  ServerOp = "restart"
	ServerOptimize ServerOp = "optimize"
	ServerShutdown ServerOp = "shutdown"
)

type ServerAction struct {
	ServerID string   `json:"server_id"`
	Op       ServerOp `json:"op"`
}

type ToggleRetro struct{}

type AdvanceTutorial struct{}

type AddTask struct {
	Task Task `json:"task"`
}

type MoveTask struct {
	TaskID string     `json:"task_id"`
	Status TaskStatus `json:"status"`
}

type CompleteTask struct {
	TaskID string `json:"task_id"`
}

type AddEvent struct {
	Event CalendarEvent `json:"event"`
}

type CompleteEvent struct {
	EventID string `json:"event_id"`
}

type AddUser struct {
	User User `json:"user"`
}

type SetUserStatus struct {
	UserID string     `json:"user_id"`
	Status UserStatus `json:"status"`
}

type AdvanceQuest struct {
	QuestID string `json:"quest_id"`
	Amount  int    `json:"amount"`
}

type CompleteQuest struct {
	QuestID string `json:"quest_id"`
}

type PurchaseItem struct {
	ItemID string `json:"item_id"`
}

type StartBattle struct {
	EnemyID string `json:"enemy_id"`
}

// BattleMove is the player's choice in a battle round.
type BattleMove string

const (
	MoveAttack  BattleMove = "attack"
	MoveSpecial BattleMove = "special"
	MoveDefend  BattleMove = "defend"
)

// BattleRound carries damage rolled by the caller so the reducer stays
// deterministic.
type BattleRound struct {
	Move         BattleMove `json:"move"`
	PlayerDamage int        `json:"player_damage"`
}

type RefreshAnalytics struct {
	Data AnalyticsData `json:"data"`
}

// UnknownAction stands in for a kind this build does not recognise. It
// reduces to a no-op.
type UnknownAction struct {
	Type    string         `json:"kind"`
	Payload map[string]any `json:"payload,omitempty"`
}

func (TalkToNPC) Kind() Kind           { return KindTalkToNPC }
func (DismissNPC) Kind() Kind          { return KindDismissNPC }
func (ChangeLocation) Kind() Kind      { return KindChangeLocation }
func (GainResources) Kind() Kind       { return KindGainResources }
func (GainXP) Kind() Kind              { return KindGainXP }
func (LevelUpStat) Kind() Kind         { return KindLevelUpStat }
func (UpdateSystemStats) Kind() Kind   { return KindUpdateSystemStats }
func (UpdateServerMetrics) Kind() Kind { return KindUpdateServerMetrics }
func (ServerAction) Kind() Kind        { return KindServerAction }
func (ToggleRetro) Kind() Kind         { return KindToggleRetro }
func (AdvanceTutorial) Kind() Kind     { return KindAdvanceTutorial }
func (AddTask) Kind() Kind             { return KindAddTask }
func (MoveTask) Kind() Kind            { return KindMoveTask }
func (CompleteTask) Kind() Kind        { return KindCompleteTask }
func (AddEvent) Kind() Kind            { return KindAddEvent }
func (CompleteEvent) Kind() Kind       { return KindCompleteEvent }
func (AddUser) Kind() Kind             { return KindAddUser }
func (SetUserStatus) Kind() Kind       { return KindSetUserStatus }
func (AdvanceQuest) Kind() Kind        { return KindAdvanceQuest }
func (CompleteQuest) Kind() Kind       { return KindCompleteQuest }
func (PurchaseItem) Kind() Kind        { return KindPurchaseItem }
func (StartBattle) Kind() Kind         { return KindStartBattle }
func (BattleRound) Kind() Kind         { return KindBattleRound }
func (RefreshAnalytics) Kind() Kind    { return KindRefreshAnalytics }
func (u UnknownAction) Kind() Kind     { return Kind(u.Type) }

func (TalkToNPC) action()           {}
func (DismissNPC) action()          {}
func (ChangeLocation) action()      {}
func (GainResources) action()       {}
func (GainXP) action()              {}
func (LevelUpStat) action()         {}
func (UpdateSystemStats) action()   {}
func (UpdateServerMetrics) action() {}
func (ServerAction) action()        {}
func (ToggleRetro) action()         {}
func (AdvanceTutorial) action()     {}
func (AddTask) action()             {}
func (MoveTask) action()            {}
func (CompleteTask) action()        {}
func (AddEvent) action()            {}
func (CompleteEvent) action()       {}
func (AddUser) action()             {}
func (SetUserStatus) action()       {}
func (AdvanceQuest) action()        {}
func (CompleteQuest) action()       {}
func (PurchaseItem) action()        {}
func (StartBattle) action()         {}
func (BattleRound) action()         {}
func (RefreshAnalytics) action()    {}
func (UnknownAction) action()       {}
