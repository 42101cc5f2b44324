package game

import "time"

// State is the aggregate snapshot held by the Store. Snapshots are immutable
// once published: the reducer copies any branch it changes and shares the rest.
type State struct {
	Player         Player          `json:"player" yaml:"player"`
	Resources      Resources       `json:"resources" yaml:"resources"`
	NPCs           []NPC           `json:"npcs" yaml:"npcs"`
	Quests         []Quest         `json:"quests" yaml:"quests"`
	Guild          Guild           `json:"guild" yaml:"guild"`
	WorldMap       []WorldLocation `json:"world_map" yaml:"world_map"`
	SystemStats    SystemStats     `json:"system_stats" yaml:"system_stats"`
	Users          []User          `json:"users" yaml:"users"`
	Tasks          []Task          `json:"tasks" yaml:"tasks"`
	Events         []CalendarEvent `json:"events" yaml:"events"`
	Shop           []ShopItem      `json:"shop" yaml:"shop"`
	Owned          map[string]bool `json:"owned" yaml:"owned"`
	Servers        []Server        `json:"servers" yaml:"servers"`
	Enemies        []Enemy         `json:"enemies" yaml:"enemies"`
	Battle         *Battle         `json:"battle,omitempty" yaml:"battle,omitempty"`
	Analytics      AnalyticsData   `json:"analytics" yaml:"analytics"`
	Theme          string          `json:"theme" yaml:"theme"`
	Retro          bool            `json:"retro" yaml:"retro"`
	ActiveLocation string          `json:"active_location" yaml:"active_location"`
	TutorialStep   int             `json:"tutorial_step" yaml:"tutorial_step"`
}

// PlayerClass is the persona archetype.
type PlayerClass string

const (
	ClassAdmin     PlayerClass = "admin"
	ClassDeveloper PlayerClass = "developer"
	ClassAnalyst   PlayerClass = "analyst"
	ClassManager   PlayerClass = "manager"
)

// Player is the signed-in administrator's in-game persona.
type Player struct {
	ID        string      `json:"id" yaml:"id"`
	Name      string      `json:"name" yaml:"name"`
	Level     int         `json:"level" yaml:"level"`
	XP        int         `json:"xp" yaml:"xp"`
	Health    int         `json:"health" yaml:"health"`
	Mana      int         `json:"mana" yaml:"mana"`
	Energy    int         `json:"energy" yaml:"energy"`
	Class     PlayerClass `json:"class" yaml:"class"`
	Stats     Stats       `json:"stats" yaml:"stats"`
	Avatar    Avatar      `json:"avatar" yaml:"avatar"`
	Streak    int         `json:"streak" yaml:"streak"`
	LastLogin string      `json:"last_login" yaml:"last_login"`
}

// Stats are the upgradable player attributes.
type Stats struct {
	Strength     int `json:"strength" yaml:"strength"`
	Intelligence int `json:"intelligence" yaml:"intelligence"`
	Agility      int `json:"agility" yaml:"agility"`
	Leadership   int `json:"leadership" yaml:"leadership"`
}

// StatName identifies one field of Stats.
type StatName string

const (
	StatStrength     StatName = "strength"
	StatIntelligence StatName = "intelligence"
	StatAgility      StatName = "agility"
	StatLeadership   StatName = "leadership"
)

// Avatar holds cosmetic slots.
type Avatar struct {
	Base   string `json:"base" yaml:"base"`
	Helmet string `json:"helmet" yaml:"helmet"`
	Armor  string `json:"armor" yaml:"armor"`
	Weapon string `json:"weapon" yaml:"weapon"`
	Aura   string `json:"aura" yaml:"aura"`
}

// Resources are the spendable currencies.
type Resources struct {
	Coins      int `json:"coins" yaml:"coins"`
	Gems       int `json:"gems" yaml:"gems"`
	Energy     int `json:"energy" yaml:"energy"`
	Mana       int `json:"mana" yaml:"mana"`
	Reputation int `json:"reputation" yaml:"reputation"`
}

// NPC is a dialogue-emitting character bound to a world location.
type NPC struct {
	ID              string   `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	Type            string   `json:"type" yaml:"type"`
	Location        string   `json:"location" yaml:"location"`
	Dialogue        []string `json:"dialogue" yaml:"dialogue"`
	CurrentDialogue int      `json:"current_dialogue" yaml:"current_dialogue"`
	Mood            string   `json:"mood" yaml:"mood"`
	Avatar          string   `json:"avatar" yaml:"avatar"`
	IsActive        bool     `json:"is_active" yaml:"is_active"`
}

// QuestStatus is the lifecycle of a quest.
type QuestStatus string

const (
	QuestAvailable QuestStatus = "available"
	QuestActive    QuestStatus = "active"
	QuestCompleted QuestStatus = "completed"
	QuestFailed    QuestStatus = "failed"
)

// RewardType names what a Reward grants.
type RewardType string

const (
	RewardXP    RewardType = "xp"
	RewardCoins RewardType = "coins"
	RewardGems  RewardType = "gems"
	RewardItem  RewardType = "item"
)

// Reward is one payout of a quest or battle.
type Reward struct {
	Type   RewardType `json:"type" yaml:"type"`
	Amount int        `json:"amount,omitempty" yaml:"amount,omitempty"`
	ItemID string     `json:"item_id,omitempty" yaml:"item_id,omitempty"`
}

// QuestRequirement describes what advances a quest.
type QuestRequirement struct {
	Type  string `json:"type" yaml:"type"`
	Count int    `json:"count" yaml:"count"`
}

// Quest is an objective tracked in the sidebar.
type Quest struct {
	ID           string             `json:"id" yaml:"id"`
	Title        string             `json:"title" yaml:"title"`
	Description  string             `json:"description" yaml:"description"`
	Type         string             `json:"type" yaml:"type"`
	Difficulty   string             `json:"difficulty" yaml:"difficulty"`
	Requirements []QuestRequirement `json:"requirements,omitempty" yaml:"requirements,omitempty"`
	Rewards      []Reward           `json:"rewards" yaml:"rewards"`
	Progress     int                `json:"progress" yaml:"progress"`
	MaxProgress  int                `json:"max_progress" yaml:"max_progress"`
	Status       QuestStatus        `json:"status" yaml:"status"`
	NPCGiver     string             `json:"npc_giver,omitempty" yaml:"npc_giver,omitempty"`
}

// Guild is the player's team.
type Guild struct {
	Name    string   `json:"name" yaml:"name"`
	Level   int      `json:"level" yaml:"level"`
	Members int      `json:"members" yaml:"members"`
	Perks   []string `json:"perks" yaml:"perks"`
}

// WorldLocation is a navigable area of the dashboard.
type WorldLocation struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Type        string   `json:"type" yaml:"type"`
	Unlocked    bool     `json:"unlocked" yaml:"unlocked"`
	Description string   `json:"description" yaml:"description"`
	NPCs        []string `json:"npcs,omitempty" yaml:"npcs,omitempty"`
	Quests      []string `json:"quests,omitempty" yaml:"quests,omitempty"`
	Icon        string   `json:"icon" yaml:"icon"`
}

// SystemStats is mock telemetry for the monitored system.
type SystemStats struct {
	CPUUsage       float64 `json:"cpu_usage" yaml:"cpu_usage"`
	MemoryUsage    float64 `json:"memory_usage" yaml:"memory_usage"`
	DiskUsage      float64 `json:"disk_usage" yaml:"disk_usage"`
	NetworkTraffic float64 `json:"network_traffic" yaml:"network_traffic"`
	ActiveUsers    int     `json:"active_users" yaml:"active_users"`
	ErrorRate      float64 `json:"error_rate" yaml:"error_rate"`
	Uptime         float64 `json:"uptime" yaml:"uptime"`
}

// UserStatus is the state of a managed account.
type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
	UserBanned   UserStatus = "banned"
)

// User is a mock managed account.
type User struct {
	ID       string     `json:"id" yaml:"id"`
	Name     string     `json:"name" yaml:"name"`
	Email    string     `json:"email" yaml:"email"`
	Role     string     `json:"role" yaml:"role"`
	Status   UserStatus `json:"status" yaml:"status"`
	LastSeen string     `json:"last_seen" yaml:"last_seen"`
	XP       int        `json:"xp" yaml:"xp"`
	Level    int        `json:"level" yaml:"level"`
}

// TaskStatus is a kanban column.
type TaskStatus string

const (
	TaskTodo     TaskStatus = "todo"
	TaskProgress TaskStatus = "progress"
	TaskDone     TaskStatus = "done"
)

// Priority ranks a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Task is a kanban item.
type Task struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Status      TaskStatus `json:"status" yaml:"status"`
	Priority    Priority   `json:"priority" yaml:"priority"`
	Assignee    string     `json:"assignee" yaml:"assignee"`
	DueDate     string     `json:"due_date" yaml:"due_date"`
	XPReward    int        `json:"xp_reward" yaml:"xp_reward"`
	// Rewarded is set once COMPLETE_TASK has granted XPReward.
	Rewarded bool `json:"rewarded" yaml:"rewarded"`
}

// EventType classifies calendar events.
type EventType string

const (
	EventMeeting     EventType = "meeting"
	EventDeadline    EventType = "deadline"
	EventMaintenance EventType = "maintenance"
	EventGeneric     EventType = "event"
)

// CalendarEvent is a scheduled item.
type CalendarEvent struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Date      string    `json:"date" yaml:"date"`
	Time      string    `json:"time" yaml:"time"`
	Type      EventType `json:"type" yaml:"type"`
	XPReward  int       `json:"xp_reward" yaml:"xp_reward"`
	Completed bool      `json:"completed" yaml:"completed"`
}

// Currency is what a shop item is priced in.
type Currency string

const (
	CurrencyCoins Currency = "coins"
	CurrencyGems  Currency = "gems"
)

// ShopItem is a purchasable upgrade. Ownership lives in State.Owned.
type ShopItem struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Price       int      `json:"price" yaml:"price"`
	Currency    Currency `json:"currency" yaml:"currency"`
	Category    string   `json:"category" yaml:"category"`
	Rarity      string   `json:"rarity" yaml:"rarity"`
	Icon        string   `json:"icon" yaml:"icon"`
	Effects     []string `json:"effects" yaml:"effects"`
	Level       int      `json:"level" yaml:"level"`
}

// ServerStatus is the health of a mock server.
type ServerStatus string

const (
	ServerOnline  ServerStatus = "online"
	ServerWarning ServerStatus = "warning"
	ServerOffline ServerStatus = "offline"
)

// Server is a mock host in the tech fortress.
type Server struct {
	ID       string       `json:"id" yaml:"id"`
	Name     string       `json:"name" yaml:"name"`
	Status   ServerStatus `json:"status" yaml:"status"`
	CPU      float64      `json:"cpu" yaml:"cpu"`
	Memory   float64      `json:"memory" yaml:"memory"`
	Disk     float64      `json:"disk" yaml:"disk"`
	Uptime   float64      `json:"uptime" yaml:"uptime"`
	Location string       `json:"location" yaml:"location"`
	Type     string       `json:"type" yaml:"type"`
}

// Enemy is a bug-arena opponent.
type Enemy struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Health      int    `json:"health" yaml:"health"`
	MaxHealth   int    `json:"max_health" yaml:"max_health"`
	Damage      int    `json:"damage" yaml:"damage"`
	XPReward    int    `json:"xp_reward" yaml:"xp_reward"`
	CoinReward  int    `json:"coin_reward" yaml:"coin_reward"`
	Description string `json:"description" yaml:"description"`
	Weakness    string `json:"weakness" yaml:"weakness"`
	Icon        string `json:"icon" yaml:"icon"`
}

// BattleStatus is the outcome of a battle.
type BattleStatus string

const (
	BattleActive BattleStatus = "active"
	BattleWon    BattleStatus = "won"
	BattleLost   BattleStatus = "lost"
)

// Battle is the encounter currently shown in the arena.
type Battle struct {
	Enemy        Enemy        `json:"enemy" yaml:"enemy"`
	PlayerHealth int          `json:"player_health" yaml:"player_health"`
	Status       BattleStatus `json:"status" yaml:"status"`
	Log          []string     `json:"log" yaml:"log"`
}

// AnalyticsData backs the data realm charts.
type AnalyticsData struct {
	DailyUsers  []DailyUsers  `json:"daily_users" yaml:"daily_users"`
	Revenue     []Revenue     `json:"revenue" yaml:"revenue"`
	Performance []Performance `json:"performance" yaml:"performance"`
}

// DailyUsers is one point of the users series.
type DailyUsers struct {
	Date  string `json:"date" yaml:"date"`
	Users int    `json:"users" yaml:"users"`
}

// Revenue is one point of the revenue series.
type Revenue struct {
	Date   string  `json:"date" yaml:"date"`
	Amount float64 `json:"amount" yaml:"amount"`
}

// Performance is a headline metric with its relative change.
type Performance struct {
	Metric string  `json:"metric" yaml:"metric"`
	Value  float64 `json:"value" yaml:"value"`
	Change float64 `json:"change" yaml:"change"`
}

// Severity ranks threats.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// ThreatStatus is the triage state of a threat.
type ThreatStatus string

const (
	ThreatDetected      ThreatStatus = "detected"
	ThreatInvestigating ThreatStatus = "investigating"
	ThreatResolved      ThreatStatus = "resolved"
)

// Threat is a mock security finding kept by the ThreatDetector, not the store.
type Threat struct {
	ID          string       `json:"id"`
	Type        string       `json:"type"`
	Severity    Severity     `json:"severity"`
	Description string       `json:"description"`
	Status      ThreatStatus `json:"status"`
	Timestamp   time.Time    `json:"timestamp"`
}

// Activity is a mock live-feed entry kept by the ActivityFeed, not the store.
type Activity struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	Timestamp time.Time `json:"timestamp"`
}

// Notification is a transient side-channel message. It never enters State.
type Notification struct {
	Title    string        `json:"title"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"duration"`
	At       time.Time     `json:"at"`
}
