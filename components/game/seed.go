package game

// DefaultSeed returns the bootstrap snapshot the store starts from. Every call
// returns a fresh tree so callers may modify it before handing it to a store.
func DefaultSeed() *State {
	return &State{
		Player: Player{
			ID:     "player1",
			Name:   "Admin Warrior",
			Level:  5,
			XP:     1847,
			Health: 100,
			Mana:   80,
			Energy: 90,
			Class:  ClassAdmin,
			Stats:  Stats{Strength: 15, Intelligence: 22, Agility: 18, Leadership: 20},
			Avatar: Avatar{
				Base:   "cyber-knight",
				Helmet: "neural-crown",
				Armor:  "data-plate",
				Weapon: "code-blade",
				Aura:   "electric-blue",
			},
			Streak: 7,
		},
		Resources: Resources{Coins: 1250, Gems: 45, Energy: 90, Mana: 80, Reputation: 750},
		NPCs: []NPC{
			{
				ID:       "aria",
				Name:     "Aria the Data Sage",
				Type:     "guide",
				Location: "dashboard",
				Dialogue: []string{
					"Welcome back, Admin Warrior! Your kingdom needs you.",
					"I sense disturbances in the data streams...",
					"The system metrics show unusual patterns today.",
					"Your leadership grows stronger with each quest completed!",
				},
				Mood:     "excited",
				Avatar:   "🧙‍♀️",
				IsActive: true,
			},
			{
				ID:       "zyx",
				Name:     "Zyx the Code Merchant",
				Type:     "merchant",
				Location: "shop",
				Dialogue: []string{
					"Greetings! I have rare upgrades for your arsenal.",
					"These neural enhancements will boost your admin powers!",
					"Special offer: Quantum processors for faster data crunching!",
				},
				Mood:   "happy",
				Avatar: "🤖",
			},
		},
		Quests: []Quest{
			{
				ID:           "daily-monitoring",
				Title:        "System Surveillance",
				Description:  "Monitor all system metrics and defeat any anomalies",
				Type:         "daily",
				Difficulty:   "medium",
				Requirements: []QuestRequirement{{Type: "monitor_systems", Count: 1}},
				Rewards:      []Reward{{Type: RewardXP, Amount: 150}, {Type: RewardCoins, Amount: 50}},
				MaxProgress:  1,
				Status:       QuestActive,
				NPCGiver:     "aria",
			},
			{
				ID:           "user-management",
				Title:        "Guardian of Users",
				Description:  "Review and manage user accounts to maintain order",
				Type:         "weekly",
				Difficulty:   "hard",
				Requirements: []QuestRequirement{{Type: "manage_users", Count: 10}},
				Rewards:      []Reward{{Type: RewardXP, Amount: 300}, {Type: RewardGems, Amount: 25}},
				Progress:     3,
				MaxProgress:  10,
				Status:       QuestActive,
			},
		},
		Guild: Guild{
			Name:    "Digital Guardians",
			Level:   3,
			Members: 12,
			Perks:   []string{"Faster XP gain", "Resource bonuses", "Exclusive quests"},
		},
		WorldMap: []WorldLocation{
			{ID: "dashboard", Name: "Command Center", Type: "dashboard", Unlocked: true, Description: "Your primary control hub", NPCs: []string{"aria"}, Quests: []string{"daily-monitoring"}, Icon: "🏰"},
			{ID: "analytics", Name: "Data Realm", Type: "analytics", Unlocked: true, Description: "Realm of charts and insights", Icon: "📊"},
			{ID: "users", Name: "User Kingdom", Type: "users", Unlocked: true, Description: "Manage your subjects", Quests: []string{"user-management"}, Icon: "👥"},
			{ID: "system", Name: "Tech Fortress", Type: "system", Unlocked: true, Description: "Monitor system vitals", Icon: "⚙️"},
			{ID: "battle", Name: "Bug Arena", Type: "battle", Unlocked: true, Description: "Fight system threats", Icon: "⚔️"},
			{ID: "shop", Name: "Upgrade Bazaar", Type: "shop", Unlocked: true, Description: "Enhance your abilities", NPCs: []string{"zyx"}, Icon: "🛒"},
		},
		SystemStats: SystemStats{
			CPUUsage:       45,
			MemoryUsage:    67,
			DiskUsage:      23,
			NetworkTraffic: 89,
			ActiveUsers:    1247,
			ErrorRate:      0.02,
			Uptime:         99.97,
		},
		Users: []User{
			{ID: "1", Name: "Alice Johnson", Email: "alice@company.com", Role: "Developer", Status: UserActive, LastSeen: "2 min ago", XP: 890, Level: 3},
			{ID: "2", Name: "Bob Smith", Email: "bob@company.com", Role: "Designer", Status: UserActive, LastSeen: "1 hour ago", XP: 1200, Level: 4},
			{ID: "3", Name: "Carol Davis", Email: "carol@company.com", Role: "Manager", Status: UserInactive, LastSeen: "2 days ago", XP: 2100, Level: 6},
		},
		Tasks: []Task{
			{ID: "1", Title: "System Health Check", Description: "Monitor all system components", Status: TaskTodo, Priority: PriorityHigh, Assignee: "Admin Warrior", DueDate: "2024-01-20", XPReward: 50},
			{ID: "2", Title: "User Data Analysis", Description: "Analyze user behavior patterns", Status: TaskProgress, Priority: PriorityMedium, Assignee: "Admin Warrior", DueDate: "2024-01-22", XPReward: 75},
			{ID: "3", Title: "Security Audit", Description: "Complete security vulnerability assessment", Status: TaskTodo, Priority: PriorityHigh, Assignee: "Admin Warrior", DueDate: "2024-01-25", XPReward: 100},
		},
		Events: []CalendarEvent{
			{ID: "1", Title: "System Maintenance", Date: "2024-01-20", Time: "02:00", Type: EventMaintenance, XPReward: 50},
			{ID: "2", Title: "Team Meeting", Date: "2024-01-22", Time: "14:00", Type: EventMeeting, XPReward: 25},
			{ID: "3", Title: "Project Deadline", Date: "2024-01-25", Time: "23:59", Type: EventDeadline, XPReward: 100},
		},
		Shop:    defaultShop(),
		Owned:   map[string]bool{},
		Servers: defaultServers(),
		Enemies: defaultEnemies(),
		Analytics: AnalyticsData{
			DailyUsers: []DailyUsers{
				{Date: "Mon", Users: 1200},
				{Date: "Tue", Users: 1350},
				{Date: "Wed", Users: 1180},
				{Date: "Thu", Users: 1420},
				{Date: "Fri", Users: 1380},
				{Date: "Sat", Users: 980},
				{Date: "Sun", Users: 1100},
			},
			Revenue: []Revenue{
				{Date: "Mon", Amount: 12500},
				{Date: "Tue", Amount: 13200},
				{Date: "Wed", Amount: 11800},
				{Date: "Thu", Amount: 14500},
				{Date: "Fri", Amount: 13900},
				{Date: "Sat", Amount: 10200},
				{Date: "Sun", Amount: 11600},
			},
			Performance: []Performance{
				{Metric: "Response Time", Value: 245, Change: -12},
				{Metric: "Throughput", Value: 1847, Change: 23},
				{Metric: "Error Rate", Value: 0.02, Change: -45},
			},
		},
		Theme:          "cyber",
		ActiveLocation: "dashboard",
	}
}

func defaultShop() []ShopItem {
	return []ShopItem{
		{ID: "neural-sword", Name: "Neural Code Blade", Description: "A legendary weapon that cuts through bugs with precision", Price: 500, Currency: CurrencyCoins, Category: "weapons", Rarity: "legendary", Icon: "⚔️", Effects: []string{"+50 Attack Power", "+25% Critical Hit", "Bug Slayer Bonus"}, Level: 1},
		{ID: "quantum-shield", Name: "Quantum Firewall", Description: "Advanced protection against all types of cyber threats", Price: 750, Currency: CurrencyCoins, Category: "armor", Rarity: "epic", Icon: "🛡️", Effects: []string{"+100 Defense", "+50% Damage Reduction", "Auto-Heal"}, Level: 1},
		{ID: "data-crown", Name: "Crown of Data Mastery", Description: "Increases XP gain and unlocks advanced analytics", Price: 25, Currency: CurrencyGems, Category: "cosmetics", Rarity: "legendary", Icon: "👑", Effects: []string{"+50% XP Gain", "+25% Coin Bonus", "Analytics Boost"}, Level: 1},
		{ID: "speed-boost", Name: "Velocity Enhancer", Description: "Permanently increases task completion speed", Price: 300, Currency: CurrencyCoins, Category: "abilities", Rarity: "rare", Icon: "⚡", Effects: []string{"+30% Task Speed", "+15% Energy Regen", "Quick Actions"}, Level: 1},
		{ID: "admin-cape", Name: "Administrator's Cloak", Description: "A majestic cape that shows your admin prowess", Price: 15, Currency: CurrencyGems, Category: "cosmetics", Rarity: "epic", Icon: "🦸", Effects: []string{"+20% Leadership", "Intimidation Aura", "Style Points"}, Level: 1},
		{ID: "debug-hammer", Name: "Debug Warhammer", Description: "Smashes bugs and performance issues with ease", Price: 400, Currency: CurrencyCoins, Category: "weapons", Rarity: "rare", Icon: "🔨", Effects: []string{"+40 Attack", "Bug Crusher", "+20% Performance Fix"}, Level: 1},
		{ID: "crypto-armor", Name: "Cryptographic Armor", Description: "Ultimate protection with built-in encryption", Price: 30, Currency: CurrencyGems, Category: "armor", Rarity: "legendary", Icon: "🔐", Effects: []string{"+150 Defense", "Encryption Shield", "Data Protection"}, Level: 1},
		{ID: "ai-assistant", Name: "AI Code Assistant", Description: "An intelligent companion that helps with coding tasks", Price: 1000, Currency: CurrencyCoins, Category: "abilities", Rarity: "legendary", Icon: "🤖", Effects: []string{"Auto-Complete Tasks", "+100% Code Quality", "Smart Suggestions"}, Level: 1},
	}
}

func defaultServers() []Server {
	return []Server{
		{ID: "web-01", Name: "Web Server Alpha", Status: ServerOnline, CPU: 45, Memory: 67, Disk: 23, Uptime: 99.97, Location: "US-East", Type: "web"},
		{ID: "db-01", Name: "Database Primary", Status: ServerOnline, CPU: 32, Memory: 78, Disk: 45, Uptime: 99.99, Location: "US-West", Type: "database"},
		{ID: "api-01", Name: "API Gateway", Status: ServerWarning, CPU: 89, Memory: 92, Disk: 34, Uptime: 98.5, Location: "EU-Central", Type: "api"},
		{ID: "cache-01", Name: "Redis Cache", Status: ServerOffline, Disk: 67, Location: "Asia-Pacific", Type: "cache"},
	}
}

func defaultEnemies() []Enemy {
	return []Enemy{
		{ID: "memory-leak", Name: "Memory Leak Monster", Type: "bug", Health: 80, MaxHealth: 80, Damage: 15, XPReward: 100, CoinReward: 50, Description: "A sneaky bug that slowly consumes system memory", Weakness: "Code optimization", Icon: "🐛"},
		{ID: "sql-injection", Name: "SQL Injection Serpent", Type: "exploit", Health: 120, MaxHealth: 120, Damage: 25, XPReward: 150, CoinReward: 75, Description: "A dangerous exploit that attacks database vulnerabilities", Weakness: "Input validation", Icon: "🐍"},
		{ID: "ddos-dragon", Name: "DDoS Dragon", Type: "breach", Health: 200, MaxHealth: 200, Damage: 35, XPReward: 250, CoinReward: 125, Description: "A massive threat that overwhelms system resources", Weakness: "Rate limiting", Icon: "🐉"},
		{ID: "malware-minion", Name: "Malware Minion", Type: "virus", Health: 60, MaxHealth: 60, Damage: 10, XPReward: 75, CoinReward: 35, Description: "A small but persistent malicious program", Weakness: "Antivirus scan", Icon: "👾"},
	}
}
