package game

import (
	"context"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type threatKind struct {
	kind         string
	descriptions []string
}

var threatKinds = []threatKind{
	{kind: "malware", descriptions: []string{"Suspicious file detected in uploads", "Malicious script blocked", "Virus signature found"}},
	{kind: "intrusion", descriptions: []string{"Unauthorized access attempt", "Brute force attack detected", "Suspicious IP activity"}},
	{kind: "ddos", descriptions: []string{"High traffic volume detected", "Request rate anomaly", "Potential DDoS attack"}},
	{kind: "vulnerability", descriptions: []string{"Outdated dependency found", "Security patch required", "Configuration weakness"}},
}

var severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

// ThreatDetector keeps a short list of mock security findings. It lives
// beside the store, never in it.
type ThreatDetector struct {
	Delay    time.Duration
	Interval time.Duration
	Chance   float64
	Limit    int
	Now      func() time.Time
	OnThreat func(Threat)

	mu      sync.RWMutex
	rand    *rand.Rand
	threats []Threat
}

// NewThreatDetector builds a detector from the threat fields of cfg.
func NewThreatDetector(cfg ProducerConfig, r *rand.Rand) *ThreatDetector {
	cfg = cfg.WithDefaults()
	return &ThreatDetector{
		Delay:    cfg.ThreatDelay,
		Interval: cfg.ThreatInterval,
		Chance:   cfg.ThreatChance,
		Limit:    cfg.ThreatLimit,
		rand:     r,
	}
}

// Generate records a new random threat and returns it.
func (d *ThreatDetector) Generate() Threat {
	d.mu.Lock()
	kind := threatKinds[d.rand.IntN(len(threatKinds))]
	threat := Threat{
		ID:          ulid.Make().String(),
		Type:        kind.kind,
		Severity:    severities[d.rand.IntN(len(severities))],
		Description: kind.descriptions[d.rand.IntN(len(kind.descriptions))],
		Status:      ThreatDetected,
		Timestamp:   d.now(),
	}
	d.threats = prepend(d.threats, threat, d.Limit)
	hook := d.OnThreat
	d.mu.Unlock()
	if hook != nil {
		hook(threat)
	}
	return threat
}

// Roll generates a threat with probability Chance.
func (d *ThreatDetector) Roll() (Threat, bool) {
	d.mu.Lock()
	hit := d.rand.Float64() < d.Chance
	d.mu.Unlock()
	if !hit {
		return Threat{}, false
	}
	return d.Generate(), true
}

// Threats returns the retained threats, newest first.
func (d *ThreatDetector) Threats() []Threat {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.threats)
}

// Resolve marks a retained threat resolved. It reports whether id was found.
func (d *ThreatDetector) Resolve(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	idx := slices.IndexFunc(d.threats, func(t Threat) bool { return t.ID == id })
	if idx < 0 {
		return false
	}
	next := slices.Clone(d.threats)
	next[idx].Status = ThreatResolved
	d.threats = next
	return true
}

// Run emits the first threat after Delay, then rolls every Interval.
func (d *ThreatDetector) Run(ctx context.Context) error {
	if err := sleep(ctx, d.Delay); err != nil {
		return err
	}
	d.Generate()
	return every(ctx, d.Interval, func(context.Context) { d.Roll() })
}

func (d *ThreatDetector) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

type activityKind struct {
	kind     string
	severity string
	messages []string
}

var activityKinds = []activityKind{
	{kind: "user", severity: "info", messages: []string{
		"New user registration: alice@company.com",
		"User login: bob@company.com",
		"Password reset requested",
		"User profile updated",
	}},
	{kind: "system", severity: "success", messages: []string{
		"Database backup completed successfully",
		"System optimization in progress",
		"Cache cleared automatically",
		"Server restart scheduled",
	}},
	{kind: "security", severity: "warning", messages: []string{
		"Failed login attempt detected",
		"Security scan completed",
		"Firewall rule updated",
		"SSL certificate renewed",
	}},
	{kind: "performance", severity: "success", messages: []string{
		"Response time improved by 15%",
		"Memory usage optimized",
		"Database query performance enhanced",
		"CDN cache hit rate: 94%",
	}},
}

// ActivityFeed keeps the live activity ticker.
type ActivityFeed struct {
	Burst      int
	Gap        time.Duration
	Interval   time.Duration
	Limit      int
	Now        func() time.Time
	OnActivity func(Activity)

	mu      sync.RWMutex
	rand    *rand.Rand
	entries []Activity
}

// NewActivityFeed builds a feed from the activity fields of cfg.
func NewActivityFeed(cfg ProducerConfig, r *rand.Rand) *ActivityFeed {
	cfg = cfg.WithDefaults()
	return &ActivityFeed{
		Burst:    cfg.ActivityBurst,
		Gap:      cfg.ActivityGap,
		Interval: cfg.ActivityInterval,
		Limit:    cfg.ActivityLimit,
		rand:     r,
	}
}

// Generate records a new random entry and returns it.
func (f *ActivityFeed) Generate() Activity {
	f.mu.Lock()
	kind := activityKinds[f.rand.IntN(len(activityKinds))]
	entry := Activity{
		ID:        ulid.Make().String(),
		Type:      kind.kind,
		Message:   kind.messages[f.rand.IntN(len(kind.messages))],
		Severity:  kind.severity,
		Timestamp: f.now(),
	}
	f.entries = prepend(f.entries, entry, f.Limit)
	hook := f.OnActivity
	f.mu.Unlock()
	if hook != nil {
		hook(entry)
	}
	return entry
}

// Entries returns the retained entries, newest first.
func (f *ActivityFeed) Entries() []Activity {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.entries)
}

// Run emits Burst entries Gap apart, then one every Interval.
func (f *ActivityFeed) Run(ctx context.Context) error {
	for i := 0; i < f.Burst; i++ {
		if i > 0 {
			if err := sleep(ctx, f.Gap); err != nil {
				return err
			}
		}
		f.Generate()
	}
	return every(ctx, f.Interval, func(context.Context) { f.Generate() })
}

func (f *ActivityFeed) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

// prepend puts item first and keeps at most limit entries. The input slice is
// never written to.
func prepend[T any](items []T, item T, limit int) []T {
	n := len(items) + 1
	if limit > 0 && n > limit {
		n = limit
	}
	out := make([]T, 0, n)
	out = append(out, item)
	return append(out, items[:n-1]...)
}
