package game

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

// Producer is a background source of actions or side-channel events. Run
// blocks until ctx is cancelled.
type Producer interface {
	Run(ctx context.Context) error
}

// ProducerFunc adapts a function into a Producer.
type ProducerFunc func(ctx context.Context) error

// Run calls f.
func (f ProducerFunc) Run(ctx context.Context) error { return f(ctx) }

// Dispatcher is the write side of a Store.
type Dispatcher interface {
	Dispatch(ctx context.Context, action Action) *State
}

// StateDispatcher reads and writes a Store.
type StateDispatcher interface {
	Dispatcher
	GetState() *State
}

// Notifier receives transient notifications that never enter the state tree.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NotifierFunc adapts a function into a Notifier.
type NotifierFunc func(ctx context.Context, n Notification) error

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, n Notification) error { return f(ctx, n) }

// AnalyticsSource supplies fresh analytics data.
type AnalyticsSource interface {
	FetchWeek(ctx context.Context) (AnalyticsData, error)
}

// Drift bounds. Each value is the half-width of the uniform step.
const (
	CPUDrift     = 5.0
	MemoryDrift  = 4.0
	NetworkDrift = 7.5
	UsersDrift   = 25
)

// NextStatsDelta draws one random walk step for UPDATE_SYSTEM_STATS.
func NextStatsDelta(r *rand.Rand) StatsDelta {
	return StatsDelta{
		CPU:         (r.Float64() - 0.5) * 2 * CPUDrift,
		Memory:      (r.Float64() - 0.5) * 2 * MemoryDrift,
		Network:     (r.Float64() - 0.5) * 2 * NetworkDrift,
		ActiveUsers: int(math.Floor((r.Float64() - 0.5) * 2 * UsersDrift)),
	}
}

// NextServerDeltas draws cpu and memory drift for every server that is not offline.
func NextServerDeltas(r *rand.Rand, servers []Server) []ServerDelta {
	out := make([]ServerDelta, 0, len(servers))
	for _, s := range servers {
		if s.Status == ServerOffline {
			continue
		}
		out = append(out, ServerDelta{
			ServerID: s.ID,
			CPU:      (r.Float64() - 0.5) * 2 * CPUDrift,
			Memory:   (r.Float64() - 0.5) * 2 * MemoryDrift,
		})
	}
	return out
}

// ProducerConfig sets the cadence of every background producer.
type ProducerConfig struct {
	StatsInterval        time.Duration `yaml:"stats_interval"`
	ServerInterval       time.Duration `yaml:"server_interval"`
	NotifyInterval       time.Duration `yaml:"notify_interval"`
	NotificationDuration time.Duration `yaml:"notification_duration"`
	ThreatDelay          time.Duration `yaml:"threat_delay"`
	ThreatInterval       time.Duration `yaml:"threat_interval"`
	ThreatChance         float64       `yaml:"threat_chance"`
	ThreatLimit          int           `yaml:"threat_limit"`
	ActivityGap          time.Duration `yaml:"activity_gap"`
	ActivityInterval     time.Duration `yaml:"activity_interval"`
	ActivityBurst        int           `yaml:"activity_burst"`
	ActivityLimit        int           `yaml:"activity_limit"`
	AnalyticsInterval    time.Duration `yaml:"analytics_interval"`
	Seed                 uint64        `yaml:"seed"`
}

// DefaultProducerConfig mirrors the cadence of the live dashboard.
func DefaultProducerConfig() ProducerConfig {
	return ProducerConfig{
		StatsInterval:        3 * time.Second,
		ServerInterval:       3 * time.Second,
		NotifyInterval:       30 * time.Second,
		NotificationDuration: 4 * time.Second,
		ThreatDelay:          2 * time.Second,
		ThreatInterval:       15 * time.Second,
		ThreatChance:         0.3,
		ThreatLimit:          5,
		ActivityGap:          time.Second,
		ActivityInterval:     8 * time.Second,
		ActivityBurst:        5,
		ActivityLimit:        10,
		AnalyticsInterval:    time.Minute,
	}
}

// WithDefaults fills zero fields from DefaultProducerConfig.
func (c ProducerConfig) WithDefaults() ProducerConfig {
	d := DefaultProducerConfig()
	if c.StatsInterval <= 0 {
		c.StatsInterval = d.StatsInterval
	}
	if c.ServerInterval <= 0 {
		c.ServerInterval = d.ServerInterval
	}
	if c.NotifyInterval <= 0 {
		c.NotifyInterval = d.NotifyInterval
	}
	if c.NotificationDuration <= 0 {
		c.NotificationDuration = d.NotificationDuration
	}
	if c.ThreatDelay <= 0 {
		c.ThreatDelay = d.ThreatDelay
	}
	if c.ThreatInterval <= 0 {
		c.ThreatInterval = d.ThreatInterval
	}
	if c.ThreatChance <= 0 {
		c.ThreatChance = d.ThreatChance
	}
	if c.ThreatLimit <= 0 {
		c.ThreatLimit = d.ThreatLimit
	}
	if c.ActivityGap <= 0 {
		c.ActivityGap = d.ActivityGap
	}
	if c.ActivityInterval <= 0 {
		c.ActivityInterval = d.ActivityInterval
	}
	if c.ActivityBurst <= 0 {
		c.ActivityBurst = d.ActivityBurst
	}
	if c.ActivityLimit <= 0 {
		c.ActivityLimit = d.ActivityLimit
	}
	if c.AnalyticsInterval <= 0 {
		c.AnalyticsInterval = d.AnalyticsInterval
	}
	return c
}

// Rand returns a generator for the n-th producer. A zero Seed draws from the
// runtime source.
func (c ProducerConfig) Rand(n uint64) *rand.Rand {
	if c.Seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(c.Seed, n))
}

// every calls fn on each tick until ctx is done. The ticker is always stopped.
func every(ctx context.Context, interval time.Duration, fn func(ctx context.Context)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			fn(ctx)
		}
	}
}

// sleep waits d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// StatsProducer drifts the system telemetry.
type StatsProducer struct {
	Store    Dispatcher
	Rand     *rand.Rand
	Interval time.Duration
}

// Run dispatches UPDATE_SYSTEM_STATS every Interval.
func (p *StatsProducer) Run(ctx context.Context) error {
	return every(ctx, p.Interval, func(ctx context.Context) {
		p.Store.Dispatch(ctx, UpdateSystemStats{Delta: NextStatsDelta(p.Rand)})
	})
}

// ServerMetricsProducer drifts the cpu and memory of running servers.
type ServerMetricsProducer struct {
	Store    StateDispatcher
	Rand     *rand.Rand
	Interval time.Duration
}

// Run dispatches UPDATE_SERVER_METRICS every Interval.
func (p *ServerMetricsProducer) Run(ctx context.Context) error {
	return every(ctx, p.Interval, func(ctx context.Context) {
		deltas := NextServerDeltas(p.Rand, p.Store.GetState().Servers)
		if len(deltas) == 0 {
			return
		}
		p.Store.Dispatch(ctx, UpdateServerMetrics{Deltas: deltas})
	})
}

// NotificationTitle heads every random game event notification.
const NotificationTitle = "🎮 Game Event"

// EventMessages is the pool random game events are drawn from.
var EventMessages = []string{
	"A wild bug appeared in the system!",
	"New user registered - XP bonus available!",
	"System performance optimized automatically!",
	"Guild member completed a legendary quest!",
}

// EventNotifier emits a random game event notification every Interval.
type EventNotifier struct {
	Notifier Notifier
	Rand     *rand.Rand
	Interval time.Duration
	Duration time.Duration
	Logger   *slog.Logger
	Now      func() time.Time
}

// Next builds one notification.
func (p *EventNotifier) Next() Notification {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	return Notification{
		Title:    NotificationTitle,
		Message:  EventMessages[p.Rand.IntN(len(EventMessages))],
		Duration: p.Duration,
		At:       now(),
	}
}

// Run emits notifications until ctx is cancelled.
func (p *EventNotifier) Run(ctx context.Context) error {
	return every(ctx, p.Interval, func(ctx context.Context) {
		if err := p.Notifier.Notify(ctx, p.Next()); err != nil && p.Logger != nil {
			p.Logger.Warn("notification dropped", "error", err)
		}
	})
}

// AnalyticsProducer periodically refreshes the analytics branch.
type AnalyticsProducer struct {
	Store    Dispatcher
	Source   AnalyticsSource
	Interval time.Duration
	Logger   *slog.Logger
}

// Refresh fetches once and dispatches REFRESH_ANALYTICS.
func (p *AnalyticsProducer) Refresh(ctx context.Context) error {
	data, err := p.Source.FetchWeek(ctx)
	if err != nil {
		return err
	}
	p.Store.Dispatch(ctx, RefreshAnalytics{Data: data})
	return nil
}

// Run refreshes every Interval. Fetch errors are logged and retried on the
// next tick.
func (p *AnalyticsProducer) Run(ctx context.Context) error {
	return every(ctx, p.Interval, func(ctx context.Context) {
		if err := p.Refresh(ctx); err != nil && p.Logger != nil && ctx.Err() == nil {
			p.Logger.Warn("analytics refresh failed", "error", err)
		}
	})
}

// Runner owns a set of producers and their lifecycle.
type Runner struct {
	logger *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRunner builds a Runner. A nil logger uses slog.Default.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger}
}

// Start launches every producer in its own goroutine. Calling Start again
// before Stop is a no-op.
func (r *Runner) Start(ctx context.Context, producers ...Producer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}
	ctx, r.cancel = context.WithCancel(ctx)
	for _, p := range producers {
		if p == nil {
			continue
		}
		r.wg.Add(1)
		go func(p Producer) {
			defer r.wg.Done()
			if err := p.Run(ctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
				r.logger.Error("producer stopped", "error", err)
			}
		}(p)
	}
}

// Stop cancels every producer and waits for them to return.
func (r *Runner) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	r.wg.Wait()
}
