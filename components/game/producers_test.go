package game

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestNextStatsDeltaBounds(t *testing.T) {
	r := fixedRand()
	for i := 0; i < 1000; i++ {
		d := NextStatsDelta(r)
		if d.CPU < -CPUDrift || d.CPU > CPUDrift {
			t.Fatalf("cpu drift %f out of bounds", d.CPU)
		}
		if d.Memory < -MemoryDrift || d.Memory > MemoryDrift {
			t.Fatalf("memory drift %f out of bounds", d.Memory)
		}
		if d.Network < -NetworkDrift || d.Network > NetworkDrift {
			t.Fatalf("network drift %f out of bounds", d.Network)
		}
		if d.ActiveUsers < -UsersDrift || d.ActiveUsers >= UsersDrift {
			t.Fatalf("active users drift %d out of bounds", d.ActiveUsers)
		}
	}
}

func TestNextServerDeltasSkipsOffline(t *testing.T) {
	deltas := NextServerDeltas(fixedRand(), DefaultSeed().Servers)
	require.Len(t, deltas, 3)
	for _, d := range deltas {
		assert.NotEqual(t, "cache-01", d.ServerID)
	}
}

func TestProducerConfigDefaultsAndRand(t *testing.T) {
	cfg := ProducerConfig{StatsInterval: time.Millisecond}.WithDefaults()
	assert.Equal(t, time.Millisecond, cfg.StatsInterval)
	assert.Equal(t, 30*time.Second, cfg.NotifyInterval)
	assert.Equal(t, 5, cfg.ThreatLimit)

	seeded := ProducerConfig{Seed: 42}
	assert.Equal(t, seeded.Rand(1).Uint64(), seeded.Rand(1).Uint64())
	assert.NotEqual(t, seeded.Rand(1).Uint64(), seeded.Rand(2).Uint64())
}

func TestRunnerDrivesStatsProducer(t *testing.T) {
	store := NewStore(Options{})
	runner := NewRunner(nil)
	runner.Start(context.Background(),
		&StatsProducer{Store: store, Rand: fixedRand(), Interval: 2 * time.Millisecond},
		&ServerMetricsProducer{Store: store, Rand: fixedRand(), Interval: 2 * time.Millisecond},
		nil,
	)
	require.Eventually(t, func() bool { return store.Version() >= 4 }, time.Second, time.Millisecond)
	runner.Stop()

	stopped := store.Version()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, stopped, store.Version())
	assert.Equal(t, 0.0, store.GetState().Servers[3].CPU)
	runner.Stop()
}

func TestRunnerStartTwiceIsNoop(t *testing.T) {
	runner := NewRunner(nil)
	var mu sync.Mutex
	runs := 0
	producer := ProducerFunc(func(ctx context.Context) error {
		mu.Lock()
		runs++
		mu.Unlock()
		<-ctx.Done()
		return ctx.Err()
	})
	runner.Start(context.Background(), producer)
	runner.Start(context.Background(), producer)
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return runs == 1
	}, time.Second, time.Millisecond)
	runner.Stop()
	mu.Lock()
	assert.Equal(t, 1, runs)
	mu.Unlock()
}

func TestEventNotifierNext(t *testing.T) {
	at := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)
	notifier := &EventNotifier{
		Rand:     fixedRand(),
		Duration: 4 * time.Second,
		Now:      func() time.Time { return at },
	}
	n := notifier.Next()
	assert.Equal(t, NotificationTitle, n.Title)
	assert.Contains(t, EventMessages, n.Message)
	assert.Equal(t, 4*time.Second, n.Duration)
	assert.Equal(t, at, n.At)
}

func TestEventNotifierRunNotifies(t *testing.T) {
	got := make(chan Notification, 4)
	notifier := &EventNotifier{
		Notifier: NotifierFunc(func(_ context.Context, n Notification) error {
			select {
			case got <- n:
			default:
			}
			return nil
		}),
		Rand:     fixedRand(),
		Interval: time.Millisecond,
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- notifier.Run(ctx) }()

	select {
	case n := <-got:
		assert.Contains(t, EventMessages, n.Message)
	case <-time.After(time.Second):
		t.Fatalf("no notification emitted")
	}
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type stubSource struct {
	data AnalyticsData
	err  error
}

func (s stubSource) FetchWeek(context.Context) (AnalyticsData, error) {
	return s.data, s.err
}

func TestAnalyticsProducerRefresh(t *testing.T) {
	store := NewStore(Options{})
	data := AnalyticsData{DailyUsers: []DailyUsers{{Date: "Mon", Users: 7}}}
	producer := &AnalyticsProducer{Store: store, Source: stubSource{data: data}}
	require.NoError(t, producer.Refresh(context.Background()))
	assert.Equal(t, data.DailyUsers, store.GetState().Analytics.DailyUsers)
	assert.Empty(t, store.GetState().Analytics.Revenue)

	failing := &AnalyticsProducer{Store: store, Source: stubSource{err: errors.New("offline")}}
	require.Error(t, failing.Refresh(context.Background()))
	assert.Equal(t, uint64(1), store.Version())
}
