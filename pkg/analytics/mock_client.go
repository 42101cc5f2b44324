package analytics

import (
	"context"
	"math"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/goliatone/go-gamedash/components/game"
)

// DefaultJitter is the relative swing applied to each mock data point.
const DefaultJitter = 0.1

// MockData seeds the mock client. A zero Jitter uses DefaultJitter; a
// negative one returns Base unchanged.
type MockData struct {
	Base   game.AnalyticsData
	Jitter float64
	Seed   uint64
}

// MockClient implements Client by jittering a fixed week of data.
type MockClient struct {
	data MockData
	mu   sync.Mutex
	rand *rand.Rand
}

// NewMockClient builds a mock analytics client. An empty Base uses the default
// seed analytics.
func NewMockClient(data MockData) *MockClient {
	if len(data.Base.DailyUsers) == 0 && len(data.Base.Revenue) == 0 && len(data.Base.Performance) == 0 {
		data.Base = game.DefaultSeed().Analytics
	}
	if data.Jitter == 0 {
		data.Jitter = DefaultJitter
	}
	seed := data.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &MockClient{data: data, rand: rand.New(rand.NewPCG(seed, seed>>1|1))}
}

// FetchWeek returns a fresh copy of the base week with every value jittered.
func (c *MockClient) FetchWeek(ctx context.Context) (game.AnalyticsData, error) {
	if err := ctx.Err(); err != nil {
		return game.AnalyticsData{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := game.AnalyticsData{
		DailyUsers:  slices.Clone(c.data.Base.DailyUsers),
		Revenue:     slices.Clone(c.data.Base.Revenue),
		Performance: slices.Clone(c.data.Base.Performance),
	}
	if c.data.Jitter < 0 {
		return out, nil
	}
	for i := range out.DailyUsers {
		out.DailyUsers[i].Users = int(math.Round(c.jitter(float64(out.DailyUsers[i].Users))))
	}
	for i := range out.Revenue {
		out.Revenue[i].Amount = math.Round(c.jitter(out.Revenue[i].Amount))
	}
	for i := range out.Performance {
		out.Performance[i].Value = c.jitter(out.Performance[i].Value)
	}
	return out, nil
}

func (c *MockClient) jitter(v float64) float64 {
	return v * (1 + (c.rand.Float64()*2-1)*c.data.Jitter)
}
