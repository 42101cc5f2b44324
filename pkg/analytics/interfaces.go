package analytics

import (
	"context"

	"github.com/goliatone/go-gamedash/components/game"
)

// Client fetches the week of analytics shown in the data realm.
type Client interface {
	FetchWeek(ctx context.Context) (game.AnalyticsData, error)
}

var (
	_ game.AnalyticsSource = (*MockClient)(nil)
	_ game.AnalyticsSource = (*HTTPClient)(nil)
)
