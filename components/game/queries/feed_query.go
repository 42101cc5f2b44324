package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-gamedash/components/game"
)

type threatSource interface {
	Threats() []game.Threat
}

type activitySource interface {
	Entries() []game.Activity
}

// FeedInput caps each list. Zero returns everything retained.
type FeedInput struct {
	Limit int `json:"limit"`
}

// Feed is the security and activity sidebar.
type Feed struct {
	Threats  []game.Threat   `json:"threats"`
	Activity []game.Activity `json:"activity"`
}

// FeedQuery reads the side-channel feeds kept outside the store.
type FeedQuery struct {
	threats  threatSource
	activity activitySource
}

// NewFeedQuery builds the query. Either source may be nil.
func NewFeedQuery(threats threatSource, activity activitySource) *FeedQuery {
	return &FeedQuery{threats: threats, activity: activity}
}

var _ gocommand.Querier[FeedInput, Feed] = (*FeedQuery)(nil)

// Query snapshots both feeds, newest first.
func (q *FeedQuery) Query(ctx context.Context, input FeedInput) (Feed, error) {
	if err := ctx.Err(); err != nil {
		return Feed{}, err
	}
	feed := Feed{Threats: []game.Threat{}, Activity: []game.Activity{}}
	if q.threats != nil {
		feed.Threats = limit(q.threats.Threats(), input.Limit)
	}
	if q.activity != nil {
		feed.Activity = limit(q.activity.Entries(), input.Limit)
	}
	return feed, nil
}

func limit[T any](items []T, n int) []T {
	if items == nil {
		return []T{}
	}
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
