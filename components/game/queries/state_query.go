package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-gamedash/components/game"
)

type stateReader interface {
	GetState() *game.State
}

// StateInput requests the current snapshot.
type StateInput struct{}

// StateQuery returns the current snapshot.
type StateQuery struct {
	store stateReader
}

// NewStateQuery builds the query.
func NewStateQuery(store stateReader) *StateQuery {
	return &StateQuery{store: store}
}

var _ gocommand.Querier[StateInput, *game.State] = (*StateQuery)(nil)

// Query reads the store.
func (q *StateQuery) Query(ctx context.Context, _ StateInput) (*game.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return q.store.GetState(), nil
}

// OverviewInput requests the derived header values.
type OverviewInput struct{}

// OverviewQuery recomputes game.Overview from the current snapshot.
type OverviewQuery struct {
	store stateReader
}

// NewOverviewQuery builds the query.
func NewOverviewQuery(store stateReader) *OverviewQuery {
	return &OverviewQuery{store: store}
}

var _ gocommand.Querier[OverviewInput, game.Overview] = (*OverviewQuery)(nil)

func (q *OverviewQuery) Query(ctx context.Context, _ OverviewInput) (game.Overview, error) {
	if err := ctx.Err(); err != nil {
		return game.Overview{}, err
	}
	return game.BuildOverview(q.store.GetState()), nil
}
