package stats

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/creator-studio/internal/types"
)

// Store is the corpus access the aggregator needs. *db.DB satisfies this.
type Store interface {
	GetCreator(ctx context.Context, id uuid.UUID) (*types.Creator, error)
	GetCreatorsByIDs(ctx context.Context, ids []uuid.UUID) ([]types.Creator, error)
	ListAllStyleExamples(ctx context.Context, creatorID uuid.UUID) ([]types.StyleExample, error)
	ListResponseExamples(ctx context.Context, creatorID uuid.UUID) ([]types.ResponseExample, error)
	HasStyleProfile(ctx context.Context, creatorID uuid.UUID) (bool, error)
	BulkCreatorStats(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*types.CreatorStatsSnapshot, error)
}

// Aggregator computes creator statistics with a two-tier bulk strategy: the
// grouped query path first, zeroed snapshots when that path is unavailable.
type Aggregator struct {
	store       Store
	cache       SnapshotCache
	recentLimit int
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithCache memoizes per-creator snapshots in the given cache.
func WithCache(cache SnapshotCache) Option {
	return func(a *Aggregator) { a.cache = cache }
}

// WithRecentLimit overrides how many recent examples snapshots carry.
func WithRecentLimit(limit int) Option {
	return func(a *Aggregator) { a.recentLimit = limit }
}

func NewAggregator(store Store, opts ...Option) *Aggregator {
	a := &Aggregator{store: store, recentLimit: DefaultRecentLimit}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CreatorStats computes the full snapshot for one creator, including the
// recent-example rollup. Returns nil for an unknown creator.
func (a *Aggregator) CreatorStats(ctx context.Context, creatorID uuid.UUID) (*types.CreatorStatsSnapshot, error) {
	if a.cache != nil {
		if snapshot, ok := a.cache.Get(ctx, creatorID); ok {
			return snapshot, nil
		}
	}

	creator, err := a.store.GetCreator(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load creator for stats: %w", err)
	}
	if creator == nil {
		return nil, nil
	}

	var (
		styleExamples    []types.StyleExample
		responseExamples []types.ResponseExample
		hasStyleConfig   bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		styleExamples, err = a.store.ListAllStyleExamples(gctx, creatorID)
		return err
	})
	g.Go(func() error {
		var err error
		responseExamples, err = a.store.ListResponseExamples(gctx, creatorID)
		return err
	})
	g.Go(func() error {
		var err error
		hasStyleConfig, err = a.store.HasStyleProfile(gctx, creatorID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute creator stats: %w", err)
	}

	snapshot := BuildSnapshot(creator, styleExamples, responseExamples, hasStyleConfig, a.recentLimit)
	if a.cache != nil {
		a.cache.Set(ctx, creatorID, snapshot)
	}
	return snapshot, nil
}

// BulkStats returns a snapshot for every requested creator id and never
// fails: when the grouped aggregation path is unavailable it degrades to
// zeroed snapshots (with names when the registry is still reachable), and an
// id the registry does not know still yields a zeroed entry.
func (a *Aggregator) BulkStats(ctx context.Context, ids []uuid.UUID) map[uuid.UUID]*types.CreatorStatsSnapshot {
	snapshots, err := a.store.BulkCreatorStats(ctx, ids)
	if err != nil {
		log.Printf("bulk stats degraded to zeroed snapshots: %v", err)
		snapshots = a.zeroedSnapshots(ctx, ids)
	}

	for _, id := range ids {
		if _, ok := snapshots[id]; !ok {
			snapshots[id] = types.ZeroStatsSnapshot(id, "")
		}
	}
	return snapshots
}

// zeroedSnapshots is the degradation tier: defaulted counts, with creator
// names filled in when the registry lookup still works.
func (a *Aggregator) zeroedSnapshots(ctx context.Context, ids []uuid.UUID) map[uuid.UUID]*types.CreatorStatsSnapshot {
	snapshots := make(map[uuid.UUID]*types.CreatorStatsSnapshot, len(ids))

	names := make(map[uuid.UUID]string, len(ids))
	creators, err := a.store.GetCreatorsByIDs(ctx, ids)
	if err != nil {
		log.Printf("bulk stats name lookup unavailable: %v", err)
	} else {
		for _, creator := range creators {
			names[creator.ID] = creator.Name
		}
	}

	for _, id := range ids {
		snapshots[id] = types.ZeroStatsSnapshot(id, names[id])
	}
	return snapshots
}

// Invalidate drops any cached snapshot for the creator. Call after corpus or
// profile mutations.
func (a *Aggregator) Invalidate(ctx context.Context, creatorID uuid.UUID) {
	if a.cache != nil {
		a.cache.Invalidate(ctx, creatorID)
	}
}
