package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/creator-studio/internal/types"
)

type fakeStore struct {
	creators   map[uuid.UUID]*types.Creator
	style      map[uuid.UUID][]types.StyleExample
	responses  map[uuid.UUID][]types.ResponseExample
	profiles   map[uuid.UUID]bool
	bulkErr    error
	lookupErr  error
	bulkCalled int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		creators:  map[uuid.UUID]*types.Creator{},
		style:     map[uuid.UUID][]types.StyleExample{},
		responses: map[uuid.UUID][]types.ResponseExample{},
		profiles:  map[uuid.UUID]bool{},
	}
}

func (f *fakeStore) GetCreator(_ context.Context, id uuid.UUID) (*types.Creator, error) {
	return f.creators[id], nil
}

func (f *fakeStore) GetCreatorsByIDs(_ context.Context, ids []uuid.UUID) ([]types.Creator, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	var out []types.Creator
	for _, id := range ids {
		if c := f.creators[id]; c != nil {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAllStyleExamples(_ context.Context, creatorID uuid.UUID) ([]types.StyleExample, error) {
	return f.style[creatorID], nil
}

func (f *fakeStore) ListResponseExamples(_ context.Context, creatorID uuid.UUID) ([]types.ResponseExample, error) {
	return f.responses[creatorID], nil
}

func (f *fakeStore) HasStyleProfile(_ context.Context, creatorID uuid.UUID) (bool, error) {
	return f.profiles[creatorID], nil
}

func (f *fakeStore) BulkCreatorStats(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*types.CreatorStatsSnapshot, error) {
	f.bulkCalled++
	if f.bulkErr != nil {
		return nil, f.bulkErr
	}
	snapshots := make(map[uuid.UUID]*types.CreatorStatsSnapshot)
	for _, id := range ids {
		creator := f.creators[id]
		if creator == nil {
			continue
		}
		snapshot := BuildSnapshot(creator, f.style[id], f.responses[id], f.profiles[id], DefaultRecentLimit)
		snapshot.RecentExamples = []types.RecentExample{}
		snapshots[id] = snapshot
	}
	return snapshots, nil
}

type memoryCache struct {
	entries map[uuid.UUID]*types.CreatorStatsSnapshot
	hits    int
}

func (c *memoryCache) Get(_ context.Context, id uuid.UUID) (*types.CreatorStatsSnapshot, bool) {
	s, ok := c.entries[id]
	if ok {
		c.hits++
	}
	return s, ok
}

func (c *memoryCache) Set(_ context.Context, id uuid.UUID, s *types.CreatorStatsSnapshot) {
	c.entries[id] = s
}

func (c *memoryCache) Invalidate(_ context.Context, id uuid.UUID) {
	delete(c.entries, id)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func seedCreator(store *fakeStore, name string) uuid.UUID {
	id := uuid.New()
	store.creators[id] = &types.Creator{ID: id, Name: name, IsActive: true}
	return id
}

func TestCreatorStatsCounts(t *testing.T) {
	store := newFakeStore()
	id := seedCreator(store, "Alex")

	now := time.Now()
	store.style[id] = []types.StyleExample{
		{ID: uuid.New(), CreatorID: id, FanMessage: "hi!", CreatorResponse: "hey!", Category: strPtr("Greeting"), CreatedAt: now.Add(-2 * time.Hour)},
		{ID: uuid.New(), CreatorID: id, FanMessage: "how are you?", CreatorResponse: "great!", Category: strPtr("Question"), CreatedAt: now.Add(-time.Hour)},
	}
	store.responses[id] = []types.ResponseExample{
		{
			ID: uuid.New(), CreatorID: id, FanMessage: "favorite color?", Category: strPtr("Question"),
			CreatedAt: now,
			Responses: []types.CandidateResponse{
				{ResponseText: "blue!", Ranking: intPtr(5)},
				{ResponseText: "probably blue", Ranking: intPtr(3)},
				{ResponseText: "hmm, blue?"},
			},
		},
	}

	snapshot, err := NewAggregator(store).CreatorStats(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, snapshot)

	assert.Equal(t, "Alex", snapshot.CreatorName)
	assert.Equal(t, 2, snapshot.StyleExamplesCount)
	assert.Equal(t, 1, snapshot.ResponseExamplesCount)
	assert.Equal(t, 3, snapshot.TotalIndividualResponses)
	assert.Equal(t, 3, snapshot.TotalExamples)
	assert.Equal(t, map[string]int{"Greeting": 1, "Question": 1}, snapshot.StyleCategories)
	assert.Equal(t, map[string]int{"Question": 1}, snapshot.ResponseCategories)
	assert.False(t, snapshot.HasStyleConfig)

	// newest first across both corpora
	require.Len(t, snapshot.RecentExamples, 3)
	assert.Equal(t, types.ExampleKindResponse, snapshot.RecentExamples[0].Kind)
	assert.Equal(t, "how are you?", snapshot.RecentExamples[1].FanMessage)
}

func TestCreatorStatsUnknownCreator(t *testing.T) {
	snapshot, err := NewAggregator(newFakeStore()).CreatorStats(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, snapshot)
}

func TestCreatorStatsUsesCache(t *testing.T) {
	store := newFakeStore()
	id := seedCreator(store, "Alex")
	cache := &memoryCache{entries: map[uuid.UUID]*types.CreatorStatsSnapshot{}}
	aggregator := NewAggregator(store, WithCache(cache))

	first, err := aggregator.CreatorStats(context.Background(), id)
	require.NoError(t, err)
	second, err := aggregator.CreatorStats(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, 1, cache.hits)
	assert.Same(t, first, second)

	aggregator.Invalidate(context.Background(), id)
	assert.Empty(t, cache.entries)
}

func TestBuildSnapshotRecentLimit(t *testing.T) {
	creator := &types.Creator{ID: uuid.New(), Name: "Alex"}
	var examples []types.StyleExample
	for i := 0; i < 10; i++ {
		examples = append(examples, types.StyleExample{
			ID:         uuid.New(),
			FanMessage: "msg",
			CreatedAt:  time.Now().Add(time.Duration(i) * time.Minute),
		})
	}

	snapshot := BuildSnapshot(creator, examples, nil, false, 4)
	assert.Len(t, snapshot.RecentExamples, 4)
}

func TestBulkStatsPrimaryPath(t *testing.T) {
	store := newFakeStore()
	id := seedCreator(store, "Alex")
	store.style[id] = []types.StyleExample{{ID: uuid.New(), CreatorID: id, FanMessage: "hi"}}

	snapshots := NewAggregator(store).BulkStats(context.Background(), []uuid.UUID{id})
	require.Contains(t, snapshots, id)
	assert.Equal(t, 1, snapshots[id].StyleExamplesCount)
}

func TestBulkStatsDegradesToZeroed(t *testing.T) {
	store := newFakeStore()
	id := seedCreator(store, "Alex")
	store.bulkErr = errors.New("aggregation backend down")

	snapshots := NewAggregator(store).BulkStats(context.Background(), []uuid.UUID{id})

	require.Contains(t, snapshots, id)
	assert.Equal(t, "Alex", snapshots[id].CreatorName)
	assert.Equal(t, 0, snapshots[id].TotalExamples)
	assert.NotNil(t, snapshots[id].StyleCategories)
	assert.False(t, snapshots[id].HasStyleConfig)
}

func TestBulkStatsNeverErrors(t *testing.T) {
	store := newFakeStore()
	store.bulkErr = errors.New("aggregation backend down")
	store.lookupErr = errors.New("registry down too")

	unknown := uuid.New()
	snapshots := NewAggregator(store).BulkStats(context.Background(), []uuid.UUID{unknown})

	require.Contains(t, snapshots, unknown)
	assert.Equal(t, "", snapshots[unknown].CreatorName)
	assert.Equal(t, 0, snapshots[unknown].TotalExamples)
}

func TestBulkStatsFillsMissingIDs(t *testing.T) {
	store := newFakeStore()
	known := seedCreator(store, "Alex")
	missing := uuid.New()

	snapshots := NewAggregator(store).BulkStats(context.Background(), []uuid.UUID{known, missing})

	require.Len(t, snapshots, 2)
	assert.Equal(t, "Alex", snapshots[known].CreatorName)
	assert.Equal(t, 0, snapshots[missing].TotalExamples)
}
