package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/creator-studio/internal/types"
)

// BulkCreatorStats computes count rollups for many creators in three
// queries. It is the primary tier of the statistics aggregator; recent
// examples are omitted here and only populated by per-creator stats.
func (db *DB) BulkCreatorStats(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*types.CreatorStatsSnapshot, error) {
	snapshots := make(map[uuid.UUID]*types.CreatorStatsSnapshot, len(ids))

	rows, err := db.pool.Query(ctx,
		`SELECT c.id, c.name,
		        (SELECT COUNT(*) FROM style_examples se WHERE se.creator_id = c.id),
		        (SELECT COUNT(*) FROM response_examples re WHERE re.creator_id = c.id),
		        (SELECT COUNT(*)
		           FROM candidate_responses cr
		           JOIN response_examples re ON re.id = cr.example_id
		          WHERE re.creator_id = c.id),
		        EXISTS (SELECT 1 FROM style_profiles sp WHERE sp.creator_id = c.id)
		 FROM creators c WHERE c.id = ANY($1)`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute bulk stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var name string
		var styleCount, responseCount, individualResponses int
		var hasConfig bool
		if err := rows.Scan(&id, &name, &styleCount, &responseCount, &individualResponses, &hasConfig); err != nil {
			return nil, fmt.Errorf("failed to scan bulk stats row: %w", err)
		}

		s := types.ZeroStatsSnapshot(id, name)
		s.StyleExamplesCount = styleCount
		s.ResponseExamplesCount = responseCount
		s.TotalIndividualResponses = individualResponses
		s.TotalExamples = styleCount + responseCount
		s.HasStyleConfig = hasConfig
		snapshots[id] = s
	}
	rows.Close()

	if err := db.fillCategoryCounts(ctx, ids, "style_examples", snapshots, func(s *types.CreatorStatsSnapshot) map[string]int {
		return s.StyleCategories
	}); err != nil {
		return nil, err
	}
	if err := db.fillCategoryCounts(ctx, ids, "response_examples", snapshots, func(s *types.CreatorStatsSnapshot) map[string]int {
		return s.ResponseCategories
	}); err != nil {
		return nil, err
	}

	return snapshots, nil
}

// fillCategoryCounts populates one corpus's category breakdown across all
// requested creators with a single grouped query.
func (db *DB) fillCategoryCounts(ctx context.Context, ids []uuid.UUID, table string, snapshots map[uuid.UUID]*types.CreatorStatsSnapshot, pick func(*types.CreatorStatsSnapshot) map[string]int) error {
	rows, err := db.pool.Query(ctx,
		fmt.Sprintf(`SELECT creator_id, category, COUNT(*)
		 FROM %s
		 WHERE creator_id = ANY($1) AND category IS NOT NULL
		 GROUP BY creator_id, category`, table),
		ids,
	)
	if err != nil {
		return fmt.Errorf("failed to compute %s category counts: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var creatorID uuid.UUID
		var category string
		var count int
		if err := rows.Scan(&creatorID, &category, &count); err != nil {
			return fmt.Errorf("failed to scan category count: %w", err)
		}
		if s, ok := snapshots[creatorID]; ok {
			pick(s)[category] = count
		}
	}
	return nil
}
