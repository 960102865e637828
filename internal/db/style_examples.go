package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/creator-studio/internal/types"
)

const styleExampleColumns = "id, creator_id, fan_message, creator_response, category, created_at, updated_at"

// ExampleFilters holds the shared search, category, and paging inputs for
// listing either example corpus.
type ExampleFilters struct {
	Search   string
	Category string // a closed-enum member, or "all"
	Skip     int
	Limit    int
}

func scanStyleExample(row pgx.Row) (*types.StyleExample, error) {
	var e types.StyleExample
	err := row.Scan(&e.ID, &e.CreatorID, &e.FanMessage, &e.CreatorResponse, &e.Category, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateStyleExample adds one style example to a creator's corpus.
func (db *DB) CreateStyleExample(ctx context.Context, creatorID uuid.UUID, req *types.CreateStyleExampleRequest) (*types.StyleExample, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO style_examples (creator_id, fan_message, creator_response, category)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+styleExampleColumns,
		creatorID, req.FanMessage, req.CreatorResponse, req.Category,
	)
	example, err := scanStyleExample(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create style example: %w", err)
	}
	return example, nil
}

// GetStyleExample retrieves one style example by ID. Returns nil when absent.
func (db *DB) GetStyleExample(ctx context.Context, id uuid.UUID) (*types.StyleExample, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+styleExampleColumns+` FROM style_examples WHERE id = $1`, id)
	example, err := scanStyleExample(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get style example: %w", err)
	}
	return example, nil
}

// UpdateStyleExample merges only the provided fields. Returns nil when the
// example does not exist.
func (db *DB) UpdateStyleExample(ctx context.Context, id uuid.UUID, req *types.UpdateStyleExampleRequest) (*types.StyleExample, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{}
	argNum := 1

	if req.FanMessage != nil {
		sets = append(sets, fmt.Sprintf("fan_message = $%d", argNum))
		args = append(args, *req.FanMessage)
		argNum++
	}
	if req.CreatorResponse != nil {
		sets = append(sets, fmt.Sprintf("creator_response = $%d", argNum))
		args = append(args, *req.CreatorResponse)
		argNum++
	}
	if req.Category != nil {
		sets = append(sets, fmt.Sprintf("category = $%d", argNum))
		args = append(args, *req.Category)
		argNum++
	}

	query := fmt.Sprintf("UPDATE style_examples SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), argNum, styleExampleColumns)
	args = append(args, id)

	example, err := scanStyleExample(db.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update style example: %w", err)
	}
	return example, nil
}

// DeleteStyleExample removes one style example. Returns false when absent.
func (db *DB) DeleteStyleExample(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx, `DELETE FROM style_examples WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete style example: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// ListStyleExamples retrieves a creator's style examples matching the
// filters plus the total match count. Unlike the ranked corpus, paging here
// is server-driven: skip and limit are passed through to the query.
func (db *DB) ListStyleExamples(ctx context.Context, creatorID uuid.UUID, filters ExampleFilters) ([]types.StyleExample, int, error) {
	where := "WHERE creator_id = $1"
	args := []any{creatorID}
	argNum := 2

	if filters.Search != "" {
		where += fmt.Sprintf(" AND (fan_message ILIKE $%d OR creator_response ILIKE $%d)", argNum, argNum)
		args = append(args, "%"+escapeLike(filters.Search)+"%")
		argNum++
	}
	if filters.Category != "" && filters.Category != types.CategoryAll {
		where += fmt.Sprintf(" AND category = $%d", argNum)
		args = append(args, filters.Category)
		argNum++
	}

	var total int
	if err := db.pool.QueryRow(ctx, "SELECT COUNT(*) FROM style_examples "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count style examples: %w", err)
	}

	query := fmt.Sprintf("SELECT %s FROM style_examples %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		styleExampleColumns, where, argNum, argNum+1)
	args = append(args, filters.Limit, filters.Skip)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list style examples: %w", err)
	}
	defer rows.Close()

	var examples []types.StyleExample
	for rows.Next() {
		var e types.StyleExample
		if err := rows.Scan(&e.ID, &e.CreatorID, &e.FanMessage, &e.CreatorResponse, &e.Category, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan style example: %w", err)
		}
		examples = append(examples, e)
	}
	return examples, total, nil
}

// ListAllStyleExamples retrieves a creator's entire style corpus, newest
// first. Used by stats aggregation and bulk export.
func (db *DB) ListAllStyleExamples(ctx context.Context, creatorID uuid.UUID) ([]types.StyleExample, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+styleExampleColumns+` FROM style_examples WHERE creator_id = $1 ORDER BY created_at DESC`,
		creatorID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list style examples: %w", err)
	}
	defer rows.Close()

	var examples []types.StyleExample
	for rows.Next() {
		var e types.StyleExample
		if err := rows.Scan(&e.ID, &e.CreatorID, &e.FanMessage, &e.CreatorResponse, &e.Category, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan style example: %w", err)
		}
		examples = append(examples, e)
	}
	return examples, nil
}
