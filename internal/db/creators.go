package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/creator-studio/internal/types"
)

const creatorColumns = "id, name, description, avatar_ref, is_active, created_at, updated_at"

// CreatorFilters holds the search, status, and paging inputs for listing creators.
type CreatorFilters struct {
	Search string
	Status string // all, active, inactive
	Skip   int
	Limit  int
}

func scanCreator(row pgx.Row) (*types.Creator, error) {
	var c types.Creator
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.AvatarRef, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCreator registers a new creator. Active defaults to true when the
// request leaves it unset.
func (db *DB) CreateCreator(ctx context.Context, req *types.CreateCreatorRequest) (*types.Creator, error) {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO creators (name, description, avatar_ref, is_active)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+creatorColumns,
		req.Name, req.Description, req.AvatarRef, active,
	)
	creator, err := scanCreator(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create creator: %w", err)
	}
	return creator, nil
}

// GetCreator retrieves a creator by ID. Returns nil when absent.
func (db *DB) GetCreator(ctx context.Context, id uuid.UUID) (*types.Creator, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+creatorColumns+` FROM creators WHERE id = $1`, id)
	creator, err := scanCreator(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get creator: %w", err)
	}
	return creator, nil
}

// GetCreatorsByIDs retrieves the creators whose IDs are in ids. Missing IDs
// are simply absent from the result.
func (db *DB) GetCreatorsByIDs(ctx context.Context, ids []uuid.UUID) ([]types.Creator, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+creatorColumns+` FROM creators WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get creators: %w", err)
	}
	defer rows.Close()

	var creators []types.Creator
	for rows.Next() {
		var c types.Creator
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.AvatarRef, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan creator: %w", err)
		}
		creators = append(creators, c)
	}
	return creators, nil
}

// ListCreators retrieves creators matching the filters plus the total count
// of matches. Search is a case-insensitive substring match over name or
// description; paging is server-driven.
func (db *DB) ListCreators(ctx context.Context, filters CreatorFilters) ([]types.Creator, int, error) {
	where := "WHERE 1=1"
	args := []any{}
	argNum := 1

	if filters.Search != "" {
		where += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", argNum, argNum)
		args = append(args, "%"+escapeLike(filters.Search)+"%")
		argNum++
	}
	switch filters.Status {
	case types.StatusActive:
		where += " AND is_active"
	case types.StatusInactive:
		where += " AND NOT is_active"
	}

	var total int
	if err := db.pool.QueryRow(ctx, "SELECT COUNT(*) FROM creators "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count creators: %w", err)
	}

	query := fmt.Sprintf("SELECT %s FROM creators %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		creatorColumns, where, argNum, argNum+1)
	args = append(args, filters.Limit, filters.Skip)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list creators: %w", err)
	}
	defer rows.Close()

	var creators []types.Creator
	for rows.Next() {
		var c types.Creator
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.AvatarRef, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan creator: %w", err)
		}
		creators = append(creators, c)
	}
	return creators, total, nil
}

// UpdateCreator merges only the provided fields into an existing creator.
// Returns nil when the creator does not exist.
func (db *DB) UpdateCreator(ctx context.Context, id uuid.UUID, req *types.UpdateCreatorRequest) (*types.Creator, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{}
	argNum := 1

	if req.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argNum))
		args = append(args, *req.Name)
		argNum++
	}
	if req.Description != nil {
		sets = append(sets, fmt.Sprintf("description = $%d", argNum))
		args = append(args, *req.Description)
		argNum++
	}
	if req.AvatarRef != nil {
		sets = append(sets, fmt.Sprintf("avatar_ref = $%d", argNum))
		args = append(args, *req.AvatarRef)
		argNum++
	}
	if req.IsActive != nil {
		sets = append(sets, fmt.Sprintf("is_active = $%d", argNum))
		args = append(args, *req.IsActive)
		argNum++
	}

	query := fmt.Sprintf("UPDATE creators SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), argNum, creatorColumns)
	args = append(args, id)

	creator, err := scanCreator(db.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update creator: %w", err)
	}
	return creator, nil
}

// SetCreatorActive sets the activation flag. Setting the current value again
// is a no-op success, so the call is idempotent.
func (db *DB) SetCreatorActive(ctx context.Context, id uuid.UUID, active bool) (*types.Creator, error) {
	row := db.pool.QueryRow(ctx,
		`UPDATE creators
		 SET is_active = $1, updated_at = CASE WHEN is_active = $1 THEN updated_at ELSE NOW() END
		 WHERE id = $2
		 RETURNING `+creatorColumns,
		active, id,
	)
	creator, err := scanCreator(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to set creator active: %w", err)
	}
	return creator, nil
}

// DeleteCreator removes a creator together with its style profile and every
// example in both corpora, in one transaction so no orphans can remain.
// Returns false when the creator does not exist.
func (db *DB) DeleteCreator(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && rErr != pgx.ErrTxClosed {
			_ = rErr
		}
	}()

	// The schema's ON DELETE CASCADE would cover these, but the explicit
	// deletes keep the cascade contract visible and testable here.
	if _, err := tx.Exec(ctx,
		`DELETE FROM candidate_responses
		 WHERE example_id IN (SELECT id FROM response_examples WHERE creator_id = $1)`, id); err != nil {
		return false, fmt.Errorf("failed to delete candidate responses: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM response_examples WHERE creator_id = $1`, id); err != nil {
		return false, fmt.Errorf("failed to delete response examples: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM style_examples WHERE creator_id = $1`, id); err != nil {
		return false, fmt.Errorf("failed to delete style examples: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM style_profiles WHERE creator_id = $1`, id); err != nil {
		return false, fmt.Errorf("failed to delete style profile: %w", err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM creators WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete creator: %w", err)
	}
	if result.RowsAffected() == 0 {
		return false, nil
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit creator delete: %w", err)
	}
	return true, nil
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
