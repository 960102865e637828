package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/creator-studio/internal/types"
)

const responseExampleColumns = "id, creator_id, fan_message, category, created_at, updated_at"
const candidateColumns = "id, example_id, response_text, ranking, position, created_at"

// CreateResponseExample adds one response example with its candidates in a
// single transaction. A nil ranking defaults to types.RankingDefault;
// position records insertion order.
func (db *DB) CreateResponseExample(ctx context.Context, creatorID uuid.UUID, req *types.CreateResponseExampleRequest) (*types.ResponseExample, error) {
	return db.createResponseExample(ctx, creatorID, req, true)
}

// ImportResponseExample is the CSV import commit path. Unlike
// CreateResponseExample it keeps nil rankings nil, so an empty ranking field
// survives an export/import round trip.
func (db *DB) ImportResponseExample(ctx context.Context, creatorID uuid.UUID, req *types.CreateResponseExampleRequest) (*types.ResponseExample, error) {
	return db.createResponseExample(ctx, creatorID, req, false)
}

func (db *DB) createResponseExample(ctx context.Context, creatorID uuid.UUID, req *types.CreateResponseExampleRequest, defaultNilRanking bool) (*types.ResponseExample, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && rErr != pgx.ErrTxClosed {
			_ = rErr
		}
	}()

	var e types.ResponseExample
	err = tx.QueryRow(ctx,
		`INSERT INTO response_examples (creator_id, fan_message, category)
		 VALUES ($1, $2, $3)
		 RETURNING `+responseExampleColumns,
		creatorID, req.FanMessage, req.Category,
	).Scan(&e.ID, &e.CreatorID, &e.FanMessage, &e.Category, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create response example: %w", err)
	}

	e.Responses, err = insertCandidates(ctx, tx, e.ID, req.Responses, defaultNilRanking)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit response example: %w", err)
	}
	types.SortCandidateResponses(e.Responses)
	return &e, nil
}

// insertCandidates writes the candidate set for an example inside tx,
// assigning positions in input order. Nil rankings are defaulted only when
// defaultNil is set; the import path keeps them nil.
func insertCandidates(ctx context.Context, tx pgx.Tx, exampleID uuid.UUID, inputs []types.CandidateResponseInput, defaultNil bool) ([]types.CandidateResponse, error) {
	candidates := make([]types.CandidateResponse, 0, len(inputs))
	for position, input := range inputs {
		ranking := input.Ranking
		if ranking == nil && defaultNil {
			def := types.RankingDefault
			ranking = &def
		}

		var c types.CandidateResponse
		err := tx.QueryRow(ctx,
			`INSERT INTO candidate_responses (example_id, response_text, ranking, position)
			 VALUES ($1, $2, $3, $4)
			 RETURNING `+candidateColumns,
			exampleID, input.ResponseText, ranking, position,
		).Scan(&c.ID, &c.ExampleID, &c.ResponseText, &c.Ranking, &c.Position, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to create candidate response: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// GetResponseExample retrieves one response example with its candidates in
// display order. Returns nil when absent.
func (db *DB) GetResponseExample(ctx context.Context, id uuid.UUID) (*types.ResponseExample, error) {
	var e types.ResponseExample
	err := db.pool.QueryRow(ctx,
		`SELECT `+responseExampleColumns+` FROM response_examples WHERE id = $1`, id,
	).Scan(&e.ID, &e.CreatorID, &e.FanMessage, &e.Category, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get response example: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+candidateColumns+` FROM candidate_responses WHERE example_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate responses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c types.CandidateResponse
		if err := rows.Scan(&c.ID, &c.ExampleID, &c.ResponseText, &c.Ranking, &c.Position, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate response: %w", err)
		}
		e.Responses = append(e.Responses, c)
	}
	types.SortCandidateResponses(e.Responses)
	return &e, nil
}

// UpdateResponseExample merges provided fields; a non-nil Responses slice
// replaces the entire candidate set transactionally. Returns nil when the
// example does not exist.
func (db *DB) UpdateResponseExample(ctx context.Context, id uuid.UUID, req *types.UpdateResponseExampleRequest) (*types.ResponseExample, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && rErr != pgx.ErrTxClosed {
			_ = rErr
		}
	}()

	fanMessage := req.FanMessage
	category := req.Category

	var e types.ResponseExample
	err = tx.QueryRow(ctx,
		`UPDATE response_examples SET
		     fan_message = COALESCE($1, fan_message),
		     category = COALESCE($2, category),
		     updated_at = NOW()
		 WHERE id = $3
		 RETURNING `+responseExampleColumns,
		fanMessage, category, id,
	).Scan(&e.ID, &e.CreatorID, &e.FanMessage, &e.Category, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update response example: %w", err)
	}

	if req.Responses != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM candidate_responses WHERE example_id = $1`, id); err != nil {
			return nil, fmt.Errorf("failed to clear candidate responses: %w", err)
		}
		e.Responses, err = insertCandidates(ctx, tx, id, req.Responses, true)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit response example update: %w", err)
	}

	if req.Responses == nil {
		return db.GetResponseExample(ctx, id)
	}
	types.SortCandidateResponses(e.Responses)
	return &e, nil
}

// DeleteResponseExample removes one response example and all its candidate
// responses. Returns false when absent.
func (db *DB) DeleteResponseExample(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && rErr != pgx.ErrTxClosed {
			_ = rErr
		}
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM candidate_responses WHERE example_id = $1`, id); err != nil {
		return false, fmt.Errorf("failed to delete candidate responses: %w", err)
	}
	result, err := tx.Exec(ctx, `DELETE FROM response_examples WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete response example: %w", err)
	}
	if result.RowsAffected() == 0 {
		return false, nil
	}
	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit response example delete: %w", err)
	}
	return true, nil
}

// ListResponseExamples retrieves a creator's entire ranked corpus with
// candidates, newest first. Search and category filtering plus paging happen
// in memory on top of this full result set (see internal/query), a
// documented scalability tradeoff for this corpus.
func (db *DB) ListResponseExamples(ctx context.Context, creatorID uuid.UUID) ([]types.ResponseExample, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+responseExampleColumns+` FROM response_examples
		 WHERE creator_id = $1 ORDER BY created_at DESC`,
		creatorID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list response examples: %w", err)
	}
	defer rows.Close()

	var examples []types.ResponseExample
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var e types.ResponseExample
		if err := rows.Scan(&e.ID, &e.CreatorID, &e.FanMessage, &e.Category, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan response example: %w", err)
		}
		index[e.ID] = len(examples)
		examples = append(examples, e)
	}
	rows.Close()

	if len(examples) == 0 {
		return examples, nil
	}

	crows, err := db.pool.Query(ctx,
		`SELECT cr.id, cr.example_id, cr.response_text, cr.ranking, cr.position, cr.created_at
		 FROM candidate_responses cr
		 JOIN response_examples re ON re.id = cr.example_id
		 WHERE re.creator_id = $1
		 ORDER BY cr.example_id, cr.position`,
		creatorID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate responses: %w", err)
	}
	defer crows.Close()

	for crows.Next() {
		var c types.CandidateResponse
		if err := crows.Scan(&c.ID, &c.ExampleID, &c.ResponseText, &c.Ranking, &c.Position, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate response: %w", err)
		}
		if i, ok := index[c.ExampleID]; ok {
			examples[i].Responses = append(examples[i].Responses, c)
		}
	}

	for i := range examples {
		types.SortCandidateResponses(examples[i].Responses)
	}
	return examples, nil
}
