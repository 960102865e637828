package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/creator-studio/internal/types"
)

const styleProfileColumns = `creator_id, case_style, approved_emojis, sentence_separators,
	text_replacements, common_abbreviations, min_length, optimal_length, max_length,
	use_ellipsis, use_exclamations, max_consecutive_exclamations, style_instructions,
	tone_range, created_at, updated_at`

func scanStyleProfile(row pgx.Row) (*types.StyleProfile, error) {
	var p types.StyleProfile
	var emojis, separators, replacements, abbreviations, tones []byte

	err := row.Scan(&p.CreatorID, &p.CaseStyle, &emojis, &separators,
		&replacements, &abbreviations,
		&p.MessageLengthPreferences.MinLength, &p.MessageLengthPreferences.OptimalLength, &p.MessageLengthPreferences.MaxLength,
		&p.PunctuationRules.UseEllipsis, &p.PunctuationRules.UseExclamations, &p.PunctuationRules.MaxConsecutiveExclamations,
		&p.StyleInstructions, &tones, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	for _, field := range []struct {
		raw  []byte
		dest any
	}{
		{emojis, &p.ApprovedEmojis},
		{separators, &p.SentenceSeparators},
		{replacements, &p.TextReplacements},
		{abbreviations, &p.CommonAbbreviations},
		{tones, &p.ToneRange},
	} {
		if err := json.Unmarshal(field.raw, field.dest); err != nil {
			return nil, fmt.Errorf("failed to decode profile field: %w", err)
		}
	}
	p.Normalize()
	return &p, nil
}

// GetStyleProfile retrieves a creator's profile without materializing one.
// Returns nil when no profile row exists yet.
func (db *DB) GetStyleProfile(ctx context.Context, creatorID uuid.UUID) (*types.StyleProfile, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+styleProfileColumns+` FROM style_profiles WHERE creator_id = $1`, creatorID)
	profile, err := scanStyleProfile(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get style profile: %w", err)
	}
	return profile, nil
}

// HasStyleProfile reports whether a profile row has been materialized.
func (db *DB) HasStyleProfile(ctx context.Context, creatorID uuid.UUID) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM style_profiles WHERE creator_id = $1)`, creatorID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check style profile: %w", err)
	}
	return exists, nil
}

// GetOrCreateStyleProfile returns the creator's profile, materializing one
// with the documented defaults on first access. Profile absence is never an
// error; the call only returns nil when the creator itself does not exist.
func (db *DB) GetOrCreateStyleProfile(ctx context.Context, creatorID uuid.UUID) (*types.StyleProfile, error) {
	creator, err := db.GetCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, nil
	}

	defaults := types.DefaultStyleProfile()
	args, err := profileArgs(defaults)
	if err != nil {
		return nil, err
	}

	// ON CONFLICT DO NOTHING keeps concurrent first accesses from racing;
	// exactly one row is ever created.
	_, err = db.pool.Exec(ctx,
		`INSERT INTO style_profiles (creator_id, case_style, approved_emojis, sentence_separators,
		     text_replacements, common_abbreviations, min_length, optimal_length, max_length,
		     use_ellipsis, use_exclamations, max_consecutive_exclamations, style_instructions, tone_range)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 ON CONFLICT (creator_id) DO NOTHING`,
		append([]any{creatorID}, args...)...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to materialize style profile: %w", err)
	}

	return db.GetStyleProfile(ctx, creatorID)
}

// UpdateStyleProfile replaces the whole profile object. Set and map fields
// are replaced wholesale; callers wanting single-field edits use the
// incremental helpers. The profile must already be validated and normalized.
// Returns nil when the creator does not exist.
func (db *DB) UpdateStyleProfile(ctx context.Context, creatorID uuid.UUID, profile *types.StyleProfile) (*types.StyleProfile, error) {
	creator, err := db.GetCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, nil
	}

	args, err := profileArgs(profile)
	if err != nil {
		return nil, err
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO style_profiles (creator_id, case_style, approved_emojis, sentence_separators,
		     text_replacements, common_abbreviations, min_length, optimal_length, max_length,
		     use_ellipsis, use_exclamations, max_consecutive_exclamations, style_instructions, tone_range)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 ON CONFLICT (creator_id) DO UPDATE SET
		     case_style = $2,
		     approved_emojis = $3,
		     sentence_separators = $4,
		     text_replacements = $5,
		     common_abbreviations = $6,
		     min_length = $7,
		     optimal_length = $8,
		     max_length = $9,
		     use_ellipsis = $10,
		     use_exclamations = $11,
		     max_consecutive_exclamations = $12,
		     style_instructions = $13,
		     tone_range = $14,
		     updated_at = NOW()
		 RETURNING `+styleProfileColumns,
		append([]any{creatorID}, args...)...,
	)
	updated, err := scanStyleProfile(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update style profile: %w", err)
	}
	return updated, nil
}

// profileArgs marshals the profile fields into the argument order shared by
// the insert and upsert statements (everything after creator_id).
func profileArgs(p *types.StyleProfile) ([]any, error) {
	p.Normalize()

	emojis, err := json.Marshal(p.ApprovedEmojis)
	if err != nil {
		return nil, fmt.Errorf("failed to encode approved_emojis: %w", err)
	}
	separators, err := json.Marshal(p.SentenceSeparators)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sentence_separators: %w", err)
	}
	replacements, err := json.Marshal(p.TextReplacements)
	if err != nil {
		return nil, fmt.Errorf("failed to encode text_replacements: %w", err)
	}
	abbreviations, err := json.Marshal(p.CommonAbbreviations)
	if err != nil {
		return nil, fmt.Errorf("failed to encode common_abbreviations: %w", err)
	}
	tones, err := json.Marshal(p.ToneRange)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tone_range: %w", err)
	}

	return []any{
		p.CaseStyle, emojis, separators, replacements, abbreviations,
		p.MessageLengthPreferences.MinLength, p.MessageLengthPreferences.OptimalLength, p.MessageLengthPreferences.MaxLength,
		p.PunctuationRules.UseEllipsis, p.PunctuationRules.UseExclamations, p.PunctuationRules.MaxConsecutiveExclamations,
		p.StyleInstructions, tones,
	}, nil
}

// mutateStyleProfile is the read-modify-write core of the incremental
// helpers: it materializes the current profile, applies one edit, and writes
// the whole object back. Concurrent incremental edits are not coordinated.
func (db *DB) mutateStyleProfile(ctx context.Context, creatorID uuid.UUID, edit func(*types.StyleProfile)) (*types.StyleProfile, error) {
	profile, err := db.GetOrCreateStyleProfile(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	edit(profile)
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return db.UpdateStyleProfile(ctx, creatorID, profile)
}

// AddApprovedEmoji adds one emoji to the approved set.
func (db *DB) AddApprovedEmoji(ctx context.Context, creatorID uuid.UUID, emoji string) (*types.StyleProfile, error) {
	return db.mutateStyleProfile(ctx, creatorID, func(p *types.StyleProfile) {
		p.ApprovedEmojis = append(p.ApprovedEmojis, emoji)
	})
}

// RemoveApprovedEmoji removes one emoji from the approved set.
func (db *DB) RemoveApprovedEmoji(ctx context.Context, creatorID uuid.UUID, emoji string) (*types.StyleProfile, error) {
	return db.mutateStyleProfile(ctx, creatorID, func(p *types.StyleProfile) {
		p.ApprovedEmojis = removeString(p.ApprovedEmojis, emoji)
	})
}

// AddSentenceSeparator adds one separator to the set.
func (db *DB) AddSentenceSeparator(ctx context.Context, creatorID uuid.UUID, separator string) (*types.StyleProfile, error) {
	return db.mutateStyleProfile(ctx, creatorID, func(p *types.StyleProfile) {
		p.SentenceSeparators = append(p.SentenceSeparators, separator)
	})
}

// RemoveSentenceSeparator removes one separator from the set.
func (db *DB) RemoveSentenceSeparator(ctx context.Context, creatorID uuid.UUID, separator string) (*types.StyleProfile, error) {
	return db.mutateStyleProfile(ctx, creatorID, func(p *types.StyleProfile) {
		p.SentenceSeparators = removeString(p.SentenceSeparators, separator)
	})
}

// SetTextReplacement adds or overwrites one replacement pair by key.
func (db *DB) SetTextReplacement(ctx context.Context, creatorID uuid.UUID, key, value string) (*types.StyleProfile, error) {
	return db.mutateStyleProfile(ctx, creatorID, func(p *types.StyleProfile) {
		p.TextReplacements[key] = value
	})
}

// RemoveTextReplacement removes one replacement pair by key.
func (db *DB) RemoveTextReplacement(ctx context.Context, creatorID uuid.UUID, key string) (*types.StyleProfile, error) {
	return db.mutateStyleProfile(ctx, creatorID, func(p *types.StyleProfile) {
		delete(p.TextReplacements, key)
	})
}

// SetAbbreviation adds or overwrites one abbreviation pair by key.
func (db *DB) SetAbbreviation(ctx context.Context, creatorID uuid.UUID, key, value string) (*types.StyleProfile, error) {
	return db.mutateStyleProfile(ctx, creatorID, func(p *types.StyleProfile) {
		p.CommonAbbreviations[key] = value
	})
}

// RemoveAbbreviation removes one abbreviation pair by key.
func (db *DB) RemoveAbbreviation(ctx context.Context, creatorID uuid.UUID, key string) (*types.StyleProfile, error) {
	return db.mutateStyleProfile(ctx, creatorID, func(p *types.StyleProfile) {
		delete(p.CommonAbbreviations, key)
	})
}

func removeString(in []string, target string) []string {
	out := in[:0]
	for _, s := range in {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}
