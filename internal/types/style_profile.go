package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CaseStyle values for StyleProfile.CaseStyle.
const (
	CaseStyleLowercase = "lowercase"
	CaseStyleUppercase = "uppercase"
	CaseStyleSentence  = "sentence"
	CaseStyleTitle     = "title"
	CaseStyleCustom    = "custom"
)

// ValidCaseStyle reports whether s is a member of the case style enum.
func ValidCaseStyle(s string) bool {
	switch s {
	case CaseStyleLowercase, CaseStyleUppercase, CaseStyleSentence, CaseStyleTitle, CaseStyleCustom:
		return true
	}
	return false
}

// MessageLengthPreferences bounds generated message length. The invariant
// MinLength <= OptimalLength <= MaxLength holds for every stored profile.
type MessageLengthPreferences struct {
	MinLength     int `json:"min_length"`
	OptimalLength int `json:"optimal_length"`
	MaxLength     int `json:"max_length"`
}

// PunctuationRules configures punctuation behavior for a creator's style.
type PunctuationRules struct {
	UseEllipsis                bool `json:"use_ellipsis"`
	UseExclamations            bool `json:"use_exclamations"`
	MaxConsecutiveExclamations int  `json:"max_consecutive_exclamations"`
}

// StyleProfile is the 1:1 style configuration for a creator. It is lazily
// materialized on first access and never deleted independently of its creator.
type StyleProfile struct {
	CreatorID                uuid.UUID                `json:"creator_id"`
	CaseStyle                string                   `json:"case_style"`
	ApprovedEmojis           []string                 `json:"approved_emojis"`
	SentenceSeparators       []string                 `json:"sentence_separators"`
	TextReplacements         map[string]string        `json:"text_replacements"`
	CommonAbbreviations      map[string]string        `json:"common_abbreviations"`
	MessageLengthPreferences MessageLengthPreferences `json:"message_length_preferences"`
	PunctuationRules         PunctuationRules         `json:"punctuation_rules"`
	StyleInstructions        *string                  `json:"style_instructions,omitempty"`
	ToneRange                []string                 `json:"tone_range"`
	CreatedAt                time.Time                `json:"created_at"`
	UpdatedAt                time.Time                `json:"updated_at"`
}

// DefaultStyleProfile is the single source of truth for profile defaults,
// used both on lazy creation and when import fills missing fields.
func DefaultStyleProfile() *StyleProfile {
	return &StyleProfile{
		CaseStyle:           CaseStyleSentence,
		ApprovedEmojis:      []string{},
		SentenceSeparators:  []string{".", "!", "?"},
		TextReplacements:    map[string]string{},
		CommonAbbreviations: map[string]string{},
		MessageLengthPreferences: MessageLengthPreferences{
			MinLength:     1,
			OptimalLength: 100,
			MaxLength:     500,
		},
		PunctuationRules: PunctuationRules{
			UseEllipsis:                true,
			UseExclamations:            true,
			MaxConsecutiveExclamations: 2,
		},
		ToneRange: []string{},
	}
}

// Validate checks every profile invariant and returns a ValidationError
// listing all violated fields, or nil when the profile is valid.
func (p *StyleProfile) Validate() error {
	verr := NewValidationError()

	if !ValidCaseStyle(p.CaseStyle) {
		verr.Add("case_style", fmt.Sprintf("must be one of lowercase, uppercase, sentence, title, custom; got %q", p.CaseStyle))
	}

	ml := p.MessageLengthPreferences
	if ml.MinLength < 0 {
		verr.Add("message_length_preferences.min_length", "must be non-negative")
	}
	if ml.MinLength > ml.OptimalLength {
		verr.Add("message_length_preferences.optimal_length", fmt.Sprintf("must be at least min_length (%d)", ml.MinLength))
	}
	if ml.OptimalLength > ml.MaxLength {
		verr.Add("message_length_preferences.max_length", fmt.Sprintf("must be at least optimal_length (%d)", ml.OptimalLength))
	}

	if p.PunctuationRules.MaxConsecutiveExclamations < 0 {
		verr.Add("punctuation_rules.max_consecutive_exclamations", "must be non-negative")
	}

	for _, sep := range p.SentenceSeparators {
		if sep == "" {
			verr.Add("sentence_separators", "entries must be non-empty")
			break
		}
	}
	for key := range p.TextReplacements {
		if key == "" {
			verr.Add("text_replacements", "keys must be non-empty")
			break
		}
	}
	for key := range p.CommonAbbreviations {
		if key == "" {
			verr.Add("common_abbreviations", "keys must be non-empty")
			break
		}
	}

	return verr.OrNil()
}

// Normalize deduplicates set fields (preserving first occurrence order) and
// replaces nil collections with empty ones so stored profiles are uniform.
func (p *StyleProfile) Normalize() {
	p.ApprovedEmojis = dedupeStrings(p.ApprovedEmojis)
	p.SentenceSeparators = dedupeStrings(p.SentenceSeparators)
	p.ToneRange = dedupeStrings(p.ToneRange)
	if p.TextReplacements == nil {
		p.TextReplacements = map[string]string{}
	}
	if p.CommonAbbreviations == nil {
		p.CommonAbbreviations = map[string]string{}
	}
}

// dedupeStrings removes duplicates while preserving first-seen order.
// A nil slice becomes an empty one.
func dedupeStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
