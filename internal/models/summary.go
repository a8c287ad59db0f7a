package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

// SummaryStyle selects the instruction template used for generation
type SummaryStyle string

const (
	StyleConcise      SummaryStyle = "concise"
	StyleDetailed     SummaryStyle = "detailed"
	StyleBulletPoints SummaryStyle = "bullet-points"
)

// MaxOriginalTextLength is the hard cap on submitted text, in characters
const MaxOriginalTextLength = 10000

// IsValid reports whether s is one of the known styles
func (s SummaryStyle) IsValid() bool {
	switch s {
	case StyleConcise, StyleDetailed, StyleBulletPoints:
		return true
	}
	return false
}

// Summary pairs user-submitted text with its generated summary
type Summary struct {
	ID           string       `json:"id" db:"id"`
	OriginalText string       `json:"originalText" db:"original_text"`
	SummaryText  string       `json:"summaryText" db:"summary_text"`
	SummaryStyle SummaryStyle `json:"summaryStyle" db:"summary_style"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time    `json:"updatedAt" db:"updated_at"`
}

// CreateSummaryRequest is the body of POST /summaries
type CreateSummaryRequest struct {
	OriginalText string       `json:"originalText"`
	SummaryStyle SummaryStyle `json:"summaryStyle"`
}

// ValidationError describes a rejected request payload
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the request payload and fills in the default style.
// It performs no I/O; every rejection carries its own message.
func (r *CreateSummaryRequest) Validate() error {
	if r.OriginalText == "" {
		return &ValidationError{Message: "Original text is required"}
	}
	if strings.TrimSpace(r.OriginalText) == "" {
		return &ValidationError{Message: "Original text cannot be empty"}
	}
	if utf8.RuneCountInString(r.OriginalText) > MaxOriginalTextLength {
		return &ValidationError{Message: "Text is too long. Please limit to 10,000 characters."}
	}
	if r.SummaryStyle == "" {
		r.SummaryStyle = StyleConcise
	}
	if !r.SummaryStyle.IsValid() {
		return &ValidationError{Message: "Invalid summary style"}
	}
	return nil
}
