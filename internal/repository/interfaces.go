package repository

import (
	"context"
	"errors"

	"github.com/briefly/briefly-backend/internal/models"
)

// ErrSummaryNotFound is returned when no summary exists for the requested id
var ErrSummaryNotFound = errors.New("summary not found")

// ListLimit caps list results to the most recent records
const ListLimit = 50

// ListFilter narrows List results. Zero values mean "no filter".
// Search matches case-insensitively against original or summary text;
// Style matches exactly. Both combine with AND.
type ListFilter struct {
	Search string
	Style  models.SummaryStyle
}

// SummaryRepository defines summary storage operations
type SummaryRepository interface {
	Create(ctx context.Context, originalText, summaryText string, style models.SummaryStyle) (*models.Summary, error)
	GetByID(ctx context.Context, id string) (*models.Summary, error)
	List(ctx context.Context, filter ListFilter) ([]models.Summary, error)
	Delete(ctx context.Context, id string) error
}
