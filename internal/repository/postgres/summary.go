package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/briefly/briefly-backend/internal/models"
	"github.com/briefly/briefly-backend/internal/repository"
)

// SummaryRepository implements repository.SummaryRepository using PostgreSQL
type SummaryRepository struct {
	db *sqlx.DB
}

// NewSummaryRepository creates a new PostgreSQL summary repository
func NewSummaryRepository(db *sqlx.DB) repository.SummaryRepository {
	return &SummaryRepository{db: db}
}

// Create persists a new summary and returns the full record
func (r *SummaryRepository) Create(ctx context.Context, originalText, summaryText string, style models.SummaryStyle) (*models.Summary, error) {
	now := time.Now().UTC()
	summary := models.Summary{
		ID:           uuid.New().String(),
		OriginalText: originalText,
		SummaryText:  summaryText,
		SummaryStyle: style,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	query := `
		INSERT INTO summaries (id, original_text, summary_text, summary_style, created_at, updated_at)
		VALUES (:id, :original_text, :summary_text, :summary_style, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, summary); err != nil {
		return nil, fmt.Errorf("failed to insert summary: %w", err)
	}

	return &summary, nil
}

// GetByID retrieves a summary by id
func (r *SummaryRepository) GetByID(ctx context.Context, id string) (*models.Summary, error) {
	var summary models.Summary
	query := `
		SELECT id, original_text, summary_text, summary_style, created_at, updated_at
		FROM summaries
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &summary, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrSummaryNotFound
		}
		return nil, err
	}

	return &summary, nil
}

// List retrieves the most recent summaries matching the filter
func (r *SummaryRepository) List(ctx context.Context, filter repository.ListFilter) ([]models.Summary, error) {
	query, args := buildListQuery(filter)

	summaries := []models.Summary{}
	if err := r.db.SelectContext(ctx, &summaries, query, args...); err != nil {
		return nil, err
	}

	return summaries, nil
}

// Delete removes a summary by id
func (r *SummaryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM summaries WHERE id = $1", id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrSummaryNotFound
	}

	return nil
}

// buildListQuery translates a ListFilter into SQL. Predicates are
// AND-combined; the search term matches either text column with ILIKE.
func buildListQuery(filter repository.ListFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(original_text ILIKE $%d OR summary_text ILIKE $%d)", n, n))
	}
	if filter.Style != "" {
		args = append(args, filter.Style)
		conditions = append(conditions, fmt.Sprintf("summary_style = $%d", len(args)))
	}

	query := "SELECT id, original_text, summary_text, summary_style, created_at, updated_at FROM summaries"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT %d", repository.ListLimit)

	return query, args
}
