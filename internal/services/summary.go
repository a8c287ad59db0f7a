package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/briefly/briefly-backend/internal/models"
	"github.com/briefly/briefly-backend/internal/repository"
	"github.com/briefly/briefly-backend/internal/summarizer"
)

// SummaryService composes validation, generation and persistence
type SummaryService struct {
	repo      repository.SummaryRepository
	generator summarizer.Generator
}

func NewSummaryService(repo repository.SummaryRepository, generator summarizer.Generator) *SummaryService {
	return &SummaryService{
		repo:      repo,
		generator: generator,
	}
}

// Create validates the request, generates the summary text and persists
// the record. Nothing is written when validation or generation fails.
func (s *SummaryService) Create(ctx context.Context, req models.CreateSummaryRequest) (*models.Summary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	summaryText, err := s.generator.Generate(ctx, req.OriginalText, req.SummaryStyle)
	if err != nil {
		logrus.WithError(err).WithField("style", req.SummaryStyle).Error("summary generation failed")
		return nil, err
	}

	summary, err := s.repo.Create(ctx, req.OriginalText, summaryText, req.SummaryStyle)
	if err != nil {
		logrus.WithError(err).Error("failed to persist summary")
		return nil, err
	}

	return summary, nil
}

// List returns the most recent summaries matching the filter, newest first
func (s *SummaryService) List(ctx context.Context, filter repository.ListFilter) ([]models.Summary, error) {
	summaries, err := s.repo.List(ctx, filter)
	if err != nil {
		logrus.WithError(err).Error("failed to list summaries")
		return nil, err
	}
	return summaries, nil
}

// Get returns a single summary, repository.ErrSummaryNotFound when absent
func (s *SummaryService) Get(ctx context.Context, id string) (*models.Summary, error) {
	return s.repo.GetByID(ctx, id)
}

// Delete removes a summary, repository.ErrSummaryNotFound when absent.
// Deleting an already-gone id keeps yielding not-found, never a crash.
func (s *SummaryService) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if err != nil && err != repository.ErrSummaryNotFound {
		logrus.WithError(err).WithField("id", id).Error("failed to delete summary")
	}
	return err
}
