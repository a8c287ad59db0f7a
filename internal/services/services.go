package services

import (
	"github.com/briefly/briefly-backend/internal/repository"
	"github.com/briefly/briefly-backend/internal/summarizer"
)

// Services holds all service instances
type Services struct {
	Summary *SummaryService
}

// NewServices creates all service instances
func NewServices(summaryRepo repository.SummaryRepository, generator summarizer.Generator) *Services {
	return &Services{
		Summary: NewSummaryService(summaryRepo, generator),
	}
}
