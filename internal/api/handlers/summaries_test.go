package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briefly/briefly-backend/internal/models"
	"github.com/briefly/briefly-backend/internal/repository"
	"github.com/briefly/briefly-backend/internal/services"
	"github.com/briefly/briefly-backend/internal/summarizer"
)

type memoryRepo struct {
	summaries map[string]models.Summary
	clock     time.Time
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		summaries: make(map[string]models.Summary),
		clock:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *memoryRepo) Create(ctx context.Context, originalText, summaryText string, style models.SummaryStyle) (*models.Summary, error) {
	m.clock = m.clock.Add(time.Second)
	summary := models.Summary{
		ID:           uuid.New().String(),
		OriginalText: originalText,
		SummaryText:  summaryText,
		SummaryStyle: style,
		CreatedAt:    m.clock,
		UpdatedAt:    m.clock,
	}
	m.summaries[summary.ID] = summary
	return &summary, nil
}

func (m *memoryRepo) GetByID(ctx context.Context, id string) (*models.Summary, error) {
	summary, ok := m.summaries[id]
	if !ok {
		return nil, repository.ErrSummaryNotFound
	}
	return &summary, nil
}

func (m *memoryRepo) List(ctx context.Context, filter repository.ListFilter) ([]models.Summary, error) {
	var result []models.Summary
	for _, s := range m.summaries {
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(s.OriginalText), needle) &&
				!strings.Contains(strings.ToLower(s.SummaryText), needle) {
				continue
			}
		}
		if filter.Style != "" && s.SummaryStyle != filter.Style {
			continue
		}
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if len(result) > repository.ListLimit {
		result = result[:repository.ListLimit]
	}
	if result == nil {
		result = []models.Summary{}
	}
	return result, nil
}

func (m *memoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.summaries[id]; !ok {
		return repository.ErrSummaryNotFound
	}
	delete(m.summaries, id)
	return nil
}

type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) Generate(ctx context.Context, text string, style models.SummaryStyle) (string, error) {
	return s.text, s.err
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func newTestApp(repo repository.SummaryRepository, gen summarizer.Generator) *fiber.App {
	svc := services.NewServices(repo, gen)

	app := fiber.New()
	app.Post("/summaries", CreateSummary(svc))
	app.Get("/summaries", GetSummaries(svc))
	app.Get("/summaries/:id", GetSummary(svc))
	app.Delete("/summaries/:id", DeleteSummary(svc))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestCreateSummary(t *testing.T) {
	app := newTestApp(newMemoryRepo(), &stubGenerator{text: "- fox jumps\n- dog sleeps"})

	status, env := doJSON(t, app, "POST", "/summaries", fiber.Map{
		"originalText": "The quick brown fox jumps over the lazy dog.",
		"summaryStyle": "bullet-points",
	})

	assert.Equal(t, fiber.StatusOK, status)
	require.True(t, env.Success)

	var summary models.Summary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.NotEmpty(t, summary.ID)
	assert.Equal(t, "The quick brown fox jumps over the lazy dog.", summary.OriginalText)
	assert.Equal(t, "- fox jumps\n- dog sleeps", summary.SummaryText)
	assert.Equal(t, models.StyleBulletPoints, summary.SummaryStyle)
}

func TestCreateSummary_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      fiber.Map
		wantError string
	}{
		{
			name:      "missing text",
			body:      fiber.Map{},
			wantError: "Original text is required",
		},
		{
			name:      "non-string text",
			body:      fiber.Map{"originalText": 42},
			wantError: "Original text is required",
		},
		{
			name:      "blank text",
			body:      fiber.Map{"originalText": "   "},
			wantError: "Original text cannot be empty",
		},
		{
			name:      "text over limit",
			body:      fiber.Map{"originalText": strings.Repeat("a", 10001)},
			wantError: "Text is too long. Please limit to 10,000 characters.",
		},
		{
			name:      "invalid style",
			body:      fiber.Map{"originalText": "some text", "summaryStyle": "haiku"},
			wantError: "Invalid summary style",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(newMemoryRepo(), &stubGenerator{text: "unused"})

			status, env := doJSON(t, app, "POST", "/summaries", tt.body)

			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantError, env.Error)
		})
	}
}

func TestCreateSummary_GenerationFailure(t *testing.T) {
	repo := newMemoryRepo()
	app := newTestApp(repo, &stubGenerator{err: &summarizer.GenerationError{Message: "upstream unavailable"}})

	status, env := doJSON(t, app, "POST", "/summaries", fiber.Map{"originalText": "some text"})

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.False(t, env.Success)
	assert.Equal(t, "Summary generation failed: upstream unavailable", env.Error)
	assert.Empty(t, repo.summaries, "nothing may be persisted when generation fails")
}

func TestGetSummaries_NewestFirst(t *testing.T) {
	repo := newMemoryRepo()
	app := newTestApp(repo, &stubGenerator{text: "a summary"})

	for _, text := range []string{"first text", "second text", "third text"} {
		status, _ := doJSON(t, app, "POST", "/summaries", fiber.Map{"originalText": text})
		require.Equal(t, fiber.StatusOK, status)
	}

	status, env := doJSON(t, app, "GET", "/summaries", nil)

	assert.Equal(t, fiber.StatusOK, status)
	require.True(t, env.Success)

	var summaries []models.Summary
	require.NoError(t, json.Unmarshal(env.Data, &summaries))
	require.Len(t, summaries, 3)
	assert.Equal(t, "third text", summaries[0].OriginalText)
	assert.Equal(t, "second text", summaries[1].OriginalText)
	assert.Equal(t, "first text", summaries[2].OriginalText)
}

func TestGetSummaries_Filters(t *testing.T) {
	repo := newMemoryRepo()
	app := newTestApp(repo, &stubGenerator{text: "a summary"})

	_, _ = doJSON(t, app, "POST", "/summaries", fiber.Map{"originalText": "Quarterly Report", "summaryStyle": "detailed"})
	_, _ = doJSON(t, app, "POST", "/summaries", fiber.Map{"originalText": "meeting notes", "summaryStyle": "concise"})

	status, env := doJSON(t, app, "GET", "/summaries?search=quarterly&style=detailed", nil)

	assert.Equal(t, fiber.StatusOK, status)
	var summaries []models.Summary
	require.NoError(t, json.Unmarshal(env.Data, &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "Quarterly Report", summaries[0].OriginalText)

	// No match comes back as an empty array, not an error
	status, env = doJSON(t, app, "GET", "/summaries?search=nonexistent", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, env.Success)
	assert.Equal(t, "[]", string(env.Data))
}

func TestGetSummary(t *testing.T) {
	repo := newMemoryRepo()
	app := newTestApp(repo, &stubGenerator{text: "a summary"})

	_, created := doJSON(t, app, "POST", "/summaries", fiber.Map{"originalText": "some text"})
	var summary models.Summary
	require.NoError(t, json.Unmarshal(created.Data, &summary))

	status, env := doJSON(t, app, "GET", "/summaries/"+summary.ID, nil)

	assert.Equal(t, fiber.StatusOK, status)
	var fetched models.Summary
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, summary.ID, fetched.ID)
}

func TestGetSummary_NotFound(t *testing.T) {
	app := newTestApp(newMemoryRepo(), &stubGenerator{text: "a summary"})

	status, env := doJSON(t, app, "GET", "/summaries/"+uuid.New().String(), nil)

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.False(t, env.Success)
	assert.Equal(t, "Summary not found", env.Error)
}

func TestDeleteSummary(t *testing.T) {
	repo := newMemoryRepo()
	app := newTestApp(repo, &stubGenerator{text: "a summary"})

	_, created := doJSON(t, app, "POST", "/summaries", fiber.Map{"originalText": "some text"})
	var summary models.Summary
	require.NoError(t, json.Unmarshal(created.Data, &summary))

	status, env := doJSON(t, app, "DELETE", "/summaries/"+summary.ID, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, env.Success)
	assert.Equal(t, "Summary deleted successfully", env.Message)

	// A second delete of the same id is a plain 404
	status, env = doJSON(t, app, "DELETE", "/summaries/"+summary.ID, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Summary not found", env.Error)
}
