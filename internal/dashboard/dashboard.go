// Package dashboard aggregates one user's learning-progress entries into the
// summary shown on the progress overview: totals, per-status counts, a
// completion percentage and chart-ready series.
package dashboard

import (
	"context"
	"math"

	"go.uber.org/zap"

	"edunity/internal/api"
	"edunity/internal/models"
	"edunity/internal/session"
)

// StatusPoint is one slice of the per-status breakdown.
type StatusPoint struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
}

// Row is one entry line on the dashboard table.
type Row struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Template  string `json:"templateType"`
	Status    string `json:"status"`
	Completed bool   `json:"completed"`
}

// Summary is the aggregated dashboard view of a user's progress entries.
type Summary struct {
	Total             int           `json:"total"`
	Completed         int           `json:"completed"`
	InProgress        int           `json:"inProgress"`
	NotStarted        int           `json:"notStarted"`
	CompletionPercent int           `json:"completionPercent"`
	Series            []StatusPoint `json:"series"`
	Rows              []Row         `json:"rows"`
}

// statusLabels maps status ids to display labels.
var statusLabels = map[string]string{
	models.StatusNotStarted: "Not Started",
	models.StatusInProgress: "In Progress",
	models.StatusCompleted:  "Completed",
}

// Build aggregates entries into a Summary. The completion percentage is
// completed/total rounded to the nearest whole number; an empty entry list
// yields zero percent.
func Build(entries []models.LearningProgress) *Summary {
	s := &Summary{Rows: make([]Row, 0, len(entries))}
	for _, e := range entries {
		s.Total++
		switch e.Status {
		case models.StatusCompleted:
			s.Completed++
		case models.StatusInProgress:
			s.InProgress++
		default:
			s.NotStarted++
		}
		s.Rows = append(s.Rows, Row{
			ID:        e.ID,
			Title:     e.Title,
			Template:  e.TemplateType,
			Status:    e.Status,
			Completed: e.Status == models.StatusCompleted,
		})
	}

	if s.Total > 0 {
		s.CompletionPercent = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}

	s.Series = []StatusPoint{
		{Status: models.StatusNotStarted, Label: statusLabels[models.StatusNotStarted], Count: s.NotStarted},
		{Status: models.StatusInProgress, Label: statusLabels[models.StatusInProgress], Count: s.InProgress},
		{Status: models.StatusCompleted, Label: statusLabels[models.StatusCompleted], Count: s.Completed},
	}
	return s
}

// Controller loads the session user's entries and builds the summary.
type Controller struct {
	api    *api.LearningProgressAPI
	sess   *session.Session
	logger *zap.Logger
}

// NewController creates the dashboard controller.
func NewController(client *api.Client, sess *session.Session, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		api:    client.LearningProgress(),
		sess:   sess,
		logger: logger,
	}
}

// Load fetches the session user's progress entries and aggregates them.
func (c *Controller) Load(ctx context.Context) (*Summary, error) {
	entries, err := c.api.ListByUser(ctx, c.sess.UserID(), c.sess.Token)
	if err != nil {
		c.logger.Error("Failed to load dashboard entries", zap.Error(err))
		return nil, err
	}
	return Build(entries), nil
}
