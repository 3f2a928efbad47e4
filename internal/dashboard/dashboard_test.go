package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"edunity/internal/models"
)

func entry(status string) models.LearningProgress {
	return models.LearningProgress{Status: status, TemplateType: models.TemplateGeneral}
}

func TestBuildCounts(t *testing.T) {
	s := Build([]models.LearningProgress{
		entry(models.StatusCompleted),
		entry(models.StatusCompleted),
		entry(models.StatusInProgress),
		entry(models.StatusNotStarted),
	})

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Completed)
	assert.Equal(t, 1, s.InProgress)
	assert.Equal(t, 1, s.NotStarted)
	assert.Equal(t, 50, s.CompletionPercent)
	assert.Len(t, s.Rows, 4)
}

func TestBuildPercentRounding(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"one of three rounds to 33", 1, 3, 33},
		{"two of three rounds to 67", 2, 3, 67},
		{"one of six rounds to 17", 1, 6, 17},
		{"all complete", 3, 3, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var entries []models.LearningProgress
			for i := 0; i < tt.completed; i++ {
				entries = append(entries, entry(models.StatusCompleted))
			}
			for i := tt.completed; i < tt.total; i++ {
				entries = append(entries, entry(models.StatusInProgress))
			}
			assert.Equal(t, tt.want, Build(entries).CompletionPercent)
		})
	}
}

func TestBuildEmpty(t *testing.T) {
	s := Build(nil)

	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0, s.CompletionPercent)
	assert.Len(t, s.Series, 3, "the series always carries all three statuses")
	for _, p := range s.Series {
		assert.Equal(t, 0, p.Count)
	}
}

func TestBuildUnknownStatusCountsAsNotStarted(t *testing.T) {
	s := Build([]models.LearningProgress{{Status: "archived"}})
	assert.Equal(t, 1, s.NotStarted)
}

func TestBuildRows(t *testing.T) {
	s := Build([]models.LearningProgress{
		{ID: "g1", Title: "CLI app", TemplateType: models.TemplateProject, Status: models.StatusCompleted},
	})

	assert.Equal(t, "g1", s.Rows[0].ID)
	assert.True(t, s.Rows[0].Completed)
	assert.Equal(t, models.TemplateProject, s.Rows[0].Template)
}
