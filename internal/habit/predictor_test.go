package habit

import (
	"math"
	"testing"
	"time"

	"dayplan/models"
)

func record(source models.SourceType, completedAt time.Time) models.CompletionRecord {
	return models.CompletionRecord{
		TaskID:      "t",
		Title:       "task",
		SourceType:  source,
		CompletedAt: completedAt,
	}
}

func TestAnalyzePatterns(t *testing.T) {
	// Two completions at 09:00 on Mondays, one at 15:00 on a Friday.
	monday := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	records := []models.CompletionRecord{
		record(models.SourceEmail, monday),
		record(models.SourceEmail, monday.Add(7*24*time.Hour)),
		record(models.SourceDocument, time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)),
	}

	p := AnalyzePatterns(records)

	if p.PeakHour != 9 {
		t.Errorf("PeakHour = %d, want 9", p.PeakHour)
	}
	if p.PeakDay != "Monday" {
		t.Errorf("PeakDay = %q, want Monday", p.PeakDay)
	}
	if p.HourDistribution[9] != 2 || p.HourDistribution[15] != 1 {
		t.Errorf("HourDistribution = %v", p.HourDistribution)
	}
	if p.CategoryDistribution["email"] != 2 || p.CategoryDistribution["document"] != 1 {
		t.Errorf("CategoryDistribution = %v", p.CategoryDistribution)
	}
	if p.Empty() {
		t.Error("Empty() = true for populated pattern")
	}
}

func TestAnalyzePatternsEmptyHistory(t *testing.T) {
	p := AnalyzePatterns(nil)
	if !p.Empty() {
		t.Error("Empty() = false for no history")
	}
}

func TestPredictOptimalTime(t *testing.T) {
	hour, minute := PredictOptimalTime(models.CompletionPattern{})
	if hour != 10 || minute != 0 {
		t.Errorf("default optimal time = %02d:%02d, want 10:00", hour, minute)
	}

	p := AnalyzePatterns([]models.CompletionRecord{
		record(models.SourceManual, time.Date(2025, 3, 10, 20, 30, 0, 0, time.UTC)),
	})
	hour, minute = PredictOptimalTime(p)
	if hour != 20 || minute != 0 {
		t.Errorf("optimal time = %02d:%02d, want 20:00", hour, minute)
	}
}

func TestPredictCompletionProbability(t *testing.T) {
	due := time.Date(2025, 3, 12, 17, 0, 0, 0, time.UTC)
	pattern := models.CompletionPattern{
		CategoryDistribution: map[string]int{"email": 6},
	}

	tests := []struct {
		name string
		task models.Task
		want float64
	}{
		{"baseline", models.Task{Priority: 50, SourceType: models.SourceManual}, 0.5},
		{"high priority", models.Task{Priority: 80, SourceType: models.SourceManual}, 0.7},
		{"deadline", models.Task{Priority: 50, SourceType: models.SourceManual, DueDate: &due}, 0.6},
		{"practiced category", models.Task{Priority: 50, SourceType: models.SourceEmail}, 0.6},
		{"all factors", models.Task{Priority: 90, SourceType: models.SourceEmail, DueDate: &due}, 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PredictCompletionProbability(&tt.task, pattern)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PredictCompletionProbability() = %v, want %v", got, tt.want)
			}
		})
	}
}
