// Package habit derives completion patterns from task history and predicts
// when tasks are likely to get done. The statistics are simple counts, kept
// deliberately transparent so predictions are explainable.
package habit

import (
	"dayplan/models"
)

const (
	defaultPeakHour = 10
	defaultPeakDay  = "Monday"
)

// AnalyzePatterns aggregates completion records into per-hour, per-day and
// per-category counts. An empty history yields a zero-value pattern; callers
// check Empty() before trusting the peaks.
func AnalyzePatterns(records []models.CompletionRecord) models.CompletionPattern {
	if len(records) == 0 {
		return models.CompletionPattern{}
	}

	pattern := models.CompletionPattern{
		HourDistribution:     make(map[int]int),
		DayDistribution:      make(map[string]int),
		CategoryDistribution: make(map[string]int),
	}
	for _, r := range records {
		if r.CompletedAt.IsZero() {
			continue
		}
		pattern.HourDistribution[r.CompletedAt.Hour()]++
		pattern.DayDistribution[r.CompletedAt.Weekday().String()]++

		category := string(r.SourceType)
		if category == "" {
			category = string(models.SourceManual)
		}
		pattern.CategoryDistribution[category]++
	}

	pattern.PeakHour = peakIntKey(pattern.HourDistribution, defaultPeakHour)
	pattern.PeakDay = peakStringKey(pattern.DayDistribution, defaultPeakDay)
	return pattern
}

// PredictOptimalTime returns the hour and minute a task is most likely to
// get done, defaulting to 10:00 when no pattern exists.
func PredictOptimalTime(pattern models.CompletionPattern) (hour, minute int) {
	if pattern.Empty() {
		return defaultPeakHour, 0
	}
	return pattern.PeakHour, 0
}

// PredictCompletionProbability estimates the chance a task gets completed,
// in [0,1]. High priority, having a deadline at all, and a well-practiced
// category each raise the estimate.
func PredictCompletionProbability(task *models.Task, pattern models.CompletionPattern) float64 {
	probability := 0.5

	if task.Priority >= 70 {
		probability += 0.2
	}
	if task.DueDate != nil {
		probability += 0.1
	}
	if pattern.CategoryDistribution[string(task.SourceType)] > 5 {
		probability += 0.1
	}

	if probability > 1.0 {
		probability = 1.0
	}
	return probability
}

// peakIntKey returns the key with the highest count, preferring the lowest
// key on ties so results are deterministic.
func peakIntKey(dist map[int]int, fallback int) int {
	best := fallback
	bestCount := 0
	for k, count := range dist {
		if count > bestCount || (count == bestCount && k < best) {
			best = k
			bestCount = count
		}
	}
	return best
}

func peakStringKey(dist map[string]int, fallback string) string {
	best := fallback
	bestCount := 0
	for k, count := range dist {
		if count > bestCount || (count == bestCount && k < best) {
			best = k
			bestCount = count
		}
	}
	return best
}
