// Package risk estimates how likely tasks are to slip and whether a day's
// load is sustainable. Task risk combines deadline proximity, habit-derived
// completion probability, dependencies and complexity into a 0-100 score.
package risk

import (
	"time"

	"dayplan/internal/habit"
	"dayplan/models"
)

// workday capacity in minutes used for overload detection
const dayCapacityMinutes = 480

const overloadThresholdPct = 90

// Engine scores tasks against the clock. A nil Now means time.Now.
type Engine struct {
	Now func() time.Time
}

func New(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{Now: now}
}

// TaskRisk computes the 0-100 failure risk for a single task. Completed
// tasks carry no risk.
func (e *Engine) TaskRisk(task *models.Task, pattern models.CompletionPattern) int {
	if task.Status == models.StatusCompleted {
		return 0
	}

	now := e.Now()
	risk := 0

	if task.DueDate != nil {
		hoursLeft := task.DueDate.Sub(now).Hours()
		switch {
		case hoursLeft < 0:
			risk += 90
		case hoursLeft < 2:
			risk += 80
		case hoursLeft < 8:
			risk += 60
		case hoursLeft < 24:
			risk += 40
		case hoursLeft < 48:
			risk += 20
		}

		// Past the user's productive window with the deadline still today.
		peakHour := pattern.PeakHour
		if pattern.Empty() {
			peakHour = 10
		}
		if now.Hour() > peakHour && sameDay(*task.DueDate, now) {
			risk += 15
		}
	}

	probability := habit.PredictCompletionProbability(task, pattern)
	risk += int((1.0 - probability) * 30)

	if task.DependencyID != nil {
		risk += 20
	}

	if task.DurationOrDefault() > 120 {
		risk += 10
	}

	return clamp(risk)
}

// DetectOverload sums the estimated durations of tasks due on targetDate
// against an eight-hour day.
func (e *Engine) DetectOverload(tasks []*models.Task, targetDate time.Time) models.OverloadReport {
	totalDuration := 0
	count := 0
	for _, t := range tasks {
		if t.DueDate == nil || !sameDay(*t.DueDate, targetDate) {
			continue
		}
		totalDuration += t.DurationOrDefault()
		count++
	}

	loadPct := float64(totalDuration) / dayCapacityMinutes * 100
	return models.OverloadReport{
		IsOverloaded:   loadPct > overloadThresholdPct,
		LoadPercentage: loadPct,
		TotalDuration:  totalDuration,
		TaskCount:      count,
	}
}

// DeadlineFallbackRisk is the coarse risk band used when no completion
// pattern is available to run the full model: a near deadline is high risk,
// everything else tapers off.
func DeadlineFallbackRisk(dueDate *time.Time, now time.Time) int {
	if dueDate == nil {
		return 15
	}
	hoursLeft := dueDate.Sub(now).Hours()
	switch {
	case hoursLeft < 24:
		return 75
	case hoursLeft < 48:
		return 45
	default:
		return 15
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
