// Package plan assembles daily schedules from scored tasks. Generation
// never fails: the worst case is a plan without AI commentary.
package plan

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"dayplan/internal/config"
	"dayplan/internal/llm"
	"dayplan/internal/risk"
	"dayplan/models"
	"dayplan/prompts"
)

const (
	dayCapacityMinutes = 480

	shortTaskBufferMins = 15
	longTaskBufferMins  = 30

	recommendationTaskLimit = 10

	defaultConsequences = "Missing this might impact your daily goals."

	noTasksRecommendation     = "No tasks scheduled for today. Enjoy your free day!"
	offlineRecommendation     = "AI recommendations are temporarily unavailable, but your plan is ready."
	overloadedRecommendation  = "Consider moving some tasks to tomorrow to avoid burnout."
	manageableRecommendation  = "Load looks manageable."
	regretWarningFormat       = "Regret Warning: You've skipped '%s' multiple times. This is a high-priority personal goal."
	regretWarningPriorityBand = 80
)

// Generator builds daily plans. The clock is injectable for tests; nil
// means time.Now.
type Generator struct {
	gen     llm.Generator
	planner config.PlannerConfig
	now     func() time.Time
}

// New returns a plan Generator. gen may be nil, in which case every plan
// carries the offline recommendation text.
func New(gen llm.Generator, planner config.PlannerConfig, now func() time.Time) *Generator {
	if planner.TimeRealityFactor <= 0 {
		planner.TimeRealityFactor = 1.2
	}
	if planner.DayStartHour == 0 && planner.DayStartMinute == 0 {
		planner.DayStartHour = 9
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{gen: gen, planner: planner, now: now}
}

// GeneratePlan builds the schedule for targetDate from the given tasks.
// Only approved, still-open tasks due on or before the target date are
// scheduled, highest priority first.
func (g *Generator) GeneratePlan(ctx context.Context, tasks []*models.Task, targetDate time.Time) models.DailyPlan {
	relevant := filterForDate(tasks, targetDate)

	// Stable, so equal priorities keep their arrival order.
	sort.SliceStable(relevant, func(i, j int) bool {
		return relevant[i].Priority > relevant[j].Priority
	})

	scheduled := g.schedule(relevant, targetDate)

	totalDuration := 0
	for _, st := range scheduled {
		totalDuration += st.EstimatedDuration
	}

	plan := models.DailyPlan{
		Date:              targetDate.Format("2006-01-02"),
		Tasks:             scheduled,
		TotalDuration:     totalDuration,
		PriorityBreakdown: breakdown(scheduled),
		OverloadInfo:      checkBurnout(scheduled),
		AIRecommendations: g.recommend(ctx, scheduled),
		GeneratedAt:       g.now(),
	}

	slog.Info("generated daily plan",
		"date", plan.Date,
		"tasks", len(plan.Tasks),
		"load_pct", plan.OverloadInfo.LoadPercentage)
	return plan
}

func filterForDate(tasks []*models.Task, targetDate time.Time) []*models.Task {
	ty, tm, td := targetDate.Date()
	target := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)

	var relevant []*models.Task
	for _, t := range tasks {
		if !t.Approved {
			continue
		}
		if t.Status != models.StatusPending && t.Status != models.StatusInProgress {
			continue
		}
		// Keep undated open tasks, anything due today, and overdue carryover.
		if t.DueDate != nil {
			dy, dm, dd := t.DueDate.Date()
			due := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
			if due.After(target) {
				continue
			}
		}
		relevant = append(relevant, t)
	}
	return relevant
}

func (g *Generator) schedule(tasks []*models.Task, targetDate time.Time) []models.ScheduledTask {
	current := time.Date(
		targetDate.Year(), targetDate.Month(), targetDate.Day(),
		g.planner.DayStartHour, g.planner.DayStartMinute, 0, 0,
		targetDate.Location(),
	)
	now := g.now()

	scheduled := make([]models.ScheduledTask, 0, len(tasks))
	for _, t := range tasks {
		base := t.DurationOrDefault()
		duration := int(float64(base) * g.planner.TimeRealityFactor)

		riskLevel := t.RiskLevel
		if riskLevel == 0 && t.DueDate != nil {
			riskLevel = risk.DeadlineFallbackRisk(t.DueDate, now)
		}

		consequences := t.Consequences
		if consequences == "" {
			consequences = defaultConsequences
		}

		scheduled = append(scheduled, models.ScheduledTask{
			TaskID:            t.ID,
			Title:             t.Title,
			Priority:          t.Priority,
			RiskLevel:         riskLevel,
			Consequences:      consequences,
			EstimatedDuration: duration,
			OriginalDuration:  base,
			ScheduledTime:     current,
			Source:            t.SourceType,
		})

		buffer := shortTaskBufferMins
		if duration >= 60 {
			buffer = longTaskBufferMins
		}
		current = current.Add(time.Duration(duration+buffer) * time.Minute)
	}
	return scheduled
}

func breakdown(tasks []models.ScheduledTask) models.PriorityBreakdown {
	var b models.PriorityBreakdown
	for _, t := range tasks {
		switch {
		case t.Priority >= 70:
			b.High++
		case t.Priority >= 40:
			b.Medium++
		default:
			b.Low++
		}
	}
	return b
}

func checkBurnout(tasks []models.ScheduledTask) models.OverloadInfo {
	totalMinutes := 0
	for _, t := range tasks {
		totalMinutes += t.EstimatedDuration
	}
	load := float64(totalMinutes) / dayCapacityMinutes * 100

	var regretWarnings []string
	for _, t := range tasks {
		if t.Priority > regretWarningPriorityBand && t.Source == models.SourceManual {
			regretWarnings = append(regretWarnings, fmt.Sprintf(regretWarningFormat, t.Title))
		}
	}

	burnout := "low"
	if load > 110 {
		burnout = "high"
	} else if load > 85 {
		burnout = "medium"
	}

	recommendation := manageableRecommendation
	if load > 90 {
		recommendation = overloadedRecommendation
	}

	return models.OverloadInfo{
		LoadPercentage: math.Round(load*10) / 10,
		IsOverloaded:   load > 90,
		BurnoutRisk:    burnout,
		Recommendation: recommendation,
		RegretWarnings: regretWarnings,
	}
}

func (g *Generator) recommend(ctx context.Context, tasks []models.ScheduledTask) string {
	if len(tasks) == 0 {
		return noTasksRecommendation
	}
	if g.gen == nil {
		return offlineRecommendation
	}

	var summary strings.Builder
	for i, t := range tasks {
		if i == recommendationTaskLimit {
			break
		}
		fmt.Fprintf(&summary, "- %s (Priority: %d, Duration: %d min)\n", t.Title, t.Priority, t.EstimatedDuration)
	}

	response := g.gen.Generate(ctx, llm.GenerationRequest{
		Prompt: fmt.Sprintf(prompts.DailyRecommendationPrompt, strings.TrimRight(summary.String(), "\n")),
	})
	if response == "" {
		return offlineRecommendation
	}
	return strings.TrimSpace(response)
}
