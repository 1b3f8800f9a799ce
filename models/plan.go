package models

import "time"

// CompletionRecord is one historical task completion, the raw input to
// habit analysis.
type CompletionRecord struct {
	TaskID      string     `json:"task_id"`
	Title       string     `json:"title"`
	SourceType  SourceType `json:"source_type"`
	CompletedAt time.Time  `json:"completed_at"`
}

// CompletionPattern holds derived completion statistics. It is recomputed
// on demand from history and never persisted by the core.
type CompletionPattern struct {
	PeakHour             int            `json:"peak_hour"`
	PeakDay              string         `json:"peak_day"`
	HourDistribution     map[int]int    `json:"hour_distribution"`
	DayDistribution      map[string]int `json:"day_distribution"`
	CategoryDistribution map[string]int `json:"category_distribution"`
}

// Empty reports whether the pattern was derived from no data at all.
func (p CompletionPattern) Empty() bool {
	return len(p.HourDistribution) == 0 && len(p.DayDistribution) == 0 && len(p.CategoryDistribution) == 0
}

// ScheduledTask is one slot in a daily plan.
type ScheduledTask struct {
	TaskID            string     `json:"task_id"`
	Title             string     `json:"title"`
	Priority          int        `json:"priority"`
	RiskLevel         int        `json:"risk_level"`
	Consequences      string     `json:"consequences"`
	EstimatedDuration int        `json:"estimated_duration"` // minutes, reality-adjusted
	OriginalDuration  int        `json:"original_duration"`  // minutes, as estimated
	ScheduledTime     time.Time  `json:"scheduled_time"`
	Source            SourceType `json:"source"`
}

// PriorityBreakdown counts scheduled tasks per priority band.
type PriorityBreakdown struct {
	High   int `json:"high"`   // priority >= 70
	Medium int `json:"medium"` // priority >= 40
	Low    int `json:"low"`
}

// OverloadInfo is the day-level workload diagnostic attached to a plan.
type OverloadInfo struct {
	LoadPercentage float64  `json:"load_percentage"`
	IsOverloaded   bool     `json:"is_overloaded"`
	BurnoutRisk    string   `json:"burnout_risk"` // "low", "medium", "high"
	Recommendation string   `json:"recommendation"`
	RegretWarnings []string `json:"regret_warnings"`
}

// OverloadReport is the standalone overload check for a set of tasks due on
// one day, independent of plan generation.
type OverloadReport struct {
	IsOverloaded   bool    `json:"is_overloaded"`
	LoadPercentage float64 `json:"load_percentage"`
	TotalDuration  int     `json:"total_duration"`
	TaskCount      int     `json:"task_count"`
}

// DailyPlan is the generated schedule for one day. Scheduled start times are
// strictly non-decreasing and separated by each task's duration plus a
// buffer.
type DailyPlan struct {
	Date              string            `json:"date"` // YYYY-MM-DD
	Tasks             []ScheduledTask   `json:"tasks"`
	TotalDuration     int               `json:"total_duration"`
	PriorityBreakdown PriorityBreakdown `json:"priority_breakdown"`
	OverloadInfo      OverloadInfo      `json:"overload_info"`
	AIRecommendations string            `json:"ai_recommendations"`
	GeneratedAt       time.Time         `json:"generated_at"`
}
