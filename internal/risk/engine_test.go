package risk

import (
	"testing"
	"time"

	"dayplan/models"
)

// Tuesday, 14:00 UTC — past the default 10:00 peak hour.
var anchor = time.Date(2025, 3, 11, 14, 0, 0, 0, time.UTC)

func anchorClock() time.Time { return anchor }

func timePtr(t time.Time) *time.Time { return &t }

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

func baseTask() *models.Task {
	return &models.Task{
		ID:         "11111111-2222-4333-8444-555555555555",
		Title:      "some task",
		Status:     models.StatusPending,
		SourceType: models.SourceManual,
		Priority:   50,
	}
}

func TestTaskRisk(t *testing.T) {
	noPattern := models.CompletionPattern{}

	tests := []struct {
		name  string
		setup func(*models.Task)
		want  int
	}{
		{
			"completed task has no risk",
			func(task *models.Task) { task.Status = models.StatusCompleted },
			0,
		},
		{
			"no deadline baseline",
			func(task *models.Task) {},
			15, // completion-probability term only
		},
		{
			"dependency adds risk",
			func(task *models.Task) { task.DependencyID = strPtr("66666666-7777-4888-8999-000000000000") },
			35,
		},
		{
			"long task adds risk",
			func(task *models.Task) { task.EstimatedDuration = intPtr(180) },
			25,
		},
		{
			"due tomorrow",
			func(task *models.Task) { task.DueDate = timePtr(anchor.Add(30 * time.Hour)) },
			32, // 20 deadline + 12 probability
		},
		{
			"due today after peak hour",
			func(task *models.Task) { task.DueDate = timePtr(anchor.Add(9 * time.Hour)) },
			67, // 40 deadline + 15 past peak + 12 probability
		},
		{
			"due within the hour saturates",
			func(task *models.Task) { task.DueDate = timePtr(anchor.Add(30 * time.Minute)) },
			100,
		},
		{
			"overdue since yesterday saturates",
			func(task *models.Task) { task.DueDate = timePtr(anchor.Add(-26 * time.Hour)) },
			100,
		},
	}

	e := New(anchorClock)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := baseTask()
			tt.setup(task)
			if got := e.TaskRisk(task, noPattern); got != tt.want {
				t.Errorf("TaskRisk() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTaskRiskUsesPatternPeakHour(t *testing.T) {
	task := baseTask()
	task.DueDate = timePtr(anchor.Add(9 * time.Hour)) // due today at 23:00

	// Peak hour after the current hour: no past-peak penalty.
	pattern := models.CompletionPattern{
		PeakHour:         16,
		HourDistribution: map[int]int{16: 3},
	}

	e := New(anchorClock)
	if got := e.TaskRisk(task, pattern); got != 52 {
		t.Errorf("TaskRisk() = %d, want 52 without past-peak penalty", got)
	}
}

func TestDetectOverload(t *testing.T) {
	e := New(anchorClock)
	target := anchor

	var tasks []*models.Task
	for i := 0; i < 10; i++ {
		task := baseTask()
		task.DueDate = timePtr(anchor.Add(time.Duration(i) * time.Minute))
		task.EstimatedDuration = intPtr(90)
		tasks = append(tasks, task)
	}
	// Noise that must not count: no deadline, or due another day.
	tasks = append(tasks, baseTask())
	other := baseTask()
	other.DueDate = timePtr(anchor.Add(48 * time.Hour))
	tasks = append(tasks, other)

	report := e.DetectOverload(tasks, target)

	if !report.IsOverloaded {
		t.Error("IsOverloaded = false, want true")
	}
	if report.LoadPercentage != 187.5 {
		t.Errorf("LoadPercentage = %v, want 187.5", report.LoadPercentage)
	}
	if report.TotalDuration != 900 {
		t.Errorf("TotalDuration = %d, want 900", report.TotalDuration)
	}
	if report.TaskCount != 10 {
		t.Errorf("TaskCount = %d, want 10", report.TaskCount)
	}
}

func TestDetectOverloadEmptyDay(t *testing.T) {
	e := New(anchorClock)
	report := e.DetectOverload(nil, anchor)

	if report.IsOverloaded {
		t.Error("IsOverloaded = true for empty day")
	}
	if report.LoadPercentage != 0 || report.TotalDuration != 0 || report.TaskCount != 0 {
		t.Errorf("report = %+v, want zeroes", report)
	}
}

func TestDeadlineFallbackRisk(t *testing.T) {
	tests := []struct {
		name string
		due  *time.Time
		want int
	}{
		{"no deadline", nil, 15},
		{"due in 10 hours", timePtr(anchor.Add(10 * time.Hour)), 75},
		{"due in 30 hours", timePtr(anchor.Add(30 * time.Hour)), 45},
		{"due in 100 hours", timePtr(anchor.Add(100 * time.Hour)), 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeadlineFallbackRisk(tt.due, anchor); got != tt.want {
				t.Errorf("DeadlineFallbackRisk() = %d, want %d", got, tt.want)
			}
		})
	}
}
