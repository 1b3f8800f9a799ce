package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// TaskStatus represents the possible statuses of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

// SourceType identifies where a task or piece of text came from.
type SourceType string

const (
	SourceEmail    SourceType = "email"
	SourceDocument SourceType = "document"
	SourceCalendar SourceType = "calendar"
	SourceManual   SourceType = "manual"
)

// Task represents a unit of work tracked by the planner. Persistence of
// tasks is owned by an external collaborator; the core only produces and
// consumes these values.
type Task struct {
	ID                string     `json:"id" validate:"required,uuid4"`
	Title             string     `json:"title" validate:"required,min=3,max=255"`
	Description       string     `json:"description,omitempty"`
	Consequences      string     `json:"consequences,omitempty"`
	Status            TaskStatus `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
	SourceType        SourceType `json:"source_type" validate:"required,oneof=email document calendar manual"`
	Priority          int        `json:"priority" validate:"min=0,max=100"`
	RiskLevel         int        `json:"risk_level" validate:"min=0,max=100"`
	DueDate           *time.Time `json:"due_date,omitempty"`
	EstimatedDuration *int       `json:"estimated_duration,omitempty"` // minutes
	GoalCategory      string     `json:"goal_category,omitempty"`
	InstitutionName   string     `json:"institution_name,omitempty"`
	DependencyID      *string    `json:"dependency_id,omitempty" validate:"omitempty,uuid4"`
	AIGenerated       bool       `json:"ai_generated"`
	Approved          bool       `json:"is_approved"`
	CreatedAt         time.Time  `json:"created_at" validate:"required"`
	UpdatedAt         time.Time  `json:"updated_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

// TaskCandidate is a task proposal produced by the task extractor before it
// is promoted to a persisted Task. New AI candidates default to unapproved.
type TaskCandidate struct {
	Title             string     `json:"title" validate:"required,min=3"`
	Description       string     `json:"description,omitempty"`
	Consequences      string     `json:"consequences,omitempty"`
	Confidence        float64    `json:"confidence_score" validate:"min=0,max=1"`
	DueDate           *time.Time `json:"due_date,omitempty"`
	Priority          int        `json:"priority" validate:"min=0,max=100"`
	EstimatedDuration *int       `json:"estimated_duration,omitempty"`
	GoalCategory      string     `json:"goal_category,omitempty"`
	InstitutionName   string     `json:"institution_name,omitempty"`
	AIGenerated       bool       `json:"ai_generated"`
	Approved          bool       `json:"is_approved"`
}

// UserFeedback carries explicit user signals consumed by the priority
// scorer. PriorityOverride, when set, replaces the computed score entirely.
type UserFeedback struct {
	Important        bool `json:"important"`
	Starred          bool `json:"starred"`
	Pinned           bool `json:"pinned"`
	PriorityOverride *int `json:"priority_override,omitempty"`
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("Validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}

// NewTask creates a Task from a candidate with timestamps and status defaults.
func NewTask(id string, c TaskCandidate, source SourceType) *Task {
	now := time.Now()
	return &Task{
		ID:                id,
		Title:             c.Title,
		Description:       c.Description,
		Consequences:      c.Consequences,
		Status:            StatusPending,
		SourceType:        source,
		Priority:          c.Priority,
		DueDate:           c.DueDate,
		EstimatedDuration: c.EstimatedDuration,
		GoalCategory:      c.GoalCategory,
		InstitutionName:   c.InstitutionName,
		AIGenerated:       c.AIGenerated,
		Approved:          c.Approved,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// DurationOrDefault returns the estimated duration in minutes, defaulting to
// 60 when unset.
func (t *Task) DurationOrDefault() int {
	if t.EstimatedDuration == nil {
		return 60
	}
	return *t.EstimatedDuration
}
