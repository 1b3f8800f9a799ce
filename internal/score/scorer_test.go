package score

import (
	"strings"
	"testing"
	"time"

	"dayplan/models"
)

// Tuesday, 14:00 UTC. Within business hours, so ScoreTask always carries
// the +2 work-hours bonus in these tests.
var anchor = time.Date(2025, 3, 11, 14, 0, 0, 0, time.UTC)

func anchorClock() time.Time { return anchor }

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func TestScoreTask(t *testing.T) {
	tests := []struct {
		name string
		in   TaskInput
		want int
	}{
		{
			"due in 30 minutes",
			TaskInput{DueDate: timePtr(anchor.Add(30 * time.Minute))},
			82, // 50 base +30 urgency +2 work hours
		},
		{
			"overdue five days",
			TaskInput{DueDate: timePtr(anchor.Add(-5 * 24 * time.Hour))},
			97, // 50 +35 overdue +10 scaled +2
		},
		{
			"far future deadline",
			TaskInput{DueDate: timePtr(anchor.Add(10 * 24 * time.Hour))},
			42, // 50 -10 +2
		},
		{
			"email source with asap keyword",
			TaskInput{SourceType: models.SourceEmail, Title: "Reply ASAP"},
			80, // 50 +8 source +20 keyword +2
		},
		{
			"stale task gains age bonus",
			TaskInput{CreatedAt: anchor.Add(-20 * 24 * time.Hour)},
			62, // 50 +10 age +2
		},
		{
			"vip sender at important domain",
			TaskInput{Sender: "manager@company.com"},
			72, // 50 +12 domain +8 vip +2
		},
		{
			"feedback flags clamp at 100",
			TaskInput{Feedback: &models.UserFeedback{Important: true, Starred: true, Pinned: true}},
			100,
		},
		{
			"long description with communication keyword",
			TaskInput{Description: strings.Repeat("x", 500) + " meeting"},
			60, // 50 +3 length +5 communication +2
		},
	}

	s := New(anchorClock)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.ScoreTask(tt.in); got != tt.want {
				t.Errorf("ScoreTask() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreTaskOverrideReplacesComputedScore(t *testing.T) {
	s := New(anchorClock)
	in := TaskInput{
		DueDate:  timePtr(anchor.Add(time.Hour)),
		Feedback: &models.UserFeedback{Important: true, PriorityOverride: intPtr(10)},
	}
	if got := s.ScoreTask(in); got != 10 {
		t.Errorf("ScoreTask() = %d, want override 10", got)
	}

	in.Feedback.PriorityOverride = intPtr(150)
	if got := s.ScoreTask(in); got != 100 {
		t.Errorf("ScoreTask() = %d, want clamped override 100", got)
	}
}

func TestScoreEmail(t *testing.T) {
	tests := []struct {
		name string
		in   EmailInput
		want int
	}{
		{
			"fyi email scores low",
			EmailInput{Text: "fyi, the office closes early", ReceivedAt: anchor.Add(-2 * time.Hour)},
			58, // 50 -5 fyi +5 recency +8 unread
		},
		{
			"urgent actionable email clamps at 100",
			EmailInput{
				Text:       "urgent: please review the attached contract",
				Subject:    "Review needed?",
				Sender:     "ceo@company.com",
				ReceivedAt: anchor.Add(-30 * time.Minute),
			},
			100,
		},
		{
			"read stale email decays",
			EmailInput{Text: "newsletter content", ReceivedAt: anchor.Add(-200 * time.Hour), IsRead: true},
			40, // 50 -5 stale -5 read
		},
		{
			"important flag",
			EmailInput{ReceivedAt: anchor.Add(-2 * time.Hour), IsRead: true, Important: true},
			70, // 50 +5 recency -5 read +20 flag
		},
	}

	s := New(anchorClock)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.ScoreEmail(tt.in); got != tt.want {
				t.Errorf("ScoreEmail() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoresStayInRange(t *testing.T) {
	s := New(anchorClock)

	low := s.ScoreTask(TaskInput{DueDate: timePtr(anchor.Add(1000 * 24 * time.Hour))})
	if low < 0 || low > 100 {
		t.Errorf("ScoreTask() = %d, out of [0,100]", low)
	}

	high := s.ScoreEmail(EmailInput{
		Text:       "urgent critical meeting follow up with attachment, still waiting " + strings.Repeat("x", 1000),
		Subject:    "Please review and approve?",
		Sender:     "ceo director hr@company.com",
		ReceivedAt: anchor,
	})
	if high != 100 {
		t.Errorf("ScoreEmail() = %d, want saturated 100", high)
	}
}
