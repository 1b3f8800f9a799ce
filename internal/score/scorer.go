// Package score computes deterministic priority scores in [0,100] for
// tasks and emails. Scoring is pure arithmetic over explicit signals, so
// identical inputs always produce identical scores.
package score

import (
	"strings"
	"time"

	"dayplan/models"
)

const baseScore = 50

// weightedKeyword pairs a trigger phrase with its score contribution. Only
// the first match in scan order counts.
type weightedKeyword struct {
	keyword string
	weight  int
}

var taskKeywords = []weightedKeyword{
	{"urgent", 15},
	{"asap", 20},
	{"immediately", 15},
	{"critical", 15},
	{"deadline", 10},
	{"important", 8},
	{"action required", 12},
	{"review by", 8},
	{"submit by", 10},
	{"respond by", 8},
}

var emailKeywords = []weightedKeyword{
	{"urgent", 15},
	{"asap", 20},
	{"immediately", 15},
	{"critical", 15},
	{"deadline", 12},
	{"important", 10},
	{"action required", 12},
	{"fyi", -5},
	{"no action needed", -10},
	{"for your information", -5},
}

var importantDomains = []string{"@company.com", "@work.com", "@manager", "@boss"}

var emailImportantDomains = []string{"@company.com", "@work.com", "@manager", "@boss", "@hr"}

var vipWords = []string{"ceo", "director", "manager", "lead"}

var emailVIPWords = []string{"ceo", "director", "manager", "lead", "hr", "finance"}

var subjectActionVerbs = []string{"review", "approve", "sign", "submit", "respond", "reply", "call"}

// TaskInput carries the signals the task scorer consumes. DueDate, Sender
// and Feedback are optional.
type TaskInput struct {
	DueDate     *time.Time
	CreatedAt   time.Time
	SourceType  models.SourceType
	Feedback    *models.UserFeedback
	Title       string
	Description string
	Sender      string
}

// EmailInput carries the signals the email scorer consumes.
type EmailInput struct {
	Text       string
	Subject    string
	Sender     string
	ReceivedAt time.Time
	IsRead     bool
	Important  bool
}

// Scorer computes priorities. The clock is injectable for tests; nil means
// time.Now.
type Scorer struct {
	Now func() time.Time
}

func New(now func() time.Time) *Scorer {
	if now == nil {
		now = time.Now
	}
	return &Scorer{Now: now}
}

// ScoreTask computes a 0-100 priority from urgency, source, keywords,
// sender, age and user feedback. An explicit override in the feedback
// replaces the computed score entirely.
func (s *Scorer) ScoreTask(in TaskInput) int {
	if in.Feedback != nil && in.Feedback.PriorityOverride != nil {
		return clamp(*in.Feedback.PriorityOverride)
	}

	now := s.Now()
	score := baseScore

	if in.DueDate != nil {
		hoursUntilDue := in.DueDate.Sub(now).Hours()
		switch {
		case hoursUntilDue < 0:
			score += 35
			daysOverdue := -hoursUntilDue / 24
			extra := int(daysOverdue * 2)
			if extra > 15 {
				extra = 15
			}
			score += extra
		case hoursUntilDue < 6:
			score += 30
		case hoursUntilDue < 24:
			score += 25
		case hoursUntilDue < 48:
			score += 20
		case hoursUntilDue < 72:
			score += 15
		case hoursUntilDue < 168:
			score += 5
		default:
			score -= 10
		}
	}

	switch in.SourceType {
	case models.SourceEmail:
		score += 8
	case models.SourceDocument:
		score += 5
	case models.SourceCalendar:
		score += 10
	}

	score += firstKeywordWeight(strings.ToLower(in.Title+" "+in.Description), taskKeywords)

	if in.Sender != "" {
		sender := strings.ToLower(in.Sender)
		if containsAny(sender, importantDomains) {
			score += 12
		}
		if containsAny(sender, vipWords) {
			score += 8
		}
	}

	if !in.CreatedAt.IsZero() {
		ageDays := int(now.Sub(in.CreatedAt).Hours() / 24)
		if ageDays > 14 {
			score += 10
		} else if ageDays > 7 {
			score += 5
		}
	}

	if in.Feedback != nil {
		if in.Feedback.Important {
			score += 25
		}
		if in.Feedback.Starred {
			score += 20
		}
		if in.Feedback.Pinned {
			score += 15
		}
	}

	if in.Description != "" {
		if len(in.Description) > 500 {
			score += 3
		}
		if containsAny(strings.ToLower(in.Description), []string{"meeting", "call", "presentation"}) {
			score += 5
		}
	}

	if h := now.Hour(); h >= 9 && h <= 17 {
		score += 2
	}

	return clamp(score)
}

// ScoreEmail computes a 0-100 priority for an email from its text, subject,
// sender, recency, read state and the explicit important flag.
func (s *Scorer) ScoreEmail(in EmailInput) int {
	now := s.Now()
	score := baseScore

	textLower := strings.ToLower(in.Text + " " + in.Subject)
	score += firstKeywordWeight(textLower, emailKeywords)

	if in.Subject != "" {
		subjectLower := strings.ToLower(in.Subject)
		if containsAny(subjectLower, subjectActionVerbs) {
			score += 8
		}
		if strings.Contains(in.Subject, "?") {
			score += 5
		}
	}

	if in.Sender != "" {
		sender := strings.ToLower(in.Sender)
		if containsAny(sender, emailImportantDomains) {
			score += 12
		}
		if containsAny(sender, emailVIPWords) {
			score += 10
		}
		if strings.Contains(sender, "sent") || strings.Contains(sender, "from: me") {
			score -= 5
		}
	}

	hoursOld := now.Sub(in.ReceivedAt).Hours()
	switch {
	case hoursOld < 1:
		score += 10
	case hoursOld < 6:
		score += 5
	case hoursOld > 168:
		score -= 5
	}

	if in.IsRead {
		score -= 5
	} else {
		score += 8
	}

	if in.Important {
		score += 20
	}

	if len(in.Text) > 1000 {
		score += 3
	}

	if containsAny(textLower, []string{"attachment", "attached"}) {
		score += 5
	}
	if containsAny(textLower, []string{"meeting", "calendar", "schedule", "appointment"}) {
		score += 8
	}
	if containsAny(textLower, []string{"follow up", "reminder", "second request", "still waiting"}) {
		score += 12
	}

	return clamp(score)
}

func firstKeywordWeight(text string, keywords []weightedKeyword) int {
	for _, kw := range keywords {
		if strings.Contains(text, kw.keyword) {
			return kw.weight
		}
	}
	return 0
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
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
