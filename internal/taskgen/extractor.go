// Package taskgen turns free text into validated task candidates. The model
// does the heavy lifting; everything it returns is re-validated here because
// model output is untrusted input.
package taskgen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"dayplan/internal/extract"
	"dayplan/internal/llm"
	"dayplan/models"
	"dayplan/prompts"
)

const (
	textLimit        = 4000
	titleLimit       = 200
	descriptionLimit = 1000
	maxFallbackTasks = 5
	maxDurationMins  = 1440

	// similarity threshold for title dedup (Jaccard over words)
	dedupThreshold = 0.8

	extractTemperature = 0.3
)

// completionWords mark titles that describe past events rather than work to
// do. Candidates containing one are dropped.
var completionWords = []string{"completed", "done", "finished", "sent", "received"}

// Context carries optional metadata about the text being processed, folded
// into the prompt when present.
type Context struct {
	SenderEmail string
	Subject     string
}

// Extractor produces task candidates from raw text.
type Extractor struct {
	gen   llm.Generator
	nlp   *extract.NLPExtractor
	dates *extract.DateExtractor
}

// New returns an Extractor. nlp and dates may be nil, in which case shared
// default extractors are used.
func New(gen llm.Generator, nlp *extract.NLPExtractor, dates *extract.DateExtractor) *Extractor {
	if nlp == nil {
		nlp = extract.NewNLPExtractor(nil)
	}
	if dates == nil {
		dates = extract.NewDateExtractor(nil)
	}
	return &Extractor{gen: gen, nlp: nlp, dates: dates}
}

// ExtractTasks pulls actionable tasks out of text. When the model is
// unreachable or returns garbage it degrades to the NLP action-item
// fallback, so the result is usable either way.
func (e *Extractor) ExtractTasks(ctx context.Context, text string, source models.SourceType, tctx *Context) []models.TaskCandidate {
	dates := e.dates.ExtractDates(text)

	if e.gen == nil || !e.gen.CheckConnection(ctx) {
		slog.Warn("model unavailable, using NLP fallback extraction")
		return e.fallbackExtract(text, dates)
	}

	response := e.gen.Generate(ctx, llm.GenerationRequest{
		Prompt:       buildUserPrompt(text, source, tctx, dates),
		SystemPrompt: prompts.ExtractTasksSystemPrompt,
		Format:       llm.FormatJSON,
		Temperature:  extractTemperature,
	})
	if response == "" {
		slog.Warn("empty extraction response, using NLP fallback")
		return e.fallbackExtract(text, dates)
	}

	raw, err := parseResponse(response)
	if err != nil {
		slog.Warn("failed to parse task extraction response, using NLP fallback", "error", err)
		return e.fallbackExtract(text, dates)
	}

	candidates := make([]models.TaskCandidate, 0, len(raw))
	for _, rt := range raw {
		c, ok := validateCandidate(rt, dates)
		if !ok {
			continue
		}
		candidates = append(candidates, c)
	}
	candidates = deduplicate(candidates)

	slog.Info("extracted tasks", "count", len(candidates), "source", source)
	return candidates
}

func buildUserPrompt(text string, source models.SourceType, tctx *Context, dates []models.ExtractedDate) string {
	var info strings.Builder
	if tctx != nil {
		if tctx.SenderEmail != "" {
			fmt.Fprintf(&info, "\nSender: %s\n", tctx.SenderEmail)
		}
		if tctx.Subject != "" {
			fmt.Fprintf(&info, "Subject: %s\n", tctx.Subject)
		}
		if len(dates) > 0 {
			texts := make([]string, 0, 3)
			for _, d := range dates {
				texts = append(texts, d.Text)
				if len(texts) == 3 {
					break
				}
			}
			fmt.Fprintf(&info, "Dates found in text: %v\n", texts)
		}
	}
	if len(text) > textLimit {
		text = text[:textLimit]
	}
	return fmt.Sprintf(prompts.ExtractTasksUserPrompt, source, info.String(), text)
}

// rawTask mirrors the JSON shape the model is asked for. Numeric fields are
// pointers to float64 so missing and malformed values can be told apart.
type rawTask struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Consequences      string   `json:"consequences"`
	ConfidenceScore   *float64 `json:"confidence_score"`
	DueDate           *string  `json:"due_date"`
	Priority          *float64 `json:"priority"`
	EstimatedDuration *float64 `json:"estimated_duration"`
	GoalCategory      string   `json:"goal_category"`
	InstitutionName   string   `json:"institution_name"`
}

// parseResponse accepts either a JSON array of tasks or a single object.
func parseResponse(response string) ([]rawTask, error) {
	cleaned := stripCodeFence(response)

	var tasks []rawTask
	if err := json.Unmarshal([]byte(cleaned), &tasks); err == nil {
		return tasks, nil
	}
	var single rawTask
	if err := json.Unmarshal([]byte(cleaned), &single); err != nil {
		return nil, err
	}
	return []rawTask{single}, nil
}

// validateCandidate enforces the contract the prompt promises: short sane
// titles, clamped numeric ranges, parseable due dates. Returns false when
// the raw task should be dropped.
func validateCandidate(rt rawTask, dates []models.ExtractedDate) (models.TaskCandidate, bool) {
	title := strings.TrimSpace(rt.Title)
	if len(title) < 3 {
		return models.TaskCandidate{}, false
	}
	lower := strings.ToLower(title)
	for _, w := range completionWords {
		if strings.Contains(lower, w) {
			return models.TaskCandidate{}, false
		}
	}

	c := models.TaskCandidate{
		Title:           title,
		Description:     cleanDescription(rt.Description),
		Consequences:    strings.TrimSpace(rt.Consequences),
		Confidence:      validateConfidence(rt.ConfidenceScore),
		DueDate:         parseDueDate(rt.DueDate, dates),
		Priority:        validatePriority(rt.Priority),
		GoalCategory:    rt.GoalCategory,
		InstitutionName: rt.InstitutionName,
		AIGenerated:     true,
		Approved:        false, // new candidates need approval
	}
	if d := validateDuration(rt.EstimatedDuration); d != nil {
		c.EstimatedDuration = d
	}
	return c, true
}

func cleanDescription(description string) string {
	desc := strings.TrimSpace(description)
	if len(desc) < 5 {
		return ""
	}
	if len(desc) > descriptionLimit {
		return desc[:descriptionLimit] + "..."
	}
	return desc
}

func validateConfidence(v *float64) float64 {
	if v == nil {
		return 1.0
	}
	if *v < 0 {
		return 0
	}
	if *v > 1 {
		return 1
	}
	return *v
}

func validatePriority(v *float64) int {
	if v == nil {
		return 50
	}
	p := int(*v)
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func validateDuration(v *float64) *int {
	if v == nil {
		return nil
	}
	d := int(*v)
	if d < 1 {
		return nil
	}
	if d > maxDurationMins {
		d = maxDurationMins
	}
	return &d
}

var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDueDate parses the model's date string, falling back to the first
// date the regex extractor found in the source text.
func parseDueDate(s *string, dates []models.ExtractedDate) *time.Time {
	if s != nil && *s != "" {
		for _, layout := range dueDateLayouts {
			if t, err := time.Parse(layout, *s); err == nil {
				return &t
			}
		}
		slog.Debug("unparseable due date from model", "value", *s)
	}
	for _, d := range dates {
		if d.Parsed != nil {
			return d.Parsed
		}
	}
	return nil
}

// deduplicate drops candidates whose titles are exact or near duplicates of
// an earlier one. First occurrence wins.
func deduplicate(candidates []models.TaskCandidate) []models.TaskCandidate {
	if len(candidates) <= 1 {
		return candidates
	}

	unique := candidates[:0:0]
	var seen []string
	for _, c := range candidates {
		lower := strings.ToLower(strings.TrimSpace(c.Title))
		duplicate := false
		for _, s := range seen {
			if lower == s || titlesSimilar(lower, s) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			seen = append(seen, lower)
			unique = append(unique, c)
		}
	}
	return unique
}

// titlesSimilar reports whether two lowercased titles share enough words
// (Jaccard similarity over whitespace-split words).
func titlesSimilar(a, b string) bool {
	wordsA := wordSet(a)
	wordsB := wordSet(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return false
	}

	intersection := 0
	for w := range wordsA {
		if wordsB[w] {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection
	return float64(intersection)/float64(union) >= dedupThreshold
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}

// fallbackExtract builds low-confidence candidates from NLP action items
// when no model is reachable.
func (e *Extractor) fallbackExtract(text string, dates []models.ExtractedDate) []models.TaskCandidate {
	items := e.nlp.ExtractActionItems(text)

	var due *time.Time
	for _, d := range dates {
		if d.Parsed != nil {
			due = d.Parsed
			break
		}
	}

	var candidates []models.TaskCandidate
	for _, item := range items {
		if len(candidates) == maxFallbackTasks {
			break
		}
		title := item
		if len(title) > titleLimit {
			title = title[:titleLimit]
		}
		candidates = append(candidates, models.TaskCandidate{
			Title:       title,
			DueDate:     due,
			Priority:    50,
			AIGenerated: true,
		})
	}
	return candidates
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
