// Package classify assigns documents to a fixed category set. It prefers
// the generation gateway and degrades to keyword matching whenever the
// gateway is unreachable or returns something unparseable, so callers
// always get a category back.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"dayplan/internal/llm"
	"dayplan/models"
	"dayplan/prompts"
)

// Categories is the canonical category set. Classification results always
// come from this list.
var Categories = []string{
	"invoice",
	"receipt",
	"contract",
	"letter",
	"form",
	"report",
	"statement",
	"bill",
	"other",
}

const contentPreviewLimit = 3000

// classification temperature is kept low for consistent labels.
const classifyTemperature = 0.2

// fallbackKeywords drive the keyword classifier used when no model is
// reachable. Scores count matching keywords per category.
var fallbackKeywords = map[string][]string{
	"invoice":   {"invoice", "bill to", "amount due"},
	"receipt":   {"receipt", "thank you for your purchase", "payment received"},
	"contract":  {"contract", "agreement", "terms and conditions"},
	"letter":    {"dear", "sincerely", "yours truly"},
	"form":      {"form", "application", "please fill"},
	"report":    {"report", "summary", "analysis"},
	"statement": {"statement", "account statement", "balance"},
	"bill":      {"bill", "amount due", "payment due"},
}

// categoryVariants maps off-list labels the model may produce back onto the
// canonical set.
var categoryVariants = map[string][]string{
	"invoice":   {"bill", "billing", "charge"},
	"receipt":   {"payment confirmation", "purchase receipt"},
	"contract":  {"agreement", "terms", "legal"},
	"letter":    {"correspondence", "mail", "message"},
	"form":      {"application", "questionnaire", "survey"},
	"report":    {"analysis", "summary", "review"},
	"statement": {"account statement", "financial statement"},
	"bill":      {"invoice", "payment due", "charge"},
}

// Classifier labels document text with one of the canonical categories.
type Classifier struct {
	gen llm.Generator
}

// New returns a Classifier backed by the given generator.
func New(gen llm.Generator) *Classifier {
	return &Classifier{gen: gen}
}

// Classify labels the document. fileName may be empty; when set it is
// offered to the model alongside the content since extensions and naming
// conventions are strong signals.
func (c *Classifier) Classify(ctx context.Context, text, fileName string) models.ClassificationResult {
	if c.gen == nil || !c.gen.CheckConnection(ctx) {
		slog.Warn("model unavailable, using keyword fallback classification")
		return fallbackClassify(text, fileName)
	}

	name := fileName
	if name == "" {
		name = "unknown"
	}
	preview := text
	if len(preview) > contentPreviewLimit {
		preview = preview[:contentPreviewLimit]
	}
	userPrompt := fmt.Sprintf(prompts.ClassifyDocumentUserPrompt, name, contentPreviewLimit, preview)

	response := c.gen.Generate(ctx, llm.GenerationRequest{
		Prompt:       userPrompt,
		SystemPrompt: prompts.ClassifyDocumentSystemPrompt,
		Format:       llm.FormatJSON,
		Temperature:  classifyTemperature,
	})
	if response == "" {
		slog.Warn("empty classification response, using keyword fallback")
		return fallbackClassify(text, fileName)
	}

	var parsed struct {
		Category   string  `json:"category"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(response)), &parsed); err != nil {
		slog.Warn("failed to parse classification response", "error", err)
		return fallbackClassify(text, fileName)
	}

	category := strings.TrimSpace(strings.ToLower(parsed.Category))
	if !isCanonical(category) {
		category = similarCategory(category)
	}
	confidence := clamp01(parsed.Confidence)

	slog.Info("document classified", "category", category, "confidence", confidence)
	return models.ClassificationResult{Category: category, Confidence: confidence}
}

func fallbackClassify(text, fileName string) models.ClassificationResult {
	combined := strings.ToLower(text) + " " + strings.ToLower(fileName)

	bestCategory := ""
	bestScore := 0
	for _, category := range Categories {
		score := 0
		for _, keyword := range fallbackKeywords[category] {
			if strings.Contains(combined, keyword) {
				score++
			}
		}
		if score > bestScore {
			bestCategory = category
			bestScore = score
		}
	}

	if bestScore > 0 {
		confidence := float64(bestScore) / 3.0
		if confidence > 0.8 {
			confidence = 0.8 // keyword matches never claim model-grade certainty
		}
		return models.ClassificationResult{Category: bestCategory, Confidence: confidence}
	}
	return models.ClassificationResult{Category: "other", Confidence: 0.5}
}

// similarCategory maps an off-list label onto the canonical set, or "other"
// when nothing matches.
func similarCategory(category string) string {
	for _, canonical := range Categories {
		variants := categoryVariants[canonical]
		for _, v := range variants {
			if category == v || strings.Contains(category, v) {
				return canonical
			}
		}
	}
	return "other"
}

func isCanonical(category string) bool {
	for _, c := range Categories {
		if category == c {
			return true
		}
	}
	return false
}

// stripCodeFence removes a surrounding markdown code fence some models wrap
// around JSON despite instructions.
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

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
