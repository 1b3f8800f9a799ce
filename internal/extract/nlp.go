package extract

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/jdkato/prose/v2"

	"dayplan/models"
)

// Token is one tagged token from the language capability.
type Token struct {
	Text string
	Tag  string // Penn Treebank tag; verbs start with "VB"
}

// Entity is one named entity from the language capability.
type Entity struct {
	Text  string
	Label string // PERSON, ORG, GPE, LOC, DATE
}

// Language is the sentence/POS/NER capability consumed by the NLP
// extractor. The default implementation wraps prose; tests substitute a
// scripted one.
type Language interface {
	Sentences(text string) []string
	Tokens(text string) []Token
	Entities(text string) []Entity
}

// actionKeywords flag a sentence as a potential action item.
var actionKeywords = []string{
	"please", "need to", "should", "must", "required",
	"action", "task", "todo", "reminder", "follow up",
}

// NLPExtractor extracts entities and action items from text.
type NLPExtractor struct {
	lang Language
}

// NewNLPExtractor builds an extractor over the given language capability;
// nil selects the shared prose-backed engine, initialized at most once.
func NewNLPExtractor(lang Language) *NLPExtractor {
	if lang == nil {
		lang = sharedLanguage()
	}
	return &NLPExtractor{lang: lang}
}

// ExtractEntities groups named entities into person, organization,
// location and date buckets.
func (e *NLPExtractor) ExtractEntities(text string) models.Entities {
	entities := models.Entities{
		People:        []string{},
		Organizations: []string{},
		Locations:     []string{},
		Dates:         []string{},
	}

	for _, ent := range e.lang.Entities(text) {
		switch ent.Label {
		case "PERSON":
			entities.People = append(entities.People, ent.Text)
		case "ORG", "ORGANIZATION":
			entities.Organizations = append(entities.Organizations, ent.Text)
		case "GPE", "LOC", "LOCATION":
			entities.Locations = append(entities.Locations, ent.Text)
		case "DATE":
			entities.Dates = append(entities.Dates, ent.Text)
		}
	}
	return entities
}

// ExtractActionItems returns sentences that contain an action keyword and
// open with a verb.
func (e *NLPExtractor) ExtractActionItems(text string) []string {
	var items []string

	for _, sentence := range e.lang.Sentences(text) {
		lower := strings.ToLower(sentence)
		keyworded := false
		for _, kw := range actionKeywords {
			if strings.Contains(lower, kw) {
				keyworded = true
				break
			}
		}
		if !keyworded {
			continue
		}

		tokens := e.lang.Tokens(sentence)
		if len(tokens) == 0 || !strings.HasPrefix(tokens[0].Tag, "VB") {
			continue
		}
		items = append(items, strings.TrimSpace(sentence))
	}
	return items
}

// proseLanguage adapts the prose NLP library to the Language interface.
// Prose loads its embedded model data on document creation; the shared
// instance below keeps that a process-wide concern.
type proseLanguage struct{}

func (proseLanguage) Sentences(text string) []string {
	doc, err := prose.NewDocument(text, prose.WithTagging(false), prose.WithExtraction(false))
	if err != nil {
		slog.Warn("sentence segmentation failed", "error", err)
		return nil
	}
	var out []string
	for _, s := range doc.Sentences() {
		out = append(out, s.Text)
	}
	return out
}

func (proseLanguage) Tokens(text string) []Token {
	doc, err := prose.NewDocument(text, prose.WithExtraction(false))
	if err != nil {
		slog.Warn("tokenization failed", "error", err)
		return nil
	}
	var out []Token
	for _, t := range doc.Tokens() {
		out = append(out, Token{Text: t.Text, Tag: t.Tag})
	}
	return out
}

func (proseLanguage) Entities(text string) []Entity {
	doc, err := prose.NewDocument(text)
	if err != nil {
		slog.Warn("entity extraction failed", "error", err)
		return nil
	}
	var out []Entity
	for _, e := range doc.Entities() {
		out = append(out, Entity{Text: e.Text, Label: e.Label})
	}
	return out
}

var (
	sharedLangOnce sync.Once
	sharedLang     Language
)

// sharedLanguage returns the process-wide prose engine, created on first
// use and safe for concurrent reads thereafter.
func sharedLanguage() Language {
	sharedLangOnce.Do(func() {
		sharedLang = proseLanguage{}
	})
	return sharedLang
}
