package models

import "time"

// Currency tags recognized by the amount extractor.
type Currency string

const (
	CurrencyUSD     Currency = "USD"
	CurrencyEUR     Currency = "EUR"
	CurrencyGBP     Currency = "GBP"
	CurrencyINR     Currency = "INR"
	CurrencyUnknown Currency = "UNKNOWN"
)

// ExtractedDate is a date mention found in text. Parsed is nil only while a
// match is being resolved; unparsable matches are dropped, never reported.
type ExtractedDate struct {
	Text       string     `json:"text"`
	Parsed     *time.Time `json:"parsed,omitempty"`
	Start      int        `json:"start"`
	End        int        `json:"end"`
	Confidence float64    `json:"confidence"`
}

// ExtractedAmount is a monetary amount found in text.
type ExtractedAmount struct {
	Text       string   `json:"text"`
	Value      float64  `json:"value"`
	Currency   Currency `json:"currency"`
	Start      int      `json:"start"`
	End        int      `json:"end"`
	Confidence float64  `json:"confidence"`
}

// Entities groups named entities recognized in a text.
type Entities struct {
	People        []string `json:"people"`
	Organizations []string `json:"organizations"`
	Locations     []string `json:"locations"`
	Dates         []string `json:"dates"`
}

// ClassificationResult is the outcome of document classification. Category
// is always a member of the canonical category set.
type ClassificationResult struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence" validate:"min=0,max=1"`
}
