package extract

import (
	"testing"
	"time"
)

// anchor is a Tuesday.
var anchor = time.Date(2025, 3, 11, 14, 0, 0, 0, time.UTC)

func anchorClock() time.Time { return anchor }

func TestExtractDatesAbsoluteFormats(t *testing.T) {
	e := NewDateExtractor(anchorClock)

	tests := []struct {
		name     string
		text     string
		wantText string
		wantDate time.Time
		wantConf float64
	}{
		{
			name:     "numeric month first",
			text:     "The invoice is due 03/15/2025 at the latest.",
			wantText: "03/15/2025",
			wantDate: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
			wantConf: 0.8,
		},
		{
			name:     "numeric day first swapped",
			text:     "submitted 25/03/2025",
			wantText: "25/03/2025",
			wantDate: time.Date(2025, 3, 25, 0, 0, 0, 0, time.UTC),
			wantConf: 0.8,
		},
		{
			name:     "iso date",
			text:     "deadline 2025-04-01 per the contract",
			wantText: "2025-04-01",
			wantDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			wantConf: 0.8,
		},
		{
			name:     "day month year",
			text:     "see you on 15 March 2025",
			wantText: "15 March 2025",
			wantDate: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
			wantConf: 0.8,
		},
		{
			name:     "month day year",
			text:     "payment received March 15, 2025 thanks",
			wantText: "March 15, 2025",
			wantDate: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
			wantConf: 0.8,
		},
		{
			name:     "two digit year",
			text:     "renewal on 7/4/26",
			wantText: "7/4/26",
			wantDate: time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC),
			wantConf: 0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates := e.ExtractDates(tt.text)
			if len(dates) == 0 {
				t.Fatalf("ExtractDates(%q) found nothing", tt.text)
			}
			d := dates[0]
			if d.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", d.Text, tt.wantText)
			}
			if d.Parsed == nil || !d.Parsed.Equal(tt.wantDate) {
				t.Errorf("Parsed = %v, want %v", d.Parsed, tt.wantDate)
			}
			if d.Confidence != tt.wantConf {
				t.Errorf("Confidence = %v, want %v", d.Confidence, tt.wantConf)
			}
			if tt.text[d.Start:d.End] != d.Text {
				t.Errorf("span [%d,%d) does not cover %q", d.Start, d.End, d.Text)
			}
		})
	}
}

func TestExtractDatesRelative(t *testing.T) {
	e := NewDateExtractor(anchorClock)

	tests := []struct {
		text     string
		wantDate time.Time
	}{
		{"finish it today", anchor},
		{"call them tomorrow", anchor.AddDate(0, 0, 1)},
		{"it arrived yesterday", anchor.AddDate(0, 0, -1)},
		{"review next week", anchor.AddDate(0, 0, 7)},
		{"renew next month", anchor.AddDate(0, 0, 30)},
	}

	for _, tt := range tests {
		dates := e.ExtractDates(tt.text)
		if len(dates) != 1 {
			t.Fatalf("ExtractDates(%q) = %d results, want 1", tt.text, len(dates))
		}
		if !dates[0].Parsed.Equal(tt.wantDate) {
			t.Errorf("ExtractDates(%q).Parsed = %v, want %v", tt.text, dates[0].Parsed, tt.wantDate)
		}
		if dates[0].Confidence != 0.6 {
			t.Errorf("relative confidence = %v, want 0.6", dates[0].Confidence)
		}
	}
}

func TestExtractDatesWeekday(t *testing.T) {
	e := NewDateExtractor(anchorClock)

	tests := []struct {
		text     string
		wantDays int // days after anchor
	}{
		{"due on Friday", 3},
		{"meet Monday morning", 6},
		// Anchor is a Tuesday; a matching weekday advances a full week.
		{"every Tuesday", 7},
	}

	for _, tt := range tests {
		dates := e.ExtractDates(tt.text)
		if len(dates) != 1 {
			t.Fatalf("ExtractDates(%q) = %d results, want 1", tt.text, len(dates))
		}
		want := anchor.AddDate(0, 0, tt.wantDays)
		if !dates[0].Parsed.Equal(want) {
			t.Errorf("ExtractDates(%q).Parsed = %v, want %v", tt.text, dates[0].Parsed, want)
		}
	}
}

func TestExtractDatesDropsUnparsable(t *testing.T) {
	e := NewDateExtractor(anchorClock)

	// Matches the numeric pattern but is not a real date.
	dates := e.ExtractDates("ref 13/45/2025 in the ledger")
	for _, d := range dates {
		if d.Text == "13/45/2025" {
			t.Errorf("unparsable match %q was reported", d.Text)
		}
	}
}

func TestExtractDatesEmptyText(t *testing.T) {
	e := NewDateExtractor(anchorClock)
	if dates := e.ExtractDates(""); len(dates) != 0 {
		t.Errorf("ExtractDates(\"\") = %v, want none", dates)
	}
}
