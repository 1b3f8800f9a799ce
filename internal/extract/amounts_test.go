package extract

import (
	"testing"

	"dayplan/models"
)

func TestExtractAmounts(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantValue    float64
		wantCurrency models.Currency
	}{
		{"dollar prefix", "amount due $450", 450, models.CurrencyUSD},
		{"dollar prefix with cents", "total $1,234.56 charged", 1234.56, models.CurrencyUSD},
		{"dollars suffix", "pay 300 dollars now", 300, models.CurrencyUSD},
		{"euros suffix", "fee of 99 euros applies", 99, models.CurrencyEUR},
		{"pounds suffix", "refund 12.50 pounds", 12.50, models.CurrencyGBP},
		{"rupees suffix", "costs 5,000 rupees", 5000, models.CurrencyINR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amounts := ExtractAmounts(tt.text)
			if len(amounts) == 0 {
				t.Fatalf("ExtractAmounts(%q) found nothing", tt.text)
			}
			a := amounts[0]
			if a.Value != tt.wantValue {
				t.Errorf("Value = %v, want %v", a.Value, tt.wantValue)
			}
			if a.Currency != tt.wantCurrency {
				t.Errorf("Currency = %q, want %q", a.Currency, tt.wantCurrency)
			}
			if a.Confidence != 0.8 {
				t.Errorf("Confidence = %v, want 0.8", a.Confidence)
			}
		})
	}
}

func TestExtractAmountsBareNumberIsUnknown(t *testing.T) {
	amounts := ExtractAmounts("room 42 is booked")
	if len(amounts) == 0 {
		t.Fatal("ExtractAmounts found nothing")
	}
	found := false
	for _, a := range amounts {
		if a.Currency == models.CurrencyUnknown && a.Value == 42 {
			found = true
		}
	}
	if !found {
		t.Errorf("no UNKNOWN-tagged amount 42 in %v", amounts)
	}
}

func TestExtractAmountsNoNumbers(t *testing.T) {
	if amounts := ExtractAmounts("no figures here"); len(amounts) != 0 {
		t.Errorf("ExtractAmounts = %v, want none", amounts)
	}
}
