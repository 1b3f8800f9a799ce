package extract

import (
	"regexp"
	"strconv"

	"dayplan/models"
)

var amountPatterns = []struct {
	re       *regexp.Regexp
	currency models.Currency
}{
	{regexp.MustCompile(`(?i)\$[\d,]+\.?\d*`), models.CurrencyUSD},
	{regexp.MustCompile(`(?i)[\d,]+\.?\d*\s*(dollars?|USD)`), models.CurrencyUSD},
	{regexp.MustCompile(`(?i)[\d,]+\.?\d*\s*(euros?|EUR)`), models.CurrencyEUR},
	{regexp.MustCompile(`(?i)[\d,]+\.?\d*\s*(pounds?|GBP)`), models.CurrencyGBP},
	{regexp.MustCompile(`(?i)[\d,]+\.?\d*\s*(rupees?|INR)`), models.CurrencyINR},
	{regexp.MustCompile(`[\d,]+\.?\d*`), models.CurrencyUnknown},
}

var nonNumericRe = regexp.MustCompile(`[^\d.]`)

// ExtractAmounts applies the ordered currency patterns, ending with a
// bare-number catch-all tagged UNKNOWN. Matches whose numeric portion does
// not parse are dropped.
func ExtractAmounts(text string) []models.ExtractedAmount {
	var amounts []models.ExtractedAmount

	for _, p := range amountPatterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			matched := text[loc[0]:loc[1]]
			value, ok := parseNumeric(matched)
			if !ok {
				continue
			}
			amounts = append(amounts, models.ExtractedAmount{
				Text:       matched,
				Value:      value,
				Currency:   p.currency,
				Start:      loc[0],
				End:        loc[1],
				Confidence: 0.8,
			})
		}
	}
	return amounts
}

// parseNumeric strips everything but digits and the decimal point, then
// parses the remainder.
func parseNumeric(text string) (float64, bool) {
	cleaned := nonNumericRe.ReplaceAllString(text, "")
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
