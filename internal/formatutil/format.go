// Package formatutil holds the presentation helpers shared by page handlers
// and reports: currency/number formatting, truncation, initials, ids.
package formatutil

import (
	"crypto/rand"
	"fmt"
	"math"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"INR": "₹",
	"JPY": "¥",
}

// FormatCurrency renders a USD amount with en-US grouping: 1234.56 -> "$1,234.56".
func FormatCurrency(amount float64) string {
	return FormatCurrencyIn(amount, "USD", "en-US")
}

// FormatCurrencyIn renders amount for the given ISO currency code and BCP 47
// locale. An unknown locale falls back to plain formatting rather than
// failing the render.
func FormatCurrencyIn(amount float64, code, locale string) string {
	symbol, ok := currencySymbols[strings.ToUpper(code)]
	if !ok {
		symbol = strings.ToUpper(code) + " "
	}

	tag, err := language.Parse(locale)
	if err != nil {
		zap.L().Warn("unparseable locale, using plain formatting",
			zap.String("locale", locale), zap.Error(err))
		return fmt.Sprintf("%s%.2f", symbol, amount)
	}

	p := message.NewPrinter(tag)
	return symbol + p.Sprintf("%.2f", amount)
}

// FormatPercentage renders v as a percentage with the given decimal places:
// 12.5 -> "12.5%".
func FormatPercentage(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return fmt.Sprintf("%.*f%%", decimals, v)
}

var abbreviations = []struct {
	limit  float64
	suffix string
}{
	{1e12, "T"},
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "K"},
}

// FormatNumber abbreviates large values with the largest unit that fits:
// 1234567 -> "1.2M", 999 -> "999". Trailing zeros are trimmed ("2M", not "2.0M").
func FormatNumber(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	for _, a := range abbreviations {
		if v >= a.limit {
			s := fmt.Sprintf("%.1f", v/a.limit)
			s = strings.TrimSuffix(s, ".0")
			return sign + s + a.suffix
		}
	}
	return sign + fmt.Sprintf("%.0f", v)
}

// Truncate cuts s to max runes, appending an ellipsis when anything was cut.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// Initials extracts up to two uppercased initials: "John Doe" -> "JD".
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r := []rune(word)[0]
		b.WriteString(strings.ToUpper(string(r)))
		if b.Len() >= 2 {
			break
		}
	}
	return b.String()
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether s has the shape of an email address.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

const idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomID returns a random alphanumeric string of length n.
func RandomID(n int) string {
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken; degrade to a
		// deterministic filler rather than panic in a render path.
		zap.L().Error("random id generation failed", zap.Error(err))
		return strings.Repeat("0", n)
	}
	for i, b := range buf {
		buf[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return string(buf)
}

// RoundTo rounds v to the given decimal places, for percentage breakdowns.
func RoundTo(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
