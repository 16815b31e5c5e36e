// Package totals finds the grand total printed on a receipt from its OCR text.
package totals

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPattern = regexp.MustCompile(`\$?(\d{1,3}(?:,?\d{3})*(?:\.\d{2})?)`)

// DefaultKeywords mark the lines that can carry a total.
var DefaultKeywords = []string{"total"}

// Candidate is the largest amount found on a single keyword line.
type Candidate struct {
	Line  int
	Text  string
	Value float64
}

// Scanner looks for amounts on lines containing one of its keywords.
type Scanner struct {
	Keywords []string
}

// NewScanner returns a Scanner using DefaultKeywords when none are given.
func NewScanner(keywords ...string) *Scanner {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}
	return &Scanner{Keywords: lowered}
}

// Scan returns one candidate per keyword line that holds at least one amount.
// Line numbers start at 1.
func (s *Scanner) Scan(text string) []Candidate {
	var candidates []Candidate
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if !s.matches(line) {
			continue
		}
		best, ok := largestAmount(line)
		if !ok {
			continue
		}
		candidates = append(candidates, Candidate{Line: i + 1, Text: strings.TrimSpace(line), Value: best})
	}
	return candidates
}

// Highest returns the candidate with the largest value. The earliest line
// wins a tie.
func (s *Scanner) Highest(text string) (Candidate, bool) {
	candidates := s.Scan(text)
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Value > best.Value {
			best = c
		}
	}
	return best, true
}

func (s *Scanner) matches(line string) bool {
	lower := strings.ToLower(line)
	for _, k := range s.Keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

func largestAmount(line string) (float64, bool) {
	found := false
	var best float64
	for _, m := range amountPattern.FindAllStringSubmatch(line, -1) {
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		if !found || v > best {
			best = v
			found = true
		}
	}
	return best, found
}

// FindHighestTotal is a shorthand for NewScanner().Highest(text).Value.
func FindHighestTotal(text string) (float64, bool) {
	c, ok := NewScanner().Highest(text)
	return c.Value, ok
}

var printer = message.NewPrinter(language.English)

// FormatCurrency renders amount as dollars with thousands separators, e.g. $1,234.50.
func FormatCurrency(amount float64) string {
	if amount < 0 {
		return "-" + printer.Sprintf("$%.2f", -amount)
	}
	return printer.Sprintf("$%.2f", amount)
}
