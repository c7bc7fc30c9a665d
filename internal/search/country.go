package search

import "strings"

// NormalizeCountry resolves free-text location input to a canonical code.
// Resolution order: exact alias match, 2-letter passthrough (uppercased),
// substring scan in table order, then the trimmed input verbatim. Never an
// error; unresolvable text falls through to a substring filter downstream.
func NormalizeCountry(q string) string {
	if q == "" {
		return ""
	}
	t := strings.ToLower(strings.TrimSpace(q))
	if t == "" {
		return ""
	}
	if code, ok := countryExact[t]; ok {
		return code
	}
	if isTwoAlpha(t) {
		return strings.ToUpper(t)
	}
	for _, a := range countryAliases {
		if strings.Contains(t, a.Name) {
			return a.Code
		}
	}
	return strings.TrimSpace(q)
}

func isTwoAlpha(s string) bool {
	if len(s) != 2 {
		return false
	}
	for i := 0; i < 2; i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// CountryKind tags the filter regime a resolved country selects.
type CountryKind int

const (
	CountryNone CountryKind = iota
	CountryCode
	CountryEU
	CountryHighPay
	CountryFreeText
)

// CountryFilter is the tagged form consumed by both the filter compiler
// and the ordering policy, replacing magic-string comparisons on "EU" and
// "HIGH_PAY".
type CountryFilter struct {
	Kind CountryKind
	Code string // set for CountryCode
	Text string // set for CountryFreeText, already lowercased
}

// ResolveCountry normalizes q and classifies the result.
func ResolveCountry(q string) CountryFilter {
	norm := NormalizeCountry(q)
	switch {
	case norm == "":
		return CountryFilter{Kind: CountryNone}
	case norm == CodeEU:
		return CountryFilter{Kind: CountryEU}
	case norm == CodeHighPay:
		return CountryFilter{Kind: CountryHighPay}
	case isTwoAlpha(norm):
		return CountryFilter{Kind: CountryCode, Code: strings.ToUpper(norm)}
	default:
		return CountryFilter{Kind: CountryFreeText, Text: strings.ToLower(norm)}
	}
}
