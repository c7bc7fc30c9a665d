package search

import (
	"regexp"
	"strconv"
	"strings"
)

// Inline salary filters embedded in a title query: "80k-120k", ">100k",
// "<=90k", "120k". The matched span is removed from the query text.

var (
	reSalaryRange  = regexp.MustCompile(`(?i)(\d[\d,.\s]*k?)\s*[-–]\s*(\d[\d,.\s]*k?)`)
	reSalaryFloor  = regexp.MustCompile(`(?i)>\s*=?\s*(\d[\d,.\s]*k?)`)
	reSalaryCeil   = regexp.MustCompile(`(?i)<\s*=?\s*(\d[\d,.\s]*k?)`)
	reSalaryNumber = regexp.MustCompile(`(?i)\d[\d,.\s]*k?`)
)

// parseMoneyNumbers extracts every money-like figure from text. A trailing
// "k" multiplies by 1000; thousands separators and embedded spaces are
// stripped. Runs that are not all digits after cleanup are dropped.
func parseMoneyNumbers(text string) []int {
	if text == "" {
		return nil
	}
	var nums []int
	for _, raw := range reSalaryNumber.FindAllString(text, -1) {
		clean := strings.ToLower(raw)
		clean = strings.ReplaceAll(clean, ",", "")
		clean = strings.ReplaceAll(clean, " ", "")
		mult := 1
		if strings.HasSuffix(clean, "k") {
			mult = 1000
			clean = strings.TrimSuffix(clean, "k")
		}
		clean = strings.ReplaceAll(clean, ".", "")
		n, err := strconv.Atoi(clean)
		if err != nil || clean == "" {
			continue
		}
		nums = append(nums, n*mult)
	}
	return nums
}

// ParseSalaryQuery strips an embedded salary constraint from q and returns
// the residual text plus optional floor/ceiling. Rules are tried in strict
// priority order (range, lower bound, upper bound, bare number); only the
// first rule that matches anywhere is applied, once. Malformed numbers
// contribute nothing rather than failing the query.
func ParseSalaryQuery(q string) (rest string, floor, ceiling *int) {
	if q == "" {
		return "", nil, nil
	}
	s := strings.TrimSpace(q)

	if m := reSalaryRange.FindStringSubmatchIndex(s); m != nil {
		low := parseMoneyNumbers(s[m[2]:m[3]])
		high := parseMoneyNumbers(s[m[4]:m[5]])
		return excise(s, m[0], m[1]), first(low), last(high)
	}
	if m := reSalaryFloor.FindStringSubmatchIndex(s); m != nil {
		v := parseMoneyNumbers(s[m[2]:m[3]])
		return excise(s, m[0], m[1]), first(v), nil
	}
	if m := reSalaryCeil.FindStringSubmatchIndex(s); m != nil {
		v := parseMoneyNumbers(s[m[2]:m[3]])
		return excise(s, m[0], m[1]), nil, first(v)
	}
	if m := reSalaryNumber.FindStringIndex(s); m != nil {
		v := parseMoneyNumbers(s[m[0]:m[1]])
		return excise(s, m[0], m[1]), first(v), nil
	}
	return s, nil, nil
}

func excise(s string, start, end int) string {
	return strings.TrimSpace(s[:start] + s[end:])
}

func first(nums []int) *int {
	if len(nums) == 0 {
		return nil
	}
	return &nums[0]
}

func last(nums []int) *int {
	if len(nums) == 0 {
		return nil
	}
	return &nums[len(nums)-1]
}
