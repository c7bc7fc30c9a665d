package query

import (
	"strings"

	"jobboard-engine/internal/search"
)

// Input is a raw search request. Title is expected to already have any
// inline salary constraint stripped (search.ParseSalaryQuery).
type Input struct {
	Title   string
	Country string

	// Optional overrides for the EU member set and high-pay city list.
	// Empty means the lexicon defaults.
	EUCodes       []string
	HighPayCities []string
}

// Compiled carries the dialect-neutral filter plus everything the caller
// needs for ordering and analytics.
type Compiled struct {
	Expr    *Expr
	Order   Order
	Title   string // normalized title
	Country string // normalized country code (or passthrough text)
	Flags   search.TitleFlags
}

// Compile turns a raw title/country pair into a filter expression and
// ordering rule. It has no failure modes: any two strings produce a valid
// expression, possibly the unconstrained one.
func Compile(in Input) Compiled {
	norm := search.NormalizeTitle(in.Title)
	flags := search.Flags(norm)
	core := search.CoreTitle(norm)
	cf := search.ResolveCountry(in.Country)

	euCodes := in.EUCodes
	if len(euCodes) == 0 {
		euCodes = search.DefaultEUCodes
	}
	cities := in.HighPayCities
	if len(cities) == 0 {
		cities = search.DefaultHighPayCities
	}

	expr := &Expr{}

	if core != "" {
		expr.add(textClause(core, ColTitleNorm, ColTitle, ColDescription))
	}
	if flags.Remote {
		expr.add(textClause("remote", ColTitleNorm, ColTitle, ColDescription, ColLocation))
	}
	if flags.Developer {
		var c Clause
		for _, term := range search.DeveloperTerms {
			c.Preds = append(c.Preds, likePreds(term, ColTitleNorm, ColTitle, ColDescription)...)
		}
		expr.add(c)
	}

	switch cf.Kind {
	case CountryCode:
		var c Clause
		c.Preds = append(c.Preds, codeTokenPreds(cf.Code)...)
		c.Preds = append(c.Preds, aliasPreds(cf.Code)...)
		expr.add(c)
	case CountryEU:
		var c Clause
		for _, code := range euCodes {
			c.Preds = append(c.Preds, codeTokenPreds(code)...)
		}
		c.Preds = append(c.Preds, Pred{Col: ColLocation, Op: OpLike, Value: "%eu%"})
		for _, code := range euCodes {
			for _, name := range search.AliasNamesFor(code) {
				c.Preds = append(c.Preds, Pred{Col: ColLocation, Op: OpLike, Value: "%" + EscapeLike(name) + "%"})
			}
		}
		expr.add(c)
	case CountryHighPay:
		var c Clause
		for _, city := range cities {
			c.Preds = append(c.Preds,
				Pred{Col: ColLocation, Op: OpLike, Value: "%" + EscapeLike(city) + "%"},
				Pred{Col: ColLocation, Op: OpEq, Value: city},
			)
		}
		expr.add(c)
	case CountryFreeText:
		expr.add(Clause{Preds: []Pred{
			{Col: ColLocation, Op: OpLike, Value: "%" + EscapeLike(cf.Text) + "%"},
		}})
	}

	return Compiled{
		Expr:    expr,
		Order:   OrderFor(cf),
		Title:   norm,
		Country: countryLabel(cf, in.Country),
		Flags:   flags,
	}
}

// CountryKind re-exported aliases keep callers on one import.
type (
	CountryFilter = search.CountryFilter
	CountryKind   = search.CountryKind
)

const (
	CountryNone     = search.CountryNone
	CountryCode     = search.CountryCode
	CountryEU       = search.CountryEU
	CountryHighPay  = search.CountryHighPay
	CountryFreeText = search.CountryFreeText
)

func countryLabel(cf CountryFilter, raw string) string {
	switch cf.Kind {
	case CountryNone:
		return ""
	case CountryCode:
		return cf.Code
	case CountryEU:
		return search.CodeEU
	case CountryHighPay:
		return search.CodeHighPay
	default:
		return strings.TrimSpace(raw)
	}
}

// textClause matches needle as an escaped substring of each column.
func textClause(needle string, cols ...Column) Clause {
	return Clause{Preds: likePreds(needle, cols...)}
}

func likePreds(needle string, cols ...Column) []Pred {
	pat := "%" + EscapeLike(strings.ToLower(needle)) + "%"
	preds := make([]Pred, 0, len(cols))
	for _, col := range cols {
		preds = append(preds, Pred{Col: col, Op: OpLike, Value: pat})
	}
	return preds
}

var (
	sepsBefore = []string{" ", "(", ",", "/", "-"}
	sepsAfter  = []string{" ", ")", ",", "/", "-"}
)

// codeTokenPreds builds the separator-delimited token patterns for a
// 2-letter code, so "ch" matches "Zurich, CH" or "(CH)" but not the tail
// of "march". One extra pattern per leading separator covers the code
// sitting at the very end of the location string.
func codeTokenPreds(code string) []Pred {
	token := EscapeLike(strings.ToLower(code))
	var preds []Pred
	for _, before := range sepsBefore {
		for _, after := range sepsAfter {
			preds = append(preds, Pred{Col: ColLocation, Op: OpLike, Value: "%" + before + token + after + "%"})
		}
		preds = append(preds, Pred{Col: ColLocation, Op: OpLike, Value: "%" + before + token})
	}
	return preds
}

// aliasPreds adds the human-readable names for a code: substring patterns
// for alias names and exact matches for city hints.
func aliasPreds(code string) []Pred {
	var preds []Pred
	for _, name := range search.AliasNamesFor(code) {
		preds = append(preds, Pred{Col: ColLocation, Op: OpLike, Value: "%" + EscapeLike(name) + "%"})
	}
	for _, city := range search.CityHintsFor(code) {
		preds = append(preds, Pred{Col: ColLocation, Op: OpEq, Value: city})
	}
	return preds
}
