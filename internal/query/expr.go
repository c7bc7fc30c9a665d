package query

import "strings"

// Column names a filterable column of the jobs table.
type Column string

const (
	ColTitleNorm   Column = "title_norm"
	ColTitle       Column = "title"
	ColDescription Column = "description"
	ColLocation    Column = "location"
)

// Op is the predicate operator.
type Op int

const (
	OpLike Op = iota
	OpEq
)

// Pred is one predicate; matching is always case-insensitive (columns are
// wrapped in LOWER() at render time, values are built lowercase).
type Pred struct {
	Col   Column
	Op    Op
	Value string
}

// Clause is a disjunction of predicates.
type Clause struct {
	Preds []Pred
}

// Expr is a conjunction of clauses. The zero value (or nil) matches every
// row; rendering it yields no WHERE fragment.
type Expr struct {
	Clauses []Clause
}

func (e *Expr) add(c Clause) {
	if len(c.Preds) > 0 {
		e.Clauses = append(e.Clauses, c)
	}
}

// Empty reports whether the expression places no constraint at all.
func (e *Expr) Empty() bool {
	return e == nil || len(e.Clauses) == 0
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE metacharacters in a user-derived fragment so the
// text matches literally instead of as a wildcard.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
