package query

import (
	"fmt"
	"strings"
)

// Dialect describes how a backend binds positional parameters. The clause
// tree is built once; rendering differs only in placeholder text, so the
// two backends cannot drift apart structurally.
type Dialect struct {
	Name        string
	Placeholder func(n int) string // n is 1-based
}

var (
	SQLite = Dialect{
		Name:        "sqlite",
		Placeholder: func(int) string { return "?" },
	}
	Postgres = Dialect{
		Name:        "postgres",
		Placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	}
)

// Render produces the WHERE fragment (empty string when the expression is
// unconstrained) and the ordered argument list matching the placeholders.
func (e *Expr) Render(d Dialect) (string, []any) {
	if e.Empty() {
		return "", nil
	}
	var (
		clauses []string
		args    []any
		n       int
	)
	for _, c := range e.Clauses {
		var preds []string
		for _, p := range c.Preds {
			n++
			ph := d.Placeholder(n)
			switch p.Op {
			case OpEq:
				preds = append(preds, fmt.Sprintf("LOWER(%s) = %s", p.Col, ph))
			default:
				preds = append(preds, fmt.Sprintf("LOWER(%s) LIKE %s ESCAPE '\\'", p.Col, ph))
			}
			args = append(args, p.Value)
		}
		clauses = append(clauses, "("+strings.Join(preds, " OR ")+")")
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}
