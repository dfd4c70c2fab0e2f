// Package sqltoken splits a single restricted query string of the form
// "SELECT a, b WHERE c op v, c2 op2 v2" into parallel arrays of
// select-columns, where-columns, comparators, and values.
//
// This stays out of the core table/join machinery because the original
// tokenizer it's grounded on is itself incomplete and untested; this port
// stays equally partial on purpose — only the single-clause,
// no-parentheses, comma-joined shape that source exercises is handled.
package sqltoken

import (
	"errors"
	"strings"
)

// ErrSyntax is returned for any input that doesn't match the supported
// "SELECT ... WHERE ..." shape.
var ErrSyntax = errors.New("sqltoken: unsupported syntax")

var comparators = []string{">=", "<=", "!=", "=", ">", "<"}

// Query holds the parallel arrays produced by Parse.
type Query struct {
	SelectColumns []string
	WhereColumns  []string
	Comparators   []string
	Values        []string
}

// Parse tokenizes query. It only understands a single SELECT list and an
// optional single WHERE clause of comma-joined "column op value" terms;
// nested expressions, ORDER BY, JOIN, and quoted strings containing
// commas are not supported.
//
// TODO: the source never implements operator precedence or AND/OR
// between WHERE terms (they're joined positionally by a bare comma);
// until that's resolved upstream this stays comma-only too.
func Parse(query string) (Query, error) {
	upper := strings.ToUpper(query)
	if !strings.HasPrefix(strings.TrimSpace(upper), "SELECT") {
		return Query{}, ErrSyntax
	}

	wherePos := strings.Index(upper, "WHERE")
	var selectPart, wherePart string
	if wherePos == -1 {
		selectPart = query[len("SELECT"):]
	} else {
		selectPart = query[len("SELECT"):wherePos]
		wherePart = query[wherePos+len("WHERE"):]
	}

	q := Query{SelectColumns: splitTrim(selectPart, ",")}
	if len(q.SelectColumns) == 0 || q.SelectColumns[0] == "" {
		return Query{}, ErrSyntax
	}

	for _, term := range splitTrim(wherePart, ",") {
		if term == "" {
			continue
		}
		col, cmp, val, err := parseTerm(term)
		if err != nil {
			return Query{}, err
		}
		q.WhereColumns = append(q.WhereColumns, col)
		q.Comparators = append(q.Comparators, cmp)
		q.Values = append(q.Values, val)
	}
	return q, nil
}

func parseTerm(term string) (col, cmp, val string, err error) {
	for _, c := range comparators {
		if idx := strings.Index(term, c); idx != -1 {
			col = strings.TrimSpace(term[:idx])
			val = strings.TrimSpace(term[idx+len(c):])
			if col == "" || val == "" {
				return "", "", "", ErrSyntax
			}
			return col, c, val, nil
		}
	}
	return "", "", "", ErrSyntax
}

func splitTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
