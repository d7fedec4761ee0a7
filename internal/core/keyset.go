package core

import "fmt"

// keysetPredicate builds the cursor predicate for keyset pagination ordered
// by sortCol with id as tiebreaker. The cursor is the id of the last row of
// the previous page; the subquery resolves it to its spot in the sort order,
// so the predicate stays aligned with ORDER BY regardless of the sort column.
// sortCol and order must come from a whitelist, never from user input.
func keysetPredicate(table, sortCol, order string, argIdx int) string {
	cmp := "<"
	if order == "ASC" {
		cmp = ">"
	}
	return fmt.Sprintf(` AND (%s, id) %s (SELECT %s, id FROM %s WHERE id = $%d)`,
		sortCol, cmp, sortCol, table, argIdx)
}
