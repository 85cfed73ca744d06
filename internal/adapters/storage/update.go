package storage

import (
	"fmt"
	"strings"
)

// UpdateBuilder assembles "UPDATE t SET a = $1, b = $2 WHERE id = $3"
// from the fields present in a partial update.
type UpdateBuilder struct {
	table string
	sets  []string
	args  []any
}

// NewUpdate starts an UPDATE against table.
func NewUpdate(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

// Set adds one column assignment.
func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, len(b.args)))
	return b
}

// Empty reports whether no column was set.
func (b *UpdateBuilder) Empty() bool {
	return len(b.sets) == 0
}

// WhereID finishes the statement with an id predicate.
// PRE: !Empty()
// POST: Returns the statement and its positional arguments
func (b *UpdateBuilder) WhereID(id string) (string, []any) {
	args := append(b.args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", b.table, strings.Join(b.sets, ", "), len(args))
	return query, args
}
