package schema

import (
	"fmt"
	"strings"
)

// CreateTableSQL renders a CREATE TABLE suggestion for loading the scanned
// data. Unnamed columns get positional names. The statement is advisory
// output for the caller; nothing here talks to a database.
func (r *Report) CreateTableSQL(table string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", quoteIdent(table))

	for i, col := range r.Columns {
		name := col.Name
		if name == "" {
			name = fmt.Sprintf("column_%d", col.Position+1)
		}
		fmt.Fprintf(&b, "    %s %s", quoteIdent(name), col.PostgresType)
		if i < len(r.Columns)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}

	b.WriteString(");")
	return b.String()
}

// quoteIdent double-quotes a PostgreSQL identifier, escaping embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
