package postgres

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/phrazzld/taskboard/internal/domain"
)

// psql builds statements with PostgreSQL $n placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// priorityOrderExpr renders an ORDER BY expression ranking column by
// domain.Priority.Rank. Values come from the closed enum, never from input.
func priorityOrderExpr(column string) string {
	var b strings.Builder
	b.WriteString("CASE ")
	b.WriteString(column)
	for _, p := range domain.Priorities {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", p, p.Rank())
	}
	fmt.Fprintf(&b, " ELSE %d END", domain.Priority("").Rank())
	return b.String()
}

// ownedOrAssigned matches tasks userID created or was assigned.
func ownedOrAssigned(alias string, userID int64) squirrel.Or {
	return squirrel.Or{
		squirrel.Eq{alias + "user_id": userID},
		squirrel.Eq{alias + "assigned_to": userID},
	}
}
