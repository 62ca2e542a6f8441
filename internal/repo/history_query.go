package repo

import (
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/gopinathan2007/office-visitor-flow/internal/domain"
)

// historyPredicate contributes one WHERE clause for a HistoryFilter field.
// It reports false when the field is unset. Values are always placed in
// args and referenced by name; filter input never reaches the SQL text.
type historyPredicate func(f domain.HistoryFilter, args pgx.NamedArgs) (string, bool)

// historyPredicates is the fixed, ordered set of clauses a history query
// can be composed from.
var historyPredicates = []historyPredicate{
	statusPredicate,
	searchPredicate,
	sincePredicate,
}

// buildHistoryWhere returns the WHERE fragment (with a leading space, or
// empty when f sets no filter) and the named arguments it references.
func buildHistoryWhere(f domain.HistoryFilter) (string, pgx.NamedArgs) {
	args := pgx.NamedArgs{}
	var clauses []string
	for _, p := range historyPredicates {
		if clause, ok := p(f, args); ok {
			clauses = append(clauses, clause)
		}
	}
	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func statusPredicate(f domain.HistoryFilter, args pgx.NamedArgs) (string, bool) {
	if f.Status == "" {
		return "", false
	}
	args["status"] = string(f.Status)
	return "status = @status", true
}

func searchPredicate(f domain.HistoryFilter, args pgx.NamedArgs) (string, bool) {
	if f.Search == "" {
		return "", false
	}
	args["search"] = "%" + escapeLike(f.Search) + "%"
	return "(name ILIKE @search OR company ILIKE @search OR host_name ILIKE @search)", true
}

func sincePredicate(f domain.HistoryFilter, args pgx.NamedArgs) (string, bool) {
	if f.Since == nil {
		return "", false
	}
	args["since"] = *f.Since
	return "check_in_time >= @since", true
}

// likeEscaper escapes the LIKE metacharacters using Postgres' default
// escape character, the backslash.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE/ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
