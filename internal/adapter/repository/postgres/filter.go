package postgres

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/iho/trxrecords/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var recordColumns = []string{
	"id",
	"account_number",
	"trx_amount",
	"description",
	"trx_date",
	"trx_time",
	"customer_id",
	"version",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// filterClauses builds the conjunction of every supplied criterion.
// An empty conjunction renders as (1=1) and matches every row.
func filterClauses(f domain.RecordFilter) sq.And {
	clauses := sq.And{}

	if f.AccountNumber != nil && *f.AccountNumber != "" {
		clauses = append(clauses, sq.Eq{"account_number": *f.AccountNumber})
	}

	if f.CustomerID != nil && *f.CustomerID != "" {
		clauses = append(clauses, sq.Eq{"customer_id": *f.CustomerID})
	}

	if f.Description != nil && *f.Description != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(*f.Description)) + "%"
		clauses = append(clauses, sq.Expr("LOWER(description) LIKE ?", pattern))
	}

	if f.TrxDate != nil {
		clauses = append(clauses, sq.Expr("trx_date = ?", dateToPgDate(*f.TrxDate)))
	}

	return clauses
}

func searchQuery(f domain.RecordFilter, limit, offset int) sq.SelectBuilder {
	return psql.
		Select(recordColumns...).
		From("transaction_records").
		Where(filterClauses(f)).
		OrderBy("id").
		Limit(uint64(limit)).
		Offset(uint64(offset))
}

func countQuery(f domain.RecordFilter) sq.SelectBuilder {
	return psql.
		Select("COUNT(*)").
		From("transaction_records").
		Where(filterClauses(f))
}
