package postgres

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/trxrecords/internal/domain"
	"github.com/iho/trxrecords/internal/infrastructure/postgres/generated"
)

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{
		Int:   d.Coefficient(),
		Exp:   d.Exponent(),
		Valid: true,
	}
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.NaN || n.Int == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func dateToPgDate(d domain.Date) pgtype.Date {
	return pgtype.Date{Time: d.Time(), Valid: true}
}

func pgDateToDate(d pgtype.Date) domain.Date {
	if !d.Valid {
		return domain.Date{}
	}

	return domain.DateOf(d.Time)
}

// PostgreSQL TIME has microsecond precision.
func timeOfDayToPgTime(t domain.TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: t.SinceMidnight().Microseconds(), Valid: true}
}

func pgTimeToTimeOfDay(t pgtype.Time) domain.TimeOfDay {
	if !t.Valid {
		return domain.TimeOfDay{}
	}

	return domain.TimeOfDayFromDuration(time.Duration(t.Microseconds) * time.Microsecond)
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func rowToRecord(row generated.TransactionRecord) *domain.TransactionRecord {
	return &domain.TransactionRecord{
		ID:            row.ID,
		AccountNumber: row.AccountNumber,
		TrxAmount:     numericToDecimal(row.TrxAmount),
		Description:   row.Description,
		TrxDate:       pgDateToDate(row.TrxDate),
		TrxTime:       pgTimeToTimeOfDay(row.TrxTime),
		CustomerID:    row.CustomerID,
		Version:       row.Version,
	}
}

func recordToCopyParams(r *domain.TransactionRecord) (generated.CreateTransactionRecordsParams, error) {
	if r == nil {
		return generated.CreateTransactionRecordsParams{}, fmt.Errorf("nil transaction record")
	}

	return generated.CreateTransactionRecordsParams{
		AccountNumber: r.AccountNumber,
		TrxAmount:     decimalToNumeric(r.TrxAmount),
		Description:   r.Description,
		TrxDate:       dateToPgDate(r.TrxDate),
		TrxTime:       timeOfDayToPgTime(r.TrxTime),
		CustomerID:    r.CustomerID,
	}, nil
}
