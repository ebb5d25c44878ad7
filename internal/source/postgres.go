package source

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.]*$`)

// PostgresSource streams tradeline records from a staging table whose
// columns mirror the CSV extract.
type PostgresSource struct {
	URL   string
	Table string
}

// NewPostgresSource returns a source over the given connection URL and
// staging table.
func NewPostgresSource(url, table string) *PostgresSource {
	return &PostgresSource{URL: url, Table: table}
}

// Each streams every staged row as a Record, ordered by customer key
// and open date so repeated runs scan in the same order.
func (s *PostgresSource) Each(ctx context.Context, fn func(Record) error) error {
	if !identPattern.MatchString(s.Table) {
		return fmt.Errorf("invalid staging table name: %s", s.Table)
	}

	db, err := sql.Open("pgx", s.URL)
	if err != nil {
		return fmt.Errorf("opening postgres source: %w", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 12*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("pinging postgres source: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT customer_id, acct_type_cd, m_sub_id, open_dt, closed_dt,
		       days_past_due, charge_off_am, write_off_status_dt,
		       orig_loan_am, credit_limit_am, payment_history_grid, bureau_date
		FROM %s
		ORDER BY customer_id, open_dt`, s.Table)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("querying %s: %w", s.Table, err)
	}
	defer rows.Close()

	cols := []string{
		ColCustomerID, ColAcctTypeCd, ColMSubID, ColOpenDt, ColClosedDt,
		ColDaysPastDue, ColChargeOffAm, ColWriteOffStatusDt,
		ColOrigLoanAm, ColCreditLimitAm, ColPaymentHistory, ColBureauDate,
	}

	for rows.Next() {
		raw := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}

		rec := make(Record, len(cols))
		for i, name := range cols {
			if raw[i].Valid {
				rec[name] = raw[i].String
			} else {
				rec[name] = ""
			}
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating %s: %w", s.Table, err)
	}
	return nil
}
