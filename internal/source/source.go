// Package source provides the tradeline record sources: a delimited
// CSV extract and a Postgres staging table. Both yield one field-name
// to raw-string mapping per row; typing happens downstream in the
// normalizer.
package source

import "context"

// Extract column names.
const (
	ColCustomerID       = "CUSTOMER_ID"
	ColAcctTypeCd       = "ACCT_TYPE_CD"
	ColMSubID           = "M_SUB_ID"
	ColOpenDt           = "OPEN_DT"
	ColClosedDt         = "CLOSED_DT"
	ColDaysPastDue      = "DAYS_PAST_DUE"
	ColChargeOffAm      = "CHARGE_OFF_AM"
	ColWriteOffStatusDt = "WRITE_OFF_STATUS_DT"
	ColOrigLoanAm       = "ORIG_LOAN_AM"
	ColCreditLimitAm    = "CREDIT_LIMIT_AM"
	ColPaymentHistory   = "PAYMENT_HISTORY_GRID"
	ColBureauDate       = "BUREAU_DATE"
)

// Record is one raw tradeline row keyed by column name.
type Record map[string]string

// Source streams tradeline records. Each invokes fn for every row in
// source order and stops on the first error fn returns.
type Source interface {
	Each(ctx context.Context, fn func(Record) error) error
}
