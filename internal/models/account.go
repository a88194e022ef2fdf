package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is a row of the chart of accounts. Codes are hierarchical: the
// parent of "110101" is "1101".
type Account struct {
	AccNo       string      `db:"acc_no"`
	Name        string      `db:"name"`
	AccountType AccountType `db:"account_type"`
}
