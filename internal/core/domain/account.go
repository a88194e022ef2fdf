package domain

import "strings"

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is an entry of the chart of accounts. The hierarchy is implicit in
// AccNo: an account is the ancestor of every code it prefixes.
type Account struct {
	AccNo string      `json:"accNo"`
	Name  string      `json:"name"`
	Type  AccountType `json:"type"`
}

// IsAncestorOf reports whether a sits above other in the code hierarchy.
func (a Account) IsAncestorOf(other Account) bool {
	return a.AccNo != other.AccNo && strings.HasPrefix(other.AccNo, a.AccNo)
}
