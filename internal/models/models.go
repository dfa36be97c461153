package models

import (
	"time"
)

// Operation kinds recorded in salary history
const (
	OperationCredit = "credit"
	OperationDebit  = "debit"
)

// Account represents a user's current salary balance
type Account struct {
	UserID  string  `json:"user_id"`
	Balance float64 `json:"balance"`
}

// SalaryEntry represents one recorded balance change in the history log
type SalaryEntry struct {
	ID               int       `json:"id"`
	UserID           string    `json:"user_id"`
	Timestamp        time.Time `json:"timestamp"`
	Amount           float64   `json:"amount"`
	Operation        string    `json:"operation"` // "credit" or "debit"
	ExecutorID       string    `json:"executor_id"`
	ResultingBalance float64   `json:"resulting_balance"`
	Period           string    `json:"period"` // reporting label, e.g. "2024-01-01 00:00:00"
}
