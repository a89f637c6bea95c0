package transaction

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	appErrors "fintrack/customErrors"
)

type Type string

const (
	TypeEarning    Type = "EARNING"
	TypeExpense    Type = "EXPENSE"
	TypeInvestment Type = "INVESTMENT"
)

const (
	MAX_NAME_LENGTH = 255
	DATE_LAYOUT     = "2006-01-02"
)

func (t Type) Valid() bool {
	switch t {
	case TypeEarning, TypeExpense, TypeInvestment:
		return true
	}
	return false
}

// Transaction is the client-side view of a server-owned transaction.
// Amount stays a decimal string end to end.
type Transaction struct {
	ID     string
	Date   string
	UserID string
	Name   string
	Type   Type
	Amount string
}

type CreateInput struct {
	Name   string
	Date   string
	Type   Type
	Amount string
}

type UpdateInput struct {
	ID     string
	Name   string
	Date   string
	Type   Type
	Amount string
}

func (input CreateInput) ValidateFields() error {
	return validateFields(input.Name, input.Date, input.Type, input.Amount)
}

func (input UpdateInput) ValidateFields() error {
	if input.ID == "" {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Transaction id cannot be empty!",
		}
	}
	return validateFields(input.Name, input.Date, input.Type, input.Amount)
}

func validateFields(name string, date string, transactionType Type, amount string) error {
	if strings.TrimSpace(name) == "" {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Transaction name cannot be empty!",
		}
	}
	if len(name) > MAX_NAME_LENGTH {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Transaction name so long, maximum length is %d", MAX_NAME_LENGTH),
		}
	}
	if _, err := time.Parse(DATE_LAYOUT, date); err != nil {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Invalid transaction date: '%s', expected format: %s", date, DATE_LAYOUT),
		}
	}
	if !transactionType.Valid() {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Invalid transaction type: '%s'", transactionType),
		}
	}
	value, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Invalid transaction amount: '%s'", amount),
		}
	}
	if value <= 0 {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Transaction amount must be greater than zero!",
		}
	}
	return nil
}

// Wire shapes: the API speaks snake_case for the user id field.

type writeRequest struct {
	Name   string `json:"name"`
	Date   string `json:"date"`
	Type   Type   `json:"type"`
	Amount string `json:"amount"`
}

type transactionResponse struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Type   Type   `json:"type"`
	Amount string `json:"amount"`
}
