package domain

import "errors"

var (
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidAmount    = errors.New("invalid amount")
)
