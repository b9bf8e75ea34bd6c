package domain

import "errors"

var (
	// Patient errors
	ErrPatientNotFound = errors.New("patient not found in tenant")

	// Payment errors
	ErrPaymentNotFound = errors.New("payment not found in tenant")
	ErrPaymentInactive = errors.New("payment is already voided")
	ErrExceedsBalance  = errors.New("payment amount exceeds outstanding balance")
	ErrInvalidAmount   = errors.New("amount must be positive")
)
