package processor

import "errors"

var (
	ErrIntegrity        = errors.New("order violates integrity rules")
	ErrStorage          = errors.New("processed order storage failed")
	ErrAlreadyProcessed = errors.New("order already processed")

	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("invalid order status transition")
)
