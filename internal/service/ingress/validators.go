package ingress

import (
	"math"

	"orders/internal/entities"
)

const (
	fieldProductID  = "productId"
	fieldQuantity   = "quantity"
	fieldPrice      = "price"
	fieldCustomerID = "customerId"
)

func validateOrderCreate(req entities.OrderCreate) error {
	var fields []FieldError

	switch {
	case req.ProductID == nil:
		fields = append(fields, FieldError{Field: fieldProductID, Reason: "is required"})
	case !isNonEmpty(*req.ProductID):
		fields = append(fields, FieldError{Field: fieldProductID, Reason: "must not be empty"})
	}

	switch {
	case req.Quantity == nil:
		fields = append(fields, FieldError{Field: fieldQuantity, Reason: "is required"})
	case *req.Quantity < 1:
		fields = append(fields, FieldError{Field: fieldQuantity, Reason: "must be at least 1"})
	}

	switch {
	case req.Price == nil:
		fields = append(fields, FieldError{Field: fieldPrice, Reason: "is required"})
	case !isValidPrice(*req.Price):
		fields = append(fields, FieldError{Field: fieldPrice, Reason: "must be a finite number not less than 0"})
	}

	switch {
	case req.CustomerID == nil:
		fields = append(fields, FieldError{Field: fieldCustomerID, Reason: "is required"})
	case !isNonEmpty(*req.CustomerID):
		fields = append(fields, FieldError{Field: fieldCustomerID, Reason: "must not be empty"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// isNonEmpty: строка из пробелов считается непустой.
func isNonEmpty(s string) bool {
	return s != ""
}

func isValidPrice(price float64) bool {
	return !math.IsNaN(price) && !math.IsInf(price, 0) && price >= 0
}
