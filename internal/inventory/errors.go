package inventory

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("variant not found")
	ErrSKUPrefixTaken  = errors.New("sku prefix already exists")
	ErrInvalidCategory = errors.New("invalid product category")
	ErrInvalidOperand  = errors.New("operand is not numeric")
	ErrInvalidOp       = errors.New("unknown stock operation")
	ErrLockBusy        = errors.New("stock is being adjusted by another operator, try again")
)
