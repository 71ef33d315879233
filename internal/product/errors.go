package product

import "errors"

var (
	ErrNotFound        = errors.New("product not found")
	ErrNameTaken       = errors.New("a product with this name already exists")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrInvalidDiscount = errors.New("discount percentage must be between 0 and 100")
	ErrInvalidStock    = errors.New("stock quantity must not be negative")
)
