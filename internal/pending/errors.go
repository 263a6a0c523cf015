package pending

import "errors"

var (
	// ErrProductImageLimit means the product image maximum was reached.
	ErrProductImageLimit = errors.New("product image limit reached")
	// ErrCategoryImageLimit means a category already has its one image.
	ErrCategoryImageLimit = errors.New("a category can only have one image")
)
