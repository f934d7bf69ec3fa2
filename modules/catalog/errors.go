package catalog

import "errors"

var (
	ErrFeeNotFound   = errors.New("catalog: fee definition not found")
	ErrClassNotFound = errors.New("catalog: class offering not found")
	ErrInvalidFee    = errors.New("catalog: invalid fee definition")
	ErrInvalidClass  = errors.New("catalog: invalid class offering")
)
