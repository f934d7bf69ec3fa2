package invoicedoc

import "errors"

var (
	ErrInvalidData  = errors.New("invoicedoc: invalid render data")
	ErrRenderFailed = errors.New("invoicedoc: failed to render document")
)
