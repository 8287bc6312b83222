package tag

import "errors"

var (
	ErrCatalogUnavailable = errors.New("tag catalog unavailable")
)
