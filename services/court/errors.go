package court

import "errors"

var (
	ErrCourtNotFound   = errors.New("court not found")
	ErrArenaNotFound   = errors.New("arena not found")
	ErrServiceNotFound = errors.New("extra service not found")
	ErrNotPermitted    = errors.New("not permitted")
)
