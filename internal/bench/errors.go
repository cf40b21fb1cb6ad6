package bench

import "errors"

var (
	ErrFrameRange   = errors.New("bench: invalid frame range")
	ErrSizeMismatch = errors.New("bench: renderer image sizes differ")
	ErrCheckFailed  = errors.New("bench: correctness check failed")
)
