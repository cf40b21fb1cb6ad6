package display

import "errors"

var (
	ErrNotHeadless    = errors.New("display: manager is not in headless batch mode")
	ErrNotInteractive = errors.New("display: manager is not in interactive mode")
)
