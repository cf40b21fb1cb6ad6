package render

import "errors"

// ErrNoImage is returned by drivers handed a backend without an output image.
var ErrNoImage = errors.New("render: output image not allocated")
