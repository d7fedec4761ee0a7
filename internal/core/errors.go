package core

import "errors"

// ErrConflict marks uniqueness violations so handlers can map them to 409.
var ErrConflict = errors.New("conflict")
