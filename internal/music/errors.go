package music

import "errors"

// ErrInvalidArgument marks every validation failure of generation inputs.
// Callers test for it with errors.Is and must not produce a melody.
var ErrInvalidArgument = errors.New("invalid argument")
