package inputrow

import "errors"

// ErrGroupLengthMismatch is returned when grouped array fields of a record
// hold different numbers of entries.
var ErrGroupLengthMismatch = errors.New("inputrow: grouped field lengths differ")
