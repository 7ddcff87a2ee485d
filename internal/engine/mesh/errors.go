package mesh

import "errors"

// Validation errors. All validating operations fail synchronously and leave
// prior state untouched; a failed setter is a no-op for geometry purposes.
var (
	ErrDimensionMismatch = errors.New("array length incompatible with arity or vertex count")
	ErrIndexOutOfRange   = errors.New("connectivity index exceeds vertex count")
	ErrDuplicateData     = errors.New("duplicate data name on block")
)
