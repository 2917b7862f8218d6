package biski64

import "errors"

// ErrInvalidArgument is returned when a caller passes an out-of-range bound,
// length or stream parameter. The generator state is never modified when it is
// returned.
var ErrInvalidArgument = errors.New("biski64: invalid argument")
