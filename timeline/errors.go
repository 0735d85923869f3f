package timeline

import "errors"

var (
	// ErrEmptyInput indicates that no events were available to derive
	// an initial extent from. Layout cannot proceed; no default extent
	// is fabricated.
	ErrEmptyInput = errors.New("timeline: no events to derive an extent from")
	// ErrInvalidExtent indicates a transform would produce a zero or
	// negative time span. The transform is rejected and the prior
	// extent stands.
	ErrInvalidExtent = errors.New("timeline: transform produced a non-positive time span")
	// ErrMeasurementUnavailable indicates no text measurement
	// capability was supplied. Labels cannot be sized, so layout
	// construction fails outright.
	ErrMeasurementUnavailable = errors.New("timeline: no text measurer available")
)
