package timeline

// View is the interactive state threaded between layout passes: the
// visible extent plus whether a drag gesture currently owns it. It is
// mutated only through the transform methods below, on the host's UI
// goroutine, and the orchestrator is re-invoked explicitly after each
// mutation.
type View struct {
	Extent   TimeExtent
	Dragging bool
}

// Pan shifts the extent by a pixel delta within a container of the
// given width. Pan preserves the span, so it cannot invalidate the
// extent; degenerate inputs leave it untouched.
func (v *View) Pan(deltaPx, widthPx float64) {
	v.Extent = Pan(deltaPx, v.Extent, widthPx)
}

// Zoom scales the extent anchored at centerFraction. A transform that
// would collapse the span is rejected and the prior extent retained;
// the error is returned so hosts can log it, but it is not a user
// visible failure.
func (v *View) Zoom(deltaUnits, centerFraction, divisor float64) error {
	ext, err := Zoom(deltaUnits, centerFraction, divisor, v.Extent)
	if err != nil {
		return err
	}
	v.Extent = ext
	return nil
}
