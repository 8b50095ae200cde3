package touch

// Calibration is the raw coordinate window treated as covering the full
// panel resolution.
type Calibration struct {
	MinX, MaxX int
	MinY, MaxY int
}

// Orientation is the axis correction applied after calibration.
type Orientation struct {
	InvertX bool
	InvertY bool
	SwapXY  bool
}

// transform maps a raw sample into device space. The order is fixed:
// remap into [0,MaxX]×[0,MaxY], clamp, swap axes, invert axes. Inversion
// subtracts from the descriptor's MaxX/MaxY even after a swap.
func transform(s Sample, cal Calibration, o Orientation, maxX, maxY int) Event {
	x, y := s.X, s.Y
	if w := cal.MaxX - cal.MinX; w != 0 {
		x = (x - cal.MinX) * maxX / w
	}
	if h := cal.MaxY - cal.MinY; h != 0 {
		y = (y - cal.MinY) * maxY / h
	}
	x = clamp(x, maxX)
	y = clamp(y, maxY)
	if o.SwapXY {
		x, y = y, x
	}
	if o.InvertX {
		x = maxX - x
	}
	if o.InvertY {
		y = maxY - y
	}
	// A swap on a non-square panel can carry a coordinate past its new
	// axis bound, so clamp once more after orientation.
	x = clamp(x, maxX)
	y = clamp(y, maxY)
	return Event{
		ID:       s.ID,
		X:        x,
		Y:        y,
		Pressure: s.Pressure,
		Major:    s.Major,
		Minor:    s.Minor,
		Active:   s.Active,
	}
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
