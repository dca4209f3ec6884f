package pointer

// LogicalPosition is a DPI-independent window coordinate.
type LogicalPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LogicalSize is a DPI-independent extent.
type LogicalSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FromPhysical converts a physical pixel location to logical units using the
// window's scale factor. A non-positive scale is treated as 1.
func FromPhysical(x, y, scale float64) LogicalPosition {
	if scale <= 0 {
		scale = 1
	}
	return LogicalPosition{X: x / scale, Y: y / scale}
}
