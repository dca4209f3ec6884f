package history

// InputType mirrors POINTER_INPUT_TYPE.
type InputType uint32

const (
	TypePointer InputType = iota + 1
	TypeTouch
	TypePen
	TypeMouse
	TypeTouchpad
)

// Touch capability bits (TOUCH_MASK_*).
const (
	TouchMaskContactArea uint32 = 0x1
	TouchMaskOrientation uint32 = 0x2
	TouchMaskPressure    uint32 = 0x4
)

// Pen capability bits (PEN_MASK_*).
const (
	PenMaskPressure uint32 = 0x1
	PenMaskRotation uint32 = 0x2
	PenMaskTiltX    uint32 = 0x4
	PenMaskTiltY    uint32 = 0x8
)

// Point mirrors POINT.
type Point struct {
	X, Y int32
}

// Rect mirrors RECT.
type Rect struct {
	Left, Top, Right, Bottom int32
}

// PointerInfo mirrors POINTER_INFO. Field order and widths must match the
// native layout because history buffers are filled in place.
type PointerInfo struct {
	PointerType         InputType
	PointerID           uint32
	FrameID             uint32
	PointerFlags        uint32
	SourceDevice        uintptr
	HwndTarget          uintptr
	PixelLocation       Point
	HimetricLocation    Point
	PixelLocationRaw    Point
	HimetricLocationRaw Point
	Time                uint32
	HistoryCount        uint32
	InputData           int32
	KeyStates           uint32
	PerformanceCount    uint64
	ButtonChangeType    int32
}

// TouchInfo mirrors POINTER_TOUCH_INFO.
type TouchInfo struct {
	PointerInfo PointerInfo
	TouchFlags  uint32
	TouchMask   uint32
	Contact     Rect
	ContactRaw  Rect
	Orientation uint32
	Pressure    uint32
}

// PenInfo mirrors POINTER_PEN_INFO.
type PenInfo struct {
	PointerInfo PointerInfo
	PenFlags    uint32
	PenMask     uint32
	Pressure    uint32
	Rotation    uint32
	TiltX       int32
	TiltY       int32
}
