package field

// Pointer tracks the latest pointer position over the surface. The zero
// value is an unset pointer with interaction disabled.
type Pointer struct {
	at     Vec2
	set    bool
	Radius float64
}

func NewPointer(radius float64) Pointer {
	return Pointer{Radius: radius}
}

// Move records a pointer position; an unset pointer becomes set.
func (p *Pointer) Move(x, y float64) {
	p.at = Vec2{x, y}
	p.set = true
}

// Leave clears the pointer.
func (p *Pointer) Leave() {
	p.at = Vec2{}
	p.set = false
}

// Position returns the pointer position and whether the pointer is set.
func (p Pointer) Position() (Vec2, bool) {
	return p.at, p.set
}

func (p Pointer) IsSet() bool {
	return p.set
}
