package systems

// Ground is a two-segment band that scrolls left and wraps around.
type Ground struct {
	Y      float64
	X1, X2 float64

	width    float64
	velocity float64
}

// NewGround creates a ground band at y with segments of the given tile width.
func NewGround(y float64, tileWidth int, velocity float64) *Ground {
	w := float64(tileWidth)
	return &Ground{
		Y:        y,
		X1:       0,
		X2:       w,
		width:    w,
		velocity: velocity,
	}
}

// Move scrolls both segments and moves any segment that left the screen
// behind the other.
func (g *Ground) Move() {
	g.X1 -= g.velocity
	g.X2 -= g.velocity

	if g.X1+g.width < 0 {
		g.X1 = g.X2 + g.width
	}
	if g.X2+g.width < 0 {
		g.X2 = g.X1 + g.width
	}
}
