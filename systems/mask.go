package systems

import "image"

// alphaThreshold is the alpha value above which a pixel counts as solid.
const alphaThreshold = 127

// Mask is a 1-bit-per-pixel collision mask.
type Mask struct {
	w, h   int
	stride int // uint64 words per row
	bits   []uint64
}

// NewMask creates an empty mask of the given size.
func NewMask(w, h int) *Mask {
	stride := (w + 63) / 64
	return &Mask{
		w:      w,
		h:      h,
		stride: stride,
		bits:   make([]uint64, stride*h),
	}
}

// MaskFromImage builds a mask from an image's alpha channel.
func MaskFromImage(img image.Image) *Mask {
	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			if a>>8 > alphaThreshold {
				m.Set(x, y)
			}
		}
	}
	return m
}

// Size returns the mask dimensions.
func (m *Mask) Size() (int, int) {
	return m.w, m.h
}

// Set marks a pixel as solid. Out-of-range coordinates are ignored.
func (m *Mask) Set(x, y int) {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return
	}
	m.bits[y*m.stride+x/64] |= 1 << uint(x%64)
}

// Get reports whether a pixel is solid. Out-of-range coordinates are empty.
func (m *Mask) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return false
	}
	return m.bits[y*m.stride+x/64]&(1<<uint(x%64)) != 0
}

// Count returns the number of solid pixels.
func (m *Mask) Count() int {
	n := 0
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if m.Get(x, y) {
				n++
			}
		}
	}
	return n
}

// FlipVertical returns a copy of the mask mirrored top-to-bottom.
func (m *Mask) FlipVertical() *Mask {
	out := NewMask(m.w, m.h)
	for y := 0; y < m.h; y++ {
		copy(out.bits[(m.h-1-y)*m.stride:(m.h-y)*m.stride], m.bits[y*m.stride:(y+1)*m.stride])
	}
	return out
}

// Overlaps reports whether any solid pixel of other, placed at offset
// (dx, dy) relative to this mask's origin, coincides with a solid pixel here.
func (m *Mask) Overlaps(other *Mask, dx, dy int) bool {
	x0 := max(0, dx)
	y0 := max(0, dy)
	x1 := min(m.w, dx+other.w)
	y1 := min(m.h, dy+other.h)
	if x0 >= x1 || y0 >= y1 {
		return false
	}

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if m.Get(x, y) && other.Get(x-dx, y-dy) {
				return true
			}
		}
	}
	return false
}
