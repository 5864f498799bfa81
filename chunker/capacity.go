package chunker

import "fmt"

// Capacity bounds chunk sizes with a soft target and a hard ceiling.
//
// Desired is what strategies aim for: they close a slab once adding the next
// unit would exceed it. Max is the absolute ceiling used when expanding
// slabs with overlap; a slab never grows past Max. With no explicit max the
// two are equal.
type Capacity struct {
	desired int
	max     int
}

// NewCapacity creates a capacity with the same desired and max size.
func NewCapacity(size int) Capacity {
	return Capacity{desired: size, max: size}
}

// WithMax returns a copy with a larger hard ceiling, letting strategies stay
// at a higher structural level when doing so only slightly exceeds the
// target.
func (c Capacity) WithMax(max int) (Capacity, error) {
	if max < c.desired {
		return Capacity{}, fmt.Errorf("%w: max (%d) must be >= desired (%d)",
			ErrInvalidChunkSize, max, c.desired)
	}
	c.max = max
	return c, nil
}

// Desired returns the target chunk size.
func (c Capacity) Desired() int {
	return c.desired
}

// Max returns the hard ceiling.
func (c Capacity) Max() int {
	return c.max
}

// WouldOverflow reports whether adding more bytes would exceed the target.
func (c Capacity) WouldOverflow(current, additional int) bool {
	return current+additional > c.desired
}
