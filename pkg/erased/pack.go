// pkg/erased/pack.go
package erased

import (
	"errors"
	"fmt"
	"strings"
)

// Capacity is the maximum call arity.
const Capacity = 10

var (
	ErrCapacityExceeded = errors.New("erased: too many arguments")
	ErrSliceOutOfRange  = errors.New("erased: slice beyond pack capacity")
)

// Pack is one call's arguments: Capacity slots, the first Len of them filled
// in caller order, the rest empty.
type Pack struct {
	slots [Capacity]Value
	n     int
}

// MakePack erases args into a new Pack.
func MakePack(args ...any) (Pack, error) {
	var p Pack
	if len(args) > Capacity {
		return p, fmt.Errorf("%w: got %d, max %d", ErrCapacityExceeded, len(args), Capacity)
	}
	for i, a := range args {
		p.slots[i] = Of(a)
	}
	p.n = len(args)
	return p, nil
}

// PackOf builds a Pack from already erased values.
func PackOf(vals ...Value) (Pack, error) {
	var p Pack
	if len(vals) > Capacity {
		return p, fmt.Errorf("%w: got %d, max %d", ErrCapacityExceeded, len(vals), Capacity)
	}
	copy(p.slots[:], vals)
	p.n = len(vals)
	return p, nil
}

// Len is the logical length.
func (p Pack) Len() int { return p.n }

// At returns slot i, or an empty Value when i is out of range.
func (p Pack) At(i int) Value {
	if i < 0 || i >= Capacity {
		return Value{}
	}
	return p.slots[i]
}

// Slice copies the first n slots. Slots past Len come back empty.
func (p Pack) Slice(n int) ([]Value, error) {
	if n < 0 || n > Capacity {
		return nil, fmt.Errorf("%w: %d", ErrSliceOutOfRange, n)
	}
	out := make([]Value, n)
	copy(out, p.slots[:n])
	return out, nil
}

func (p Pack) String() string {
	parts := make([]string, p.n)
	for i := 0; i < p.n; i++ {
		parts[i] = p.slots[i].String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
