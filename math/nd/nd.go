/*package nd provides dense n-dimensional float64 arrays and elementwise
operations over them with numpy-style broadcasting. Arrays are row-major and
carry their shape explicitly, so functions of one or two variables can be
mapped over inputs of any rank without the caller flattening anything by
hand. A rank-0 Array represents a scalar.*/
package nd

import (
	"errors"
	"fmt"
	"strings"
)

// ErrShape is returned when two shapes cannot be broadcast together.
var ErrShape = errors.New("nd: shapes cannot be broadcast together")

// Array is a dense n-dimensional array of float64 values stored in row-major
// order.
type Array struct {
	data  []float64
	shape []int
}

// Scalar creates a rank-0 Array holding x.
func Scalar(x float64) *Array {
	return &Array{data: []float64{x}, shape: []int{}}
}

// Of creates a 1D Array out of its arguments.
func Of(xs ...float64) *Array {
	data := make([]float64, len(xs))
	copy(data, xs)
	return &Array{data: data, shape: []int{len(data)}}
}

// FromSlice creates a 1D Array containing a copy of xs.
func FromSlice(xs []float64) *Array { return Of(xs...) }

// Zeros creates a zeroed Array of the given shape. Zeros() with no arguments
// is a rank-0 zero.
func Zeros(shape ...int) *Array {
	n := 1
	for _, dim := range shape {
		if dim < 0 {
			panic(fmt.Sprintf("Shape %v given to Zeros() has a "+
				"negative dimension.", shape))
		}
		n *= dim
	}

	sh := make([]int, len(shape))
	copy(sh, shape)
	return &Array{data: make([]float64, n), shape: sh}
}

// Full creates an Array of the given shape with every element set to x.
func Full(x float64, shape ...int) *Array {
	a := Zeros(shape...)
	for i := range a.data {
		a.data[i] = x
	}
	return a
}

// Reshape returns a view of a with the given shape. The element count cannot
// change. The returned Array shares a's buffer.
func (a *Array) Reshape(shape ...int) *Array {
	n := 1
	for _, dim := range shape {
		n *= dim
	}
	if n != len(a.data) {
		panic(fmt.Sprintf("Cannot reshape Array with %d elements to "+
			"shape %v.", len(a.data), shape))
	}

	sh := make([]int, len(shape))
	copy(sh, shape)
	return &Array{data: a.data, shape: sh}
}

// Shape returns a copy of a's shape.
func (a *Array) Shape() []int {
	sh := make([]int, len(a.shape))
	copy(sh, a.shape)
	return sh
}

// Rank returns the number of axes of a. Scalars have rank 0.
func (a *Array) Rank() int { return len(a.shape) }

// Len returns the total number of elements in a.
func (a *Array) Len() int { return len(a.data) }

// At returns the element at flat row-major index i.
func (a *Array) At(i int) float64 { return a.data[i] }

// Data returns a's underlying buffer in row-major order. The slice is live:
// modifying it modifies a.
func (a *Array) Data() []float64 { return a.data }

// IsScalar returns true if a has rank 0.
func (a *Array) IsScalar() bool { return len(a.shape) == 0 }

// Float returns the value held by a single-element Array.
func (a *Array) Float() float64 {
	if len(a.data) != 1 {
		panic(fmt.Sprintf("Float() called on an Array with %d "+
			"elements.", len(a.data)))
	}
	return a.data[0]
}

// String returns a nested bracket representation of a.
func (a *Array) String() string {
	if a.IsScalar() {
		return fmt.Sprintf("%g", a.data[0])
	}
	b := &strings.Builder{}
	a.format(b, 0, 0)
	return b.String()
}

func (a *Array) format(b *strings.Builder, axis, offset int) {
	b.WriteByte('[')
	if axis == len(a.shape)-1 {
		for i := 0; i < a.shape[axis]; i++ {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(b, "%g", a.data[offset+i])
		}
	} else {
		stride := 1
		for _, dim := range a.shape[axis+1:] {
			stride *= dim
		}
		for i := 0; i < a.shape[axis]; i++ {
			if i > 0 {
				b.WriteByte(' ')
			}
			a.format(b, axis+1, offset+i*stride)
		}
	}
	b.WriteByte(']')
}

// BroadcastShapes combines two shapes under the numpy broadcasting rules.
// The shapes are aligned at their trailing axes, and along each axis the
// extents must either match or one of them must be 1. An axis of extent 1
// stretches to the other shape's extent, and a missing leading axis behaves
// like an axis of extent 1.
func BroadcastShapes(s1, s2 []int) ([]int, error) {
	rank := len(s1)
	if len(s2) > rank {
		rank = len(s2)
	}

	out := make([]int, rank)
	for i := 0; i < rank; i++ {
		d1, d2 := 1, 1
		if i < len(s1) {
			d1 = s1[len(s1)-1-i]
		}
		if i < len(s2) {
			d2 = s2[len(s2)-1-i]
		}

		switch {
		case d1 == d2:
			out[rank-1-i] = d1
		case d1 == 1:
			out[rank-1-i] = d2
		case d2 == 1:
			out[rank-1-i] = d1
		default:
			return nil, fmt.Errorf("%w: %v and %v", ErrShape, s1, s2)
		}
	}
	return out, nil
}

// Map applies f elementwise to a and returns the results in an Array with
// the same shape. The input is never modified.
func Map(f func(x float64) float64, a *Array) *Array {
	out := Zeros(a.shape...)
	for i, x := range a.data {
		out.data[i] = f(x)
	}
	return out
}

// Map2 applies f elementwise to a and b, broadcasting them against one
// another. The result has the broadcast shape. Map2 fails with an error
// wrapping ErrShape when the shapes are incompatible.
func Map2(f func(x, y float64) float64, a, b *Array) (*Array, error) {
	shape, err := BroadcastShapes(a.shape, b.shape)
	if err != nil {
		return nil, err
	}

	out := Zeros(shape...)
	sa := broadcastStrides(a.shape, shape)
	sb := broadcastStrides(b.shape, shape)

	// Walk the output in row-major order, stepping each input by its
	// broadcast strides like an odometer.
	idx := make([]int, len(shape))
	ka, kb := 0, 0
	for k := range out.data {
		out.data[k] = f(a.data[ka], b.data[kb])
		for d := len(shape) - 1; d >= 0; d-- {
			idx[d]++
			ka += sa[d]
			kb += sb[d]
			if idx[d] < shape[d] {
				break
			}
			idx[d] = 0
			ka -= sa[d] * shape[d]
			kb -= sb[d] * shape[d]
		}
	}
	return out, nil
}

// broadcastStrides computes row-major strides that walk an array of the
// given shape as though it had the larger broadcast shape. Stretched and
// missing axes get stride 0 so their elements are revisited.
func broadcastStrides(shape, broadcast []int) []int {
	strides := make([]int, len(broadcast))
	stride := 1
	for i := 0; i < len(shape); i++ {
		d := len(shape) - 1 - i
		if shape[d] != 1 {
			strides[len(broadcast)-1-i] = stride
		}
		stride *= shape[d]
	}
	return strides
}
