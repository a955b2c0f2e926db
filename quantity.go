package flrw

import (
	"fmt"

	"github.com/phil-mansfield/flrw/math/nd"
	"github.com/phil-mansfield/flrw/units"
)

// A Quantity is an array of values with an attached physical unit. The
// dimensioned methods of FLRW return Quantities whose shapes match their
// redshift arguments.
type Quantity struct {
	arr  *nd.Array
	unit units.Unit
}

// NewQuantity attaches a unit to an array.
func NewQuantity(arr *nd.Array, unit units.Unit) Quantity {
	return Quantity{arr: arr, unit: unit}
}

func scalarQ(v float64, u units.Unit) Quantity {
	return Quantity{arr: nd.Scalar(v), unit: u}
}

// Array returns the underlying array. It is shared, not copied.
func (q Quantity) Array() *nd.Array { return q.arr }

// Unit returns the unit the values are measured in.
func (q Quantity) Unit() units.Unit { return q.unit }

// Shape returns the shape of the underlying array.
func (q Quantity) Shape() []int { return q.arr.Shape() }

// Values returns the underlying flat data slice. It is shared, not copied.
func (q Quantity) Values() []float64 { return q.arr.Data() }

// Float returns the value of a single-element Quantity and panics for any
// other shape.
func (q Quantity) Float() float64 { return q.arr.Float() }

// At returns the i-th element of the flattened array.
func (q Quantity) At(i int) float64 { return q.arr.Data()[i] }

// To converts the Quantity to another unit of the same dimension. The
// returned Quantity has freshly allocated storage.
func (q Quantity) To(unit units.Unit) (Quantity, error) {
	scale, err := units.Convert(1, q.unit, unit)
	if err != nil {
		return Quantity{}, err
	}
	out := nd.Map(func(v float64) float64 { return v * scale }, q.arr)
	return Quantity{arr: out, unit: unit}, nil
}

func (q Quantity) String() string {
	if q.arr == nil {
		return "<empty>"
	}
	if q.unit.Symbol() == "" {
		return q.arr.String()
	}
	return fmt.Sprintf("%s %s", q.arr.String(), q.unit.Symbol())
}
