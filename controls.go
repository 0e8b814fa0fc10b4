package raster

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/soypat/geometry/ms2"
)

// Control represents an editable parameter of a filter.
// When the value is modified via ChangeValue the filter picks it up on its next Apply.
// Controls must not be changed while the filter is being applied.
type Control interface {
	// Display/human readable name and description.
	Describe() (name, description string)
	// ActualValue returns the current value of the control.
	ActualValue() any
	// ChangeValue attempts to update the ActualValue to newValue.
	ChangeValue(newValue any) error
}

// ControlOrdered is a numeric parameter limited to [Min, Max].
type ControlOrdered[T cmp.Ordered] struct {
	Name        string
	Description string
	Value       T
	Min         T
	Max         T
	Step        T
	OnChange    func(T) error
}

func (co *ControlOrdered[T]) Describe() (name, description string) {
	return co.Name, co.Description
}
func (co *ControlOrdered[T]) ActualValue() any { return co.Value }
func (co *ControlOrdered[T]) ChangeValue(newValue any) error {
	v, ok := newValue.(T)
	if !ok {
		return fmt.Errorf("new value %T not of type %T", newValue, co.Value)
	}
	if v < co.Min || v > co.Max {
		return fmt.Errorf("%w: new value %v exceeds limits %v..%v", ErrOutOfRange, v, co.Min, co.Max)
	}
	err := co.OnChange(v)
	if err == nil {
		co.Value = v
	}
	return err
}

type integer interface {
	~int | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int8 | ~int16 | ~int32 | ~int64
}

// enum best generated with stringer commands.
type enum interface {
	integer
	fmt.Stringer
}

// ControlEnum maps to dropdown kind of list.
type ControlEnum[T enum] struct {
	Name        string
	Description string
	Value       T
	ValidValues []T
	OnChange    func(T) error
}

func (ce *ControlEnum[T]) Describe() (name, description string) {
	return ce.Name, ce.Description
}
func (ce *ControlEnum[T]) ActualValue() any {
	return ce.Value
}
func (ce *ControlEnum[T]) ChangeValue(newValue any) error {
	v, ok := newValue.(T)
	if !ok {
		return fmt.Errorf("new value %T not of type %T", newValue, ce.Value)
	}
	if !slices.Contains(ce.ValidValues, v) {
		return fmt.Errorf("%w: value %v of %T not valid", ErrOutOfRange, v, v)
	}
	err := ce.OnChange(v)
	if err == nil {
		ce.Value = v
	}
	return err
}

// ControlColor is a color picker. Alpha is ignored by tone filters.
type ControlColor struct {
	Name        string
	Description string
	Value       Pixel
	OnChange    func(Pixel) error
}

func (cc *ControlColor) Describe() (name, description string) {
	return cc.Name, cc.Description
}
func (cc *ControlColor) ActualValue() any { return cc.Value }
func (cc *ControlColor) ChangeValue(newValue any) error {
	v, ok := newValue.(Pixel)
	if !ok {
		return fmt.Errorf("new value %T not of type %T", newValue, cc.Value)
	}
	err := cc.OnChange(v)
	if err == nil {
		cc.Value = v
	}
	return err
}

// CurvePoint is a control point for curve-type controls.
// X represents input (0-1), Y represents output (0-1).
type CurvePoint = ms2.Vec

// ControlCurve is a tone curve control with editable control points.
// Points are in normalized 0-1 range for both X (input) and Y (output)
// and are kept sorted by X.
type ControlCurve struct {
	Name        string
	Description string
	Points      []CurvePoint
	OnChange    func([]CurvePoint) error
}

func (cc *ControlCurve) Describe() (name, description string) {
	return cc.Name, cc.Description
}

func (cc *ControlCurve) ActualValue() any {
	return cc.Points
}

func (cc *ControlCurve) ChangeValue(newValue any) error {
	pts, ok := newValue.([]CurvePoint)
	if !ok {
		return fmt.Errorf("new value %T not of type []CurvePoint", newValue)
	}
	pts, err := SortCurve(pts)
	if err != nil {
		return err
	}
	err = cc.OnChange(pts)
	if err == nil {
		cc.Points = pts
	}
	return err
}

// SortCurve returns a copy of pts sorted by X after checking every coordinate is in [0,1].
func SortCurve(pts []CurvePoint) ([]CurvePoint, error) {
	for i, p := range pts {
		if !(p.X >= 0 && p.X <= 1 && p.Y >= 0 && p.Y <= 1) {
			return nil, fmt.Errorf("%w: curve point %d (%v,%v) outside unit square", ErrOutOfRange, i, p.X, p.Y)
		}
	}
	sorted := slices.Clone(pts)
	slices.SortStableFunc(sorted, func(a, b CurvePoint) int { return cmp.Compare(a.X, b.X) })
	return sorted, nil
}

// FindControl returns the control whose name matches name, ignoring case, or nil.
func FindControl(ctrls []Control, name string) Control {
	for _, c := range ctrls {
		if n, _ := c.Describe(); strings.EqualFold(n, name) {
			return c
		}
	}
	return nil
}
