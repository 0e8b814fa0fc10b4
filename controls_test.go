package raster

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestControlOrdered(t *testing.T) {
	var applied int
	c := &ControlOrdered[int]{Name: "Radius", Value: 1, Min: 0, Max: 10, Step: 1,
		OnChange: func(v int) error { applied = v; return nil }}
	if err := c.ChangeValue(4); err != nil {
		t.Fatal(err)
	}
	if applied != 4 || c.ActualValue() != 4 {
		t.Errorf("got applied=%d actual=%v", applied, c.ActualValue())
	}
	if err := c.ChangeValue(11); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("out of range: %v", err)
	}
	if err := c.ChangeValue(2.0); err == nil {
		t.Error("wrong type accepted")
	}
	if c.ActualValue() != 4 {
		t.Errorf("value changed by failed update: %v", c.ActualValue())
	}
}

type testMode uint8

func (m testMode) String() string { return [...]string{"a", "b", "c"}[m] }

func TestControlEnum(t *testing.T) {
	c := &ControlEnum[testMode]{Name: "Mode", ValidValues: []testMode{0, 1},
		OnChange: func(testMode) error { return nil }}
	if err := c.ChangeValue(testMode(1)); err != nil {
		t.Fatal(err)
	}
	if err := c.ChangeValue(testMode(2)); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("invalid enum: %v", err)
	}
}

func TestSortCurve(t *testing.T) {
	got, err := SortCurve([]CurvePoint{{X: 1, Y: 1}, {X: 0, Y: 0.2}, {X: 0.5, Y: 0.9}})
	if err != nil {
		t.Fatal(err)
	}
	want := []CurvePoint{{X: 0, Y: 0.2}, {X: 0.5, Y: 0.9}, {X: 1, Y: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if _, err := SortCurve([]CurvePoint{{X: 1.5, Y: 0}}); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("point outside unit square: %v", err)
	}
}

func TestFindControl(t *testing.T) {
	ctrls := []Control{
		&ControlOrdered[int]{Name: "Radius"},
		&ControlColor{Name: "Tone"},
	}
	if c := FindControl(ctrls, "tone"); c != ctrls[1] {
		t.Errorf("got %v", c)
	}
	if c := FindControl(ctrls, "missing"); c != nil {
		t.Errorf("got %v", c)
	}
}
