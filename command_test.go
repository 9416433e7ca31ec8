package glyphvg

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCommand_String(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{CmdMoveTo, "MoveTo"},
		{CmdLineTo, "LineTo"},
		{CmdQuadTo, "QuadTo"},
		{CmdCubicTo, "CubicTo"},
		{CmdClosePath, "ClosePath"},
		{Command(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.want {
			t.Errorf("Command(%d).String() = %q, want %q", tt.cmd, got, tt.want)
		}
	}
}

func TestPathData_Validate(t *testing.T) {
	tests := []struct {
		name    string
		data    PathData
		wantErr bool
	}{
		{"empty", PathData{}, false},
		{"move close", PathData{Commands: []Command{CmdMoveTo, CmdClosePath}, Coords: []float32{1, 2}}, false},
		{"cubic", PathData{Commands: []Command{CmdMoveTo, CmdCubicTo}, Coords: make([]float32, 8)}, false},
		{"missing coords", PathData{Commands: []Command{CmdMoveTo, CmdQuadTo}, Coords: make([]float32, 4)}, true},
		{"extra coords", PathData{Commands: []Command{CmdMoveTo}, Coords: make([]float32, 4)}, true},
		{"unknown command", PathData{Commands: []Command{Command(9)}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.data.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidPathData) {
				t.Errorf("Validate() error = %v, want ErrInvalidPathData", err)
			}
		})
	}
}

func TestPathData_Walk(t *testing.T) {
	data := PathData{
		Commands: []Command{CmdMoveTo, CmdLineTo, CmdQuadTo, CmdClosePath},
		Coords:   []float32{0, 0, 1, 0, 2, 2, 0, 1},
	}

	type step struct {
		Cmd Command
		Pts []float32
	}
	var got []step
	err := data.Walk(func(c Command, pts []float32) error {
		got = append(got, step{c, append([]float32(nil), pts...)})
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	want := []step{
		{CmdMoveTo, []float32{0, 0}},
		{CmdLineTo, []float32{1, 0}},
		{CmdQuadTo, []float32{2, 2, 0, 1}},
		{CmdClosePath, nil},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Walk mismatch (-want +got):\n%s", diff)
	}
}

func TestPathData_WalkStops(t *testing.T) {
	data := PathData{
		Commands: []Command{CmdMoveTo, CmdLineTo, CmdLineTo},
		Coords:   make([]float32, 6),
	}
	stop := errors.New("stop")
	calls := 0
	err := data.Walk(func(Command, []float32) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Errorf("Walk() = %v after %d calls, want stop after 1", err, calls)
	}
}

func TestPathData_Clone(t *testing.T) {
	data := PathData{Commands: []Command{CmdMoveTo}, Coords: []float32{1, 2}}
	clone := data.Clone()
	data.Coords[0] = 99
	data.Commands[0] = CmdClosePath
	if clone.Coords[0] != 1 || clone.Commands[0] != CmdMoveTo {
		t.Errorf("Clone aliases the source: %+v", clone)
	}
}

func TestCapability(t *testing.T) {
	if CapAll != 1<<12-1 {
		t.Errorf("CapAll = %b, want 12 bits", CapAll)
	}
	kept := CapAll &^ CapsReadOnly
	for _, c := range []Capability{CapPathLength, CapPointAlongPath, CapTangentAlongPath, CapPathBounds, CapPathTransformedBounds} {
		if !kept.Has(c) {
			t.Errorf("read-only path lost query capability %b", c)
		}
	}
	for _, c := range []Capability{CapAppendFrom, CapModify, CapTransformTo, CapInterpolateFrom} {
		if kept.Has(c) {
			t.Errorf("read-only path kept mutating capability %b", c)
		}
	}
}
