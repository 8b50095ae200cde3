package profile

import (
	"errors"
	"path/filepath"
	"testing"

	"touchstone.dev/bus"
	"touchstone.dev/touch"
)

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "touch", "cal.cbor")
	want := Profile{
		Controller:  "gt911",
		Calibration: touch.Calibration{MinX: 10, MaxX: 1010, MinY: 20, MaxY: 620},
		Orientation: touch.Orientation{InvertY: true, SwapXY: true},
	}
	if err := Save(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.cbor")); err == nil {
		t.Error("loading a missing profile succeeded")
	}
}

func genericManager(t *testing.T) *touch.Manager {
	t.Helper()
	m := touch.NewManager(touch.Config{
		Open: func(busIndex int, addr uint16) (touch.BusCloser, error) {
			return bus.NewSim(), nil
		},
	})
	t.Cleanup(func() { m.Close() })
	if err := m.Bind("generic_i2c"); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestApplyAndSnapshot(t *testing.T) {
	m := genericManager(t)
	p := Profile{
		Controller:  "generic_i2c",
		Calibration: touch.Calibration{MinX: 5, MaxX: 795, MinY: 5, MaxY: 475},
		Orientation: touch.Orientation{InvertX: true},
	}
	if err := Apply(m, p); err != nil {
		t.Fatal(err)
	}
	got, err := Snapshot(m)
	if err != nil {
		t.Fatal(err)
	}
	if got != p {
		t.Errorf("got %+v, want %+v", got, p)
	}
}

func TestApplyWrongController(t *testing.T) {
	m := genericManager(t)
	p := Profile{Controller: "gt911"}
	if err := Apply(m, p); err == nil {
		t.Error("profile for another controller applied")
	}
}

func TestApplyNoController(t *testing.T) {
	m := touch.NewManager(touch.Config{
		Open: func(busIndex int, addr uint16) (touch.BusCloser, error) {
			return nil, bus.ErrNotFound
		},
	})
	defer m.Close()
	if err := Apply(m, Profile{}); !errors.Is(err, touch.ErrNoController) {
		t.Errorf("got %v, want ErrNoController", err)
	}
}
