package ektf2127

import (
	"reflect"
	"testing"

	"touchstone.dev/bus"
	"touchstone.dev/touch"
)

var testInfo = touch.Info{Name: "ektf2127", Family: "ektf2127", MaxX: 800, MaxY: 480, MaxTouches: 5}

func TestInitializeHello(t *testing.T) {
	sim := bus.NewSim(
		bus.Exchange{W: []byte{0x55, 0x55, 0x55, 0x55}},
		bus.Exchange{R: []byte{0x55, 0x55, 0x55, 0x55}},
	)
	if err := New(sim, testInfo).Initialize(); err != nil {
		t.Fatal(err)
	}
	writes := sim.Writes()
	if len(writes) != 1 || !reflect.DeepEqual(writes[0], []byte{0x55, 0x55, 0x55, 0x55}) {
		t.Errorf("hello writes % x, want a single 55 55 55 55", writes)
	}
}

func TestReadTouches(t *testing.T) {
	frame := make([]byte, frameSize)
	frame[0], frame[1] = 0x55, 0x55
	frame[2] = 0x02
	// Contact 0: x=0x123, y=0x0F0 nibble-packed, pressure 42, 7x3.
	copy(frame[3:], []byte{0x12, 0x0F, 0x30, 42, 7, 3})
	// Contact 1: x=0xABC, y=0xDEF.
	copy(frame[9:], []byte{0xAB, 0xDE, 0xCF, 9, 1, 2})
	sim := bus.NewSim(bus.Exchange{R: frame})
	got, err := New(sim, testInfo).ReadTouches()
	if err != nil {
		t.Fatal(err)
	}
	want := []touch.Sample{
		{ID: 0, X: 0x123, Y: 0x0F0, Pressure: 42, Major: 7, Minor: 3, Active: true},
		{ID: 1, X: 0xABC, Y: 0xDEF, Pressure: 9, Major: 1, Minor: 2, Active: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestReadTouchesBadHeader(t *testing.T) {
	frame := make([]byte, frameSize)
	frame[0], frame[1] = 0xAA, 0x55
	sim := bus.NewSim(bus.Exchange{R: frame})
	if _, err := New(sim, testInfo).ReadTouches(); err == nil {
		t.Error("frame with a bad header decoded without error")
	}
}

func TestReadTouchesNone(t *testing.T) {
	frame := make([]byte, frameSize)
	frame[0], frame[1] = 0x55, 0x55
	sim := bus.NewSim(bus.Exchange{R: frame})
	got, err := New(sim, testInfo).ReadTouches()
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}
