// package ektf2127 implements a driver for the Elan eKTF2127 and
// eKTH3500 touch controller families.
//
// The controller has no register map. It answers a four-byte hello
// pattern with an echo frame, and reports are fixed 34-byte frames with
// nibble-packed 12-bit coordinates.
package ektf2127

import (
	"fmt"
	"time"

	"touchstone.dev/touch"
)

const (
	helloByte   = 0x55
	helloSettle = 10 * time.Millisecond

	frameSize   = 34
	recordSize  = 6
	maxReported = 5
)

type Device struct {
	bus  touch.Bus
	info touch.Info
}

func New(b touch.Bus, info touch.Info) *Device {
	return &Device{bus: b, info: info}
}

// hello transmits the synchronization pattern and reads back the echo
// frame. The part needs settle time between the two halves.
func hello(b touch.Bus) error {
	if err := b.Write([]byte{helloByte, helloByte, helloByte, helloByte}); err != nil {
		return err
	}
	time.Sleep(helloSettle)
	var echo [4]byte
	return b.Read(echo[:])
}

// Probe performs the hello exchange; a completed echo identifies an Elan
// part.
func Probe(b touch.Bus) (bool, error) {
	if err := hello(b); err != nil {
		return false, err
	}
	return true, nil
}

// Initialize repeats the hello exchange to synchronize the report
// stream.
func (d *Device) Initialize() error {
	if err := hello(d.bus); err != nil {
		return fmt.Errorf("ektf2127: hello: %w", err)
	}
	return nil
}

// ReadTouches reads one fixed-size report frame and validates its
// synchronization header.
func (d *Device) ReadTouches() ([]touch.Sample, error) {
	var frame [frameSize]byte
	if err := d.bus.Read(frame[:]); err != nil {
		return nil, fmt.Errorf("ektf2127: frame: %w", err)
	}
	if frame[0] != helloByte || frame[1] != helloByte {
		return nil, fmt.Errorf("ektf2127: bad frame header % x", frame[:2])
	}
	count := int(frame[2] & 0x0F)
	if count > maxReported {
		count = maxReported
	}
	if count > d.info.MaxTouches {
		count = d.info.MaxTouches
	}
	if count == 0 {
		return nil, nil
	}
	samples := make([]touch.Sample, 0, count)
	for i := 0; i < count; i++ {
		r := frame[3+i*recordSize:]
		samples = append(samples, touch.Sample{
			ID:       i,
			X:        int(r[0])<<4 | int(r[2]&0xF0)>>4,
			Y:        int(r[1])<<4 | int(r[2]&0x0F),
			Pressure: int(r[3]),
			Major:    int(r[4]),
			Minor:    int(r[5]),
			Active:   true,
		})
	}
	return samples, nil
}

func init() {
	touch.Register("ektf2127", touch.Protocol{
		Probe: Probe,
		New: func(b touch.Bus, info touch.Info) touch.Driver {
			return New(b, info)
		},
	})
}
