// package st1232 implements a driver for the Sitronix ST1232 and ST1633
// touch controller families.
//
// Reports are fixed 16-byte frames read from register zero, two contacts
// at most, with the high bits of each record's lead byte extending the
// 8-bit coordinate fields.
package st1232

import (
	"fmt"

	"touchstone.dev/touch"
)

const (
	regStatus = 0x00

	frameSize   = 16
	recordSize  = 4
	maxReported = 2

	// The family does not report contact geometry.
	placeholderSize = 20
)

type Device struct {
	bus  touch.Bus
	info touch.Info
}

func New(b touch.Bus, info touch.Info) *Device {
	return &Device{bus: b, info: info}
}

// Probe reads the 8-byte status block; a completed read identifies a
// Sitronix part. The recipe is loose, so catalog order matters for chips
// sharing address 0x55.
func Probe(b touch.Bus) (bool, error) {
	var blk [8]byte
	if err := b.WriteRead([]byte{regStatus}, blk[:]); err != nil {
		return false, err
	}
	return true, nil
}

// Initialize reads the status block. The part needs no register writes.
func (d *Device) Initialize() error {
	var blk [8]byte
	if err := d.bus.WriteRead([]byte{regStatus}, blk[:]); err != nil {
		return fmt.Errorf("st1232: status: %w", err)
	}
	return nil
}

// ReadTouches reads one report frame and decodes up to two contacts.
func (d *Device) ReadTouches() ([]touch.Sample, error) {
	var frame [frameSize]byte
	if err := d.bus.WriteRead([]byte{regStatus}, frame[:]); err != nil {
		return nil, fmt.Errorf("st1232: frame: %w", err)
	}
	count := int(frame[0] & 0x0F)
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
		r := frame[2+i*recordSize:]
		samples = append(samples, touch.Sample{
			ID:       i,
			X:        int(r[0]&0x70)<<4 | int(r[1]),
			Y:        int(r[0]&0x07)<<8 | int(r[2]),
			Pressure: int(r[3]),
			Major:    placeholderSize,
			Minor:    placeholderSize,
			Active:   r[0]&0x80 != 0,
		})
	}
	return samples, nil
}

func init() {
	touch.Register("st1232", touch.Protocol{
		Probe: Probe,
		New: func(b touch.Bus, info touch.Info) touch.Driver {
			return New(b, info)
		},
	})
}
