// package ili251x implements a driver for the Ilitek ILI2130/ILI2131/
// ILI2132/ILI251x touch controller family.
//
// The controller is command based: a command byte selects what the next
// read returns. Coordinates are 10 bit, packed across 2-bit extensions
// of the record's lead bytes.
package ili251x

import (
	"fmt"

	"touchstone.dev/touch"
)

const (
	cmdTouchInfo = 0x10
	cmdFWVersion = 0x40
	cmdProtocol  = 0x42

	recordSize  = 5
	maxReported = 10

	// The family does not report contact geometry.
	placeholderSize = 20
)

type Device struct {
	bus  touch.Bus
	info touch.Info

	fwVersion [4]byte
	protocol  [2]byte
}

func New(b touch.Bus, info touch.Info) *Device {
	return &Device{bus: b, info: info}
}

// Probe issues the firmware version command; any well-formed answer
// identifies an Ilitek part. The recipe is loose, so catalog order
// matters for chips sharing address 0x41.
func Probe(b touch.Bus) (bool, error) {
	var fw [4]byte
	if err := b.WriteRead([]byte{cmdFWVersion}, fw[:]); err != nil {
		return false, err
	}
	return true, nil
}

// Initialize reads the firmware and protocol versions. The part needs no
// register writes.
func (d *Device) Initialize() error {
	if err := d.bus.WriteRead([]byte{cmdFWVersion}, d.fwVersion[:]); err != nil {
		return fmt.Errorf("ili251x: firmware version: %w", err)
	}
	if err := d.bus.WriteRead([]byte{cmdProtocol}, d.protocol[:]); err != nil {
		return fmt.Errorf("ili251x: protocol version: %w", err)
	}
	return nil
}

// Version returns the firmware and protocol versions read during
// Initialize, formatted the way Ilitek tools print them.
func (d *Device) Version() (firmware, protocol string) {
	fw := d.fwVersion
	pr := d.protocol
	return fmt.Sprintf("%d.%d.%d.%d", fw[0], fw[1], fw[2], fw[3]),
		fmt.Sprintf("%d.%d", pr[0], pr[1])
}

// ReadTouches reads the contact count and one 5-byte record per contact.
func (d *Device) ReadTouches() ([]touch.Sample, error) {
	var count [1]byte
	if err := d.bus.WriteRead([]byte{cmdTouchInfo}, count[:]); err != nil {
		return nil, fmt.Errorf("ili251x: touch info: %w", err)
	}
	n := int(count[0])
	if n == 0 || n > maxReported {
		return nil, nil
	}
	if n > d.info.MaxTouches {
		n = d.info.MaxTouches
	}
	buf := make([]byte, 1+n*recordSize)
	if err := d.bus.WriteRead([]byte{cmdTouchInfo}, buf); err != nil {
		return nil, fmt.Errorf("ili251x: records: %w", err)
	}
	samples := make([]touch.Sample, 0, n)
	for i := 0; i < n; i++ {
		r := buf[1+i*recordSize:]
		samples = append(samples, touch.Sample{
			ID:       int(r[0]&0x3F) >> 2,
			X:        int(r[0]&0x03)<<8 | int(r[1]),
			Y:        int(r[2]&0x03)<<8 | int(r[3]),
			Pressure: int(r[4]),
			Major:    placeholderSize,
			Minor:    placeholderSize,
			Active:   true,
		})
	}
	return samples, nil
}

func init() {
	touch.Register("ili251x", touch.Protocol{
		Probe: Probe,
		New: func(b touch.Bus, info touch.Info) touch.Driver {
			return New(b, info)
		},
	})
}
