// package bus provides raw access to a single chip on an addressed I2C bus.
//
// It knows nothing about any touch protocol; it only moves bytes. Probe and
// report semantics live in the driver packages.
package bus

import (
	"errors"
	"fmt"
	"strconv"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// ErrNotFound is reported when the bus device does not exist or cannot
// be claimed.
var ErrNotFound = errors.New("bus: device not found")

// Device is an open handle to one address on one I2C bus.
type Device struct {
	bus i2c.BusCloser
	dev *i2c.Dev
}

// Open claims addr on the I2C bus with the given index.
//
// The kernel does not ack the address at open time; a missing chip shows
// up as an I/O error on the first transfer.
func Open(busIndex int, addr uint16) (*Device, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("bus: %w", err)
	}
	b, err := i2creg.Open(strconv.Itoa(busIndex))
	if err != nil {
		return nil, fmt.Errorf("bus: i2c-%d: %w: %w", busIndex, ErrNotFound, err)
	}
	return &Device{
		bus: b,
		dev: &i2c.Dev{Bus: b, Addr: addr},
	}, nil
}

func (d *Device) Write(w []byte) error {
	if err := d.dev.Tx(w, nil); err != nil {
		return fmt.Errorf("bus: write: %w", err)
	}
	return nil
}

func (d *Device) Read(r []byte) error {
	if err := d.dev.Tx(nil, r); err != nil {
		return fmt.Errorf("bus: read: %w", err)
	}
	return nil
}

// WriteRead performs a write followed by a read in one transaction. There
// is no settle delay between the two halves; callers that need one must
// sleep explicitly.
func (d *Device) WriteRead(w, r []byte) error {
	if err := d.dev.Tx(w, r); err != nil {
		return fmt.Errorf("bus: write-read: %w", err)
	}
	return nil
}

// Close releases the bus. It must not be called with a transfer in flight.
func (d *Device) Close() error {
	d.dev = nil
	return d.bus.Close()
}
