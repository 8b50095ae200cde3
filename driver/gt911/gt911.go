// package gt911 implements a driver for the Goodix GT9xx capacitive
// touch controller family (GT911, GT912, GT927, GT928, GT5688, GT1151).
//
// Registers are 16 bit, big endian on the wire.
package gt911

import (
	"bytes"
	"fmt"
	"time"

	"touchstone.dev/touch"
)

const (
	regCommand       = 0x8040
	regConfigVersion = 0x8047
	regProductID     = 0x8140
	regFWVersion     = 0x8144
	regStatus        = 0x814E
	regPointData     = 0x814F

	cmdSoftReset = 0x02

	statusReady = 0x80

	recordSize  = 8
	maxReported = 10

	// The family does not report pressure; events carry this value.
	placeholderPressure = 50

	resetSettle = 50 * time.Millisecond
)

// productIDs holds the ASCII product ID prefixes of the supported parts.
var productIDs = [][]byte{
	[]byte("911"), []byte("912"), []byte("927"),
	[]byte("928"), []byte("568"), []byte("115"),
}

type Device struct {
	bus  touch.Bus
	info touch.Info

	productID     [4]byte
	fwVersion     uint16
	configVersion byte
}

func New(b touch.Bus, info touch.Info) *Device {
	return &Device{bus: b, info: info}
}

func reg(r uint16) []byte {
	return []byte{byte(r >> 8), byte(r)}
}

// Probe reads the product ID register and matches the 3-digit ASCII
// prefix against the known Goodix parts.
func Probe(b touch.Bus) (bool, error) {
	var id [4]byte
	if err := b.WriteRead(reg(regProductID), id[:]); err != nil {
		return false, err
	}
	for _, want := range productIDs {
		if bytes.HasPrefix(id[:], want) {
			return true, nil
		}
	}
	return false, nil
}

// Initialize reads the identification registers, issues a soft reset and
// waits for the part to come back, then reads the config version.
func (d *Device) Initialize() error {
	if err := d.bus.WriteRead(reg(regProductID), d.productID[:]); err != nil {
		return fmt.Errorf("gt911: product id: %w", err)
	}
	var fw [2]byte
	if err := d.bus.WriteRead(reg(regFWVersion), fw[:]); err != nil {
		return fmt.Errorf("gt911: firmware version: %w", err)
	}
	d.fwVersion = uint16(fw[1])<<8 | uint16(fw[0])
	if err := d.bus.Write([]byte{byte(regCommand >> 8), byte(regCommand & 0xFF), cmdSoftReset}); err != nil {
		return fmt.Errorf("gt911: soft reset: %w", err)
	}
	time.Sleep(resetSettle)
	var cfg [1]byte
	if err := d.bus.WriteRead(reg(regConfigVersion), cfg[:]); err != nil {
		return fmt.Errorf("gt911: config version: %w", err)
	}
	d.configVersion = cfg[0]
	return nil
}

// Version returns the product ID string and firmware version read during
// Initialize.
func (d *Device) Version() (product string, firmware uint16) {
	return string(bytes.TrimRight(d.productID[:], "\x00")), d.fwVersion
}

// ReadTouches reads the status register and, when the ready flag is set,
// one 8-byte record per contact. The status register is cleared with a
// zero write exactly once per call, whether or not data was ready.
func (d *Device) ReadTouches() ([]touch.Sample, error) {
	var status [1]byte
	if err := d.bus.WriteRead(reg(regStatus), status[:]); err != nil {
		return nil, fmt.Errorf("gt911: status: %w", err)
	}
	var samples []touch.Sample
	count := int(status[0] & 0x0F)
	if count > maxReported {
		count = maxReported
	}
	if count > d.info.MaxTouches {
		count = d.info.MaxTouches
	}
	if status[0]&statusReady != 0 && count > 0 {
		buf := make([]byte, count*recordSize)
		if err := d.bus.WriteRead(reg(regPointData), buf); err != nil {
			return nil, fmt.Errorf("gt911: records: %w", err)
		}
		samples = make([]touch.Sample, 0, count)
		for i := 0; i < count; i++ {
			r := buf[i*recordSize:]
			size := int(r[5]) | int(r[6])<<8
			samples = append(samples, touch.Sample{
				ID:       int(r[0]),
				X:        int(r[1]) | int(r[2])<<8,
				Y:        int(r[3]) | int(r[4])<<8,
				Pressure: placeholderPressure,
				Major:    size,
				Minor:    size,
				Active:   true,
			})
		}
	}
	if err := d.bus.Write([]byte{byte(regStatus >> 8), byte(regStatus & 0xFF), 0x00}); err != nil {
		return samples, fmt.Errorf("gt911: clear status: %w", err)
	}
	return samples, nil
}

func init() {
	touch.Register("gt911", touch.Protocol{
		Probe: Probe,
		New: func(b touch.Bus, info touch.Info) touch.Driver {
			return New(b, info)
		},
	})
}
