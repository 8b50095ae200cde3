// package ft5x06 implements a driver for the Focaltech FT5x06 and FT6x06
// capacitive touch controller families.
//
// Datasheet: https://www.buydisplay.com/download/ic/FT5x06.pdf
package ft5x06

import (
	"fmt"

	"touchstone.dev/touch"
)

const (
	regDeviceMode   = 0x00
	regTDStatus     = 0x02
	regTouchStart   = 0x03
	regTHGroup      = 0x80
	regPeriodActive = 0x88
	regLibVersion   = 0xA1
	regCipher       = 0xA3
	regFWVersion    = 0xA6

	// Event flag in the two top bits of each record's first byte.
	eventLiftUp = 0x01

	defaultThreshold = 0x16

	// PERIODACTIVE unit is ~16.5Hz; 6 gives roughly 100Hz.
	defaultReportRate = 0x06

	recordSize = 6

	// The count register's low nibble can hold junk on glitched reads.
	maxReported = 10
)

// chipIDs holds the ID_G_CIPHER values of the supported parts: FT5206,
// FT6206/FT6236, FT6336, FT5426 and FT5526 variants.
var chipIDs = []byte{0x55, 0x06, 0x36, 0x64, 0x26}

type Device struct {
	bus  touch.Bus
	info touch.Info
	// full selects the FT5x06 setup sequence; FT6x06 parts only take
	// the mode write.
	full bool

	chipID    byte
	fwVersion byte
}

func New(b touch.Bus, info touch.Info) *Device {
	return &Device{bus: b, info: info, full: info.Family != "ft6x06"}
}

// Probe reads the chip identification register and matches it against
// the known Focaltech IDs.
func Probe(b touch.Bus) (bool, error) {
	var id [1]byte
	if err := b.WriteRead([]byte{regCipher}, id[:]); err != nil {
		return false, err
	}
	for _, want := range chipIDs {
		if id[0] == want {
			return true, nil
		}
	}
	return false, nil
}

// Initialize puts the controller in normal operating mode and, on FT5x06
// parts, programs the touch threshold and report rate.
func (d *Device) Initialize() error {
	var v [1]byte
	if err := d.bus.WriteRead([]byte{regCipher}, v[:]); err == nil {
		d.chipID = v[0]
	}
	if err := d.bus.WriteRead([]byte{regFWVersion}, v[:]); err == nil {
		d.fwVersion = v[0]
	}
	if err := d.bus.Write([]byte{regDeviceMode, 0x00}); err != nil {
		return fmt.Errorf("ft5x06: set mode: %w", err)
	}
	if !d.full {
		return nil
	}
	if err := d.bus.Write([]byte{regTHGroup, defaultThreshold}); err != nil {
		return fmt.Errorf("ft5x06: set threshold: %w", err)
	}
	if err := d.bus.Write([]byte{regPeriodActive, defaultReportRate}); err != nil {
		return fmt.Errorf("ft5x06: set report rate: %w", err)
	}
	return nil
}

// Version returns the chip ID and firmware version read during
// Initialize.
func (d *Device) Version() (chipID, firmware byte) {
	return d.chipID, d.fwVersion
}

// SetThreshold writes the touch sensitivity group register.
func (d *Device) SetThreshold(v byte) error {
	if err := d.bus.Write([]byte{regTHGroup, v}); err != nil {
		return fmt.Errorf("ft5x06: set threshold: %w", err)
	}
	return nil
}

// ReadTouches reads the touch count register and one 6-byte record per
// reported contact.
func (d *Device) ReadTouches() ([]touch.Sample, error) {
	var status [1]byte
	if err := d.bus.WriteRead([]byte{regTDStatus}, status[:]); err != nil {
		return nil, fmt.Errorf("ft5x06: status: %w", err)
	}
	count := int(status[0] & 0x0F)
	if count > maxReported {
		count = maxReported
	}
	if count > d.info.MaxTouches {
		count = d.info.MaxTouches
	}
	if count == 0 {
		return nil, nil
	}
	buf := make([]byte, count*recordSize)
	if err := d.bus.WriteRead([]byte{regTouchStart}, buf); err != nil {
		return nil, fmt.Errorf("ft5x06: records: %w", err)
	}
	samples := make([]touch.Sample, 0, count)
	for i := 0; i < count; i++ {
		r := buf[i*recordSize:]
		samples = append(samples, touch.Sample{
			ID:       int(r[2] >> 4),
			X:        int(r[0]&0x0F)<<8 | int(r[1]),
			Y:        int(r[2]&0x0F)<<8 | int(r[3]),
			Pressure: int(r[4]),
			Major:    int(r[5]),
			Minor:    int(r[5]),
			Active:   (r[0]>>6)&0x03 != eventLiftUp,
		})
	}
	return samples, nil
}

func init() {
	p := touch.Protocol{
		Probe: Probe,
		New: func(b touch.Bus, info touch.Info) touch.Driver {
			return New(b, info)
		},
	}
	touch.Register("ft5x06", p)
	touch.Register("ft6x06", p)
}
