// package mxt implements a driver for the Atmel (Microchip) maXTouch
// mXT224/mXT336/mXT540 touch controller family.
//
// maXTouch parts are message based: reports are routed through an object
// table that must be parsed from the chip's info block. This driver reads
// the info block for identification but does not track the object table,
// so it decodes no contacts.
// TODO: parse the object table and decode T9 touch messages.
package mxt

import (
	"fmt"

	"touchstone.dev/touch"
)

const infoBlockSize = 7

// familyIDs holds the info block family bytes of the supported parts.
var familyIDs = []byte{0x81, 0x82, 0xA2}

type Device struct {
	bus  touch.Bus
	info touch.Info

	familyID  byte
	variantID byte
	version   byte
	build     byte
}

func New(b touch.Bus, info touch.Info) *Device {
	return &Device{bus: b, info: info}
}

// Probe reads the 7-byte info block at address zero and matches the
// family ID.
func Probe(b touch.Bus) (bool, error) {
	var blk [infoBlockSize]byte
	if err := b.WriteRead([]byte{0x00, 0x00}, blk[:]); err != nil {
		return false, err
	}
	for _, want := range familyIDs {
		if blk[0] == want {
			return true, nil
		}
	}
	return false, nil
}

// Initialize reads the info block. The part needs no register writes.
func (d *Device) Initialize() error {
	var blk [infoBlockSize]byte
	if err := d.bus.WriteRead([]byte{0x00, 0x00}, blk[:]); err != nil {
		return fmt.Errorf("mxt: info block: %w", err)
	}
	d.familyID = blk[0]
	d.variantID = blk[1]
	d.version = blk[2]
	d.build = blk[3]
	return nil
}

// Version returns the identification bytes read during Initialize.
func (d *Device) Version() (family, variant byte, version string) {
	return d.familyID, d.variantID, fmt.Sprintf("%d.%d", d.version, d.build)
}

// ReadTouches reports no contacts; see the package comment.
func (d *Device) ReadTouches() ([]touch.Sample, error) {
	return nil, nil
}

func init() {
	touch.Register("mxt", touch.Protocol{
		Probe: Probe,
		New: func(b touch.Bus, info touch.Info) touch.Driver {
			return New(b, info)
		},
	})
}
