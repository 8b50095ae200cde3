//go:build linux

package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"touchstone.dev/touch"
)

// Kernel uinput interface constants (linux/uinput.h, linux/input.h).
const (
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502
	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565
	uiSetAbsBit  = 0x40045567

	evSyn = 0x00
	evKey = 0x01
	evAbs = 0x03

	synReport = 0x00
	btnTouch  = 0x14a

	absX            = 0x00
	absY            = 0x01
	absPressure     = 0x18
	absMtSlot       = 0x2f
	absMtTouchMajor = 0x30
	absMtPositionX  = 0x35
	absMtPositionY  = 0x36
	absMtTrackingID = 0x39
	absMtPressure   = 0x3a

	absCnt   = 0x40
	busI2C   = 0x18
	nameSize = 80
)

// uinputSink injects batches into the kernel input subsystem as a
// virtual multi-touch device using the type B (slot) protocol.
type uinputSink struct {
	f     *os.File
	buf   bytes.Buffer
	slots int
	// occupied is the number of slots in use after the last report.
	occupied int
	// touching tracks whether BTN_TOUCH is currently asserted.
	touching bool
}

func newUinputSink(maxX, maxY, maxTouches int) (*uinputSink, error) {
	f, err := os.OpenFile("/dev/uinput", os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("uinput: %w", err)
	}
	s := &uinputSink{f: f, slots: maxTouches}
	setup := []struct {
		req uint
		val int
	}{
		{uiSetEvBit, evKey},
		{uiSetKeyBit, btnTouch},
		{uiSetEvBit, evAbs},
		{uiSetAbsBit, absX},
		{uiSetAbsBit, absY},
		{uiSetAbsBit, absPressure},
		{uiSetAbsBit, absMtSlot},
		{uiSetAbsBit, absMtTrackingID},
		{uiSetAbsBit, absMtPositionX},
		{uiSetAbsBit, absMtPositionY},
		{uiSetAbsBit, absMtTouchMajor},
		{uiSetAbsBit, absMtPressure},
	}
	for _, c := range setup {
		if err := unix.IoctlSetInt(int(f.Fd()), c.req, c.val); err != nil {
			f.Close()
			return nil, fmt.Errorf("uinput: setup ioctl 0x%x: %w", c.req, err)
		}
	}
	if _, err := f.Write(userDev(maxX, maxY, maxTouches)); err != nil {
		f.Close()
		return nil, fmt.Errorf("uinput: device setup: %w", err)
	}
	if err := unix.IoctlSetInt(int(f.Fd()), uiDevCreate, 0); err != nil {
		f.Close()
		return nil, fmt.Errorf("uinput: create: %w", err)
	}
	return s, nil
}

// userDev encodes a struct uinput_user_dev: name, input_id, ff_effects_max
// and the four 64-entry axis limit arrays.
func userDev(maxX, maxY, maxTouches int) []byte {
	var buf bytes.Buffer
	var name [nameSize]byte
	copy(name[:], "touchstone")
	buf.Write(name[:])
	le := binary.LittleEndian
	for _, id := range []uint16{busI2C, 0x0001, 0x0001, 0x0001} {
		binary.Write(&buf, le, id)
	}
	binary.Write(&buf, le, uint32(0)) // ff_effects_max
	var absMax, absMin [absCnt]int32
	absMax[absX] = int32(maxX)
	absMax[absY] = int32(maxY)
	absMax[absPressure] = 255
	absMax[absMtSlot] = int32(maxTouches - 1)
	absMax[absMtTrackingID] = 65535
	absMax[absMtPositionX] = int32(maxX)
	absMax[absMtPositionY] = int32(maxY)
	absMax[absMtTouchMajor] = 255
	absMax[absMtPressure] = 255
	binary.Write(&buf, le, absMax)
	binary.Write(&buf, le, absMin)
	binary.Write(&buf, le, [absCnt]int32{}) // absfuzz
	binary.Write(&buf, le, [absCnt]int32{}) // absflat
	return buf.Bytes()
}

func (s *uinputSink) emit(typ, code uint16, value int32) {
	le := binary.LittleEndian
	binary.Write(&s.buf, le, int64(0)) // sec
	binary.Write(&s.buf, le, int64(0)) // usec
	binary.Write(&s.buf, le, typ)
	binary.Write(&s.buf, le, code)
	binary.Write(&s.buf, le, value)
}

// Deliver writes one batch as a type B slot report. Active contacts
// occupy slots in batch order; the remaining slots are released.
func (s *uinputSink) Deliver(batch []touch.Event) error {
	s.buf.Reset()
	slot := 0
	for _, e := range batch {
		if !e.Active || slot >= s.slots {
			continue
		}
		s.emit(evAbs, absMtSlot, int32(slot))
		s.emit(evAbs, absMtTrackingID, int32(e.ID))
		s.emit(evAbs, absMtPositionX, int32(e.X))
		s.emit(evAbs, absMtPositionY, int32(e.Y))
		s.emit(evAbs, absMtPressure, int32(e.Pressure))
		s.emit(evAbs, absMtTouchMajor, int32(e.Major))
		slot++
	}
	for i := slot; i < s.occupied; i++ {
		s.emit(evAbs, absMtSlot, int32(i))
		s.emit(evAbs, absMtTrackingID, -1)
	}
	s.occupied = slot
	touching := slot > 0
	if s.buf.Len() == 0 && touching == s.touching {
		// Idle tick, nothing to report.
		return nil
	}
	if touching != s.touching {
		v := int32(0)
		if touching {
			v = 1
		}
		s.emit(evKey, btnTouch, v)
		s.touching = touching
	}
	s.emit(evSyn, synReport, 0)
	if _, err := s.f.Write(s.buf.Bytes()); err != nil {
		return fmt.Errorf("uinput: %w", err)
	}
	return nil
}

func (s *uinputSink) Close() error {
	unix.IoctlSetInt(int(s.f.Fd()), uiDevDestroy, 0)
	return s.f.Close()
}
