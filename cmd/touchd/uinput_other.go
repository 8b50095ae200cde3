//go:build !linux

package main

import "errors"

func newUinputSink(maxX, maxY, maxTouches int) (eventSink, error) {
	return nil, errors.New("uinput: virtual input devices require linux")
}
