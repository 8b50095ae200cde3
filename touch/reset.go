package touch

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

const (
	resetPulse  = 10 * time.Millisecond
	resetSettle = 50 * time.Millisecond
)

// pulseReset drives a controller reset line low, then releases it and
// waits for the chip to come back up.
func pulseReset(pin int) error {
	p := gpioreg.ByName(fmt.Sprintf("GPIO%d", pin))
	if p == nil {
		return fmt.Errorf("touch: reset line GPIO%d not present", pin)
	}
	if err := p.Out(gpio.Low); err != nil {
		return fmt.Errorf("touch: reset GPIO%d: %w", pin, err)
	}
	time.Sleep(resetPulse)
	if err := p.Out(gpio.High); err != nil {
		return fmt.Errorf("touch: reset GPIO%d: %w", pin, err)
	}
	time.Sleep(resetSettle)
	return nil
}
