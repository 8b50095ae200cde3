// package touch detects and reads I2C touchscreen controllers.
//
// The package holds the catalog of supported controllers and the polling
// machinery; the per-chip wire protocols live under driver/. Importing a
// driver package registers its protocol family:
//
//	import (
//		"touchstone.dev/touch"
//
//		_ "touchstone.dev/driver/ft5x06"
//		_ "touchstone.dev/driver/gt911"
//	)
//
//	m := touch.NewManager(touch.Config{})
//	if err := m.Detect(); err != nil { ... }
package touch

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is reported by Detect when no supported controller
	// responds. It means "no touch hardware present", not a fault.
	ErrNotFound = errors.New("touch: no controller detected")
	// ErrNoController is reported by operations that need an active
	// controller when none is bound.
	ErrNoController = errors.New("touch: no active controller")
	// ErrUnsupported is reported when the active controller has no
	// register for the requested setting.
	ErrUnsupported = errors.New("touch: not supported by controller")
	// ErrBusy is reported when detection is attempted while the poll
	// loop is running.
	ErrBusy = errors.New("touch: poll loop running")
)

// Bus is the raw byte transport to one chip. bus.Device and bus.Sim
// implement it.
type Bus interface {
	Write(w []byte) error
	Read(r []byte) error
	WriteRead(w, r []byte) error
}

// BusCloser is a Bus whose address claim can be released.
type BusCloser interface {
	Bus
	Close() error
}

// Sample is one raw touch contact as decoded from a controller report,
// before calibration.
type Sample struct {
	ID       int
	X, Y     int
	Pressure int
	Major    int
	Minor    int
	Active   bool
}

// Event is one touch contact after calibration and orientation
// correction. X and Y lie within the active descriptor's
// [0, MaxX] × [0, MaxY].
type Event struct {
	ID       int
	X, Y     int
	Pressure int
	Major    int
	Minor    int
	Active   bool
}

// Driver decodes one controller family's wire protocol over a bound Bus.
type Driver interface {
	// Initialize runs the family's setup sequence.
	Initialize() error
	// ReadTouches reads and decodes one report frame. A frame with no
	// contacts is a nil slice and a nil error.
	ReadTouches() ([]Sample, error)
}

// ThresholdSetter is implemented by drivers whose controller exposes a
// touch sensitivity register.
type ThresholdSetter interface {
	SetThreshold(v byte) error
}

// Protocol binds a family tag to its signature probe and driver
// constructor.
type Protocol struct {
	// Probe identifies the family on the bus. A false result with a nil
	// error is a clean mismatch.
	Probe func(b Bus) (bool, error)
	New   func(b Bus, info Info) Driver
}

var protocols = map[string]Protocol{}

// Register makes a protocol family available to the detector. It is
// intended to be called from driver package init functions and panics on
// duplicate registration.
func Register(family string, p Protocol) {
	if _, exists := protocols[family]; exists {
		panic(fmt.Sprintf("touch: family %q registered twice", family))
	}
	protocols[family] = p
}

// generic is the fallback family: no setup, no reports. It is never
// auto-detected; it exists so unknown panels can be bound explicitly.
type generic struct{}

func (generic) Initialize() error              { return nil }
func (generic) ReadTouches() ([]Sample, error) { return nil, nil }

func init() {
	Register("generic", Protocol{
		Probe: func(Bus) (bool, error) { return false, nil },
		New:   func(Bus, Info) Driver { return generic{} },
	})
}
