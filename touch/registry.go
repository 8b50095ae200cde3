package touch

// Info describes one supported controller fitting: which protocol family
// it speaks, where it sits on the bus, and the panel geometry. Entries
// are static and never mutated.
type Info struct {
	Name   string
	Family string
	Bus    int
	Addr   uint16
	MaxX   int
	MaxY   int
	// MaxTouches is the number of simultaneous contacts the part
	// reports; decode never yields more.
	MaxTouches int
	// IRQPin and ResetPin are GPIO line numbers, -1 when not wired.
	IRQPin   int
	ResetPin int
	InvertX  bool
	InvertY  bool
	SwapXY   bool
}

// Devices is the catalog of supported controllers, in probe order. The
// detector tries entries sequentially and the first positive signature
// wins, so more specific recipes must precede looser ones at the same
// address.
var Devices = []Info{
	// Focaltech FT5x06 family (common on the official RPi display).
	{Name: "ft5206", Family: "ft5x06", Bus: 1, Addr: 0x38, MaxX: 800, MaxY: 480, MaxTouches: 5, IRQPin: 4, ResetPin: -1},
	{Name: "ft5306", Family: "ft5x06", Bus: 1, Addr: 0x38, MaxX: 800, MaxY: 480, MaxTouches: 5, IRQPin: 4, ResetPin: -1},
	{Name: "ft5406", Family: "ft5x06", Bus: 1, Addr: 0x38, MaxX: 800, MaxY: 480, MaxTouches: 10, IRQPin: 4, ResetPin: -1},
	{Name: "ft5426", Family: "ft5x06", Bus: 1, Addr: 0x38, MaxX: 1024, MaxY: 600, MaxTouches: 5, IRQPin: 4, ResetPin: -1},

	// Focaltech FT6x06 family.
	{Name: "ft6206", Family: "ft6x06", Bus: 1, Addr: 0x38, MaxX: 320, MaxY: 240, MaxTouches: 2, IRQPin: 4, ResetPin: -1},
	{Name: "ft6236", Family: "ft6x06", Bus: 1, Addr: 0x38, MaxX: 480, MaxY: 320, MaxTouches: 2, IRQPin: 4, ResetPin: -1},
	{Name: "ft6336", Family: "ft6x06", Bus: 1, Addr: 0x38, MaxX: 480, MaxY: 320, MaxTouches: 2, IRQPin: 4, ResetPin: -1},

	// Goodix GT911 (very common) and relatives.
	{Name: "gt911", Family: "gt911", Bus: 1, Addr: 0x5D, MaxX: 1024, MaxY: 600, MaxTouches: 5, IRQPin: 4, ResetPin: 17},
	{Name: "gt911_alt", Family: "gt911", Bus: 1, Addr: 0x14, MaxX: 1024, MaxY: 600, MaxTouches: 5, IRQPin: 4, ResetPin: 17},
	{Name: "gt912", Family: "gt911", Bus: 1, Addr: 0x5D, MaxX: 1280, MaxY: 800, MaxTouches: 5, IRQPin: 4, ResetPin: 17},
	{Name: "gt927", Family: "gt911", Bus: 1, Addr: 0x14, MaxX: 1920, MaxY: 1080, MaxTouches: 10, IRQPin: 4, ResetPin: 17},
	{Name: "gt928", Family: "gt911", Bus: 1, Addr: 0x5D, MaxX: 1920, MaxY: 1200, MaxTouches: 10, IRQPin: 4, ResetPin: 17},
	{Name: "gt5688", Family: "gt911", Bus: 1, Addr: 0x14, MaxX: 1080, MaxY: 1920, MaxTouches: 10, IRQPin: 4, ResetPin: 17},
	{Name: "gt1151", Family: "gt911", Bus: 1, Addr: 0x14, MaxX: 720, MaxY: 1280, MaxTouches: 10, IRQPin: 4, ResetPin: 17},

	// Ilitek.
	{Name: "ili2130", Family: "ili251x", Bus: 1, Addr: 0x41, MaxX: 800, MaxY: 480, MaxTouches: 2, IRQPin: 4, ResetPin: -1},
	{Name: "ili2131", Family: "ili251x", Bus: 1, Addr: 0x41, MaxX: 1024, MaxY: 600, MaxTouches: 2, IRQPin: 4, ResetPin: -1},
	{Name: "ili251x", Family: "ili251x", Bus: 1, Addr: 0x41, MaxX: 1280, MaxY: 800, MaxTouches: 10, IRQPin: 4, ResetPin: -1},

	// Atmel maXTouch.
	{Name: "mxt224", Family: "mxt", Bus: 1, Addr: 0x4A, MaxX: 1024, MaxY: 768, MaxTouches: 10, IRQPin: 4, ResetPin: -1},
	{Name: "mxt336", Family: "mxt", Bus: 1, Addr: 0x4A, MaxX: 1280, MaxY: 800, MaxTouches: 10, IRQPin: 4, ResetPin: -1},
	{Name: "mxt540", Family: "mxt", Bus: 1, Addr: 0x4B, MaxX: 1920, MaxY: 1080, MaxTouches: 10, IRQPin: 4, ResetPin: -1},

	// Synaptics. No probe recipe implemented; bindable by name only.
	{Name: "s3203", Family: "rmi4", Bus: 1, Addr: 0x20, MaxX: 1080, MaxY: 1920, MaxTouches: 10, IRQPin: 4, ResetPin: -1},
	{Name: "s3508", Family: "rmi4", Bus: 1, Addr: 0x20, MaxX: 1080, MaxY: 2160, MaxTouches: 10, IRQPin: 4, ResetPin: -1},

	// Elan.
	{Name: "ektf2127", Family: "ektf2127", Bus: 1, Addr: 0x10, MaxX: 800, MaxY: 480, MaxTouches: 5, IRQPin: 4, ResetPin: -1},
	{Name: "ekth3500", Family: "ektf2127", Bus: 1, Addr: 0x10, MaxX: 1024, MaxY: 600, MaxTouches: 10, IRQPin: 4, ResetPin: -1},

	// Sitronix.
	{Name: "st1232", Family: "st1232", Bus: 1, Addr: 0x55, MaxX: 800, MaxY: 480, MaxTouches: 2, IRQPin: 4, ResetPin: -1},
	{Name: "st1633", Family: "st1232", Bus: 1, Addr: 0x55, MaxX: 1024, MaxY: 768, MaxTouches: 5, IRQPin: 4, ResetPin: -1},

	// Himax and Cypress. Bindable by name only, like Synaptics.
	{Name: "hx8526", Family: "hx852x", Bus: 1, Addr: 0x48, MaxX: 1080, MaxY: 1920, MaxTouches: 10, IRQPin: 4, ResetPin: -1},
	{Name: "cyttsp4", Family: "cyttsp", Bus: 1, Addr: 0x24, MaxX: 800, MaxY: 480, MaxTouches: 5, IRQPin: 4, ResetPin: -1},
	{Name: "cyttsp5", Family: "cyttsp", Bus: 1, Addr: 0x24, MaxX: 1280, MaxY: 800, MaxTouches: 10, IRQPin: 4, ResetPin: -1},

	// Waveshare displays, all GT911 based.
	{Name: "waveshare_4inch", Family: "gt911", Bus: 1, Addr: 0x14, MaxX: 480, MaxY: 800, MaxTouches: 5, IRQPin: 4, ResetPin: 17, SwapXY: true},
	{Name: "waveshare_5inch", Family: "gt911", Bus: 1, Addr: 0x14, MaxX: 800, MaxY: 480, MaxTouches: 5, IRQPin: 4, ResetPin: 17},
	{Name: "waveshare_7inch", Family: "gt911", Bus: 1, Addr: 0x14, MaxX: 800, MaxY: 480, MaxTouches: 5, IRQPin: 4, ResetPin: 17},
	{Name: "waveshare_7inch_c", Family: "gt911", Bus: 1, Addr: 0x14, MaxX: 1024, MaxY: 600, MaxTouches: 5, IRQPin: 4, ResetPin: 17},
	{Name: "waveshare_10inch", Family: "gt911", Bus: 1, Addr: 0x14, MaxX: 1280, MaxY: 800, MaxTouches: 5, IRQPin: 4, ResetPin: 17},

	// Pimoroni HyperPixel.
	{Name: "hyperpixel4", Family: "gt911", Bus: 1, Addr: 0x5D, MaxX: 800, MaxY: 480, MaxTouches: 5, IRQPin: 27, ResetPin: -1},
	{Name: "hyperpixel4_square", Family: "gt911", Bus: 1, Addr: 0x5D, MaxX: 720, MaxY: 720, MaxTouches: 5, IRQPin: 27, ResetPin: -1},

	// Adafruit displays.
	{Name: "adafruit_ft6206", Family: "ft6x06", Bus: 1, Addr: 0x38, MaxX: 320, MaxY: 240, MaxTouches: 2, IRQPin: 4, ResetPin: -1},

	// Generic fallback, bindable by name only.
	{Name: "generic_i2c", Family: "generic", Bus: 1, Addr: 0x38, MaxX: 800, MaxY: 480, MaxTouches: 5, IRQPin: 4, ResetPin: -1},
}

// SupportedControllers returns the names of all catalog entries.
func SupportedControllers() []string {
	names := make([]string, len(Devices))
	for i, d := range Devices {
		names[i] = d.Name
	}
	return names
}
