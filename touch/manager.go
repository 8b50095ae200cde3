package touch

import (
	"fmt"
	"log"
	"sync"
	"time"

	"touchstone.dev/bus"
)

// Config adjusts a Manager. The zero value selects the built-in catalog,
// the periph.io I2C transport and a ~100Hz poll rate.
type Config struct {
	// Devices overrides the controller catalog.
	Devices []Info
	// Open overrides the bus transport. Tests use bus.Sim here.
	Open func(busIndex int, addr uint16) (BusCloser, error)
	// Reset overrides the reset-line pulse.
	Reset func(pin int) error
	// Interval is the poll tick period.
	Interval time.Duration
}

type loopState int

const (
	loopIdle loopState = iota
	loopRunning
	loopStopping
)

// Manager owns at most one active controller: the bus handle, the bound
// driver and the calibration state. All bus traffic goes through its
// mutex, so transactions are fully serialized against configuration
// changes and the poll loop.
type Manager struct {
	devices  []Info
	open     func(busIndex int, addr uint16) (BusCloser, error)
	reset    func(pin int) error
	interval time.Duration

	mu     sync.Mutex
	active bool
	info   Info
	drv    Driver
	bus    BusCloser
	cal    Calibration
	orient Orientation

	state loopState
	quit  chan struct{}
	done  chan struct{}
}

func NewManager(c Config) *Manager {
	m := &Manager{
		devices:  c.Devices,
		open:     c.Open,
		reset:    c.Reset,
		interval: c.Interval,
	}
	if m.devices == nil {
		m.devices = Devices
	}
	if m.open == nil {
		m.open = func(busIndex int, addr uint16) (BusCloser, error) {
			return bus.Open(busIndex, addr)
		}
	}
	if m.reset == nil {
		m.reset = pulseReset
	}
	if m.interval == 0 {
		m.interval = 10 * time.Millisecond
	}
	return m
}

// Detect probes the catalog in order and binds the first controller whose
// signature matches. It reports ErrNotFound when every candidate fails,
// which means no touch hardware is fitted. Detect must not be called
// while polling.
func (m *Manager) Detect() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != loopIdle {
		return ErrBusy
	}
	m.unbind()
	for _, info := range m.devices {
		p, ok := protocols[info.Family]
		if !ok {
			continue
		}
		b, err := m.open(info.Bus, info.Addr)
		if err != nil {
			continue
		}
		match, err := p.Probe(b)
		if err != nil || !match {
			b.Close()
			continue
		}
		if err := m.commit(info, p, b); err != nil {
			b.Close()
			return err
		}
		log.Printf("touch: detected %s at i2c-%d addr 0x%02x (%dx%d, %d touches)",
			info.Name, info.Bus, info.Addr, info.MaxX, info.MaxY, info.MaxTouches)
		return nil
	}
	return ErrNotFound
}

// Bind attaches the named catalog entry without probing, for boards where
// the fitted panel is known up front.
func (m *Manager) Bind(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != loopIdle {
		return ErrBusy
	}
	for _, info := range m.devices {
		if info.Name != name {
			continue
		}
		p, ok := protocols[info.Family]
		if !ok {
			return fmt.Errorf("touch: no protocol registered for family %q", info.Family)
		}
		b, err := m.open(info.Bus, info.Addr)
		if err != nil {
			return err
		}
		m.unbind()
		if err := m.commit(info, p, b); err != nil {
			b.Close()
			return err
		}
		return nil
	}
	return fmt.Errorf("touch: unknown controller %q", name)
}

// commit makes {info, driver, handle} the active controller. Called with
// the lock held.
func (m *Manager) commit(info Info, p Protocol, b BusCloser) error {
	if info.ResetPin > 0 {
		if err := m.reset(info.ResetPin); err != nil {
			log.Printf("touch: %s: %v", info.Name, err)
		}
	}
	drv := p.New(b, info)
	if err := drv.Initialize(); err != nil {
		return fmt.Errorf("touch: init %s: %w", info.Name, err)
	}
	m.active = true
	m.info = info
	m.drv = drv
	m.bus = b
	m.cal = Calibration{MinX: 0, MaxX: info.MaxX, MinY: 0, MaxY: info.MaxY}
	m.orient = Orientation{InvertX: info.InvertX, InvertY: info.InvertY, SwapXY: info.SwapXY}
	return nil
}

func (m *Manager) unbind() {
	if m.bus != nil {
		m.bus.Close()
	}
	m.active = false
	m.drv = nil
	m.bus = nil
}

// SupportedControllers returns the names of the catalog entries in probe
// order.
func (m *Manager) SupportedControllers() []string {
	names := make([]string, len(m.devices))
	for i, d := range m.devices {
		names[i] = d.Name
	}
	return names
}

// ActiveController returns the bound descriptor's name, or "" when no
// controller is active.
func (m *Manager) ActiveController() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active {
		return ""
	}
	return m.info.Name
}

// TouchInfo reports the active descriptor's resolution and contact count.
func (m *Manager) TouchInfo() (maxX, maxY, maxTouches int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active {
		return 0, 0, 0, ErrNoController
	}
	return m.info.MaxX, m.info.MaxY, m.info.MaxTouches, nil
}

// SetCalibration replaces the raw coordinate window. It takes effect
// atomically on the next poll tick.
func (m *Manager) SetCalibration(minX, maxX, minY, maxY int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cal = Calibration{MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY}
}

// SetOrientation replaces the axis correction flags. It takes effect
// atomically on the next poll tick.
func (m *Manager) SetOrientation(invertX, invertY, swapXY bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orient = Orientation{InvertX: invertX, InvertY: invertY, SwapXY: swapXY}
}

// Calibration returns the current window and orientation.
func (m *Manager) Calibration() (Calibration, Orientation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cal, m.orient
}

// SetTouchThreshold writes the touch sensitivity register on controllers
// that have one, and reports ErrUnsupported otherwise.
func (m *Manager) SetTouchThreshold(v byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active {
		return ErrNoController
	}
	ts, ok := m.drv.(ThresholdSetter)
	if !ok {
		return ErrUnsupported
	}
	return ts.SetThreshold(v)
}

// StartPolling launches the background poll loop. Each tick decodes one
// report frame, applies the calibration transform and sends the batch on
// ch. A tick with no contacts, or a failed decode, sends an empty batch;
// the loop never exits on transport errors.
func (m *Manager) StartPolling(ch chan<- []Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active {
		return ErrNoController
	}
	if m.state != loopIdle {
		return ErrBusy
	}
	m.state = loopRunning
	m.quit = make(chan struct{})
	m.done = make(chan struct{})
	go m.loop(ch, m.quit, m.done)
	return nil
}

func (m *Manager) loop(ch chan<- []Event, quit, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-quit:
			return
		default:
		}
		m.mu.Lock()
		samples, err := m.drv.ReadTouches()
		batch := make([]Event, 0, len(samples))
		if err == nil {
			for _, s := range samples {
				batch = append(batch, transform(s, m.cal, m.orient, m.info.MaxX, m.info.MaxY))
			}
		}
		m.mu.Unlock()
		select {
		case ch <- batch:
		case <-quit:
			return
		}
		select {
		case <-time.After(m.interval):
		case <-quit:
			return
		}
	}
}

// StopPolling stops the poll loop and waits for it to finish. On return
// no further bus traffic is issued by the loop, so the handle is safe to
// close.
func (m *Manager) StopPolling() {
	m.mu.Lock()
	if m.state != loopRunning {
		m.mu.Unlock()
		return
	}
	m.state = loopStopping
	quit, done := m.quit, m.done
	m.mu.Unlock()

	close(quit)
	<-done

	m.mu.Lock()
	m.state = loopIdle
	m.quit = nil
	m.done = nil
	m.mu.Unlock()
}

// Close stops polling and releases the bus handle.
func (m *Manager) Close() error {
	m.StopPolling()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unbind()
	return nil
}
