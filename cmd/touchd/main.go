// command touchd detects the attached touchscreen controller and streams
// decoded touch events, either to the console or into the kernel as a
// virtual multi-touch input device.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"touchstone.dev/profile"
	"touchstone.dev/touch"

	_ "touchstone.dev/driver/ektf2127"
	_ "touchstone.dev/driver/ft5x06"
	_ "touchstone.dev/driver/gt911"
	_ "touchstone.dev/driver/ili251x"
	_ "touchstone.dev/driver/mxt"
	_ "touchstone.dev/driver/st1232"
)

// eventSink consumes decoded touch batches.
type eventSink interface {
	Deliver([]touch.Event) error
	Close() error
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "touchd: %v\n", err)
		os.Exit(2)
	}
}

func run() error {
	list := flag.Bool("list", false, "list supported controllers and exit")
	bind := flag.String("bind", "", "bind the named controller instead of probing")
	profilePath := flag.String("profile", "", "calibration profile to apply")
	interval := flag.Duration("interval", 10*time.Millisecond, "poll interval")
	threshold := flag.Int("threshold", -1, "touch sensitivity threshold (controllers with a threshold register only)")
	useUinput := flag.Bool("uinput", false, "inject events as a virtual input device instead of printing them")
	flag.Parse()
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))

	if *list {
		for _, name := range touch.SupportedControllers() {
			fmt.Println(name)
		}
		return nil
	}

	m := touch.NewManager(touch.Config{Interval: *interval})
	defer m.Close()
	if *bind != "" {
		if err := m.Bind(*bind); err != nil {
			return err
		}
		log.Printf("touchd: bound %s", *bind)
	} else if err := m.Detect(); err != nil {
		return err
	}

	if *profilePath != "" {
		p, err := profile.Load(*profilePath)
		switch {
		case errors.Is(err, os.ErrNotExist):
			log.Printf("touchd: no profile at %s, using defaults", *profilePath)
		case err != nil:
			return err
		default:
			if err := profile.Apply(m, p); err != nil {
				return err
			}
		}
	}

	if *threshold >= 0 {
		if err := m.SetTouchThreshold(byte(*threshold)); err != nil {
			log.Printf("touchd: threshold: %v", err)
		}
	}

	maxX, maxY, maxTouches, err := m.TouchInfo()
	if err != nil {
		return err
	}
	var sink eventSink = consoleSink{}
	if *useUinput {
		sink, err = newUinputSink(maxX, maxY, maxTouches)
		if err != nil {
			return err
		}
	}
	defer sink.Close()

	ch := make(chan []touch.Event, 1)
	if err := m.StartPolling(ch); err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	for {
		select {
		case batch := <-ch:
			if err := sink.Deliver(batch); err != nil {
				log.Printf("touchd: sink: %v", err)
			}
		case <-sig:
			m.StopPolling()
			return nil
		}
	}
}

// consoleSink prints non-empty batches, one contact per line.
type consoleSink struct{}

func (consoleSink) Deliver(batch []touch.Event) error {
	for _, e := range batch {
		state := "down"
		if !e.Active {
			state = "up"
		}
		log.Printf("touch %d: %s (%d,%d) pressure=%d size=%dx%d",
			e.ID, state, e.X, e.Y, e.Pressure, e.Major, e.Minor)
	}
	return nil
}

func (consoleSink) Close() error { return nil }
