package bus

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
)

// Sim is an in-memory stand-in for a chip on the bus, driven by a fixed
// script of exchanges. It verifies the bytes written against the script
// and records them, so tests can assert on exact register traffic.
type Sim struct {
	mu     sync.Mutex
	script []Exchange
	pos    int
	writes [][]byte
	closed bool
}

// Exchange is one scripted bus transaction. W is the expected write (nil
// for a plain read), R the bytes to return, Err a forced failure.
type Exchange struct {
	W   []byte
	R   []byte
	Err error
}

func NewSim(script ...Exchange) *Sim {
	return &Sim{script: script}
}

// Writes returns every write issued so far, including the write half of
// write-read transactions.
func (s *Sim) Writes() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]byte(nil), s.writes...)
}

// Remaining reports the number of unconsumed script entries.
func (s *Sim) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.script) - s.pos
}

func (s *Sim) Write(w []byte) error {
	return s.tx(w, nil)
}

func (s *Sim) Read(r []byte) error {
	return s.tx(nil, r)
}

func (s *Sim) WriteRead(w, r []byte) error {
	return s.tx(w, r)
}

func (s *Sim) tx(w, r []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("sim: bus closed")
	}
	if len(w) > 0 {
		s.writes = append(s.writes, append([]byte(nil), w...))
	}
	if s.pos >= len(s.script) {
		return errors.New("sim: script exhausted")
	}
	x := s.script[s.pos]
	s.pos++
	if !bytes.Equal(w, x.W) {
		return fmt.Errorf("sim: wrote % x, script expects % x", w, x.W)
	}
	if x.Err != nil {
		return x.Err
	}
	if len(r) > 0 {
		if len(x.R) < len(r) {
			return fmt.Errorf("sim: short read: want %d bytes, script has %d", len(r), len(x.R))
		}
		copy(r, x.R)
	}
	return nil
}

func (s *Sim) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
