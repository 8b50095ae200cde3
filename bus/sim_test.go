package bus

import (
	"errors"
	"reflect"
	"testing"
)

func TestSimScript(t *testing.T) {
	s := NewSim(
		Exchange{W: []byte{0x01}, R: []byte{0xAA, 0xBB}},
		Exchange{W: []byte{0x02, 0x03}},
		Exchange{R: []byte{0xCC}},
	)
	var r [2]byte
	if err := s.WriteRead([]byte{0x01}, r[:]); err != nil {
		t.Fatal(err)
	}
	if r != [2]byte{0xAA, 0xBB} {
		t.Errorf("read % x, want aa bb", r)
	}
	if err := s.Write([]byte{0x02, 0x03}); err != nil {
		t.Fatal(err)
	}
	var one [1]byte
	if err := s.Read(one[:]); err != nil {
		t.Fatal(err)
	}
	if got := s.Writes(); !reflect.DeepEqual(got, [][]byte{{0x01}, {0x02, 0x03}}) {
		t.Errorf("write log % x", got)
	}
	if n := s.Remaining(); n != 0 {
		t.Errorf("%d exchanges remaining, want 0", n)
	}
}

func TestSimMismatch(t *testing.T) {
	s := NewSim(Exchange{W: []byte{0x01}})
	if err := s.Write([]byte{0x99}); err == nil {
		t.Error("unexpected write accepted")
	}
}

func TestSimExhausted(t *testing.T) {
	s := NewSim()
	if err := s.Write([]byte{0x01}); err == nil {
		t.Error("write beyond the script accepted")
	}
}

func TestSimForcedError(t *testing.T) {
	boom := errors.New("boom")
	s := NewSim(Exchange{W: []byte{0x01}, Err: boom})
	if err := s.Write([]byte{0x01}); !errors.Is(err, boom) {
		t.Errorf("got %v, want scripted error", err)
	}
}

func TestSimShortRead(t *testing.T) {
	s := NewSim(Exchange{R: []byte{0xAA}})
	var r [4]byte
	if err := s.Read(r[:]); err == nil {
		t.Error("short scripted read succeeded")
	}
}
