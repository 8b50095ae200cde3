// Package profile persists per-panel calibration so a tuned window and
// orientation survive restarts.
package profile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"

	"touchstone.dev/touch"
)

// Profile is the saved calibration state for one controller.
type Profile struct {
	// Controller is the catalog name the profile was tuned for. Apply
	// refuses to install a profile on a different controller.
	Controller  string            `cbor:"1,keyasint"`
	Calibration touch.Calibration `cbor:"2,keyasint"`
	Orientation touch.Orientation `cbor:"3,keyasint"`
}

// Load reads a profile from path.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("profile: %w", err)
	}
	var p Profile
	if err := cbor.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("profile: %s: %w", path, err)
	}
	return p, nil
}

// Save writes a profile to path, creating parent directories as needed.
// The file is written through a rename so a crash cannot leave a
// truncated profile behind.
func Save(path string, p Profile) error {
	data, err := cbor.Marshal(p)
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".profile-*")
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	return nil
}

// Apply installs the profile's window and orientation on the manager's
// active controller.
func Apply(m *touch.Manager, p Profile) error {
	active := m.ActiveController()
	if active == "" {
		return touch.ErrNoController
	}
	if p.Controller != "" && p.Controller != active {
		return fmt.Errorf("profile: saved for %q, active controller is %q", p.Controller, active)
	}
	m.SetCalibration(p.Calibration.MinX, p.Calibration.MaxX, p.Calibration.MinY, p.Calibration.MaxY)
	m.SetOrientation(p.Orientation.InvertX, p.Orientation.InvertY, p.Orientation.SwapXY)
	return nil
}

// Snapshot captures the manager's current calibration state for saving.
func Snapshot(m *touch.Manager) (Profile, error) {
	active := m.ActiveController()
	if active == "" {
		return Profile{}, touch.ErrNoController
	}
	cal, o := m.Calibration()
	return Profile{Controller: active, Calibration: cal, Orientation: o}, nil
}
