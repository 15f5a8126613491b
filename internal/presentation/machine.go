package presentation

import (
	"errors"

	"camera-viewer/internal/model"
)

// Mode is how the view is presented.
type Mode int

const (
	Inline Mode = iota
	Immersive
)

func (m Mode) String() string {
	if m == Immersive {
		return "immersive"
	}
	return "inline"
}

// Profile is the placement applied to the model for a mode.
type Profile struct {
	Position [3]float32 `yaml:"position"`
	Scale    float32    `yaml:"scale"`
}

// DefaultInline puts the model slightly below the origin, enlarged, for the desktop view.
var DefaultInline = Profile{Position: [3]float32{0, -0.5, 0}, Scale: 1.5}

// DefaultImmersive puts the model just in front of the viewer at a reduced scale.
var DefaultImmersive = Profile{Position: [3]float32{0, 0, -1}, Scale: 0.5}

// ErrAlreadyAssigned is returned when a second model is handed to the machine.
var ErrAlreadyAssigned = errors.New("presentation: model already assigned")

// ErrNilModel is returned by Assign for a nil model.
var ErrNilModel = errors.New("presentation: nil model")

// Snapshot is the machine state as seen by one frame.
type Snapshot struct {
	Mode  Mode
	Model *model.Model
}

// Status describes the snapshot as "<mode> | <model source>", with "loading"
// as the source until a model is assigned.
func (s Snapshot) Status() string {
	source := "loading"
	if s.Model != nil {
		source = s.Model.Source.String()
	}
	return s.Mode.String() + " | " + source
}

// Machine owns the presentation mode and the model slot. All mutation goes
// through OnSessionStart, OnSessionEnd and Assign. It is not safe for concurrent
// use; callers drive it from the frame goroutine.
type Machine struct {
	inline    Profile
	immersive Profile
	mode      Mode
	model     *model.Model
	// OnChange, if set, is called after every transition or assignment.
	OnChange func(Snapshot)
}

// NewMachine returns a machine in Inline mode with no model.
func NewMachine(inline, immersive Profile) *Machine {
	return &Machine{inline: inline, immersive: immersive, mode: Inline}
}

// Mode returns the current presentation mode.
func (m *Machine) Mode() Mode {
	return m.mode
}

// Model returns the assigned model, or nil before assignment.
func (m *Machine) Model() *model.Model {
	return m.model
}

// Snapshot returns mode and model together.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{Mode: m.mode, Model: m.model}
}

// Profile returns the profile for mode.
func (m *Machine) Profile(mode Mode) Profile {
	if mode == Immersive {
		return m.immersive
	}
	return m.inline
}

// OnSessionStart switches to Immersive and places the model, if any.
func (m *Machine) OnSessionStart() {
	m.transition(Immersive)
}

// OnSessionEnd switches to Inline and places the model, if any.
func (m *Machine) OnSessionEnd() {
	m.transition(Inline)
}

// Assign stores the model and applies the profile of the mode current at the
// time of the call, so a session that started before loading finished still
// wins. Only the first call has an effect.
func (m *Machine) Assign(mdl *model.Model) error {
	if mdl == nil {
		return ErrNilModel
	}
	if m.model != nil {
		return ErrAlreadyAssigned
	}
	m.model = mdl
	m.apply()
	m.notify()
	return nil
}

func (m *Machine) transition(to Mode) {
	m.mode = to
	m.apply()
	m.notify()
}

func (m *Machine) apply() {
	if m.model == nil {
		return
	}
	p := m.Profile(m.mode)
	m.model.SetTransform(p.Position, p.Scale)
}

func (m *Machine) notify() {
	if m.OnChange != nil {
		m.OnChange(m.Snapshot())
	}
}
