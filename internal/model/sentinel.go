package model

import "fmt"

// Mode selects which of the two variants is being rendered.
type Mode int

const (
	// ReadOnly renders the variant without mutable access.
	ReadOnly Mode = iota
	// Mutable renders the variant with mutable access.
	Mutable
)

func (m Mode) String() string {
	switch m {
	case ReadOnly:
		return "read-only"
	case Mutable:
		return "mutable"
	}

	return fmt.Sprintf("Mode(%d)", int(m))
}

// Preset is a named set of marker strings. The preset name doubles as the
// attribute name that triggers expansion (e.g. #[mwt], #[maybe_mut]).
type Preset struct {
	Name         string `mapstructure:"name" yaml:"name"`
	IdentMarker  string `mapstructure:"ident" yaml:"ident"`
	TypeMarker   string `mapstructure:"type" yaml:"type"`
	SwitchMarker string `mapstructure:"switch" yaml:"switch"`
	RefMarker    string `mapstructure:"ref" yaml:"ref"`
}

// Validate checks that every marker is set.
func (p Preset) Validate() error {
	switch {
	case p.Name == "":
		return fmt.Errorf("preset name is empty")
	case p.IdentMarker == "":
		return fmt.Errorf("preset %q: ident marker is empty", p.Name)
	case p.TypeMarker == "":
		return fmt.Errorf("preset %q: type marker is empty", p.Name)
	case p.SwitchMarker == "":
		return fmt.Errorf("preset %q: switch marker is empty", p.Name)
	case p.RefMarker == "":
		return fmt.Errorf("preset %q: ref marker is empty", p.Name)
	}

	return nil
}

// Sentinels is the immutable configuration of one expansion: the markers the
// engine recognizes plus the receiver flag parsed from the attribute.
type Sentinels struct {
	IdentMarker  string
	TypeMarker   string
	SwitchMarker string
	RefMarker    string

	// PreserveSelf keeps `&mut self` in the read-only variant (ignore_self).
	PreserveSelf bool
}

// SentinelsFor builds Sentinels from a preset.
func SentinelsFor(p Preset, preserveSelf bool) Sentinels {
	return Sentinels{
		IdentMarker:  p.IdentMarker,
		TypeMarker:   p.TypeMarker,
		SwitchMarker: p.SwitchMarker,
		RefMarker:    p.RefMarker,
		PreserveSelf: preserveSelf,
	}
}
