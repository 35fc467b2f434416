package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	m "github.com/phi-fell/mwt/internal/model"
)

var (
	// ErrInvalidArgument is returned for any attribute argument other than ignore_self.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownPreset is returned when a preset name is not registered.
	ErrUnknownPreset = errors.New("unknown preset")
)

// argIgnoreSelf keeps the receiver mutability in the read-only variant.
const argIgnoreSelf = "ignore_self"

// DefaultPresets are always available. Config-defined presets are added on top.
var DefaultPresets = []m.Preset{
	{
		Name:         "mwt",
		IdentMarker:  "mwt",
		TypeMarker:   "Mwt",
		SwitchMarker: "MwtAlt",
		RefMarker:    "Mwt",
	},
	{
		Name:         "maybe_mut",
		IdentMarker:  "maybe_mut",
		TypeMarker:   "MaybeMut",
		SwitchMarker: "MutOrElse",
		RefMarker:    "MaybeMut",
	},
}

// Presets is the table of marker sets keyed by attribute name.
type Presets struct {
	byName map[string]m.Preset
}

// NewPresets registers the default presets followed by custom ones. A custom
// preset must be valid and must not reuse a registered name.
func NewPresets(custom ...m.Preset) (*Presets, error) {
	p := &Presets{byName: make(map[string]m.Preset, len(DefaultPresets)+len(custom))}

	for _, preset := range append(append([]m.Preset{}, DefaultPresets...), custom...) {
		if err := preset.Validate(); err != nil {
			return nil, err
		}

		if _, exists := p.byName[preset.Name]; exists {
			return nil, fmt.Errorf("preset %q already defined", preset.Name)
		}

		p.byName[preset.Name] = preset
	}

	return p, nil
}

// Lookup returns the preset registered under name.
func (p *Presets) Lookup(name string) (m.Preset, error) {
	preset, ok := p.byName[name]
	if !ok {
		return m.Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}

	return preset, nil
}

// All returns every preset sorted by name.
func (p *Presets) All() []m.Preset {
	all := make([]m.Preset, 0, len(p.byName))
	for _, preset := range p.byName {
		all = append(all, preset)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	return all
}

// ParseArgs builds the Sentinels for one invocation. args is the raw text
// between the attribute's parentheses: a comma separated list of bare
// identifiers with an optional trailing comma. ignore_self is the only
// accepted identifier.
func ParseArgs(preset m.Preset, args string) (m.Sentinels, error) {
	preserveSelf := false

	tokens := strings.Split(args, ",")
	for i, tok := range tokens {
		tok = strings.TrimSpace(tok)

		if tok == "" {
			if i == len(tokens)-1 {
				continue
			}

			return m.Sentinels{}, fmt.Errorf("%w: empty argument", ErrInvalidArgument)
		}

		if tok != argIgnoreSelf {
			return m.Sentinels{}, fmt.Errorf("%w: %q", ErrInvalidArgument, tok)
		}

		preserveSelf = true
	}

	return m.SentinelsFor(preset, preserveSelf), nil
}
