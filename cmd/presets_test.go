package cmd

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	m "github.com/phi-fell/mwt/internal/model"
)

func TestPresetsCmd_Builtins(t *testing.T) {
	stdout, _, err := executeSubcommand(t, newPresetsCmd())
	require.NoError(t, err)

	var doc struct {
		Presets []m.Preset `yaml:"presets"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &doc))

	require.Len(t, doc.Presets, 2)
	assert.Equal(t, m.Preset{Name: "maybe_mut", IdentMarker: "maybe_mut", TypeMarker: "MaybeMut", SwitchMarker: "MutOrElse", RefMarker: "MaybeMut"}, doc.Presets[0])
	assert.Equal(t, "mwt", doc.Presets[1].Name)
}

func TestPresetsCmd_FromConfig(t *testing.T) {
	withTestConfig(t)
	viper.Set(presetsConfigKey, []map[string]string{
		{"name": "rw", "ident": "rw", "type": "Rw", "switch": "RwAlt", "ref": "Rw"},
	})

	stdout, _, err := executeSubcommand(t, newPresetsCmd())
	require.NoError(t, err)

	assert.Contains(t, stdout, "name: rw")
	assert.Contains(t, stdout, "switch: RwAlt")
}

func TestPresetsCmd_InvalidConfig(t *testing.T) {
	withTestConfig(t)
	viper.Set(presetsConfigKey, []map[string]string{{"name": "mwt", "ident": "x", "type": "X", "switch": "Y", "ref": "X"}})

	_, _, err := executeSubcommand(t, newPresetsCmd())
	require.Error(t, err)
}
