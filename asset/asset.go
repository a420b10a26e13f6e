// Package asset embeds the default catalog and options shipped with the binary
package asset

import (
	"embed"

	"github.com/spf13/afero"
)

//go:embed data
var data embed.FS

// Root is the catalog root inside FS
const Root = "data"

// FS returns the embedded catalog as a read-only afero filesystem
func FS() afero.Fs {
	return afero.NewReadOnlyFs(afero.FromIOFS{FS: data})
}

// DefaultOptions is written by `dice-duel options init` and documents every key
const DefaultOptions = `# dice-duel options
# Fight settings are read at the start of every round; volumes apply immediately

# Hit points of each fighter (5, 10, 15, 20)
max_hp = 5

# Damage of a normal win (1, 5, 10, 15, 20)
base_damage = 1

# Damage when the winning die shows 20 (1, 5, 10, 15, 20)
crit_damage = 5

# 0.0 to 1.0 in steps of 0.25
music_volume = 0.75
sfx_volume = 1.0
`
