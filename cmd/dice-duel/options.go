package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/dice-duel/asset"
	"github.com/lixenwraith/dice-duel/options"
)

var forceInit bool

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Create or inspect the options file",
	Long: `The options file holds max hp, damage, crit damage and volumes.
fight watches it and applies changes while playing: fight settings at the
start of the next round, volumes immediately.`,
}

// optionsInitCmd writes the documented default options file
var optionsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default options file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := writeDefaultOptions(afero.NewOsFs(), cfg.OptionsFile, forceInit); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", cfg.OptionsFile)
		return nil
	},
}

// optionsShowCmd prints the effective options
var optionsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective options",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := options.LoadFile(afero.NewOsFs(), cfg.OptionsFile)
		if err != nil {
			return err
		}
		out, err := toml.Marshal(snap)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	optionsInitCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing file")
	optionsCmd.AddCommand(optionsInitCmd, optionsShowCmd)
	rootCmd.AddCommand(optionsCmd)
}

func writeDefaultOptions(fsys afero.Fs, path string, force bool) error {
	if !force {
		_, err := fsys.Stat(path)
		if err == nil {
			return fmt.Errorf("%s exists, use --force to overwrite", path)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return afero.WriteFile(fsys, path, []byte(asset.DefaultOptions), 0644)
}
