package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/dice-duel/asset"
	"github.com/lixenwraith/dice-duel/config"
	"github.com/lixenwraith/dice-duel/manifest"
	"github.com/lixenwraith/dice-duel/options"
)

var (
	envFile     string
	assetDir    string
	optionsPath string
	debugFlag   bool

	cfg     config.Config
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "dice-duel",
	Short: "Two fighters, two d20s, one terminal",
	Long: `dice-duel is a turn-based terminal fighting game. Each round both fighters
roll a twenty-sided die; the higher roll hits, a natural 20 is a critical hit,
and the first fighter out of health loses.

Available commands:
  fight     Play a match in the terminal
  simulate  Run matches headless and print the fight log
  list      List characters and stages in the catalog
  options   Create or inspect the options file

Configuration is read from DICE_DUEL_* environment variables and an optional
.env file; flags override both.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("assets") {
			cfg.AssetDir = assetDir
		}
		if cmd.Flags().Changed("options") {
			cfg.OptionsFile = optionsPath
		}
		if cmd.Flags().Changed("debug") {
			cfg.Debug = debugFlag
		}

		logFile = setupLogging(cfg.Debug)
		slog.Debug("config loaded", "assets", cfg.AssetDir, "options", cfg.OptionsFile, "death_rule", cfg.DeathRule)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
			logFile = nil
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file to read before the environment")
	rootCmd.PersistentFlags().StringVar(&assetDir, "assets", "", "asset directory (default: embedded catalog)")
	rootCmd.PersistentFlags().StringVar(&optionsPath, "options", "", "options file (default: dice-duel.toml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "write debug logs to logs/dice-duel.log")
}

// catalogFS returns the asset filesystem and root for the current config
func catalogFS() (afero.Fs, string) {
	if cfg.AssetDir == "" {
		return asset.FS(), asset.Root
	}
	return afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), cfg.AssetDir)), "/"
}

// loadCatalog reads and validates the configured catalog
// Manifest errors are fatal before any round runs
func loadCatalog() (*manifest.Catalog, error) {
	fsys, root := catalogFS()
	cat, err := manifest.Load(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

// loadOptions reads the options file into a new store
func loadOptions(fsys afero.Fs) (*options.Store, error) {
	snap, err := options.LoadFile(fsys, cfg.OptionsFile)
	if err != nil {
		return nil, err
	}
	return options.NewStore(snap)
}
