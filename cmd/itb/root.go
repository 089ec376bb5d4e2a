// ABOUTME: Root Cobra command for the itb CLI.
// ABOUTME: Loads config and handles storage lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/harperreed/itb/internal/config"
	"github.com/harperreed/itb/internal/i18n"
	"github.com/harperreed/itb/internal/service"
	"github.com/harperreed/itb/internal/storage"
	"github.com/spf13/cobra"
)

// skipStorage marks commands that run without opening the database.
const skipStorage = "skip-storage"

var (
	cfg      *config.Config
	repo     *storage.DB
	svc      *service.Service
	langFlag string
)

var rootCmd = &cobra.Command{
	Use:   "itb",
	Short: "Ankle-brachial index calculator and measurement log",
	Long: `itb computes the ankle-brachial index (ITB/ABI) from arm and ankle
systolic pressures, classifies it, and keeps an append-only log of
measurements per patient.

CLASSIFICATION:

  > 1.3        Possible arterial stiffness
  0.9 - 1.3    Normal
  0.5 - 0.9    Mild to moderate PAD
  0.4 - 0.5    Severe PAD
  < 0.4        Critical ischemia

QUICK START:

  $ itb evaluate 120 96                          # Classify without saving
  $ itb add "Maria Silva" 120 96 --record 4512   # Save a measurement
  $ itb add "Maria Silva" 118 110 --phase post   # Post-treatment reading
  $ itb list                                     # Recent measurements
  $ itb history "Maria Silva"                    # One patient, oldest first
  $ itb export xlsx --name "Maria Silva"         # Spreadsheet export

WEB FORM:

  $ itb serve --listen 127.0.0.1:8080

MCP INTEGRATION:

  Run 'itb mcp' to start the Model Context Protocol server over stdio.

  {
    "mcpServers": {
      "itb": { "command": "itb", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Measurements are stored in SQLite at ~/.local/share/itb/itb.db.
  Override with ITB_DATA_DIR or 'itb config set data_dir <path>'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		if langFlag != "" {
			if _, ok := i18n.Parse(langFlag); !ok {
				return fmt.Errorf("unsupported language: %q (use pt or en)", langFlag)
			}
		}

		if err := config.LoadDotEnv(); err != nil {
			return err
		}
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cmd.Annotations[skipStorage] != "" {
			return nil
		}

		// RunE errors skip PersistentPostRunE; drop any handle left behind.
		closeStorage()

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		svc = service.New(repo)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStorage()
	},
}

func closeStorage() error {
	if repo == nil {
		return nil
	}
	err := repo.Close()
	repo, svc = nil, nil
	return err
}

// outputLang resolves --lang, then the configured language.
func outputLang() i18n.Lang {
	if lang, ok := i18n.Parse(langFlag); ok {
		return lang
	}
	if cfg != nil {
		return cfg.GetLanguage()
	}
	return i18n.Default
}

func init() {
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "display language: pt or en (default from config)")
}
