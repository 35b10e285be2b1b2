// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/qudoro/cardmint/internal/config"
	"github.com/qudoro/cardmint/internal/intake"
	"github.com/qudoro/cardmint/internal/intake/decoders"
	"github.com/qudoro/cardmint/internal/logger"
)

var version = "dev"

// app carries state shared by every subcommand once flags are parsed.
type app struct {
	configPath string
	logMode    string

	cfg config.Config
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "cardmint",
		Short:         "Turn captured study notes into study-card candidates",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./"+config.DefaultFile+" if present)")
	root.PersistentFlags().StringVar(&a.logMode, "log-mode", "", "log mode: dev, prod, or quiet (overrides config)")

	root.AddCommand(
		newParseCmd(a),
		newAcceptCmd(a),
		newValidateCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logMode != "" {
		cfg.Log.Mode = a.logMode
	}
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.cfg = cfg
	a.log = log
	return nil
}

func (a *app) pipeline() *intake.Pipeline {
	return intake.NewPipeline(decoders.Default()...).
		WithOptions(a.cfg.PipelineOptions()).
		WithDetector(a.cfg.Detector()).
		WithLogger(a.log)
}

// readInput reads the named file, or stdin when the name is empty or "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "stdin", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("read input: %w", err)
	}
	return data, args[0], nil
}

func writeYAML(w io.Writer, v interface{}) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = w.Write(out)
	return err
}
