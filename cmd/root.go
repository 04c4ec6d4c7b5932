package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jfmusicbot/botsetup/pkg/cli"
	"github.com/jfmusicbot/botsetup/pkg/dsl"
	"github.com/jfmusicbot/botsetup/pkg/logging"
	"github.com/jfmusicbot/botsetup/pkg/prompt"
	"github.com/jfmusicbot/botsetup/pkg/schema"
	"github.com/jfmusicbot/botsetup/pkg/store"
	"github.com/jfmusicbot/botsetup/pkg/wizard"
)

type rootOptions struct {
	configPath  string
	schemaPath  string
	envFile     string
	tui         bool
	maxAttempts int
	logLevel    string
}

// NewRootCmd builds the command tree. All file access goes through fs.
func NewRootCmd(fs afero.Fs) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "botsetup",
		Short: "Interactive config builder for the Jellyfin music bot",
		Long: `Walks you through every setting of the Jellyfin music bot and writes
the answers to config.yml. An existing config file is never overwritten.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(cmd, fs, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", schema.DefaultPath, "Config file path")
	rootCmd.PersistentFlags().StringVar(&opts.schemaPath, "schema", "", "YAML schema definition (defaults to the built-in bot schema)")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "Dotenv file whose entries replace field defaults")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&opts.tui, "tui", false, "Use the full-screen wizard")
	rootCmd.Flags().IntVar(&opts.maxAttempts, "max-attempts", 10, "Invalid answers tolerated per question (0 = unbounded)")

	rootCmd.AddCommand(newFieldsCmd(fs, opts))
	rootCmd.AddCommand(newValidateCmd(fs, opts))
	return rootCmd
}

func Execute() error {
	return NewRootCmd(afero.NewOsFs()).Execute()
}

func runSetup(cmd *cobra.Command, fs afero.Fs, opts *rootOptions) error {
	logger, err := logging.New(cmd.ErrOrStderr(), opts.logLevel)
	if err != nil {
		return err
	}
	reg, err := loadSchema(fs, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	gate := store.NewGate(fs, opts.configPath, out, logger)
	_, err = gate.Run(cmd.Context(), newBuilder(cmd, reg, opts, logger))
	return err
}

func newBuilder(cmd *cobra.Command, reg schema.Registry, opts *rootOptions, logger *log.Logger) store.Builder {
	in, out := cmd.InOrStdin(), cmd.OutOrStdout()
	if opts.tui {
		if f, ok := in.(*os.File); ok && cli.IsInteractive(f) {
			return cli.NewWizard(reg,
				cli.WithMaxAttempts(opts.maxAttempts),
				cli.WithLogger(logger),
				cli.WithIO(f, out),
			)
		}
		logger.Warn("stdin is not a terminal, using line prompts")
	}
	p := prompt.New(in, out, prompt.WithMaxAttempts(opts.maxAttempts), prompt.WithLogger(logger))
	return wizard.New(reg, p, logger)
}

func loadSchema(fs afero.Fs, opts *rootOptions) (schema.Registry, error) {
	reg := schema.Default()
	if opts.schemaPath != "" {
		loaded, err := dsl.LoadRegistry(fs, opts.schemaPath)
		if err != nil {
			return schema.Registry{}, err
		}
		reg = loaded
	}
	if opts.envFile != "" {
		withEnv, err := dsl.LoadEnvDefaults(fs, opts.envFile, reg)
		if err != nil {
			return schema.Registry{}, fmt.Errorf("defaults: %w", err)
		}
		reg = withEnv
	}
	return reg, nil
}
