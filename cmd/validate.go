package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jfmusicbot/botsetup/pkg/store"
)

func newValidateCmd(fs afero.Fs, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Check an existing config file against the schema",
		Long: `Loads a config file (the --config path unless one is given) and checks
that every key is known, every required key is present and every value
passes its field's validation.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if len(args) == 1 {
				path = args[0]
			}
			reg, err := loadSchema(fs, opts)
			if err != nil {
				return err
			}
			cfg, err := store.Load(fs, path)
			if err != nil {
				return err
			}
			if err := reg.Verify(cfg); err != nil {
				return fmt.Errorf("%s is invalid:\n%w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "The file '%s' is valid.\n", path)
			return nil
		},
	}
}
