package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jfmusicbot/botsetup/pkg/schema"
)

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	styleKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	styleMuted  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func newFieldsCmd(fs afero.Fs, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the fields the wizard asks for",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadSchema(fs, opts)
			if err != nil {
				return err
			}
			printFields(cmd, reg)
			return nil
		},
	}
}

func printFields(cmd *cobra.Command, reg schema.Registry) {
	keyWidth := len("KEY")
	for _, key := range reg.Keys() {
		if len(key) > keyWidth {
			keyWidth = len(key)
		}
	}
	keyCol := lipgloss.NewStyle().Width(keyWidth + 2)
	typeCol := lipgloss.NewStyle().Width(9)
	reqCol := lipgloss.NewStyle().Width(10)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styleHeader.Render(keyCol.Render("KEY")+typeCol.Render("TYPE")+reqCol.Render("REQUIRED")+"DEFAULT"))
	for _, f := range reg.Fields() {
		def := f.DefaultText()
		if !f.HasDefault() {
			def = styleMuted.Render("none")
		}
		fmt.Fprintln(out,
			styleKey.Render(keyCol.Render(f.Key))+
				typeCol.Render(string(f.Type))+
				reqCol.Render(strconv.FormatBool(f.Required))+
				def)
		fmt.Fprintf(out, "  %s\n", styleMuted.Render(f.Description))
	}
}
