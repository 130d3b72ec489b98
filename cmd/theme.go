package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or change the saved color theme",
}

var themeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the saved theme",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		name, err := s.SettingsRepo().Theme(cmd.Context())
		if err != nil {
			return fmt.Errorf("load theme: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), name)
		return nil
	},
}

var themeSetCmd = &cobra.Command{
	Use:       "set <dark|light>",
	Short:     "Save the theme used at next start",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(theme.Dark), string(theme.Light)},
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := theme.ParseMode(args[0])
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.SettingsRepo().SetTheme(cmd.Context(), string(mode)); err != nil {
			return fmt.Errorf("save theme: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s.\n", mode)
		return nil
	},
}

func init() {
	themeCmd.AddCommand(themeGetCmd)
	themeCmd.AddCommand(themeSetCmd)
}
