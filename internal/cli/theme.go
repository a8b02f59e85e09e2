package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/claude/repbook/internal/models"
)

func newThemeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the light/dark theme preference",
	}

	printTheme := func(cmd *cobra.Command, t models.Theme) {
		fmt.Fprintf(cmd.OutOrStdout(), `{"theme":%q}`+"\n", t)
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the current theme",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd, func(e *env) error {
					printTheme(cmd, e.repo.LoadTheme(cmd.Context()))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "set <light|dark>",
			Short: "Set the theme",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				t, err := models.ParseTheme(args[0])
				if err != nil {
					return err
				}
				return a.run(cmd, func(e *env) error {
					if err := e.repo.SaveTheme(cmd.Context(), t); err != nil {
						return err
					}
					printTheme(cmd, t)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "toggle",
			Short: "Switch between light and dark",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd, func(e *env) error {
					t, err := e.repo.ToggleTheme(cmd.Context())
					if err != nil {
						return err
					}
					printTheme(cmd, t)
					return nil
				})
			},
		},
	)
	return cmd
}
