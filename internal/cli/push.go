package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/claude/repbook/internal/models"
	"github.com/claude/repbook/internal/transfer"
	"github.com/claude/repbook/internal/upload"
)

func newPushCmd(a *app) *cobra.Command {
	var (
		remote   string
		apiKey   string
		policy   string
		stateDir string
		force    bool
	)
	cmd := &cobra.Command{
		Use:       "push [exercises|sessions]...",
		Short:     "Send local collections to a repbook server",
		Long:      "Export collections from the local store and import them on a remote repbook server. Collections unchanged since the last push to the same server are skipped unless --force is given. With no arguments both collections are pushed.",
		ValidArgs: []string{models.KeyExercises, models.KeySessions},
		Args:      cobra.OnlyValidArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := transfer.ParsePolicy(policy)
			if err != nil {
				return err
			}
			keys := args
			if len(keys) == 0 {
				keys = []string{models.KeyExercises, models.KeySessions}
			}
			if apiKey == "" {
				apiKey = os.Getenv("REPBOOK_AUTH_API_KEY")
			}

			return a.run(cmd, func(e *env) error {
				state, err := upload.OpenStateDB(stateDir)
				if err != nil {
					return err
				}
				defer state.Close()

				up := upload.New(upload.NewClient(remote, apiKey), state, e.transfer, force, e.log)
				stats, err := up.Run(cmd.Context(), keys, p)
				if err != nil {
					return fmt.Errorf("push: %w", err)
				}
				if a.text() {
					for _, r := range stats.Pushed {
						fmt.Fprintf(cmd.OutOrStdout(), "%s: %d imported, %d skipped\n", r.Key, r.Imported, r.Skipped)
					}
					for _, k := range stats.Skipped {
						fmt.Fprintf(cmd.OutOrStdout(), "%s: unchanged\n", k)
					}
					for _, k := range stats.Empty {
						fmt.Fprintf(cmd.OutOrStdout(), "%s: nothing to push\n", k)
					}
					return nil
				}
				return printJSON(cmd.OutOrStdout(), stats)
			})
		},
	}
	home, _ := os.UserHomeDir()
	cmd.Flags().StringVar(&remote, "remote", "", "Base URL of the repbook server (required)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "X-API-Key for the server (default: $REPBOOK_AUTH_API_KEY)")
	cmd.Flags().StringVar(&policy, "policy", string(transfer.PolicyMerge), "Import policy on the server: replace or merge")
	cmd.Flags().StringVar(&stateDir, "state-dir", filepath.Join(home, ".repbook"), "Directory holding push_state.db")
	cmd.Flags().BoolVar(&force, "force", false, "Push even if unchanged since the last push")
	cmd.MarkFlagRequired("remote")
	return cmd
}
