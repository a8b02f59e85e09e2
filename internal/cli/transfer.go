package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/claude/repbook/internal/models"
	"github.com/claude/repbook/internal/transfer"
)

func newExportCmd(a *app) *cobra.Command {
	var output string
	var plain bool
	cmd := &cobra.Command{
		Use:       "export <exercises|sessions>",
		Short:     "Export a collection as indented JSON",
		Long:      "Export exercises, or sessions with exercise details inlined (use --plain for the stored shape). Writes to stdout unless -o is given; -o with a directory writes exercises.json or sessions_export.json inside it.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{models.KeyExercises, models.KeySessions},
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			return a.run(cmd, func(e *env) error {
				var (
					data []byte
					err  error
				)
				if key == models.KeySessions && !plain {
					data, err = e.transfer.ExportEnrichedSessions(cmd.Context())
				} else {
					data, err = e.transfer.ExportCollection(cmd.Context(), key)
				}
				if err != nil {
					return fmt.Errorf("export: %w", err)
				}

				if output == "" {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
					return err
				}
				path := output
				if fi, err := os.Stat(output); err == nil && fi.IsDir() {
					path = output + string(os.PathSeparator) + transfer.FileName(key)
				}
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"path":%q}`+"\n", path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file or directory")
	cmd.Flags().BoolVar(&plain, "plain", false, "Export sessions without inlined exercise details")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var policy string
	cmd := &cobra.Command{
		Use:   "import <exercises|sessions> <file|->",
		Short: "Import a JSON collection, replacing or merging",
		Long:  "Import a JSON array exported by this tool. --policy=replace overwrites the collection; --policy=merge adds records whose id is not stored yet. Use - to read stdin.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := transfer.ParsePolicy(policy)
			if err != nil {
				return err
			}
			var doc []byte
			if args[1] == "-" {
				doc, err = io.ReadAll(cmd.InOrStdin())
			} else {
				doc, err = os.ReadFile(args[1])
			}
			if err != nil {
				return fmt.Errorf("read %s: %w", args[1], err)
			}
			return a.run(cmd, func(e *env) error {
				result, err := e.transfer.ImportCollection(cmd.Context(), args[0], doc, p)
				if err != nil {
					return fmt.Errorf("import: %w", err)
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}
	cmd.Flags().StringVarP(&policy, "policy", "p", "", "replace or merge (required)")
	cmd.MarkFlagRequired("policy")
	return cmd
}
