package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/claude/repbook/internal/models"
	"github.com/claude/repbook/internal/views"
)

var errCancelled = errors.New("cancelled")

func newSessionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sessions",
		Aliases: []string{"s"},
		Short:   "Manage workout sessions and record sets",
	}
	cmd.AddCommand(
		newSessionsListCmd(a),
		newSessionsAddCmd(a),
		newSessionsShowCmd(a),
		newSessionsRenameCmd(a),
		newSessionsRmCmd(a),
		newSessionsAddExerciseCmd(a),
		newSessionsRemoveExerciseCmd(a),
		newSessionsSetCmd(a),
	)
	return cmd
}

func newSessionsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(e *env) error {
				sessions := e.repo.LoadSessions(cmd.Context())
				if !a.text() {
					return printJSON(cmd.OutOrStdout(), sessions)
				}
				for _, s := range sessions {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s (%d exercises)\n", s.ID, s.Name, len(s.Exercises))
				}
				return nil
			})
		},
	}
}

func newSessionsAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create an empty session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(e *env) error {
				s, err := e.repo.AddSession(cmd.Context(), models.NewSession(args[0]))
				if err != nil {
					return fmt.Errorf("add session: %w", err)
				}
				return printJSON(cmd.OutOrStdout(), s)
			})
		},
	}
}

func newSessionsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a session with its exercises and recorded sets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(e *env) error {
				s, err := e.repo.GetSession(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				detail := views.DescribeSession(s, e.repo.LoadExercises(cmd.Context()))
				if !a.text() {
					return printJSON(cmd.OutOrStdout(), detail)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s\n", detail.Session.Name)
				for _, r := range detail.Exercises {
					fmt.Fprintf(out, "  %s (%s)\n", r.Exercise.Name, r.Exercise.MuscleGroup)
					for i, set := range r.Entry.Sets {
						fmt.Fprintf(out, "    %d: %g reps x %gkg\n", i, set.Reps, set.Weight)
					}
				}
				return nil
			})
		},
	}
}

func newSessionsRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(e *env) error {
				s, err := e.repo.RenameSession(cmd.Context(), args[0], args[1])
				if err != nil {
					return fmt.Errorf("rename session: %w", err)
				}
				return printJSON(cmd.OutOrStdout(), s)
			})
		},
	}
}

func newSessionsRmCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(e *env) error {
				s, err := e.repo.GetSession(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !yes && !confirm(cmd, fmt.Sprintf("Delete session %q?", s.Name)) {
					return errCancelled
				}
				if err := e.repo.DeleteSession(cmd.Context(), s.ID); err != nil {
					return fmt.Errorf("rm session: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q}`+"\n", s.ID)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newSessionsAddExerciseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add-exercise <session-id> <exercise-id>",
		Short: "Add an existing exercise to a session with its default sets and reps",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(e *env) error {
				s, err := e.editor.AddExerciseToSession(cmd.Context(), args[0], args[1])
				if err != nil {
					return fmt.Errorf("add exercise to session: %w", err)
				}
				return printJSON(cmd.OutOrStdout(), s)
			})
		},
	}
}

func newSessionsRemoveExerciseCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "remove-exercise <session-id> <exercise-id>",
		Short: "Remove an exercise and its recorded sets from a session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(cmd, fmt.Sprintf("Remove exercise %s and its sets from the session?", args[1])) {
				return errCancelled
			}
			return a.run(cmd, func(e *env) error {
				s, err := e.editor.RemoveExerciseFromSession(cmd.Context(), args[0], args[1])
				if err != nil {
					return fmt.Errorf("remove exercise from session: %w", err)
				}
				return printJSON(cmd.OutOrStdout(), s)
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newSessionsSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <session-id> <exercise-id> <set-index> <reps|weight> <value>",
		Short: "Record reps or weight for one set (accepts 42.5 or 42,5)",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("set index %q: %w", args[2], err)
			}
			return a.run(cmd, func(e *env) error {
				s, err := e.editor.UpdateSet(cmd.Context(), args[0], args[1], index, args[3], args[4])
				if err != nil {
					return fmt.Errorf("update set: %w", err)
				}
				return printJSON(cmd.OutOrStdout(), s)
			})
		},
	}
}
