package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/claude/repbook/internal/models"
	"github.com/claude/repbook/internal/views"
)

func newExercisesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "exercises",
		Aliases: []string{"ex"},
		Short:   "Manage exercises",
	}
	cmd.AddCommand(newExercisesListCmd(a), newExercisesAddCmd(a), newExercisesEditCmd(a), newExercisesRmCmd(a))
	return cmd
}

func newExercisesListCmd(a *app) *cobra.Command {
	var query, sort string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List exercises, filtered and sorted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := views.ParseSortCriterion(sort)
			if err != nil {
				return err
			}
			return a.run(cmd, func(e *env) error {
				list := views.ListExercises(e.repo.LoadExercises(cmd.Context()), views.ListOptions{
					Query:  query,
					Sort:   c,
					Locale: e.locale,
				})
				if !a.text() {
					return printJSON(cmd.OutOrStdout(), list)
				}
				out := cmd.OutOrStdout()
				if list.Groups != nil {
					for _, g := range list.Groups {
						fmt.Fprintf(out, "%s\n", g.MuscleGroup)
						for _, ex := range g.Exercises {
							fmt.Fprintf(out, "  %s\n", exerciseLine(ex))
						}
					}
					return nil
				}
				for _, ex := range list.Exercises {
					fmt.Fprintln(out, exerciseLine(ex))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Case-insensitive search on name or muscle group")
	cmd.Flags().StringVarP(&sort, "sort", "s", string(views.SortName), "Sort: name, muscleGroup, charge or recent")
	return cmd
}

func exerciseLine(e models.Exercise) string {
	line := fmt.Sprintf("%s\t%s (%s) %dx%d", e.ID, e.Name, e.MuscleGroup, e.Sets, e.Reps)
	if e.Charge != nil {
		line += fmt.Sprintf(" @ %gkg", *e.Charge)
	}
	return line
}

// exerciseFlags binds the editable exercise fields.
type exerciseFlags struct {
	name, muscleGroup, notes, youtube string
	sets, reps                        int
	charge                            float64
}

func (f *exerciseFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Exercise name")
	cmd.Flags().StringVarP(&f.muscleGroup, "muscle-group", "m", "", "Muscle group")
	cmd.Flags().IntVar(&f.sets, "sets", 0, "Default number of sets")
	cmd.Flags().IntVar(&f.reps, "reps", 0, "Default reps per set")
	cmd.Flags().Float64Var(&f.charge, "charge", 0, "Default weight in kg")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Free-form notes")
	cmd.Flags().StringVar(&f.youtube, "youtube", "", "YouTube demo link")
}

// apply copies the flags the user set onto e.
func (f *exerciseFlags) apply(cmd *cobra.Command, e models.Exercise) models.Exercise {
	changed := cmd.Flags().Changed
	if changed("name") {
		e.Name = f.name
	}
	if changed("muscle-group") {
		e.MuscleGroup = f.muscleGroup
	}
	if changed("sets") {
		e.Sets = f.sets
	}
	if changed("reps") {
		e.Reps = f.reps
	}
	if changed("charge") {
		c := f.charge
		e.Charge = &c
	}
	if changed("notes") {
		e.Notes = f.notes
	}
	if changed("youtube") {
		e.YoutubeURL = f.youtube
	}
	return e
}

func newExercisesAddCmd(a *app) *cobra.Command {
	var f exerciseFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an exercise",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(e *env) error {
				id := models.NextExerciseID(time.Now(), e.repo.LoadExercises(cmd.Context()))
				ex := f.apply(cmd, models.Exercise{ID: id})
				added, err := e.repo.AddExercise(cmd.Context(), ex)
				if err != nil {
					return fmt.Errorf("add exercise: %w", err)
				}
				return printJSON(cmd.OutOrStdout(), added)
			})
		},
	}
	f.bind(cmd)
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("muscle-group")
	cmd.MarkFlagRequired("sets")
	cmd.MarkFlagRequired("reps")
	return cmd
}

func newExercisesEditCmd(a *app) *cobra.Command {
	var f exerciseFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(e *env) error {
				ex, err := e.repo.GetExercise(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				updated, err := e.repo.UpdateExercise(cmd.Context(), f.apply(cmd, ex))
				if err != nil {
					return fmt.Errorf("edit exercise: %w", err)
				}
				return printJSON(cmd.OutOrStdout(), updated)
			})
		},
	}
	f.bind(cmd)
	return cmd
}

func newExercisesRmCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an exercise (sessions keep their entries)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(e *env) error {
				if err := e.repo.DeleteExercise(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("rm exercise: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q}`+"\n", args[0])
				return nil
			})
		},
	}
	return cmd
}
