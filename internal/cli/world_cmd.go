package cli

import (
	"errors"
	"fmt"

	"github.com/96-neko-96/ploterAI/internal/cli/formatter"
	"github.com/96-neko-96/ploterAI/internal/domain"
	"github.com/spf13/cobra"
)

func newWorldCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "world",
		Short: "Show or edit the world settings",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the world settings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := ensureProject(app); err != nil {
					return err
				}
				outln(cmd, formatter.FormatWorld(app.Projects.WorldSettings()))
				return nil
			},
		},
		newWorldSetCmd(app),
		newWorldDraftCmd(app),
	)

	return cmd
}

func newWorldSetCmd(app *App) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change world fields; unset flags keep their value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ensureProject(app); err != nil {
				return err
			}
			w := app.Projects.WorldSettings()
			if reset {
				w = domain.WorldSettings{}
			}
			if applyChangedFields(cmd.Flags(), worldFields(&w)) == 0 && !reset {
				return errors.New("nothing to set: pass at least one field flag")
			}
			if err := app.Projects.SetWorldSettings(w); err != nil {
				return err
			}
			outln(cmd, formatter.FormatWorld(w))
			return nil
		},
	}

	registerFieldFlags(cmd.Flags(), worldFlags)
	cmd.Flags().BoolVar(&reset, "clear", false, "Start from empty settings")

	return cmd
}

func newWorldDraftCmd(app *App) *cobra.Command {
	var genre, keywords string
	var save bool

	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Draft world settings from a genre and keywords with the LLM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLLM(app, app.WorldDrafts != nil); err != nil {
				return err
			}
			if save {
				if _, err := ensureProject(app); err != nil {
					return err
				}
			}

			stop := startSpinner(app, cmd, "Drafting world...")
			w, err := app.WorldDrafts.Draft(cmd.Context(), genre, keywords)
			stop()
			if err != nil {
				return fmt.Errorf("drafting world: %w", err)
			}

			outln(cmd, formatter.FormatWorld(*w))
			if !save {
				outln(cmd, formatter.Dim("Not saved. Re-run with --save to replace the project's world settings."))
				return nil
			}
			if err := app.Projects.SetWorldSettings(*w); err != nil {
				return err
			}
			outln(cmd, formatter.Success("World settings saved"))
			return nil
		},
	}

	cmd.Flags().StringVar(&genre, "genre", "", "Genre, e.g. \"maritime fantasy\"")
	cmd.Flags().StringVar(&keywords, "keywords", "", "Comma-separated themes or motifs")
	cmd.Flags().BoolVar(&save, "save", false, "Replace the active project's world settings")
	_ = cmd.MarkFlagRequired("genre")

	return cmd
}

func newStyleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "style",
		Short: "Show or edit the writing style",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the writing style",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := ensureProject(app); err != nil {
					return err
				}
				outln(cmd, formatter.FormatStyle("Writing style", app.Projects.WritingStyle()))
				return nil
			},
		},
		newStyleSetCmd(app),
		newStyleApplyCmd(app),
	)

	return cmd
}

func newStyleSetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change style fields; unset flags keep their value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ensureProject(app); err != nil {
				return err
			}
			st := app.Projects.WritingStyle()
			if applyChangedFields(cmd.Flags(), styleFields(&st)) == 0 {
				return errors.New("nothing to set: pass at least one field flag")
			}
			if err := app.Projects.SetWritingStyle(st); err != nil {
				return err
			}
			outln(cmd, formatter.FormatStyle("Writing style", st))
			return nil
		},
	}

	registerFieldFlags(cmd.Flags(), styleFlags)

	return cmd
}

func newStyleApplyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "apply TEMPLATE",
		Short: "Replace the writing style with a saved template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ensureProject(app); err != nil {
				return err
			}
			t, err := resolveTemplate(app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.SetWritingStyle(t.Style); err != nil {
				return err
			}
			outln(cmd, formatter.Success("Applied template "+formatter.Bold(t.Name)))
			outln(cmd, formatter.FormatStyle("Writing style", t.Style))
			return nil
		},
	}
}
