package cli

import (
	"errors"
	"fmt"

	"github.com/96-neko-96/ploterAI/internal/cli/formatter"
	"github.com/96-neko-96/ploterAI/internal/domain"
	"github.com/spf13/cobra"
)

func newCharacterCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "character",
		Aliases: []string{"char"},
		Short:   "Manage the cast of the active project",
	}

	cmd.AddCommand(
		newCharacterAddCmd(app),
		newCharacterListCmd(app),
		newCharacterShowCmd(app),
		newCharacterUpdateCmd(app),
		newCharacterRemoveCmd(app),
		newCharacterDraftCmd(app),
	)

	return cmd
}

func newCharacterAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a character",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ensureProject(app); err != nil {
				return err
			}
			var c domain.Character
			applyChangedFields(cmd.Flags(), characterFields(&c))

			added, err := app.Projects.AddCharacter(c)
			if err != nil {
				return err
			}
			outln(cmd, formatter.Success(fmt.Sprintf("Added character %s %s", formatter.Bold(added.Name), formatter.TruncID(added.ID))))
			return nil
		},
	}

	registerFieldFlags(cmd.Flags(), characterFlags)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCharacterListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List characters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ensureProject(app); err != nil {
				return err
			}
			chars := app.Projects.Characters()
			if len(chars) == 0 {
				outln(cmd, "No characters yet.")
				return nil
			}
			outln(cmd, formatter.FormatCharacterList(chars))
			return nil
		},
	}
}

func newCharacterShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ensureProject(app); err != nil {
				return err
			}
			id, err := resolveCharacterID(app, args[0])
			if err != nil {
				return err
			}
			c, _ := app.Projects.CharacterByID(id)
			outln(cmd, formatter.FormatCharacter(c))
			return nil
		},
	}
}

func newCharacterUpdateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change fields of a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ensureProject(app); err != nil {
				return err
			}
			id, err := resolveCharacterID(app, args[0])
			if err != nil {
				return err
			}
			c, _ := app.Projects.CharacterByID(id)
			if applyChangedFields(cmd.Flags(), characterFields(&c)) == 0 {
				return errors.New("nothing to update: pass at least one field flag")
			}
			if err := app.Projects.UpdateCharacter(id, c); err != nil {
				return err
			}
			outln(cmd, formatter.Success("Updated character "+formatter.Bold(c.Name)))
			return nil
		},
	}

	registerFieldFlags(cmd.Flags(), characterFlags)

	return cmd
}

func newCharacterRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove a character",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ensureProject(app); err != nil {
				return err
			}
			id, err := resolveCharacterID(app, args[0])
			if err != nil {
				return err
			}
			c, _ := app.Projects.CharacterByID(id)
			if err := app.Projects.DeleteCharacter(id); err != nil {
				return err
			}
			outln(cmd, formatter.Success("Removed character "+formatter.Bold(c.Name)))
			return nil
		},
	}
}

func newCharacterDraftCmd(app *App) *cobra.Command {
	var concept, notes string
	var save bool

	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Draft a character profile from a concept with the LLM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLLM(app, app.CharacterDrafts != nil); err != nil {
				return err
			}
			if save {
				if _, err := ensureProject(app); err != nil {
					return err
				}
			}

			stop := startSpinner(app, cmd, "Drafting character...")
			c, err := app.CharacterDrafts.Draft(cmd.Context(), concept, notes)
			stop()
			if err != nil {
				return fmt.Errorf("drafting character: %w", err)
			}

			outln(cmd, formatter.FormatCharacter(*c))
			if !save {
				outln(cmd, formatter.Dim("Not saved. Re-run with --save to add it to the project."))
				return nil
			}
			added, err := app.Projects.AddCharacter(*c)
			if err != nil {
				return err
			}
			outln(cmd, formatter.Success(fmt.Sprintf("Added character %s %s", formatter.Bold(added.Name), formatter.TruncID(added.ID))))
			return nil
		},
	}

	cmd.Flags().StringVar(&concept, "concept", "", "One-line character concept")
	cmd.Flags().StringVar(&notes, "notes", "", "Additional requirements")
	cmd.Flags().BoolVar(&save, "save", false, "Add the drafted character to the active project")
	_ = cmd.MarkFlagRequired("concept")

	return cmd
}

// startSpinner shows a spinner on stderr while the terminal is interactive.
func startSpinner(app *App, cmd *cobra.Command, message string) func() {
	if !app.interactive() {
		return func() {}
	}
	return formatter.StartSpinner(cmd.ErrOrStderr(), message)
}
