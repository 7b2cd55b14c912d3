package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/96-neko-96/ploterAI/internal/cli/formatter"
	"github.com/96-neko-96/ploterAI/internal/domain"
	"github.com/spf13/cobra"
)

// resolveTemplate finds a template by exact name, by case-insensitive name
// or by its position in 'template list'.
func resolveTemplate(app *App, input string) (domain.Template, error) {
	input = strings.TrimSpace(input)
	if style, ok := app.Templates.Load(input); ok {
		return domain.Template{Name: input, Style: style}, nil
	}

	all := app.Templates.All()
	for _, t := range all {
		if strings.EqualFold(t.Name, input) {
			return t, nil
		}
	}
	if n, err := strconv.Atoi(input); err == nil && n > 0 && n <= len(all) {
		return all[n-1], nil
	}
	return domain.Template{}, fmt.Errorf("template %q: %w", input, domain.ErrNotFound)
}

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage writing-style templates",
	}

	cmd.AddCommand(
		newTemplateListCmd(app),
		newTemplateShowCmd(app),
		newTemplateSaveCmd(app),
		newTemplateRemoveCmd(app),
	)

	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			templates := app.Templates.All()
			if len(templates) == 0 {
				outln(cmd, "No templates found in "+app.Templates.Dir())
				return nil
			}
			outln(cmd, formatter.FormatTemplateList(templates))
			return nil
		},
	}
}

func newTemplateShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTemplate(app, args[0])
			if err != nil {
				return err
			}
			outln(cmd, formatter.FormatTemplateShow(t))
			return nil
		},
	}
}

func newTemplateSaveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save NAME",
		Short: "Save the active project's style as a template",
		Long: "Save the active project's writing style under NAME. Style flags\n" +
			"override individual fields; an existing template with the same\n" +
			"file name is replaced.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			style := domain.DefaultStyle()
			if _, err := ensureProject(app); err == nil {
				style = app.Projects.WritingStyle()
			} else if !anyFlagChanged(cmd, styleFlags) {
				return err
			}
			applyChangedFields(cmd.Flags(), styleFields(&style))

			if !app.Templates.Save(name, style) {
				return fmt.Errorf("saving template %q failed; see the log for details", name)
			}
			outln(cmd, formatter.Success("Saved template "+formatter.Bold(name)))
			return nil
		},
	}

	registerFieldFlags(cmd.Flags(), styleFlags)

	return cmd
}

func newTemplateRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove NAME",
		Aliases: []string{"rm"},
		Short:   "Delete a template",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTemplate(app, args[0])
			if err != nil {
				return err
			}
			if !app.Templates.Delete(t.Name) {
				return fmt.Errorf("template %q could not be removed", t.Name)
			}
			outln(cmd, formatter.Success("Removed template "+formatter.Bold(t.Name)))
			return nil
		},
	}
}

func anyFlagChanged(cmd *cobra.Command, flags []fieldFlag) bool {
	for _, f := range flags {
		if cmd.Flags().Changed(f.name) {
			return true
		}
	}
	return false
}
