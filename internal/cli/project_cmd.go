package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/96-neko-96/ploterAI/internal/cli/formatter"
	"github.com/96-neko-96/ploterAI/internal/template"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Create, open and save project documents",
	}

	cmd.AddCommand(
		newProjectNewCmd(app),
		newProjectOpenCmd(app),
		newProjectInfoCmd(app),
		newProjectSaveCmd(app),
		newProjectCloseCmd(app),
	)

	return cmd
}

// defaultProjectPath derives a file name in the working directory from the
// project name.
func defaultProjectPath(name string) string {
	stem := strings.TrimSpace(template.SanitizeName(name))
	if stem == "" {
		stem = "untitled"
	}
	return stem + ".json"
}

func newProjectNewCmd(app *App) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "new NAME",
		Short: "Create a new project and make it active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("project name is required")
			}
			if path == "" {
				path = defaultProjectPath(name)
			}
			abs, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving %s: %w", path, err)
			}

			p, err := app.Projects.CreateNew(name, abs)
			if err != nil {
				return err
			}
			if err := app.Settings.SetLastProject(abs); err != nil {
				return err
			}

			outln(cmd, formatter.Success(fmt.Sprintf("Created project %s at %s", formatter.Bold(p.Name), abs)))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "File to store the project in (default: NAME.json)")

	return cmd
}

func newProjectOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open PATH",
		Short: "Open a project document and make it active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolving %s: %w", args[0], err)
			}
			p, err := app.Projects.Load(abs)
			if err != nil {
				return err
			}
			if err := app.Settings.SetLastProject(abs); err != nil {
				return err
			}
			outln(cmd, formatter.FormatProjectInfo(p, abs, app.now()))
			return nil
		},
	}
}

func newProjectInfoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the active project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ensureProject(app)
			if err != nil {
				return err
			}
			outln(cmd, formatter.FormatProjectInfo(p, app.Projects.CurrentPath(), app.now()))
			return nil
		},
	}
}

func newProjectSaveCmd(app *App) *cobra.Command {
	var as string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save the active project, optionally to a new path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ensureProject(app); err != nil {
				return err
			}
			target := ""
			if as != "" {
				abs, err := filepath.Abs(as)
				if err != nil {
					return fmt.Errorf("resolving %s: %w", as, err)
				}
				target = abs
			}
			if err := app.Projects.Save(target); err != nil {
				return err
			}
			path := app.Projects.CurrentPath()
			if target != "" {
				if err := app.Settings.SetLastProject(path); err != nil {
					return err
				}
			}
			outln(cmd, formatter.Success("Saved to "+path))
			return nil
		},
	}

	cmd.Flags().StringVar(&as, "as", "", "Save to this path and keep using it")

	return cmd
}

func newProjectCloseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "close",
		Short: "Close the active project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Projects.Close()
			if err := app.Settings.SetLastProject(""); err != nil {
				return err
			}
			outln(cmd, formatter.Dim("Project closed."))
			return nil
		},
	}
}
