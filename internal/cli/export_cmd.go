package cli

import (
	"fmt"
	"path/filepath"

	"github.com/96-neko-96/ploterAI/internal/cli/formatter"
	"github.com/96-neko-96/ploterAI/internal/domain"
	"github.com/96-neko-96/ploterAI/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		format     string
		scenes     []string
		noTitle    bool
		characters bool
		world      bool
	)

	cmd := &cobra.Command{
		Use:   "export PATH",
		Short: "Export the active project as text, Markdown or PDF",
		Long: "Export the active project. The format is taken from --format or\n" +
			"else from the file extension (.txt, .md, .pdf).",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ensureProject(app); err != nil {
				return err
			}
			ids, err := resolveSceneIDs(app, scenes)
			if err != nil {
				return err
			}
			p, _ := app.Projects.Active()

			opts := export.Options{
				IncludeTitle:      !noTitle,
				IncludeCharacters: characters,
				IncludeWorld:      world,
			}
			doc := export.NewDocument(p, ids)
			path, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolving %s: %w", args[0], err)
			}
			if err := export.ExportFile(path, domain.ExportFormat(format), doc, opts, app.now(), app.PDFFont); err != nil {
				return err
			}
			outln(cmd, formatter.Success(fmt.Sprintf("Exported %d scene(s) to %s", len(doc.Scenes), path)))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "txt, md or pdf (default: from the extension)")
	cmd.Flags().StringSliceVar(&scenes, "scenes", nil, "Export only these scenes")
	cmd.Flags().BoolVar(&noTitle, "no-title", false, "Leave out the project title")
	cmd.Flags().BoolVar(&characters, "characters", false, "Include the character profiles")
	cmd.Flags().BoolVar(&world, "world", false, "Include the world settings")

	return cmd
}
