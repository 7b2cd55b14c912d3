package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/96-neko-96/ploterAI/internal/config"
	"github.com/96-neko-96/ploterAI/internal/domain"
	"github.com/96-neko-96/ploterAI/internal/intelligence"
	"github.com/96-neko-96/ploterAI/internal/service"
	"github.com/96-neko-96/ploterAI/internal/template"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds the services and stores CLI commands operate on.
type App struct {
	Projects  service.ProjectService
	Templates *template.Store
	Settings  *config.Store
	Paths     config.Paths
	PDFFont   string
	Log       *zap.Logger

	// Generation and the draft services are nil when no LLM client could
	// be built; LLMErr then says why.
	Generation      service.GenerationService
	CharacterDrafts intelligence.CharacterDraftService
	WorldDrafts     intelligence.WorldDraftService
	LLMErr          error

	Now           func() time.Time
	IsInteractive func() bool
	PromptSecret  func(in io.Reader, out io.Writer, title string) (string, error)
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *zap.Logger {
	if a.Log == nil {
		return zap.NewNop()
	}
	return a.Log
}

// NewRootCmd creates the top-level "ploter" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "ploter",
		Short:         "Story drafting workbench: characters, world, scenes and AI drafts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(app),
		newCharacterCmd(app),
		newSceneCmd(app),
		newWorldCmd(app),
		newStyleCmd(app),
		newTemplateCmd(app),
		newGenerateCmd(app),
		newHistoryCmd(app),
		newExportCmd(app),
		newSearchCmd(app),
		newStatsCmd(app),
		newConfigCmd(app),
	)

	return root
}

// ensureProject makes sure a project is active, reopening the last one
// recorded in the settings when this process has none open.
func ensureProject(app *App) (*domain.Project, error) {
	if p, ok := app.Projects.Active(); ok {
		return p, nil
	}
	path, ok := app.Settings.LastProject()
	if !ok {
		return nil, fmt.Errorf("%w: create one with 'ploter project new' or open one with 'ploter project open'", domain.ErrNotActive)
	}
	p, err := app.Projects.Load(path)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			app.logger().Warn("last project is gone, forgetting it", zap.String("path", path))
			_ = app.Settings.SetLastProject("")
		}
		return nil, fmt.Errorf("reopening last project: %w", err)
	}
	return p, nil
}

// requireLLM reports why generation is unavailable.
func requireLLM(app *App, available bool) error {
	if available {
		return nil
	}
	if app.LLMErr != nil {
		return fmt.Errorf("generation is not configured: %w", app.LLMErr)
	}
	return errors.New("generation is not configured")
}

func outln(cmd *cobra.Command, a ...any) {
	fmt.Fprintln(cmd.OutOrStdout(), a...)
}

func outf(cmd *cobra.Command, format string, a ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, a...)
}
