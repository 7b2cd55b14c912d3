package cli

import (
	"fmt"

	"github.com/96-neko-96/ploterAI/internal/cli/formatter"
	"github.com/96-neko-96/ploterAI/internal/domain"
	"github.com/96-neko-96/ploterAI/internal/service"
	"github.com/spf13/cobra"
)

var stageHelp = map[domain.Stage]string{
	domain.StagePlot:   "Draft a plot outline from the scene overview",
	domain.StageMedium: "Expand the scene's plot into a medium-length draft",
	domain.StageLong:   "Expand the scene's medium draft into full prose",
}

func newGenerateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Run a drafting stage for a scene",
		Long: "Run one of the three drafting stages for a scene. Each stage reads\n" +
			"the scene's current content and replaces it with the new draft:\n" +
			"plot -> medium -> long.",
	}

	for _, stage := range []domain.Stage{domain.StagePlot, domain.StageMedium, domain.StageLong} {
		cmd.AddCommand(newGenerateStageCmd(app, stage))
	}

	return cmd
}

func newGenerateStageCmd(app *App, stage domain.Stage) *cobra.Command {
	var cast []string

	cmd := &cobra.Command{
		Use:   string(stage) + " SCENE",
		Short: stageHelp[stage],
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLLM(app, app.Generation != nil); err != nil {
				return err
			}
			if _, err := ensureProject(app); err != nil {
				return err
			}
			sceneID, err := resolveSceneID(app, args[0])
			if err != nil {
				return err
			}
			castIDs, err := resolveCharacterIDs(app, cast)
			if err != nil {
				return err
			}

			stop := startSpinner(app, cmd, fmt.Sprintf("Generating %s draft...", stage))
			res, err := app.Generation.Run(cmd.Context(), service.GenerationRequest{
				Stage:        stage,
				SceneID:      sceneID,
				CharacterIDs: castIDs,
			})
			stop()
			if err != nil {
				return fmt.Errorf("generating %s draft: %w", stage, err)
			}

			outln(cmd, formatter.FormatDraft(stage, domain.CoalesceStr(res.Scene.Title, "Untitled"), res.Draft))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&cast, "characters", nil, "Characters to feature (default: the scene's cast)")

	return cmd
}

func newHistoryCmd(app *App) *cobra.Command {
	var limit int
	var scene string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent generation runs for the active project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLLM(app, app.Generation != nil); err != nil {
				return err
			}
			if _, err := ensureProject(app); err != nil {
				return err
			}
			var runs []*domain.GenerationRun
			var err error
			if scene != "" {
				id, rerr := resolveSceneID(app, scene)
				if rerr != nil {
					return rerr
				}
				runs, err = app.Generation.SceneHistory(cmd.Context(), id)
				if limit > 0 && len(runs) > limit {
					runs = runs[len(runs)-limit:]
				}
			} else {
				runs, err = app.Generation.History(cmd.Context(), limit)
			}
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}
			outln(cmd, formatter.FormatHistory(runs, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to show (0 for all)")
	cmd.Flags().StringVar(&scene, "scene", "", "Only runs of this scene")

	return cmd
}
