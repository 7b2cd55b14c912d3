package cli

import (
	"errors"
	"fmt"

	"github.com/96-neko-96/ploterAI/internal/cli/formatter"
	"github.com/96-neko-96/ploterAI/internal/domain"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSceneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scene",
		Short: "Manage the scenes of the active project",
	}

	cmd.AddCommand(
		newSceneAddCmd(app),
		newSceneListCmd(app),
		newSceneShowCmd(app),
		newSceneUpdateCmd(app),
		newSceneRemoveCmd(app),
		newSceneReorderCmd(app),
	)

	return cmd
}

func newSceneAddCmd(app *App) *cobra.Command {
	var cast []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a scene",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ensureProject(app); err != nil {
				return err
			}
			var sc domain.Scene
			applyChangedFields(cmd.Flags(), sceneFields(&sc))
			if len(cast) > 0 {
				ids, err := resolveCharacterIDs(app, cast)
				if err != nil {
					return err
				}
				sc.CharacterIDs = ids
			}

			added, err := app.Projects.AddScene(sc)
			if err != nil {
				return err
			}
			outln(cmd, formatter.Success(fmt.Sprintf("Added scene %s %s",
				formatter.Bold(domain.CoalesceStr(added.Title, "Untitled")), formatter.TruncID(added.ID))))
			return nil
		},
	}

	registerFieldFlags(cmd.Flags(), sceneFlags)
	cmd.Flags().StringSliceVar(&cast, "characters", nil, "Characters in the scene (ids, names or list positions)")

	return cmd
}

func newSceneListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scenes in narrative order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ensureProject(app); err != nil {
				return err
			}
			scenes := app.Projects.Scenes()
			if len(scenes) == 0 {
				outln(cmd, "No scenes yet.")
				return nil
			}
			outln(cmd, formatter.FormatSceneList(scenes))
			return nil
		},
	}
}

func newSceneShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a scene with its content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ensureProject(app)
			if err != nil {
				return err
			}
			id, err := resolveSceneID(app, args[0])
			if err != nil {
				return err
			}
			sc, _ := app.Projects.SceneByID(id)
			var cast []domain.Character
			if len(sc.CharacterIDs) > 0 {
				cast = p.CharactersByID(sc.CharacterIDs)
			}
			outln(cmd, formatter.FormatScene(sc, cast, app.now()))
			return nil
		},
	}
}

func newSceneUpdateCmd(app *App) *cobra.Command {
	var cast []string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change fields of a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ensureProject(app); err != nil {
				return err
			}
			id, err := resolveSceneID(app, args[0])
			if err != nil {
				return err
			}
			sc, _ := app.Projects.SceneByID(id)
			changed := applyChangedFields(cmd.Flags(), sceneFields(&sc))
			if cmd.Flags().Changed("characters") {
				ids, err := resolveCharacterIDs(app, cast)
				if err != nil {
					return err
				}
				sc.CharacterIDs = ids
				changed++
			}
			if changed == 0 {
				return errors.New("nothing to update: pass at least one field flag")
			}
			if err := app.Projects.UpdateScene(id, sc); err != nil {
				return err
			}
			outln(cmd, formatter.Success("Updated scene "+formatter.Bold(domain.CoalesceStr(sc.Title, "Untitled"))))
			return nil
		},
	}

	registerFieldFlags(cmd.Flags(), sceneFlags)
	cmd.Flags().StringSliceVar(&cast, "characters", nil, "Replace the scene's characters")

	return cmd
}

func newSceneRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove a scene",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ensureProject(app); err != nil {
				return err
			}
			id, err := resolveSceneID(app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.DeleteScene(id); err != nil {
				return err
			}
			forgetSceneHistory(cmd, app, id)
			outln(cmd, formatter.Success("Removed scene "+formatter.TruncID(id)))
			return nil
		},
	}
}

func newSceneReorderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder ID...",
		Short: "Set the narrative order of scenes",
		Long: "Set the narrative order of scenes. Scenes left out of the list are\n" +
			"removed from the project, so pass every scene you want to keep.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ensureProject(app); err != nil {
				return err
			}
			before := app.Projects.Scenes()
			ids, err := resolveSceneIDs(app, args)
			if err != nil {
				return err
			}
			if err := app.Projects.ReorderScenes(ids); err != nil {
				return err
			}
			after := app.Projects.Scenes()
			dropped := droppedScenes(before, after)
			if len(dropped) > 0 {
				outln(cmd, formatter.Warning(fmt.Sprintf("%d scene(s) not listed were removed", len(dropped))))
			}
			for _, id := range dropped {
				forgetSceneHistory(cmd, app, id)
			}
			outln(cmd, formatter.FormatSceneList(after))
			return nil
		},
	}
}

// forgetSceneHistory drops the generation runs of a removed scene. A failure
// is logged; the scene is already gone from the document.
func forgetSceneHistory(cmd *cobra.Command, app *App, id string) {
	if app.Generation == nil {
		return
	}
	if _, err := app.Generation.ForgetScene(cmd.Context(), id); err != nil {
		app.logger().Warn("dropping scene history failed", zap.String("scene_id", id), zap.Error(err))
	}
}

// droppedScenes returns the IDs present in before but missing from after.
func droppedScenes(before, after []domain.Scene) []string {
	kept := make(map[string]bool, len(after))
	for _, sc := range after {
		kept[sc.ID] = true
	}
	var dropped []string
	for _, sc := range before {
		if !kept[sc.ID] {
			dropped = append(dropped, sc.ID)
		}
	}
	return dropped
}
