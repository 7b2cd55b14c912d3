package cli

import (
	"fmt"
	"strings"

	"github.com/96-neko-96/ploterAI/internal/cli/formatter"
	"github.com/96-neko-96/ploterAI/internal/service"
	"github.com/spf13/cobra"
)

func newSearchCmd(app *App) *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "search KEYWORD",
		Short: "Find characters and scenes mentioning a keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ensureProject(app)
			if err != nil {
				return err
			}
			sc := service.SearchScope(strings.ToLower(scope))
			switch sc {
			case service.ScopeAll, service.ScopeCharacters, service.ScopeScenes:
			default:
				return fmt.Errorf("invalid scope %q (want all, characters or scenes)", scope)
			}
			outln(cmd, formatter.FormatSearchResult(service.Search(p, args[0], sc)))
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", string(service.ScopeAll), "all, characters or scenes")

	return cmd
}

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show project statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ensureProject(app)
			if err != nil {
				return err
			}
			outln(cmd, formatter.FormatStats(service.ComputeStats(p)))
			return nil
		},
	}
}
