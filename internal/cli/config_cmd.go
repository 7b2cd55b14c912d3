package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/96-neko-96/ploterAI/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show settings; the API key is never printed",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, hasKey := app.Settings.APIKey()
				outln(cmd, formatter.FormatConfig(app.Settings.Load(), hasKey, app.Paths))
				return nil
			},
		},
		newConfigSetKeyCmd(app),
		newConfigSetAPICmd(app),
		newConfigSetThemeCmd(app),
	)

	return cmd
}

func newConfigSetKeyCmd(app *App) *cobra.Command {
	var key string
	var clearKey bool

	cmd := &cobra.Command{
		Use:   "set-key",
		Short: "Store the API key, encrypted",
		Long: "Store the API key encrypted under the settings directory. Without\n" +
			"--key the key is read from a masked prompt.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if clearKey {
				if err := app.Settings.SetAPIKey(""); err != nil {
					return err
				}
				outln(cmd, formatter.Success("API key removed"))
				return nil
			}

			if !cmd.Flags().Changed("key") {
				if !app.interactive() {
					return errors.New("--key is required when not running in a terminal")
				}
				prompt := app.PromptSecret
				if prompt == nil {
					prompt = promptSecret
				}
				var err error
				key, err = prompt(cmd.InOrStdin(), cmd.ErrOrStderr(), "API key")
				if err != nil {
					return err
				}
			}
			key = strings.TrimSpace(key)
			if key == "" {
				return errors.New("API key is empty; use --clear to remove the stored key")
			}
			if err := app.Settings.SetAPIKey(key); err != nil {
				return err
			}
			outln(cmd, formatter.Success("API key stored (encrypted)"))
			return nil
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "API key (omit to be prompted)")
	cmd.Flags().BoolVar(&clearKey, "clear", false, "Remove the stored key")

	return cmd
}

func newConfigSetAPICmd(app *App) *cobra.Command {
	var (
		provider, endpoint, model string
		temperature, topP         float64
		maxTokens                 int
	)

	cmd := &cobra.Command{
		Use:   "set-api",
		Short: "Change provider and generation parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Settings.APIConfig()
			flags := cmd.Flags()
			changed := 0
			if flags.Changed("provider") {
				cfg.Provider = strings.ToLower(provider)
				changed++
			}
			if flags.Changed("endpoint") {
				cfg.Endpoint = endpoint
				changed++
			}
			if flags.Changed("model") {
				cfg.Model = model
				changed++
			}
			if flags.Changed("temperature") {
				cfg.Temperature = temperature
				changed++
			}
			if flags.Changed("top-p") {
				cfg.TopP = topP
				changed++
			}
			if flags.Changed("max-tokens") {
				cfg.MaxTokens = maxTokens
				changed++
			}
			if changed == 0 {
				return errors.New("nothing to set: pass at least one flag")
			}
			if err := app.Settings.SetAPIConfig(cfg); err != nil {
				return fmt.Errorf("invalid API settings: %w", err)
			}
			outln(cmd, formatter.Success(fmt.Sprintf("API settings saved (%s, %s)", cfg.Provider, cfg.Model)))
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "gemini, openai or ollama")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "API root URL (empty for the provider default)")
	cmd.Flags().StringVar(&model, "model", "", "Model name")
	cmd.Flags().Float64Var(&temperature, "temperature", 0, "Sampling temperature, 0-2")
	cmd.Flags().Float64Var(&topP, "top-p", 0, "Nucleus sampling, 0-1")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "Maximum output tokens")

	return cmd
}

func newConfigSetThemeCmd(app *App) *cobra.Command {
	var mode, color string

	cmd := &cobra.Command{
		Use:   "set-theme",
		Short: "Change display preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui := app.Settings.UITheme()
			if !cmd.Flags().Changed("mode") && !cmd.Flags().Changed("color") {
				return errors.New("nothing to set: pass --mode or --color")
			}
			if cmd.Flags().Changed("mode") {
				ui.ThemeMode = strings.ToLower(mode)
			}
			if cmd.Flags().Changed("color") {
				ui.ColorTheme = color
			}
			if err := app.Settings.SetUITheme(ui); err != nil {
				return fmt.Errorf("invalid theme: %w", err)
			}
			outln(cmd, formatter.Success(fmt.Sprintf("Theme saved (%s, %s)", ui.ThemeMode, ui.ColorTheme)))
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "dark, light or system")
	cmd.Flags().StringVar(&color, "color", "", "Accent color name")

	return cmd
}
