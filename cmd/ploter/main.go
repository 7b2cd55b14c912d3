package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/96-neko-96/ploterAI/internal/cli"
	"github.com/96-neko-96/ploterAI/internal/config"
	"github.com/96-neko-96/ploterAI/internal/db"
	"github.com/96-neko-96/ploterAI/internal/docstore"
	"github.com/96-neko-96/ploterAI/internal/intelligence"
	"github.com/96-neko-96/ploterAI/internal/llm"
	"github.com/96-neko-96/ploterAI/internal/logging"
	"github.com/96-neko-96/ploterAI/internal/repository"
	"github.com/96-neko-96/ploterAI/internal/service"
	"github.com/96-neko-96/ploterAI/internal/template"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env in the working directory is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading .env: %w", err)
	}

	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	paths, err := env.ResolvePaths()
	if err != nil {
		return err
	}

	log, err := logging.New(logging.Config{
		Level:      env.LogLevel,
		Encoding:   env.LogEncoding,
		OutputPath: paths.LogFile,
	})
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer func() { _ = log.Sync() }()

	docs := docstore.New(log)
	settings := config.NewStore(paths.Home, docs, log)
	templates := template.NewStore(paths.Templates, docs, log)
	if created := templates.EnsureDefaults(); len(created) > 0 {
		log.Info("installed default templates", zap.Strings("names", created))
	}

	database, err := db.OpenDB(paths.DB)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer database.Close()

	projects := service.NewProjectService(docs, service.WithLogger(log))

	app := &cli.App{
		Projects:  projects,
		Templates: templates,
		Settings:  settings,
		Paths:     paths,
		PDFFont:   env.PDFFont,
		Log:       log,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Generation is wired only when a client can be built; otherwise the
	// reason is kept for the commands that need it.
	llmCfg, err := loadLLMConfig(settings)
	switch {
	case err != nil:
		app.LLMErr = err
	case !llmCfg.Enabled:
		app.LLMErr = errors.New("disabled by PLOTER_LLM_ENABLED")
	default:
		var observer llm.Observer = llm.NewZapObserver(log)
		if llmCfg.LogCalls {
			observer = llm.MultiObserver{observer, llm.NewLogObserver(os.Stderr)}
		}
		client, err := llm.NewClient(llmCfg, observer)
		if err != nil {
			app.LLMErr = err
			break
		}
		app.Generation = service.NewGenerationService(projects, intelligence.NewStoryService(client),
			service.WithHistory(repository.NewSQLiteGenerationRunRepo(database), db.NewSQLiteUnitOfWork(database, db.WithTxLogger(log)), 0),
			service.WithModelInfo(llmCfg.Provider, llmCfg.Model),
			service.WithGenerationLogger(log),
			service.WithUseCaseObserver(service.NewZapUseCaseObserver(log)),
		)
		app.CharacterDrafts = intelligence.NewCharacterDraftService(client)
		app.WorldDrafts = intelligence.NewWorldDraftService(client)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// loadLLMConfig layers the stored API settings and then the PLOTER_LLM_*
// environment over the defaults.
func loadLLMConfig(settings *config.Store) (llm.LLMConfig, error) {
	cfg := llm.DefaultConfig()
	api := settings.APIConfig()
	cfg.Provider = api.Provider
	cfg.Endpoint = api.Endpoint
	cfg.Model = api.Model
	cfg.SetStoryParams(api.Temperature, api.MaxTokens, api.TopP)
	if key, ok := settings.APIKey(); ok {
		cfg.APIKey = key
	}
	return llm.LoadConfig(cfg)
}
