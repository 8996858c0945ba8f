// Package wire provides dependency injection for the hexmaker application.
// A Container builds adapters and services for one project on first use.
package wire

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	cliadapter "github.com/example/hexmaker/internal/adapters/cli"
	"github.com/example/hexmaker/internal/adapters/filesystem"
	"github.com/example/hexmaker/internal/adapters/sqlite"
	"github.com/example/hexmaker/internal/app"
	"github.com/example/hexmaker/internal/config"
	"github.com/example/hexmaker/internal/core/binding"
	"github.com/example/hexmaker/internal/db"
	"github.com/example/hexmaker/internal/ports/secondary"
	"github.com/example/hexmaker/internal/templates/scaffold"
)

// Settings are the process-level inputs to the container.
type Settings struct {
	ProjectRoot string
	Verbose     bool
	Stderr      io.Writer // diagnostics; defaults to os.Stderr
}

// Container holds the lazily created dependencies for one project.
type Container struct {
	settings Settings
	logger   *slog.Logger

	configOnce sync.Once
	cfg        *config.Config
	configErr  error

	storeOnce sync.Once
	store     *scaffold.Store

	dbOnce   sync.Once
	database *sql.DB
	dbErr    error
}

// New creates a container for the project at settings.ProjectRoot.
func New(settings Settings) *Container {
	if settings.Stderr == nil {
		settings.Stderr = os.Stderr
	}
	return &Container{
		settings: settings,
		logger:   NewLogger(settings.Stderr, settings.Verbose),
	}
}

// NewLogger returns the diagnostic logger: Debug when verbose, Warn otherwise.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Logger returns the container's diagnostic logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}

// ProjectRoot returns the project the container serves.
func (c *Container) ProjectRoot() string {
	return c.settings.ProjectRoot
}

// Config loads the project configuration once.
func (c *Container) Config() (*config.Config, error) {
	c.configOnce.Do(func() {
		c.cfg, c.configErr = config.Load(c.settings.ProjectRoot)
		if c.configErr == nil {
			c.logger.Debug("configuration loaded", "root", c.settings.ProjectRoot, "namespace", c.cfg.RootNamespace)
		}
	})
	return c.cfg, c.configErr
}

func (c *Container) templateStore() (*scaffold.Store, error) {
	cfg, err := c.Config()
	if err != nil {
		return nil, err
	}
	c.storeOnce.Do(func() {
		c.store = scaffold.NewStore(cfg.TemplateOverrideDir(c.settings.ProjectRoot))
	})
	return c.store, nil
}

func (c *Container) historyRepository() (*sqlite.HistoryRepository, error) {
	cfg, err := c.Config()
	if err != nil {
		return nil, err
	}
	c.dbOnce.Do(func() {
		path := cfg.HistoryPath(c.settings.ProjectRoot)
		c.database, c.dbErr = db.Open(path)
		if c.dbErr != nil {
			c.dbErr = fmt.Errorf("failed to open history: %w", c.dbErr)
			return
		}
		c.logger.Debug("history opened", "path", path)
	})
	if c.dbErr != nil {
		return nil, c.dbErr
	}
	return sqlite.NewHistoryRepository(c.database), nil
}

// MakerService builds the generation service. The history database is
// opened on the first recorded run, so input errors and dry runs leave the
// project untouched.
func (c *Container) MakerService() (*app.MakerServiceImpl, error) {
	cfg, err := c.Config()
	if err != nil {
		return nil, err
	}
	store, err := c.templateStore()
	if err != nil {
		return nil, err
	}

	var history secondary.HistoryRepository
	if cfg.History {
		history = &lazyHistory{open: c.historyRepository}
	}

	root := c.settings.ProjectRoot
	return app.NewMakerService(
		app.MakerSettings{ProjectRoot: root, RootNamespace: cfg.RootNamespace, SourceDir: cfg.SourceDir},
		binding.NewBinder(cfg.BinderSettings()),
		store,
		filesystem.NewFileEmitter(root, store, scaffold.Parse, c.logger),
		filesystem.NewConfigPatcher(root, cfg.ConfigDir, c.logger),
		history,
		c.logger,
	), nil
}

// HistoryService builds the history browsing service.
func (c *Container) HistoryService() (*app.HistoryServiceImpl, error) {
	repo, err := c.historyRepository()
	if err != nil {
		return nil, err
	}
	return app.NewHistoryService(repo), nil
}

// TemplateService builds the template inspection service.
func (c *Container) TemplateService() (*app.TemplateServiceImpl, error) {
	store, err := c.templateStore()
	if err != nil {
		return nil, err
	}
	return app.NewTemplateService(store, store), nil
}

// MakeAdapter returns a new MakeAdapter writing to out.
// Each call creates a new adapter (adapters are stateless translators).
func (c *Container) MakeAdapter(out io.Writer) (*cliadapter.MakeAdapter, error) {
	service, err := c.MakerService()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewMakeAdapter(service, out), nil
}

// HistoryAdapter returns a new HistoryAdapter writing to out.
func (c *Container) HistoryAdapter(out io.Writer) (*cliadapter.HistoryAdapter, error) {
	service, err := c.HistoryService()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewHistoryAdapter(service, out), nil
}

// TemplatesAdapter returns a new TemplatesAdapter writing to out.
func (c *Container) TemplatesAdapter(out io.Writer) (*cliadapter.TemplatesAdapter, error) {
	service, err := c.TemplateService()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewTemplatesAdapter(service, out), nil
}

// Close releases the history database if it was opened.
func (c *Container) Close() error {
	if c.database == nil {
		return nil
	}
	return c.database.Close()
}
