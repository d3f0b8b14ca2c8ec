package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ncobase/taskdesk/auth"
	"github.com/ncobase/taskdesk/cache"
	"github.com/ncobase/taskdesk/config"
	"github.com/ncobase/taskdesk/ctxutil"
	"github.com/ncobase/taskdesk/logging/logger"
	"github.com/ncobase/taskdesk/net/client"
	"github.com/ncobase/taskdesk/todo"
	"github.com/ncobase/taskdesk/todo/data/repository"
	"github.com/ncobase/taskdesk/todo/structs"
	"github.com/ncobase/taskdesk/tracing"
	"github.com/ncobase/taskdesk/version"
)

const assigneeCachePrefix = "taskdesk:assignees"

// app holds what every command needs once configuration is loaded.
type app struct {
	configFile string
	out        io.Writer
	errOut     io.Writer

	cfg   *config.Config
	store *auth.Store
	api   *client.Client
	auth  *auth.Authenticator
	repo  repository.TodoRepository

	cleanups []func()
}

func newApp() *app {
	return &app{out: os.Stdout, errOut: os.Stderr}
}

// setup loads configuration and builds the client stack.
func (a *app) setup(ctx context.Context) error {
	cfg, err := config.LoadConfig(a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	cleanupLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.cleanups = append(a.cleanups, cleanupLogger)
	info := version.GetVersionInfo()
	logger.SetVersion(info.Version)

	shutdown, err := tracing.Init(ctx, cfg.Tracing, tracing.Service{
		Name:        cfg.AppName,
		Version:     info.Version,
		Revision:    info.Revision,
		Environment: cfg.RunMode,
	})
	if err != nil {
		logger.Warnf(ctx, "tracing disabled: %v", err)
	}
	a.cleanups = append(a.cleanups, func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warnf(context.Background(), "tracing shutdown: %v", err)
		}
	})

	a.store = auth.NewStore(cfg.Session.CredentialsFile)
	if err := a.store.Load(); err != nil {
		logger.Warnf(ctx, "ignoring stored credentials: %v", err)
	}

	a.api, err = client.New(client.Options{
		BaseURL:        cfg.API.BaseURL,
		Timeout:        cfg.API.Timeout,
		TokenSource:    a.store,
		Breaker:        cfg.API.Breaker,
		OnUnauthorized: a.store.OnUnauthorized,
	})
	if err != nil {
		return err
	}
	a.auth = auth.NewAuthenticator(a.api, cfg.API.Endpoints.Login, a.store)

	rc := cache.NewClient(cfg.Cache.Redis)
	if rc != nil {
		a.cleanups = append(a.cleanups, func() { _ = rc.Close() })
	}
	assignees := cache.NewCache[[]*structs.User](rc, assigneeCachePrefix, cfg.Cache.AssigneeTTL)

	a.repo, err = repository.NewTodoRepository(a.api, cfg.API.Endpoints, assignees)
	return err
}

// desk builds a task desk reporting mutations on the app's output.
func (a *app) desk(manualApply bool) (*todo.Desk, error) {
	return todo.New(a.repo, todo.Options{
		Dialect:     a.cfg.API.Dialect,
		Limit:       a.cfg.Paging.Limit,
		ManualApply: manualApply,
		Notifier:    newNotifier(a.out, a.errOut),
		Logger:      logger.StdLogger(),
	})
}

// withSession attaches the signed in user to ctx for log lines.
func (a *app) withSession(ctx context.Context) context.Context {
	c := a.store.Current()
	if c == nil || c.User == nil {
		return ctx
	}
	ctx = ctxutil.SetUserID(ctx, c.User.ID.String())
	return ctxutil.SetUsername(ctx, c.User.Username)
}

// requireLogin fails fast when there is no usable session.
func (a *app) requireLogin() error {
	if !a.store.LoggedIn() {
		return fmt.Errorf("%w, run `taskdesk login` first", auth.ErrNotLoggedIn)
	}
	return nil
}

func (a *app) close() {
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		a.cleanups[i]()
	}
	a.cleanups = nil
}
