package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"flipbook/internal/capture"
	"flipbook/internal/config"
	"flipbook/internal/gifenc"
	"flipbook/internal/logging"
	"flipbook/internal/notifications"
	"flipbook/internal/project"
	"flipbook/internal/services"
	"flipbook/internal/session"
	"flipbook/internal/store"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// appEnv bundles the wired services for one command invocation.
type appEnv struct {
	cfg      *config.Config
	logger   *slog.Logger
	session  *session.Session
	notifier notifications.Service
}

// withSession wires the full stack, runs fn, and tears everything down. The
// store lock is held for the duration of fn.
func (c *commandContext) withSession(ctx context.Context, fn func(context.Context, *appEnv) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}

	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn("close store", logging.Error(cerr))
		}
	}()

	notifier := notifications.NewService(cfg)
	registry := project.NewRegistry(st, notifier, logger)
	pipeline := capture.NewPipeline(cfg, registry, logger)
	assembler := gifenc.NewAssembler(cfg, logger)
	sess := session.New(registry, pipeline, assembler, logger)

	if err := sess.Initialize(ctx); err != nil {
		return err
	}

	env := &appEnv{cfg: cfg, logger: logger, session: sess, notifier: notifier}
	return fn(ctx, env)
}

// reportWarning surfaces a warning-grade error on stderr without failing
// the command. It returns the error unchanged when it is not a warning.
func reportWarning(errOut func(format string, a ...any), err error) error {
	if err == nil {
		return nil
	}
	if services.IsWarning(err) {
		errOut("warning: %v\n", err)
		return nil
	}
	return err
}
