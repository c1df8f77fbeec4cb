package main

import (
	"context"

	"internmatch-client/internal/api"
	"internmatch-client/internal/common/config"
	"internmatch-client/internal/common/errors"
	httpclient "internmatch-client/internal/common/http"
	"internmatch-client/internal/common/logger"
	"internmatch-client/internal/common/observability"
	"internmatch-client/internal/guard"
	"internmatch-client/internal/keystore"
	"internmatch-client/internal/profile"
	"internmatch-client/internal/recommend"
	"internmatch-client/internal/session"
)

// app holds the wired components for one CLI invocation.
type app struct {
	cfg     *config.Config
	log     logger.Logger
	api     *api.Client
	keys    keystore.Keystore
	session *session.Store
	guard   *guard.Guard
	recs    *recommend.Workflow
	editor  *profile.Editor

	closeKeys func() error
}

func newApp(ctx context.Context, cfg *config.Config, log logger.Logger, obs *observability.Observability) (*app, error) {
	keys, closeKeys, err := keystore.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	opts := []httpclient.Option{httpclient.WithLogger(log)}
	if obs != nil {
		opts = append(opts, httpclient.WithRecorder(obs))
	}
	transport := httpclient.NewClient(cfg.API.BaseURL, cfg.RequestTimeout(), opts...)
	client := api.NewClient(transport)

	store := session.NewStore(session.Dependencies{API: client, Keystore: keys, Logger: log})

	return &app{
		cfg:     cfg,
		log:     log,
		api:     client,
		keys:    keys,
		session: store,
		guard:   guard.New(guard.Dependencies{Session: store, Keystore: keys, Logger: log}, cfg.Roles),
		recs:    recommend.New(recommend.Dependencies{API: client, Session: store, Logger: log}),
		editor:  profile.NewEditor(profile.Dependencies{API: client, Session: store, Logger: log}),

		closeKeys: closeKeys,
	}, nil
}

// requireStudent hydrates the session and runs the student gate.
func (a *app) requireStudent(ctx context.Context) error {
	if _, err := a.session.Hydrate(ctx); err != nil {
		return err
	}
	return a.require(ctx, guard.RoleStudent)
}

func (a *app) require(ctx context.Context, role guard.Role) error {
	res, err := a.guard.Check(ctx, role)
	if err != nil {
		return err
	}
	if res.Decision != guard.Admit {
		return errors.NewViewDeniedError(string(role), res.Redirect)
	}
	return nil
}

func (a *app) Close() {
	if a.closeKeys != nil {
		if err := a.closeKeys(); err != nil {
			a.log.Warn("failed to close keystore", map[string]interface{}{"error": err.Error()})
		}
	}
}
