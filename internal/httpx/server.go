// SPDX-License-Identifier: MIT
// Copyright (c) 2026 The schemaguard authors

package httpx

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"

	"github.com/schemaguard/schemaguard"
	"github.com/schemaguard/schemaguard/internal/auth"
	"github.com/schemaguard/schemaguard/internal/config"
)

// Server exposes schema validation over HTTP. Schemas mounted via config
// are compiled once at startup; inline schemas compile per request.
type Server struct {
	cfg      *config.Config
	log      *slog.Logger
	authMode string
	authProv auth.Provider
	handler  http.Handler
	httpSrv  *http.Server
	schemas  map[string]*schemaguard.Schema
}

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.log = l
	}
}

func WithAuth(p auth.Provider, mode string) Option {
	return func(s *Server) {
		s.authProv = p
		s.authMode = mode
	}
}

func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Server, error) {
	s := &Server{cfg: cfg, log: slog.New(slog.NewTextHandler(os.Stdout, nil))}
	for _, o := range opts {
		o(s)
	}

	s.schemas = make(map[string]*schemaguard.Schema, len(cfg.Schemas))
	for _, ref := range cfg.Schemas {
		b, err := os.ReadFile(ref.File)
		if err != nil {
			return nil, fmt.Errorf("read schema %q: %w", ref.Name, err)
		}
		sch, err := schemaguard.DefaultValidator().Compile(string(b))
		if err != nil {
			return nil, fmt.Errorf("schema %q: %w", ref.Name, err)
		}
		s.schemas[ref.Name] = sch
	}

	s.handler = buildRouter(s)
	s.httpSrv = &http.Server{
		Addr:        cfg.Server.Addr,
		Handler:     s.handler,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) ListenAndServe() error {
	s.log.Info("schemaguard running", "addr", s.cfg.Server.Addr, "basePath", s.cfg.Server.BasePath)
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
