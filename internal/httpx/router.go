// SPDX-License-Identifier: MIT
// Copyright (c) 2026 The schemaguard authors

package httpx

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

func buildRouter(s *Server) http.Handler {
	r := chi.NewRouter()
	r.Use(recoverMW(s.log), requestIDMW(), loggingMW(s.log))

	if s.authMode != "" && s.authMode != "none" && s.authProv != nil {
		r.Use(requireAuth(s.authProv, s.authMode))
	}

	base := strings.TrimRight(s.cfg.Server.BasePath, "/")
	if base == "" {
		base = "/"
	}
	r.Route(base, func(sr chi.Router) {
		sr.Post("/validate", handleValidate(s))
		sr.Get("/schemas", handleSchemas(s))
	})

	return r
}
