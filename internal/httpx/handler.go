// SPDX-License-Identifier: MIT
// Copyright (c) 2026 The schemaguard authors

package httpx

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/schemaguard/schemaguard"
)

type validateRequest struct {
	// Exactly one of Schema (inline schema document) or SchemaRef
	// (name of a mounted schema) must be set.
	Schema    json.RawMessage `json:"schema,omitempty"`
	SchemaRef string          `json:"schemaRef,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

type validateResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func handleValidate(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req validateRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeJSON(w, s, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
			return
		}

		hasInline := len(req.Schema) > 0
		if hasInline == (req.SchemaRef != "") {
			writeJSON(w, s, http.StatusBadRequest, errorResponse{Error: "set exactly one of schema or schemaRef"})
			return
		}

		var (
			sch *schemaguard.Schema
			err error
		)
		if hasInline {
			sch, err = schemaguard.DefaultValidator().Compile(string(req.Schema))
			if err != nil {
				writeJSON(w, s, http.StatusBadRequest, errorResponse{Error: err.Error()})
				return
			}
		} else {
			var ok bool
			sch, ok = s.schemas[req.SchemaRef]
			if !ok {
				writeJSON(w, s, http.StatusNotFound, errorResponse{Error: "unknown schemaRef " + quote(req.SchemaRef)})
				return
			}
		}

		outcome := sch.Evaluate(schemaguard.DecodeInstance(string(req.Payload)))
		if outcome.Valid() {
			writeJSON(w, s, http.StatusOK, validateResponse{Valid: true})
			return
		}

		leaves := schemaguard.Flatten(outcome.Failures)
		msgs := make([]string, 0, len(leaves))
		for _, f := range leaves {
			msgs = append(msgs, schemaguard.Resolve(f, sch.Overrides()))
		}

		if p, ok := principalFrom(r.Context()); ok {
			s.log.Debug("validation failed", "principal", p.Name, "errors", len(msgs))
		}

		writeJSON(w, s, http.StatusUnprocessableEntity, validateResponse{Valid: false, Errors: msgs})
	}
}

func handleSchemas(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names := make([]string, 0, len(s.schemas))
		for name := range s.schemas {
			names = append(names, name)
		}
		sort.Strings(names)

		writeJSON(w, s, http.StatusOK, map[string][]string{"schemas": names})
	}
}

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, s *Server, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	for k, v := range s.cfg.Server.DefaultHeaders {
		if w.Header().Get(k) == "" {
			w.Header().Set(k, v)
		}
	}
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("write response", "err", err)
	}
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
