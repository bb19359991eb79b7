// SPDX-License-Identifier: MIT
// Copyright (c) 2026 The schemaguard authors

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schemaguard/schemaguard/internal/errx"
	"gopkg.in/yaml.v3"
)

func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("empty config path")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	var cfg Config
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yml", ".yaml":
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("%w: yaml decode %q: %v", ErrDecode, path, err)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("%w: json decode %q: %v", ErrDecode, path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q (use .yaml, .yml or .json)", ErrUnsupportedExt, ext)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}

	return &cfg, nil
}

func (c *Config) ApplyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}

	if c.Server.BasePath == "" {
		c.Server.BasePath = "/"
	}

	if c.Server.DefaultHeaders == nil {
		c.Server.DefaultHeaders = map[string]string{}
	}

	if c.Auth.Type == "" {
		c.Auth.Type = "none"
	}
}

func (c *Config) Validate() error {
	e := errx.New()

	switch c.Auth.Type {
	case "none":
	case "token":
		if c.Auth.Token == nil {
			e.Failf(ErrAuthConfig, "auth.type=token but token config missing")
		} else {
			e.If(strings.TrimSpace(c.Auth.Token.Header) == "", ErrAuthConfig, "auth.token.header must not be empty")
			e.If(len(c.Auth.Token.Tokens) == 0, ErrAuthConfig, "auth.token.tokens must not be empty")
		}
	case "basic":
		if c.Auth.Basic == nil {
			e.Failf(ErrAuthConfig, "auth.type=basic but basic config missing")
		} else {
			e.If(len(c.Auth.Basic.Users) == 0, ErrAuthConfig, "auth.basic.users must not be empty")
			for i, u := range c.Auth.Basic.Users {
				e.If(u.Username == "" || u.Password == "", ErrAuthConfig, "auth.basic.users[%d] requires username and password", i)
			}
		}
	default:
		e.Failf(ErrAuthConfig, "auth.type %q invalid (use none|token|basic)", c.Auth.Type)
	}

	e.If(!strings.HasPrefix(c.Server.BasePath, "/"), ErrServerConfig, "server.basePath must start with '/'")

	seen := map[string]struct{}{}
	for i, ref := range c.Schemas {
		s := e.Scope(fmt.Sprintf("schemas[%d]", i))

		s.If(strings.TrimSpace(ref.Name) == "", ErrSchemaConfig, "name must not be empty")
		s.If(ref.File == "", ErrSchemaConfig, "file must not be empty")
		if ref.File != "" && !fileExists(ref.File) {
			s.Failf(ErrSchemaConfig, "file %q not found", ref.File)
		}

		if ref.Name != "" {
			if _, ok := seen[ref.Name]; ok {
				s.Failf(ErrSchemaConfig, "duplicate schema name %q", ref.Name)
			}
			seen[ref.Name] = struct{}{}
		}
	}

	return e.Err()
}

func fileExists(p string) bool {
	if p == "" {
		return false
	}

	if _, err := os.Stat(p); err != nil {
		return false
	}

	return true
}
