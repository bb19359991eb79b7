// SPDX-License-Identifier: MIT
// Copyright (c) 2026 The schemaguard authors

package config

type Config struct {
	Server  ServerConfig `yaml:"server" json:"server"`
	Auth    AuthConfig   `yaml:"auth" json:"auth"`
	Schemas []SchemaRef  `yaml:"schemas" json:"schemas"`
}

type ServerConfig struct {
	Addr           string            `yaml:"addr" json:"addr"`
	BasePath       string            `yaml:"basePath" json:"basePath"`
	DefaultHeaders map[string]string `yaml:"defaultHeaders" json:"defaultHeaders"`
}

type AuthConfig struct {
	// "none" | "token" | "basic"
	Type  string           `yaml:"type"  json:"type"`
	Token *TokenAuthConfig `yaml:"token,omitempty" json:"token,omitempty"`
	Basic *BasicAuthConfig `yaml:"basic,omitempty" json:"basic,omitempty"`
}

type TokenAuthConfig struct {
	Header string   `yaml:"header" json:"header"`
	Prefix string   `yaml:"prefix" json:"prefix"`
	Tokens []string `yaml:"tokens" json:"tokens"`
}

type BasicAuthConfig struct {
	Users []BasicUser `yaml:"users" json:"users"`
}

type BasicUser struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// SchemaRef mounts a schema file under a name that clients can reference
// via "schemaRef" instead of sending the schema text inline.
type SchemaRef struct {
	Name string `yaml:"name" json:"name"`
	File string `yaml:"file" json:"file"`
}
