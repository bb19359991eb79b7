// SPDX-License-Identifier: MIT
// Copyright (c) 2026 The schemaguard authors

package main

import (
	"os"

	"github.com/schemaguard/schemaguard/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(cli.Execute(version, commit, date))
}
