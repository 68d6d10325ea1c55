// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx sets up the structured logging of scene3d. Messages go
// through [log/slog], printed by a [github.com/charmbracelet/log] handler.
package logx

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// UserLevel is the verbosity level that the user has selected for
// what logging messages should be shown. Messages at levels at or
// above this level will be shown. The default depends on the build
// tags: debug builds show everything and release builds show warnings
// and errors.
var UserLevel = defaultUserLevel

// ParseLevel returns the level with the given name: debug, info,
// warn or error. An empty name returns the default level for the build.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "":
		return defaultUserLevel, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return defaultUserLevel, fmt.Errorf("logx.ParseLevel: unknown level %q", s)
}

// NewHandler returns a [slog.Handler] that prints messages at or above
// the given level to w, with timestamps and the scene3d prefix.
// Colors follow the terminal profile of the environment.
func NewHandler(w io.Writer, level slog.Level) slog.Handler {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "scene3d",
		Level:           log.Level(level),
	})
	l.SetColorProfile(termenv.EnvColorProfile())
	return l
}

// Init sets [UserLevel] and makes a [NewHandler] writing to w the
// default slog handler.
func Init(w io.Writer, level slog.Level) {
	UserLevel = level
	slog.SetDefault(slog.New(NewHandler(w, level)))
}
