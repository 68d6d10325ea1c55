// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
)

// Watch calls fun with the newly opened settings each time the given
// config file is written or created, until the context is done.
// The parent directory is watched so that editors that replace the
// file on save are handled. Files that fail to load are logged and skipped.
func Watch(ctx context.Context, filename string, fun func(cfg *Config)) error {
	fn, err := homedir.Expand(filename)
	if err != nil {
		return err
	}
	fn, err = filepath.Abs(fn)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(fn)); err != nil {
		w.Close()
		return err
	}
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != fn || !ev.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				cfg, err := Open(fn)
				if err != nil {
					slog.Error("config Watch: reload failed", "file", fn, "err", err)
					continue
				}
				slog.Info("config Watch: reloaded", "file", fn)
				fun(cfg)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.Error("config Watch: watcher error", "err", err)
			}
		}
	}()
	return nil
}
