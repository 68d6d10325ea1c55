// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"slices"

	"cogentcore.org/core/base/fsx"
	"cogentcore.org/core/cli"
	"github.com/mitchellh/go-homedir"
)

var (
	// DefaultFile is the config file loaded when no -config flag is given.
	DefaultFile = "scene3d.toml"

	// IncludePaths are the directories searched for config files.
	IncludePaths = []string{".", "configs"}
)

// Options returns the [cli.Options] for running the scene3d command
// with [cli.Run] on a [Config].
func Options() *cli.Options {
	opts := cli.DefaultOptions("scene3d", "Renders a 3D scene graph in a window.")
	opts.PrintSuccess = false
	opts.DefaultFiles = []string{DefaultFile}
	// cli.Run reverses the include paths in place
	opts.IncludePaths = slices.Clone(IncludePaths)
	return opts
}

// File returns the config file that was resolved when cfg was
// configured, or "" if there was none.
func (cfg *Config) File() string {
	return cfg.file
}

// OnConfig is called by [cli.Run] once it has applied the defaults,
// any TOML config file and the command line flags.
func (cfg *Config) OnConfig(cmd string) error {
	return cfg.resolve(os.Args[1:])
}

// resolve finishes the configuration from the given command line
// arguments. The precedence is defaults, then the config file, then
// the environment, then the flags, which are set again on top of the
// environment. YAML config files are loaded here because cli only
// reads TOML.
func (cfg *Config) resolve(args []string) error {
	cfg.file = findFile(args)
	if cfg.file != "" {
		if ft, _ := format(cfg.file); ft == "yaml" {
			if err := Load(cfg, cfg.file); err != nil {
				return err
			}
		}
	}
	if err := ApplyEnv(cfg); err != nil {
		return err
	}
	if _, err := cli.SetFromArgs(cfg, args, cli.NoErrNotFound); err != nil {
		return err
	}
	return cfg.Validate()
}

// findFile returns the file named by the -config or -cfg flag in args,
// else [DefaultFile], whichever is first found on [IncludePaths].
func findFile(args []string) string {
	var meta struct {
		Config string `flag:"cfg,config"`
	}
	var files []string
	if _, err := cli.SetFromArgs(&meta, args, cli.NoErrNotFound); err == nil && meta.Config != "" {
		fn, err := homedir.Expand(meta.Config)
		if err == nil {
			files = append(files, fn)
		}
	}
	files = append(files, DefaultFile)
	for _, fn := range files {
		if found := fsx.FindFilesOnPaths(IncludePaths, fn); len(found) > 0 {
			return found[0]
		}
	}
	return ""
}
