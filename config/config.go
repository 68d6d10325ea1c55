// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config provides the application settings of the scene3d
// viewer. Settings start from the `default:` struct tags, are then
// read from a TOML or YAML file, then overridden by SCENE3D_*
// environment variables, optionally set from a .env file, and finally
// by command line flags when run through [cli.Run].
package config

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/reflectx"
	"cogentcore.org/core/colors"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config has the settings of the viewer.
type Config struct {

	// Window has the settings of the window.
	Window Window `toml:"window" yaml:"window"`

	// Camera has the settings of the camera.
	Camera Camera `toml:"camera" yaml:"camera"`

	// Background is the background color of the scene, as a hex color.
	Background string `toml:"background" yaml:"background" default:"#1a334d"`

	// LineWidth is the width of the demo line in world units.
	LineWidth float32 `toml:"line_width" yaml:"line_width" default:"4"`

	// PresentMode is the surface present mode: fifo, mailbox or immediate.
	PresentMode string `toml:"present_mode" yaml:"present_mode" default:"fifo"`

	// LogLevel is the minimum level of log messages: debug, info, warn or error.
	LogLevel string `toml:"log_level" yaml:"log_level" default:"info"`

	// file is the config file found by [Config.OnConfig].
	file string
}

// Window has the settings of the window.
type Window struct {
	Title  string `toml:"title" yaml:"title" default:"scene3d"`
	Width  int    `toml:"width" yaml:"width" default:"1280"`
	Height int    `toml:"height" yaml:"height" default:"720"`
}

// Camera has the settings of the camera, which is placed on the
// positive z axis looking at the origin, with y up.
type Camera struct {

	// Kind is orthographic or perspective.
	Kind string `toml:"kind" yaml:"kind" default:"orthographic"`

	// Distance is the distance of the camera from the origin.
	Distance float32 `toml:"distance" yaml:"distance" default:"10"`

	// Height is the visible height of an orthographic camera in world units.
	Height float32 `toml:"height" yaml:"height" default:"100"`

	// FOV is the vertical field of view of a perspective camera in degrees.
	FOV float32 `toml:"fov" yaml:"fov" default:"45"`

	Near float32 `toml:"near" yaml:"near" default:"0.1"`
	Far  float32 `toml:"far" yaml:"far" default:"1000"`
}

// New returns a new [Config] with the default settings
// from the `default:` struct tags.
func New() *Config {
	cfg := &Config{}
	errors.Log(reflectx.SetFromDefaultTags(cfg))
	return cfg
}

// BackgroundColor returns the parsed [Config.Background], or black
// if it is not a valid hex color.
func (cfg *Config) BackgroundColor() color.RGBA {
	c, err := colors.FromHex(cfg.Background)
	if errors.Log(err) != nil {
		return colors.Black
	}
	return c
}

// Validate returns an error if a setting is out of range.
func (cfg *Config) Validate() error {
	var errs []error
	if cfg.Window.Width < 0 || cfg.Window.Height < 0 {
		errs = append(errs, fmt.Errorf("config: negative window size %dx%d", cfg.Window.Width, cfg.Window.Height))
	}
	if _, err := colors.FromHex(cfg.Background); err != nil {
		errs = append(errs, fmt.Errorf("config: background: %w", err))
	}
	switch cfg.Camera.Kind {
	case "orthographic", "perspective":
	default:
		errs = append(errs, fmt.Errorf("config: unknown camera kind %q", cfg.Camera.Kind))
	}
	if cfg.Camera.Near <= 0 || cfg.Camera.Far <= cfg.Camera.Near {
		errs = append(errs, fmt.Errorf("config: invalid camera depth range [%g, %g]", cfg.Camera.Near, cfg.Camera.Far))
	}
	switch cfg.PresentMode {
	case "fifo", "mailbox", "immediate":
	default:
		errs = append(errs, fmt.Errorf("config: unknown present mode %q", cfg.PresentMode))
	}
	return errors.Join(errs...)
}

// format returns the file format for the extension of the file name.
func format(filename string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".toml":
		return "toml", nil
	case ".yaml", ".yml":
		return "yaml", nil
	default:
		return "", fmt.Errorf("config: unsupported file extension %q", ext)
	}
}

// Load reads the settings in the file into cfg. The file format is
// chosen by the extension: .toml, .yaml or .yml. A leading ~ in the
// file name is expanded to the home directory. Settings missing from
// the file keep their current value.
func Load(cfg *Config, filename string) error {
	fn, err := homedir.Expand(filename)
	if err != nil {
		return err
	}
	ft, err := format(fn)
	if err != nil {
		return err
	}
	b, err := os.ReadFile(fn)
	if err != nil {
		return err
	}
	switch ft {
	case "toml":
		err = toml.Unmarshal(b, cfg)
	case "yaml":
		err = yaml.Unmarshal(b, cfg)
	}
	if err != nil {
		return fmt.Errorf("config: %s: %w", fn, err)
	}
	return nil
}

// Save writes cfg to the file, in the format of its extension.
func Save(cfg *Config, filename string) error {
	fn, err := homedir.Expand(filename)
	if err != nil {
		return err
	}
	ft, err := format(fn)
	if err != nil {
		return err
	}
	var b bytes.Buffer
	switch ft {
	case "toml":
		err = toml.NewEncoder(&b).Encode(cfg)
	case "yaml":
		enc := yaml.NewEncoder(&b)
		err = enc.Encode(cfg)
		if err == nil {
			err = enc.Close()
		}
	}
	if err != nil {
		return err
	}
	return os.WriteFile(fn, b.Bytes(), 0o666)
}

// Open returns the settings from the defaults, then the file if the
// name is not empty, then the environment (see [ApplyEnv]), validated.
func Open(filename string) (*Config, error) {
	cfg := New()
	if filename != "" {
		if err := Load(cfg, filename); err != nil {
			return nil, err
		}
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
