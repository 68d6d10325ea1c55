// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"cogentcore.org/core/base/errors"
	"github.com/jinzhu/copier"
	"github.com/joho/godotenv"
)

// EnvPrefix is the prefix of the environment variables read by [ApplyEnv].
const EnvPrefix = "SCENE3D_"

// EnvFile is the name of the optional dotenv file read by [ApplyEnv].
var EnvFile = ".env"

// ApplyEnv loads [EnvFile] into the environment if it exists, without
// overriding variables that are already set, and then overrides the
// settings of cfg from the SCENE3D_* variables that are set and not empty.
func ApplyEnv(cfg *Config) error {
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: %s: %w", EnvFile, err)
	}
	ov := Config{}
	ov.Window.Title = os.Getenv(EnvPrefix + "TITLE")
	ov.Background = os.Getenv(EnvPrefix + "BACKGROUND")
	ov.Camera.Kind = os.Getenv(EnvPrefix + "CAMERA")
	ov.PresentMode = os.Getenv(EnvPrefix + "PRESENT_MODE")
	ov.LogLevel = os.Getenv(EnvPrefix + "LOG_LEVEL")
	var err error
	if ov.Window.Width, err = envInt("WIDTH"); err != nil {
		return err
	}
	if ov.Window.Height, err = envInt("HEIGHT"); err != nil {
		return err
	}
	return copier.CopyWithOption(cfg, &ov, copier.Option{IgnoreEmpty: true, DeepCopy: true})
}

func envInt(name string) (int, error) {
	s := os.Getenv(EnvPrefix + name)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err)
	}
	return v, nil
}
