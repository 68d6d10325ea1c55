// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noEnvFile points [EnvFile] at a missing file for the test.
func noEnvFile(t *testing.T) {
	old := EnvFile
	EnvFile = filepath.Join(t.TempDir(), "missing.env")
	t.Cleanup(func() { EnvFile = old })
}

func TestDefaults(t *testing.T) {
	cfg := New()
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, "scene3d", cfg.Window.Title)
	assert.Equal(t, "orthographic", cfg.Camera.Kind)
	assert.Equal(t, float32(100), cfg.Camera.Height)
	assert.Equal(t, float32(0.1), cfg.Camera.Near)
	assert.Equal(t, "fifo", cfg.PresentMode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, color.RGBA{0x1a, 0x33, 0x4d, 0xff}, cfg.BackgroundColor())
	assert.NoError(t, cfg.Validate())
}

func TestLoadTOML(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "scene3d.toml")
	require.NoError(t, os.WriteFile(fn, []byte(`
background = "#ff0000"
present_mode = "mailbox"

[window]
width = 640

[camera]
kind = "perspective"
fov = 60.0
`), 0o666))
	cfg := New()
	require.NoError(t, Load(cfg, fn))
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height) // unset keeps default
	assert.Equal(t, "perspective", cfg.Camera.Kind)
	assert.Equal(t, float32(60), cfg.Camera.FOV)
	assert.Equal(t, "mailbox", cfg.PresentMode)
	assert.Equal(t, color.RGBA{0xff, 0, 0, 0xff}, cfg.BackgroundColor())
}

func TestLoadYAML(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "scene3d.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("window:\n  title: demo\n  height: 480\nlog_level: debug\n"), 0o666))
	cfg := New()
	require.NoError(t, Load(cfg, fn))
	assert.Equal(t, "demo", cfg.Window.Title)
	assert.Equal(t, 480, cfg.Window.Height)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	cfg := New()
	assert.Error(t, Load(cfg, "scene3d.json"))
	assert.Error(t, Load(cfg, filepath.Join(t.TempDir(), "missing.toml")))

	fn := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(fn, []byte("window = ["), 0o666))
	assert.Error(t, Load(cfg, fn))
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.toml", "out.yml"} {
		cfg := New()
		cfg.Window.Title = "saved"
		cfg.Camera.Distance = 25
		fn := filepath.Join(dir, name)
		require.NoError(t, Save(cfg, fn))

		got := &Config{}
		require.NoError(t, Load(got, fn))
		assert.Equal(t, cfg, got, name)
	}
}

func TestApplyEnv(t *testing.T) {
	noEnvFile(t)
	t.Setenv("SCENE3D_WIDTH", "800")
	t.Setenv("SCENE3D_TITLE", "from env")
	t.Setenv("SCENE3D_CAMERA", "perspective")
	cfg := New()
	require.NoError(t, ApplyEnv(cfg))
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, "from env", cfg.Window.Title)
	assert.Equal(t, "perspective", cfg.Camera.Kind)
	assert.Equal(t, "fifo", cfg.PresentMode)

	t.Setenv("SCENE3D_HEIGHT", "tall")
	assert.Error(t, ApplyEnv(cfg))
}

func TestApplyEnvFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(fn, []byte("SCENE3D_PRESENT_MODE=immediate\n"), 0o666))
	old := EnvFile
	EnvFile = fn
	t.Cleanup(func() {
		EnvFile = old
		os.Unsetenv("SCENE3D_PRESENT_MODE")
	})
	cfg := New()
	require.NoError(t, ApplyEnv(cfg))
	assert.Equal(t, "immediate", cfg.PresentMode)
}

func TestOpenValidates(t *testing.T) {
	noEnvFile(t)
	fn := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(fn, []byte("[camera]\nkind = \"fisheye\"\n"), 0o666))
	_, err := Open(fn)
	assert.ErrorContains(t, err, "fisheye")

	cfg := New()
	cfg.Background = "#12345"
	assert.ErrorContains(t, cfg.Validate(), "12345")

	cfg, err = Open("")
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)
}

func TestWatch(t *testing.T) {
	noEnvFile(t)
	fn := filepath.Join(t.TempDir(), "watch.toml")
	require.NoError(t, os.WriteFile(fn, []byte("background = \"#000000\"\n"), 0o666))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan *Config, 8)
	require.NoError(t, Watch(ctx, fn, func(cfg *Config) { got <- cfg }))

	require.NoError(t, os.WriteFile(fn, []byte("background = \"#00ff00\"\n"), 0o666))
	// a truncating write can report an empty file before the new contents
	want := color.RGBA{0, 0xff, 0, 0xff}
	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-got:
			if cfg.BackgroundColor() == want {
				return
			}
		case <-timeout:
			t.Fatal("no reload after write")
		}
	}
}

func TestResolve(t *testing.T) {
	noEnvFile(t)
	fn := filepath.Join(t.TempDir(), "scene3d.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("background: \"#00ff00\"\nline_width: 2\nwindow:\n  title: file\n  width: 640\n"), 0o666))
	t.Setenv(EnvPrefix+"TITLE", "env")
	t.Setenv(EnvPrefix+"PRESENT_MODE", "mailbox")

	cfg := New()
	require.NoError(t, cfg.resolve([]string{"-config", fn, "-line-width", "7", "-title", "flag"}))
	assert.Equal(t, fn, cfg.File())
	assert.Equal(t, "#00ff00", cfg.Background)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, "mailbox", cfg.PresentMode)
	assert.Equal(t, float32(7), cfg.LineWidth)
	assert.Equal(t, "flag", cfg.Window.Title)

	cfg = New()
	assert.Error(t, cfg.resolve([]string{"-kind", "fisheye"}))
}

func TestFindFile(t *testing.T) {
	dir := t.TempDir()
	old := IncludePaths
	IncludePaths = []string{dir}
	t.Cleanup(func() { IncludePaths = old })

	assert.Empty(t, findFile(nil))

	def := filepath.Join(dir, DefaultFile)
	require.NoError(t, os.WriteFile(def, []byte("line_width = 3\n"), 0o666))
	assert.Equal(t, def, findFile(nil))
	assert.Equal(t, def, findFile([]string{"-config", "missing.yaml"}))

	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(other, []byte("line_width: 3\n"), 0o666))
	assert.Equal(t, other, findFile([]string{"-cfg", "other.yaml"}))
	assert.Equal(t, other, findFile([]string{"--config", other}))
}
