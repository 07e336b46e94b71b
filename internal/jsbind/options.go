package jsbind

import (
	"io"
	"os"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

type engineConfig struct {
	stdout  io.Writer
	stderr  io.Writer
	baseDir string
	logger  *logiface.Logger[*stumpy.Event]
}

// EngineOption configures an Engine.
type EngineOption interface {
	applyEngine(*engineConfig)
}

type engineOptionFunc func(*engineConfig)

func (f engineOptionFunc) applyEngine(c *engineConfig) { f(c) }

// WithStdout sets the default console output stream.
func WithStdout(w io.Writer) EngineOption {
	return engineOptionFunc(func(c *engineConfig) { c.stdout = w })
}

// WithStderr sets the default console error stream.
func WithStderr(w io.Writer) EngineOption {
	return engineOptionFunc(func(c *engineConfig) { c.stderr = w })
}

// WithBaseDir sets the directory relative require() module paths resolve
// against.
func WithBaseDir(dir string) EngineOption {
	return engineOptionFunc(func(c *engineConfig) { c.baseDir = dir })
}

// WithLogger sets the structured logger shared with the asynchronous
// runtime core.
func WithLogger(l *logiface.Logger[*stumpy.Event]) EngineOption {
	return engineOptionFunc(func(c *engineConfig) { c.logger = l })
}

func resolveEngineOptions(opts []EngineOption) *engineConfig {
	cfg := &engineConfig{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, o := range opts {
		if o == nil {
			continue
		}
		o.applyEngine(cfg)
	}
	if cfg.baseDir == "" {
		cfg.baseDir, _ = os.Getwd()
	}
	return cfg
}
