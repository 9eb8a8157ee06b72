// Copyright 2023 Demobox
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package provision is a small framework for Dockerfile provisioning
// operations: named commands that shell out to external tools to prepare a
// PHP/Symfony application image.
package provision

import (
	"log"
	"os"
	"os/exec"

	"github.com/DemoboxApp/docker-helper-symfony/pkg/env"
	"github.com/rs/xid"
)

var logger = log.New(os.Stderr, "", 0)

// Context provides configuration and contextually aware helpers to
// provisioning operations.
type Context struct {
	config  Config
	debug   bool
	runID   string
	execCmd func(name string, args ...string) *exec.Cmd
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithExecCmd replaces the exec.Cmd constructor used to spawn external
// commands; used to mock out commands in tests.
func WithExecCmd(execCmd func(name string, args ...string) *exec.Cmd) ContextOption {
	return func(ctx *Context) {
		ctx.execCmd = execCmd
	}
}

// WithDebug forces the debug flag regardless of the environment.
func WithDebug(debug bool) ContextOption {
	return func(ctx *Context) {
		ctx.debug = debug
	}
}

// NewContext creates a context for the given configuration.
func NewContext(config Config, opts ...ContextOption) *Context {
	debug, err := env.IsDebugMode()
	if err != nil {
		logger.Printf("Warning: %v", err)
	}

	ctx := &Context{
		config:  config,
		debug:   debug,
		runID:   xid.New().String(),
		execCmd: exec.Command,
	}
	for _, o := range opts {
		o(ctx)
	}
	return ctx
}

// Config returns the immutable filesystem layout for this run.
func (ctx *Context) Config() Config {
	return ctx.config
}

// RunID returns the unique identifier of this provisioning run.
func (ctx *Context) RunID() string {
	return ctx.runID
}

// Logf emits a logging line.
func (ctx *Context) Logf(format string, args ...interface{}) {
	logger.Printf(format, args...)
}

// Debugf emits a logging line if the debug flag is set.
func (ctx *Context) Debugf(format string, args ...interface{}) {
	if !ctx.debug {
		return
	}
	ctx.Logf("DEBUG: "+format, args...)
}

// Warnf emits a logging line for warnings.
func (ctx *Context) Warnf(format string, args ...interface{}) {
	ctx.Logf("Warning: "+format, args...)
}

// Main dispatches the command line to one of the registered operations and
// exits the process, 0 on success and 1 on any failure.
func Main(ops Registry) {
	config, err := LoadConfig()
	if err != nil {
		logger.Printf("Failure: %v", err)
		os.Exit(1)
	}

	ctx := NewContext(config)
	if err := Run(ctx, ops, os.Args[1:]); err != nil {
		ctx.Logf(divider)
		ctx.Logf("Failure: %v", err)
		os.Exit(1)
	}
}
