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

package provision

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DemoboxApp/docker-helper-symfony/pkg/provisionerror"
)

var divider = strings.Repeat("—", 80)

// ExecResult bundles exec results.
type ExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Combined string
}

type execParams struct {
	cmd         []string
	userFailure bool
	dir         string
	env         []string
	timeout     time.Duration
}

type execOption func(o *execParams)

// WithEnv sets environment variables (of the form "KEY=value").
func WithEnv(env ...string) execOption {
	return func(o *execParams) {
		o.env = env
	}
}

// WithWorkDir sets a specific working directory.
func WithWorkDir(dir string) execOption {
	return func(o *execParams) {
		o.dir = dir
	}
}

// WithTimeout kills the command if it has not finished after d.
func WithTimeout(d time.Duration) execOption {
	return func(o *execParams) {
		o.timeout = d
	}
}

// WithUserAttribution indicates that a failure is attributed to the caller's
// input or image state rather than to the provisioner itself.
var WithUserAttribution = func(o *execParams) {
	o.userFailure = true
}

// Exec runs the given command, waits for it to complete and captures its
// output. A non-zero exit, a spawn failure or a timeout all produce a
// structured error; the partial result is still returned when available.
func (ctx *Context) Exec(cmd []string, opts ...execOption) (*ExecResult, error) {
	params := execParams{cmd: cmd}
	for _, o := range opts {
		o(&params)
	}

	result, timedOut, err := ctx.configuredExec(params)
	if err == nil {
		return result, nil
	}

	var pe *provisionerror.Error
	msg := err.Error()
	if result != nil && result.Combined != "" {
		msg = fmt.Sprintf("%s\n%s", msg, result.Combined)
	}
	switch {
	case timedOut:
		pe = provisionerror.Errorf(provisionerror.StatusDeadlineExceeded, "%s", msg)
	case params.userFailure:
		pe = provisionerror.UserErrorf("%s", msg)
	default:
		pe = provisionerror.InternalErrorf("%s", msg)
	}
	pe.ID = provisionerror.GenerateErrorID(params.cmd...)
	return result, pe
}

func (ctx *Context) configuredExec(params execParams) (*ExecResult, bool, error) {
	if len(params.cmd) < 1 {
		return nil, false, fmt.Errorf("no command provided")
	}
	if params.cmd[0] == "" {
		return nil, false, fmt.Errorf("empty command provided")
	}

	// For "system" commands, we only log if the debug flag is present.
	log := params.userFailure || ctx.debug

	optionalLogf := func(format string, args ...interface{}) {
		if !log {
			return
		}
		ctx.Logf(format, args...)
	}

	readableCmd := strings.Join(params.cmd, " ")
	if len(params.env) > 0 {
		env := strings.Join(params.env, " ")
		readableCmd = fmt.Sprintf("%s (%s)", readableCmd, env)
	}
	optionalLogf(divider)
	optionalLogf("Running %q", readableCmd)

	defer func(start time.Time) {
		truncated := readableCmd
		if len(truncated) > 60 {
			truncated = truncated[:60] + "..."
		}
		optionalLogf("Done %q (%v)", truncated, time.Since(start))
	}(time.Now())

	exitCode := 0
	ecmd := ctx.execCmd(params.cmd[0], params.cmd[1:]...)

	if params.dir != "" {
		ecmd.Dir = params.dir
	}

	if len(params.env) > 0 {
		ecmd.Env = append(os.Environ(), params.env...)
	}

	var outb, errb bytes.Buffer
	combinedb := lockingBuffer{log: log}
	ecmd.Stdout = io.MultiWriter(&outb, &combinedb)
	ecmd.Stderr = io.MultiWriter(&errb, &combinedb)

	if err := ecmd.Start(); err != nil {
		return nil, false, fmt.Errorf("starting command %q: %v", readableCmd, err)
	}

	var timedOut atomic.Bool
	if params.timeout > 0 {
		timer := time.AfterFunc(params.timeout, func() {
			timedOut.Store(true)
			ecmd.Process.Kill()
		})
		defer timer.Stop()
	}

	if err := ecmd.Wait(); err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			// The command returned a non-zero result.
			exitCode = ee.ExitCode()
		} else {
			return nil, timedOut.Load(), fmt.Errorf("executing command %q: %v", readableCmd, err)
		}
	}

	result := &ExecResult{
		ExitCode: exitCode,
		Stdout:   strings.TrimSpace(outb.String()),
		Stderr:   strings.TrimSpace(errb.String()),
		Combined: strings.TrimSpace(combinedb.String()),
	}

	if timedOut.Load() {
		return result, true, fmt.Errorf("command %q timed out after %v", readableCmd, params.timeout)
	}
	if exitCode != 0 {
		return result, false, fmt.Errorf("executing command %q: exit code %d", readableCmd, exitCode)
	}
	return result, false, nil
}

type lockingBuffer struct {
	buf bytes.Buffer
	sync.Mutex

	// log tells the buffer to also log the output to stderr.
	log bool
}

func (lb *lockingBuffer) Write(p []byte) (int, error) {
	lb.Lock()
	defer lb.Unlock()
	if lb.log {
		os.Stderr.Write(p)
	}
	return lb.buf.Write(p)
}

func (lb *lockingBuffer) String() string {
	lb.Lock()
	defer lb.Unlock()
	return lb.buf.String()
}
