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

// Package mockexec provides testing utilities to replace external shell
// commands run through a provision.Context with a mock process.
package mockexec

import (
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"sync"
)

// Mock associates mock process behavior with a command.
type Mock struct {
	commandRegex string
	stdout       string
	stderr       string
	exitCode     int
}

// New mocks the behavior of a shell command executed by a ctx.Exec call.
// commandRegex is matched against the full command line that would have been
// executed; it does not have to match from the beginning of the line.
func New(commandRegex string, opts ...Option) *Mock {
	m := &Mock{commandRegex: commandRegex}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Option configures the behavior of the mock command.
type Option func(*Mock)

// WithStdout configures what a mocked command prints to stdout.
func WithStdout(msg string) Option {
	return func(m *Mock) {
		m.stdout = msg
	}
}

// WithStderr configures what a mocked command prints to stderr.
func WithStderr(msg string) Option {
	return func(m *Mock) {
		m.stderr = msg
	}
}

// WithExitCode configures what a mocked command uses as the exit code.
func WithExitCode(code int) Option {
	return func(m *Mock) {
		m.exitCode = code
	}
}

// CommandLog records the full command lines spawned through a mocked
// constructor, in order.
type CommandLog struct {
	mu   sync.Mutex
	cmds []string
}

// Commands returns a copy of the recorded command lines.
func (l *CommandLog) Commands() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.cmds...)
}

func (l *CommandLog) record(cmd string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cmds = append(l.cmds, cmd)
}

// NewExecCmd constructs an exec.Cmd constructor for provision.WithExecCmd.
// The requested command is matched against each mock in order; the first
// match is replaced by a small shell script reproducing the configured
// behavior. Commands with no matching mock fail loudly so tests notice
// unexpected invocations.
func NewExecCmd(mocks ...*Mock) func(name string, args ...string) *exec.Cmd {
	return NewRecordingExecCmd(nil, mocks...)
}

// NewRecordingExecCmd is NewExecCmd with every spawned command line appended
// to log.
func NewRecordingExecCmd(log *CommandLog, mocks ...*Mock) func(name string, args ...string) *exec.Cmd {
	return func(name string, args ...string) *exec.Cmd {
		full := strings.Join(append([]string{name}, args...), " ")
		if log != nil {
			log.record(full)
		}
		for _, m := range mocks {
			if regexp.MustCompile(m.commandRegex).MatchString(full) {
				script := fmt.Sprintf("printf '%%s' %s; printf '%%s' %s >&2; exit %d",
					shellQuote(m.stdout), shellQuote(m.stderr), m.exitCode)
				return exec.Command("/bin/sh", "-c", script)
			}
		}
		return exec.Command("/bin/sh", "-c",
			fmt.Sprintf("echo 'mockexec: no mock matched command:' %s >&2; exit 97", shellQuote(full)))
	}
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
