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
	"fmt"

	"github.com/DemoboxApp/docker-helper-symfony/pkg/provisionerror"
)

// OperationFn is the callback signature of a provisioning operation. The
// args are the command-line arguments following the operation name.
type OperationFn func(ctx *Context, args []string) error

// Registry is the closed set of named provisioning operations.
type Registry map[string]OperationFn

// Validate checks that every registered operation has a usable name and
// handler. It is run before dispatching so a broken registration fails every
// invocation, not just the affected command.
func (r Registry) Validate() error {
	if len(r) == 0 {
		return fmt.Errorf("no operations registered")
	}
	for name, fn := range r {
		if name == "" {
			return fmt.Errorf("operation registered with empty name")
		}
		if fn == nil {
			return fmt.Errorf("operation %q registered with nil handler", name)
		}
	}
	return nil
}

// UnknownCommandError reports a command name that matches no registered
// operation.
type UnknownCommandError struct {
	Command string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Command)
}

// Run dispatches args to the matching registered operation and returns its
// error. The first argument is the operation name; the rest are forwarded
// positionally.
func Run(ctx *Context, ops Registry, args []string) error {
	if err := ops.Validate(); err != nil {
		return provisionerror.InternalErrorf("invalid operation registry: %v", err)
	}
	if len(args) == 0 {
		return provisionerror.UserErrorf("usage: provisioner <command> [args...]")
	}

	name := args[0]
	op, ok := ops[name]
	if !ok {
		return &UnknownCommandError{Command: name}
	}

	ctx.Logf("======== %s (run %s) ========", name, ctx.runID)
	return op(ctx, args[1:])
}
