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
	"os"
	"path/filepath"

	"github.com/DemoboxApp/docker-helper-symfony/pkg/provisionerror"
)

// AppendLines appends each line, in order, to the file at path, creating the
// file if it does not exist. Lines are written verbatim with a trailing
// newline each.
func (ctx *Context) AppendLines(path string, lines []string) error {
	ctx.Debugf("Appending %d line(s) to %s", len(lines), path)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return provisionerror.InternalErrorf("opening %s: %v", path, err)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(f, line); err != nil {
			f.Close()
			return provisionerror.InternalErrorf("appending to %s: %v", path, err)
		}
	}
	if err := f.Close(); err != nil {
		return provisionerror.InternalErrorf("closing %s: %v", path, err)
	}
	return nil
}

// WriteFile is a pass through for os.WriteFile(...) and returns any error as a structured error.
func (ctx *Context) WriteFile(path string, content []byte, perm os.FileMode) error {
	ctx.Debugf("Writing %s", path)
	if err := os.WriteFile(path, content, perm); err != nil {
		return provisionerror.InternalErrorf("writing %s: %v", path, err)
	}
	return nil
}

// MkdirAll is a pass through for os.MkdirAll(...) and returns any error as a structured error.
func (ctx *Context) MkdirAll(path string, perm os.FileMode) error {
	if err := os.MkdirAll(path, perm); err != nil {
		return provisionerror.InternalErrorf("creating %s: %v", path, err)
	}
	return nil
}

// RemoveAll is a pass through for os.RemoveAll(...) and returns any error as
// a structured error. Removing an absent path is not an error.
func (ctx *Context) RemoveAll(elem ...string) error {
	path := filepath.Join(elem...)
	if err := os.RemoveAll(path); err != nil {
		return provisionerror.InternalErrorf("removing %s: %v", path, err)
	}
	return nil
}

// FileExists returns true if a file exists at the path joined by elem.
func (ctx *Context) FileExists(elem ...string) (bool, error) {
	path := filepath.Join(elem...)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, provisionerror.InternalErrorf("stat %q: %v", path, err)
	}
	return true, nil
}
