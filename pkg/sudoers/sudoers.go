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

// Package sudoers manages the transient sudo grant used during the build.
package sudoers

import (
	"fmt"
	"path/filepath"

	"github.com/DemoboxApp/docker-helper-symfony/pkg/provision"
)

// Grant writes a sudoers drop-in giving the service user unrestricted,
// passwordless sudo for the remainder of the build. Revoke must run before
// the image is finalized.
func Grant(ctx *provision.Context) error {
	config := ctx.Config()
	if err := ctx.MkdirAll(filepath.Dir(config.SudoersDropIn), 0755); err != nil {
		return err
	}
	line := fmt.Sprintf("%s ALL=(ALL) NOPASSWD:ALL\n", config.ServiceUser)
	// sudo refuses drop-ins that are group or world writable.
	if err := ctx.WriteFile(config.SudoersDropIn, []byte(line), 0440); err != nil {
		return err
	}
	ctx.Logf("Granted temporary sudo rights to %s", config.ServiceUser)
	return nil
}

// Revoke removes the drop-in. Removing an absent file is not an error, so
// the post-build phase succeeds even when no grant ever happened.
func Revoke(ctx *provision.Context) error {
	if err := ctx.RemoveAll(ctx.Config().SudoersDropIn); err != nil {
		return err
	}
	ctx.Logf("Revoked temporary sudo rights from %s", ctx.Config().ServiceUser)
	return nil
}
