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

// Package lifecycle composes the individual operations into the two-phase
// pre-build/post-build provisioning lifecycle.
package lifecycle

import (
	"fmt"

	"github.com/DemoboxApp/docker-helper-symfony/pkg/apt"
	"github.com/DemoboxApp/docker-helper-symfony/pkg/provision"
	"github.com/DemoboxApp/docker-helper-symfony/pkg/sshkeys"
	"github.com/DemoboxApp/docker-helper-symfony/pkg/sudoers"
)

// PreBuild provisions everything the application build needs: the base OS
// packages, a temporary sudo grant for the service user, the source and
// composer cache directories, and the host keys of the typical hosting
// services. The first failing step aborts the phase.
func PreBuild(ctx *provision.Context) error {
	if err := apt.InstallPackages(ctx, nil); err != nil {
		return fmt.Errorf("installing base packages: %w", err)
	}
	if err := sudoers.Grant(ctx); err != nil {
		return fmt.Errorf("granting sudo rights: %w", err)
	}
	if err := CreateDirs(ctx); err != nil {
		return fmt.Errorf("creating directories: %w", err)
	}
	if err := sshkeys.AddKnownHosts(ctx, nil); err != nil {
		return fmt.Errorf("adding host keys: %w", err)
	}
	return nil
}

// PostBuild revokes the temporary sudo rights granted by PreBuild. It is
// idempotent: running it without a prior PreBuild succeeds.
func PostBuild(ctx *provision.Context) error {
	return sudoers.Revoke(ctx)
}

// CreateDirs creates the source and composer cache directories and hands
// them to the service account.
func CreateDirs(ctx *provision.Context) error {
	config := ctx.Config()
	owner := config.ServiceUser + ":" + config.ServiceGroup
	for _, dir := range []string{config.SourceDir, config.ComposerCacheDir} {
		if err := ctx.MkdirAll(dir, 0755); err != nil {
			return err
		}
		if _, err := ctx.Exec([]string{"chown", "-R", owner, dir}); err != nil {
			return fmt.Errorf("fixing ownership of %s: %w", dir, err)
		}
	}
	return nil
}
