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

// Package composer wraps the Composer dependency manager.
package composer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DemoboxApp/docker-helper-symfony/pkg/fetch"
	"github.com/DemoboxApp/docker-helper-symfony/pkg/provision"
)

const installerURL = "https://getcomposer.org/installer"

// defaultFlags are passed to every composer invocation during image builds.
var defaultFlags = []string{"--no-progress", "--no-interaction"}

// InstallNoParameters performs a script-free, autoload-free
// `composer install` in the source directory. Autoload generation is
// deferred to DumpAutoload so the runtime configuration can be baked in
// first. Extra arguments are forwarded verbatim.
func InstallNoParameters(ctx *provision.Context, extra []string) error {
	cmd := append([]string{"composer", "install", "--no-scripts", "--no-autoloader"}, defaultFlags...)
	cmd = append(cmd, extra...)
	if err := run(ctx, cmd); err != nil {
		return fmt.Errorf("composer install: %w", err)
	}
	return nil
}

// DumpAutoload performs the deferred, optimized autoload dump. Extra
// arguments are forwarded verbatim.
func DumpAutoload(ctx *provision.Context, extra []string) error {
	cmd := append([]string{"composer", "dump-autoload", "--optimize"}, defaultFlags...)
	cmd = append(cmd, extra...)
	if err := run(ctx, cmd); err != nil {
		return fmt.Errorf("composer dump-autoload: %w", err)
	}
	return nil
}

func run(ctx *provision.Context, cmd []string) error {
	_, err := ctx.Exec(cmd,
		provision.WithWorkDir(ctx.Config().SourceDir),
		provision.WithEnv("COMPOSER_HOME="+ctx.Config().ComposerCacheDir),
		provision.WithUserAttribution)
	return err
}

// InstallComposer bootstraps the composer binary itself: it downloads the
// official installer and runs it with the image's PHP. An empty version
// installs the latest release.
func InstallComposer(ctx *provision.Context, composerVersion string) error {
	dir, err := os.MkdirTemp("", "composer-setup-")
	if err != nil {
		return fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	installer := filepath.Join(dir, "installer.php")
	ctx.Logf("Downloading composer installer from %s", installerURL)
	if err := fetch.File(installerURL, installer); err != nil {
		return fmt.Errorf("downloading composer installer: %w", err)
	}

	cmd := []string{"php", installer, "--install-dir=/usr/local/bin", "--filename=composer"}
	if composerVersion != "" {
		cmd = append(cmd, "--version="+composerVersion)
	}
	if _, err := ctx.Exec(cmd, provision.WithUserAttribution); err != nil {
		return fmt.Errorf("running composer installer: %w", err)
	}
	return nil
}
