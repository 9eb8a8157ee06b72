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

// Package apt installs Debian packages into the image being built.
package apt

import (
	"fmt"

	"github.com/DemoboxApp/docker-helper-symfony/pkg/provision"
)

// aptListsDir is removed after installation to keep the image small;
// apt-get update recreates it.
const aptListsDir = "/var/lib/apt/lists"

// BasePackages is the fixed set installed by the pre-build phase.
var BasePackages = []string{
	"ca-certificates",
	"curl",
	"git",
	"openssh-client",
	"sudo",
	"unzip",
	"zip",
}

// SymfonyPackages are the OS packages a typical Symfony application needs on
// top of the base set.
var SymfonyPackages = []string{
	"acl",
	"libicu-dev",
	"libzip-dev",
	"zlib1g-dev",
}

// InstallPackages refreshes the package index, installs the given packages
// and cleans up the index afterwards. An empty list installs BasePackages.
func InstallPackages(ctx *provision.Context, packages []string) error {
	if len(packages) == 0 {
		packages = BasePackages
	}

	if _, err := ctx.Exec([]string{"apt-get", "update"}); err != nil {
		return fmt.Errorf("updating package index: %w", err)
	}

	cmd := append([]string{"apt-get", "install", "-y", "--no-install-recommends"}, packages...)
	if _, err := ctx.Exec(cmd,
		provision.WithEnv("DEBIAN_FRONTEND=noninteractive"),
		provision.WithUserAttribution); err != nil {
		return fmt.Errorf("installing packages: %w", err)
	}

	return cleanup(ctx)
}

// InstallSymfonyPackages installs the fixed Symfony package set plus any
// extra packages the caller supplies.
func InstallSymfonyPackages(ctx *provision.Context, extra []string) error {
	packages := append([]string{}, SymfonyPackages...)
	packages = append(packages, extra...)
	return InstallPackages(ctx, packages)
}

func cleanup(ctx *provision.Context) error {
	if _, err := ctx.Exec([]string{"apt-get", "clean"}); err != nil {
		return fmt.Errorf("cleaning package cache: %w", err)
	}
	if _, err := ctx.Exec([]string{"rm", "-rf", aptListsDir}); err != nil {
		return fmt.Errorf("removing package lists: %w", err)
	}
	return nil
}
