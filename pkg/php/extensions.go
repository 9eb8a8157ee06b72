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

package php

import (
	"fmt"

	"github.com/DemoboxApp/docker-helper-symfony/pkg/provision"
	"github.com/DemoboxApp/docker-helper-symfony/pkg/provisionerror"
)

// SymfonyExtensions are the PHP extensions a typical Symfony application
// needs, compiled through docker-php-ext-install.
var SymfonyExtensions = []string{
	"intl",
	"opcache",
	"pdo_mysql",
	"zip",
}

// InstallExtensions compiles and enables the given bundled PHP extensions
// with docker-php-ext-install.
func InstallExtensions(ctx *provision.Context, extensions []string) error {
	if len(extensions) == 0 {
		return provisionerror.UserErrorf("no PHP extensions specified")
	}
	cmd := append([]string{"docker-php-ext-install"}, extensions...)
	if _, err := ctx.Exec(cmd, provision.WithUserAttribution); err != nil {
		return fmt.Errorf("installing PHP extensions: %w", err)
	}
	return nil
}

// InstallSymfonyExtensions installs the fixed Symfony extension set plus any
// extra extensions the caller supplies.
func InstallSymfonyExtensions(ctx *provision.Context, extra []string) error {
	extensions := append([]string{}, SymfonyExtensions...)
	extensions = append(extensions, extra...)
	return InstallExtensions(ctx, extensions)
}

// InstallPeclExtensions installs the given pecl packages one at a time, then
// clears the pecl download cache. Installing one at a time keeps the failing
// package name in the error.
func InstallPeclExtensions(ctx *provision.Context, packages []string) error {
	if len(packages) == 0 {
		return provisionerror.UserErrorf("no pecl packages specified")
	}
	for _, pkg := range packages {
		if _, err := ctx.Exec([]string{"pecl", "install", pkg}, provision.WithUserAttribution); err != nil {
			return fmt.Errorf("installing pecl package %s: %w", pkg, err)
		}
	}
	if _, err := ctx.Exec([]string{"pecl", "clear-cache"}); err != nil {
		return fmt.Errorf("clearing pecl cache: %w", err)
	}
	return nil
}
