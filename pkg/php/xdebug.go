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
	"os"

	"github.com/DemoboxApp/docker-helper-symfony/pkg/env"
	"github.com/DemoboxApp/docker-helper-symfony/pkg/provision"
	"github.com/DemoboxApp/docker-helper-symfony/pkg/provisionerror"
	"github.com/DemoboxApp/docker-helper-symfony/pkg/version"
)

const (
	xdebugPackage = "xdebug"
	// legacyXdebugPackage is the last Xdebug release with PHP 5 support.
	legacyXdebugPackage = "xdebug-2.5.5"
)

// InstallXdebug installs the Xdebug pecl package matching the image's PHP
// version and appends the directives enabling it. The PHP version is taken
// from the PHP_VERSION environment variable.
func InstallXdebug(ctx *provision.Context) error {
	pkg, err := peclPackageForVersion(xdebugPackage, legacyXdebugPackage)
	if err != nil {
		return err
	}
	if err := InstallPeclExtensions(ctx, []string{pkg}); err != nil {
		return err
	}

	target, err := configTarget()
	if err != nil {
		return err
	}
	return ConfigurePHP(ctx, target, []string{
		"zend_extension=xdebug.so",
		"xdebug.remote_enable=1",
		"xdebug.remote_autostart=0",
	})
}

// peclPackageForVersion picks the modern or the legacy pinned pecl package
// based on the PHP version in the environment.
func peclPackageForVersion(modernPkg, legacyPkg string) (string, error) {
	phpVersion := os.Getenv(env.PHPVersion)
	if phpVersion == "" {
		return "", provisionerror.UserErrorf("%s must be set to pick a pecl package for %s", env.PHPVersion, modernPkg)
	}
	modern, err := version.SupportsModernExtensions(phpVersion)
	if err != nil {
		return "", provisionerror.UserErrorf("resolving PHP version: %v", err)
	}
	if modern {
		return modernPkg, nil
	}
	return legacyPkg, nil
}
