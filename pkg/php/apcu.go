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
	"github.com/DemoboxApp/docker-helper-symfony/pkg/provision"
)

const (
	apcuPackage = "apcu"
	// legacyAPCuPackage is the last APCu release with PHP 5 support.
	legacyAPCuPackage = "apcu-4.0.11"
)

// InstallAPCu installs the APCu pecl package matching the image's PHP
// version and appends the directives enabling it, including CLI usage so
// that Symfony console commands share the cache behavior.
func InstallAPCu(ctx *provision.Context) error {
	pkg, err := peclPackageForVersion(apcuPackage, legacyAPCuPackage)
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
		"extension=apcu.so",
		"apc.enabled=1",
		"apc.enable_cli=1",
	})
}
