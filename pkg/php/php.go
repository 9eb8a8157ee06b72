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

// Package php configures the PHP installation of the image: ini directives,
// extensions and pecl packages.
package php

import (
	"github.com/DemoboxApp/docker-helper-symfony/pkg/env"
	"github.com/DemoboxApp/docker-helper-symfony/pkg/provision"
	"github.com/DemoboxApp/docker-helper-symfony/pkg/provisionerror"
)

// Target selects which php.ini files ConfigurePHP appends to.
type Target string

const (
	// TargetCLI affects only the CLI php.ini.
	TargetCLI Target = "cli"
	// TargetFPM affects only the FPM php.ini.
	TargetFPM Target = "fpm"
	// TargetAll affects both ini files.
	TargetAll Target = "all"
)

// ParseTarget validates a target selector supplied on the command line.
func ParseTarget(s string) (Target, error) {
	switch t := Target(s); t {
	case TargetCLI, TargetFPM, TargetAll:
		return t, nil
	}
	return "", provisionerror.UserErrorf("invalid php.ini target %q, must be one of %q, %q or %q",
		s, TargetCLI, TargetFPM, TargetAll)
}

// ConfigurePHP appends the given configuration lines verbatim, in order, to
// the php.ini selected by target. TargetAll recurses into the CLI and FPM
// files and returns.
func ConfigurePHP(ctx *provision.Context, target Target, lines []string) error {
	switch target {
	case TargetAll:
		if err := ConfigurePHP(ctx, TargetCLI, lines); err != nil {
			return err
		}
		return ConfigurePHP(ctx, TargetFPM, lines)
	case TargetCLI:
		return ctx.AppendLines(ctx.Config().PHPCLIIni, lines)
	case TargetFPM:
		return ctx.AppendLines(ctx.Config().PHPFPMIni, lines)
	}
	return provisionerror.UserErrorf("invalid php.ini target %q, must be one of %q, %q or %q",
		target, TargetCLI, TargetFPM, TargetAll)
}

// configTarget returns the ini target for extension setup: both files when
// CONFIGURE_PHP_FPM is set, only the CLI file otherwise.
func configTarget() (Target, error) {
	fpm, err := env.IsFPMConfigured()
	if err != nil {
		return "", provisionerror.UserErrorf("%v", err)
	}
	if fpm {
		return TargetAll, nil
	}
	return TargetCLI, nil
}
