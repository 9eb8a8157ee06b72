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

// Package env specifies environment variables used to configure provisioner behavior.
package env

import (
	"fmt"
	"os"
	"strconv"
)

const (
	// PHPVersion is the PHP version of the image being provisioned.
	// It is set by the Dockerfile (typically from the base image tag) and
	// read by the Xdebug and APCu installers to pick a pecl target.
	// Example: `7.4.33`.
	PHPVersion = "PHP_VERSION"

	// ConfigurePHPFPM makes extension setup also target the FPM php.ini.
	// Example: `true`, `True`, `1` will configure both CLI and FPM.
	ConfigurePHPFPM = "CONFIGURE_PHP_FPM"

	// Config is an optional path to a TOML file overriding the default
	// filesystem layout (ini paths, source dir, service account).
	Config = "PROVISIONER_CONFIG"

	// DebugMode enables more verbose logging.
	// Example: `true`, `True`, `1` will enable debug logging.
	DebugMode = "PROVISIONER_DEBUG"
)

// IsDebugMode returns true if provisioner debug mode is enabled.
func IsDebugMode() (bool, error) {
	return IsPresentAndTrue(DebugMode)
}

// IsFPMConfigured returns true if extension setup should also target the FPM ini.
func IsFPMConfigured() (bool, error) {
	return IsPresentAndTrue(ConfigurePHPFPM)
}

// IsPresentAndTrue returns true if the environment variable evaluates to True.
func IsPresentAndTrue(varName string) (bool, error) {
	varValue, present := os.LookupEnv(varName)
	if !present {
		return false, nil
	}

	parsed, err := strconv.ParseBool(varValue)
	if err != nil {
		return false, fmt.Errorf("parsing %s: %v", varName, err)
	}

	return parsed, nil
}
