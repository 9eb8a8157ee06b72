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
	"os"

	"github.com/BurntSushi/toml"
	"github.com/DemoboxApp/docker-helper-symfony/pkg/env"
	"github.com/DemoboxApp/docker-helper-symfony/pkg/provisionerror"
)

// defaultConfigPath is consulted when PROVISIONER_CONFIG is unset; a missing
// file there is not an error.
const defaultConfigPath = "/etc/provisioner.toml"

// Config is the fixed filesystem layout used by every operation. It is
// constructed once at process start and passed explicitly through the
// Context; operations never consult ambient globals for paths.
type Config struct {
	// PHPCLIIni is the php.ini loaded by the CLI SAPI.
	PHPCLIIni string `toml:"php_cli_ini"`
	// PHPFPMIni is the php.ini loaded by the FPM SAPI.
	PHPFPMIni string `toml:"php_fpm_ini"`
	// SourceDir is where the application source is checked out.
	SourceDir string `toml:"source_dir"`
	// ComposerCacheDir is the composer home and package cache.
	ComposerCacheDir string `toml:"composer_cache_dir"`
	// KnownHosts is the SSH known-hosts file pre-populated during the build.
	KnownHosts string `toml:"known_hosts"`
	// SudoersDropIn is the transient sudoers file granting build-time rights.
	SudoersDropIn string `toml:"sudoers_drop_in"`
	// ServiceUser and ServiceGroup identify the account the application
	// runs under and that owns the provisioned directories.
	ServiceUser  string `toml:"service_user"`
	ServiceGroup string `toml:"service_group"`
}

// DefaultConfig returns the layout used by the stock Dockerfiles.
func DefaultConfig() Config {
	return Config{
		PHPCLIIni:        "/usr/local/etc/php/php-cli.ini",
		PHPFPMIni:        "/usr/local/etc/php/php-fpm.ini",
		SourceDir:        "/var/www/symfony",
		ComposerCacheDir: "/var/www/.composer",
		KnownHosts:       "/var/www/.ssh/known_hosts",
		SudoersDropIn:    "/etc/sudoers.d/docker-build",
		ServiceUser:      "www-data",
		ServiceGroup:     "www-data",
	}
}

// LoadConfig returns the default layout with any overrides from the TOML
// file named by PROVISIONER_CONFIG, or from /etc/provisioner.toml when the
// variable is unset. A missing default file leaves the defaults untouched; a
// missing explicit file or a malformed file is an error.
func LoadConfig() (Config, error) {
	config := DefaultConfig()

	path := os.Getenv(env.Config)
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	md, err := toml.DecodeFile(path, &config)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return config, nil
		}
		return config, provisionerror.UserErrorf("reading config %s: %v", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return config, provisionerror.UserErrorf("unknown keys in config %s: %v", path, undecoded)
	}
	return config, nil
}
