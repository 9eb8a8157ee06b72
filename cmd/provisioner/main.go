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

// The provisioner command provisions a PHP/Symfony application image from
// inside a Dockerfile: `provisioner <command> [args...]`.
package main

import (
	"github.com/DemoboxApp/docker-helper-symfony/pkg/apt"
	"github.com/DemoboxApp/docker-helper-symfony/pkg/composer"
	"github.com/DemoboxApp/docker-helper-symfony/pkg/lifecycle"
	"github.com/DemoboxApp/docker-helper-symfony/pkg/php"
	"github.com/DemoboxApp/docker-helper-symfony/pkg/provision"
	"github.com/DemoboxApp/docker-helper-symfony/pkg/provisionerror"
	"github.com/DemoboxApp/docker-helper-symfony/pkg/sshkeys"
	"github.com/DemoboxApp/docker-helper-symfony/pkg/sudoers"
)

func main() {
	provision.Main(operations())
}

// operations is the closed set of provisioning commands.
func operations() provision.Registry {
	return provision.Registry{
		"pre_build": func(ctx *provision.Context, args []string) error {
			return lifecycle.PreBuild(ctx)
		},
		"post_build": func(ctx *provision.Context, args []string) error {
			return lifecycle.PostBuild(ctx)
		},
		"add_sudo_rights": func(ctx *provision.Context, args []string) error {
			return sudoers.Grant(ctx)
		},
		"remove_sudo_rights": func(ctx *provision.Context, args []string) error {
			return sudoers.Revoke(ctx)
		},
		"create_dirs": func(ctx *provision.Context, args []string) error {
			return lifecycle.CreateDirs(ctx)
		},
		"install_packages": func(ctx *provision.Context, args []string) error {
			return apt.InstallPackages(ctx, args)
		},
		"install_symfony_packages": func(ctx *provision.Context, args []string) error {
			return apt.InstallSymfonyPackages(ctx, args)
		},
		"install_php_extensions": func(ctx *provision.Context, args []string) error {
			return php.InstallExtensions(ctx, args)
		},
		"install_symfony_php_extensions": func(ctx *provision.Context, args []string) error {
			return php.InstallSymfonyExtensions(ctx, args)
		},
		"install_pecl_extensions": func(ctx *provision.Context, args []string) error {
			return php.InstallPeclExtensions(ctx, args)
		},
		"configure_php": func(ctx *provision.Context, args []string) error {
			if len(args) == 0 {
				return provisionerror.UserErrorf("usage: configure_php <cli|fpm|all> [lines...]")
			}
			target, err := php.ParseTarget(args[0])
			if err != nil {
				return err
			}
			return php.ConfigurePHP(ctx, target, args[1:])
		},
		"install_xdebug": func(ctx *provision.Context, args []string) error {
			return php.InstallXdebug(ctx)
		},
		"install_apcu": func(ctx *provision.Context, args []string) error {
			return php.InstallAPCu(ctx)
		},
		"add_ssh_keys_for_typical_hosting_services": func(ctx *provision.Context, args []string) error {
			return sshkeys.AddKnownHosts(ctx, args)
		},
		"composer_install_no_parameters": func(ctx *provision.Context, args []string) error {
			return composer.InstallNoParameters(ctx, args)
		},
		"composer_dump_autoload": func(ctx *provision.Context, args []string) error {
			return composer.DumpAutoload(ctx, args)
		},
		"install_composer": func(ctx *provision.Context, args []string) error {
			composerVersion := ""
			if len(args) > 0 {
				composerVersion = args[0]
			}
			return composer.InstallComposer(ctx, composerVersion)
		},
	}
}
