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

// Package sshkeys pre-populates SSH known-hosts entries so that composer can
// clone from private repositories without an interactive trust prompt.
package sshkeys

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/DemoboxApp/docker-helper-symfony/pkg/provision"
	"github.com/DemoboxApp/docker-helper-symfony/pkg/provisionerror"
)

// HostingServices are the hosts whose public keys are collected by default.
var HostingServices = []string{"github.com", "bitbucket.org"}

// lookupTimeout caps each host-key lookup.
const lookupTimeout = 120 * time.Second

// AddKnownHosts looks up the public host keys of the given hosts (the
// typical hosting services when none are given), appends them to the
// known-hosts file and hands the .ssh directory to the service account. A
// lookup returning no key is fatal and happens before the ownership fix-up.
func AddKnownHosts(ctx *provision.Context, hosts []string) error {
	if len(hosts) == 0 {
		hosts = HostingServices
	}

	config := ctx.Config()
	sshDir := filepath.Dir(config.KnownHosts)
	if err := ctx.MkdirAll(sshDir, 0700); err != nil {
		return err
	}

	for _, host := range hosts {
		result, err := ctx.Exec([]string{"ssh-keyscan", host}, provision.WithTimeout(lookupTimeout))
		if err != nil {
			return fmt.Errorf("scanning host keys for %s: %w", host, err)
		}
		keys := strings.TrimSpace(result.Stdout)
		if keys == "" {
			return provisionerror.UserErrorf("no public host key found for %q", host)
		}
		if err := ctx.AppendLines(config.KnownHosts, strings.Split(keys, "\n")); err != nil {
			return err
		}
		ctx.Logf("Added host keys for %s", host)
	}

	owner := config.ServiceUser + ":" + config.ServiceGroup
	if _, err := ctx.Exec([]string{"chown", "-R", owner, sshDir}); err != nil {
		return fmt.Errorf("fixing ownership of %s: %w", sshDir, err)
	}
	return nil
}
