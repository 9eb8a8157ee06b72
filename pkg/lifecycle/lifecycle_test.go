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

package lifecycle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DemoboxApp/docker-helper-symfony/internal/mockexec"
	"github.com/DemoboxApp/docker-helper-symfony/pkg/provision"
)

func testConfig(t *testing.T) provision.Config {
	t.Helper()
	dir := t.TempDir()
	config := provision.DefaultConfig()
	config.SourceDir = filepath.Join(dir, "symfony")
	config.ComposerCacheDir = filepath.Join(dir, "composer")
	config.KnownHosts = filepath.Join(dir, "ssh", "known_hosts")
	config.SudoersDropIn = filepath.Join(dir, "sudoers.d", "docker-build")
	return config
}

func preBuildMocks() []*mockexec.Mock {
	return []*mockexec.Mock{
		mockexec.New(`^apt-get`),
		mockexec.New(`^rm -rf /var/lib/apt/lists$`),
		mockexec.New(`^ssh-keyscan github.com$`, mockexec.WithStdout("github.com ssh-rsa AAAA")),
		mockexec.New(`^ssh-keyscan bitbucket.org$`, mockexec.WithStdout("bitbucket.org ssh-rsa BBBB")),
		mockexec.New(`^chown -R `),
	}
}

func TestPreBuildThenPostBuild(t *testing.T) {
	config := testConfig(t)
	ctx := provision.NewContext(config, provision.WithExecCmd(
		mockexec.NewExecCmd(preBuildMocks()...),
	))

	if err := PreBuild(ctx); err != nil {
		t.Fatalf("PreBuild got error: %v", err)
	}

	// The grant exists for the duration of the build.
	if _, err := os.Stat(config.SudoersDropIn); err != nil {
		t.Fatalf("sudoers drop-in missing after PreBuild: %v", err)
	}

	if err := PostBuild(ctx); err != nil {
		t.Fatalf("PostBuild got error: %v", err)
	}

	if _, err := os.Stat(config.SudoersDropIn); !os.IsNotExist(err) {
		t.Errorf("sudoers drop-in still present after PostBuild")
	}
	for _, dir := range []string{config.SourceDir, config.ComposerCacheDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("directory %s missing after build: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
	}
	if _, err := os.Stat(config.KnownHosts); err != nil {
		t.Errorf("known_hosts missing after PreBuild: %v", err)
	}
}

func TestPostBuildWithoutPreBuild(t *testing.T) {
	ctx := provision.NewContext(testConfig(t))

	if err := PostBuild(ctx); err != nil {
		t.Errorf("PostBuild without PreBuild got error: %v", err)
	}
}

func TestPreBuildAbortsOnEmptyHostKey(t *testing.T) {
	config := testConfig(t)
	log := &mockexec.CommandLog{}
	ctx := provision.NewContext(config, provision.WithExecCmd(
		mockexec.NewRecordingExecCmd(log,
			mockexec.New(`^apt-get`),
			mockexec.New(`^rm -rf /var/lib/apt/lists$`),
			mockexec.New(`^chown -R `),
			mockexec.New(`^ssh-keyscan github.com$`, mockexec.WithStdout("github.com ssh-rsa AAAA")),
			mockexec.New(`^ssh-keyscan bitbucket.org$`), // no output
		),
	))

	err := PreBuild(ctx)
	if err == nil {
		t.Fatal("PreBuild with empty host key lookup got nil error, want error")
	}
	if !strings.Contains(err.Error(), "bitbucket.org") {
		t.Errorf("PreBuild error %q does not name the failing host", err.Error())
	}

	// No fix-up of the .ssh dir after the failed lookup.
	sshDir := filepath.Dir(config.KnownHosts)
	for _, cmd := range log.Commands() {
		if strings.HasPrefix(cmd, "chown") && strings.Contains(cmd, sshDir) {
			t.Errorf("ownership fix-up of %s ran after a failed lookup", sshDir)
		}
	}
}

func TestCreateDirs(t *testing.T) {
	config := testConfig(t)
	log := &mockexec.CommandLog{}
	ctx := provision.NewContext(config, provision.WithExecCmd(
		mockexec.NewRecordingExecCmd(log, mockexec.New(`^chown -R `)),
	))

	if err := CreateDirs(ctx); err != nil {
		t.Fatalf("CreateDirs got error: %v", err)
	}

	cmds := log.Commands()
	if len(cmds) != 2 {
		t.Fatalf("CreateDirs ran %d commands, want 2 ownership fix-ups: %v", len(cmds), cmds)
	}
	if !strings.Contains(cmds[0], config.SourceDir) || !strings.Contains(cmds[1], config.ComposerCacheDir) {
		t.Errorf("CreateDirs commands %v, want fix-ups of %s then %s", cmds, config.SourceDir, config.ComposerCacheDir)
	}
}
