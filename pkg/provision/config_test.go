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
	"path/filepath"
	"testing"

	"github.com/DemoboxApp/docker-helper-symfony/pkg/env"
	"github.com/google/go-cmp/cmp"
)

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "provisioner.toml")
	content := `
source_dir = "/srv/app"
service_user = "app"
service_group = "app"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv(env.Config, path)

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig got error: %v", err)
	}

	want := DefaultConfig()
	want.SourceDir = "/srv/app"
	want.ServiceUser = "app"
	want.ServiceGroup = "app"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadConfig mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	t.Setenv(env.Config, filepath.Join(t.TempDir(), "missing.toml"))

	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig with missing explicit file got nil error, want error")
	}
}

func TestLoadConfigUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "provisioner.toml")
	if err := os.WriteFile(path, []byte(`no_such_key = "x"`), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv(env.Config, path)

	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig with unknown keys got nil error, want error")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "provisioner.toml")
	if err := os.WriteFile(path, []byte(`source_dir = [`), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv(env.Config, path)

	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig with malformed file got nil error, want error")
	}
}

func TestDefaultConfig(t *testing.T) {
	got := DefaultConfig()

	if got.PHPCLIIni == got.PHPFPMIni {
		t.Errorf("DefaultConfig CLI and FPM ini paths are identical: %q", got.PHPCLIIni)
	}
	if got.ServiceUser == "" || got.ServiceGroup == "" {
		t.Errorf("DefaultConfig service account incomplete: %+v", got)
	}
	if got.SudoersDropIn == "" {
		t.Errorf("DefaultConfig sudoers drop-in path empty")
	}
}
