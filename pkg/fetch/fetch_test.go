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

package fetch

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got, want := r.Header.Get("User-Agent"), userAgent; got != want {
			t.Errorf("User-Agent got %q, want %q", got, want)
		}
		fmt.Fprint(w, "installer contents")
	}))
	defer server.Close()

	outPath := filepath.Join(t.TempDir(), "installer.php")
	if err := File(server.URL, outPath); err != nil {
		t.Fatalf("File got error: %v", err)
	}

	content, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading downloaded file: %v", err)
	}
	if got, want := string(content), "installer contents"; got != want {
		t.Errorf("downloaded content got %q, want %q", got, want)
	}
}

func TestFileNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	err := File(server.URL, filepath.Join(t.TempDir(), "out"))
	if err == nil {
		t.Fatal("File got nil error, want error for 404 response")
	}
	if !strings.Contains(err.Error(), "HTTP status: 404") {
		t.Errorf("File error %q does not include the HTTP status", err.Error())
	}
}

func TestFileBadOutPath(t *testing.T) {
	err := File("http://localhost", filepath.Join(t.TempDir(), "missing", "out"))
	if err == nil {
		t.Fatal("File got nil error, want error for unwritable path")
	}
}
