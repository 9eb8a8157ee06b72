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

package provisionerror

import (
	"strings"
	"testing"
)

func TestErrorf(t *testing.T) {
	got := Errorf(StatusInternal, "error %d", 42)

	if got.Status != StatusInternal {
		t.Errorf("Errorf status got %v, want %v", got.Status, StatusInternal)
	}
	if got.Message != "error 42" {
		t.Errorf("Errorf message got %q, want %q", got.Message, "error 42")
	}
	if len(got.ID) != errorIDLength {
		t.Errorf("Errorf ID length got %d, want %d", len(got.ID), errorIDLength)
	}
}

func TestErrorIncludesID(t *testing.T) {
	err := &Error{Message: "it broke", ID: "abcd1234"}
	want := "it broke [id:abcd1234]"
	if got := err.Error(); got != want {
		t.Errorf("Error() got %q, want %q", got, want)
	}
}

func TestErrorWithoutID(t *testing.T) {
	err := &Error{Message: "it broke"}
	if got := err.Error(); got != "it broke" {
		t.Errorf("Error() got %q, want %q", got, "it broke")
	}
}

func TestUserErrorfStatus(t *testing.T) {
	if got := UserErrorf("oops").Status; got != StatusUnknown {
		t.Errorf("UserErrorf status got %v, want %v", got, StatusUnknown)
	}
	if got := InternalErrorf("oops").Status; got != StatusInternal {
		t.Errorf("InternalErrorf status got %v, want %v", got, StatusInternal)
	}
}

func TestGenerateErrorID(t *testing.T) {
	id1 := GenerateErrorID("apt-get", "install")
	id2 := GenerateErrorID("apt-get", "install")
	id3 := GenerateErrorID("apt-get", "update")

	if id1 != id2 {
		t.Errorf("GenerateErrorID not deterministic: %q vs %q", id1, id2)
	}
	if id1 == id3 {
		t.Errorf("GenerateErrorID collision for different parts: %q", id1)
	}
	if len(id1) != errorIDLength {
		t.Errorf("GenerateErrorID length got %d, want %d", len(id1), errorIDLength)
	}
	if strings.ToLower(string(id1)) != string(id1) {
		t.Errorf("GenerateErrorID got %q, want lowercase", id1)
	}
}

func TestStatusString(t *testing.T) {
	testCases := []struct {
		status Status
		want   string
	}{
		{StatusOk, "OK"},
		{StatusInvalidArgument, "INVALID_ARGUMENT"},
		{StatusDeadlineExceeded, "DEADLINE_EXCEEDED"},
		{StatusInternal, "INTERNAL"},
	}
	for _, tc := range testCases {
		if got := tc.status.String(); got != tc.want {
			t.Errorf("Status(%d).String() got %q, want %q", tc.status, got, tc.want)
		}
	}
}
