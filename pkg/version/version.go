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

// Package version provides utility methods for working with semantic versions.
package version

import (
	"fmt"

	"github.com/Masterminds/semver"
)

// modernPHPConstraint is the boundary between pecl packages that still ship
// PHP 5 builds and those that require PHP 7 or newer.
const modernPHPConstraint = ">= 7.0.0"

// SupportsModernExtensions reports whether the given PHP version can use the
// current pecl releases of extensions such as Xdebug and APCu. Versions older
// than 7.0.0 need the legacy pinned packages.
func SupportsModernExtensions(phpVersion string) (bool, error) {
	return Satisfies(phpVersion, modernPHPConstraint)
}

// Satisfies reports whether a version matches a semver constraint. Partial
// versions such as "7.4" are accepted and padded with zeros.
func Satisfies(version, constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing constraint %q: %v", constraint, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false, fmt.Errorf("parsing version %q: %v", version, err)
	}
	return c.Check(v), nil
}

// IsExactSemver returns true if a given string is a valid semantic version.
func IsExactSemver(version string) bool {
	_, err := semver.NewVersion(version)
	return err == nil
}
