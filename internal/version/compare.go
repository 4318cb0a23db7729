package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/omupade20/prop8/pkg/errors"
)

// CheckSnapshotCompatibility reports whether a snapshot written with format
// version stored can be loaded by a reader at version current.
//
// Rules:
//   - Major versions must match
//   - The stored minor version must not be newer than the reader's
//   - Patch versions can differ
//
// Examples:
//   - reader 1.1.0, snapshot 1.0.3 -> OK
//   - reader 1.1.0, snapshot 1.2.0 -> ERROR (written by a newer minor)
//   - reader 2.0.0, snapshot 1.1.0 -> ERROR (major differs)
func CheckSnapshotCompatibility(current, stored string) error {
	currentSemver, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidParameter, err, "invalid reader version '%s'", current)
	}

	storedSemver, err := semver.NewVersion(strings.TrimPrefix(stored, "v"))
	if err != nil {
		return errors.Wrapf(errors.ErrCodeIncompatibleVersion, err, "invalid snapshot version '%s'", stored)
	}

	if currentSemver.Major() != storedSemver.Major() {
		return errors.Newf(errors.ErrCodeIncompatibleVersion,
			"major version mismatch: reader is %d.x.x but snapshot is %d.x.x",
			currentSemver.Major(), storedSemver.Major())
	}

	if storedSemver.Minor() > currentSemver.Minor() {
		return errors.Newf(errors.ErrCodeIncompatibleVersion,
			"snapshot %d.%d.x is newer than reader %d.%d.x",
			storedSemver.Major(), storedSemver.Minor(),
			currentSemver.Major(), currentSemver.Minor())
	}

	return nil
}
