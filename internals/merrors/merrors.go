// Package merrors contains the error types used to tell apart why preparing a
// launch failed. Callers usually only need the Is* helpers.
package merrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// ResolutionError is returned when something required to build a launch can
// not be resolved: a missing version, an inheritance cycle, an unsupported
// loader or a descriptor field that has to be present.
type ResolutionError struct {
	// Subject is the version id, loader or field that failed to resolve
	Subject string
	Err     error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, e.Subject)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// IntegrityError is returned when a downloaded or extracted artifact can not
// be trusted (checksum mismatch, archive entry escaping its target).
// It is never caused by the network being down.
type IntegrityError struct {
	// Subject is the file or archive entry in question
	Subject string
	Err     error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity violation in %s: %s", e.Subject, e.Err)
}

func (e *IntegrityError) Unwrap() error { return e.Err }

// InstallerError is returned when a loader installer subprocess ran but did
// not exit successfully.
type InstallerError struct {
	Installer string
	ExitCode  int
	Err       error
}

func (e *InstallerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("installer %s failed with exit status %d: %s", e.Installer, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("installer %s failed with exit status %d", e.Installer, e.ExitCode)
}

func (e *InstallerError) Unwrap() error { return e.Err }

// IsResolution reports whether err (or any error it wraps) is a ResolutionError
func IsResolution(err error) bool {
	var target *ResolutionError
	return errors.As(err, &target)
}

// IsIntegrity reports whether err (or any error it wraps) is an IntegrityError
func IsIntegrity(err error) bool {
	var target *IntegrityError
	return errors.As(err, &target)
}

// IsInstaller reports whether err (or any error it wraps) is an InstallerError
func IsInstaller(err error) bool {
	var target *InstallerError
	return errors.As(err, &target)
}
