package logparser

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownException is returned if a line contains no known exception
var ErrUnknownException = errors.New("unknown exception")

var (
	missingModsPattern = regexp.MustCompile(`MissingModsException: Mod (.+) \((.+)\) requires \[(.+)\]$`)
	requirementPattern = regexp.MustCompile(`([a-zA-Z0-9_-]+)@.(\d+\.\d+\.\d+)`)
)

// ModRequirement is a mod id with its minimum version
type ModRequirement struct {
	ModID   string
	Version string
}

func (m ModRequirement) String() string {
	return m.ModID + "@" + m.Version
}

// MissingModsError is logged by forge when a mod requires mods that are not installed
type MissingModsError struct {
	ModID    string
	ModName  string
	Requires []ModRequirement
}

func (e *MissingModsError) Error() string {
	reqs := make([]string, len(e.Requires))
	for i, req := range e.Requires {
		reqs[i] = req.String()
	}
	return e.ModID + " requires " + strings.Join(reqs, ", ")
}

// ParseException tries to find a known exception in the line.
// It returns a *MissingModsError or ErrUnknownException
func ParseException(l *Line) error {
	found := missingModsPattern.FindStringSubmatch(l.Message)
	if found == nil {
		return ErrUnknownException
	}

	parts := strings.Split(found[3], "),")
	requires := make([]ModRequirement, len(parts))
	for i, part := range parts {
		dep := requirementPattern.FindStringSubmatch(part)
		if dep == nil {
			return ErrUnknownException
		}
		requires[i] = ModRequirement{ModID: dep[1], Version: dep[2]}
	}

	return &MissingModsError{
		ModID:    found[1],
		ModName:  found[2],
		Requires: requires,
	}
}
