package domain

import "errors"

var (
	// ErrProjectNotFound indicates no project matches the given reference.
	ErrProjectNotFound = errors.New("project not found")

	// ErrAmbiguousProject indicates a reference matches more than one project.
	ErrAmbiguousProject = errors.New("project reference is ambiguous")
)
