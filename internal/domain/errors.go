package domain

import "errors"

// Structural validation errors. All of these are detected before any write
// inside the enclosing transaction; nothing is partially committed.
var (
	ErrValidation             = errors.New("invalid input")
	ErrUnknownStatus          = errors.New("status does not belong to project")
	ErrSelfDependency         = errors.New("task cannot depend on itself")
	ErrDuplicateDependency    = errors.New("dependency already exists")
	ErrCyclicDependency       = errors.New("dependency would create a cycle")
	ErrCrossProjectDependency = errors.New("dependency endpoints belong to different projects")
	ErrPartialTaskSet         = errors.New("one or more task ids do not resolve in the project")
)
