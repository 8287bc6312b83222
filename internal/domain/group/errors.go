package group

import "errors"

var (
	ErrGroupNotFound         = errors.New("group not found")
	ErrGroupNameRequired     = errors.New("group name is required")
	ErrDefaultGroupImmutable = errors.New("membership in the default group cannot be toggled")
)
