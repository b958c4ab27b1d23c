package group

import "errors"

var (
	ErrGroupNotFound  = errors.New("group not found")
	ErrCodeGeneration = errors.New("share code generation failed")
	ErrInvalidName    = errors.New("invalid group name")
)
