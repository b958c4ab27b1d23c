package member

import "errors"

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrGroupNotFound  = errors.New("group not found")
	ErrNameTaken      = errors.New("member name already exists in group")
	ErrInvalidName    = errors.New("invalid member name")
)
