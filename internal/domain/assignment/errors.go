package assignment

import "errors"

var (
	ErrGroupNotFound       = errors.New("group not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrNoMembers           = errors.New("group has no members")
	ErrCrossGroupReference = errors.New("member and assignment belong to different groups")
	ErrInvalidMonth        = errors.New("month must be between 1 and 12")
	ErrRedrawFailed        = errors.New("redraw failed")
)
