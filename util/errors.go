package util

import "errors"

var (
	ErrInvalidArgument         = errors.New("invalid argument")
	ErrNotFound                = errors.New("account not found")
	ErrAccountExists           = errors.New("account already exists")
	ErrAuthentication          = errors.New("authentication failed")
	ErrAuthenticationCancelled = errors.New("authentication cancelled")
	ErrPersistence             = errors.New("failed to access launcher state")
	ErrNotLaunchable           = errors.New("nothing to launch")
)
