package core

import "errors"

// Common errors.
var (
	ErrBuiltinTrigger = errors.New("trigger is reserved by a builtin snippet")
	ErrInvalidTrigger = errors.New("trigger must be non-empty and alphanumeric")
	ErrReservedKey    = errors.New("settings key is reserved")
	ErrFileExists     = errors.New("file already exists")
	ErrFileMissing    = errors.New("file does not exist")
)
