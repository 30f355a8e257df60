package filerenamer

import "gitlab.com/tozd/go/errors"

// Fatal kinds are returned from Run before any file is touched.
var (
	ErrInvalidDirectory     = errors.Base("invalid directory")
	ErrInvalidConfig        = errors.Base("invalid config")
	ErrOutputDirUnavailable = errors.Base("output directory unavailable")
)

// Per-file kinds are only ever recorded in a Report.
var (
	ErrPerFileIO         = errors.Base("file operation failed")
	ErrDestinationExists = errors.Base("destination already exists")
	ErrInvalidName       = errors.Base("invalid target name")
)
