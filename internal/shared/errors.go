package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
	ErrUnknownDaemon = fmt.Errorf("daemon not configured")

	// Daemon errors
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrTaskFailed         = fmt.Errorf("task failed")
	ErrTorrentNotFound    = fmt.Errorf("torrent not found")
	ErrFileNotFound       = fmt.Errorf("file not found")

	// Storage errors
	ErrNotFound = fmt.Errorf("record not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
