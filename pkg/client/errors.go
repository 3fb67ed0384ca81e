package client

import "errors"

var (
	// ErrDaemonNotRunning is returned when nothing listens on the daemon socket
	ErrDaemonNotRunning = errors.New("daemon not running")

	// ErrPermissionDenied is returned when the socket is not accessible to the current user
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is returned for an unknown route or appliance
	ErrNotFound = errors.New("404 not found")

	// ErrRejected is returned when the daemon refuses an input as invalid
	ErrRejected = errors.New("rejected by daemon")
)
