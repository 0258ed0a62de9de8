package domain

import "errors"

// ErrLaunch is returned when the driver cannot start processes at all, for
// example because the working directory is gone. A missing or
// non-executable solver is reported as an exit status, not a launch error.
var ErrLaunch = errors.New("solver launch failed")

// ErrInvalidGrid is returned by Grid.Validate for malformed grids.
var ErrInvalidGrid = errors.New("invalid grid")

// ErrLockAcquire is returned when the sweep lock cannot be obtained.
var ErrLockAcquire = errors.New("failed to acquire sweep lock")
