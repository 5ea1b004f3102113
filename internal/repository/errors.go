package repository

import "errors"

// ErrNotFound is returned when the targeted record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateWeek is returned when a weekly submission already exists
// for the same project, author and week.
var ErrDuplicateWeek = errors.New("submission already exists for this week")
