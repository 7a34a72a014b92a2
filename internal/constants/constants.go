package constants

import "time"

// Sequence start values for the surrogate keys
const (
	UserSequenceStart = 1
	RoleSequenceStart = 1
	TaskSequenceStart = 1000
)

// Task validation bounds
const (
	MinTitleLength = 5
	MaxTitleLength = 60
)

// User validation bounds
const (
	MinUsernameLength = 5
	MaxUsernameLength = 50
	MinPasswordLength = 5
	MaxPasswordLength = 20
)

// DefaultDueDateOffset is applied when a task is created without a due date.
const DefaultDueDateOffset = 72 * time.Hour

// AccessTokenExpiry is the lifetime of issued access tokens.
const AccessTokenExpiry = 15 * time.Minute
