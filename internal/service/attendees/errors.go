package attendees

import "errors"

var (
	ErrAttendeeNotFound = errors.New("attendee not found")
	ErrRateLimited      = errors.New("rate limited")
)
