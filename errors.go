package authsession

import "errors"

var (
	// ErrBuilderUsed is returned when Build is called twice on one Builder.
	ErrBuilderUsed = errors.New("builder already used")
	// ErrStorageUnavailable marks a durable backend that stopped accepting
	// reads or writes. The store degrades to memory-only operation; callers
	// never see this error from Set or Clear.
	ErrStorageUnavailable = errors.New("durable storage unavailable")
	// ErrInvalidConfig is returned by Build for an unusable configuration.
	ErrInvalidConfig = errors.New("invalid configuration")
)
