package model

import "errors"

// Error message constants shared by errors and tests.
const (
	// Access errors
	ErrMsgUnauthenticated    = "authentication required"
	ErrMsgInvalidToken       = "invalid or expired token"
	ErrMsgPlayerNotFound     = "player not found"
	ErrMsgForbidden          = "insufficient permissions"
	ErrMsgInvalidCredentials = "invalid credentials"
	ErrMsgEmailTaken         = "email already registered"

	// Quest errors
	ErrMsgQuestNotFound        = "quest not found"
	ErrMsgQuestUnavailable     = "quest is no longer available"
	ErrMsgInvalidQuestConfig   = "quest configuration is invalid"
	ErrMsgInsufficientLevel    = "level too low for this quest"
	ErrMsgAlreadyActive        = "quest already in progress"
	ErrMsgAlreadyCompleted     = "quest already completed"
	ErrMsgNotActive            = "quest is not in progress"
	ErrMsgMissingRequiredItems = "missing items required by the quest"

	// Item errors
	ErrMsgItemNotOwned = "item not owned or used up"
	ErrMsgItemNotFound = "item not found"

	// Input and storage errors
	ErrMsgValidation  = "invalid input"
	ErrMsgConflict    = "player was modified concurrently"
	ErrMsgPersistence = "storage failure"
)

// Domain errors. Wrap with fmt.Errorf("%w: ...", model.ErrXxx) for context.
var (
	ErrUnauthenticated    = errors.New(ErrMsgUnauthenticated)
	ErrInvalidToken       = errors.New(ErrMsgInvalidToken)
	ErrPlayerNotFound     = errors.New(ErrMsgPlayerNotFound)
	ErrForbidden          = errors.New(ErrMsgForbidden)
	ErrInvalidCredentials = errors.New(ErrMsgInvalidCredentials)
	ErrEmailTaken         = errors.New(ErrMsgEmailTaken)

	ErrQuestNotFound        = errors.New(ErrMsgQuestNotFound)
	ErrQuestUnavailable     = errors.New(ErrMsgQuestUnavailable)
	ErrInvalidQuestConfig   = errors.New(ErrMsgInvalidQuestConfig)
	ErrInsufficientLevel    = errors.New(ErrMsgInsufficientLevel)
	ErrAlreadyActive        = errors.New(ErrMsgAlreadyActive)
	ErrAlreadyCompleted     = errors.New(ErrMsgAlreadyCompleted)
	ErrNotActive            = errors.New(ErrMsgNotActive)
	ErrMissingRequiredItems = errors.New(ErrMsgMissingRequiredItems)

	ErrItemNotOwned = errors.New(ErrMsgItemNotOwned)
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	ErrValidation  = errors.New(ErrMsgValidation)
	ErrConflict    = errors.New(ErrMsgConflict)
	ErrPersistence = errors.New(ErrMsgPersistence)
)
