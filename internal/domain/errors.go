package domain

import "errors"

// Credential errors.
var (
	ErrMissingCredential = errors.New("missing credential fragment")
)

// Linking flow errors.
var (
	ErrInvalidState   = errors.New("operation not valid in current link state")
	ErrLinkExpired    = errors.New("external link expired")
	ErrLinkSuperseded = errors.New("link attempt superseded by a newer one")
	ErrNoIdentifiers  = errors.New("identifier list must not be empty")
)

// Input validation errors.
var (
	ErrInvalidEmail = errors.New("invalid email address")
)

// Authorization errors.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("operation not permitted")
	ErrRoleResolution  = errors.New("role resolution failed")
	ErrUnknownRole     = errors.New("unknown role value")
)

// Token errors.
var (
	ErrTokenGeneration = errors.New("token generation failed")
)
