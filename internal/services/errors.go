package services

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidSession     = errors.New("invalid session")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidDay         = errors.New("invalid day")
	ErrInvalidUsername    = errors.New("username is invalid")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidPasscode    = errors.New("invalid admin passcode")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrPhotoNotFound      = errors.New("photo not found")
	ErrPhotoLimit         = errors.New("photo limit reached for this day")
	ErrNoFeatured         = errors.New("no featured creator configured")
)
