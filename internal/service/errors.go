package service

import "errors"

var (
	// ErrEmailRequired is returned when a user is created without an email
	ErrEmailRequired = errors.New("user must have an email address")

	// ErrUserExists is returned when the email is already registered
	ErrUserExists = errors.New("user already exists")

	// ErrInvalidCredentials is returned for any login failure. Unknown
	// account and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAttributeNotFound is returned when a recipe references a tag or
	// ingredient that does not exist or belongs to another user
	ErrAttributeNotFound = errors.New("tag or ingredient not found")

	// ErrNotAnImage is returned when an uploaded payload is not an image
	ErrNotAnImage = errors.New("uploaded file is not an image")

	// ErrImageStoreDisabled is returned when no image storage backend is
	// configured
	ErrImageStoreDisabled = errors.New("image storage is not configured")
)
