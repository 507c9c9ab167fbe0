package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrConflict  = errors.New("resource already exists")
	ErrForbidden = errors.New("forbidden")

	// Content errors
	ErrSubjectNotFound = errors.New("subject not found")
	ErrChapterNotFound = errors.New("chapter not found")
	ErrTopicNotFound   = errors.New("topic not found")
	ErrVersionNotFound = errors.New("version not found")
	ErrSlugTaken       = errors.New("slug already in use")

	// Workflow errors
	ErrInvalidTransition = errors.New("invalid status transition")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
)
