package entity

import "errors"

var (
	// Client input errors
	ErrMissingFile      = errors.New("no GIF file uploaded")
	ErrMissingText      = errors.New("text is required")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrFileTooLarge     = errors.New("file too large")

	// Pipeline errors
	ErrRemoteUploadFailed = errors.New("remote upload failed")
	ErrLocalCleanupFailed = errors.New("local cleanup failed")
	ErrProcessingFailed   = errors.New("processing failed")
)
