package apperrors

import "errors"

var (
	// ErrInvalidState marks a lifecycle method called out of order. Fatal to
	// the call, never to the process.
	ErrInvalidState = errors.New("invalid state")

	// ErrAudioUnavailable disables the audio channel for the whole session.
	ErrAudioUnavailable = errors.New("audio unavailable")

	// ErrDecode marks a corrupt or unsupported image asset.
	ErrDecode = errors.New("decode failed")

	// ErrStaleHandle marks a surface call against an already-deleted element.
	// Callers treat it as a successful no-op.
	ErrStaleHandle = errors.New("stale surface handle")
)
