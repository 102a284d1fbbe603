package domain

import "errors"

var (
	// ErrMissingInput means one of the two images was not supplied.
	ErrMissingInput = errors.New("Both outfit and person images are required")

	// ErrNoImageData means the model answered but no part carried inline image data.
	ErrNoImageData = errors.New("No image data received from Vertex AI")
)

// UpstreamError is any failure of the model call itself: network, auth,
// quota or a response that could not be parsed. Message and Details are
// returned to the caller as is.
type UpstreamError struct {
	Message string
	Details any
	Err     error
}

func (e *UpstreamError) Error() string {
	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
