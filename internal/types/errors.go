package types

import "errors"

// Domain specific errors for the itinerary pipeline.
var (
	ErrBadRequest       = errors.New("bad request")
	ErrNotFound         = errors.New("requested item not found")
	ErrUpstream         = errors.New("upstream service returned an error")
	ErrAllMirrorsFailed = errors.New("all upstream mirrors failed")
	ErrInsufficientData = errors.New("not enough classifiable activities")
)
