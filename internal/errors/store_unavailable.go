package errors

import "net/http"

var ErrStoreUnavailable = &Exception{
	Message:    "backing store unavailable, retry later",
	StatusCode: http.StatusServiceUnavailable,
}
