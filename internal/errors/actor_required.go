package errors

import "net/http"

var ErrActorRequired = &Exception{
	Message:    "actor could not be resolved",
	StatusCode: http.StatusUnauthorized,
}
