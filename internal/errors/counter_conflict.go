package errors

import "net/http"

var ErrCounterConflict = &Exception{
	Message:    "identifier counter contention, retry the operation",
	StatusCode: http.StatusConflict,
}
