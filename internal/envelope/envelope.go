// Package envelope defines the wire envelope every platform API response
// carries, real backend and mock gateway alike: {code, message, data} with
// code 0 meaning success, and {records, total} for paginated data.
package envelope

import "encoding/json"

const CodeOK = 0

// Business error codes mirror the HTTP status the backend would have used.
const (
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeTooMany      = 429
)

type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Raw is the decode-side counterpart of Envelope: data is kept opaque so
// callers can unmarshal it into their own type after checking the code.
type Raw struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Page wraps a result page on the encode side.
type Page struct {
	Records any `json:"records"`
	Total   int `json:"total"`
}

// PageOf is the typed decode-side page.
type PageOf[T any] struct {
	Records []T `json:"records"`
	Total   int `json:"total"`
}

func OK(data any) Envelope {
	return Envelope{Code: CodeOK, Message: "success", Data: data}
}

func Paged(records any, total int) Envelope {
	return OK(Page{Records: records, Total: total})
}

func Fail(code int, message string) Envelope {
	return Envelope{Code: code, Message: message}
}
