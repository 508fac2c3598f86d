package auth

import (
	"net/http"
	"strconv"
	"time"
)

// ContentType is the fixed content type the trading API requires on every
// request.
const ContentType = "application/json; charset=utf-8"

// Request represents one outbound API call before signing. All fields are
// fixed at construction; the timestamp is part of the signed payload, so a
// request should be signed and dispatched promptly after it is built or
// the timestamp will skew from send time.
type Request struct {
	APIKey    string
	Path      string
	Method    string
	Body      string
	Timestamp int64
}

// NewRequest builds a request for the given call and stamps it with the
// current Unix time in seconds.
func NewRequest(apiKey, path, method, body string) Request {
	return Request{
		APIKey:    apiKey,
		Path:      path,
		Method:    method,
		Body:      body,
		Timestamp: time.Now().Unix(),
	}
}

// Validate checks the validity rules: API key, path, and method must be
// non-empty, and every method other than GET must carry a body.
func (r Request) Validate() error {
	if r.APIKey == "" {
		return &InvalidRequestError{Reason: "api key is required"}
	}
	if r.Path == "" {
		return &InvalidRequestError{Reason: "path is required"}
	}
	if r.Method == "" {
		return &InvalidRequestError{Reason: "method is required"}
	}
	if r.Method != http.MethodGet && r.Body == "" {
		return &InvalidRequestError{Reason: "body is required for non-GET methods"}
	}
	return nil
}

// Payload returns the exact byte sequence the signature is computed over:
// the API key, the decimal timestamp, the path, the method, and the body,
// concatenated in that order with no separators. The server rebuilds this
// string verbatim when verifying, so the ordering and the absence of
// delimiters are wire requirements.
func (r Request) Payload() []byte {
	return []byte(r.APIKey + strconv.FormatInt(r.Timestamp, 10) + r.Path + r.Method + r.Body)
}

// SignedRequest is a request with its signature attached. Values of this
// type are only produced by Sign, so a SignedRequest never exists in a
// partially signed state.
type SignedRequest struct {
	Request
	Signature string
}

// Headers returns the four headers the API requires on every call.
func (r SignedRequest) Headers() map[string]string {
	return map[string]string{
		"x-api-key":    r.APIKey,
		"x-timestamp":  strconv.FormatInt(r.Timestamp, 10),
		"x-signature":  r.Signature,
		"Content-Type": ContentType,
	}
}
