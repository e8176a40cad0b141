package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d, body: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Kind classifies a backend failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindTimeout
	KindServer
	KindNotFound
	KindRequest
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindServer:
		return "server"
	case KindNotFound:
		return "not_found"
	case KindRequest:
		return "request"
	default:
		return "unknown"
	}
}

// Classify maps an error returned by the client to a Kind.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusNotFound:
			return KindNotFound
		case apiErr.StatusCode == http.StatusGatewayTimeout || apiErr.StatusCode == http.StatusRequestTimeout:
			return KindTimeout
		case apiErr.StatusCode >= 500:
			return KindServer
		default:
			return KindRequest
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return KindTimeout
		}
		return KindNetwork
	}
	return KindUnknown
}

// UserMessage returns a short sentence suitable for end users.
func UserMessage(err error) string {
	switch Classify(err) {
	case KindNetwork:
		return "Unable to reach the server. Check that the backend is running."
	case KindTimeout:
		return "The server took too long to respond. Please try again."
	case KindServer:
		return "The server encountered an error. Please try again later."
	case KindNotFound:
		return "The requested item was not found."
	case KindRequest:
		return "The request was rejected by the server."
	default:
		return "An unexpected error occurred."
	}
}
