package docstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors matched through *Error.
var (
	ErrNotFound      = errors.New("docstore: document not found")
	ErrAlreadyExists = errors.New("docstore: document already exists")
)

// Op names used for error context and metric labels.
const (
	OpGet      = "get"
	OpList     = "list"
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpExists   = "exists"
	OpRunQuery = "run_query"
)

// Error is a non-2xx answer from the store.
type Error struct {
	Op      string
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("docstore %s: status %d: %s", e.Op, e.Status, e.Message)
}

// Unwrap lets errors.Is match ErrNotFound and ErrAlreadyExists.
func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrAlreadyExists
	default:
		return nil
	}
}

type errorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// newError builds an Error from a failed response body. The store reports
// errors as {"error":{...}}; runQuery wraps the same object in an array.
func newError(op string, status int, body []byte) *Error {
	msg := extractMessage(body)
	if msg == "" {
		msg = fmt.Sprintf("%s failed with status %d", op, status)
	}
	return &Error{Op: op, Status: status, Message: msg}
}

func extractMessage(body []byte) string {
	var single errorBody
	if json.Unmarshal(body, &single) == nil && single.Error.Message != "" {
		return single.Error.Message
	}
	var list []errorBody
	if json.Unmarshal(body, &list) == nil {
		for _, e := range list {
			if e.Error.Message != "" {
				return e.Error.Message
			}
		}
	}
	return ""
}
