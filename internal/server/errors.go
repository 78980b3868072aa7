package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"tutti-frutti/internal/store"
)

type errKind int

const (
	kindValidation errKind = iota
	kindNotFound
	kindForbidden
	kindPrecondition
	kindStore
)

// opError carries a user-facing reason plus the failure class the handlers
// map to a status code. The message is the whole contract; no structured
// codes cross the boundary.
type opError struct {
	kind errKind
	msg  string
	err  error
}

func (e *opError) Error() string {
	return e.msg
}

func (e *opError) Unwrap() error {
	return e.err
}

func validationError(format string, args ...any) error {
	return &opError{kind: kindValidation, msg: fmt.Sprintf(format, args...)}
}

func notFoundError(format string, args ...any) error {
	return &opError{kind: kindNotFound, msg: fmt.Sprintf(format, args...)}
}

func forbiddenError(format string, args ...any) error {
	return &opError{kind: kindForbidden, msg: fmt.Sprintf(format, args...)}
}

func preconditionError(format string, args ...any) error {
	return &opError{kind: kindPrecondition, msg: fmt.Sprintf(format, args...)}
}

func storeError(msg string, err error) error {
	return &opError{kind: kindStore, msg: msg, err: err}
}

// storeFailure converts a raw store error, keeping missing-row reads as not
// found and everything else as a persistence failure.
func storeFailure(msg string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return notFoundError("%s", msg)
	}
	return storeError(msg, err)
}

func errorKind(err error) (errKind, bool) {
	var op *opError
	if errors.As(err, &op) {
		return op.kind, true
	}
	return 0, false
}

func readJSON(body io.Reader, dest any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

func writeOpError(w http.ResponseWriter, err error) {
	kind, ok := errorKind(err)
	if !ok {
		log.Printf("unclassified error error=%v", err)
		writeError(w, http.StatusInternalServerError, "could not complete the request")
		return
	}
	switch kind {
	case kindValidation:
		writeError(w, http.StatusBadRequest, err.Error())
	case kindNotFound:
		writeError(w, http.StatusNotFound, err.Error())
	case kindForbidden:
		writeError(w, http.StatusForbidden, err.Error())
	case kindPrecondition:
		writeError(w, http.StatusConflict, err.Error())
	default:
		var op *opError
		if errors.As(err, &op) && op.err != nil {
			log.Printf("store error error=%v", op.err)
		}
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
