package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GGP1/pinpoint/internal/bufferpool"
	"github.com/GGP1/pinpoint/internal/cache"
	"github.com/GGP1/pinpoint/internal/httperr"
)

// Performance optimizations:
//
// • w.Write(buf.Bytes()) is slightly faster than io.Copy(w, buf) as this last consumes some bytes until it reaches buf.WriteTo().
// • JSON Encoder.Encode uses ~80 less B/op, 1 less alloc/op and is ~8 ns/op faster than json.Marshal.
// • Setting headers manually is ~32% faster than using the Set method (which converts keys to MIME type).

// Header keys must be canonical: the first letter and any letter
// following a hyphen must be upper case; the rest must be lowercase.
// For example, the canonical key for "accept-encoding" is "Accept-Encoding".
const contentType = "Content-Type"

type errResponse struct {
	Status int    `json:"status"`
	Err    string `json:"error"`
}

type msgResponse struct {
	Status  int         `json:"status"`
	Message interface{} `json:"message"`
}

// EncodedJSON writes a response from a buffer with json encoded content.
//
// The status is predefined as 200 (OK).
func EncodedJSON(w http.ResponseWriter, buf []byte) {
	w.Header()[contentType] = []string{"application/json; charset=UTF-8"}
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(buf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Error is the function used to send error responses.
//
// If the error carries its own status code it takes precedence over the one
// received.
func Error(w http.ResponseWriter, status int, err error) {
	var httpErr *httperr.Err
	if errors.As(err, &httpErr) {
		status = httpErr.Status()
	}
	JSON(w, status, errResponse{
		Status: status,
		Err:    err.Error(),
	})
}

// NoContent writes a response with no body.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// JSON is the function used to send JSON responses.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	buf := bufferpool.Get()

	if err := json.NewEncoder(buf).Encode(v); err != nil {
		bufferpool.Put(buf)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Save a few bytes allocated by w.Header().Set() to convert header keys to a canonical format
	w.Header()[contentType] = []string{"application/json; charset=UTF-8"}
	w.WriteHeader(status)

	if _, err := w.Write(buf.Bytes()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
	bufferpool.Put(buf)
}

// JSONAndCache works just like JSON but saves the encoding of v to the cache
// before writing the response.
//
// The status is always 200 (OK).
func JSONAndCache(c cache.Client, w http.ResponseWriter, key string, v interface{}) {
	buf := bufferpool.Get()

	if err := json.NewEncoder(buf).Encode(v); err != nil {
		bufferpool.Put(buf)
		Error(w, http.StatusInternalServerError, err)
		return
	}

	value := make([]byte, buf.Len())
	copy(value, buf.Bytes())
	bufferpool.Put(buf)

	if err := c.Set(key, value); err != nil {
		Error(w, http.StatusInternalServerError, err)
		return
	}

	EncodedJSON(w, value)
}

// JSONMessage is the function used to send JSON formatted message responses.
func JSONMessage(w http.ResponseWriter, status int, message interface{}) {
	JSON(w, status, msgResponse{
		Status:  status,
		Message: message,
	})
}
