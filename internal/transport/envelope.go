package transport

import (
	"encoding/json"
	"net/http"
)

// Code is the outcome marker of every response.
type Code string

const (
	CodeOk           Code = "Ok"
	CodeErr          Code = "Err"
	CodeUnauthorized Code = "Unauthorized"
)

// Response is the envelope shared by every endpoint. Data is null when an
// operation has no payload.
type Response struct {
	Code Code   `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data"`
}

// WriteOK writes a success envelope.
func WriteOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Code: CodeOk, Data: data})
}

// WriteError writes an error envelope with the given HTTP status.
func WriteError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Response{Code: CodeErr, Msg: msg})
}

// WriteMessage writes a payload-less envelope carrying msg. The code follows
// the HTTP status class.
func WriteMessage(w http.ResponseWriter, status int, msg string) {
	code := CodeOk
	if status >= http.StatusBadRequest {
		code = CodeErr
	}
	writeJSON(w, status, Response{Code: code, Msg: msg})
}

func writeJSON(w http.ResponseWriter, status int, payload Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
