package rest

import (
	"encoding/json"
	"errors"
	"net/http"
)

type Responder interface {
	WithJSON(http.ResponseWriter, int, interface{})
	WithError(http.ResponseWriter, int, error)
	WithMessage(http.ResponseWriter, int, string)
}

type encoderFunc func(*json.Encoder) *json.Encoder

type responder struct {
	encoderOptions encoderFunc
}

var (
	pretty  Responder
	compact Responder
)

func init() {
	pretty = responder{func(encoder *json.Encoder) *json.Encoder {
		encoder.SetIndent("", "  ")
		return encoder
	}}
	compact = responder{func(e *json.Encoder) *json.Encoder { return e }}
}

func Respond(r *http.Request) Responder {
	if r.URL.Query().Get("pretty") == "true" {
		return pretty
	}
	return compact
}

func (r responder) WithError(w http.ResponseWriter, status int, err error) {
	r.WithJSON(w, status, map[string]string{"error": err.Error()})
}

func (r responder) WithMessage(w http.ResponseWriter, status int, msg string) {
	r.WithError(w, status, errors.New(msg))
}

func (r responder) WithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := r.encoderOptions(json.NewEncoder(w))
	encoder.SetEscapeHTML(false)
	encoder.Encode(payload)
}
