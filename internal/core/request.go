// AngelaMos | 2026
// request.go

package core

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

// DecodeJSON reads the request body into dst and validates it. On failure
// it writes the 400 response and returns false.
func DecodeJSON(
	w http.ResponseWriter,
	r *http.Request,
	v *validator.Validate,
	dst any,
) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		BadRequest(w, "Corpo da requisição inválido")
		return false
	}

	if err := v.Struct(dst); err != nil {
		ValidationFailed(w, err)
		return false
	}

	return true
}

// PathObjectID returns the named URL parameter when it is a well-formed
// record id. Otherwise it writes 400 "ID inválido" and returns false, before
// any store access happens.
func PathObjectID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := chi.URLParam(r, name)
	if !IsObjectID(id) {
		InvalidID(w)
		return "", false
	}
	return id, true
}
