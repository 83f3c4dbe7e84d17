package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// pathID parses the {id} route parameter. On failure it writes a 422
// response and returns false.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "id must be an integer")
		return 0, false
	}
	return id, true
}

// requireUser returns the authenticated user's id, writing a 401 when the
// route was mounted without RequireAuth.
func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeUnauthorized(w)
		return 0, false
	}
	return user.ID, true
}
