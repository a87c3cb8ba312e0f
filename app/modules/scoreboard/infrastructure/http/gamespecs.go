package scoreboardhttp

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// HandleListSpecs returns the latest version of every known gamespec.
func (h *Handlers) HandleListSpecs(w http.ResponseWriter, r *http.Request) {
	specs, err := h.specs.ListSpecs(r.Context())
	if err != nil {
		writeError(w, statusFor(err), "", err)
		return
	}
	writeJSON(w, http.StatusOK, specs)
}

// HandleGetSpec returns one gamespec, the latest version unless ?version=
// names one.
func (h *Handlers) HandleGetSpec(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	version := 0
	if v := r.URL.Query().Get("version"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "", fmt.Errorf("invalid version %q", v))
			return
		}
		version = n
	}
	spec, err := h.specs.GetSpec(r.Context(), name, version)
	if err != nil {
		writeError(w, statusFor(err), "", err)
		return
	}
	writeJSON(w, http.StatusOK, spec)
}
