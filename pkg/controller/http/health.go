package http

import (
	"net/http"

	"github.com/m-mizutani/dirhook/pkg/domain/model"
	"github.com/m-mizutani/dirhook/pkg/domain/types"
)

// healthHandler answers liveness checks with the served project name
func healthHandler(project string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(r.Context(), w, http.StatusOK, model.NewHealthStatus(types.Version, project))
	}
}
