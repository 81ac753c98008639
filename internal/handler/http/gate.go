package http

import (
	"net/http"

	"github.com/myseetara-source/erp-seetara-sub007/internal/utils"
	"github.com/myseetara-source/erp-seetara-sub007/models"
)

// verifyPassword is the secure-action gate. A wrong password is a 200 with
// valid=false; only an exhausted attempt budget produces an error status.
func (h *Handler) verifyPassword(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.VerifyPasswordRequest
	if err = utils.ReadJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.services.GateService.VerifyPassword(r.Context(), principal.UserID, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, result, http.StatusOK)
}
