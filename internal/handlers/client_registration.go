package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/versuslog/stats-api/internal/db"
	"github.com/versuslog/stats-api/internal/models"
)

// RegisterClient handles new upload client registration
// @Summary Register Client
// @Description Registers a replay upload client and returns its credentials
// @Tags Clients
// @Accept json
// @Produce json
// @Param body body models.RegisterClientRequest true "Client Info"
// @Success 200 {object} models.RegisterClientResponse "Client Credentials"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /clients/register [post]
func (h *Handler) RegisterClient(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Client name is required")
		return
	}

	// The plain token is returned exactly once; only its hash is stored.
	clientID := uuid.New().String()
	token := uuid.New().String()

	err := h.clients.Create(r.Context(), db.Client{
		ID:        clientID,
		Name:      req.Name,
		Platform:  req.Platform,
		Version:   req.Version,
		TokenHash: hashToken(token),
	})
	if err != nil {
		h.logger.Errorw("failed to register client", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to register client")
		return
	}

	h.logger.Infow("registered upload client", "client_id", clientID, "name", req.Name)

	h.jsonResponse(w, http.StatusOK, models.RegisterClientResponse{
		ClientID: clientID,
		Token:    token,
	})
}
