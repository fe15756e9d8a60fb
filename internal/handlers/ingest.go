package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/versuslog/stats-api/internal/models"
)

// IngestMatches handles POST /api/v1/ingest/matches
// @Summary Ingest Match Records
// @Description Accepts a JSON array or newline-separated JSON match records from replay clients
// @Tags Ingestion
// @Accept json
// @Produce json
// @Security ClientToken
// @Param body body []models.MatchUpload true "Match records"
// @Success 202 {object} models.IngestResponse "Accepted"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /ingest/matches [post]
func (h *Handler) IngestMatches(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	defer r.Body.Close()

	clientID := clientIDFromContext(r.Context())

	uploads, rejected, ok := h.decodeUploads(body)
	if !ok {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	accepted := 0
	for i := range uploads {
		upload := &uploads[i]

		if err := h.validator.Struct(upload); err != nil {
			h.logger.Debugw("rejecting invalid match upload",
				"match_id", upload.MatchID, "error", err)
			rejected++
			continue
		}
		if upload.MatchID == "" {
			upload.MatchID = uuid.New().String()
		}

		if !h.pool.Enqueue(upload.Record(), clientID) {
			h.logger.Warnw("ingest queue full, rejecting rest of upload",
				"accepted", accepted)
			rejected += len(uploads) - i
			break
		}
		accepted++
	}

	if rejected > 0 {
		h.logger.Infow("match upload partially accepted",
			"client_id", clientID, "accepted", accepted, "rejected", rejected)
	}

	h.jsonResponse(w, http.StatusAccepted, models.IngestResponse{
		Status:   "accepted",
		Accepted: accepted,
		Rejected: rejected,
	})
}

// decodeUploads parses the request payload. A body starting with '[' is
// one JSON array and fails as a whole when it does not decode; anything
// else is treated as newline-separated JSON objects where an
// undecodable line rejects that line only. Records past the batch cap
// are counted as rejected.
func (h *Handler) decodeUploads(body []byte) (uploads []models.MatchUpload, rejected int, ok bool) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil, 0, true
	}

	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal([]byte(trimmed), &uploads); err != nil {
			return nil, 0, false
		}
		if len(uploads) > h.maxBatchCount {
			rejected = len(uploads) - h.maxBatchCount
			uploads = uploads[:h.maxBatchCount]
		}
		return uploads, rejected, true
	}

	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(uploads) >= h.maxBatchCount {
			rejected++
			continue
		}

		var upload models.MatchUpload
		if err := json.Unmarshal([]byte(line), &upload); err != nil {
			h.logger.Debugw("rejecting undecodable upload line", "error", err)
			rejected++
			continue
		}
		uploads = append(uploads, upload)
	}
	return uploads, rejected, true
}
