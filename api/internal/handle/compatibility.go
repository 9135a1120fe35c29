package handle

import (
	"encoding/json"
	"errors"
	"net/http"

	"compat-bot/api/internal/compat"
)

const maxBodyBytes = 64 << 10

// Compatibility — POST /api/compatibility.
func (h *Handle) Compatibility(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}
	reqID := RequestID(r.Context())

	var req compat.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		h.log.Warn("bad request body", map[string]interface{}{
			"request_id": reqID,
			"error":      err.Error(),
		})
		writeError(w, http.StatusBadRequest, "Некорректный запрос")
		return
	}

	res, err := h.calc.Calculate(r.Context(), req)
	if err != nil {
		var ve *compat.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Message)
			return
		}
		h.log.WithError(err).Error("compatibility request failed", map[string]interface{}{
			"request_id": reqID,
			"tg_user":    req.TelegramUserID,
		})
		writeError(w, http.StatusBadGateway, compat.PublicMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, res)
}
