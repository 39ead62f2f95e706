package public

import (
	"encoding/json"
	"net/http"

	"github.com/gomgom-ai/gomgom-services/app/internal/interfaces/http/common"
)

// translateHandler translates one chunk: a JSON string array in,
// translatedTexts of the same length out.
func (h *Handler) translateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var texts []string
		if err := json.NewDecoder(r.Body).Decode(&texts); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "문자열 배열이 필요합니다"})
			return
		}

		translated := h.translations.TranslateAll(r.Context(), texts)
		common.WriteJSON(h.logger, w, http.StatusOK, map[string][]string{"translatedTexts": translated})
	}
}
