package rest

import (
	"encoding/json"
	"net/http"

	"github.com/rocketscienceinc/memorize-backend/internal/theme"
)

type ThemesHandler interface {
	ThemesHandler(w http.ResponseWriter, r *http.Request)
}

type themesHandler struct{}

func NewThemesHandler() ThemesHandler {
	return &themesHandler{}
}

// ThemesHandler lists the built-in themes a game can be dealt from.
func (that *themesHandler) ThemesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(theme.All()); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}
