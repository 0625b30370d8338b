package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// pathAddress витягує та валідує address з path. Повертає lowercased
// адресу або порожній рядок після відправки 400.
func pathAddress(w http.ResponseWriter, r *http.Request) string {
	address := mux.Vars(r)["address"]
	if !common.IsHexAddress(address) {
		respondError(w, http.StatusBadRequest, "Invalid address format")
		return ""
	}
	return strings.ToLower(address)
}
