package handler

import (
	"encoding/json"
	"net/http"

	"github.com/anasbendaikha-blip/pharmaplanning-sub003/internal/rules"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/validator"
)

// RulesLibraryHandler 法定规则库API
func RulesLibraryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sendJSON(w, rules.LibraryResponse{Library: rules.GetLibrary()})
}

// sendJSON 发送JSON响应
func sendJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

// sendJSONIssues 发送快照校验失败响应
func sendJSONIssues(w http.ResponseWriter, issues []validator.Issue) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   "Données du planning invalides",
		"issues":  issues,
	})
}

// sendJSONError 发送JSON错误响应
func sendJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
