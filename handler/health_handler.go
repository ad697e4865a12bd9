package handler

import (
	"encoding/json"
	"net/http"
)

// HealthCheck godoc
// @Summary      Service liveness probe
// @Description  Reports that the auth service is up and able to answer
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"service": "edu-platform-api",
		"status":  "ok",
	})
}
