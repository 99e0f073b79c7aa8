// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-offering-publisher/internal/utils"
)

type healthResponse struct {
	Status string `json:"status"`
}

// health answers 503 until the process reaches Ready.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	resp, code := healthResponse{Status: "ready"}, http.StatusOK
	if !h.ready.Load() {
		resp, code = healthResponse{Status: "starting"}, http.StatusServiceUnavailable
	}

	if _, err := utils.WriteJSON(w, resp, code); err != nil {
		h.logger.Err(err).Msg("error writing health response")
	}
}
