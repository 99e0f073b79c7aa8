// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-offering-publisher/internal/utils"
)

func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	if _, err := utils.WriteJSON(w, h.build, http.StatusOK); err != nil {
		h.logger.Err(err).Msg("error writing version response")
	}
}
