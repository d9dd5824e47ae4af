package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ExportFilename is the attachment name of GET /data/export.
const ExportFilename = "scoreboard-data.json"

// TransferHandler serves /data.
type TransferHandler struct {
	svc            TransferService
	maxImportBytes int64
}

// NewTransferHandler creates a new transfer handler.
func NewTransferHandler(svc TransferService, maxImportBytes int64) *TransferHandler {
	if maxImportBytes <= 0 {
		maxImportBytes = defaultMaxImportBytes
	}
	return &TransferHandler{svc: svc, maxImportBytes: maxImportBytes}
}

// HandleExport handles GET /data/export.
func (h *TransferHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	raw, err := h.svc.Export(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ExportFilename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// HandleImport handles POST /data/import.
func (h *TransferHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxImportBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, fmt.Errorf("%w: snapshot exceeds %d bytes", ErrPayloadTooLarge, tooLarge.Limit))
			return
		}
		writeError(w, r, fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if err := h.svc.Import(r.Context(), raw); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Data imported successfully"})
}

// HandleReset handles DELETE /data.
func (h *TransferHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reset(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "All data cleared"})
}
