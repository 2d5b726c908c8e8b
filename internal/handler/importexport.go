package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/paolobenve/wanderlust/internal/domain"
)

// maxImportSize bounds an uploaded itinerary file.
const maxImportSize = 5 << 20

// handleImportTrip handles POST /trips/import. The file arrives either as a
// multipart form (field "file") or as the raw request body with the filename
// in the X-Filename header. The extension selects the parser; a file that no
// parser accepts is rejected as a whole.
func (s *Server) handleImportTrip(w http.ResponseWriter, r *http.Request) {
	content, filename, err := readImportFile(r)
	if err != nil {
		requestError(w, err.Error())
		return
	}

	created, err := s.trips.ImportTrip(r.Context(), content, filename)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrImportFormat):
			writeError(w, http.StatusUnprocessableEntity, "import_error", unwrapMessage(err))
		case errors.Is(err, domain.ErrStoreWrite):
			saveFailed(w)
		default:
			writeError(w, http.StatusInternalServerError, "internal", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleExportTrip handles GET /trips/{tripID}/export. The response is the
// trip as a standalone JSON download.
func (s *Server) handleExportTrip(w http.ResponseWriter, r *http.Request) {
	filename, data, err := s.trips.ExportTrip(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		notFound(w, "trip not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// readImportFile extracts the upload from a multipart form when one is
// present, otherwise from the raw body.
func readImportFile(r *http.Request) ([]byte, string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxImportSize); err != nil {
			return nil, "", errors.New("invalid multipart form")
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, "", errors.New(`multipart form has no "file" field`)
		}
		defer file.Close()

		content, err := io.ReadAll(io.LimitReader(file, maxImportSize))
		if err != nil {
			return nil, "", errors.New("reading upload failed")
		}
		return content, header.Filename, nil
	}

	content, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		return nil, "", errors.New("reading request body failed")
	}
	filename := r.Header.Get("X-Filename")
	if filename == "" {
		filename = "import.json"
	}
	return content, filename, nil
}
