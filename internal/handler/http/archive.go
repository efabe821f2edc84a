package http

import (
	"io"
	"mime"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"

	"github.com/sdgtech/payroll-backend-go/internal/handler/http/response"
	"github.com/sdgtech/payroll-backend-go/internal/pkg/storage"
)

type ArchiveHandler interface {
	// GetFile streams an archived document such as a stored payslip
	GetFile(w http.ResponseWriter, r *http.Request)
}

type archiveHandlerImpl struct {
	storage storage.FileStorage
}

func NewArchiveHandler(storage storage.FileStorage) ArchiveHandler {
	return &archiveHandlerImpl{storage: storage}
}

// GetFile handles GET /archive/*
func (h *archiveHandlerImpl) GetFile(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")

	file, err := h.storage.Download(r.Context(), key)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer file.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, file)
}
