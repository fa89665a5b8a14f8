package handlers

import (
	"io"
	"net/http"
	"strconv"

	"PolicyDesk/internal/config"
	"PolicyDesk/internal/service"

	"go.uber.org/zap"
)

const maxUploadMemory = 32 << 20

// DocumentHandler - коллекции документов и загрузка.
type DocumentHandler struct {
	Service *service.DocumentService
	Logger  *zap.SugaredLogger
	Config  *config.Config
}

func NewDocumentHandler(svc *service.DocumentService, logger *zap.SugaredLogger, cfg *config.Config) *DocumentHandler {
	return &DocumentHandler{Service: svc, Logger: logger, Config: cfg}
}

type collectionTarget struct {
	DBName   string `json:"db_name"`
	Filename string `json:"filename"`
	UserID   int64  `json:"user_id"`
}

func (h *DocumentHandler) Collections(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Collections(r.Context(), queryInt(r, "user_id"))
	if err != nil {
		fail(w, h.Logger, "Collections", err, "Database error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"collections": list})
}

// Upload принимает multipart: db_name, user_id и один или несколько files.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		h.Logger.Warnw("Upload: invalid multipart form", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	userID, _ := strconv.ParseInt(r.FormValue("user_id"), 10, 64)

	var files []service.UploadFile
	for _, fh := range r.MultipartForm.File["files"] {
		f, err := fh.Open()
		if err != nil {
			h.Logger.Warnw("Upload: failed to open part", "file", fh.Filename, "error", err)
			continue
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			h.Logger.Warnw("Upload: failed to read part", "file", fh.Filename, "error", err)
			continue
		}
		files = append(files, service.UploadFile{Name: fh.Filename, Data: data})
	}

	msg, name, err := h.Service.Upload(r.Context(), userID, r.FormValue("db_name"), files)
	if err != nil {
		fail(w, h.Logger, "Upload", err, "Upload failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msg, "collection_name": name})
}

func (h *DocumentHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	var t collectionTarget
	if !decode(w, r, &t) {
		return
	}
	msg, err := h.Service.DeleteFile(r.Context(), t.UserID, t.DBName, t.Filename)
	if err != nil {
		fail(w, h.Logger, "DeleteFile", err, "Failed to delete file")
		return
	}
	writeMessage(w, http.StatusOK, msg)
}

func (h *DocumentHandler) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	var t collectionTarget
	if !decode(w, r, &t) {
		return
	}
	msg, err := h.Service.DeleteCollection(r.Context(), t.UserID, t.DBName)
	if err != nil {
		fail(w, h.Logger, "DeleteCollection", err, "Failed to delete collection")
		return
	}
	writeMessage(w, http.StatusOK, msg)
}
