package api

import (
	stderrors "errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/vytor/vokabox/internal/errors"
	"github.com/vytor/vokabox/internal/importer"
	"github.com/vytor/vokabox/internal/logger"
	"github.com/vytor/vokabox/internal/models"
	"github.com/vytor/vokabox/internal/worker"
)

type createLearnerRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	ClassName   string `json:"class_name"`
	Admin       bool   `json:"admin"`
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.DashboardService.Overview(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, overview)
}

func (s *Server) handleLearnerRow(w http.ResponseWriter, r *http.Request) {
	learnerID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	row, err := s.DashboardService.Learner(r.Context(), learnerID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, row)
}

func (s *Server) handleCreateLearner(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req createLearnerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	learner, err := s.LearnerService.CreateLearner(r.Context(), models.Learner{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		ClassName:   req.ClassName,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	if req.Admin {
		if err := s.LearnerService.SetAdmin(r.Context(), learner.ID, true); err != nil {
			handleError(w, r, err)
			return
		}
	}
	log.Info("learner created: id=%d, username=%s, admin=%t", learner.ID, learner.Username, req.Admin)
	writeJSON(w, r, http.StatusCreated, learner)
}

// handleImport stages the uploaded file and queues the import. The job
// removes the staged copy when it finishes.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	limit := s.MaxUploadBytes
	if limit <= 0 {
		limit = DefaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid multipart form"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("file field required"))
		return
	}
	defer file.Close()

	if !importer.Supported(header.Filename) {
		handleError(w, r, errors.NewValidationError("file", "must be .csv, .xlsx or .xlsm"))
		return
	}

	path, err := s.stageUpload(file, header.Filename)
	if err != nil {
		log.Error("failed to stage upload: %v", err)
		handleError(w, r, errors.NewInternalError(err))
		return
	}

	opts := models.ImportOptions{
		Sheet:        strings.TrimSpace(r.FormValue("sheet")),
		RemoveSource: true,
	}
	if err := s.JobQueue.EnqueueImport(path, opts); err != nil {
		_ = os.Remove(path)
		handleError(w, r, queueError(err))
		return
	}

	log.Info("import queued: file=%s, size=%d", header.Filename, header.Size)
	writeJSON(w, r, http.StatusAccepted, map[string]any{
		"status": "queued",
		"file":   header.Filename,
	})
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	if err := s.JobQueue.EnqueueSweep(); err != nil {
		handleError(w, r, queueError(err))
		return
	}
	writeJSON(w, r, http.StatusAccepted, map[string]any{"status": "queued"})
}

func (s *Server) stageUpload(src io.Reader, name string) (string, error) {
	dir := s.UploadDir
	if dir == "" {
		dir = os.TempDir()
	}
	dst, err := os.CreateTemp(dir, "import-*"+strings.ToLower(filepath.Ext(name)))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return dst.Name(), nil
}

func queueError(err error) error {
	if stderrors.Is(err, worker.ErrQueueFull) || stderrors.Is(err, worker.ErrPoolStopped) {
		return errors.NewUnavailableError("job queue unavailable, try again later", err)
	}
	return errors.NewInternalError(err)
}
