package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/shift-scheduler/internal/export"
	"github.com/noah-isme/shift-scheduler/internal/scheduler"
	appErrors "github.com/noah-isme/shift-scheduler/pkg/errors"
	"github.com/noah-isme/shift-scheduler/pkg/middleware/requestid"
	"github.com/noah-isme/shift-scheduler/pkg/response"
	"github.com/noah-isme/shift-scheduler/pkg/storage"
)

// ExportHandler renders a previously solved Output as CSV or PDF. When a
// LocalStorage and SignedURLSigner are configured the rendered file is
// persisted to disk and a signed, time-limited download link is returned
// instead of streaming the bytes inline — the shape large monthly rosters
// need once they're too big to comfortably round-trip in one response.
type ExportHandler struct {
	exporter *export.ScheduleExporter
	storage  *storage.LocalStorage
	signer   *storage.SignedURLSigner
}

// NewExportHandler constructs an ExportHandler. storage and signer are
// optional (nil-safe); without them Export streams the rendered file
// directly in the response body.
func NewExportHandler(exporter *export.ScheduleExporter, localStorage *storage.LocalStorage, signer *storage.SignedURLSigner) *ExportHandler {
	return &ExportHandler{exporter: exporter, storage: localStorage, signer: signer}
}

// exportRequest wraps the solved Output plus the requested rendering format.
type exportRequest struct {
	Output scheduler.Output `json:"output"`
	Format string           `json:"format" binding:"required,oneof=csv pdf"`
}

// exportLinkResponse is returned when the rendered file was persisted to
// disk rather than streamed inline.
type exportLinkResponse struct {
	URL       string `json:"url"`
	Filename  string `json:"filename"`
	ExpiresAt string `json:"expiresAt"`
}

// Export godoc
// @Summary Render a solved schedule as CSV or PDF
// @Tags Export
// @Accept json
// @Produce octet-stream
// @Param payload body exportRequest true "Solved output and target format"
// @Success 200 {file} binary
// @Router /export [post]
func (h *ExportHandler) Export(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	format := export.Format(req.Format)
	body, contentType, err := h.exporter.Render(req.Output, format)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, err.Error()))
		return
	}

	filename := export.Filename(format)

	if h.storage != nil && h.signer != nil {
		jobID := requestid.Value(c)
		if jobID == "" {
			jobID = filename
		}
		// Signed tokens are dot-separated, so the job id must carry no dots.
		jobID = strings.ReplaceAll(jobID, ".", "-")
		if _, err := h.storage.Save(filename, body); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to persist export"))
			return
		}
		token, expiresAt, err := h.signer.Generate(jobID, filename)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to sign download link"))
			return
		}
		c.JSON(http.StatusOK, exportLinkResponse{
			URL:       "/export/download/" + token,
			Filename:  filename,
			ExpiresAt: expiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Data(http.StatusOK, contentType, body)
}

// Download godoc
// @Summary Download a previously rendered export by its signed token
// @Tags Export
// @Produce octet-stream
// @Param token path string true "Signed download token"
// @Success 200 {file} binary
// @Router /export/download/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	if h.storage == nil || h.signer == nil {
		response.Error(c, appErrors.New(appErrors.ErrNotFound.Code, http.StatusNotFound, "download links are not enabled"))
		return
	}

	token := c.Param("token")
	_, relPath, _, err := h.signer.Parse(token, false)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid or expired download link"))
		return
	}

	file, err := h.storage.Open(relPath)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrNotFound.Code, http.StatusNotFound, "export not found"))
		return
	}
	defer file.Close() //nolint:errcheck

	c.Header("Content-Disposition", "attachment; filename=\""+relPath+"\"")
	c.File(file.Name())
}
