package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/shift-scheduler/internal/export"
	"github.com/noah-isme/shift-scheduler/internal/scheduler"
	"github.com/noah-isme/shift-scheduler/pkg/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestExportHandlerRejectsInvalidPayload(t *testing.T) {
	handler := NewExportHandler(export.NewScheduleExporter(), nil, nil)
	r := gin.New()
	r.POST("/export", handler.Export)

	req := httptest.NewRequest(http.MethodPost, "/export", bytes.NewBufferString(`{"format":"tsv"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportHandlerRejectsInfeasibleOutput(t *testing.T) {
	handler := NewExportHandler(export.NewScheduleExporter(), nil, nil)
	r := gin.New()
	r.POST("/export", handler.Export)

	body := `{"format":"csv","output":{"peopleOrder":[],"matrix":[],"summary":{"shortage":[],"overstaff":[],"totals":{},"diagnostics":{"demand":{}}},"infeasible":true}}`
	req := httptest.NewRequest(http.MethodPost, "/export", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportHandlerPersistsAndServesSignedDownload(t *testing.T) {
	localStorage, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)

	handler := NewExportHandler(export.NewScheduleExporter(), localStorage, signer)
	r := gin.New()
	r.POST("/export", handler.Export)
	r.GET("/export/download/:token", handler.Download)

	out := scheduler.Output{
		PeopleOrder: []string{"alice"},
		Matrix:      []scheduler.MatrixDay{{Date: 1, Shifts: map[string]string{"alice": "DA"}}},
	}
	payload, err := json.Marshal(map[string]interface{}{"format": "csv", "output": out})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/export", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var link exportLinkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &link))
	require.NotEmpty(t, link.URL)

	downloadReq := httptest.NewRequest(http.MethodGet, link.URL, nil)
	downloadW := httptest.NewRecorder()
	r.ServeHTTP(downloadW, downloadReq)

	assert.Equal(t, http.StatusOK, downloadW.Code)
	assert.Contains(t, downloadW.Body.String(), "alice")
}

func TestExportHandlerDownloadDisabledWithoutStorage(t *testing.T) {
	handler := NewExportHandler(export.NewScheduleExporter(), nil, nil)
	r := gin.New()
	r.GET("/export/download/:token", handler.Download)

	req := httptest.NewRequest(http.MethodGet, "/export/download/anything", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
