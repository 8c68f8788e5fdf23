package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/shift-scheduler/internal/scheduler"
)

func TestSolveHandlerRejectsInvalidPayload(t *testing.T) {
	catalog, err := scheduler.NewCatalog([]scheduler.Shift{{Code: "DA", Start: 7, End: 15}})
	if err != nil {
		t.Fatal(err)
	}
	handler := NewSolveHandler(catalog, 5, nil, nil, nil, nil, nil)

	r := gin.New()
	r.POST("/solve", handler.Solve)

	req := httptest.NewRequest(http.MethodPost, "/solve", bytes.NewBufferString(`{"days":0}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
