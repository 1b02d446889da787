package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// newTodayRequestContext собирает gin-контекст запроса сегодняшнего ответа
// с уже провалидированным surveyID в контексте
func newTodayRequestContext(t *testing.T, query string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/surveys/s/responses/today"+query, nil)
	c.Set("surveyID", "5b3b2f9e-8f0a-4f6e-9a94-0d4c5f6a7b8c")
	return c, w
}

func TestResponseHandler_GetTodayResponse_MissingPlayerID(t *testing.T) {
	h := NewResponseHandler(nil)
	c, w := newTodayRequestContext(t, "")

	h.GetTodayResponse(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "playerId")
}

func TestResponseHandler_GetTodayResponse_MalformedPlayerID(t *testing.T) {
	h := NewResponseHandler(nil)
	// Не-UUID значение должно отсекаться до похода в базу
	c, w := newTodayRequestContext(t, "?playerId=not-a-uuid")

	h.GetTodayResponse(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid playerId")
}
