package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"projectpulse/internal/model"
)

type fakeFeedBuilder struct {
	entries   []model.ActivityEntry
	err       error
	lastScope *int
	lastLimit int
}

func (f *fakeFeedBuilder) BuildFeed(_ context.Context, projectID *int, limit int) ([]model.ActivityEntry, error) {
	f.lastScope = projectID
	f.lastLimit = limit
	return f.entries, f.err
}

func activityTestRouter(feed *fakeFeedBuilder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewActivityHandler(feed, zap.NewNop())
	r := gin.New()
	r.GET("/activity", h.GetActivity)
	return r
}

func TestGetActivity_Unscoped(t *testing.T) {
	feed := &fakeFeedBuilder{entries: []model.ActivityEntry{
		{ID: 1, Type: model.ActivityCheckin, Title: "Weekly Check-in by Alice", CreatedAt: time.Now()},
	}}
	r := activityTestRouter(feed)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/activity", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, feed.lastScope)
	assert.Equal(t, 0, feed.lastLimit)
	assert.Contains(t, w.Body.String(), "Weekly Check-in by Alice")
}

func TestGetActivity_ScopedWithLimit(t *testing.T) {
	feed := &fakeFeedBuilder{}
	r := activityTestRouter(feed)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/activity?projectId=7&limit=5", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, feed.lastScope)
	assert.Equal(t, 7, *feed.lastScope)
	assert.Equal(t, 5, feed.lastLimit)
}

func TestGetActivity_EmptyFeedIsAnArray(t *testing.T) {
	r := activityTestRouter(&fakeFeedBuilder{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/activity", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"activities":[]`)
}

func TestGetActivity_MalformedProjectID(t *testing.T) {
	r := activityTestRouter(&fakeFeedBuilder{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/activity?projectId=abc", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid projectId")
}

func TestGetActivity_MalformedLimit(t *testing.T) {
	r := activityTestRouter(&fakeFeedBuilder{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/activity?limit=many", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid limit")
}

func TestGetActivity_BuilderFailure(t *testing.T) {
	r := activityTestRouter(&fakeFeedBuilder{err: assert.AnError})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/activity", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to fetch activity")
}
