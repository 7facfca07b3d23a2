package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/zaincode21/Truck-management-backend-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func setupIdempotencyRouter() (*gin.Engine, redismock.ClientMock) {
	gin.SetMode(gin.TestMode)

	client, mock := redismock.NewClientMock()
	r := gin.New()
	r.POST("/payroll/process-month-end", middleware.Idempotency(client), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, mock
}

func TestIdempotency_NoKeyPassesThrough(t *testing.T) {
	r, mock := setupIdempotencyRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payroll/process-month-end", strings.NewReader(`{}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ReplaysCachedResponse(t *testing.T) {
	r, mock := setupIdempotencyRouter()

	cacheKey := "idemp:/payroll/process-month-end::key-1"
	mock.ExpectGet(cacheKey).SetVal(`{"message":"payroll period processed"}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payroll/process-month-end", strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", "key-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "payroll period processed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ConcurrentDuplicateRejected(t *testing.T) {
	r, mock := setupIdempotencyRouter()

	cacheKey := "idemp:/payroll/process-month-end::key-2"
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payroll/process-month-end", strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", "key-2")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "PROCESSING")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_FirstRequestAcquiresLock(t *testing.T) {
	r, mock := setupIdempotencyRouter()

	cacheKey := "idemp:/payroll/process-month-end::key-3"
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payroll/process-month-end", strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", "key-3")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
