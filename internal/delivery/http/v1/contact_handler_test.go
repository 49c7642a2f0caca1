package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"contact-relay-backend/config"
	"contact-relay-backend/internal/delivery/http/response"
	v1 "contact-relay-backend/internal/delivery/http/v1"
	"contact-relay-backend/internal/domain"
	"contact-relay-backend/pkg/logger"
	"contact-relay-backend/pkg/mailer"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockContactUC struct {
	mock.Mock
}

func (m *MockContactUC) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	return m.Called(ctx, req).Error(0)
}

func newTestRouter(uc domain.ContactUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger.Init()
	return v1.NewRouter(v1.RouterDeps{
		ContactUC: uc,
		Config: &config.Config{
			FrontendURL:            "http://localhost:3000",
			RateLimitWindowSeconds: 60,
			RateLimitContactLimit:  1000, // keep the limiter out of the way
		},
	})
}

func postContact(t *testing.T, router *gin.Engine, body string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/send-email", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestSendEmailEndpoint(t *testing.T) {
	validBody := `{"name":"Jane Doe","email":"jane@example.com","message":"Hello"}`

	t.Run("successful submission returns 200", func(t *testing.T) {
		uc := new(MockContactUC)
		uc.On("SendContactMessage", mock.Anything, mock.Anything).Return(nil)
		router := newTestRouter(uc)

		w, resp := postContact(t, router, validBody)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Success)
		assert.Equal(t, "Your message has been sent successfully!", resp.Message)
		assert.NotEmpty(t, resp.RequestID)
		uc.AssertNumberOfCalls(t, "SendContactMessage", 1)
	})

	t.Run("validation failure returns 400 with ordered errors", func(t *testing.T) {
		uc := new(MockContactUC)
		uc.On("SendContactMessage", mock.Anything, mock.Anything).Return(&domain.ValidationError{
			Messages: []string{"Name is required", "Valid email is required", "Message is required"},
		})
		router := newTestRouter(uc)

		w, resp := postContact(t, router, `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, resp.Success)
		assert.Equal(t, []string{
			"Name is required",
			"Valid email is required",
			"Message is required",
		}, resp.Errors)
		assert.Empty(t, resp.Error)
	})

	t.Run("malformed JSON returns 400 without reaching the usecase", func(t *testing.T) {
		uc := new(MockContactUC)
		router := newTestRouter(uc)

		w, resp := postContact(t, router, `{"name":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, resp.Success)
		assert.Equal(t, []string{"Invalid request body"}, resp.Errors)
		uc.AssertNotCalled(t, "SendContactMessage")
	})

	t.Run("auth failure at the transport returns 503", func(t *testing.T) {
		uc := new(MockContactUC)
		uc.On("SendContactMessage", mock.Anything, mock.Anything).Return(
			&mailer.MailError{Kind: mailer.KindAuth, Op: "smtp.send", Err: errors.New("535 bad credentials")})
		router := newTestRouter(uc)

		w, resp := postContact(t, router, validBody)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.False(t, resp.Success)
		assert.NotEmpty(t, resp.Error)
		// Provider detail must never leak to the client
		assert.NotContains(t, resp.Error, "535")
	})

	t.Run("connection failure at the transport returns 503", func(t *testing.T) {
		uc := new(MockContactUC)
		uc.On("SendContactMessage", mock.Anything, mock.Anything).Return(
			&mailer.MailError{Kind: mailer.KindConnection, Op: "smtp.send", Err: errors.New("dial tcp: timeout")})
		router := newTestRouter(uc)

		w, resp := postContact(t, router, validBody)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.False(t, resp.Success)
	})

	t.Run("refused envelope returns 400 with a single error string", func(t *testing.T) {
		uc := new(MockContactUC)
		uc.On("SendContactMessage", mock.Anything, mock.Anything).Return(
			&mailer.MailError{Kind: mailer.KindEnvelope, Op: "ses.send", Err: errors.New("MessageRejected")})
		router := newTestRouter(uc)

		w, resp := postContact(t, router, validBody)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, resp.Success)
		assert.NotEmpty(t, resp.Error)
		assert.Empty(t, resp.Errors)
	})

	t.Run("unclassified failure returns 500", func(t *testing.T) {
		uc := new(MockContactUC)
		uc.On("SendContactMessage", mock.Anything, mock.Anything).Return(
			&mailer.MailError{Kind: mailer.KindUnknown, Op: "smtp.send", Err: errors.New("boom")})
		router := newTestRouter(uc)

		w, resp := postContact(t, router, validBody)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.False(t, resp.Success)
		assert.NotContains(t, resp.Error, "boom")
	})

	t.Run("unconfigured transport returns 503", func(t *testing.T) {
		uc := new(MockContactUC)
		uc.On("SendContactMessage", mock.Anything, mock.Anything).Return(domain.ErrMailNotConfigured)
		router := newTestRouter(uc)

		w, resp := postContact(t, router, validBody)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.False(t, resp.Success)
	})
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(new(MockContactUC))

	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}
