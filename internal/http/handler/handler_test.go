package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pydenweb/internal/config"
	"pydenweb/internal/http/middleware"
	"pydenweb/internal/model"
	"pydenweb/internal/service"
	serviceMocks "pydenweb/internal/service/mocks"
	"pydenweb/internal/storage"
	"pydenweb/internal/view"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateQRCode(t *testing.T) {
	mockSvc := new(serviceMocks.MockQRCodeService)
	app := fiber.New()
	app.Post("/qrcodes", CreateQRCode(mockSvc))

	post := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/qrcodes", strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("success", func(t *testing.T) {
		publicID := uuid.NewString()
		expected := &service.IssueResult{
			Record: &model.QRCode{
				ID:          1,
				Type:        "contratos",
				Description: "Contrato de manutenção",
				ExternalID:  "CT-2024-001",
				PublicID:    publicID,
			},
			ValidationURL: "https://example.com/validar/" + publicID,
			ImagePath:     service.ImagePath(publicID),
		}
		mockSvc.On("Issue", mock.Anything, "Contratos", "Contrato de manutenção", "CT-2024-001").
			Return(expected, nil).Once()

		resp := post(`{"type":"Contratos","description":"Contrato de manutenção","id":"CT-2024-001"}`)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result service.IssueResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, publicID, result.Record.PublicID)
		assert.Equal(t, expected.ValidationURL, result.ValidationURL)
		assert.Equal(t, expected.ImagePath, result.ImagePath)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid body", func(t *testing.T) {
		resp := post(`{not json`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_BODY", body.Error.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		mockSvc.On("Issue", mock.Anything, "contratos", "", "").
			Return(nil, service.ErrMissingFields).Once()

		resp := post(`{"type":"contratos"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "MISSING_FIELDS", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid type", func(t *testing.T) {
		mockSvc.On("Issue", mock.Anything, "faturas", "desc", "X-1").
			Return(nil, service.ErrInvalidType).Once()

		resp := post(`{"type":"faturas","description":"desc","id":"X-1"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_TYPE", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("duplicate", func(t *testing.T) {
		mockSvc.On("Issue", mock.Anything, "contratos", "desc", "CT-1").
			Return(nil, service.ErrDuplicate).Once()

		resp := post(`{"type":"contratos","description":"desc","id":"CT-1"}`)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "DUPLICATE", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Issue", mock.Anything, "contratos", "desc", "CT-2").
			Return(nil, errors.New("storage down")).Once()

		resp := post(`{"type":"contratos","description":"desc","id":"CT-2"}`)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestListQRCodes(t *testing.T) {
	mockSvc := new(serviceMocks.MockQRCodeService)
	app := fiber.New()
	app.Get("/qrcodes", ListQRCodes(mockSvc))

	t.Run("success", func(t *testing.T) {
		items := []model.QRCode{
			{ID: 2, Type: "orcamentos", ExternalID: "OR-2"},
			{ID: 1, Type: "contratos", ExternalID: "CT-1"},
		}
		mockSvc.On("List", mock.Anything, "orcamentos", "OR").Return(items, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/qrcodes?type=orcamentos&search=OR", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Data []model.QRCode `json:"data"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Len(t, body.Data, 2)
		assert.Equal(t, int64(2), body.Data[0].ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, "", "").Return(nil, errors.New("db error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/qrcodes", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestValidatePage(t *testing.T) {
	engine, err := view.NewEngine()
	require.NoError(t, err)

	mockSvc := new(serviceMocks.MockQRCodeService)
	app := fiber.New(fiber.Config{Views: engine})
	app.Get("/validar/:publicId", ValidatePage(mockSvc))

	t.Run("found", func(t *testing.T) {
		publicID := uuid.NewString()
		rec := &model.QRCode{
			ID:          1,
			Type:        "contratos",
			Description: "Contrato de manutenção",
			ExternalID:  "CT-2024-001",
			PublicID:    publicID,
			CreatedAt:   time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC),
		}
		mockSvc.On("Validate", mock.Anything, publicID).Return(rec, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/validar/"+publicID, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		page, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(page), "CT-2024-001")
		assert.Contains(t, string(page), "10/05/2024 14:30")
		assert.Contains(t, string(page), service.ImagePath(publicID))
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Validate", mock.Anything, "nope").Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/validar/nope", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		page, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(page), "não encontrado")
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Validate", mock.Anything, "boom").Return(nil, errors.New("db error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/validar/boom", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestQRImage(t *testing.T) {
	mockSvc := new(serviceMocks.MockQRCodeService)
	app := fiber.New()
	app.Get("/img/qrcodes/:file", QRImage(mockSvc))

	t.Run("success", func(t *testing.T) {
		publicID := uuid.NewString()
		png := []byte("\x89PNG\r\n\x1a\nfake")
		mockSvc.On("Image", mock.Anything, publicID).
			Return(io.NopCloser(bytes.NewReader(png)), storage.ObjectInfo{Size: int64(len(png)), ContentType: "image/png"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/img/qrcodes/"+publicID+".png", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, png, body)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing png suffix", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/img/qrcodes/whatever.jpg", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("unknown object", func(t *testing.T) {
		mockSvc.On("Image", mock.Anything, "missing").
			Return(nil, storage.ObjectInfo{}, errors.New("not found")).Once()

		req := httptest.NewRequest(http.MethodGet, "/img/qrcodes/missing.png", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestContact(t *testing.T) {
	mockSvc := new(serviceMocks.MockContactService)
	app := fiber.New()
	app.Post("/contact", Contact(mockSvc))

	post := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Send", mock.Anything, service.ContactRequest{
			Name:    "Maria",
			Email:   "maria@example.com",
			Phone:   "11999990000",
			Subject: "Orçamento",
			Message: "Olá",
		}).Return(nil).Once()

		resp := post(`{"name":"Maria","email":"maria@example.com","phone":"11999990000","subject":"Orçamento","message":"Olá"}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "Mensagem enviada com sucesso!", body["message"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing fields", func(t *testing.T) {
		mockSvc.On("Send", mock.Anything, mock.Anything).Return(service.ErrMissingFields).Once()

		resp := post(`{"name":"Maria"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "MISSING_FIELDS", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("relay failure", func(t *testing.T) {
		mockSvc.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

		resp := post(`{"name":"Maria","email":"maria@example.com","phone":"1","subject":"s","message":"m"}`)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestLoginAndSessionGate(t *testing.T) {
	store := middleware.NewSessionStore(config.SessionConfig{ExpirationHours: 8, CookieName: "session_id"}, nil)
	mockAuth := new(serviceMocks.MockAuthService)
	mockQR := new(serviceMocks.MockQRCodeService)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Post("/admin/login", Login(mockAuth, store))
	app.Post("/admin/logout", Logout(store))
	app.Get("/qrcodes", middleware.RequireSession(store), ListQRCodes(mockQR))

	login := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("missing fields", func(t *testing.T) {
		resp := login(`{"email":"admin@example.com"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "MISSING_FIELDS", body.Error.Code)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		mockAuth.On("Authenticate", mock.Anything, "admin@example.com", "wrong").
			Return(nil, service.ErrInvalidCredentials).Once()

		resp := login(`{"email":"admin@example.com","password":"wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_CREDENTIALS", body.Error.Code)
		mockAuth.AssertExpectations(t)
	})

	t.Run("gate rejects anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/qrcodes", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "UNAUTHORIZED", body.Error.Code)
	})

	t.Run("login then access then logout", func(t *testing.T) {
		mockAuth.On("Authenticate", mock.Anything, "admin@example.com", "s3cret").
			Return(&model.User{ID: 1, Email: "admin@example.com", Role: "admin"}, nil).Once()

		resp := login(`{"email":"admin@example.com","password":"s3cret"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var cookie string
		for _, c := range resp.Cookies() {
			if c.Name == "session_id" {
				cookie = c.Value
			}
		}
		require.NotEmpty(t, cookie)

		mockQR.On("List", mock.Anything, "", "").Return([]model.QRCode{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/qrcodes", nil)
		req.AddCookie(&http.Cookie{Name: "session_id", Value: cookie})
		authed, _ := app.Test(req)
		assert.Equal(t, http.StatusOK, authed.StatusCode)

		out := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
		out.AddCookie(&http.Cookie{Name: "session_id", Value: cookie})
		loggedOut, _ := app.Test(out)
		assert.Equal(t, http.StatusOK, loggedOut.StatusCode)

		again := httptest.NewRequest(http.MethodGet, "/qrcodes", nil)
		again.AddCookie(&http.Cookie{Name: "session_id", Value: cookie})
		denied, _ := app.Test(again)
		assert.Equal(t, http.StatusUnauthorized, denied.StatusCode)

		mockAuth.AssertExpectations(t)
		mockQR.AssertExpectations(t)
	})
}
