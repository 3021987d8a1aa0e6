package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gavv/httpexpect/v2"
	"github.com/go-chi/httplog/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vadimbarashkov/qr-manager/internal/database"
	"github.com/vadimbarashkov/qr-manager/internal/llm"
	"github.com/vadimbarashkov/qr-manager/internal/models"
	"github.com/vadimbarashkov/qr-manager/internal/service"
	"github.com/vadimbarashkov/qr-manager/internal/storage"
	"github.com/vadimbarashkov/qr-manager/pkg/response"
)

type MockQRCodeService struct {
	mock.Mock
}

func (s *MockQRCodeService) CreateQRCode(ctx context.Context, params service.CreateQRCodeParams) (*models.QRCode, error) {
	args := s.Called(ctx, params)
	qr, _ := args.Get(0).(*models.QRCode)
	return qr, args.Error(1)
}

func (s *MockQRCodeService) GetQRCode(ctx context.Context, id int64) (*models.QRCode, error) {
	args := s.Called(ctx, id)
	qr, _ := args.Get(0).(*models.QRCode)
	return qr, args.Error(1)
}

func (s *MockQRCodeService) ListQRCodes(ctx context.Context) ([]*models.QRCode, error) {
	args := s.Called(ctx)
	qrCodes, _ := args.Get(0).([]*models.QRCode)
	return qrCodes, args.Error(1)
}

func (s *MockQRCodeService) UpdateQRCode(ctx context.Context, id int64, params service.UpdateQRCodeParams) (*models.QRCode, error) {
	args := s.Called(ctx, id, params)
	qr, _ := args.Get(0).(*models.QRCode)
	return qr, args.Error(1)
}

func (s *MockQRCodeService) DeleteQRCode(ctx context.Context, id int64) error {
	args := s.Called(ctx, id)
	return args.Error(0)
}

func (s *MockQRCodeService) ResolveShortCode(ctx context.Context, shortCode string) (*models.QRCode, error) {
	args := s.Called(ctx, shortCode)
	qr, _ := args.Get(0).(*models.QRCode)
	return qr, args.Error(1)
}

func (s *MockQRCodeService) RedirectURL(shortCode string) string {
	args := s.Called(shortCode)
	return args.String(0)
}

type MockChatAssistant struct {
	mock.Mock
}

func (a *MockChatAssistant) ProcessUserRequest(ctx context.Context, input string) llm.ChatResult {
	args := a.Called(ctx, input)
	result, _ := args.Get(0).(llm.ChatResult)
	return result
}

func (a *MockChatAssistant) Model() string {
	args := a.Called()
	return args.String(0)
}

func (a *MockChatAssistant) UpdateModel(model string) {
	a.Called(model)
}

type HandlersTestSuite struct {
	suite.Suite
	logger        *httplog.Logger
	qrSvcMock     *MockQRCodeService
	assistantMock *MockChatAssistant
	store         *storage.FileStore
	server        *httptest.Server
	e             *httpexpect.Expect
}

func (suite *HandlersTestSuite) SetupSuite() {
	suite.logger = httplog.NewLogger("", httplog.Options{Writer: io.Discard})
}

func (suite *HandlersTestSuite) SetupSubTest() {
	suite.qrSvcMock = new(MockQRCodeService)
	suite.assistantMock = new(MockChatAssistant)

	store, err := storage.New(suite.T().TempDir())
	suite.Require().NoError(err)
	suite.store = store

	router := NewRouter(suite.logger, suite.qrSvcMock, suite.assistantMock, suite.store)
	suite.server = httptest.NewServer(router)
	suite.e = httpexpect.Default(suite.T(), suite.server.URL)
}

func (suite *HandlersTestSuite) TearDownSubTest() {
	suite.qrSvcMock.AssertExpectations(suite.T())
	suite.assistantMock.AssertExpectations(suite.T())
	suite.server.Close()
}

func (suite *HandlersTestSuite) TestSwaggerUI() {
	const path = "/swagger/index.html"

	suite.Run("success", func() {
		suite.e.GET(path).
			Expect().
			Status(http.StatusOK).
			HasContentType("text/html")
	})
}

func (suite *HandlersTestSuite) TestPing() {
	const path = "/ping"

	suite.Run("success", func() {
		suite.e.GET(path).
			Expect().
			Status(http.StatusOK).
			Text().IsEqual("pong\n")
	})
}

func (suite *HandlersTestSuite) TestGenerateQRCode() {
	const path = "/generate"

	suite.Run("empty request body", func() {
		suite.e.POST(path).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.EmptyRequestBodyResponse.Message)
	})

	suite.Run("invalid request body", func() {
		suite.e.POST(path).
			WithJSON("invalid body").
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.BadRequestResponse.Message)
	})

	suite.Run("validation error", func() {
		suite.e.POST(path).
			WithJSON(map[string]string{
				"url":        "invalid url",
				"fill_color": "red",
			}).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			ContainsKey("message").
			ContainsKey("details")
	})

	suite.Run("server error", func() {
		suite.qrSvcMock.
			On("CreateQRCode", mock.Anything, mock.AnythingOfType("service.CreateQRCodeParams")).
			Times(1).
			Return(nil, errors.New("unknown error"))

		suite.e.POST(path).
			WithJSON(map[string]any{
				"url": "https://example.com",
			}).
			Expect().
			Status(http.StatusInternalServerError).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.ServerErrorResponse.Message)

		suite.qrSvcMock.AssertNumberOfCalls(suite.T(), "CreateQRCode", 1)
	})

	suite.Run("static success", func() {
		suite.qrSvcMock.
			On("CreateQRCode", mock.Anything, service.CreateQRCodeParams{
				URL:       "https://example.com",
				FillColor: "#336699",
			}).
			Times(1).
			Return(&models.QRCode{
				ID:        1,
				URL:       "https://example.com",
				Filename:  "qr_20250101000000_abcd1234.png",
				FillColor: "#336699",
				BackColor: "#FFFFFF",
				IsActive:  true,
			}, nil)

		suite.e.POST(path).
			WithJSON(map[string]any{
				"url":        "https://example.com",
				"fill_color": "#336699",
			}).
			Expect().
			Status(http.StatusCreated).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusSuccess).
			ContainsKey("message").
			Value("data").Object().
			HasValue("id", 1).
			HasValue("url", "https://example.com").
			HasValue("image_url", "/qr_codes/qr_20250101000000_abcd1234.png").
			HasValue("is_dynamic", false).
			NotContainsKey("short_code")

		suite.qrSvcMock.AssertNumberOfCalls(suite.T(), "CreateQRCode", 1)
	})

	suite.Run("dynamic success", func() {
		suite.qrSvcMock.
			On("CreateQRCode", mock.Anything, service.CreateQRCodeParams{
				URL:       "https://example.com",
				IsDynamic: true,
			}).
			Times(1).
			Return(&models.QRCode{
				ID:        2,
				URL:       "https://example.com",
				Filename:  "qr_20250101000000_abcd1234.png",
				FillColor: "#FF0000",
				BackColor: "#FFFFFF",
				IsActive:  true,
				IsDynamic: true,
				ShortCode: "abc123",
			}, nil)
		suite.qrSvcMock.
			On("RedirectURL", "abc123").
			Times(1).
			Return("http://localhost:8080/r/abc123")

		suite.e.POST(path).
			WithJSON(map[string]any{
				"url":        "https://example.com",
				"is_dynamic": true,
			}).
			Expect().
			Status(http.StatusCreated).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusSuccess).
			Value("data").Object().
			HasValue("is_dynamic", true).
			HasValue("short_code", "abc123").
			HasValue("redirect_url", "http://localhost:8080/r/abc123")

		suite.qrSvcMock.AssertNumberOfCalls(suite.T(), "CreateQRCode", 1)
	})
}

func (suite *HandlersTestSuite) TestListQRCodes() {
	const path = "/"

	suite.Run("server error", func() {
		suite.qrSvcMock.
			On("ListQRCodes", mock.Anything).
			Times(1).
			Return(nil, errors.New("unknown error"))

		suite.e.GET(path).
			Expect().
			Status(http.StatusInternalServerError).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.ServerErrorResponse.Message)

		suite.qrSvcMock.AssertNumberOfCalls(suite.T(), "ListQRCodes", 1)
	})

	suite.Run("empty list", func() {
		suite.qrSvcMock.
			On("ListQRCodes", mock.Anything).
			Times(1).
			Return([]*models.QRCode{}, nil)

		suite.e.GET(path).
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusSuccess).
			Value("data").Array().IsEmpty()

		suite.qrSvcMock.AssertNumberOfCalls(suite.T(), "ListQRCodes", 1)
	})

	suite.Run("success", func() {
		suite.qrSvcMock.
			On("ListQRCodes", mock.Anything).
			Times(1).
			Return([]*models.QRCode{
				{
					ID:       1,
					URL:      "https://example.com",
					Filename: "qr_20250101000000_abcd1234.png",
					IsActive: true,
				},
				{
					ID:        2,
					URL:       "https://example.org",
					Filename:  "qr_20250102000000_abcd5678.png",
					IsActive:  true,
					IsDynamic: true,
					ShortCode: "abc123",
				},
			}, nil)
		suite.qrSvcMock.
			On("RedirectURL", "abc123").
			Times(1).
			Return("http://localhost:8080/r/abc123")

		data := suite.e.GET(path).
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusSuccess).
			Value("data").Array()

		data.Length().IsEqual(2)
		data.Value(0).Object().HasValue("id", 1).HasValue("url", "https://example.com")
		data.Value(1).Object().HasValue("short_code", "abc123")

		suite.qrSvcMock.AssertNumberOfCalls(suite.T(), "ListQRCodes", 1)
	})
}

func (suite *HandlersTestSuite) TestViewQRCode() {
	const path = "/qr/%s/view"

	suite.Run("invalid id", func() {
		suite.e.GET(fmt.Sprintf(path, "abc")).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.BadRequestResponse.Message)
	})

	suite.Run("not found", func() {
		suite.qrSvcMock.
			On("GetQRCode", mock.Anything, int64(1)).
			Times(1).
			Return(nil, database.ErrQRCodeNotFound)

		suite.e.GET(fmt.Sprintf(path, "1")).
			Expect().
			Status(http.StatusNotFound).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.ResourceNotFoundResponse.Message)

		suite.qrSvcMock.AssertNumberOfCalls(suite.T(), "GetQRCode", 1)
	})

	suite.Run("server error", func() {
		suite.qrSvcMock.
			On("GetQRCode", mock.Anything, int64(1)).
			Times(1).
			Return(nil, errors.New("unknown error"))

		suite.e.GET(fmt.Sprintf(path, "1")).
			Expect().
			Status(http.StatusInternalServerError).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.ServerErrorResponse.Message)

		suite.qrSvcMock.AssertNumberOfCalls(suite.T(), "GetQRCode", 1)
	})

	suite.Run("success", func() {
		suite.qrSvcMock.
			On("GetQRCode", mock.Anything, int64(1)).
			Times(1).
			Return(&models.QRCode{
				ID:          1,
				URL:         "https://example.com",
				Filename:    "qr_20250101000000_abcd1234.png",
				AccessCount: 5,
				IsActive:    true,
			}, nil)

		suite.e.GET(fmt.Sprintf(path, "1")).
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusSuccess).
			Value("data").Object().
			HasValue("id", 1).
			HasValue("url", "https://example.com").
			HasValue("access_count", 5)

		suite.qrSvcMock.AssertNumberOfCalls(suite.T(), "GetQRCode", 1)
	})
}

func (suite *HandlersTestSuite) TestEditQRCode() {
	const path = "/qr/%s/edit"

	suite.Run("empty request body", func() {
		suite.e.POST(fmt.Sprintf(path, "1")).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.EmptyRequestBodyResponse.Message)
	})

	suite.Run("invalid id", func() {
		suite.e.POST(fmt.Sprintf(path, "abc")).
			WithJSON(map[string]any{
				"url": "https://example.com",
			}).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.BadRequestResponse.Message)
	})

	suite.Run("validation error", func() {
		suite.e.POST(fmt.Sprintf(path, "1")).
			WithJSON(map[string]any{
				"url":        "https://example.com",
				"back_color": "white",
			}).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			ContainsKey("details")
	})

	suite.Run("not found", func() {
		suite.qrSvcMock.
			On("UpdateQRCode", mock.Anything, int64(1), mock.AnythingOfType("service.UpdateQRCodeParams")).
			Times(1).
			Return(nil, database.ErrQRCodeNotFound)

		suite.e.POST(fmt.Sprintf(path, "1")).
			WithJSON(map[string]any{
				"url": "https://example.com",
			}).
			Expect().
			Status(http.StatusNotFound).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.ResourceNotFoundResponse.Message)

		suite.qrSvcMock.AssertNumberOfCalls(suite.T(), "UpdateQRCode", 1)
	})

	suite.Run("filename conflict", func() {
		suite.qrSvcMock.
			On("UpdateQRCode", mock.Anything, int64(1), mock.AnythingOfType("service.UpdateQRCodeParams")).
			Times(1).
			Return(nil, database.ErrFilenameExists)

		suite.e.POST(fmt.Sprintf(path, "1")).
			WithJSON(map[string]any{
				"url":      "https://example.com",
				"filename": "custom.png",
			}).
			Expect().
			Status(http.StatusConflict).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("error", "Filename Conflict")

		suite.qrSvcMock.AssertNumberOfCalls(suite.T(), "UpdateQRCode", 1)
	})

	suite.Run("invalid filename", func() {
		suite.qrSvcMock.
			On("UpdateQRCode", mock.Anything, int64(1), mock.AnythingOfType("service.UpdateQRCodeParams")).
			Times(1).
			Return(nil, service.ErrInvalidFilename)

		suite.e.POST(fmt.Sprintf(path, "1")).
			WithJSON(map[string]any{
				"url":      "https://example.com",
				"filename": "../escape.png",
			}).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("error", "Invalid Filename")

		suite.qrSvcMock.AssertNumberOfCalls(suite.T(), "UpdateQRCode", 1)
	})

	suite.Run("success", func() {
		suite.qrSvcMock.
			On("UpdateQRCode", mock.Anything, int64(1), service.UpdateQRCodeParams{
				URL:         "https://updated.com",
				Description: "updated",
				IsActive:    true,
			}).
			Times(1).
			Return(&models.QRCode{
				ID:          1,
				URL:         "https://updated.com",
				Filename:    "qr_20250101000000_abcd1234.png",
				Description: "updated",
				IsActive:    true,
			}, nil)

		suite.e.POST(fmt.Sprintf(path, "1")).
			WithJSON(map[string]any{
				"url":         "https://updated.com",
				"description": "updated",
				"is_active":   true,
			}).
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusSuccess).
			Value("data").Object().
			HasValue("url", "https://updated.com").
			HasValue("description", "updated")

		suite.qrSvcMock.AssertNumberOfCalls(suite.T(), "UpdateQRCode", 1)
	})
}

func (suite *HandlersTestSuite) TestDeleteQRCode() {
	const path = "/qr/%s/delete"

	suite.Run("invalid id", func() {
		suite.e.POST(fmt.Sprintf(path, "abc")).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.BadRequestResponse.Message)
	})

	suite.Run("not found", func() {
		suite.qrSvcMock.
			On("DeleteQRCode", mock.Anything, int64(1)).
			Times(1).
			Return(database.ErrQRCodeNotFound)

		suite.e.POST(fmt.Sprintf(path, "1")).
			Expect().
			Status(http.StatusNotFound).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.ResourceNotFoundResponse.Message)

		suite.qrSvcMock.AssertNumberOfCalls(suite.T(), "DeleteQRCode", 1)
	})

	suite.Run("success", func() {
		suite.qrSvcMock.
			On("DeleteQRCode", mock.Anything, int64(1)).
			Times(1).
			Return(nil)

		suite.e.POST(fmt.Sprintf(path, "1")).
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusSuccess).
			ContainsKey("message").
			NotContainsKey("data")

		suite.qrSvcMock.AssertNumberOfCalls(suite.T(), "DeleteQRCode", 1)
	})
}

func (suite *HandlersTestSuite) TestRedirect() {
	const path = "/r/%s"

	suite.Run("not found", func() {
		suite.qrSvcMock.
			On("ResolveShortCode", mock.Anything, "abc123").
			Times(1).
			Return(nil, database.ErrQRCodeNotFound)

		suite.e.GET(fmt.Sprintf(path, "abc123")).
			Expect().
			Status(http.StatusNotFound).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.ResourceNotFoundResponse.Message)

		suite.qrSvcMock.AssertNumberOfCalls(suite.T(), "ResolveShortCode", 1)
	})

	suite.Run("server error", func() {
		suite.qrSvcMock.
			On("ResolveShortCode", mock.Anything, "abc123").
			Times(1).
			Return(nil, errors.New("unknown error"))

		suite.e.GET(fmt.Sprintf(path, "abc123")).
			Expect().
			Status(http.StatusInternalServerError).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.ServerErrorResponse.Message)

		suite.qrSvcMock.AssertNumberOfCalls(suite.T(), "ResolveShortCode", 1)
	})

	suite.Run("success", func() {
		suite.qrSvcMock.
			On("ResolveShortCode", mock.Anything, "abc123").
			Times(1).
			Return(&models.QRCode{
				ID:        1,
				URL:       "https://example.com",
				IsActive:  true,
				IsDynamic: true,
				ShortCode: "abc123",
			}, nil)

		suite.e.GET(fmt.Sprintf(path, "abc123")).
			WithRedirectPolicy(httpexpect.DontFollowRedirects).
			Expect().
			Status(http.StatusFound).
			Header("Location").IsEqual("https://example.com")

		suite.qrSvcMock.AssertNumberOfCalls(suite.T(), "ResolveShortCode", 1)
	})
}

func (suite *HandlersTestSuite) TestServeImage() {
	const path = "/qr_codes/%s"

	suite.Run("invalid filename", func() {
		suite.e.GET(fmt.Sprintf(path, "..%2Fescape.png")).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.BadRequestResponse.Message)
	})

	suite.Run("not found", func() {
		suite.e.GET(fmt.Sprintf(path, "missing.png")).
			Expect().
			Status(http.StatusNotFound).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.ResourceNotFoundResponse.Message)
	})

	suite.Run("success", func() {
		err := suite.store.Save("existing.png", []byte("png data"))
		suite.Require().NoError(err)

		suite.e.GET(fmt.Sprintf(path, "existing.png")).
			Expect().
			Status(http.StatusOK).
			Body().IsEqual("png data")
	})
}

func (suite *HandlersTestSuite) TestChat() {
	const path = "/chat"

	suite.Run("empty request body", func() {
		suite.e.POST(path).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.EmptyRequestBodyResponse.Message)
	})

	suite.Run("validation error", func() {
		suite.e.POST(path).
			WithJSON(map[string]string{
				"message": "",
			}).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			ContainsKey("details")
	})

	suite.Run("assistant failure is reported in-band", func() {
		suite.assistantMock.
			On("ProcessUserRequest", mock.Anything, "hello").
			Times(1).
			Return(llm.ChatResult{
				Success:  false,
				Response: "Sorry, I'm having trouble processing your request right now. Please try again later.",
				Error:    "api request failed",
			})

		suite.e.POST(path).
			WithJSON(map[string]string{
				"message": "hello",
			}).
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			JSON().Object().
			HasValue("success", false).
			ContainsKey("error")

		suite.assistantMock.AssertNumberOfCalls(suite.T(), "ProcessUserRequest", 1)
	})

	suite.Run("plain reply", func() {
		suite.assistantMock.
			On("ProcessUserRequest", mock.Anything, "hello").
			Times(1).
			Return(llm.ChatResult{
				Success:  true,
				Response: "Hi! How can I help you with your QR codes?",
			})

		suite.e.POST(path).
			WithJSON(map[string]string{
				"message": "hello",
			}).
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			JSON().Object().
			HasValue("success", true).
			ContainsKey("response").
			NotContainsKey("function_call")

		suite.assistantMock.AssertNumberOfCalls(suite.T(), "ProcessUserRequest", 1)
	})

	suite.Run("function call reply", func() {
		suite.assistantMock.
			On("ProcessUserRequest", mock.Anything, "create a qr code for https://example.com").
			Times(1).
			Return(llm.ChatResult{
				Success:  true,
				Response: "Executed create_qr_code.",
				FunctionCall: &llm.FunctionCallResult{
					Name:   "create_qr_code",
					Result: map[string]any{"id": 1},
				},
			})

		suite.e.POST(path).
			WithJSON(map[string]string{
				"message": "create a qr code for https://example.com",
			}).
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			JSON().Object().
			HasValue("success", true).
			Value("function_call").Object().
			HasValue("name", "create_qr_code")

		suite.assistantMock.AssertNumberOfCalls(suite.T(), "ProcessUserRequest", 1)
	})
}

func (suite *HandlersTestSuite) TestUpdateModel() {
	const path = "/update_model"

	suite.Run("empty request body", func() {
		suite.e.POST(path).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.EmptyRequestBodyResponse.Message)
	})

	suite.Run("validation error", func() {
		suite.e.POST(path).
			WithJSON(map[string]string{
				"model": "",
			}).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			ContainsKey("details")
	})

	suite.Run("success", func() {
		suite.assistantMock.
			On("UpdateModel", "llama3-70b-8192").
			Times(1)
		suite.assistantMock.
			On("Model").
			Times(1).
			Return("llama3-70b-8192")

		suite.e.POST(path).
			WithJSON(map[string]string{
				"model": "llama3-70b-8192",
			}).
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusSuccess).
			Value("data").Object().
			HasValue("model", "llama3-70b-8192")

		suite.assistantMock.AssertNumberOfCalls(suite.T(), "UpdateModel", 1)
	})
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
