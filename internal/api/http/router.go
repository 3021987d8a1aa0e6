package http

import (
	"context"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/vadimbarashkov/qr-manager/internal/llm"
	"github.com/vadimbarashkov/qr-manager/internal/models"
	"github.com/vadimbarashkov/qr-manager/internal/service"
)

// QRCodeService defines the business layer operations the handlers depend on.
type QRCodeService interface {
	CreateQRCode(ctx context.Context, params service.CreateQRCodeParams) (*models.QRCode, error)
	GetQRCode(ctx context.Context, id int64) (*models.QRCode, error)
	ListQRCodes(ctx context.Context) ([]*models.QRCode, error)
	UpdateQRCode(ctx context.Context, id int64, params service.UpdateQRCodeParams) (*models.QRCode, error)
	DeleteQRCode(ctx context.Context, id int64) error
	ResolveShortCode(ctx context.Context, shortCode string) (*models.QRCode, error)
	RedirectURL(shortCode string) string
}

// ChatAssistant defines the LLM assistant operations the handlers depend on.
type ChatAssistant interface {
	ProcessUserRequest(ctx context.Context, input string) llm.ChatResult
	Model() string
	UpdateModel(model string)
}

// ImageStore resolves stored QR code image filenames to filesystem paths.
type ImageStore interface {
	Path(name string) (string, error)
}

func getValidate() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

func NewRouter(logger *httplog.Logger, qrSvc QRCodeService, assistant ChatAssistant, store ImageStore) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*"},
		AllowedMethods:   []string{"POST", "GET", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.AllowContentType("application/json"))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	validate := getValidate()

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yml"),
	))

	r.Get("/docs/swagger.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./docs/swagger.yml")
	})

	r.Get("/ping", handlePing)

	r.Get("/", handleListQRCodes(qrSvc))
	r.Post("/generate", handleGenerateQRCode(qrSvc, validate))

	r.Route("/qr/{qrID}", func(r chi.Router) {
		r.Get("/view", handleViewQRCode(qrSvc))
		r.Get("/edit", handleViewQRCode(qrSvc))
		r.Post("/edit", handleEditQRCode(qrSvc, validate))
		r.Post("/delete", handleDeleteQRCode(qrSvc))
	})

	r.Get("/r/{shortCode}", handleRedirect(qrSvc))
	r.Get("/qr_codes/{filename}", handleServeImage(store))

	r.Post("/chat", handleChat(assistant, validate))
	r.Post("/update_model", handleUpdateModel(assistant, validate))

	return r
}
