package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/qr-manager/internal/database"
	"github.com/vadimbarashkov/qr-manager/internal/models"
	"github.com/vadimbarashkov/qr-manager/internal/qrimage"
	"github.com/vadimbarashkov/qr-manager/internal/service"
	"github.com/vadimbarashkov/qr-manager/pkg/response"
)

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "pong")
}

type generateRequest struct {
	URL         string `json:"url" validate:"required,url"`
	IsDynamic   bool   `json:"is_dynamic"`
	FillColor   string `json:"fill_color" validate:"omitempty,hexcolor"`
	BackColor   string `json:"back_color" validate:"omitempty,hexcolor"`
	Description string `json:"description"`
}

type editRequest struct {
	URL         string `json:"url" validate:"required,url"`
	FillColor   string `json:"fill_color" validate:"omitempty,hexcolor"`
	BackColor   string `json:"back_color" validate:"omitempty,hexcolor"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
	Filename    string `json:"filename"`
}

type qrCodeResponse struct {
	ID          int64     `json:"id"`
	URL         string    `json:"url"`
	Filename    string    `json:"filename"`
	ImageURL    string    `json:"image_url"`
	FillColor   string    `json:"fill_color"`
	BackColor   string    `json:"back_color"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	IsDynamic   bool      `json:"is_dynamic"`
	ShortCode   string    `json:"short_code,omitempty"`
	RedirectURL string    `json:"redirect_url,omitempty"`
	AccessCount int64     `json:"access_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toQRCodeResponse(svc QRCodeService, qr *models.QRCode) qrCodeResponse {
	resp := qrCodeResponse{
		ID:          qr.ID,
		URL:         qr.URL,
		Filename:    qr.Filename,
		ImageURL:    "/qr_codes/" + qr.Filename,
		FillColor:   qr.FillColor,
		BackColor:   qr.BackColor,
		Description: qr.Description,
		IsActive:    qr.IsActive,
		IsDynamic:   qr.IsDynamic,
		ShortCode:   qr.ShortCode,
		AccessCount: qr.AccessCount,
		CreatedAt:   qr.CreatedAt,
		UpdatedAt:   qr.UpdatedAt,
	}

	if qr.IsDynamic {
		resp.RedirectURL = svc.RedirectURL(qr.ShortCode)
	}

	return resp
}

func handleGenerateQRCode(svc QRCodeService, validate *validator.Validate) http.HandlerFunc {
	const op = "api.http.handleGenerateQRCode"
	const successMsg = "The QR code has been generated successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			if errors.Is(err, io.EOF) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.EmptyRequestBodyResponse)
				return
			}

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.BadRequestResponse)
			return
		}

		if err := validate.Struct(req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationErrorResponse(err))
			return
		}

		qr, err := svc.CreateQRCode(r.Context(), service.CreateQRCodeParams{
			URL:         req.URL,
			IsDynamic:   req.IsDynamic,
			FillColor:   req.FillColor,
			BackColor:   req.BackColor,
			Description: req.Description,
		})
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidURL):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ErrorResponse("Invalid URL", "The provided URL must be an absolute http(s) URL."))
			case errors.Is(err, qrimage.ErrInvalidHexColor):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ErrorResponse("Invalid Color", "Colors must be hex values like #RRGGBB."))
			default:
				httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.ServerErrorResponse)
			}
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.SuccessResponse(successMsg, toQRCodeResponse(svc, qr)))
	}
}

func handleListQRCodes(svc QRCodeService) http.HandlerFunc {
	const op = "api.http.handleListQRCodes"
	const successMsg = "QR codes retrieved successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		qrCodes, err := svc.ListQRCodes(r.Context())
		if err != nil {
			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		resp := make([]qrCodeResponse, 0, len(qrCodes))
		for _, qr := range qrCodes {
			resp = append(resp, toQRCodeResponse(svc, qr))
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, resp))
	}
}

func handleViewQRCode(svc QRCodeService) http.HandlerFunc {
	const op = "api.http.handleViewQRCode"
	const successMsg = "QR code retrieved successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "qrID"), 10, 64)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.BadRequestResponse)
			return
		}

		qr, err := svc.GetQRCode(r.Context(), id)
		if err != nil {
			if errors.Is(err, database.ErrQRCodeNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.ResourceNotFoundResponse)
				return
			}

			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, toQRCodeResponse(svc, qr)))
	}
}

func handleEditQRCode(svc QRCodeService, validate *validator.Validate) http.HandlerFunc {
	const op = "api.http.handleEditQRCode"
	const successMsg = "The QR code was successfully updated."

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "qrID"), 10, 64)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.BadRequestResponse)
			return
		}

		var req editRequest

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			if errors.Is(err, io.EOF) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.EmptyRequestBodyResponse)
				return
			}

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.BadRequestResponse)
			return
		}

		if err := validate.Struct(req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationErrorResponse(err))
			return
		}

		qr, err := svc.UpdateQRCode(r.Context(), id, service.UpdateQRCodeParams{
			URL:         req.URL,
			FillColor:   req.FillColor,
			BackColor:   req.BackColor,
			Description: req.Description,
			IsActive:    req.IsActive,
			Filename:    req.Filename,
		})
		if err != nil {
			switch {
			case errors.Is(err, database.ErrQRCodeNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.ResourceNotFoundResponse)
			case errors.Is(err, database.ErrFilenameExists):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.ErrorResponse("Filename Conflict", "A QR code with this filename already exists."))
			case errors.Is(err, service.ErrInvalidURL):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ErrorResponse("Invalid URL", "The provided URL must be an absolute http(s) URL."))
			case errors.Is(err, service.ErrInvalidFilename):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ErrorResponse("Invalid Filename", "Filenames may only contain letters, digits, hyphens and underscores, and must end in .png."))
			case errors.Is(err, qrimage.ErrInvalidHexColor):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ErrorResponse("Invalid Color", "Colors must be hex values like #RRGGBB."))
			default:
				httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.ServerErrorResponse)
			}
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, toQRCodeResponse(svc, qr)))
	}
}

func handleDeleteQRCode(svc QRCodeService) http.HandlerFunc {
	const op = "api.http.handleDeleteQRCode"
	const successMsg = "The QR code was successfully deleted."

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "qrID"), 10, 64)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.BadRequestResponse)
			return
		}

		if err := svc.DeleteQRCode(r.Context(), id); err != nil {
			if errors.Is(err, database.ErrQRCodeNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.ResourceNotFoundResponse)
				return
			}

			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg))
	}
}

func handleRedirect(svc QRCodeService) http.HandlerFunc {
	const op = "api.http.handleRedirect"

	return func(w http.ResponseWriter, r *http.Request) {
		shortCode := chi.URLParam(r, "shortCode")

		qr, err := svc.ResolveShortCode(r.Context(), shortCode)
		if err != nil {
			if errors.Is(err, database.ErrQRCodeNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.ResourceNotFoundResponse)
				return
			}

			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		http.Redirect(w, r, qr.URL, http.StatusFound)
	}
}

func handleServeImage(store ImageStore) http.HandlerFunc {
	const op = "api.http.handleServeImage"

	return func(w http.ResponseWriter, r *http.Request) {
		filename := chi.URLParam(r, "filename")

		path, err := store.Path(filename)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.BadRequestResponse)
			return
		}

		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.ResourceNotFoundResponse)
				return
			}

			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		http.ServeFile(w, r, path)
	}
}

type chatMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

func handleChat(assistant ChatAssistant, validate *validator.Validate) http.HandlerFunc {
	const op = "api.http.handleChat"

	return func(w http.ResponseWriter, r *http.Request) {
		var req chatMessageRequest

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			if errors.Is(err, io.EOF) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.EmptyRequestBodyResponse)
				return
			}

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.BadRequestResponse)
			return
		}

		if err := validate.Struct(req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationErrorResponse(err))
			return
		}

		result := assistant.ProcessUserRequest(r.Context(), req.Message)
		if !result.Success {
			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": result.Error})
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, result)
	}
}

type updateModelRequest struct {
	Model string `json:"model" validate:"required"`
}

type updateModelResponse struct {
	Model string `json:"model"`
}

func handleUpdateModel(assistant ChatAssistant, validate *validator.Validate) http.HandlerFunc {
	const successMsg = "The assistant model was successfully updated."

	return func(w http.ResponseWriter, r *http.Request) {
		var req updateModelRequest

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			if errors.Is(err, io.EOF) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.EmptyRequestBodyResponse)
				return
			}

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.BadRequestResponse)
			return
		}

		if err := validate.Struct(req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationErrorResponse(err))
			return
		}

		assistant.UpdateModel(req.Model)

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, updateModelResponse{Model: assistant.Model()}))
	}
}
