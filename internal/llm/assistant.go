package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vadimbarashkov/qr-manager/internal/models"
	"github.com/vadimbarashkov/qr-manager/internal/service"
)

const systemPrompt = `You are a QR code assistant that helps users manage QR codes.
You can create, list, and delete QR codes through function calls.
Always use the provided functions for operations.`

const assistantErrorMsg = "Sorry, I encountered an error processing your request."

// QRCodeService defines the QR code operations the assistant can perform.
type QRCodeService interface {
	CreateQRCode(ctx context.Context, params service.CreateQRCodeParams) (*models.QRCode, error)
	ListQRCodes(ctx context.Context) ([]*models.QRCode, error)
	DeleteQRCode(ctx context.Context, id int64) error
}

// functions advertised to the model, mirroring the operations of QRCodeService.
var assistantFunctions = []Function{
	{
		Name:        "create_qr_code",
		Description: "Create a new QR code",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"url": map[string]any{
					"type":        "string",
					"description": "The URL to encode in the QR code",
				},
				"is_dynamic": map[string]any{
					"type":        "boolean",
					"description": "Whether to create a dynamic QR code",
				},
				"description": map[string]any{
					"type":        "string",
					"description": "Optional description for the QR code",
				},
				"fill_color": map[string]any{
					"type":        "string",
					"description": "Hex color for the QR code fill (e.g. '#000000')",
				},
				"back_color": map[string]any{
					"type":        "string",
					"description": "Hex color for the QR code background (e.g. '#FFFFFF')",
				},
			},
			"required": []string{"url"},
		},
	},
	{
		Name:        "list_qr_codes",
		Description: "List all QR codes",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	},
	{
		Name:        "delete_qr_code",
		Description: "Delete a QR code by ID",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"qr_id": map[string]any{
					"type":        "integer",
					"description": "ID of the QR code to delete",
				},
			},
			"required": []string{"qr_id"},
		},
	},
}

// ChatResult is the assistant's reply to a user request.
// API or execution failures are reported in-band via Success and Error
// rather than failing the surrounding request.
type ChatResult struct {
	Success      bool                `json:"success"`
	Response     string              `json:"response"`
	Error        string              `json:"error,omitempty"`
	FunctionCall *FunctionCallResult `json:"function_call,omitempty"`
}

// FunctionCallResult reports a function the assistant executed and its outcome.
type FunctionCallResult struct {
	Name   string `json:"name"`
	Result any    `json:"result"`
}

// Assistant relays user input to the model and executes the function
// calls it requests against the QR code service.
type Assistant struct {
	client *Client
	qrSvc  QRCodeService
}

// NewAssistant creates an Assistant backed by the given client and QR code service.
func NewAssistant(client *Client, qrSvc QRCodeService) *Assistant {
	return &Assistant{
		client: client,
		qrSvc:  qrSvc,
	}
}

// Model returns the model name currently in use.
func (a *Assistant) Model() string {
	return a.client.Model()
}

// UpdateModel swaps the model used for subsequent requests.
func (a *Assistant) UpdateModel(model string) {
	a.client.SetModel(model)
}

// ProcessUserRequest forwards the user input to the model and relays its reply.
// When the model requests a function call, the function is executed and its
// outcome included in the result.
func (a *Assistant) ProcessUserRequest(ctx context.Context, input string) ChatResult {
	messages := []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: input},
	}

	msg, err := a.client.CreateChatCompletion(ctx, messages, assistantFunctions)
	if err != nil {
		return ChatResult{
			Success:  false,
			Response: assistantErrorMsg,
			Error:    err.Error(),
		}
	}

	if msg.FunctionCall == nil {
		return ChatResult{
			Success:  true,
			Response: msg.Content,
		}
	}

	result, err := a.executeFunction(ctx, msg.FunctionCall)
	if err != nil {
		return ChatResult{
			Success:  false,
			Response: assistantErrorMsg,
			Error:    err.Error(),
		}
	}

	return ChatResult{
		Success:  true,
		Response: fmt.Sprintf("Executed %s.", msg.FunctionCall.Name),
		FunctionCall: &FunctionCallResult{
			Name:   msg.FunctionCall.Name,
			Result: result,
		},
	}
}

type createArgs struct {
	URL         string `json:"url"`
	IsDynamic   bool   `json:"is_dynamic"`
	Description string `json:"description"`
	FillColor   string `json:"fill_color"`
	BackColor   string `json:"back_color"`
}

type deleteArgs struct {
	QRID int64 `json:"qr_id"`
}

func (a *Assistant) executeFunction(ctx context.Context, call *FunctionCall) (any, error) {
	const op = "llm.Assistant.executeFunction"

	switch call.Name {
	case "create_qr_code":
		var args createArgs
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return nil, fmt.Errorf("%s: failed to parse arguments: %w", op, err)
		}

		qr, err := a.qrSvc.CreateQRCode(ctx, service.CreateQRCodeParams{
			URL:         args.URL,
			IsDynamic:   args.IsDynamic,
			FillColor:   args.FillColor,
			BackColor:   args.BackColor,
			Description: args.Description,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: failed to create qr code: %w", op, err)
		}

		return map[string]any{
			"qr_code_id": qr.ID,
			"filename":   qr.Filename,
			"url":        qr.URL,
			"short_code": qr.ShortCode,
		}, nil

	case "list_qr_codes":
		qrCodes, err := a.qrSvc.ListQRCodes(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to list qr codes: %w", op, err)
		}

		list := make([]map[string]any, 0, len(qrCodes))
		for _, qr := range qrCodes {
			list = append(list, map[string]any{
				"id":           qr.ID,
				"url":          qr.URL,
				"filename":     qr.Filename,
				"created_at":   qr.CreatedAt,
				"access_count": qr.AccessCount,
			})
		}

		return map[string]any{"qr_codes": list}, nil

	case "delete_qr_code":
		var args deleteArgs
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return nil, fmt.Errorf("%s: failed to parse arguments: %w", op, err)
		}

		if err := a.qrSvc.DeleteQRCode(ctx, args.QRID); err != nil {
			return nil, fmt.Errorf("%s: failed to delete qr code: %w", op, err)
		}

		return map[string]any{"deleted": args.QRID}, nil
	}

	return nil, fmt.Errorf("%s: unknown function %q", op, call.Name)
}
