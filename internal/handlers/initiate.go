package handlers

import (
	"context"
	"net/http"

	"github.com/zenka/payments/internal/api"
	"github.com/zenka/payments/internal/service"
)

// InitiatePayment handles POST /api/initiate-payment
func (h *Handler) InitiatePayment(
	ctx context.Context,
	request api.InitiatePaymentRequestObject,
) (api.InitiatePaymentResponseObject, error) {
	body := request.Body
	if body == nil {
		return api.InitiatePayment400JSONResponse{
			BadRequestJSONResponse: api.BadRequestJSONResponse(
				errorResponse(api.ErrorCodeInvalidRequest, "Invalid request body"),
			),
		}, nil
	}

	result, err := h.payments.InitiatePayment(ctx, service.InitiateRequest{
		Amount:      body.Amount,
		LoanAmount:  body.LoanAmount,
		PhoneNumber: body.PhoneNumber,
		Description: body.Description,
	})
	if err != nil {
		h.logger.Debug("payment initiation failed",
			"idempotency_key_present", request.Params.IdempotencyKey != nil,
			"error", err,
		)
		return h.handleInitiateError(err)
	}

	// Every id field carries the provider id; callers poll with any of them.
	id := result.ProviderRequestID
	return api.InitiatePayment200JSONResponse{
		Success: true,
		Message: result.Message,
		Data: api.PaymentInitiation{
			CheckoutRequestId:    id,
			RequestId:            id,
			TransactionRequestId: id,
			ExternalReference:    id,
			Reference:            result.Reference,
			PhoneNumber:          result.PhoneNumber,
			Amount:               result.Amount,
		},
	}, nil
}

// handleInitiateError maps service errors to appropriate HTTP responses
func (h *Handler) handleInitiateError(err error) (api.InitiatePaymentResponseObject, error) {
	status, body := h.describeError(err, "payment initiation")
	switch status {
	case http.StatusBadRequest:
		return api.InitiatePayment400JSONResponse{BadRequestJSONResponse: api.BadRequestJSONResponse(body)}, nil
	case http.StatusBadGateway:
		return api.InitiatePayment502JSONResponse{BadGatewayJSONResponse: api.BadGatewayJSONResponse(body)}, nil
	default:
		return api.InitiatePayment500JSONResponse{InternalErrorJSONResponse: api.InternalErrorJSONResponse(body)}, nil
	}
}
