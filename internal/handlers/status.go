package handlers

import (
	"context"
	"net/http"

	"github.com/zenka/payments/internal/api"
)

// GetPaymentStatus handles GET /api/payment-status
func (h *Handler) GetPaymentStatus(
	ctx context.Context,
	request api.GetPaymentStatusRequestObject,
) (api.GetPaymentStatusResponseObject, error) {
	id := valueOf(request.Params.Reference)
	if id == "" {
		id = valueOf(request.Params.CheckoutId)
	}
	if id == "" {
		return api.GetPaymentStatus400JSONResponse{
			BadRequestJSONResponse: api.BadRequestJSONResponse(
				errorResponse(api.ErrorCodeInvalidRequest, "reference or checkoutId is required"),
			),
		}, nil
	}

	status, err := h.settlement.CheckStatus(ctx, id)
	if err != nil {
		return h.handleStatusError(err)
	}

	return api.GetPaymentStatus200JSONResponse{
		Success: true,
		Payment: api.PaymentStatus{
			Status:     api.PaymentStatusStatus(status.Status),
			Receipt:    nonEmpty(status.Receipt),
			ResultCode: status.ResultCode,
			ResultDesc: nonEmpty(status.ResultDesc),
		},
	}, nil
}

// handleStatusError maps service errors to appropriate HTTP responses
func (h *Handler) handleStatusError(err error) (api.GetPaymentStatusResponseObject, error) {
	status, body := h.describeError(err, "status check")
	switch status {
	case http.StatusBadRequest:
		return api.GetPaymentStatus400JSONResponse{BadRequestJSONResponse: api.BadRequestJSONResponse(body)}, nil
	case http.StatusBadGateway:
		return api.GetPaymentStatus502JSONResponse{BadGatewayJSONResponse: api.BadGatewayJSONResponse(body)}, nil
	default:
		return api.GetPaymentStatus500JSONResponse{InternalErrorJSONResponse: api.InternalErrorJSONResponse(body)}, nil
	}
}

func valueOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
