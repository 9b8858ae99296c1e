package handlers

import (
	"context"
	"net/http"

	"github.com/zenka/payments/internal/api"
)

var acknowledged = api.AcknowledgedJSONResponse{Result: "success"}

// MpesaCallback handles POST /api/mpesa-callback.
// Orphan and repeated callbacks are acknowledged like any other.
func (h *Handler) MpesaCallback(
	ctx context.Context,
	request api.MpesaCallbackRequestObject,
) (api.MpesaCallbackResponseObject, error) {
	envelope := request.Body
	if envelope == nil || envelope.Body == nil || envelope.Body.STKCallback == nil ||
		envelope.Body.STKCallback.ResultCode == nil {
		return api.MpesaCallback400JSONResponse{
			BadRequestJSONResponse: api.BadRequestJSONResponse(
				errorResponse(api.ErrorCodeInvalidRequest, "Invalid callback payload"),
			),
		}, nil
	}

	callback := envelope.Body.STKCallback.Flatten()
	outcome, err := h.settlement.HandleCallback(ctx, callback)
	if err != nil {
		status, body := h.describeError(err, "callback handling")
		if status == http.StatusBadRequest {
			return api.MpesaCallback400JSONResponse{BadRequestJSONResponse: api.BadRequestJSONResponse(body)}, nil
		}
		return api.MpesaCallback500JSONResponse{InternalErrorJSONResponse: api.InternalErrorJSONResponse(body)}, nil
	}

	h.logger.Info("callback processed",
		"transaction_request_id", callback.CheckoutRequestID,
		"result_code", callback.ResultCode,
		"outcome", outcome,
	)
	return api.MpesaCallback200JSONResponse{AcknowledgedJSONResponse: acknowledged}, nil
}

// PaymentWebhook handles POST /api/webhook
func (h *Handler) PaymentWebhook(
	ctx context.Context,
	request api.PaymentWebhookRequestObject,
) (api.PaymentWebhookResponseObject, error) {
	if request.Body == nil {
		return api.PaymentWebhook400JSONResponse{
			BadRequestJSONResponse: api.BadRequestJSONResponse(
				errorResponse(api.ErrorCodeInvalidRequest, "Invalid webhook payload"),
			),
		}, nil
	}
	event := *request.Body

	outcome, err := h.settlement.HandleWebhookEvent(ctx, event)
	if err != nil {
		status, body := h.describeError(err, "webhook handling")
		if status == http.StatusBadRequest {
			return api.PaymentWebhook400JSONResponse{BadRequestJSONResponse: api.BadRequestJSONResponse(body)}, nil
		}
		return api.PaymentWebhook500JSONResponse{InternalErrorJSONResponse: api.InternalErrorJSONResponse(body)}, nil
	}

	h.logger.Info("webhook processed",
		"transaction_request_id", event.Data.TransactionRequestID,
		"event", event.Event,
		"outcome", outcome,
	)
	return api.PaymentWebhook200JSONResponse{AcknowledgedJSONResponse: acknowledged}, nil
}
