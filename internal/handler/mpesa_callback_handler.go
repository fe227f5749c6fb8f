package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/Muhidiny/osen-whmcs-mpesa/internal/callback"
	"github.com/Muhidiny/osen-whmcs-mpesa/internal/middleware"
)

const actionParam = "lnm_action"

// CallbackProcessor is the part of callback.Processor the handler drives.
type CallbackProcessor interface {
	Handle(ctx context.Context, req callback.Request) (*callback.Result, error)
}

type MpesaCallbackHandler struct {
	processor CallbackProcessor
	log       *zap.Logger
}

func NewMpesaCallbackHandler(processor CallbackProcessor, log *zap.Logger) *MpesaCallbackHandler {
	return &MpesaCallbackHandler{processor: processor, log: log}
}

// Handle receives the STK push callback and the confirm/validate requests.
// Ignored deliveries get an empty 200 with no extra headers.
func (h *MpesaCallbackHandler) Handle(c *gin.Context) {
	log := middleware.Logger(c, h.log)
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Warn("mpesa callback: read body", zap.Error(err))
		c.String(http.StatusBadRequest, "Invalid Request Body")
		return
	}
	action, hasAction := c.GetQuery(actionParam)
	log.Debug("mpesa callback received",
		zap.String("action", action),
		zap.Bool("has_action", hasAction),
		zap.ByteString("body", body),
	)

	res, err := h.processor.Handle(c.Request.Context(), callback.Request{
		Action:    action,
		HasAction: hasAction,
		Body:      body,
		Form:      formValues(c, body),
	})
	if err != nil {
		h.fail(c, log, err)
		return
	}

	switch res.Outcome {
	case callback.OutcomeAcknowledged:
		setCallbackHeaders(c)
		c.JSON(http.StatusOK, res.Ack)
	case callback.OutcomeProcessed:
		setCallbackHeaders(c)
		c.Status(http.StatusOK)
	default:
		c.Status(http.StatusOK)
	}
}

func (h *MpesaCallbackHandler) fail(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, callback.ErrModuleInactive):
		c.String(http.StatusServiceUnavailable, "Module Not Activated")
	case errors.Is(err, callback.ErrInvalidInvoiceID):
		c.Header("Access-Control-Allow-Origin", "*")
		c.String(http.StatusBadRequest, "Invalid Invoice ID")
	case errors.Is(err, callback.ErrDuplicateTransaction):
		c.Header("Access-Control-Allow-Origin", "*")
		c.String(http.StatusConflict, "Transaction ID Already Exists")
	case errors.Is(err, callback.ErrInvalidMetadata):
		c.Header("Access-Control-Allow-Origin", "*")
		c.String(http.StatusBadRequest, "Invalid Callback Metadata")
	default:
		log.Error("mpesa callback failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "Internal Server Error")
	}
}

func setCallbackHeaders(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Content-Type", "application/json")
}

// formValues decodes a form-encoded body. Other content types, and JSON sent
// under the form content type, have no form.
func formValues(c *gin.Context, body []byte) url.Values {
	if c.ContentType() != binding.MIMEPOSTForm || len(body) == 0 || json.Valid(body) {
		return nil
	}
	vals, err := url.ParseQuery(string(body))
	if err != nil {
		return nil
	}
	return vals
}
