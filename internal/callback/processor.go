// Package callback processes M-Pesa STK push result callbacks for a billing
// gateway module: acknowledge the provider's confirm/validate requests, and
// apply successful results to invoices.
package callback

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Muhidiny/osen-whmcs-mpesa/internal/domain"
	"github.com/Muhidiny/osen-whmcs-mpesa/internal/mpesa"
)

// GatewayParams is the resolved configuration of a gateway module.
type GatewayParams struct {
	Name     string
	Active   bool
	Settings map[string]string
}

// InvoicePayment is the ledger entry posted for a successful callback.
type InvoicePayment struct {
	InvoiceID     uint
	TransactionID string
	Amount        decimal.Decimal
	Fee           decimal.Decimal
	GatewayModule string
}

type GatewayConfig interface {
	Variables(ctx context.Context, module string) (GatewayParams, error)
}

type InvoiceValidator interface {
	// CheckCallbackInvoiceID returns the normalized invoice id or ErrInvalidInvoiceID.
	CheckCallbackInvoiceID(ctx context.Context, raw, gatewayName string) (uint, error)
}

type TransactionChecker interface {
	// CheckCallbackTransactionID returns ErrDuplicateTransaction when transID was already applied.
	CheckCallbackTransactionID(ctx context.Context, transID string) error
}

type TransactionLogger interface {
	LogTransaction(ctx context.Context, gatewayName string, data interface{}, status string) error
}

type PaymentPoster interface {
	AddInvoicePayment(ctx context.Context, p InvoicePayment) error
}

// Request is one inbound callback delivery.
type Request struct {
	Action    string
	HasAction bool
	Body      []byte
	// Form holds form-encoded POST parameters; it is logged as-is.
	Form map[string][]string
}

type Outcome int

const (
	// OutcomeIgnored: no action flag or no callback body. Nothing is written.
	OutcomeIgnored Outcome = iota
	// OutcomeAcknowledged: confirm/validate request, Ack holds the reply.
	OutcomeAcknowledged
	// OutcomeProcessed: a result callback went through validation and logging.
	OutcomeProcessed
)

type Result struct {
	Outcome Outcome
	Ack     *mpesa.Acknowledgement

	InvoiceID     uint
	TransactionID string
	Status        string
	Metadata      *mpesa.Metadata
	PaymentPosted bool
}

// Processor runs the callback flow for one gateway module.
type Processor struct {
	module       string
	gateways     GatewayConfig
	invoices     InvoiceValidator
	transactions TransactionChecker
	logs         TransactionLogger
	payments     PaymentPoster
	log          *zap.Logger
}

func NewProcessor(
	module string,
	gateways GatewayConfig,
	invoices InvoiceValidator,
	transactions TransactionChecker,
	logs TransactionLogger,
	payments PaymentPoster,
	log *zap.Logger,
) *Processor {
	return &Processor{
		module:       module,
		gateways:     gateways,
		invoices:     invoices,
		transactions: transactions,
		logs:         logs,
		payments:     payments,
		log:          log,
	}
}

// Module is the gateway module name payments are posted under.
func (p *Processor) Module() string {
	return p.module
}

// Handle runs req through the callback flow. A non-nil error always means
// the request must be rejected; the Result is nil in that case.
func (p *Processor) Handle(ctx context.Context, req Request) (*Result, error) {
	params, err := p.gateways.Variables(ctx, p.module)
	if err != nil {
		return nil, fmt.Errorf("gateway variables: %w", err)
	}
	if !params.Active {
		return nil, ErrModuleInactive
	}

	if !req.HasAction {
		return &Result{Outcome: OutcomeIgnored}, nil
	}
	env, ok := mpesa.ParseEnvelope(req.Body)
	if !ok {
		p.log.Debug("callback without Body ignored", zap.String("action", req.Action))
		return &Result{Outcome: OutcomeIgnored}, nil
	}

	switch req.Action {
	case domain.ActionConfirm, domain.ActionValidate:
		ack := mpesa.Accepted()
		return &Result{Outcome: OutcomeAcknowledged, Ack: &ack}, nil
	}
	cb := env.StkCallback()
	return p.process(ctx, params, req, &cb)
}

func (p *Processor) process(ctx context.Context, params GatewayParams, req Request, cb *mpesa.StkCallback) (*Result, error) {
	res := &Result{Outcome: OutcomeProcessed, TransactionID: cb.CheckoutRequestID}
	log := p.log.With(
		zap.String("merchant_request_id", cb.MerchantRequestID),
		zap.String("checkout_request_id", cb.CheckoutRequestID),
		zap.String("result_code", cb.ResultCode),
		zap.String("result_desc", cb.ResultDesc),
	)

	success := false
	if cb.CallbackMetadata != nil {
		md, err := cb.CallbackMetadata.Decode()
		if err != nil {
			log.Warn("callback metadata rejected", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
		}
		res.Metadata = md
		success = true
	}
	res.Status = domain.TransactionStatusFailure
	if success {
		res.Status = domain.TransactionStatusSuccess
	}

	// MerchantRequestID doubles as the invoice reference.
	invoiceID, err := p.invoices.CheckCallbackInvoiceID(ctx, cb.MerchantRequestID, params.Name)
	if err != nil {
		log.Warn("callback invoice rejected", zap.Error(err))
		return nil, err
	}
	res.InvoiceID = invoiceID

	if err := p.transactions.CheckCallbackTransactionID(ctx, cb.CheckoutRequestID); err != nil {
		log.Warn("callback transaction rejected", zap.Error(err))
		return nil, err
	}

	if err := p.logs.LogTransaction(ctx, params.Name, logPayload(req), res.Status); err != nil {
		return nil, fmt.Errorf("log transaction: %w", err)
	}

	if !success {
		log.Info("callback recorded without payment", zap.Uint("invoice_id", invoiceID))
		return res, nil
	}

	err = p.payments.AddInvoicePayment(ctx, InvoicePayment{
		InvoiceID:     invoiceID,
		TransactionID: cb.CheckoutRequestID,
		Amount:        res.Metadata.Amount,
		Fee:           decimal.Zero,
		GatewayModule: p.module,
	})
	if err != nil {
		return nil, fmt.Errorf("add invoice payment: %w", err)
	}
	res.PaymentPosted = true
	log.Info("callback payment applied",
		zap.Uint("invoice_id", invoiceID),
		zap.String("amount", res.Metadata.Amount.String()),
		zap.String("receipt", res.Metadata.ReceiptNumber),
	)
	return res, nil
}

// logPayload is the form post when there is one, the raw body otherwise.
func logPayload(req Request) interface{} {
	if len(req.Form) > 0 {
		return req.Form
	}
	return map[string]string{"raw": string(req.Body)}
}
