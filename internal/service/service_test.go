package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Muhidiny/osen-whmcs-mpesa/config"
	"github.com/Muhidiny/osen-whmcs-mpesa/internal/callback"
	"github.com/Muhidiny/osen-whmcs-mpesa/internal/domain"
	"github.com/Muhidiny/osen-whmcs-mpesa/internal/models"
	"github.com/Muhidiny/osen-whmcs-mpesa/internal/repository"
	"github.com/Muhidiny/osen-whmcs-mpesa/internal/testutil"
)

func createInvoice(t *testing.T, db *gorm.DB, total string) *models.Invoice {
	t.Helper()
	inv := &models.Invoice{ClientID: 1, Total: decimal.RequireFromString(total), Status: domain.InvoiceStatusUnpaid}
	if err := repository.NewInvoiceRepository(db).Create(context.Background(), inv); err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	return inv
}

func TestGatewayServiceActivation(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	svc := NewGatewayService(repository.NewGatewaySettingRepository(db), config.GatewayConfig{Module: "mpesa", DisplayName: "M-Pesa", Type: "Invoices"})

	params, err := svc.Variables(ctx, "mpesa")
	if err != nil {
		t.Fatalf("Variables() error = %v", err)
	}
	if params.Active {
		t.Error("unconfigured module reported active")
	}
	if params.Name != "mpesa" {
		t.Errorf("Name = %q, want module fallback", params.Name)
	}

	if err := svc.SetActive(ctx, "mpesa", true); err != nil {
		t.Fatalf("SetActive(true) error = %v", err)
	}
	params, _ = svc.Variables(ctx, "mpesa")
	if !params.Active || params.Name != "M-Pesa" {
		t.Errorf("after activate: %+v", params)
	}

	// Activating twice must not fail on the unique index.
	if err := svc.SetActive(ctx, "mpesa", true); err != nil {
		t.Fatalf("second SetActive(true) error = %v", err)
	}

	if err := svc.SetActive(ctx, "mpesa", false); err != nil {
		t.Fatalf("SetActive(false) error = %v", err)
	}
	params, _ = svc.Variables(ctx, "mpesa")
	if params.Active {
		t.Error("module still active after deactivate")
	}
	if params.Name != "M-Pesa" {
		t.Errorf("display name lost on deactivate: %q", params.Name)
	}
}

func TestCheckCallbackInvoiceID(t *testing.T) {
	db := testutil.NewDB(t)
	inv := createInvoice(t, db, "100.00")
	svc := NewInvoiceService(repository.NewInvoiceRepository(db), zap.NewNop())
	ctx := context.Background()

	id, err := svc.CheckCallbackInvoiceID(ctx, " "+strconv.FormatUint(uint64(inv.ID), 10)+" ", "M-Pesa")
	if err != nil {
		t.Fatalf("CheckCallbackInvoiceID() error = %v", err)
	}
	if id != inv.ID {
		t.Errorf("id = %d, want %d", id, inv.ID)
	}

	for _, raw := range []string{"", "0", "29115-34620561-1", "abc", "999"} {
		if _, err := svc.CheckCallbackInvoiceID(ctx, raw, "M-Pesa"); !errors.Is(err, callback.ErrInvalidInvoiceID) {
			t.Errorf("CheckCallbackInvoiceID(%q) error = %v, want ErrInvalidInvoiceID", raw, err)
		}
	}
}

func TestAddInvoicePaymentAndDuplicate(t *testing.T) {
	db := testutil.NewDB(t)
	inv := createInvoice(t, db, "150.00")
	svc := NewTransactionService(repository.NewTransactionRepository(db), zap.NewNop())
	ctx := context.Background()

	if err := svc.CheckCallbackTransactionID(ctx, "ws_CO_1"); err != nil {
		t.Fatalf("CheckCallbackTransactionID() on empty ledger error = %v", err)
	}
	err := svc.AddInvoicePayment(ctx, callback.InvoicePayment{
		InvoiceID: inv.ID, TransactionID: "ws_CO_1", Amount: decimal.NewFromInt(100), GatewayModule: "mpesa",
	})
	if err != nil {
		t.Fatalf("AddInvoicePayment() error = %v", err)
	}
	if err := svc.CheckCallbackTransactionID(ctx, "ws_CO_1"); !errors.Is(err, callback.ErrDuplicateTransaction) {
		t.Fatalf("CheckCallbackTransactionID() error = %v, want ErrDuplicateTransaction", err)
	}

	got, _ := repository.NewInvoiceRepository(db).GetByID(ctx, inv.ID)
	if got.Status != domain.InvoiceStatusUnpaid {
		t.Errorf("partially paid invoice status = %q, want Unpaid", got.Status)
	}

	err = svc.AddInvoicePayment(ctx, callback.InvoicePayment{
		InvoiceID: inv.ID, TransactionID: "ws_CO_2", Amount: decimal.NewFromInt(50), GatewayModule: "mpesa",
	})
	if err != nil {
		t.Fatalf("second AddInvoicePayment() error = %v", err)
	}
	got, _ = repository.NewInvoiceRepository(db).GetByID(ctx, inv.ID)
	if got.Status != domain.InvoiceStatusPaid || got.DatePaid == nil {
		t.Errorf("invoice = %+v, want Paid with date", got)
	}

	list, err := svc.ListByInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("ListByInvoice() error = %v", err)
	}
	if len(list) != 2 || list[0].TransID != "ws_CO_1" || list[0].Gateway != "mpesa" {
		t.Errorf("ledger = %+v", list)
	}
}

func TestAddInvoicePaymentUnknownInvoice(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewTransactionService(repository.NewTransactionRepository(db), zap.NewNop())
	err := svc.AddInvoicePayment(context.Background(), callback.InvoicePayment{InvoiceID: 77, TransactionID: "x", Amount: decimal.NewFromInt(1)})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("AddInvoicePayment() error = %v, want ErrRecordNotFound", err)
	}
	if err := svc.CheckCallbackTransactionID(context.Background(), "x"); err != nil {
		t.Errorf("rolled back payment still counted: %v", err)
	}
}

func TestLogTransaction(t *testing.T) {
	db := testutil.NewDB(t)
	pub := &recordingPublisher{}
	svc := NewGatewayLogService(repository.NewGatewayLogRepository(db), pub)
	ctx := context.Background()

	if err := svc.LogTransaction(ctx, "M-Pesa", map[string][]string{"a": {"b"}}, "Success"); err != nil {
		t.Fatalf("LogTransaction() error = %v", err)
	}
	if err := svc.LogTransaction(ctx, "Other", "plain text", "Failure"); err != nil {
		t.Fatalf("LogTransaction() error = %v", err)
	}

	list, total, err := svc.List(ctx, "M-Pesa", 1, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Fatalf("List() = %d entries (total %d), want 1", len(list), total)
	}
	if list[0].Result != "Success" || !strings.Contains(list[0].Data, `"a":["b"]`) {
		t.Errorf("entry = %+v", list[0])
	}

	_, total, _ = svc.List(ctx, "", 1, 10)
	if total != 2 {
		t.Errorf("unfiltered total = %d, want 2", total)
	}

	if len(pub.events) != 2 || pub.events[0] != EventGatewayLog {
		t.Errorf("published = %v, want two gateway_log events", pub.events)
	}
	if e, ok := pub.payloads[1].(*models.GatewayLog); !ok || e.ID == 0 || e.Data != "plain text" {
		t.Errorf("published payload = %#v, want stored entry", pub.payloads[1])
	}
}

type recordingPublisher struct {
	events   []string
	payloads []interface{}
}

func (p *recordingPublisher) Publish(eventType string, payload interface{}) {
	p.events = append(p.events, eventType)
	p.payloads = append(p.payloads, payload)
}
