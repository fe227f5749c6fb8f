// Package mpesa holds the wire types of the Daraja STK push callback and
// the acknowledgement the provider expects back on confirm/validate.
package mpesa

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Envelope is the top-level STK callback document. Only the presence of
// Body is checked up front; its contents are decoded on demand.
type Envelope struct {
	Body json.RawMessage
}

// StkCallback is Body.stkCallback. Identifiers and ResultCode are kept as
// text whether the provider sent them as strings or numbers.
type StkCallback struct {
	MerchantRequestID string
	CheckoutRequestID string
	ResultCode        string
	ResultDesc        string
	CallbackMetadata  *CallbackMetadata
}

type CallbackMetadata struct {
	Item []Item
}

// Item is one metadata entry. Value is kept raw: the provider sends numbers
// for amounts, dates and phones, and strings for receipts.
type Item struct {
	Name  string
	Value json.RawMessage
}

// Metadata item names and their fixed positions in the Item array.
const (
	ItemAmount          = "Amount"
	ItemReceiptNumber   = "MpesaReceiptNumber"
	ItemBalance         = "Balance"
	ItemTransactionDate = "TransactionDate"
	ItemPhoneNumber     = "PhoneNumber"
)

var itemOrder = [...]string{ItemAmount, ItemReceiptNumber, ItemBalance, ItemTransactionDate, ItemPhoneNumber}

var (
	ErrMissingAmount = errors.New("callback metadata has no amount")
	ErrInvalidAmount = errors.New("callback metadata amount is not numeric")
)

// Metadata is the decoded form of CallbackMetadata.
type Metadata struct {
	Amount          decimal.Decimal
	ReceiptNumber   string
	Balance         string
	TransactionDate string
	PhoneNumber     string
}

// ParseEnvelope decodes raw. ok is false when raw is not a JSON object or
// its Body is missing or null; neither case is an error for the caller.
func ParseEnvelope(raw []byte) (env *Envelope, ok bool) {
	top := object(raw)
	if top == nil {
		return nil, false
	}
	body, ok := top["Body"]
	if !ok || isNull(body) {
		return nil, false
	}
	return &Envelope{Body: body}, true
}

// StkCallback decodes Body.stkCallback. It never fails: members of an
// unexpected shape come back empty, scalars of either JSON type as text.
func (e *Envelope) StkCallback() StkCallback {
	fields := object(object(e.Body)["stkCallback"])
	cb := StkCallback{
		MerchantRequestID: scalar(fields["MerchantRequestID"]),
		CheckoutRequestID: scalar(fields["CheckoutRequestID"]),
		ResultCode:        scalar(fields["ResultCode"]),
		ResultDesc:        scalar(fields["ResultDesc"]),
	}
	if md, ok := fields["CallbackMetadata"]; ok && !isNull(md) {
		cb.CallbackMetadata = decodeMetadata(md)
	}
	return cb
}

// decodeMetadata keeps every object in Item. Anything else in the array, or
// an Item that is not an array, is dropped.
func decodeMetadata(raw json.RawMessage) *CallbackMetadata {
	var entries []json.RawMessage
	if err := json.Unmarshal(object(raw)["Item"], &entries); err != nil {
		return &CallbackMetadata{}
	}
	md := &CallbackMetadata{Item: make([]Item, 0, len(entries))}
	for _, entry := range entries {
		fields := object(entry)
		if fields == nil {
			continue
		}
		md.Item = append(md.Item, Item{Name: scalar(fields["Name"]), Value: fields["Value"]})
	}
	return md
}

// object decodes raw as a JSON object, or returns nil.
func object(raw json.RawMessage) map[string]json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var m map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&m); err != nil {
		return nil
	}
	return m
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null"
}

// Decode resolves the five metadata values. Items are matched by Name; an
// item without a Name falls back to its position in the array. Out of range
// positions leave the field empty. Amount is required.
func (m *CallbackMetadata) Decode() (*Metadata, error) {
	values := make(map[string]json.RawMessage, len(itemOrder))
	for i, it := range m.Item {
		name := it.Name
		if name == "" {
			if i >= len(itemOrder) {
				continue
			}
			name = itemOrder[i]
		}
		if _, seen := values[name]; !seen {
			values[name] = it.Value
		}
	}

	raw, ok := values[ItemAmount]
	if !ok || isNull(raw) {
		return nil, ErrMissingAmount
	}
	amount, err := decimal.NewFromString(scalar(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, string(raw))
	}
	return &Metadata{
		Amount:          amount,
		ReceiptNumber:   scalar(values[ItemReceiptNumber]),
		Balance:         scalar(values[ItemBalance]),
		TransactionDate: scalar(values[ItemTransactionDate]),
		PhoneNumber:     scalar(values[ItemPhoneNumber]),
	}, nil
}

// scalar renders a JSON string or number as plain text. Objects and arrays
// come back as their raw JSON.
func scalar(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if isNull(raw) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return s
		}
	}
	return string(raw)
}
