// Package ingest decodes the OCR/AI extraction collaborator's payload into
// domain types. The collaborator is not trusted: prices arrive as numbers or
// strings, names go missing, currencies show up as symbols. Decoding is
// defensive throughout; it shapes the data and leaves validation to the
// aggregation engine.
package ingest

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ntalo/ntalo/internal/lexicon"
	"github.com/ntalo/ntalo/internal/model"
)

// dateLayouts are tried in order when parsing the receipt date.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"02/01/2006",
	"2006-01-02 15:04:05",
}

// payload mirrors the collaborator's wire format.
type payload struct {
	ReceiptID string     `json:"receiptId"`
	UserID    string     `json:"userId"`
	City      string     `json:"city"`
	StoreName string     `json:"storeName"`
	Currency  string     `json:"currency"`
	Date      string     `json:"date"`
	Items     []wireItem `json:"items"`
	Pages     []wirePage `json:"pages"`
}

type wirePage struct {
	StoreName string     `json:"storeName"`
	Currency  string     `json:"currency"`
	Items     []wireItem `json:"items"`
}

type wireItem struct {
	Name       json.RawMessage `json:"name"`
	Unit       string          `json:"unit"`
	Category   string          `json:"category"`
	Currency   string          `json:"currency"`
	Quantity   flexFloat       `json:"quantity"`
	UnitPrice  flexFloat       `json:"unitPrice"`
	TotalPrice flexFloat       `json:"totalPrice"`
}

// flexFloat decodes a JSON number, a numeric string ("1,500.00"), or null.
// Anything unparseable becomes zero rather than an error.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` || s == "" {
		*f = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	value, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		*f = 0
		return nil
	}
	*f = flexFloat(value)
	return nil
}

// Decoder turns collaborator payloads into receipts.
type Decoder struct {
	lex *lexicon.Lexicon
	now func() time.Time
}

// NewDecoder builds a decoder using the lexicon's currency symbol table.
func NewDecoder(lex *lexicon.Lexicon) *Decoder {
	return &Decoder{lex: lex, now: time.Now}
}

// Decode parses a single-page receipt payload. Multi-page payloads must go
// through DecodePages and the merge resolver instead.
func (d *Decoder) Decode(data []byte) (*model.Receipt, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode receipt payload: %w", err)
	}
	return d.receiptFrom(&p, p.Items), nil
}

// DecodePages parses a multi-image payload into its pages plus the
// receipt-level envelope. Pages are returned unreconciled.
func (d *Decoder) DecodePages(data []byte) (*model.Receipt, []model.ReceiptPage, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, nil, fmt.Errorf("failed to decode receipt payload: %w", err)
	}

	pages := make([]model.ReceiptPage, 0, len(p.Pages))
	for _, page := range p.Pages {
		pages = append(pages, model.ReceiptPage{
			StoreName: strings.TrimSpace(page.StoreName),
			Currency:  d.foldCurrency(page.Currency),
			Items:     d.itemsFrom(page.Items, page.Currency),
		})
	}

	return d.receiptFrom(&p, nil), pages, nil
}

func (d *Decoder) receiptFrom(p *payload, items []wireItem) *model.Receipt {
	receipt := &model.Receipt{
		ID:        strings.TrimSpace(p.ReceiptID),
		UserID:    strings.TrimSpace(p.UserID),
		City:      strings.TrimSpace(strings.ToLower(p.City)),
		StoreName: strings.TrimSpace(p.StoreName),
		Currency:  d.foldCurrency(p.Currency),
		Date:      d.parseDate(p.Date),
		Items:     d.itemsFrom(items, p.Currency),
	}
	if receipt.ID == "" {
		receipt.ID = uuid.NewString()
	}
	return receipt
}

func (d *Decoder) itemsFrom(items []wireItem, fallbackCurrency string) []model.RawItem {
	out := make([]model.RawItem, 0, len(items))
	for _, item := range items {
		currency := item.Currency
		if currency == "" {
			currency = fallbackCurrency
		}
		out = append(out, model.RawItem{
			Name:       decodeName(item.Name),
			Unit:       strings.TrimSpace(item.Unit),
			Category:   strings.TrimSpace(item.Category),
			Currency:   d.foldCurrency(currency),
			Quantity:   float64(item.Quantity),
			UnitPrice:  float64(item.UnitPrice),
			TotalPrice: float64(item.TotalPrice),
		})
	}
	return out
}

// decodeName accepts a string or, defensively, any scalar the collaborator
// put in the name field.
func decodeName(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}

// foldCurrency maps symbols and informal spellings ("FC", "$", "francs") to
// ISO codes. Unrecognized values pass through uppercased.
func (d *Decoder) foldCurrency(raw string) string {
	c := strings.TrimSpace(strings.ToLower(raw))
	if c == "" {
		return ""
	}
	if iso, ok := d.lex.CurrencySymbols[c]; ok {
		return iso
	}
	return strings.ToUpper(c)
}

func (d *Decoder) parseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
