package model

import (
	"encoding/json"
	"strings"

	apperrors "wellness-events/pkg/app_errors"

	"github.com/shopspring/decimal"
)

const (
	PriceFreeLiteral = "free"
	Currency         = "EUR"
	currencySymbol   = "€"

	centPlaces = 2
)

type priceKind uint8

const (
	priceUnset priceKind = iota
	priceFree
	pricePriced
)

// Price is either Free or a non-negative amount in EUR.
// The zero value is unset and fails Validate.
type Price struct {
	kind   priceKind
	amount decimal.Decimal
}

var Free = Price{kind: priceFree}

// NewPrice accepts non-negative amounts with at most two decimal places.
func NewPrice(amount decimal.Decimal) (Price, error) {
	if amount.IsNegative() || !amount.Equal(amount.Truncate(centPlaces)) {
		return Price{}, apperrors.ErrInvalidPrice
	}
	return Price{kind: pricePriced, amount: amount}, nil
}

// ParsePrice accepts "free" (any case) or a decimal literal such as "25" or "12.50".
// Sub-cent amounts are rejected rather than rounded.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, PriceFreeLiteral) {
		return Free, nil
	}
	if s == "" {
		return Price{}, apperrors.ErrInvalidPrice
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, apperrors.ErrInvalidPrice
	}
	return NewPrice(amount)
}

func (p Price) IsFree() bool {
	return p.kind == priceFree
}

func (p Price) Amount() decimal.Decimal {
	return p.amount
}

func (p Price) Validate() error {
	switch p.kind {
	case priceFree:
		return nil
	case pricePriced:
		if p.amount.IsNegative() {
			return apperrors.ErrInvalidPrice
		}
		return nil
	}
	return apperrors.ErrInvalidPrice
}

// String is the stored text form: "free", "25" or "12.50".
func (p Price) String() string {
	switch p.kind {
	case priceFree:
		return PriceFreeLiteral
	case pricePriced:
		if p.amount.IsInteger() {
			return p.amount.String()
		}
		return p.amount.StringFixed(centPlaces)
	}
	return ""
}

// Label is the human readable line used in calendar descriptions.
func (p Price) Label() string {
	if p.IsFree() {
		return "Free event"
	}
	return "Price: " + currencySymbol + p.String()
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts a JSON string ("free", "25") or a bare number.
func (p *Price) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return apperrors.ErrInvalidPrice
		}
		s = n.String()
	}
	parsed, err := ParsePrice(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
