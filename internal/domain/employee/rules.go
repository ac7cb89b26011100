package employee

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	MsgRequiredFields = "Please fill in all required fields"
	MsgBankDetails    = "Bank details required for online payments"
	MsgHourlyWage     = "Hourly wage must be a non-negative number"
	MsgPaymentMethod  = "Payment method must be cash or online"
	MsgBranch         = "Branch must be labasa or suva"
)

// Rule rejects a draft when Violated reports true.
type Rule struct {
	Field    Field
	Message  string
	Violated func(Draft) bool
}

// DraftRules is evaluated in order and the first violation wins.
var DraftRules = []Rule{
	{
		Field:   FieldName,
		Message: MsgRequiredFields,
		Violated: func(d Draft) bool {
			return blank(d.Name) || blank(d.Position) || blank(d.HourlyWage) || blank(d.FNPFNo)
		},
	},
	{
		Field:   FieldBankCode,
		Message: MsgBankDetails,
		Violated: func(d Draft) bool {
			return d.PaymentMethod == PaymentOnline && (blank(d.BankCode) || blank(d.BankAccountNumber))
		},
	},
	{
		Field:   FieldHourlyWage,
		Message: MsgHourlyWage,
		Violated: func(d Draft) bool {
			_, err := ParseWage(d.HourlyWage)
			return err != nil
		},
	},
	{
		Field:   FieldPaymentMethod,
		Message: MsgPaymentMethod,
		Violated: func(d Draft) bool {
			return !d.PaymentMethod.Valid()
		},
	},
	{
		Field:   FieldBranch,
		Message: MsgBranch,
		Violated: func(d Draft) bool {
			return !d.Branch.Valid()
		},
	},
}

// Validate returns a *ValidationError for the first rule the draft violates.
func (d Draft) Validate() error {
	for _, rule := range DraftRules {
		if rule.Violated(d) {
			return &ValidationError{Field: rule.Field, Message: rule.Message}
		}
	}
	return nil
}

// Violations lists every rule the draft breaks, in rule order.
func (d Draft) Violations() []ValidationError {
	var out []ValidationError
	for _, rule := range DraftRules {
		if rule.Violated(d) {
			out = append(out, ValidationError{Field: rule.Field, Message: rule.Message})
		}
	}
	return out
}

// ParseWage parses an hourly wage entered as text.
func ParseWage(raw string) (decimal.Decimal, error) {
	wage, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, err
	}
	if wage.IsNegative() {
		return decimal.Zero, &ValidationError{Field: FieldHourlyWage, Message: MsgHourlyWage}
	}
	return wage, nil
}

func (p PaymentMethod) Valid() bool {
	return p == PaymentCash || p == PaymentOnline
}

func (b Branch) Valid() bool {
	return b == BranchLabasa || b == BranchSuva
}

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}
