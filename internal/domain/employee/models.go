package employee

import "fmt"

type PaymentMethod string

type Branch string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentOnline PaymentMethod = "online"

	BranchLabasa Branch = "labasa"
	BranchSuva   Branch = "suva"
)

var (
	PaymentMethods = []string{string(PaymentCash), string(PaymentOnline)}
	Branches       = []string{string(BranchLabasa), string(BranchSuva)}
)

// Employee is one document of the employees collection. HourlyWage is kept
// as text the way operators enter it.
type Employee struct {
	ID                string        `json:"id" yaml:"id"`
	Name              string        `json:"name" yaml:"name"`
	Position          string        `json:"position" yaml:"position"`
	HourlyWage        string        `json:"hourlyWage" yaml:"hourlyWage"`
	FNPFNo            string        `json:"fnpfNo" yaml:"fnpfNo"`
	BankCode          string        `json:"bankCode" yaml:"bankCode"`
	BankAccountNumber string        `json:"bankAccountNumber" yaml:"bankAccountNumber"`
	PaymentMethod     PaymentMethod `json:"paymentMethod" yaml:"paymentMethod"`
	Branch            Branch        `json:"branch" yaml:"branch"`
}

// Draft is the editable copy of an employee. It never carries the identifier.
type Draft struct {
	Name              string        `json:"name"`
	Position          string        `json:"position"`
	HourlyWage        string        `json:"hourlyWage"`
	FNPFNo            string        `json:"fnpfNo"`
	BankCode          string        `json:"bankCode"`
	BankAccountNumber string        `json:"bankAccountNumber"`
	PaymentMethod     PaymentMethod `json:"paymentMethod"`
	Branch            Branch        `json:"branch"`
}

func DefaultDraft() Draft {
	return Draft{PaymentMethod: PaymentCash, Branch: BranchLabasa}
}

func (e Employee) Draft() Draft {
	return Draft{
		Name:              e.Name,
		Position:          e.Position,
		HourlyWage:        e.HourlyWage,
		FNPFNo:            e.FNPFNo,
		BankCode:          e.BankCode,
		BankAccountNumber: e.BankAccountNumber,
		PaymentMethod:     e.PaymentMethod,
		Branch:            e.Branch,
	}
}

func (d Draft) WithID(id string) Employee {
	return Employee{
		ID:                id,
		Name:              d.Name,
		Position:          d.Position,
		HourlyWage:        d.HourlyWage,
		FNPFNo:            d.FNPFNo,
		BankCode:          d.BankCode,
		BankAccountNumber: d.BankAccountNumber,
		PaymentMethod:     d.PaymentMethod,
		Branch:            d.Branch,
	}
}

// Field names one editable attribute of a draft. Values match the JSON keys.
type Field string

const (
	FieldName              Field = "name"
	FieldPosition          Field = "position"
	FieldHourlyWage        Field = "hourlyWage"
	FieldFNPFNo            Field = "fnpfNo"
	FieldBankCode          Field = "bankCode"
	FieldBankAccountNumber Field = "bankAccountNumber"
	FieldPaymentMethod     Field = "paymentMethod"
	FieldBranch            Field = "branch"
)

var Fields = []Field{
	FieldName,
	FieldPosition,
	FieldHourlyWage,
	FieldFNPFNo,
	FieldPaymentMethod,
	FieldBankCode,
	FieldBankAccountNumber,
	FieldBranch,
}

// Set assigns value to field without validating it.
func (d *Draft) Set(field Field, value string) error {
	switch field {
	case FieldName:
		d.Name = value
	case FieldPosition:
		d.Position = value
	case FieldHourlyWage:
		d.HourlyWage = value
	case FieldFNPFNo:
		d.FNPFNo = value
	case FieldBankCode:
		d.BankCode = value
	case FieldBankAccountNumber:
		d.BankAccountNumber = value
	case FieldPaymentMethod:
		d.PaymentMethod = PaymentMethod(value)
	case FieldBranch:
		d.Branch = Branch(value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

func (d Draft) Get(field Field) string {
	switch field {
	case FieldName:
		return d.Name
	case FieldPosition:
		return d.Position
	case FieldHourlyWage:
		return d.HourlyWage
	case FieldFNPFNo:
		return d.FNPFNo
	case FieldBankCode:
		return d.BankCode
	case FieldBankAccountNumber:
		return d.BankAccountNumber
	case FieldPaymentMethod:
		return string(d.PaymentMethod)
	case FieldBranch:
		return string(d.Branch)
	}
	return ""
}
