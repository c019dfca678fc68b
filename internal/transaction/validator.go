// Package transaction checks phase-two records against a frozen registry.
package transaction

import (
	"errors"

	"pixcheck/internal/domain"
	"pixcheck/internal/fields"
	"pixcheck/internal/rejection"
	"pixcheck/pkg/platform/privacy"
)

// Resolver is the read side of the key registry.
type Resolver interface {
	ResolveOrigin(key string) (int, error)
	ResolveDestiny(key string, originIndex int) (int, error)
}

// Validator applies the transaction checks in a fixed order and stops at the
// first failure.
type Validator struct {
	resolver Resolver
}

// NewValidator creates a Validator reading from resolver.
func NewValidator(resolver Resolver) (*Validator, error) {
	if resolver == nil {
		return nil, errors.New("transaction validator requires a resolver")
	}
	return &Validator{resolver: resolver}, nil
}

// fieldCheck is one grammar applied to a record field.
type fieldCheck struct {
	field string
	value func(domain.TransactionRecord) string
	valid func(string) bool
}

var fieldChecks = []fieldCheck{
	{"amount", func(r domain.TransactionRecord) string { return r.Amount }, fields.ValidateAmount},
	{"date", func(r domain.TransactionRecord) string { return r.Date }, fields.ValidateDate},
	{"time", func(r domain.TransactionRecord) string { return r.Time }, fields.ValidateTime},
	{"security_code", func(r domain.TransactionRecord) string { return r.SecurityCode }, fields.ValidateSecurityCode},
}

// Validate checks origin, destiny, amount, date, time and security code in
// that order. It never mutates the resolver.
func (v *Validator) Validate(rec domain.TransactionRecord) error {
	origin, err := v.resolver.ResolveOrigin(rec.Origin)
	if err != nil {
		return err
	}
	if _, err := v.resolver.ResolveDestiny(rec.Destiny, origin); err != nil {
		return err
	}
	for _, c := range fieldChecks {
		value := c.value(rec)
		if !c.valid(value) {
			if c.field == "security_code" {
				value = privacy.MaskToken(value)
			}
			return rejection.New(rejection.CategoryFormat, c.field, value, "field rejected")
		}
	}
	return nil
}

// ValidateLine parses and validates a raw transaction line.
func (v *Validator) ValidateLine(line string) error {
	rec, err := ParseRecord(line)
	if err != nil {
		return err
	}
	return v.Validate(rec)
}
