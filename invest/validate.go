/*
validate.go - Submission predicate for candidate investment records

PURPOSE:
  One shared, pure validation routine used by both the create and the
  renew paths. The create and renew forms check the same nine fields, so
  there is a single predicate instead of two copies.

RULES:
  Non-empty: inv_name, name, inv_type, return_type
  Non-zero:  inv_amount, return_amount, return_rate
  Present:   start_date, end_date

  All violations are reported together in one pass, keyed by field, so a
  form can show every problem at once. Field values' magnitude is not
  judged here; a record with all fields populated passes.

ERROR CLEARING:
  Editing a field clears that field's message immediately via
  FieldErrors.Clear, independent of full-form re-validation.

SEE ALSO:
  - client/controller.go: runs Validate before Create/Renew
*/
package invest

import (
	"fmt"
	"sort"
	"strings"
)

// Field keys used in validation error maps and wire payloads.
const (
	FieldInvName      = "inv_name"
	FieldHolderName   = "name"
	FieldInvType      = "inv_type"
	FieldReturnType   = "return_type"
	FieldInvAmount    = "inv_amount"
	FieldReturnAmount = "return_amount"
	FieldReturnRate   = "return_rate"
	FieldStartDate    = "start_date"
	FieldEndDate      = "end_date"
)

// FieldErrors maps a field key to its validation message.
type FieldErrors map[string]string

// Validate checks a candidate record for completeness before submission.
// It reports every violated field, not just the first. A nil result means
// the record may be submitted.
func Validate(inv Investment) FieldErrors {
	errs := FieldErrors{}

	if inv.InvName == "" {
		errs[FieldInvName] = "Investment Name can not be blank"
	}
	if inv.HolderName == "" {
		errs[FieldHolderName] = "Name can not be blank"
	}
	if inv.InvType == "" {
		errs[FieldInvType] = "Investment Type can not be blank"
	}
	if inv.ReturnType == "" {
		errs[FieldReturnType] = "Return Type can not be blank"
	}
	if inv.InvAmount == 0 {
		errs[FieldInvAmount] = "Investment Amount can not be blank"
	}
	if inv.ReturnAmount == 0 {
		errs[FieldReturnAmount] = "Return Amount can not be blank"
	}
	if inv.ReturnRate == 0 {
		errs[FieldReturnRate] = "Return Rate can not be blank"
	}
	if inv.StartDate == nil {
		errs[FieldStartDate] = "Start Date can not be blank"
	}
	if inv.EndDate == nil {
		errs[FieldEndDate] = "End Date can not be blank"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Clear removes the message for a single field. Called when that field is
// edited, before any re-validation.
func (fe FieldErrors) Clear(field string) {
	delete(fe, field)
}

// Error makes FieldErrors usable as an error value. Fields are listed in
// deterministic order.
func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "valid"
	}
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("%s: %s", ErrValidationFailed, strings.Join(fields, ", "))
}

// Unwrap lets errors.Is(fe, ErrValidationFailed) hold.
func (fe FieldErrors) Unwrap() error {
	return ErrValidationFailed
}
