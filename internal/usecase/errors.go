package usecase

import (
	"errors"
	"fmt"
)

// DomainError é erro do cliente (entrada inválida, identidade não resolvida). Vira 4xx.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError é falha de infraestrutura (banco, broker). Vira 5xx.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

const (
	CodeValidation            = "VALIDATION_ERROR"
	CodeUnreadableSpreadsheet = "UNREADABLE_SPREADSHEET"
	CodeMissingAccountID      = "MISSING_ACCOUNT_ID"
	CodeIdentityUnresolvable  = "IDENTITY_UNRESOLVABLE"
	CodeInvalidPayload        = "INVALID_PAYLOAD"
	CodeNotFound              = "NOT_FOUND"
	CodeDatabase              = "DATABASE_ERROR"
	CodeBroker                = "BROKER_ERROR"
	CodeDispatch              = "DISPATCH_ERROR"
)

var (
	ErrMissingAccountID = &DomainError{
		Code:    CodeMissingAccountID,
		Message: "account_id ausente no evento",
	}
	ErrIdentityUnresolvable = &DomainError{
		Code:    CodeIdentityUnresolvable,
		Message: "não foi possível identificar o dono da conta",
	}
)

func validationError(errs []ValidationError) *DomainError {
	msg := "validation failed: "
	for i, e := range errs {
		if i > 0 {
			msg += ", "
		}
		msg += e.Field + " (" + e.Message + ")"
	}
	return &DomainError{Code: CodeValidation, Message: msg}
}

func dbError(message string, err error) *TechnicalError {
	return &TechnicalError{Code: CodeDatabase, Message: message, Err: err}
}
