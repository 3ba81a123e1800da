package workflowerrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind ожидаемая (не инфраструктурная) причина отказа в операции
type Kind string

const (
	InvalidTransition   Kind = "INVALID_TRANSITION"
	OutOfTurn           Kind = "OUT_OF_TURN"
	StageMismatch       Kind = "STAGE_MISMATCH"
	AuthorizationDenied Kind = "AUTHORIZATION_DENIED"
	NotFound            Kind = "NOT_FOUND"
	Validation          Kind = "VALIDATION"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is ошибки одного вида считаются равными, errors.Is(err, workflowerrors.New(OutOfTurn, ""))
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NewInvalidTransition(format string, args ...any) error {
	return Newf(InvalidTransition, format, args...)
}

func NewOutOfTurn(format string, args ...any) error {
	return Newf(OutOfTurn, format, args...)
}

func NewStageMismatch(format string, args ...any) error {
	return Newf(StageMismatch, format, args...)
}

func NewAuthorizationDenied(format string, args ...any) error {
	return Newf(AuthorizationDenied, format, args...)
}

func NewNotFound(format string, args ...any) error {
	return Newf(NotFound, format, args...)
}

func NewValidation(format string, args ...any) error {
	return Newf(Validation, format, args...)
}

// KindOf возвращает вид ожидаемой ошибки, ok=false для инфраструктурных ошибок
func KindOf(err error) (Kind, bool) {
	if err == nil {
		return "", false
	}
	var wfErr *Error
	if errors.As(err, &wfErr) {
		return wfErr.Kind, true
	}
	return "", false
}

func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
