package interp

import (
	"fmt"

	"cascade/internal/diag"
	"cascade/internal/heap"
	"cascade/internal/source"
)

// Error is a fatal runtime error carrying the originating span.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func referenceError(sp source.Span, format string, args ...any) *Error {
	return &Error{Code: diag.RunReferenceError, Span: sp, Msg: fmt.Sprintf(format, args...)}
}

func typeError(sp source.Span, format string, args ...any) *Error {
	return &Error{Code: diag.RunTypeError, Span: sp, Msg: fmt.Sprintf(format, args...)}
}

func assertionError(sp source.Span, format string, args ...any) *Error {
	return &Error{Code: diag.RunAssertionFailure, Span: sp, Msg: fmt.Sprintf(format, args...)}
}

// returnSignal unwinds a function body on 'return'. Это не ошибка:
// evalCall перехватывает его и превращает в обычное значение.
type returnSignal struct {
	value heap.Value
}

func (returnSignal) Error() string { return "return outside of function" }
