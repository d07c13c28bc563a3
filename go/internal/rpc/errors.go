package rpc

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mcdev12/grouporder/go/internal/apperrors"
)

// ErrorCodeHeader carries the exact taxonomy code alongside the Connect code.
const ErrorCodeHeader = "Grouporder-Error-Code"

// fieldHeader names the offending request field of an invalid_input error.
const fieldHeader = "Grouporder-Error-Field"

// ToConnectError converts any error into a Connect error. Errors outside the
// taxonomy are reported as database_error.
func ToConnectError(err error) *connect.Error {
	if err == nil {
		return nil
	}
	var ce *connect.Error
	if errors.As(err, &ce) && ce.Meta().Get(ErrorCodeHeader) != "" {
		return ce
	}

	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = apperrors.Database(err)
	}

	out := connect.NewError(appErr.Code.ConnectCode(), errors.New(appErr.Message))
	out.Meta().Set(ErrorCodeHeader, string(appErr.Code))
	if field := appErr.Metadata["field"]; field != "" {
		out.Meta().Set(fieldHeader, field)
	}
	return out
}

// FromConnectError rebuilds the domain error carried by a Connect error.
func FromConnectError(err error) *apperrors.Error {
	if err == nil {
		return nil
	}
	var ce *connect.Error
	if !errors.As(err, &ce) {
		return apperrors.Wrap(apperrors.CodeServerError, err.Error(), err)
	}

	code := apperrors.Code(ce.Meta().Get(ErrorCodeHeader))
	if code == "" {
		code = codeFromConnect(ce.Code())
	}
	out := apperrors.Wrap(code, ce.Message(), err)
	if field := ce.Meta().Get(fieldHeader); field != "" {
		out.Metadata = map[string]string{"field": field}
	}
	return out
}

// codeFromConnect maps a bare Connect code back onto the taxonomy when the
// peer did not send the exact code header.
func codeFromConnect(code connect.Code) apperrors.Code {
	switch code {
	case connect.CodeInvalidArgument:
		return apperrors.CodeInvalidInput
	case connect.CodeNotFound:
		return apperrors.CodeNotFound
	case connect.CodePermissionDenied:
		return apperrors.CodeForbidden
	case connect.CodeFailedPrecondition:
		return apperrors.CodeConflict
	default:
		return apperrors.CodeServerError
	}
}
