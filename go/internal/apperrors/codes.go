// Package apperrors provides the error taxonomy shared by every grouporder operation.
package apperrors

import "connectrpc.com/connect"

// Code is a machine-readable error code.
type Code string

const (
	// CodeInvalidInput marks malformed or missing caller data. Never retried.
	CodeInvalidInput Code = "invalid_input"
	// CodeNotFound marks a referenced group, participant, menu item or cart item that is absent.
	CodeNotFound Code = "not_found"
	// CodeForbidden marks an actor lacking rights: wrong role, wrong group, group not open, cap reached.
	CodeForbidden Code = "forbidden"
	// CodeConflict marks an illegal lifecycle transition.
	CodeConflict Code = "conflict"
	// CodeDatabaseError marks a store failure. The message is passed through.
	CodeDatabaseError Code = "database_error"
	// CodeServerError marks a collaborator failure such as a misconfigured credential issuer.
	CodeServerError Code = "server_error"
)

// ConnectCode maps taxonomy codes to Connect status codes.
func (c Code) ConnectCode() connect.Code {
	switch c {
	case CodeInvalidInput:
		return connect.CodeInvalidArgument
	case CodeNotFound:
		return connect.CodeNotFound
	case CodeForbidden:
		return connect.CodePermissionDenied
	case CodeConflict:
		return connect.CodeFailedPrecondition
	default:
		return connect.CodeInternal
	}
}
