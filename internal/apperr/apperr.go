// Package apperr defines the closed error taxonomy shared by every route:
// each failure carries a stable machine code, the HTTP status it maps to and a
// localized user-facing message. Handlers render these into the common
// {"error":{"code","message","details"}} envelope and never leak anything else.
package apperr

type Code string

const (
	CodeValidation              Code = "VALIDATION_ERROR"
	CodeUnauthorized            Code = "UNAUTHORIZED"
	CodeInvalidToken            Code = "INVALID_TOKEN"
	CodeInvalidCredentials      Code = "INVALID_CREDENTIALS"
	CodeInsufficientPermissions Code = "INSUFFICIENT_PERMISSIONS"
	CodeNotFound                Code = "NOT_FOUND"
	CodeTestNotFound            Code = "TEST_NOT_FOUND"
	CodeEmailExists             Code = "EMAIL_EXISTS"
	CodeConflict                Code = "CONFLICT"
	CodeFkConstraint            Code = "FK_CONSTRAINT"
	CodeNoDemoTeacher           Code = "NO_DEMO_TEACHER"
	CodeInternal                Code = "INTERNAL_ERROR"
)

type Error struct {
	Code    Code
	Status  int
	Message string
	Details any
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

func Validation(details any) *Error {
	return &Error{Code: CodeValidation, Status: 400, Message: "Dati non validi", Details: details}
}

func Unauthorized() *Error {
	return &Error{Code: CodeUnauthorized, Status: 401, Message: "Accesso non autorizzato"}
}

func InvalidToken() *Error {
	return &Error{Code: CodeInvalidToken, Status: 401, Message: "Token non valido"}
}

func InvalidCredentials() *Error {
	return &Error{Code: CodeInvalidCredentials, Status: 401, Message: "Email o password non corretti"}
}

func InsufficientPermissions() *Error {
	return &Error{Code: CodeInsufficientPermissions, Status: 403, Message: "Permessi insufficienti"}
}

func NotFound() *Error {
	return &Error{Code: CodeNotFound, Status: 404, Message: "Endpoint non trovato"}
}

func TestNotFound() *Error {
	return &Error{Code: CodeTestNotFound, Status: 404, Message: "Verifica non trovata"}
}

func EmailExists() *Error {
	return &Error{Code: CodeEmailExists, Status: 409, Message: "Un utente con questa email esiste già"}
}

func Conflict() *Error {
	return &Error{Code: CodeConflict, Status: 409, Message: "Conflitto con una risorsa esistente"}
}

func FkConstraint() *Error {
	return &Error{Code: CodeFkConstraint, Status: 400, Message: "Riferimento a una risorsa inesistente"}
}

func NoDemoTeacher() *Error {
	return &Error{Code: CodeNoDemoTeacher, Status: 500, Message: "Nessun docente demo disponibile"}
}

func Internal() *Error {
	return &Error{Code: CodeInternal, Status: 500, Message: "Errore interno del server"}
}
