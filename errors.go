package captable

import (
	"github.com/goliatone/go-errors"
)

// Text codes give API clients a stable, machine readable discriminator
// that survives message copy changes.
const (
	TextCodeInvalidCreds       = "INVALID_CREDENTIALS"
	TextCodeTooManyAttempts    = "TOO_MANY_LOGIN_ATTEMPTS"
	TextCodeTokenExpired       = "TOKEN_EXPIRED"
	TextCodeTokenMalformed     = "TOKEN_MALFORMED"
	TextCodeEmptyPassword      = "EMPTY_PASSWORD"
	TextCodeEmailTaken         = "EMAIL_TAKEN"
	TextCodeEmailNotConfirmed  = "EMAIL_NOT_CONFIRMED"
	TextCodeUserNotFound       = "USER_NOT_FOUND"
	TextCodeAlreadyInvited     = "ALREADY_INVITED"
	TextCodeShareholderMissing = "SHAREHOLDER_NOT_FOUND"
)

// ErrMismatchedHashAndPassword is returned when a credential check fails.
// The message matches what the API has always surfaced to clients.
var ErrMismatchedHashAndPassword = errors.New("Invalid credentials", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeInvalidCreds)

// ErrTooManyLoginAttempts is returned once a user exhausts the attempt
// budget inside the cool down window.
var ErrTooManyLoginAttempts = errors.New("too many login attempts", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTooManyAttempts)

// ErrTokenExpired is returned for tokens past their exp claim. There is no
// server side revocation; expiry is the only way a token dies.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTokenExpired)

// ErrTokenMalformed covers bad signatures, wrong algorithms, and garbage input
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTokenMalformed)

// ErrNoEmptyString rejects empty passwords before they reach the KDF
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword)

// ErrUserNotFound is surfaced on sign-in with an unknown email
var ErrUserNotFound = errors.New("User not found!", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound).
	WithTextCode(TextCodeUserNotFound)

// ErrEmailNotConfirmed blocks sign-in until the address has been verified.
// The legacy API answered 405 here; 403 is the normalized mapping.
var ErrEmailNotConfirmed = errors.New("Email is not confirmed. You should confirm email first", errors.CategoryAuthz).
	WithCode(errors.CodeForbidden).
	WithTextCode(TextCodeEmailNotConfirmed)

// ErrEmailTaken enforces the case-insensitive unique email invariant
var ErrEmailTaken = errors.New("User with such email already exists!", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest).
	WithTextCode(TextCodeEmailTaken)

// ErrAlreadyInvited is returned when a shareholder already carries an
// invite token; invitations are issued at most once.
var ErrAlreadyInvited = errors.New("Shareholder is already invited to Ishu", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest).
	WithTextCode(TextCodeAlreadyInvited)

// ErrShareholderNotFound covers lookups by id and by invite token
var ErrShareholderNotFound = errors.New("Shareholder not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound).
	WithTextCode(TextCodeShareholderMissing)
