package server

import (
	"net/http/httptest"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishulabs/captable"
)

func TestCategoryStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		category errors.Category
		status   int
	}{
		{errors.CategoryValidation, fiber.StatusBadRequest},
		{errors.CategoryBadInput, fiber.StatusBadRequest},
		{errors.CategoryAuth, fiber.StatusUnauthorized},
		{errors.CategoryAuthz, fiber.StatusForbidden},
		{errors.CategoryNotFound, fiber.StatusNotFound},
		{errors.CategoryConflict, fiber.StatusConflict},
		{errors.CategoryInternal, fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, categoryStatus(tc.category), "category %v", tc.category)
	}
}

func newErrorApp(err error) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: NewErrorHandler(captable.DefaultLogger()),
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return err
	})
	return app
}

func TestErrorHandlerDomainError(t *testing.T) {
	t.Parallel()

	app := newErrorApp(captable.ErrEmailNotConfirmed)

	res, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, res.StatusCode)

	body := decodeError(t, res)
	assert.Equal(t, fiber.StatusForbidden, body.StatusCode)
	assert.Equal(t, "Forbidden", body.Error)
	assert.Equal(t, "Email is not confirmed. You should confirm email first", body.Message)
}

func TestErrorHandlerValidationDetails(t *testing.T) {
	t.Parallel()

	violations := validation.Errors{
		"password": errors.New("cannot be blank", errors.CategoryValidation),
		"email":    errors.New("must be a valid email address", errors.CategoryValidation),
	}

	app := newErrorApp(violations)

	res, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	body := decodeError(t, res)
	require.Len(t, body.Details, 2)
	// details come back sorted by field
	assert.Equal(t, "email", body.Details[0].Field)
	assert.Equal(t, "password", body.Details[1].Field)
}

func TestErrorHandlerFiberErrorPassthrough(t *testing.T) {
	t.Parallel()

	app := newErrorApp(fiber.ErrMethodNotAllowed)

	res, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusMethodNotAllowed, res.StatusCode)

	body := decodeError(t, res)
	assert.Equal(t, fiber.StatusMethodNotAllowed, body.StatusCode)
}

func TestErrorHandlerHidesInternals(t *testing.T) {
	t.Parallel()

	app := newErrorApp(assert.AnError)

	res, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, res.StatusCode)

	body := decodeError(t, res)
	assert.Equal(t, "An internal server error occurred", body.Message)
	assert.NotContains(t, body.Message, assert.AnError.Error())
}

func TestPasswordStrength(t *testing.T) {
	t.Parallel()

	assert.NoError(t, passwordStrength("abc12"))
	assert.NoError(t, passwordStrength("long-enough-passw0rd"))

	// required rules catch blanks; the strength rule lets them through
	assert.NoError(t, passwordStrength(""))

	assert.Error(t, passwordStrength("ab1"))
	assert.Error(t, passwordStrength("alllletters"))
	assert.Error(t, passwordStrength("1234567890"))
}

func TestPhoneNumberRule(t *testing.T) {
	t.Parallel()

	assert.NoError(t, phoneNumber(""))
	assert.NoError(t, phoneNumber("+1 650-253-0000"))
	assert.NoError(t, phoneNumber("(650) 253-0000"))

	assert.Error(t, phoneNumber("not-a-phone"))
	assert.Error(t, phoneNumber("12"))
}

func TestSignUpPayloadValidate(t *testing.T) {
	t.Parallel()

	valid := SignUpPayload{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "secret-pass1",
	}
	assert.NoError(t, valid.Validate())

	missing := SignUpPayload{Email: "ada@example.com"}
	err := missing.Validate()
	require.Error(t, err)

	var violations validation.Errors
	require.ErrorAs(t, err, &violations)
	assert.Contains(t, violations, "firstName")
	assert.Contains(t, violations, "lastName")
	assert.Contains(t, violations, "password")
}
