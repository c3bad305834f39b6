package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/ishulabs/captable"
)

// UserController serves signup, signin, and account self-service
type UserController struct {
	repo           captable.RepositoryManager
	auth           captable.Authenticator
	passwordSecret string
	logger         captable.Logger
}

func NewUserController(repo captable.RepositoryManager, auth captable.Authenticator, passwordSecret string, logger captable.Logger) *UserController {
	return &UserController{
		repo:           repo,
		auth:           auth,
		passwordSecret: passwordSecret,
		logger:         logger,
	}
}

// userInfo is what we expose about a user; the password digest never
// leaves the persistence layer
type userInfo struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	EmailConfirmed bool   `json:"emailConfirmed"`
}

func newUserInfo(user *captable.User) userInfo {
	return userInfo{
		ID:             user.ID.String(),
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Email:          user.Email,
		Phone:          user.Phone,
		EmailConfirmed: user.EmailConfirmed,
	}
}

func (u *UserController) SignUp(c *fiber.Ctx) error {
	payload := SignUpPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	ctx := c.Context()
	email := normalizeEmail(payload.Email)

	taken, err := u.repo.Users().EmailTaken(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return captable.ErrEmailTaken
	}

	hash, err := captable.HashPassword(payload.Password, u.passwordSecret)
	if err != nil {
		return err
	}

	user, err := u.repo.Users().Register(ctx, &captable.User{
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Email:        email,
		Phone:        payload.Phone,
		PasswordHash: hash,
		// No confirmation flow is wired up; accounts are usable right away
		EmailConfirmed: true,
	})
	if err != nil {
		return err
	}

	return success(c, fiber.StatusCreated, fiber.Map{
		"message": "Created user successfully",
		"user":    newUserInfo(user),
	})
}

func (u *UserController) SignIn(c *fiber.Ctx) error {
	payload := SignInPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	token, err := u.auth.Login(c.Context(), normalizeEmail(payload.Email), payload.Password)
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, token)
}

func (u *UserController) Me(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, fiber.Map{
		"user": newUserInfo(user),
	})
}

func (u *UserController) ChangePassword(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	payload := ChangePasswordPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	if err := captable.ComparePasswordAndHash(payload.CurrentPassword, user.PasswordHash, u.passwordSecret); err != nil {
		return errors.New("Current password is incorrect", errors.CategoryAuth)
	}

	hash, err := captable.HashPassword(payload.NewPassword, u.passwordSecret)
	if err != nil {
		return err
	}

	if err := u.repo.Users().ChangePassword(c.Context(), user.ID, hash); err != nil {
		return err
	}

	return success(c, fiber.StatusOK, fiber.Map{
		"message": "Password updated successfully",
	})
}
