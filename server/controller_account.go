package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/ishulabs/captable"
)

// AccountController serves company CRUD
type AccountController struct {
	repo   captable.RepositoryManager
	logger captable.Logger
}

func NewAccountController(repo captable.RepositoryManager, logger captable.Logger) *AccountController {
	return &AccountController{repo: repo, logger: logger}
}

func (a *AccountController) Create(c *fiber.Ctx) error {
	payload := AccountPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	account, err := a.repo.Accounts().Create(c.Context(), payload.Model())
	if err != nil {
		return err
	}

	// The creator becomes the account owner
	if user, err := currentUser(c); err == nil {
		link := &captable.UserAccount{
			UserID:    &user.ID,
			AccountID: &account.ID,
			Role:      captable.RoleOwner,
		}
		if _, err := a.repo.UserAccounts().Create(c.Context(), link); err != nil {
			return err
		}
	}

	return success(c, fiber.StatusCreated, fiber.Map{
		"account": account,
	})
}

func (a *AccountController) Update(c *fiber.Ctx) error {
	payload := AccountPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	id, err := uuid.Parse(payload.ID)
	if err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Invalid account id")
	}

	record := payload.Model()
	record.ID = id

	account, err := a.repo.Accounts().Update(c.Context(), record)
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, fiber.Map{
		"account": account,
	})
}

func (a *AccountController) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c)
	if err != nil {
		return err
	}

	account, err := a.repo.Accounts().GetByID(c.Context(), id.String())
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, fiber.Map{
		"account": account,
	})
}

func (a *AccountController) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c)
	if err != nil {
		return err
	}

	if err := a.repo.Accounts().DeleteByID(c.Context(), id); err != nil {
		return err
	}

	return success(c, fiber.StatusOK, fiber.Map{
		"message": "Deleted account successfully",
	})
}
