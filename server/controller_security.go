package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/ishulabs/captable"
)

// SecurityController serves equity class CRUD
type SecurityController struct {
	repo   captable.RepositoryManager
	logger captable.Logger
}

func NewSecurityController(repo captable.RepositoryManager, logger captable.Logger) *SecurityController {
	return &SecurityController{repo: repo, logger: logger}
}

func (s *SecurityController) Create(c *fiber.Ctx) error {
	payload := SecurityPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	record, err := payload.Model()
	if err != nil {
		return err
	}

	security, err := s.repo.Securities().Create(c.Context(), record)
	if err != nil {
		return err
	}

	return success(c, fiber.StatusCreated, fiber.Map{
		"security": security,
	})
}

func (s *SecurityController) Update(c *fiber.Ctx) error {
	payload := SecurityPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	id, err := uuid.Parse(payload.ID)
	if err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Invalid security id")
	}

	record, err := payload.Model()
	if err != nil {
		return err
	}
	record.ID = id

	security, err := s.repo.Securities().Update(c.Context(), record)
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, fiber.Map{
		"security": security,
	})
}

func (s *SecurityController) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c)
	if err != nil {
		return err
	}

	security, err := s.repo.Securities().GetByID(c.Context(), id.String())
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, fiber.Map{
		"security": security,
	})
}

// ListByAccount returns an account's securities oldest first
func (s *SecurityController) ListByAccount(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c)
	if err != nil {
		return err
	}

	records, err := s.repo.Securities().ListByAccount(c.Context(), id)
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, fiber.Map{
		"securities": records,
	})
}

func (s *SecurityController) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c)
	if err != nil {
		return err
	}

	if err := s.repo.Securities().DeleteByID(c.Context(), id); err != nil {
		return err
	}

	return success(c, fiber.StatusOK, fiber.Map{
		"message": "Deleted security successfully",
	})
}
