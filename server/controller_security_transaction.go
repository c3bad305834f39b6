package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/ishulabs/captable"
)

// SecurityTransactionController serves share issuance CRUD
type SecurityTransactionController struct {
	repo   captable.RepositoryManager
	logger captable.Logger
}

func NewSecurityTransactionController(repo captable.RepositoryManager, logger captable.Logger) *SecurityTransactionController {
	return &SecurityTransactionController{repo: repo, logger: logger}
}

func (s *SecurityTransactionController) Create(c *fiber.Ctx) error {
	payload := SecurityTransactionPayload{}
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

	transaction, err := s.repo.SecurityTransactions().Create(c.Context(), record)
	if err != nil {
		return err
	}

	return success(c, fiber.StatusCreated, fiber.Map{
		"transaction": transaction,
	})
}

func (s *SecurityTransactionController) Update(c *fiber.Ctx) error {
	payload := SecurityTransactionPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	id, err := uuid.Parse(payload.ID)
	if err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Invalid transaction id")
	}

	record, err := payload.Model()
	if err != nil {
		return err
	}
	record.ID = id

	transaction, err := s.repo.SecurityTransactions().Update(c.Context(), record)
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, fiber.Map{
		"transaction": transaction,
	})
}

// ListByShareholder returns a shareholder's transactions oldest first
func (s *SecurityTransactionController) ListByShareholder(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c)
	if err != nil {
		return err
	}

	records, err := s.repo.SecurityTransactions().ListByShareholder(c.Context(), id)
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, fiber.Map{
		"transactions": records,
	})
}

func (s *SecurityTransactionController) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c)
	if err != nil {
		return err
	}

	transaction, err := s.repo.SecurityTransactions().GetByID(c.Context(), id.String())
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, fiber.Map{
		"transaction": transaction,
	})
}

func (s *SecurityTransactionController) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c)
	if err != nil {
		return err
	}

	if err := s.repo.SecurityTransactions().DeleteByID(c.Context(), id); err != nil {
		return err
	}

	return success(c, fiber.StatusOK, fiber.Map{
		"message": "Deleted transaction successfully",
	})
}
