package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"

	"github.com/ishulabs/captable"
)

// CaptableController bootstraps a full cap table in one request
type CaptableController struct {
	repo   captable.RepositoryManager
	logger captable.Logger
}

func NewCaptableController(repo captable.RepositoryManager, logger captable.Logger) *CaptableController {
	return &CaptableController{repo: repo, logger: logger}
}

// Initialize creates the account, its securities, and its shareholders in
// a single transaction; a failure anywhere rolls the whole cap table back.
func (ct *CaptableController) Initialize(c *fiber.Ctx) error {
	payload := CaptableInitPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var account *captable.Account
	securities := make([]*captable.Security, 0, len(payload.Securities))
	shareholders := make([]*captable.Shareholder, 0, len(payload.Shareholders))

	err = ct.repo.RunInTx(c.Context(), nil, func(ctx context.Context, tx bun.Tx) error {
		account, err = ct.repo.Accounts().CreateTx(ctx, tx, payload.Account.Model())
		if err != nil {
			return err
		}

		owner := &captable.UserAccount{
			UserID:    &user.ID,
			AccountID: &account.ID,
			Role:      captable.RoleOwner,
		}
		if _, err := ct.repo.UserAccounts().CreateTx(ctx, tx, owner); err != nil {
			return err
		}

		for _, sec := range payload.Securities {
			record := &captable.Security{
				Name:        sec.Name,
				Type:        sec.Type,
				Authorized:  sec.Authorized,
				Liquidation: sec.Liquidation,
				AccountID:   &account.ID,
			}
			created, err := ct.repo.Securities().CreateTx(ctx, tx, record)
			if err != nil {
				return err
			}
			securities = append(securities, created)
		}

		for _, holder := range payload.Shareholders {
			created, err := ct.repo.Shareholders().CreateTx(ctx, tx, holder.Model())
			if err != nil {
				return err
			}
			shareholders = append(shareholders, created)

			link := &captable.UserAccount{
				AccountID:     &account.ID,
				ShareholderID: &created.ID,
				Role:          captable.RoleShareholder,
			}
			if _, err := ct.repo.UserAccounts().CreateTx(ctx, tx, link); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	return success(c, fiber.StatusCreated, fiber.Map{
		"message":      "Created captable data successfully",
		"account":      account,
		"securities":   securities,
		"shareholders": shareholders,
	})
}
