package server

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/ishulabs/captable"
)

// ShareholderController serves shareholder CRUD plus the invite workflow:
// an issuer invites a shareholder by email, the shareholder later redeems
// the mailed token to create a user account linked to their record.
type ShareholderController struct {
	repo           captable.RepositoryManager
	mailer         captable.Mailer
	clock          captable.Clock
	passwordSecret string
	logger         captable.Logger
}

func NewShareholderController(repo captable.RepositoryManager, mailer captable.Mailer, clock captable.Clock, passwordSecret string, logger captable.Logger) *ShareholderController {
	if clock == nil {
		clock = captable.SystemClock{}
	}
	return &ShareholderController{
		repo:           repo,
		mailer:         mailer,
		clock:          clock,
		passwordSecret: passwordSecret,
		logger:         logger,
	}
}

func (s *ShareholderController) Create(c *fiber.Ctx) error {
	payload := ShareholderPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	shareholder, err := s.repo.Shareholders().Create(c.Context(), payload.Model())
	if err != nil {
		return err
	}

	return success(c, fiber.StatusCreated, fiber.Map{
		"shareholder": shareholder,
	})
}

func (s *ShareholderController) Update(c *fiber.Ctx) error {
	payload := ShareholderPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	id, err := uuid.Parse(payload.ID)
	if err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Invalid shareholder id")
	}

	record := payload.Model()
	record.ID = id

	shareholder, err := s.repo.Shareholders().Update(c.Context(), record)
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, fiber.Map{
		"shareholder": shareholder,
	})
}

func (s *ShareholderController) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c)
	if err != nil {
		return err
	}

	shareholder, err := s.repo.Shareholders().GetByID(c.Context(), id.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return captable.ErrShareholderNotFound
		}
		return err
	}

	return success(c, fiber.StatusOK, fiber.Map{
		"shareholder": shareholder,
	})
}

func (s *ShareholderController) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c)
	if err != nil {
		return err
	}

	if err := s.repo.Shareholders().DeleteByID(c.Context(), id); err != nil {
		if repository.IsRecordNotFound(err) {
			return captable.ErrShareholderNotFound
		}
		return err
	}

	return success(c, fiber.StatusOK, fiber.Map{
		"message": "Deleted shareholder successfully",
	})
}

// Invite issues an invite token for the shareholder registered under the
// given email and mails it out. The token is persisted before the mail is
// sent, so a delivery failure leaves a re-mailable invite rather than a
// failed request.
func (s *ShareholderController) Invite(c *fiber.Ctx) error {
	payload := InvitePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	ctx := c.Context()
	email := normalizeEmail(payload.Email)

	shareholder, err := s.repo.Shareholders().GetByInvitedEmail(ctx, email)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return captable.ErrShareholderNotFound
		}
		return err
	}

	if shareholder.Invited() {
		return captable.ErrAlreadyInvited
	}

	token := captable.NewInviteToken(email, s.clock.Now())

	if err := s.repo.Shareholders().MarkInvited(ctx, shareholder.ID, token); err != nil {
		return err
	}

	subject := "You are invited to Ishu"
	body := fmt.Sprintf("Hello %s,\n\nYou have been invited to join Ishu. Use this token to accept: %s\n", shareholder.Name, token)
	if err := s.mailer.Send(ctx, email, subject, body); err != nil {
		s.logger.Error("invite mail failed to=%s error=%v", email, err)
	}

	return success(c, fiber.StatusOK, fiber.Map{
		"message": "Invited shareholder successfully",
	})
}

// InviteAccept redeems an invite token: it creates the user and links the
// shareholder in one transaction, then burns the token so it cannot be
// redeemed twice.
func (s *ShareholderController) InviteAccept(c *fiber.Ctx) error {
	token := c.Params("token")

	payload := InviteAcceptPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	ctx := c.Context()

	shareholder, err := s.repo.Shareholders().GetByInviteToken(ctx, token)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return captable.ErrShareholderNotFound
		}
		return err
	}

	email := normalizeEmail(shareholder.InvitedEmail)

	taken, err := s.repo.Users().EmailTaken(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return captable.ErrEmailTaken
	}

	hash, err := captable.HashPassword(payload.Password, s.passwordSecret)
	if err != nil {
		return err
	}

	var user *captable.User
	err = s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		user, err = s.repo.Users().RegisterTx(ctx, tx, &captable.User{
			FirstName:      payload.FirstName,
			LastName:       payload.LastName,
			Email:          email,
			PasswordHash:   hash,
			EmailConfirmed: true,
		})
		if err != nil {
			return err
		}

		return s.repo.Shareholders().ConsumeInviteTx(ctx, tx, shareholder.ID, user.ID)
	})
	if err != nil {
		return err
	}

	return success(c, fiber.StatusCreated, fiber.Map{
		"message": "Accepted invite successfully",
		"user":    newUserInfo(user),
	})
}
