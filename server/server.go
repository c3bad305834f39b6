package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/ishulabs/captable"
	"github.com/ishulabs/captable/middleware/jwtware"
)

// Options carries everything the HTTP layer depends on. Repo and Auth are
// required; the rest default sensibly.
type Options struct {
	Repo   captable.RepositoryManager
	Auth   captable.Authenticator
	Config captable.Config
	Mailer captable.Mailer
	Clock  captable.Clock
	Logger captable.Logger
}

// Server wraps the fiber app with all routes registered under /v1
type Server struct {
	App    *fiber.App
	logger captable.Logger
}

func New(opts Options) (*Server, error) {
	if opts.Repo == nil {
		return nil, errors.New("server requires a repository manager", errors.CategoryBadInput)
	}

	if opts.Auth == nil {
		return nil, errors.New("server requires an authenticator", errors.CategoryBadInput)
	}

	if opts.Config == nil {
		return nil, errors.New("server requires config options", errors.CategoryBadInput)
	}

	if opts.Logger == nil {
		opts.Logger = captable.DefaultLogger()
	}

	if opts.Clock == nil {
		opts.Clock = captable.SystemClock{}
	}

	if opts.Mailer == nil {
		opts.Mailer = captable.NewMailer("log", "", "", opts.Logger)
	}

	app := fiber.New(fiber.Config{
		AppName:      "captable",
		ErrorHandler: NewErrorHandler(opts.Logger),
	})

	s := &Server{App: app, logger: opts.Logger}
	s.registerRoutes(opts)

	return s, nil
}

func (s *Server) registerRoutes(opts Options) {
	passwordSecret := opts.Config.GetPasswordSecret()
	errorHandler := NewErrorHandler(opts.Logger)

	users := NewUserController(opts.Repo, opts.Auth, passwordSecret, opts.Logger)
	accounts := NewAccountController(opts.Repo, opts.Logger)
	securities := NewSecurityController(opts.Repo, opts.Logger)
	transactions := NewSecurityTransactionController(opts.Repo, opts.Logger)
	shareholders := NewShareholderController(opts.Repo, opts.Mailer, opts.Clock, passwordSecret, opts.Logger)
	captables := NewCaptableController(opts.Repo, opts.Logger)

	protected := jwtware.New(jwtware.Config{
		TokenValidator: tokenValidator{opts.Auth.TokenService()},
		ContextKey:     opts.Config.GetContextKey(),
		UserContextKey: userContextKey,
		AuthScheme:     opts.Config.GetAuthScheme(),
		UserResolver: func(ctx context.Context, userID string) (any, error) {
			return opts.Repo.Users().GetByIdentifier(ctx, userID)
		},
		// Route auth failures through the shared normalizer
		ErrorHandler: errorHandler,
	})

	v1 := s.App.Group("/v1")

	v1.Post("/signup", users.SignUp)
	v1.Post("/signin", users.SignIn)
	v1.Post("/shareholder/invite-accept/:token", shareholders.InviteAccept)

	v1.Get("/me", protected, users.Me)
	v1.Put("/user/password", protected, users.ChangePassword)

	v1.Post("/account", protected, accounts.Create)
	v1.Put("/account", protected, accounts.Update)
	v1.Get("/account/:uuid", protected, accounts.Get)
	v1.Delete("/account/:uuid", protected, accounts.Delete)

	v1.Post("/security", protected, securities.Create)
	v1.Put("/security", protected, securities.Update)
	v1.Get("/security/list/:uuid", protected, securities.ListByAccount)
	v1.Get("/security/:uuid", protected, securities.Get)
	v1.Delete("/security/:uuid", protected, securities.Delete)

	v1.Post("/security-transaction", protected, transactions.Create)
	v1.Put("/security-transaction", protected, transactions.Update)
	v1.Get("/security-transaction/list/:uuid", protected, transactions.ListByShareholder)
	v1.Get("/security-transaction/:uuid", protected, transactions.Get)
	v1.Delete("/security-transaction/:uuid", protected, transactions.Delete)

	v1.Post("/shareholder/invite", protected, shareholders.Invite)
	v1.Post("/shareholder", protected, shareholders.Create)
	v1.Put("/shareholder", protected, shareholders.Update)
	v1.Get("/shareholder/:uuid", protected, shareholders.Get)
	v1.Delete("/shareholder/:uuid", protected, shareholders.Delete)

	v1.Post("/captable/initialize", protected, captables.Initialize)

	// Catch-all, registered last so every unmatched path gets the envelope
	s.App.Use(NotFoundHandler)
}

// Listen serves until the listener fails or Shutdown is called
func (s *Server) Listen(addr string) error {
	return s.App.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.App.ShutdownWithContext(ctx)
}

// tokenValidator adapts the concretely typed token service to the claims
// interface the middleware consumes
type tokenValidator struct {
	service captable.TokenService
}

func (v tokenValidator) Validate(tokenString string) (jwtware.AuthClaims, error) {
	claims, err := v.service.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

const userContextKey = "current_user"

// currentUser pulls the record the auth middleware resolved for this
// request
func currentUser(c *fiber.Ctx) (*captable.User, error) {
	user, ok := c.Locals(userContextKey).(*captable.User)
	if !ok || user == nil {
		return nil, errors.New("missing or malformed JWT", errors.CategoryAuth).
			WithCode(errors.CodeUnauthorized)
	}
	return user, nil
}

func parseUUIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("uuid"))
	if err != nil {
		return uuid.Nil, errors.Wrap(err, errors.CategoryBadInput, "Invalid id")
	}
	return id, nil
}

func success(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}
