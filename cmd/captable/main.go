package main

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	gconfig "github.com/goliatone/go-config/config"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-persistence-bun"
	"github.com/goliatone/go-print"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/ishulabs/captable"
	"github.com/ishulabs/captable/config"
	"github.com/ishulabs/captable/server"
)

//go:embed data/fixtures/*.yml
var fixturesFS embed.FS

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("captable"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg := gconfig.New(&config.AppConfig{}).
		WithLogger(lgr.GetLogger("config"))

	ctx := context.Background()
	if err := cfg.Load(ctx); err != nil {
		panic(err)
	}

	fmt.Println("============")
	fmt.Println(print.MaybeHighlightJSON(cfg.Raw()))
	fmt.Println("============")

	conf := cfg.Raw()

	db, err := withPersistence(ctx, conf, lgr)
	if err != nil {
		panic(err)
	}

	repo := captable.NewRepositoryManager(db)
	repo.MustValidate()

	provider := captable.NewUserProvider(
		userTrackerAdapter{users: repo.Users()},
		conf.GetAuth().GetPasswordSecret(),
	).WithLogger(appLogger{lgr.GetLogger("auth:prv")})

	auther := captable.NewAuthenticator(provider, conf.GetAuth()).
		WithLogger(appLogger{lgr.GetLogger("auth")})

	mailerCfg := conf.GetMailer()
	mailer := captable.NewMailer(
		mailerCfg.GetProvider(),
		mailerCfg.GetAddr(),
		mailerCfg.GetFrom(),
		appLogger{lgr.GetLogger("mailer")},
	)

	srv, err := server.New(server.Options{
		Repo:   repo,
		Auth:   auther,
		Config: conf.GetAuth(),
		Mailer: mailer,
		Logger: appLogger{lgr.GetLogger("server")},
	})
	if err != nil {
		panic(err)
	}

	go func() {
		if err := srv.Listen(conf.GetServer().GetAddress()); err != nil {
			lgr.GetLogger("server").Error("listener stopped", "error", err)
		}
	}()

	waitExitSignal()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lgr.GetLogger("server").Error("shutdown error", "error", err)
	}
}

func withPersistence(ctx context.Context, conf *config.AppConfig, lgr *glog.BaseLogger) (*bun.DB, error) {
	pcfg := conf.GetPersistence()

	db, err := sql.Open(sqliteshim.ShimName, pcfg.GetDSN())
	if err != nil {
		return nil, err
	}

	persistence.RegisterModel((*captable.User)(nil))
	persistence.RegisterModel((*captable.Account)(nil))
	persistence.RegisterModel((*captable.UserAccount)(nil))
	persistence.RegisterModel((*captable.Security)(nil))
	persistence.RegisterModel((*captable.SecurityTransaction)(nil))
	persistence.RegisterModel((*captable.Shareholder)(nil))

	client, err := persistence.New(pcfg, db, sqlitedialect.New())
	if err != nil {
		return nil, err
	}

	client.SetLogger(lgr.GetLogger("persistence"))

	migrationsFS, err := fs.Sub(captable.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return nil, err
	}

	client.RegisterDialectMigrations(
		migrationsFS,
		persistence.WithDialectSourceLabel("data/sql/migrations"),
		persistence.WithValidationTargets("postgres", "sqlite"),
	)

	if err := client.ValidateDialects(ctx); err != nil {
		return nil, err
	}

	if err := client.Migrate(ctx); err != nil {
		return nil, err
	}

	// Seeding truncates tables, so it only runs in debug setups
	if pcfg.GetDebug() {
		client.RegisterFixtures(fixturesFS).AddOptions(persistence.WithTrucateTables())

		if err := client.Seed(ctx); err != nil {
			return nil, err
		}
	}

	if report := client.Report(); report != nil && !report.IsZero() {
		fmt.Printf("report: %s\n", report.String())
	}

	return client.DB(), nil
}

type userTrackerAdapter struct {
	users captable.Users
}

func (a userTrackerAdapter) GetByIdentifier(ctx context.Context, identifier string) (*captable.User, error) {
	return a.users.GetByIdentifier(ctx, identifier)
}

func (a userTrackerAdapter) TrackAttemptedLogin(ctx context.Context, user *captable.User) error {
	return a.users.TrackAttemptedLogin(ctx, user)
}

func (a userTrackerAdapter) TrackSuccessfulLogin(ctx context.Context, user *captable.User) error {
	return a.users.TrackSuccessfulLogin(ctx, user)
}

// appLogger adapts the structured logger to the printf-style interface the
// library packages consume
type appLogger struct {
	lgr glog.Logger
}

func (l appLogger) Debug(format string, args ...any) { l.lgr.Debug(fmt.Sprintf(format, args...)) }
func (l appLogger) Info(format string, args ...any)  { l.lgr.Info(fmt.Sprintf(format, args...)) }
func (l appLogger) Error(format string, args ...any) { l.lgr.Error(fmt.Sprintf(format, args...)) }

func waitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
