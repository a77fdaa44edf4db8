package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"menvo.backend/internal/config"
	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
	domainrepo "menvo.backend/internal/domain/repositories"
	datasource "menvo.backend/internal/infrastructure/datasources/postgres"
	"menvo.backend/internal/infrastructure/repositories"
	"menvo.backend/pkg/crypto"
	"menvo.backend/pkg/utils"
)

var openAdminDB = func(cfg config.DatabaseConfig) (*gorm.DB, error) {
	sqlDB, err := datasource.NewConnection(cfg)
	if err != nil {
		return nil, err
	}
	return gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{TranslateError: true})
}

var openAdminSQLDB = func(db *gorm.DB) (io.Closer, error) {
	return db.DB()
}

type createAdminDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	prepare func(cfg *config.Config) (domainrepo.UserRepository, io.Closer, error)
	now     func() time.Time
	out     io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultCreateAdminDeps() createAdminDeps {
	return createAdminDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (domainrepo.UserRepository, io.Closer, error) {
			db, err := openAdminDB(cfg.Database)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}

			sqlDB, err := openAdminSQLDB(db)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
			}
			return repositories.NewUserRepository(db), sqlDB, nil
		},
		now: time.Now,
		out: os.Stdout,
	}
}

type adminFlags struct {
	email    string
	name     string
	password string
}

func parseAdminFlags(args []string) (adminFlags, error) {
	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	email := fs.String("email", "", "admin email (required)")
	name := fs.String("name", "Administrator", "display name used when the account is created")
	password := fs.String("password", "", "password for a new account; falls back to ADMIN_PASSWORD")
	if err := fs.Parse(args); err != nil {
		return adminFlags{}, err
	}

	f := adminFlags{
		email:    strings.ToLower(strings.TrimSpace(*email)),
		name:     strings.TrimSpace(*name),
		password: *password,
	}
	if f.email == "" {
		return adminFlags{}, fmt.Errorf("--email is required")
	}
	if f.password == "" {
		f.password = os.Getenv("ADMIN_PASSWORD")
	}
	return f, nil
}

// runCreateAdmin promotes an existing account to admin or creates a new admin account
func runCreateAdmin(args []string, deps createAdminDeps) error {
	if deps.loadEnv == nil {
		deps.loadEnv = func() error { return godotenv.Load() }
	}
	if deps.loadCfg == nil {
		deps.loadCfg = config.Load
	}
	if deps.now == nil {
		deps.now = time.Now
	}
	if deps.prepare == nil {
		deps.prepare = defaultCreateAdminDeps().prepare
	}
	if deps.out == nil {
		deps.out = os.Stdout
	}

	flags, err := parseAdminFlags(args)
	if err != nil {
		return err
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := deps.loadCfg()
	userRepo, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	ctx := context.Background()
	existing, err := userRepo.GetByEmail(ctx, flags.email)
	switch {
	case err == nil:
		if existing.Role == entities.UserRoleAdmin {
			_, _ = fmt.Fprintf(deps.out, "%s is already an admin\n", existing.Email)
			return nil
		}
		if err := userRepo.UpdateRole(ctx, existing.ID, entities.UserRoleAdmin); err != nil {
			return fmt.Errorf("failed to promote user %s: %w", existing.ID, err)
		}
		_, _ = fmt.Fprintf(deps.out, "Promoted %s to admin (previous role=%q)\n", existing.Email, existing.Role)
		_, _ = fmt.Fprintf(deps.out, "user_id=%s\n", existing.ID)
		return nil
	case !errors.Is(err, domainerrors.ErrNotFound):
		return fmt.Errorf("failed to load user %s: %w", flags.email, err)
	}

	if err := crypto.ValidatePasswordStrength(flags.password); err != nil {
		return fmt.Errorf("a new admin needs a valid --password: %w", err)
	}
	hash, err := crypto.HashPassword(flags.password)
	if err != nil {
		return err
	}

	now := deps.now().UTC()
	user := &entities.User{
		ID:           utils.GenerateUUIDv7(),
		Email:        flags.email,
		Name:         flags.name,
		PasswordHash: hash,
		Role:         entities.UserRoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed creating admin: %w", err)
	}

	_, _ = fmt.Fprintln(deps.out, "Created admin account")
	_, _ = fmt.Fprintf(deps.out, "user_id=%s\n", user.ID)
	_, _ = fmt.Fprintf(deps.out, "email=%s\n", user.Email)
	return nil
}

func main() {
	if err := runCreateAdmin(os.Args[1:], defaultCreateAdminDeps()); err != nil {
		log.Fatal(err)
	}
}
