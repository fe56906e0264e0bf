package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dtroode/authgate/internal/config"
	"github.com/dtroode/authgate/internal/logger"
	"github.com/dtroode/authgate/internal/password"
	"github.com/dtroode/authgate/internal/repository/postgres"
)

// superroleService is the service tag of the seeded superrole.
const superroleService = "auth"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var in superuser

	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Seed the superrole and a superuser holding it",
		Long: "Creates the configured superrole, a user with the given credentials and\n" +
			"assigns the role to the user. Steps that already happened are skipped.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), in)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&in.Login, "login", "", "superuser login")
	flags.StringVar(&in.Password, "password", "", "superuser password")
	flags.StringVar(&in.FirstName, "first-name", "super", "superuser first name")
	flags.StringVar(&in.LastName, "last-name", "user", "superuser last name")
	_ = cmd.MarkFlagRequired("login")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func run(ctx context.Context, in superuser) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	lg := logger.New(cfg.LogLevel, cfg.LogFormat)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN, cfg.Database.Timeout)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer db.Close()

	hasher, err := password.NewHasher(cfg.Password.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to initialize password hasher: %w", err)
	}

	s := seeder{
		users:     postgres.NewUserRepository(db),
		roles:     postgres.NewRoleRepository(db),
		userRoles: postgres.NewUserRoleRepository(db),
		hasher:    hasher,
		superrole: cfg.RBAC.SuperroleName,
		logger:    lg,
	}
	return s.seed(ctx, in)
}
