package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/auth"
	"github.com/frahmantamala/attendance-management/internal/user"
	userPostgres "github.com/frahmantamala/attendance-management/internal/user/postgres"
	"github.com/frahmantamala/attendance-management/pkg/logger"
)

var (
	clearData    bool
	seedPassword string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample users",
	Long:  `Seed an administrator and two employees for development. Existing usernames are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to init db: %w", err)
		}
		defer db.Close()

		gdb, err := initGorm(db)
		if err != nil {
			return err
		}

		lg := logger.LoggerWrapper()
		ctx := cmd.Context()

		if clearData {
			for _, table := range []string{"attendance_records", "leave_requests", "users"} {
				if err := gdb.WithContext(ctx).Exec("DELETE FROM " + table).Error; err != nil {
					return fmt.Errorf("failed to clear %s: %w", table, err)
				}
			}
			lg.Info("cleared existing data")
		}

		svc := user.NewService(userPostgres.NewUserRepository(gdb), auth.NewBcryptHasher(cfg.Security.BCryptCost), true, lg)
		return seedUsers(ctx, svc, seedPassword)
	},
}

var seedUsersList = []user.CreateUserDTO{
	{Username: "admin", Name: "Administrator", Role: string(internal.RoleAdmin)},
	{Username: "fadhil", Name: "Fadhil", Role: string(internal.RoleEmployee)},
	{Username: "padil", Name: "Padil", Role: string(internal.RoleEmployee)},
}

func seedUsers(ctx context.Context, svc *user.Service, password string) error {
	seeder := internal.Principal{UserID: "seeder", Username: "seeder", Role: internal.RoleAdmin}
	lg := logger.LoggerWrapper()

	for _, dto := range seedUsersList {
		dto.Password = password
		u, err := svc.Create(ctx, seeder, dto)
		if errors.Is(err, internal.ErrUsernameTaken) {
			lg.Info("user already exists", "username", dto.Username)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to seed %s: %w", dto.Username, err)
		}
		lg.Info("seeded user", "username", u.Username, "role", u.Role)
	}
	return nil
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
	seedCmd.Flags().StringVar(&seedPassword, "password", "password", "Password for every seeded user")
}
