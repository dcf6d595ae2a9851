package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/storefront-api/dto"
	"github.com/storefront-api/models"
	"github.com/storefront-api/services"
	"github.com/storefront-api/utils"
)

var adminOpts struct {
	email      string
	password   string
	name       string
	lastName   string
	nationalID string
	phone      string
}

// createAdminCmd bootstraps the first ADMIN account
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an ADMIN account",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}

		db, closeDB, err := openDatabase(cfg, log)
		if err != nil {
			return err
		}
		defer closeDB()

		password := adminOpts.password
		generated := password == ""
		if generated {
			if password, err = utils.GenerateSecurePassword(16); err != nil {
				return fmt.Errorf("failed to generate password: %w", err)
			}
		}

		admin, err := services.NewUserService(db, nil).CreateAccount(cmd.Context(), dto.RegisterRequest{
			Email:      adminOpts.email,
			Password:   password,
			Name:       adminOpts.name,
			LastName:   adminOpts.lastName,
			NationalID: adminOpts.nationalID,
			Phone:      adminOpts.phone,
			Role:       string(models.RoleAdmin),
		})
		if err != nil {
			return err
		}

		log.Info("admin account created", slog.Uint64("id", uint64(admin.ID)), slog.String("email", admin.Email))
		if generated {
			fmt.Fprintf(cmd.OutOrStdout(), "generated password: %s\n", password)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createAdminCmd)
	f := createAdminCmd.Flags()
	f.StringVar(&adminOpts.email, "email", "", "admin email (required)")
	f.StringVar(&adminOpts.password, "password", "", "admin password; generated when empty")
	f.StringVar(&adminOpts.name, "name", "Admin", "first name")
	f.StringVar(&adminOpts.lastName, "last-name", "User", "last name")
	f.StringVar(&adminOpts.nationalID, "national-id", "", "national id (required)")
	f.StringVar(&adminOpts.phone, "phone", "-", "phone number")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("national-id")
}
