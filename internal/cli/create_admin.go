package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/libreria/internal/auth"
	"github.com/mrlokans/libreria/internal/config"
	"github.com/mrlokans/libreria/internal/database"
	"github.com/mrlokans/libreria/internal/database/users"
)

// CreateAdminCommand creates an administrator, or promotes an existing
// user with the same email and resets their password.
type CreateAdminCommand struct {
	DatabasePath string
	Email        string
	Password     string
	Name         string

	auth     config.Auth
	database config.Database
}

// NewCreateAdminCommand takes the resolved configuration so the database and
// hash scheme match the server's.
func NewCreateAdminCommand(cfg *config.Config) *CreateAdminCommand {
	return &CreateAdminCommand{auth: cfg.Auth, database: cfg.Database}
}

func (cmd *CreateAdminCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", cmd.database.Path, "Path to the database file")
	fs.StringVar(&cmd.Password, "password", cmd.auth.AdminPassword, "Administrator password (defaults to $ADMIN_PASSWORD)")
	fs.StringVar(&cmd.Email, "email", cmd.auth.AdminEmail, "Administrator email (defaults to $ADMIN_EMAIL)")
	fs.StringVar(&cmd.Name, "name", nameOr(cmd.auth.AdminName), "Display name")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-admin -email <correo> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create an administrator account.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  ADMIN_PASSWORD=secreto %s create-admin -email admin@libreria.mx\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Email == "" {
		return fmt.Errorf("required flag -email not provided")
	}
	if cmd.Password == "" {
		return fmt.Errorf("password not provided: use -password or ADMIN_PASSWORD")
	}
	return nil
}

func (cmd *CreateAdminCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath, false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	created, err := auth.NewService(db, cmd.auth).PromoteAdmin(context.Background(), cmd.Email, cmd.Password, cmd.Name)
	if err != nil {
		return fmt.Errorf("failed to create administrator: %w", err)
	}

	if created {
		fmt.Printf("Administrator %s created\n", auth.NormalizeEmail(cmd.Email))
	} else {
		fmt.Printf("User %s promoted to administrator\n", auth.NormalizeEmail(cmd.Email))
	}

	count, err := users.NewRepository(db.DB).CountAdmins()
	if err != nil {
		return fmt.Errorf("failed to count administrators: %w", err)
	}
	fmt.Printf("Administrators: %d\n", count)
	return nil
}

func nameOr(name string) string {
	if name == "" {
		return "Administrador"
	}
	return name
}
