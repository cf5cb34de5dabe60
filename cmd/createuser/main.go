// Command createuser provisions an admin or editor account
package main

import (
	"context" // Context for store calls
	"errors"  // Error inspection
	"flag"    // Command line flags
	"fmt"     // Terminal output
	"os"      // Standard streams

	"travel_api/internal/account"    // User provisioning
	"travel_api/internal/config"     // Configuration
	"travel_api/internal/db"         // Database connection
	"travel_api/internal/domain"     // Importing domain models
	"travel_api/internal/validation" // Field validation

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"golang.org/x/term"          // Hidden password prompt
)

func main() {
	name := flag.String("name", "", "display name")
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "password, prompted for when empty")
	role := flag.String("role", domain.RoleEditor, "role to attach (admin or editor)")
	flag.Parse()

	if *password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			logrus.Fatalf("failed to read password: %v", err)
		}
		*password = string(raw)
	}

	cfg := config.LoadConfig()
	gdb, err := db.Connect(cfg.DSN(), false)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	user, err := account.Create(context.Background(), gdb, account.NewUser{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Role:     *role,
	})
	var invalid validation.FieldErrors
	switch {
	case errors.As(err, &invalid):
		for field, msgs := range invalid {
			for _, m := range msgs {
				fmt.Fprintf(os.Stderr, "%s: %s\n", field, m)
			}
		}
		os.Exit(1)
	case errors.Is(err, account.ErrUnknownRole):
		logrus.Fatalf("unknown role %q, expected one of %v", *role, domain.RoleNames)
	case err != nil:
		logrus.Fatalf("failed to create user: %v", err)
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "email": user.Email, "role": *role}).Info("User created")
}
