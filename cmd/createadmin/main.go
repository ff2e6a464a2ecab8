package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/staffdesk/api/internal/models"
	"github.com/staffdesk/api/internal/repository"
	"github.com/staffdesk/api/pkg/config"
	"github.com/staffdesk/api/pkg/database"
	appErr "github.com/staffdesk/api/pkg/errors"
	"github.com/staffdesk/api/pkg/logger"
)

// createadmin seeds an administrator account. It refuses to overwrite an
// existing account with the same username or email.
func main() {
	username := flag.String("username", "", "admin username")
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password (min 8 characters)")
	flag.Parse()

	if *username == "" || *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: createadmin -username <name> -email <addr> -password <secret>")
		os.Exit(2)
	}
	if len(*password) < 8 {
		fmt.Fprintln(os.Stderr, "password must be at least 8 characters")
		os.Exit(2)
	}

	cfg := config.MustLoad()
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	admins := repository.NewAdminRepository(db)

	for _, identifier := range []string{*username, *email} {
		if _, err := admins.FindByUsernameOrEmail(ctx, identifier); err == nil {
			log.Fatal("admin already exists", zap.String("identifier", identifier))
		} else if !appErr.IsCode(err, appErr.CodeNotFound) {
			log.Fatal("admin lookup failed", zap.Error(err))
		}
	}

	admin := models.Admin{Username: *username, Email: *email, IsActive: true}
	if err := admin.SetPassword(*password); err != nil {
		log.Fatal("failed to hash password", zap.Error(err))
	}
	if err := admins.Create(ctx, &admin); err != nil {
		log.Fatal("failed to create admin", zap.Error(err))
	}

	fmt.Printf("admin %q created (id %d)\n", admin.Username, admin.ID)
}
