// Command provision creates the initial administrator account from the
// PROVISION_ADMIN_* configuration. It runs as an explicit operator step,
// never as a server side effect, and is idempotent: a second run against
// the same username is a no-op.
package main

import (
	"context"
	"log"
	"time"

	"github.com/campuskeep/outpass-api/internal/dto"
	"github.com/campuskeep/outpass-api/internal/models"
	"github.com/campuskeep/outpass-api/internal/repository"
	"github.com/campuskeep/outpass-api/internal/service"
	"github.com/campuskeep/outpass-api/pkg/config"
	"github.com/campuskeep/outpass-api/pkg/database"
	"github.com/campuskeep/outpass-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	seed := cfg.Provision
	if seed.AdminUsername == "" || seed.AdminPassword == "" {
		logr.Sugar().Fatalw("PROVISION_ADMIN_USERNAME and PROVISION_ADMIN_PASSWORD are required")
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	accountSvc := service.NewAccountService(userRepo, accountRepo, nil, logr)

	exists, err := userRepo.ExistsByUsername(ctx, seed.AdminUsername)
	if err != nil {
		logr.Sugar().Fatalw("failed to check seed administrator", "error", err)
	}
	if exists {
		logr.Sugar().Infow("seed administrator already present", "username", seed.AdminUsername)
		return
	}

	user, err := accountSvc.Register(ctx, dto.RegisterRequest{
		Username:     seed.AdminUsername,
		Password:     seed.AdminPassword,
		FullName:     seed.AdminFullName,
		Email:        seed.AdminEmail,
		MobileNumber: seed.AdminMobile,
		Role:         string(models.RoleAdmin),
		Department:   "Administration",
		Designation:  "System Administrator",
	})
	if err != nil {
		logr.Sugar().Fatalw("failed to create seed administrator", "error", err)
	}

	// Registration defaults new admins to the lowest tier. The seed
	// administrator must hold SUPER_ADMIN or nobody could manage tiers.
	profile, err := accountRepo.FindAdmin(ctx, user.ID)
	if err != nil {
		logr.Sugar().Fatalw("failed to load seed administrator profile", "error", err)
	}
	profile.PermissionTier = models.TierSuperAdmin
	if err := accountRepo.UpdateAdmin(ctx, profile); err != nil {
		logr.Sugar().Fatalw("failed to promote seed administrator", "error", err)
	}

	logr.Sugar().Infow("seed administrator created", "user_id", user.ID, "username", user.Username)
}
