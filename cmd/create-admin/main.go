package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/gharsapp/ghars-backend/internal/config"
	"github.com/gharsapp/ghars-backend/internal/database"
	"github.com/gharsapp/ghars-backend/internal/logger"
	"github.com/gharsapp/ghars-backend/internal/model"
	"github.com/gharsapp/ghars-backend/internal/repository"
	"github.com/gharsapp/ghars-backend/internal/service"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Initialize Services ───────────────────────────────────────────
	adminRepo := repository.NewAdminRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	adminService := service.NewAdminService(adminRepo)

	verifier, err := service.NewPasswordVerifier(cfg.PasswordScheme, cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Str("scheme", cfg.PasswordScheme).Msg("Invalid password scheme")
	}
	authService := service.NewAuthService(cfg.JWTSecret, cfg.JWTExpiry, verifier, adminRepo, studentRepo, log)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Admin ===")

	// Name
	fmt.Print("Enter Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("Error: Name is required")
		return
	}

	// Password
	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	// Permission flags. The password is the whole credential, so the flags
	// are the only thing distinguishing a full admin from a limited one.
	flags := model.PermissionFlags{
		CanManageAdmins:   promptYesNo(reader, "Can manage admins?"),
		CanManageClasses:  promptYesNo(reader, "Can manage classes?"),
		CanManageStudents: promptYesNo(reader, "Can manage students?"),
		CanManageWeeks:    promptYesNo(reader, "Can manage weeks?"),
		CanManagePoints:   promptYesNo(reader, "Can manage points?"),
		CanViewAnalytics:  promptYesNo(reader, "Can view analytics?"),
	}

	// ─── Logic ─────────────────────────────────────────────────────────

	// Passwords double as login identities, so the new one must be unique
	// across admins and students alike.
	if err := authService.CheckPasswordAvailable(ctx, password); err != nil {
		if errors.Is(err, service.ErrPasswordTaken) {
			fmt.Println("Error: That password is already in use by another account")
			return
		}
		log.Fatal().Err(err).Msg("Password availability check failed")
	}

	stored, err := authService.HashPassword(password)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	newAdmin := &model.Admin{
		Name:     name,
		Password: stored,
		Flags:    flags,
	}

	if err := adminService.Create(ctx, newAdmin); err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("\nSuccess! Admin '%s' created with ID: %d\n", newAdmin.Name, newAdmin.ID)
}

func promptYesNo(reader *bufio.Reader, question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	answer, _ := reader.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
