package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gharsapp/ghars-backend/internal/config"
	"github.com/gharsapp/ghars-backend/internal/database"
	"github.com/gharsapp/ghars-backend/internal/logger"
	"github.com/gharsapp/ghars-backend/internal/model"
	"github.com/gharsapp/ghars-backend/internal/repository"
	"github.com/gharsapp/ghars-backend/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	classRepo := repository.NewClassRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)

	verifier, err := service.NewPasswordVerifier(cfg.PasswordScheme, cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Str("scheme", cfg.PasswordScheme).Msg("Invalid password scheme")
	}

	fmt.Println("=== Seeding Demo Students ===")

	className := "Demo Class"

	// Check if the demo class exists
	var classID int

	var existingClass model.Class
	err = pool.QueryRow(ctx, "SELECT id, name FROM classes WHERE name = $1", className).
		Scan(&existingClass.ID, &existingClass.Name)

	if err != nil {
		if err == pgx.ErrNoRows {
			fmt.Printf("Class %q not found. Creating it...\n", className)
			newClass := &model.Class{Name: className}
			if err := classRepo.Create(ctx, newClass); err != nil {
				log.Fatal().Err(err).Msg("Failed to create class")
			}
			classID = newClass.ID
			fmt.Printf("Created class with ID: %d\n", classID)
		} else {
			log.Fatal().Err(err).Msg("Failed to check existing class")
		}
	} else {
		classID = existingClass.ID
		fmt.Printf("Found existing class with ID: %d\n", classID)
	}

	names := []string{
		"Budi Santoso", "Siti Aminah", "Andi Pratama", "Rina Wati", "Joko Susilo",
		"Ayu Lestari", "Dodi Kusuma", "Eka Putri", "Fahri Hamzah", "Gita Savitri",
		"Hendra Gunawan", "Ika Sari", "Jamal Mirdad", "Kiki Fatmala", "Lukman Hakim",
		"Maya Septiana", "Nanda Pratama", "Oki Setiana", "Putri Dian", "Qori Maharani",
		"Rafi Ahmad", "Siska Saraswati", "Toni Setiawan", "Umi Kalsum", "Vina Panduwinata",
	}

	successCount := 0
	for i, name := range names {
		// Passwords are login identities, so every seeded student needs a
		// distinct one.
		stored, err := verifier.Hash(fmt.Sprintf("demo-pass-%03d", i+1))
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to hash seed password")
		}

		student := &model.Student{
			Name:     name,
			Password: stored,
			ClassID:  &classID,
		}

		if err := studentRepo.Create(ctx, student); err != nil {
			fmt.Printf("Error creating student %s: %v\n", name, err)
		} else {
			successCount++
			if (i+1)%10 == 0 {
				fmt.Printf("Created %d students...\n", i+1)
			}
		}
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d students.\n", successCount, len(names))
}
