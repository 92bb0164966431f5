package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/haintran/portfolio-api/pkg/auth"
)

// Seeds the site owner: the user row plus an approved admin profile, so
// the public site has something to serve before the first dashboard login.
func main() {
	fmt.Println("seeding site owner...")

	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	dsn := os.Getenv("DB_DSN")
	ownerEmail := os.Getenv("OWNER_EMAIL")
	ownerName := os.Getenv("OWNER_NAME")
	ownerPassword := os.Getenv("OWNER_PASSWORD")
	if dsn == "" || ownerEmail == "" || ownerPassword == "" {
		log.Fatal("DB_DSN, OWNER_EMAIL, and OWNER_PASSWORD are required")
	}
	if ownerName == "" {
		ownerName = "Site Owner"
	}

	hash, err := auth.HashPassword(ownerPassword)
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	ownerID := uuid.New()
	userQuery := `
		INSERT INTO users (id, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET password_hash = $3
		RETURNING id
	`
	if err := pool.QueryRow(context.Background(), userQuery, ownerID, ownerEmail, hash).Scan(&ownerID); err != nil {
		log.Fatalf("cannot upsert user: %v", err)
	}

	profileQuery := `
		INSERT INTO profiles (owner_id, email, name, job_title, role, is_approved, approval_request, bio, about_yourself, background, contact)
		VALUES ($1, $2, $3, 'Software Engineer', 'admin', TRUE, FALSE,
			'Hi, I''m ' || $3 || ', a Software Engineer',
			'Tell us about yourself...', 'Share your background...',
			jsonb_build_object('email', $2::text))
		ON CONFLICT (owner_id) DO UPDATE SET is_approved = TRUE, role = 'admin'
	`
	if _, err := pool.Exec(context.Background(), profileQuery, ownerID, ownerEmail, ownerName); err != nil {
		log.Fatalf("cannot upsert profile: %v", err)
	}

	fmt.Printf("seeded owner '%s' successfully!\n", ownerEmail)
}
