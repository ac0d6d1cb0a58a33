// Command main runs the database seeder for Paperplane.
package main

import (
	"flag"
	"log"

	"paperplane/internal/config"
	"paperplane/internal/database"
	"paperplane/internal/models"
	"paperplane/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	postsPerUser := flag.Int("posts-per-user", 5, "Number of posts per user")
	maxDays := flag.Int("max-days", 90, "Spread post timestamps over this many days back")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	fast := flag.Bool("fast", false, "Skip bcrypt hashing for faster seeding")
	dryRun := flag.Bool("dry-run", false, "Log what would be created without writing")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d posts each, clean=%v\n", *numUsers, *postsPerUser, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *shouldClean && !*dryRun {
		if err := db.Exec("TRUNCATE TABLE posts, users RESTART IDENTITY CASCADE").Error; err != nil {
			// sqlite and older setups have no TRUNCATE; fall back to deletes.
			if err := db.Unscoped().Where("1 = 1").Delete(&models.Post{}).Error; err != nil {
				log.Fatalf("Cleanup failed: %v", err)
			}
			if err := db.Unscoped().Where("1 = 1").Delete(&models.User{}).Error; err != nil {
				log.Fatalf("Cleanup failed: %v", err)
			}
		}
	}

	if err := seed.Run(db, seed.Options{
		Users:        *numUsers,
		PostsPerUser: *postsPerUser,
		MaxDays:      *maxDays,
		SkipBcrypt:   *fast,
		DryRun:       *dryRun,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with test data.")
	log.Println("All test users have the password: password123")
}
