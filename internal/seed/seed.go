// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers     int
	DaysOfBlocks int
	ShouldClean  bool
}

// Seed populates the database with test data: users with friendships in every
// lifecycle state, scheduled days of time blocks with tasks, templates and
// accumulated statistics.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users, %d days of blocks...",
		opts.NumUsers, opts.DaysOfBlocks)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	f := NewFactory(db)

	users, err := f.CreateUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("Created %d test users", len(users))

	accepted, pending, err := f.CreateFriendshipMesh(users)
	if err != nil {
		return fmt.Errorf("failed to create friendships: %w", err)
	}
	log.Printf("Created %d accepted friendships, %d pending requests", accepted, pending)

	days := opts.DaysOfBlocks
	if days <= 0 {
		days = 7
	}
	blocks := 0
	tasks := 0
	for _, user := range users {
		b, t, err := f.CreateScheduledDays(&user, days)
		if err != nil {
			return fmt.Errorf("failed to create time blocks for user %d: %w", user.ID, err)
		}
		blocks += b
		tasks += t

		if _, err := f.CreateTemplate(&user); err != nil {
			return fmt.Errorf("failed to create template for user %d: %w", user.ID, err)
		}

		if err := f.CreateStatistics(&user, days); err != nil {
			return fmt.Errorf("failed to create statistics for user %d: %w", user.ID, err)
		}
	}
	log.Printf("Created %d time blocks with %d tasks", blocks, tasks)

	log.Println("Seeding complete")
	return nil
}

// clearData truncates seeded tables in dependency order.
func clearData(db *gorm.DB) error {
	tables := []string{
		"tasks", "time_blocks", "template_blocks", "templates",
		"daily_statistics", "friendships", "users",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

// pick returns a random element of the slice.
func pick[T any](r *rand.Rand, items []T) T {
	return items[r.Intn(len(items))]
}
