// Command seed populates the development database with demo data.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"monkmode/internal/config"
	"monkmode/internal/database"
	"monkmode/internal/seed"

	"gopkg.in/yaml.v3"
)

// plan describes a seeding run. A YAML plan file overrides the flag defaults,
// so repeatable demo environments can be checked into the repo.
type plan struct {
	NumUsers     int  `yaml:"num_users"`
	DaysOfBlocks int  `yaml:"days_of_blocks"`
	Clean        bool `yaml:"clean"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	numUsers := flag.Int("users", 10, "number of users to create")
	days := flag.Int("days", 7, "days of time blocks per user")
	clean := flag.Bool("clean", false, "delete existing data first")
	planPath := flag.String("plan", "", "path to a YAML seed plan")
	flag.Parse()

	p := plan{NumUsers: *numUsers, DaysOfBlocks: *days, Clean: *clean}
	if *planPath != "" {
		raw, err := os.ReadFile(*planPath)
		if err != nil {
			return fmt.Errorf("read plan: %w", err)
		}
		if err := yaml.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("parse plan: %w", err)
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Env == "production" {
		return fmt.Errorf("refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	return seed.Seed(db, seed.Options{
		NumUsers:     p.NumUsers,
		DaysOfBlocks: p.DaysOfBlocks,
		ShouldClean:  p.Clean,
	})
}
