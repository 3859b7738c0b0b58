package seed

import (
	"fmt"
	"math/rand"
	"time"

	"monkmode/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var blockTitles = []string{
	"Deep work", "Morning focus", "Writing sprint", "Study block",
	"Code review", "Reading", "Planning", "Admin catch-up",
	"Gym", "Language practice", "Side project", "Inbox zero",
}

var taskTitles = []string{
	"Finish chapter draft", "Review pull request", "Plan tomorrow",
	"Clear inbox", "Prepare slides", "Refactor module",
	"Write weekly summary", "Book dentist", "Update budget",
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db: db,
		r:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUsers inserts n users with a shared development password.
func (f *Factory) CreateUsers(n int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("MonkmodeDev12!"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		username := fmt.Sprintf("%s%d", gofakeit.Username(), i)
		if len(username) > 28 {
			username = username[:28]
		}
		user := models.User{
			Username: username,
			Email:    fmt.Sprintf("user%d@%s", i, gofakeit.DomainName()),
			Password: string(hashed),
			Level:    1 + f.r.Intn(5),
			Xp:       f.r.Intn(2500),
		}
		if err := f.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// CreateFriendshipMesh links users pairwise: roughly half the pairs it visits
// become accepted friendships, the rest stay pending. Returns the counts.
func (f *Factory) CreateFriendshipMesh(users []models.User) (accepted, pending int, err error) {
	for i := range users {
		for j := i + 1; j < len(users); j++ {
			// sparse mesh
			if f.r.Intn(3) != 0 {
				continue
			}
			status := models.FriendshipStatusPending
			if f.r.Intn(2) == 0 {
				status = models.FriendshipStatusAccepted
			}
			friendship := models.Friendship{
				RequesterID: users[i].ID,
				AddresseeID: users[j].ID,
				Status:      status,
			}
			if err := f.db.Create(&friendship).Error; err != nil {
				return accepted, pending, err
			}
			if status == models.FriendshipStatusAccepted {
				accepted++
			} else {
				pending++
			}
		}
	}
	return accepted, pending, nil
}

// CreateScheduledDays fills the past `days` days with time blocks and
// attaches tasks to some of them.
func (f *Factory) CreateScheduledDays(user *models.User, days int) (blocks, tasks int, err error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	for d := 0; d < days; d++ {
		date := today.AddDate(0, 0, -d)
		numBlocks := 2 + f.r.Intn(4)
		start := 8 * 60 // day starts at 08:00
		for b := 0; b < numBlocks; b++ {
			duration := 30 + f.r.Intn(4)*30
			block := models.TimeBlock{
				UserID:    user.ID,
				Title:     pick(f.r, blockTitles),
				Date:      date,
				StartTime: start,
				EndTime:   start + duration,
				IsFocus:   f.r.Intn(2) == 0,
			}
			if err := f.db.Create(&block).Error; err != nil {
				return blocks, tasks, err
			}
			blocks++
			start = block.EndTime + 15 + f.r.Intn(60)

			if f.r.Intn(2) == 0 {
				task := models.Task{
					UserID:      user.ID,
					Title:       pick(f.r, taskTitles),
					Description: gofakeit.Sentence(8),
					TimeBlockID: &block.ID,
				}
				if d > 0 && f.r.Intn(2) == 0 {
					completedAt := date.Add(time.Duration(block.EndTime) * time.Minute)
					task.IsCompleted = true
					task.CompletedAt = &completedAt
				}
				if err := f.db.Create(&task).Error; err != nil {
					return blocks, tasks, err
				}
				tasks++
			}
		}
	}
	return blocks, tasks, nil
}

// CreateTemplate builds a reusable day layout with a few blocks.
func (f *Factory) CreateTemplate(user *models.User) (*models.Template, error) {
	template := models.Template{
		UserID: user.ID,
		Title:  fmt.Sprintf("%s day", gofakeit.HipsterWord()),
		TemplateBlocks: []models.TemplateBlock{
			{Title: "Morning focus", StartTime: 9 * 60, EndTime: 11 * 60, IsFocus: true},
			{Title: "Admin", StartTime: 11*60 + 30, EndTime: 12 * 60},
			{Title: "Afternoon focus", StartTime: 14 * 60, EndTime: 16 * 60, IsFocus: true},
		},
	}
	if err := f.db.Create(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// CreateStatistics backfills daily focus totals for the past `days` days.
func (f *Factory) CreateStatistics(user *models.User, days int) error {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	for d := 0; d < days; d++ {
		stat := models.DailyStatistic{
			UserID:         user.ID,
			Date:           today.AddDate(0, 0, -d),
			TotalFocusTime: f.r.Intn(6) * 30,
		}
		if err := f.db.Create(&stat).Error; err != nil {
			return err
		}
	}
	return nil
}
