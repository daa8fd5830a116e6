// Package seed provides database seeding utilities for development and
// testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"pulse/internal/models"
	"pulse/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var groupTitles = []string{
	"General", "Movies", "Music", "Gaming", "Fitness", "Sports",
	"Technology", "Books", "Food", "Travel", "Programming", "Linux",
	"Art", "History", "Philosophy", "Science", "Pets", "Finance",
}

// Run populates the database with demo users, groups, posts, comments, and
// follow subscriptions.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clean(db); err != nil {
			return fmt.Errorf("clean failed: %w", err)
		}
	}

	if opts.NumUsers <= 0 {
		opts.NumUsers = 20
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 200
	}

	users, err := seedUsers(db, opts.NumUsers)
	if err != nil {
		return err
	}
	groups, err := seedGroups(db)
	if err != nil {
		return err
	}
	posts, err := seedPosts(db, users, groups, opts.NumPosts)
	if err != nil {
		return err
	}
	if err := seedComments(db, users, posts); err != nil {
		return err
	}
	if err := seedFollows(db, users); err != nil {
		return err
	}

	log.Printf("seeded %d users, %d groups, %d posts", len(users), len(groups), len(posts))
	return nil
}

func clean(db *gorm.DB) error {
	// Children first so foreign keys never dangle mid-clean.
	for _, table := range []string{"comments", "follows", "posts", "groups", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedUsers(db *gorm.DB, n int) ([]*models.User, error) {
	// One shared hash keeps large seeds fast; every demo account logs in
	// with the same password.
	hash, err := bcrypt.GenerateFromPassword([]byte("PulseDemo12345"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		username := strings.ToLower(gofakeit.Username())
		user := &models.User{
			Username: fmt.Sprintf("%s%d", username, i),
			Email:    fmt.Sprintf("%s%d@%s", username, i, gofakeit.DomainName()),
			Password: string(hash),
			Bio:      gofakeit.Sentence(8),
			Avatar:   fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
		}
		if err := db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func seedGroups(db *gorm.DB) ([]*models.Group, error) {
	groups := make([]*models.Group, 0, len(groupTitles))
	for _, title := range groupTitles {
		slug := strings.ToLower(title)
		if err := validation.ValidateGroupSlug(slug); err != nil {
			return nil, fmt.Errorf("group %q: %w", title, err)
		}
		group := &models.Group{
			Title:       title,
			Slug:        slug,
			Description: gofakeit.Sentence(12),
		}
		if err := db.Create(group).Error; err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func seedPosts(db *gorm.DB, users []*models.User, groups []*models.Group, n int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[rand.Intn(len(users))]
		post := &models.Post{
			Text:     gofakeit.Paragraph(1, 3, 8, "\n"),
			AuthorID: author.ID,
		}
		// Roughly two thirds of posts land in a group.
		if rand.Intn(3) != 0 {
			groupID := groups[rand.Intn(len(groups))].ID
			post.GroupID = &groupID
		}
		if rand.Intn(4) == 0 {
			post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID())
		}
		// Spread publication dates over the past 90 days.
		post.CreatedAt = time.Now().Add(-time.Duration(rand.Intn(90*24)) * time.Hour)

		if err := db.Create(post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func seedComments(db *gorm.DB, users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		for i := 0; i < rand.Intn(5); i++ {
			comment := &models.Comment{
				Text:     gofakeit.Sentence(10),
				AuthorID: users[rand.Intn(len(users))].ID,
				PostID:   post.ID,
			}
			if err := db.Create(comment).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func seedFollows(db *gorm.DB, users []*models.User) error {
	for _, user := range users {
		for i := 0; i < rand.Intn(6); i++ {
			author := users[rand.Intn(len(users))]
			if author.ID == user.ID {
				continue
			}
			follow := &models.Follow{UserID: user.ID, AuthorID: author.ID}
			// Duplicate picks are fine; the unique index swallows them.
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(follow).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
