package main

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"quill/internal/config"
	"quill/internal/db"
	"quill/internal/model"
	"quill/internal/repository"
	"quill/internal/service"
)

type seedAuthor struct {
	name  string
	email string
}

var authors = []seedAuthor{
	{name: "Ada Wells", email: "ada@example.com"},
	{name: "Ben Ortiz", email: "ben@example.com"},
	{name: "Cleo Marsh", email: "cleo@example.com"},
}

var publishedTitles = []string{
	"Getting started with the posts API",
	"Why slugs beat numeric URLs",
	"Pagination without surprises",
	"Scheduling posts for later",
	"Drafts are private by default",
	"Writing good titles",
	"A field guide to validation errors",
	"Authors own their posts",
	"What happens on delete",
	"Publish timestamps explained",
	"On immediate publishing",
	"The anatomy of a post record",
	"Eager loading authors",
	"Ordering by publish time",
	"One page, twenty posts",
	"JSON shapes that last",
	"Forbidden versus not found",
	"Redirects for browsers, 401s for APIs",
	"A post about nothing",
	"Titles with   odd   spacing",
	"Symbols & punctuation: a test!",
	"Numbers 123 in titles",
	"The last published post",
	"Almost at the end",
	"The very final entry",
}

func main() {
	log.Info("starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	log.Info("connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Post{}); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	log.Info("database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)

	users, err := seedAuthors(ctx, userRepo)
	if err != nil {
		log.Fatalf("failed to seed authors: %v", err)
	}
	log.Infof("seeded %d authors", len(users))

	published, hidden, err := seedPosts(ctx, postRepo, users)
	if err != nil {
		log.Fatalf("failed to seed posts: %v", err)
	}

	log.Info("seed completed successfully!")
	log.Infof("  - published posts: %d", published)
	log.Infof("  - drafts and scheduled posts: %d", hidden)
}

// seedAuthors creates the demo authors, reusing any that already exist.
func seedAuthors(ctx context.Context, repo repository.UserRepository) ([]*model.User, error) {
	users := make([]*model.User, 0, len(authors))
	for _, a := range authors {
		existing, err := repo.FindByEmail(ctx, a.email)
		if err == nil {
			users = append(users, existing)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("lookup author %s: %w", a.email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user := &model.User{Name: a.name, Email: a.email, PasswordHash: string(hash)}
		if err := repo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create author %s: %w", a.email, err)
		}
		users = append(users, user)
	}
	return users, nil
}

// seedPosts creates a spread of published posts plus a few drafts and
// scheduled posts. Published timestamps step back an hour per post so the
// listing has a stable order.
func seedPosts(ctx context.Context, repo repository.PostRepository, users []*model.User) (published, hidden int, err error) {
	now := time.Now()

	for i, title := range publishedTitles {
		publishedAt := now.Add(-time.Duration(i+1) * time.Hour)
		post := &model.Post{
			UserID:      users[i%len(users)].ID,
			Title:       title,
			Slug:        service.Slugify(title),
			Body:        fmt.Sprintf("Seeded body for %q.", title),
			PublishedAt: &publishedAt,
		}
		if err := repo.Create(ctx, post); err != nil {
			return published, hidden, fmt.Errorf("create post %q: %w", title, err)
		}
		published++
	}

	tomorrow := now.Add(24 * time.Hour)
	hiddenPosts := []*model.Post{
		{
			UserID:  users[0].ID,
			Title:   "Draft: notes to self",
			Body:    "Never publicly visible.",
			IsDraft: true,
		},
		{
			UserID:  users[1].ID,
			Title:   "Draft without a timestamp",
			Body:    "Also hidden.",
			IsDraft: true,
		},
		{
			UserID:      users[2].ID,
			Title:       "Scheduled: tomorrow's announcement",
			Body:        "Hidden until its publish time passes.",
			PublishedAt: &tomorrow,
		},
	}
	for _, post := range hiddenPosts {
		post.Slug = service.Slugify(post.Title)
		if err := repo.Create(ctx, post); err != nil {
			return published, hidden, fmt.Errorf("create post %q: %w", post.Title, err)
		}
		hidden++
	}

	return published, hidden, nil
}
