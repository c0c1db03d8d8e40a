// Command seed-instructor inserts an instructor document. The HTTP API
// exposes instructors read-only, so this is how they get created.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shapeshed/shapeshed-backend/internal/cache"
	"github.com/shapeshed/shapeshed-backend/internal/config"
	"github.com/shapeshed/shapeshed-backend/internal/database"
	"github.com/shapeshed/shapeshed-backend/internal/logger"
	"github.com/shapeshed/shapeshed-backend/internal/model"
	"github.com/shapeshed/shapeshed-backend/internal/repository"
	"github.com/shapeshed/shapeshed-backend/internal/service"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/term"
)

func main() {
	var name, email, classes string
	flag.StringVar(&name, "name", "", "Instructor display name")
	flag.StringVar(&email, "email", "", "Instructor email")
	flag.StringVar(&classes, "classes", "", "Comma-separated class names")
	flag.Parse()

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// ─── CLI Input ─────────────────────────────────────────────────────
	// Missing flags are prompted for; prompts are only printed to a terminal
	// so the command also works with piped input.
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	reader := bufio.NewReader(os.Stdin)
	ask := func(label, current string) string {
		if current != "" {
			return current
		}
		if interactive {
			fmt.Printf("Enter %s: ", label)
		}
		line, _ := reader.ReadString('\n')
		return strings.TrimSpace(line)
	}

	if interactive {
		fmt.Println("=== Create New Instructor ===")
	}
	name = ask("Name", name)
	email = ask("Email", email)
	classes = ask("Class names (comma-separated)", classes)

	if name == "" {
		fmt.Println("Error: Name is required")
		os.Exit(1)
	}

	classNames := lo.Uniq(lo.Compact(lo.Map(strings.Split(classes, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})))

	// ─── Connect to MongoDB ────────────────────────────────────────────
	mongoDB, err := database.NewMongo(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() { _ = mongoDB.Close(context.Background()) }()

	// ─── Logic ─────────────────────────────────────────────────────────
	// The running server's instructor list cache is only reachable when
	// REDIS_URL is set here too; otherwise it expires on its own TTL.
	var listCache service.ListCache = cache.Noop{}
	if cfg.RedisURL != "" {
		if rdb, err := database.NewRedisClient(ctx, cfg, log); err == nil {
			defer rdb.Close()
			listCache = cache.NewRedisCache(rdb, cfg.CacheTTL)
		}
	}

	instructorService := service.NewInstructorService(
		repository.NewInstructorRepository(mongoDB, cfg.DBOpTimeout),
		repository.NewClassRepository(mongoDB, cfg.DBOpTimeout),
		listCache,
		log,
	)

	instructor := &model.Instructor{
		Classes: classNames,
		Extra:   bson.M{"name": name},
	}
	if email != "" {
		instructor.Extra["email"] = email
	}

	res, err := instructorService.Create(ctx, instructor)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create instructor")
	}

	fmt.Printf("\nSuccess! Instructor '%s' created with ID: %v (%d classes)\n", name, res.InsertedID, len(classNames))
}
