package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mongodb"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/shapeshed/shapeshed-backend/internal/config"
	"github.com/shapeshed/shapeshed-backend/internal/logger"
)

var errUsage = errors.New("usage: migrate [-path dir] up|down|version|force <version>")

// migrator is the subset of *migrate.Migrate the commands drive.
type migrator interface {
	Up() error
	Down() error
	Version() (uint, bool, error)
	Force(version int) error
}

func main() {
	var migrationDir string
	flag.StringVar(&migrationDir, "path", "migrations", "Path to migration files")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat).With().Str("component", "migrate").Logger()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, errUsage)
		flag.PrintDefaults()
		os.Exit(2)
	}

	dbURL, err := cfg.MigrationURI()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid database URI")
	}

	m, err := migrate.New("file://"+migrationDir, dbURL)
	if err != nil {
		log.Fatal().Err(err).Str("path", migrationDir).Msg("Migration failed to initialize")
	}
	defer m.Close()

	if err := run(m, flag.Args(), log); err != nil {
		log.Error().Err(err).Str("command", flag.Arg(0)).Msg("Migration failed")
		m.Close()
		os.Exit(1)
	}
}

// run executes one migrate command. ErrNoChange is not a failure.
func run(m migrator, args []string, log zerolog.Logger) error {
	if len(args) < 1 {
		return errUsage
	}

	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("up: %w", err)
		}
		log.Info().Msg("Migrated up")
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("down: %w", err)
		}
		log.Info().Msg("Migrated down")
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("version: %w", err)
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Current migration version")
	case "force":
		if len(args) < 2 {
			return errUsage
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[1], err)
		}
		if err := m.Force(v); err != nil {
			return fmt.Errorf("force: %w", err)
		}
		log.Info().Int("version", v).Msg("Forced migration version")
	default:
		return errUsage
	}
	return nil
}
