package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	app "github.com/rocketscienceinc/tictactoe/internal"
	"github.com/rocketscienceinc/tictactoe/internal/config"
)

const configFile = "config.yml"

// main - loads .env and config.yml from the working directory, then runs the game in the configured mode.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	conf, envErr := loadConfig()
	logger := newLogger(conf)

	if envErr != nil {
		logger.Warn("could not load .env file", "error", envErr)
	}

	if err := app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// loadConfig - a missing .env is fine; any other .env problem is returned for logging once a logger exists.
func loadConfig() (*config.Config, error) {
	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	envErr := godotenv.Load(filepath.Join(baseDir, ".env"))
	if errors.Is(envErr, fs.ErrNotExist) {
		envErr = nil
	}

	return config.MustLoad(filepath.Join(baseDir, configFile)), envErr
}

func newLogger(conf *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(conf.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	// the console game owns stdout.
	output := os.Stdout
	if conf.Mode == config.ModeConsole {
		output = os.Stderr
	}

	return slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level}))
}
