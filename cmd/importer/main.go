package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"medilink-backend/config"
	"medilink-backend/database"
	"medilink-backend/matcher"
	"medilink-backend/models"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "importer",
		Usage: "Manage the doctor roster used for symptom matching",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "import",
				Usage:  "Import a doctor directory JSON file into the roster store",
				Action: importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the doctor directory JSON file",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "replace",
						Usage: "Delete every stored doctor before importing",
					},
				},
			},
			{
				Name:   "match",
				Usage:  "Print the reply a message would get against a doctor file",
				Action: matchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the doctor directory JSON file",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "message",
						Aliases:  []string{"m"},
						Usage:    "Symptom description to match",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "vocabulary",
						Usage: "Path to a YAML vocabulary file",
					},
					&cli.IntFlag{
						Name:  "max",
						Usage: "Maximum number of suggestions",
						Value: matcher.DefaultMaxSuggestions,
					},
					&cli.BoolFlag{
						Name:  "relaxed",
						Usage: "Allow doctors without a condition match",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the reply as JSON",
					},
				},
			},
		},
	}
}

func importCommand(c *cli.Context) error {
	ctx := context.Background()

	doctors, err := database.ReadDoctorFile(c.String("file"))
	if err != nil {
		return err
	}
	if len(doctors) == 0 {
		return fmt.Errorf("no doctors found in %s", c.String("file"))
	}

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	if err := database.Connect(cfg); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Disconnect(cfg)

	db, err := database.GetMongoDB()
	if err != nil {
		return err
	}
	repo := database.NewDoctorRepository(db)

	if c.Bool("replace") {
		removed, err := repo.DeleteAll(ctx)
		if err != nil {
			return err
		}
		slog.Info("cleared roster", "removed", removed)
	}

	n, err := repo.UpsertMany(ctx, doctors)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Imported %d doctors from %s\n", n, c.String("file"))
	return nil
}

func matchCommand(c *cli.Context) error {
	path := c.String("file")
	roster := matcher.RosterFunc(func(context.Context) ([]models.Doctor, error) {
		return database.ReadDoctorFile(path)
	})

	opts := []matcher.Option{
		matcher.WithLogger(slog.Default()),
		matcher.WithMaxSuggestions(c.Int("max")),
		matcher.WithConditionGate(!c.Bool("relaxed")),
	}
	if vocabPath := c.String("vocabulary"); vocabPath != "" {
		vocab, err := matcher.LoadVocabulary(vocabPath)
		if err != nil {
			return err
		}
		opts = append(opts, matcher.WithVocabulary(vocab))
	}

	m, err := matcher.New(roster, opts...)
	if err != nil {
		return err
	}

	message := c.String("message")
	slog.Debug("signals", "tokens", m.Analyze(message).Tokens())

	reply, err := m.BuildReply(c.Context, message)
	if err != nil {
		return err
	}

	if c.Bool("json") {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(reply)
	}

	fmt.Fprintln(c.App.Writer, reply.Text)
	return nil
}

func setupLogger(c *cli.Context) error {
	var level slog.Level
	switch strings.ToLower(c.String("log-level")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", c.String("log-level"))
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
	return nil
}
