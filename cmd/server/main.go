package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"campusboard/internal/auth"
	"campusboard/internal/config"
	"campusboard/internal/db"
	"campusboard/internal/handlers"
	"campusboard/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "campusboard",
		Short: "Campus community board server",
		RunE:  runServe,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply pending schema migrations and exit",
			RunE:  runMigrate,
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Insert demo users and posts for local development",
			RunE:  runSeed,
		},
	)
	return root
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if level == "debug" {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func openDB(cfg *config.Config) (*sql.DB, error) {
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	dbc, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(dbc); err != nil {
		dbc.Close()
		return nil, err
	}
	return dbc, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	dbc, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer dbc.Close()

	st := store.New(dbc)
	sessions := auth.NewManager(dbc, cfg.SessionTTL)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL)
	h := handlers.New(st, sessions, tokens, logger)

	logger.Info("listening", zap.String("addr", cfg.Addr))
	return http.ListenAndServe(cfg.Addr, h.Routes())
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	dbc, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer dbc.Close()

	fmt.Println("migrations applied")
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	dbc, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer dbc.Close()

	ctx := cmd.Context()
	st := store.New(dbc)

	users := []auth.RegisterInput{
		{Username: "alice", Email: "alice@campus.edu", Password: "Passw0rd1", School: "State University"},
		{Username: "bob", Email: "bob@campus.edu", Password: "Passw0rd1", School: "State University"},
	}
	ids := make([]int64, 0, len(users))
	for _, in := range users {
		u, err := auth.Register(ctx, st.Users, in)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", in.Username, err)
		}
		ids = append(ids, u.ID)
	}

	postID, err := st.Posts.Create(ctx, ids[0], "Welcome to the board", "Introduce yourself below.", false)
	if err != nil {
		return err
	}
	if _, err := st.Comments.Create(ctx, postID, ids[1], "Hi, I'm bob.", false); err != nil {
		return err
	}
	if _, _, err := st.Likes.Toggle(ctx, ids[1], postID); err != nil {
		return err
	}

	fmt.Println("seeded demo data")
	return nil
}
