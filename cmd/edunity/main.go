package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"go.uber.org/zap"

	"edunity/internal/api"
	"edunity/internal/config"
	"edunity/internal/dashboard"
	"edunity/internal/feed"
	"edunity/internal/forms"
	"edunity/internal/models"
	"edunity/internal/notify"
	"edunity/internal/session"
	"edunity/internal/social"
	"edunity/internal/store"
)

const usage = `Usage: edunity <command> [flags]

Commands:
  feed           list the skill-sharing feed
  plans          list learning plans
  progress       list learning-progress entries
  dashboard      show the progress dashboard for the configured user
  notifications  list notifications for the configured user
  users          list suggested users to follow
`

func main() {
	logger, err := initLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	logger.Debug("Configuration loaded",
		zap.String("environment", cfg.App.Environment),
		zap.String("baseUrl", cfg.API.BaseURL),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer app.close()

	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		logger.Error("Command failed", zap.String("command", os.Args[1]), zap.Error(err))
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app wires the API client, session, store and controllers.
type app struct {
	cfg    *config.Config
	sess   *session.Session
	client *api.Client
	store  store.Store
	logger *zap.Logger
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	client, err := api.New(&api.Config{
		BaseURL:    cfg.API.BaseURL,
		Timeout:    cfg.API.Timeout,
		UserAgent:  cfg.API.UserAgent,
		MaxRetries: cfg.API.MaxRetries,
	}, logger)
	if err != nil {
		return nil, err
	}

	st, err := store.New(&store.Config{
		Provider:        cfg.Store.Provider,
		TTL:             cfg.Store.TTL,
		MaxKeys:         cfg.Store.MaxKeys,
		CleanupInterval: cfg.Store.CleanupInterval,
		RedisURL:        cfg.Store.RedisURL,
		RedisDB:         cfg.Store.RedisDB,
		RedisPassword:   cfg.Store.RedisPassword,
		PoolSize:        cfg.Store.PoolSize,
	}, logger)
	if err != nil {
		return nil, err
	}

	sess := buildSession(ctx, cfg, client, logger)
	return &app{cfg: cfg, sess: sess, client: client, store: st, logger: logger}, nil
}

// buildSession assembles the session from the configured identity, enriching
// it with the backend profile (follow lists) when one is reachable.
func buildSession(ctx context.Context, cfg *config.Config, client *api.Client, logger *zap.Logger) *session.Session {
	if cfg.Auth.UserID == "" {
		return session.Anonymous()
	}
	user := models.User{ID: cfg.Auth.UserID, Name: cfg.Auth.UserName}
	if profile, err := client.Users().Get(ctx, cfg.Auth.UserID, cfg.Auth.Token); err == nil {
		user = *profile
	} else {
		logger.Warn("Could not fetch profile, using configured identity", zap.Error(err))
	}
	return session.New(user, cfg.Auth.Token)
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("Store close failed", zap.Error(err))
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "feed":
		return a.runFeed(ctx, args)
	case "plans":
		return a.runPlans(ctx, args)
	case "progress":
		return a.runProgress(ctx, args)
	case "dashboard":
		return a.runDashboard(ctx)
	case "notifications":
		return a.runNotifications(ctx, args)
	case "users":
		return a.runUsers(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command: %s", command)
	}
}

func (a *app) runFeed(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("feed", flag.ExitOnError)
	search := fs.String("search", "", "filter posts by description")
	like := fs.String("like", "", "toggle like on a post id")
	comment := fs.String("comment", "", "post id to comment on")
	message := fs.String("m", "", "comment text")
	create := fs.String("create", "", "share a new post with this description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctrl := feed.NewSkillFeed(a.client, a.sess, a.store, a.logger)
	if err := ctrl.Load(ctx); err != nil {
		return err
	}

	if *create != "" {
		post, err := ctrl.Create(ctx, &forms.PostForm{Description: *create})
		if err != nil {
			return err
		}
		fmt.Printf("shared post %s\n", post.ID)
	}
	if *like != "" {
		if err := ctrl.ToggleLike(ctx, *like); err != nil {
			return err
		}
	}
	if *comment != "" {
		if err := ctrl.AddComment(ctx, *comment, *message); err != nil {
			return err
		}
	}
	if *search != "" {
		if err := ctrl.Search(ctx, *search); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tAUTHOR\tLIKES\tCOMMENTS\tDESCRIPTION")
	for _, p := range ctrl.Items() {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			p.ID, p.UserName, len(p.Likes), len(p.Comments), truncate(p.Description, 60))
	}
	return w.Flush()
}

func (a *app) runPlans(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("plans", flag.ExitOnError)
	search := fs.String("search", "", "filter plans by title or description")
	like := fs.String("like", "", "toggle like on a plan id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctrl := feed.NewPlanFeed(a.client, a.sess, a.store, a.logger)
	if err := ctrl.Load(ctx); err != nil {
		return err
	}
	if *like != "" {
		if err := ctrl.ToggleLike(ctx, *like); err != nil {
			return err
		}
	}
	if *search != "" {
		if err := ctrl.Search(ctx, *search); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tAUTHOR\tTITLE\tTOPICS\tLIKES")
	for _, p := range ctrl.Items() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			p.ID, p.UserName, truncate(p.Title, 40), strings.Join(p.TopicList(), ", "), len(p.Likes))
	}
	return w.Flush()
}

func (a *app) runProgress(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("progress", flag.ExitOnError)
	search := fs.String("search", "", "filter entries by title")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctrl := feed.NewProgressFeed(a.client, a.sess, a.store, a.logger)
	if err := ctrl.Load(ctx); err != nil {
		return err
	}
	if *search != "" {
		if err := ctrl.Search(ctx, *search); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tAUTHOR\tTEMPLATE\tSTATUS\tTITLE")
	for _, e := range ctrl.Items() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.UserName, e.TemplateType, e.Status, truncate(e.Title, 50))
	}
	return w.Flush()
}

func (a *app) runDashboard(ctx context.Context) error {
	ctrl := dashboard.NewController(a.client, a.sess, a.logger)
	summary, err := ctrl.Load(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Progress: %d%% complete (%d of %d entries)\n",
		summary.CompletionPercent, summary.Completed, summary.Total)
	for _, p := range summary.Series {
		fmt.Printf("  %-12s %d\n", p.Label, p.Count)
	}
	return nil
}

func (a *app) runNotifications(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("notifications", flag.ExitOnError)
	open := fs.String("open", "", "mark a notification read and print its target")
	readAll := fs.Bool("read-all", false, "mark every notification read")
	if err := fs.Parse(args); err != nil {
		return err
	}

	inbox := notify.NewInbox(a.client, a.sess, a.logger)
	if err := inbox.Load(ctx); err != nil {
		return err
	}

	if *open != "" {
		target, err := inbox.Open(ctx, *open)
		if err != nil {
			return err
		}
		if target != "" {
			fmt.Println(target)
		}
		return nil
	}
	if *readAll {
		if err := inbox.MarkAllRead(ctx); err != nil {
			return err
		}
	}

	fmt.Printf("%d unread\n", inbox.UnreadCount())
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tREAD\tMESSAGE")
	for _, n := range inbox.Items() {
		fmt.Fprintf(w, "%s\t%s\t%v\t%s\n", n.ID, n.Type, n.Read, truncate(n.Message, 60))
	}
	return w.Flush()
}

func (a *app) runUsers(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users", flag.ExitOnError)
	follow := fs.String("follow", "", "toggle follow for a user id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	panel := social.NewFollowPanel(a.client, a.sess, a.logger)
	if err := panel.Load(ctx); err != nil {
		return err
	}
	if *follow != "" {
		if err := panel.Toggle(ctx, *follow); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tFOLLOWING\tSKILLS")
	for _, u := range panel.Suggestions() {
		fmt.Fprintf(w, "%s\t%s\t%v\t%s\n",
			u.ID, u.Name, panel.IsFollowing(u.ID), strings.Join(u.Skills, ", "))
	}
	return w.Flush()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

// initLogger initializes the structured logger based on environment
func initLogger() (*zap.Logger, error) {
	env := os.Getenv("GO_ENV")
	var config zap.Config

	switch env {
	case "production":
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	default:
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}
