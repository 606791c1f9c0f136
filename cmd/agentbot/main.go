package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"agentbot/internal/cmdlog"
	"agentbot/internal/config"
	"agentbot/internal/content"
	"agentbot/internal/engage"
	"agentbot/internal/jobs"
	"agentbot/internal/logging"
	"agentbot/internal/metrics"
	"agentbot/internal/respond"
	"agentbot/internal/schedule"
	"agentbot/internal/theme"
	"agentbot/internal/xclient"
)

const defaultConfigPath = "./agentbot.yaml"

func main() {
	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	var err error
	switch cmd {
	case "init":
		err = cmdlog.Run(cmd, cmdInit)
	case "run":
		err = cmdlog.Run(cmd, cmdRun)
	case "post":
		err = cmdlog.Run(cmd, cmdPost)
	case "reply":
		err = cmdlog.Run(cmd, cmdReply)
	case "preview":
		err = cmdlog.Run(cmd, cmdPreview)
	case "schedule":
		err = cmdlog.Run(cmd, cmdSchedule)
	default:
		printHelp()
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func printHelp() {
	theme.PrintBanner()
	fmt.Println("Usage: agentbot <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  init        Create a config file at ./agentbot.yaml")
	fmt.Println("  run         Post on schedule and answer mentions until interrupted")
	fmt.Println("  post        Run one posting cycle")
	fmt.Println("  reply       Run one mention reply cycle")
	fmt.Println("  preview     Show the reply for a mention text, or a sample post")
	fmt.Println("  schedule    Show upcoming posting times")
}

// app holds the wired components shared by the commands.
type app struct {
	cfg    config.Config
	client *xclient.HTTPClient
	filter *content.Filter
	quota  *engage.Quota
	cursor *engage.Cursor
	policy engage.CursorPolicy
}

func loadConfig(fs *flag.FlagSet) (config.Config, error) {
	cfgPath := fs.String("config", defaultConfigPath, "config path")
	if err := fs.Parse(os.Args[2:]); err != nil {
		return config.Config{}, err
	}
	return config.Load(*cfgPath)
}

func newApp(cfg config.Config) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policy, err := engage.ParseCursorPolicy(cfg.Replies.CursorPolicy)
	if err != nil {
		return nil, err
	}
	creds := xclient.Credentials{
		ConsumerKey:       cfg.Credentials.ConsumerKey,
		ConsumerSecret:    cfg.Credentials.ConsumerSecret,
		AccessToken:       cfg.Credentials.AccessToken,
		AccessTokenSecret: cfg.Credentials.AccessTokenSecret,
	}
	client := xclient.NewHTTPClient(cfg.API.BaseURL, creds, xclient.Options{
		Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		RPS:     cfg.API.RPS,
		Burst:   cfg.API.Burst,
	})
	return &app{
		cfg:    cfg,
		client: client,
		filter: content.NewFilter(cfg.Content.BlockedTerms...),
		quota:  engage.NewQuota(cfg.Bot.MaxPostsPerDay, nil),
		cursor: engage.NewCursor(),
		policy: policy,
	}, nil
}

func (a *app) generator() (*content.Generator, error) {
	var cats []content.Category
	for _, name := range a.cfg.Categories() {
		c, err := content.ParseCategory(name)
		if err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return content.NewGenerator(rng, cats, a.cfg.Bot.Username), nil
}

func (a *app) poster() (*jobs.Poster, error) {
	gen, err := a.generator()
	if err != nil {
		return nil, err
	}
	return jobs.NewPoster(a.client, gen, a.filter, a.quota), nil
}

func (a *app) replier(ctx context.Context) (*jobs.Replier, error) {
	id, err := jobs.ResolveAccount(ctx, a.client, a.cfg.Replies.AccountID, a.cfg.Bot.Username)
	if err != nil {
		return nil, err
	}
	return jobs.NewReplier(a.client, respond.Default(), a.filter, a.cursor, a.policy, id), nil
}

// setup loads config, then installs logging and the metrics endpoint.
func setup(fs *flag.FlagSet) (*app, func(), error) {
	cfg, err := loadConfig(fs)
	if err != nil {
		return nil, nil, err
	}
	closer, err := logging.Setup(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return nil, nil, err
	}
	a, err := newApp(cfg)
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	metrics.StartServer(cfg.Metrics.Addr)
	return a, func() { _ = closer.Close() }, nil
}

func cmdInit() error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	path := fs.String("path", defaultConfigPath, "path to write config")
	_ = fs.Parse(os.Args[2:])
	if err := config.Save(*path, config.Default()); err != nil {
		return err
	}
	abs, _ := filepath.Abs(*path)
	theme.PrintBanner()
	fmt.Println("Config written to:", abs)
	fmt.Println("Set TWITTER_CONSUMER_KEY, TWITTER_CONSUMER_SECRET, TWITTER_ACCESS_TOKEN and TWITTER_ACCESS_TOKEN_SECRET (or a .env file) before running.")
	return nil
}

func cmdRun() error {
	a, done, err := setup(flag.NewFlagSet("run", flag.ExitOnError))
	if err != nil {
		return err
	}
	defer done()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poster, err := a.poster()
	if err != nil {
		return err
	}
	jobList := []schedule.Job{{
		Name:       "post",
		Trigger:    schedule.SkipQuietHours(schedule.EveryHours{N: a.cfg.Bot.PostIntervalHours}, a.cfg.Bot.QuietHours),
		RunOnStart: a.cfg.Bot.PostOnStart,
		Run: func(ctx context.Context) error {
			_, err := poster.RunCycle(ctx)
			return err
		},
	}}
	if a.cfg.Replies.Enabled {
		replier, err := a.replier(ctx)
		if err != nil {
			return err
		}
		jobList = append(jobList, schedule.Job{
			Name:    "mentions",
			Trigger: schedule.Every{Interval: time.Duration(a.cfg.Replies.PollIntervalSeconds) * time.Second},
			Run: func(ctx context.Context) error {
				_, err := replier.RunCycle(ctx)
				return err
			},
		})
	}

	theme.PrintBanner()
	logging.Info("bot_started", map[string]any{
		"username":       a.cfg.Bot.Username,
		"schedule":       a.cfg.CronExpression(),
		"max_per_day":    a.cfg.Bot.MaxPostsPerDay,
		"categories":     strings.Join(a.cfg.Categories(), ","),
		"replies":        a.cfg.Replies.Enabled,
		"cursor_policy":  string(a.policy),
		"post_on_start":  a.cfg.Bot.PostOnStart,
		"quiet_hours":    fmt.Sprint(a.cfg.Bot.QuietHours),
		"metrics_addr":   a.cfg.Metrics.Addr,
		"poll_seconds":   a.cfg.Replies.PollIntervalSeconds,
		"api_base_url":   a.cfg.API.BaseURL,
		"api_rate_limit": a.cfg.API.RPS,
	})
	err = schedule.New(jobList...).Run(ctx)
	logging.Info("bot_stopped", nil)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func cmdPost() error {
	a, done, err := setup(flag.NewFlagSet("post", flag.ExitOnError))
	if err != nil {
		return err
	}
	defer done()
	poster, err := a.poster()
	if err != nil {
		return err
	}
	res, err := poster.RunCycle(context.Background())
	if err != nil {
		return err
	}
	switch res.Outcome {
	case jobs.OutcomePosted:
		fmt.Printf("posted %s (%s)\n%s\n", res.Post.ID, res.Category, res.Text)
	case jobs.OutcomeRejected:
		fmt.Printf("skipped: content rejected (%s)\n", res.Reason)
	default:
		fmt.Println("skipped:", res.Outcome)
	}
	return nil
}

func cmdReply() error {
	a, done, err := setup(flag.NewFlagSet("reply", flag.ExitOnError))
	if err != nil {
		return err
	}
	defer done()
	ctx := context.Background()
	replier, err := a.replier(ctx)
	if err != nil {
		return err
	}
	stats, err := replier.RunCycle(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("mentions=%d replied=%d skipped=%d rejected=%d failed=%d\n",
		stats.Fetched, stats.Replied, stats.Skipped, stats.Rejected, stats.Failed)
	return nil
}

// cmdPreview works offline: it needs no credentials and makes no API calls.
func cmdPreview() error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	cfg, err := loadConfig(fs)
	if err != nil {
		return err
	}
	text := strings.Join(fs.Args(), " ")
	filter := content.NewFilter(cfg.Content.BlockedTerms...)
	if text == "" {
		a := &app{cfg: cfg}
		gen, err := a.generator()
		if err != nil {
			return err
		}
		post, cat := gen.Create()
		fmt.Printf("category=%s bytes=%d\n%s\n", cat, len(post), post)
		printVerdict(filter.Check(post))
		return nil
	}
	reply, ok := respond.Default().Generate(text)
	fmt.Printf("facts=%s topic=%s rule=%s confidence=%.2f\n", strings.Join(reply.Facts, ","), reply.Topic, reply.Rule, reply.Confidence)
	if !ok {
		fmt.Println("no reply fits a post")
		return nil
	}
	fmt.Printf("bytes=%d\n%s\n", len(reply.Text), reply.Text)
	printVerdict(filter.Check(reply.Text))
	return nil
}

func printVerdict(err error) {
	if err != nil {
		fmt.Println("filter:", err)
		return
	}
	fmt.Println("filter: ok")
}

func cmdSchedule() error {
	fs := flag.NewFlagSet("schedule", flag.ExitOnError)
	n := fs.Int("n", 5, "number of upcoming posts to show")
	cfg, err := loadConfig(fs)
	if err != nil {
		return err
	}
	if cfg.Bot.PostIntervalHours <= 0 {
		return &config.ConfigError{Field: "POST_INTERVAL_HOURS", Msg: "must be greater than 0"}
	}
	trig := schedule.SkipQuietHours(schedule.EveryHours{N: cfg.Bot.PostIntervalHours}, cfg.Bot.QuietHours)
	fmt.Println("Schedule:", cfg.CronExpression(), "UTC")
	for _, t := range schedule.Upcoming(trig, time.Now().UTC(), *n) {
		fmt.Println("  ", t.Format(time.RFC3339))
	}
	return nil
}
