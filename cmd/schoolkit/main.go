package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/dmitrymomot/schoolkit/modules/billing"
	"github.com/dmitrymomot/schoolkit/modules/catalog"
	"github.com/dmitrymomot/schoolkit/modules/directory"
	"github.com/dmitrymomot/schoolkit/modules/enrollment"
	"github.com/dmitrymomot/schoolkit/modules/notifier"
	"github.com/dmitrymomot/schoolkit/pkg/config"
	"github.com/dmitrymomot/schoolkit/pkg/email"
	"github.com/dmitrymomot/schoolkit/pkg/httpserver"
	"github.com/dmitrymomot/schoolkit/pkg/logger"
	"github.com/dmitrymomot/schoolkit/pkg/pg"
	"github.com/dmitrymomot/schoolkit/pkg/redis"
)

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	EmailDir string `env:"DEV_EMAIL_DIR" envDefault:"./tmp/emails"`
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("schoolkit exited", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg   appConfig
		pgCfg    pg.Config
		redisCfg redis.Config
		mailCfg  email.Config
		pushCfg  notifier.WebPushConfig
		httpCfg  httpserver.Config
		issuer   billing.Issuer
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&mailCfg)
	config.MustLoad(&pushCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&issuer)

	var log *slog.Logger
	if appCfg.Env == "production" {
		log = logger.New(logger.WithProduction("schoolkit"))
	} else {
		log = logger.New(logger.WithDevelopment("schoolkit"))
	}
	logger.SetAsDefault(log)

	db, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer db.Close()

	// Push subscriptions survive restarts in Redis; without it the
	// in-memory store keeps the channel functional for development.
	var subscriptions notifier.SubscriptionStore = notifier.NewMemorySubscriptionStore()
	if client, err := redis.Connect(ctx, redisCfg); err != nil {
		log.WarnContext(ctx, "redis unavailable, push subscriptions are not persisted", logger.Error(err))
	} else {
		defer client.Close()
		subscriptions = notifier.NewRedisSubscriptionStore(client)
	}

	// Identity integration point: swap for the deployment's account
	// system resolver.
	people := directory.NewMemoryResolver()

	cat := catalog.NewService(catalog.NewPGStorage(db))
	invoices := billing.NewPGStorage(db)

	// The email channel only renders documents, so it takes a billing
	// service without event wiring; the event-emitting service is built
	// after the dispatcher.
	renderer := billing.NewService(invoices, cat, people,
		billing.WithIssuer(issuer),
		billing.WithLogger(log),
	)

	mailer, err := newMailer(appCfg, mailCfg)
	if err != nil {
		return err
	}
	var pushSender notifier.PushSender
	if pushCfg.Configured() {
		pushSender = notifier.NewWebPushSender(pushCfg)
	}

	hub := notifier.NewSessionHub(32)
	defer hub.Close()
	inbox := notifier.NewInbox(notifier.NewPGStorage(db))
	pushCh := notifier.NewPushChannel(subscriptions, pushSender, notifier.WithPushLogger(log))
	emailCh := notifier.NewEmailChannel(mailer, renderer)

	dispatcher := notifier.NewDispatcher(
		[]notifier.Channel{hub, inbox, pushCh, emailCh},
		notifier.WithDispatcherLogger(log),
	)
	bridge := notifier.NewEventBridge(dispatcher, people, notifier.WithBridgeLogger(log))

	billingSvc := billing.NewService(invoices, cat, people,
		billing.WithIssuer(issuer),
		billing.WithLogger(log),
		billing.WithEvents(bridge),
	)
	enrollSvc := enrollment.NewService(enrollment.NewPGStorage(db), cat, billingSvc, people,
		enrollment.WithEvents(bridge),
		enrollment.WithLogger(log),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Get("/healthz", httpserver.HealthCheck(log))
	r.Get("/readyz", httpserver.HealthCheck(log, pg.Healthcheck(db)))
	r.Mount("/enrollments", enrollment.Router(enrollSvc))
	r.Mount("/invoices", billing.Router(billingSvc))
	r.Mount("/notifications", notifier.Router(inbox, pushCh, headerUser))

	return httpserver.New(httpCfg, log).Run(ctx, r)
}

// newMailer picks the outbound transport: Postmark when a server token
// is present, SMTP when relay credentials are present, the file-based
// dev sender otherwise. Production without credentials gets no mailer,
// which the email channel reports as skipped.
func newMailer(appCfg appConfig, cfg email.Config) (email.Sender, error) {
	switch {
	case cfg.PostmarkConfigured():
		return email.NewPostmarkSender(cfg)
	case cfg.SMTPConfigured():
		return email.NewSMTPSender(cfg)
	case appCfg.Env != "production":
		return email.NewDevSender(appCfg.EmailDir), nil
	default:
		return nil, nil
	}
}

// headerUser trusts the authenticating proxy's user header. Replace
// with session middleware when running without one.
func headerUser(r *http.Request) (uuid.UUID, error) {
	raw := r.Header.Get("X-User-ID")
	if raw == "" {
		return uuid.Nil, errors.New("missing user identity")
	}
	return uuid.Parse(raw)
}
