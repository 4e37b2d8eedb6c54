package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"casenotes/internal/casenote/events"
	casenotehandler "casenotes/internal/casenote/handler"
	casenotemetrics "casenotes/internal/casenote/metrics"
	casenoteservice "casenotes/internal/casenote/service"
	casenotestore "casenotes/internal/casenote/store"
	httpapi "casenotes/internal/http"
	jwttoken "casenotes/internal/jwt_token"
	"casenotes/internal/legacy"
	notetypehandler "casenotes/internal/notetype/handler"
	notetypemetrics "casenotes/internal/notetype/metrics"
	notetypeservice "casenotes/internal/notetype/service"
	notetypestore "casenotes/internal/notetype/store"
	"casenotes/internal/platform/config"
	"casenotes/internal/platform/httpserver"
	"casenotes/internal/platform/logger"
	"casenotes/internal/platform/metrics"
	"casenotes/internal/platform/postgres"
	platformredis "casenotes/internal/platform/redis"
	txcontext "casenotes/pkg/platform/tx"
)

const (
	shutdownTimeout   = 10 * time.Second
	topicPartitions   = 3
	topicReplication  = 1
	eventTopicTimeout = 15 * time.Second
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		logger.New("info").Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("casenotes stopped", "error", err)
		os.Exit(1)
	}
}

// stores is the local persistence of one deployment: Postgres when a database
// is configured, process memory otherwise.
type stores struct {
	notes   casenoteservice.LocalStore
	catalog notetypeservice.LocalCatalog
	tx      casenoteservice.TxRunner
	sink    casenoteservice.EventSink
	outbox  events.Outbox
	close   func()
	health  httpapi.HealthCheck
}

func openStores(ctx context.Context, cfg config.Config, log *slog.Logger) (*stores, error) {
	if cfg.Database.URL == "" {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		outbox := events.NewMemoryOutbox()
		return &stores{
			notes:   casenotestore.NewInMemoryStore(),
			catalog: notetypestore.NewInMemoryStore(notetypestore.DefaultTypes()...),
			tx:      &txcontext.LocalRunner{},
			sink:    outbox,
			outbox:  outbox,
			close:   func() {},
		}, nil
	}

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	if err := postgres.ApplyMigrations(ctx, db, postgres.Migrations()); err != nil {
		_ = db.Close()
		return nil, err
	}
	outbox := events.NewPostgresOutbox(db)
	return &stores{
		notes:   casenotestore.NewPostgres(db),
		catalog: notetypestore.NewPostgres(db),
		tx:      postgres.NewTxRunner(db, 0),
		sink:    outbox,
		outbox:  outbox,
		close:   func() { _ = db.Close() },
		health:  db.PingContext,
	}, nil
}

// legacyClient is the full legacy surface used by both services.
type legacyClient interface {
	casenoteservice.LegacyGateway
	notetypeservice.LegacyTypes
}

func newLegacyClient(cfg config.Config, log *slog.Logger) (legacyClient, error) {
	if cfg.Legacy.URL == "" {
		log.Warn("LEGACY_API_URL not set, legacy case notes are unavailable")
		return legacy.Offline{}, nil
	}
	return legacy.New(cfg.Legacy.URL,
		legacy.WithToken(cfg.Legacy.Token),
		legacy.WithTimeout(cfg.Legacy.Timeout),
		legacy.WithLogger(log),
	)
}

func newPublisher(ctx context.Context, cfg config.Config, log *slog.Logger) (events.Publisher, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		log.Warn("KAFKA_BROKERS not set, case note events are logged only")
		return events.NewLogPublisher(log), func() {}, nil
	}
	kp, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if err != nil {
		return nil, nil, err
	}
	topicCtx, cancel := context.WithTimeout(ctx, eventTopicTimeout)
	defer cancel()
	if err := kp.EnsureTopic(topicCtx, topicPartitions, topicReplication); err != nil {
		log.Warn("could not ensure case note event topic", "topic", cfg.Kafka.Topic, "error", err)
	}
	return kp, kp.Close, nil
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()
	health := map[string]httpapi.HealthCheck{}
	if st.health != nil {
		health["db"] = st.health
	}

	gateway, err := newLegacyClient(cfg, log)
	if err != nil {
		return err
	}

	typeOpts := []notetypeservice.Option{
		notetypeservice.WithLogger(log),
		notetypeservice.WithMetrics(notetypemetrics.New()),
	}
	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		typeOpts = append(typeOpts, notetypeservice.WithCache(notetypestore.NewRedisCache(redisClient.Client, cfg.TypeCacheTTL)))
		health["redis"] = redisClient.Health
	}
	types := notetypeservice.New(st.catalog, gateway, typeOpts...)

	noteMetrics := casenotemetrics.New()
	notes := casenoteservice.New(st.notes, gateway, types, st.tx, st.sink,
		casenoteservice.WithLogger(log),
		casenoteservice.WithMetrics(noteMetrics),
		casenoteservice.WithLegacyTimeout(cfg.Legacy.Timeout),
		casenoteservice.WithMaxLegacyPageSize(cfg.Legacy.MaxPageSize),
	)

	publisher, closePublisher, err := newPublisher(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closePublisher()
	relay := events.NewRelay(st.outbox, publisher,
		events.WithInterval(cfg.OutboxPollInterval),
		events.WithLogger(log),
		events.WithMetrics(noteMetrics),
	)

	jwtService := jwttoken.NewJWTService(cfg.JWT.SigningKey, cfg.JWT.Issuer)
	router := httpapi.NewRouter(httpapi.Deps{
		Logger:    log,
		Metrics:   metrics.New(),
		Validator: jwttoken.NewJWTServiceAdapter(jwtService),
		Health:    health,
		Handlers: []httpapi.Routes{
			notetypehandler.New(types, log),
			casenotehandler.New(notes, log),
		},
	})
	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := relay.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info("starting casenotes", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
