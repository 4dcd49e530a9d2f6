package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/medware/hospital-admin/internal/api"
	"github.com/medware/hospital-admin/internal/appointment"
	"github.com/medware/hospital-admin/internal/auth"
	"github.com/medware/hospital-admin/internal/billing"
	"github.com/medware/hospital-admin/internal/cache"
	"github.com/medware/hospital-admin/internal/config"
	"github.com/medware/hospital-admin/internal/db"
	"github.com/medware/hospital-admin/internal/doctor"
	"github.com/medware/hospital-admin/internal/patient"
	"github.com/medware/hospital-admin/internal/record"
	"github.com/medware/hospital-admin/internal/report"
	"github.com/medware/hospital-admin/internal/room"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		errLog := zerolog.New(os.Stderr)
		errLog.Fatal().Err(err).Msg("config load error")
	}

	log := newLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Str("http_port", cfg.HTTPPort).Msg("api-server starting up")

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN, cfg.PGMaxConns)
	cancelPg()
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection error")
	}
	defer pgPool.Close()
	log.Info().Msg("connected to Postgres")

	rdb, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisPoolSize)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection error")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing redis")
		}
	}()
	log.Info().Str("addr", cfg.RedisAddr).Msg("connected to Redis")

	lists := cache.NewListStore(rdb, cfg.CacheTTL)
	locker := cache.NewRedisRoomLocker(rdb, cfg.LockTTL)

	rooms := room.NewService(room.NewPgRepository(pgPool), locker, lists, log)
	patients := patient.NewService(patient.NewPgRepository(pgPool), rooms, lists, log)
	doctors := doctor.NewService(doctor.NewPgRepository(pgPool), lists, log)
	invoices := billing.NewService(billing.NewPgRepository(pgPool), lists, log)
	records := record.NewService(record.NewPgRepository(pgPool), patients, doctors, lists, log)
	appointments := appointment.NewService(appointment.NewPgRepository(pgPool), patients, doctors, lists, log)
	sessions := auth.NewService(auth.NewPgRepository(pgPool), cfg.JWTSecret, cfg.SessionTTL, log)

	fetchStats := func(ctx context.Context) (report.DashboardStats, error) {
		pts, err := patients.List(ctx, patient.Filter{})
		if err != nil {
			return report.DashboardStats{}, err
		}
		rms, err := rooms.List(ctx, room.Filter{})
		if err != nil {
			return report.DashboardStats{}, err
		}
		invs, err := invoices.List(ctx, billing.Filter{})
		if err != nil {
			return report.DashboardStats{}, err
		}
		users, err := sessions.ListUsers(ctx)
		if err != nil {
			return report.DashboardStats{}, err
		}
		return report.ComputeDashboardStats(pts, rms, invs, users, time.Now().UTC()), nil
	}

	poller := report.NewPoller(fetchStats, cfg.StatsInterval, log)
	poller.Start(rootCtx)
	defer poller.Stop()

	router := api.NewRouter(api.RouterConfig{
		Patients:     patients,
		Doctors:      doctors,
		Rooms:        rooms,
		Invoices:     invoices,
		Records:      records,
		Appointments: appointments,
		Auth:         sessions,
		Poller:       poller,
		PgPool:       pgPool,
		Redis:        rdb,
		Log:          log,
		Env:          cfg.Env,
		Version:      version,
		HospitalName: cfg.HospitalName,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-rootCtx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown error")
	}

	log.Info().Msg("api-server stopped")
}

func newLogger(env string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if env == "dev" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
