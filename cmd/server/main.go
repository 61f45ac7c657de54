// Command server runs the campus administration backend.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"

	"campusdesk/internal/audit"
	audithandler "campusdesk/internal/audit/handler"
	auditkafka "campusdesk/internal/audit/kafka"
	auditmemory "campusdesk/internal/audit/store/memory"
	auditpostgres "campusdesk/internal/audit/store/postgres"
	auditworker "campusdesk/internal/audit/worker"
	"campusdesk/internal/enrollment"
	"campusdesk/internal/events"
	"campusdesk/internal/exam"
	"campusdesk/internal/fees"
	"campusdesk/internal/hostel"
	"campusdesk/internal/leave"
	"campusdesk/internal/persistence"
	"campusdesk/internal/platform/config"
	"campusdesk/internal/platform/httpserver"
	"campusdesk/internal/platform/logger"
	"campusdesk/internal/platform/metrics"
	platformredis "campusdesk/internal/platform/redis"
	"campusdesk/internal/registration"
	"campusdesk/internal/student"
	transporthttp "campusdesk/internal/transport/http"
	"campusdesk/internal/verify"
)

const (
	fanoutBuffer    = 256
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Persistence. Every in-memory store registers below, then Load replays
	// the last checkpoint over the seed data.
	persist := persistence.NewFileStore(cfg.DataFile, log)

	// Audit sink: in-memory by default, Postgres when DATABASE_URL is set.
	var auditStore audit.Store
	memStore := auditmemory.NewInMemoryStore()
	auditStore = memStore
	persist.Register(memStore)

	if cfg.Postgres.URL != "" {
		db, err := sql.Open("pgx", cfg.Postgres.URL)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer db.Close()
		pgStore := auditpostgres.New(db)
		if err := pgStore.Schema(ctx); err != nil {
			return fmt.Errorf("prepare audit schema: %w", err)
		}
		auditStore = pgStore
		log.Info("audit store: postgres")
	}

	// Optional Kafka fan-out.
	producer, err := auditkafka.NewProducer(cfg.Kafka, log)
	if err != nil {
		return fmt.Errorf("connect kafka: %w", err)
	}

	auditOpts := []audit.Option{audit.WithMetrics(m)}
	var fanout chan audit.Event
	if producer != nil {
		defer producer.Close()
		fanout = make(chan audit.Event, fanoutBuffer)
		auditOpts = append(auditOpts, audit.WithFanout(fanout))
		log.Info("audit fan-out: kafka", "topic", cfg.Kafka.Topic)
	}
	auditor := audit.NewPublisher(auditStore, log, auditOpts...)

	// Course enrollment.
	courseStore := registration.NewInMemory("courses", enrollment.SeedCourses()...)
	persist.Register(courseStore)
	enrollEngine := registration.New(courseStore, registration.Config{
		Domain:         "enrollment",
		ResourceKey:    "course",
		AdmitAction:    audit.ActionEnrolled,
		WaitlistAction: audit.ActionWaitlisted,
		AllowWaitlist:  true,
	}, registration.WithAuditor(auditor), registration.WithCheckpointer(persist), registration.WithMetrics(m))
	enrollService := enrollment.NewService(enrollEngine)

	// Hostel booking. The service audits with the booking ID itself, so the
	// engine runs without an auditor here.
	hostelStore := registration.NewInMemory("hostels", hostel.SeedHostels()...)
	persist.Register(hostelStore)
	hostelEngine := registration.New(hostelStore, registration.Config{
		Domain:      "hostel",
		ResourceKey: "hostel",
	}, registration.WithMetrics(m))
	hostelRecords := hostel.NewRecordStore()
	persist.Register(hostelRecords)
	hostelService := hostel.NewService(hostelEngine, hostelRecords, auditor, persist)

	// Event registration.
	eventStore := registration.NewInMemory("events", events.SeedEvents()...)
	persist.Register(eventStore)
	eventEngine := registration.New(eventStore, registration.Config{
		Domain:         "events",
		ResourceKey:    "event",
		AdmitAction:    audit.ActionEventRegistered,
		WaitlistAction: audit.ActionEventWaitlisted,
		AllowWaitlist:  true,
	}, registration.WithAuditor(auditor), registration.WithCheckpointer(persist), registration.WithMetrics(m))
	eventService := events.NewService(eventEngine)

	// Fees.
	ledger := fees.NewLedgerStore(fees.SeedAccounts())
	persist.Register(ledger)
	feesService := fees.NewService(ledger, fees.NewTokenSigner(cfg.JWTSigningKey), auditor, persist, m)

	// Exam.
	schedule := exam.NewScheduleStore(exam.SeedTimetable())
	persist.Register(schedule)
	examService := exam.NewService(schedule, enrollService, auditor, persist)

	// Leave.
	leaveStore := leave.NewRequestStore()
	persist.Register(leaveStore)
	leaveService := leave.NewService(leaveStore, auditor, persist)

	// Identity verification: Redis-backed when configured, else in memory.
	var otpStore verify.Store
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		otpStore = verify.NewRedisStore(redisClient, cfg.OTPTTL)
		log.Info("otp store: redis")
	} else {
		memOTP := verify.NewInMemoryStore()
		persist.Register(memOTP)
		otpStore = memOTP
	}
	verifyService := verify.NewService(otpStore, cfg.OTPTTL, cfg.OTPRequestsPerMin, auditor, m)

	// Student directory.
	directory := student.NewDirectory(student.SeedStudents())
	persist.Register(directory)

	if err := persist.Load(ctx); err != nil {
		return fmt.Errorf("load data file: %w", err)
	}

	router := transporthttp.NewRouter(transporthttp.Dependencies{
		Logger:  log,
		Metrics: m,
		Auditor: auditor,
		Persist: persist,
		Handlers: []transporthttp.Registrar{
			enrollment.NewHandler(enrollService, log),
			hostel.NewHandler(hostelService, log),
			events.NewHandler(eventService, log),
			fees.NewHandler(feesService, log),
			exam.NewHandler(examService, log),
			leave.NewHandler(leaveService, log),
			verify.NewHandler(verifyService, log),
			student.NewHandler(directory, log),
			audithandler.New(auditor, log),
		},
	})

	server := httpserver.New(cfg.Addr, router)

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if producer != nil {
		w := auditworker.New(producer, fanout, log)
		group.Go(func() error {
			if err := w.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("server stopped")
	return nil
}
