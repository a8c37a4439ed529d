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

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	web "agegate/internal/adapters/http"
	"agegate/internal/adapters/http/middleware"
	"agegate/internal/adapters/storage"
	auditStore "agegate/internal/adapters/storage/audit"
	customFieldStore "agegate/internal/adapters/storage/customfield"
	membershipStore "agegate/internal/adapters/storage/membership"
	noticeStore "agegate/internal/adapters/storage/notice"
	settingsStore "agegate/internal/adapters/storage/settings"
	"agegate/internal/application/orchestrators"
	"agegate/internal/domain/agecheck"
	"agegate/internal/domain/audit"
	"agegate/internal/platform/config"
	"agegate/internal/platform/i18n"
	"agegate/internal/platform/log"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger := log.WithComponent("main")
		logger.Fatal().Err(err).Msg("server_exit")
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log.Configure(log.Config{Level: cfg.LogLevel, Version: version})
	logger := log.WithComponent("main")

	// Initialize database with WAL mode, foreign keys, and busy timeout
	db, err := sql.Open("sqlite", storage.DSN(cfg.DBPath))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	if err := storage.InitDB(db); err != nil {
		return err
	}
	logger.Info().Str("path", cfg.DBPath).Int("schema_version", storage.SchemaVersion).Msg("database_ready")

	timedDB := storage.NewTimedDB(db, cfg.SlowQuery)
	stores := &web.Stores{
		SettingsStore:    settingsStore.NewSQLiteStore(timedDB),
		MembershipStore:  membershipStore.NewSQLiteStore(timedDB),
		CustomFieldStore: customFieldStore.NewSQLiteStore(timedDB),
		NoticeStore:      noticeStore.NewSQLiteStore(timedDB),
		AuditStore:       auditStore.NewSQLiteStore(timedDB),
	}

	if cfg.SeedFile != "" {
		if err := seedRegistry(ctx, cfg.SeedFile, stores, logger); err != nil {
			return err
		}
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	locale := i18n.ParseLocale(cfg.Locale)

	adminHash, err := cfg.AdminHash()
	if err != nil {
		return err
	}
	csrfKey, generated, err := cfg.CSRFSecret()
	if err != nil {
		return err
	}
	if generated {
		logger.Warn().Msg("using random CSRF key; form tokens won't survive restart. Set AGEGATE_CSRF_KEY for production.")
	}

	parser := agecheck.NewParser(cfg.DateLayouts, loc)
	logger.Info().Strs("layouts", parser.Layouts()).Str("timezone", loc.String()).Msg("date_parser_ready")

	// The age gate is the one validator registered with the signup pipeline.
	gate := orchestrators.NewAgeGate(orchestrators.VerifySignupAgeDeps{
		SettingsStore:   stores.SettingsStore,
		MembershipStore: stores.MembershipStore,
		Parser:          parser,
		Printer:         i18n.Printer(locale),
	})

	mux := web.NewMux(stores, web.Options{
		Validator: orchestrators.ValidatorChain{gate},
		Admin:     middleware.AdminCredential{User: cfg.AdminUser, PasswordHash: adminHash},
		CSRF: middleware.CSRFConfig{
			Key:    csrfKey,
			Secure: cfg.IsProduction(),
		},
		Locale:             locale,
		DB:                 timedDB,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		SlowRequest:        cfg.SlowRequest,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Str("env", cfg.Env).Msg("server_listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("server_shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// seedRegistry loads the registry mirror from a YAML file.
func seedRegistry(ctx context.Context, path string, stores *web.Stores, logger zerolog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	result, err := orchestrators.ExecuteSeedRegistry(ctx, f, orchestrators.RegistryDeps{
		MembershipStore:  stores.MembershipStore,
		CustomFieldStore: stores.CustomFieldStore,
	})
	if err != nil {
		return err
	}
	if _, err := orchestrators.ExecuteRecordAdminChange(ctx, orchestrators.RecordAdminChangeInput{
		Actor:        "system",
		Action:       audit.ActionSeed,
		ResourceType: audit.ResourceRegistry,
		ResourceID:   path,
		Description:  fmt.Sprintf("%d memberships, %d custom fields", result.Memberships, result.CustomFields),
	}, orchestrators.RecordAdminChangeDeps{
		AuditStore: stores.AuditStore,
		GenerateID: uuid.NewString,
		Now:        time.Now,
	}); err != nil {
		logger.Error().Err(err).Msg("audit_record_failed")
	}
	logger.Info().
		Str("path", path).
		Int("memberships", result.Memberships).
		Int("custom_fields", result.CustomFields).
		Msg("registry_seeded")
	return nil
}
