package main

import (
	"context"
	"database/sql"
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	persistence "github.com/goliatone/go-persistence-bun"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun/dialect/pgdialect"

	thingsboardmcp "github.com/apachler/thingsboard-mcp-server"
	"github.com/apachler/thingsboard-mcp-server/core"
	"github.com/apachler/thingsboard-mcp-server/inbound"
	ledgermigrations "github.com/apachler/thingsboard-mcp-server/migrations"
	"github.com/apachler/thingsboard-mcp-server/resources"
	sqlstore "github.com/apachler/thingsboard-mcp-server/store/sql"
	"github.com/apachler/thingsboard-mcp-server/toolkit"
)

const envLedgerDSN = "THINGSBOARD_LEDGER_DSN"

func main() {
	addr := flag.String("addr", ":8000", "listen address for the http transport")
	flag.Parse()

	if missing := core.MissingEnv(nil); len(missing) > 0 {
		log.Fatalf("Missing environment variables: %s", strings.Join(missing, ", "))
	}
	transportKind, err := inbound.ResolveTransport(os.Getenv(core.EnvTransport))
	if err != nil {
		log.Fatalf("Invalid %s: %v", core.EnvTransport, err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	opts, ledgerCleanup := setupLedger(ctx)
	defer ledgerCleanup()

	svc, err := thingsboardmcp.NewFromEnv(opts...)
	if err != nil {
		log.Fatalf("Failed to build dispatch service: %v", err)
	}

	// Log in before accepting any tool calls, matching the platform's
	// expectation that credentials are validated at startup.
	if err := svc.EnsureCredential(ctx); err != nil {
		log.Fatalf("ThingsBoard login failed: %v", err)
	}

	client, err := resources.NewClient(svc)
	if err != nil {
		log.Fatalf("Failed to build resource client: %v", err)
	}
	registry, err := toolkit.BuildRegistry(client)
	if err != nil {
		log.Fatalf("Failed to build tool registry: %v", err)
	}

	logger := svc.Dependencies().Logger
	switch transportKind {
	case inbound.TransportStdio:
		serveStdio(ctx, registry, logger)
	case inbound.TransportHTTP:
		serveHTTP(ctx, *addr, registry, logger)
	default:
		log.Fatalf("Unsupported transport %q", transportKind)
	}
}

// setupLedger wires the optional SQL-backed activity ledger. Without a DSN
// the service runs with dispatch logging only.
func setupLedger(ctx context.Context) ([]thingsboardmcp.Option, func()) {
	dsn := strings.TrimSpace(os.Getenv(envLedgerDSN))
	if dsn == "" {
		return nil, func() {}
	}

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to open ledger database: %v", err)
	}
	client, err := persistence.New(ledgerPersistenceConfig{server: dsn}, sqlDB, pgdialect.New())
	if err != nil {
		log.Fatalf("Failed to build persistence client: %v", err)
	}
	if _, err := ledgermigrations.Register(ctx, func(_ context.Context, dialect string, _ string, fsys fs.FS) error {
		if dialect != ledgermigrations.DialectPostgres {
			return nil
		}
		client.RegisterSQLMigrations(fsys)
		return nil
	}, ledgermigrations.WithValidationTargets(ledgermigrations.DialectPostgres)); err != nil {
		log.Fatalf("Failed to register ledger migrations: %v", err)
	}
	if err := client.Migrate(ctx); err != nil {
		log.Fatalf("Failed to migrate ledger schema: %v", err)
	}

	factory, err := sqlstore.NewRepositoryFactoryFromPersistence(client)
	if err != nil {
		log.Fatalf("Failed to build ledger stores: %v", err)
	}

	activityCfg := thingsboardmcp.DefaultConfig().Activity
	policy := core.ActivityRetentionPolicy{
		TTL:    activityCfg.TTL(),
		RowCap: activityCfg.RowCap,
	}
	sink, err := core.NewBufferedActivitySink(factory.ActivityStore(), nil, policy, 256)
	if err != nil {
		log.Fatalf("Failed to build activity sink: %v", err)
	}

	go runRetentionLoop(ctx, sink)

	cleanup := func() {
		sink.Close()
		_ = client.Close()
	}
	return []thingsboardmcp.Option{thingsboardmcp.WithActivitySink(sink)}, cleanup
}

func runRetentionLoop(ctx context.Context, sink *core.BufferedActivitySink) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if deleted, err := sink.EnforceRetention(ctx); err != nil {
				log.Printf("Ledger retention sweep failed: %v", err)
			} else if deleted > 0 {
				log.Printf("Ledger retention sweep removed %d entries", deleted)
			}
		}
	}
}

func serveStdio(ctx context.Context, registry *toolkit.Registry, logger core.Logger) {
	server, err := inbound.NewStdioServer(os.Stdin, os.Stdout, registry, logger)
	if err != nil {
		log.Fatalf("Failed to build stdio server: %v", err)
	}
	if err := server.Serve(ctx); err != nil {
		log.Fatalf("Stdio server failed: %v", err)
	}
}

func serveHTTP(ctx context.Context, addr string, registry *toolkit.Registry, logger core.Logger) {
	server, err := inbound.NewHTTPServer(addr, registry, logger)
	if err != nil {
		log.Fatalf("Failed to build http server: %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("HTTP server failed: %v", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP shutdown: %v", err)
		}
		<-errCh
	}
}

type ledgerPersistenceConfig struct {
	server string
}

func (c ledgerPersistenceConfig) GetDebug() bool {
	return false
}

func (c ledgerPersistenceConfig) GetDriver() string {
	return "postgres"
}

func (c ledgerPersistenceConfig) GetServer() string {
	return c.server
}

func (c ledgerPersistenceConfig) GetPingTimeout() time.Duration {
	return 5 * time.Second
}

func (c ledgerPersistenceConfig) GetOtelIdentifier() string {
	return "thingsboard-mcp"
}
