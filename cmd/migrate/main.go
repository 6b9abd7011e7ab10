// Package main prepares a Spanner database for the catalog: it ensures the
// instance and database exist, applies migrations/*.sql, and can seed the
// demo catalog.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cloud.google.com/go/spanner"
	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/procat-browser/internal/app/catalog/provider/memory"
	"github.com/light-bringer/procat-browser/internal/app/catalog/repo"
	"github.com/light-bringer/procat-browser/internal/config"
	"github.com/light-bringer/procat-browser/internal/pkg/logging"
)

type migrator struct {
	projectID  string
	instanceID string
	databaseID string
	migrateDir string
	seed       bool
	seedSize   int
	seedValue  uint64

	emulatorHost string
	logger       *zap.Logger
}

func (m *migrator) instancePath() string {
	return fmt.Sprintf("projects/%s/instances/%s", m.projectID, m.instanceID)
}

func (m *migrator) databasePath() string {
	return fmt.Sprintf("%s/databases/%s", m.instancePath(), m.databaseID)
}

func newRootCmd(m *migrator, cfg *config.Config) (*cobra.Command, error) {
	project, inst, db, err := cfg.Spanner.DatabaseParts()
	if err != nil {
		return nil, err
	}

	cmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Create and migrate the catalog Spanner database",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(cfg.Log.Level, true)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			m.logger = logger

			m.emulatorHost = cfg.Spanner.EmulatorHost
			if m.emulatorHost != "" {
				logger.Info("Using Spanner emulator", zap.String("host", m.emulatorHost))
			}
			if err := m.run(cmd.Context()); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			logger.Info("Migrations completed successfully")
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&m.projectID, "project", project, "GCP project ID")
	f.StringVar(&m.instanceID, "instance", inst, "Spanner instance ID")
	f.StringVar(&m.databaseID, "database", db, "Spanner database ID")
	f.StringVar(&m.migrateDir, "migrations", "migrations", "Directory containing migration SQL files")
	f.BoolVar(&m.seed, "seed", false, "Replace the catalog with the demo products after migrating")
	f.IntVar(&m.seedSize, "seed-size", cfg.Mock.Size, "Number of demo products to seed")
	f.Uint64Var(&m.seedValue, "seed-value", cfg.Mock.Seed, "Random seed for demo prices and stock")
	return cmd, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cmd, err := newRootCmd(&migrator{}, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid SPANNER_DATABASE: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func (m *migrator) run(ctx context.Context) error {
	if err := m.ensureInstance(ctx); err != nil {
		return fmt.Errorf("failed to ensure instance: %w", err)
	}
	if err := m.ensureDatabase(ctx); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}
	if err := m.applyMigrations(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	if m.seed {
		if err := m.seedCatalog(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (m *migrator) ensureInstance(ctx context.Context) error {
	log := m.logger.With(zap.String("instance", m.instanceID))

	admin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer admin.Close()

	_, err = admin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: m.instancePath()})
	switch {
	case err == nil:
		log.Info("Instance already exists")
		return nil
	case status.Code(err) != codes.NotFound:
		log.Warn("Unexpected error checking instance", zap.Error(err))
		return nil
	}

	log.Info("Creating instance")
	op, err := admin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     "projects/" + m.projectID,
		InstanceId: m.instanceID,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", m.projectID),
			DisplayName: "Catalog Development Instance",
			NodeCount:   1,
		},
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("failed to create instance: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		log.Warn("Instance creation did not complete cleanly", zap.Error(err))
	}
	log.Info("Instance created")
	return nil
}

func (m *migrator) ensureDatabase(ctx context.Context) error {
	log := m.logger.With(zap.String("database", m.databaseID))

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer admin.Close()

	_, err = admin.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: m.databasePath()})
	if err == nil {
		log.Info("Database already exists")
		return nil
	}
	if status.Code(err) != codes.NotFound {
		if m.emulatorHost != "" {
			log.Warn("Proceeding with database in emulator mode", zap.Error(err))
			return nil
		}
		return fmt.Errorf("failed to check database: %w", err)
	}

	log.Info("Creating database")
	op, err := admin.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          m.instancePath(),
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", m.databaseID),
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("failed to create database: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for database creation: %w", err)
	}
	log.Info("Database created")
	return nil
}

func (m *migrator) applyMigrations(ctx context.Context) error {
	files, err := filepath.Glob(filepath.Join(m.migrateDir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	if len(files) == 0 {
		m.logger.Info("No migration files found", zap.String("dir", m.migrateDir))
		return nil
	}
	sort.Strings(files)

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer admin.Close()

	existing, err := m.existingTables(ctx, admin)
	if err != nil {
		return err
	}

	for _, file := range files {
		name := filepath.Base(file)
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		statements := pendingStatements(splitDDLStatements(string(content)), existing)
		if len(statements) == 0 {
			m.logger.Info("Migration already applied", zap.String("file", name))
			continue
		}

		op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   m.databasePath(),
			Statements: statements,
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", name, err)
		}
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", name, err)
		}
		m.logger.Info("Applied migration", zap.String("file", name), zap.Int("statements", len(statements)))
	}
	return nil
}

// existingTables returns the lowercased names of tables and indexes in the
// current schema.
func (m *migrator) existingTables(ctx context.Context, admin *database.DatabaseAdminClient) (map[string]bool, error) {
	ddl, err := admin.GetDatabaseDdl(ctx, &databasepb.GetDatabaseDdlRequest{Database: m.databasePath()})
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	names := make(map[string]bool)
	for _, stmt := range ddl.GetStatements() {
		if name := createdObject(stmt); name != "" {
			names[name] = true
		}
	}
	return names, nil
}

func (m *migrator) seedCatalog(ctx context.Context) error {
	client, err := spanner.NewClient(ctx, m.databasePath())
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	products := memory.MockCatalog(m.seedSize, m.seedValue)
	if err := repo.Seed(ctx, client, products); err != nil {
		return err
	}
	m.logger.Info("Seeded catalog", zap.Int("products", len(products)))
	return nil
}

// pendingStatements drops CREATE statements for objects that already exist.
func pendingStatements(statements []string, existing map[string]bool) []string {
	pending := make([]string, 0, len(statements))
	for _, stmt := range statements {
		if name := createdObject(stmt); name != "" && existing[name] {
			continue
		}
		pending = append(pending, stmt)
	}
	return pending
}

// createdObject returns the lowercased table or index name a CREATE TABLE or
// CREATE [UNIQUE] INDEX statement defines, or "".
func createdObject(stmt string) string {
	fields := strings.Fields(stmt)
	if len(fields) < 3 || !strings.EqualFold(fields[0], "CREATE") {
		return ""
	}
	rest := fields[1:]
	if strings.EqualFold(rest[0], "UNIQUE") || strings.EqualFold(rest[0], "NULL_FILTERED") {
		rest = rest[1:]
	}
	if len(rest) < 2 {
		return ""
	}
	if !strings.EqualFold(rest[0], "TABLE") && !strings.EqualFold(rest[0], "INDEX") {
		return ""
	}
	name := rest[1]
	if i := strings.IndexAny(name, "("); i >= 0 {
		name = name[:i]
	}
	return strings.ToLower(strings.Trim(name, "`"))
}

func splitDDLStatements(content string) []string {
	var cleaned []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var result []string
	for _, stmt := range strings.Split(strings.Join(cleaned, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			result = append(result, stmt)
		}
	}
	return result
}
