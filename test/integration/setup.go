package integration

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"handi-menu/internal/client"
	"handi-menu/internal/config"
	"handi-menu/internal/database"
	"handi-menu/internal/handler"
	"handi-menu/internal/model"
	"handi-menu/internal/recommend"
	"handi-menu/internal/repository"
	"handi-menu/internal/router"
	"handi-menu/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, a connection pool and the
// application schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	logger := zerolog.Nop()
	pool, err := database.NewPoolFromURL(ctx, connStr, dbConfig, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := database.Migrate(ctx, pool, logger); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// TestServer is the full HTTP stack over a test database.
type TestServer struct {
	Server *httptest.Server
	Client *client.Client
	Menu   repository.MenuRepository
}

// SetupTestServer wires repositories, services, handlers and the router over
// testDB and serves them with httptest.
func SetupTestServer(t *testing.T, testDB *TestDB, opts service.OrderOptions) *TestServer {
	t.Helper()

	logger := zerolog.Nop()

	menuRepo := repository.NewMenuRepository(testDB.Pool, logger)
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)
	historyRepo := repository.NewHistoryRepository(testDB.Pool, logger)

	mux := router.New(router.Handlers{
		Menu:      handler.NewMenuHandler(service.NewMenuService(menuRepo, logger), logger),
		Orders:    handler.NewOrderHandler(service.NewOrderService(orderRepo, historyRepo, opts, logger), logger),
		History:   handler.NewHistoryHandler(service.NewHistoryService(historyRepo, orderRepo, logger), logger),
		Stats:     handler.NewStatsHandler(service.NewStatsService(orderRepo, historyRepo, logger), logger),
		Assistant: handler.NewAssistantHandler(recommend.New(nil, recommend.Options{}, logger), logger),
	}, logger)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return &TestServer{
		Server: srv,
		Client: client.New(srv.URL, client.Options{Retries: 1}, logger),
		Menu:   menuRepo,
	}
}

// SeedMenu inserts a small catalogue.
func SeedMenu(t *testing.T, repo repository.MenuRepository) []model.MenuItem {
	t.Helper()

	prep := 25
	items := []model.MenuItem{
		{ID: "M001", Name: "Chicken Biryani", Category: model.CategoryBiryani, Price: 350, Rating: 4.8, PrepTime: &prep},
		{ID: "M002", Name: "Veg Pizza", Category: model.CategoryPizza, Price: 200, Rating: 4.1},
		{ID: "M003", Name: "Chicken Momo", Category: model.CategoryMomo, Price: 180, Rating: 4.7},
	}

	if _, err := repo.Upsert(context.Background(), items); err != nil {
		t.Fatalf("failed to seed menu: %v", err)
	}

	return items
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"history", "orders", "menu"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
