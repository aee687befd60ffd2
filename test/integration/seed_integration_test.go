package integration

import (
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"handi-menu/internal/seed"
	"handi-menu/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeedFile(t *testing.T, lines ...string) string {
	t.Helper()

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	for _, line := range lines {
		_, err := w.Write([]byte(line + "\n"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), "menu.jsonl.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func TestSeeder_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	ts := SetupTestServer(t, testDB, service.OrderOptions{})
	ctx := context.Background()
	logger := zerolog.Nop()

	loader := seed.NewFallbackLoader(nil, seed.NewFileLoader(logger), "seed/", false, logger)
	seeder := seed.NewSeeder(loader, ts.Menu, logger)

	t.Run("seed file is served by the menu API", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		path := writeSeedFile(t,
			`{"id":"1","name":"Chicken Handi Biryani","category":"Biryani","price":450,"rating":4.9,"prepTime":30}`,
			`{"id":"2","name":"Chicken Momo","category":"Momo","price":180,"rating":4.7}`,
			`{"id":"3","name":"Mystery","category":"Dessert","price":99}`,
		)

		result, err := seeder.Run(ctx, path)

		require.NoError(t, err)
		assert.Equal(t, seed.Result{Loaded: 3, Skipped: 1, Upserted: 2}, result)

		menu := ts.Client.Menu(ctx)
		require.Len(t, menu, 2)
		assert.Equal(t, "Chicken Handi Biryani", menu[0].Name)
		require.NotNil(t, menu[0].PrepTime)
		assert.Equal(t, 30, *menu[0].PrepTime)
	})

	t.Run("reseeding replaces existing items", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		_, err := seeder.Run(ctx, writeSeedFile(t,
			`{"id":"1","name":"Chicken Handi Biryani","category":"Biryani","price":450,"rating":4.9}`,
		))
		require.NoError(t, err)

		_, err = seeder.Run(ctx, writeSeedFile(t,
			`{"id":"1","name":"Chicken Handi Biryani","category":"Biryani","price":500,"rating":4.9}`,
		))
		require.NoError(t, err)

		menu := ts.Client.Menu(ctx)
		require.Len(t, menu, 1)
		assert.Equal(t, 500.0, menu[0].Price)
	})
}
