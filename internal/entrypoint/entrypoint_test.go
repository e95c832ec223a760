package entrypoint

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/libreria/internal/config"
	"github.com/mrlokans/libreria/internal/database/users"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return &config.Config{
		HTTP:       config.HTTP{Host: "127.0.0.1", Port: 0},
		Global:     config.Global{ShutdownTimeoutInSeconds: 1},
		Database:   config.Database{Path: filepath.Join(t.TempDir(), "app.db")},
		Pagination: config.Pagination{DefaultLimit: 100, MaxLimit: 500},
		Auth: config.Auth{
			HashScheme:        config.HashSchemePBKDF2,
			PBKDF2Rounds:      1000,
			MinPasswordLength: 6,
			MaxLoginAttempts:  5,
		},
	}
}

func TestBuild(t *testing.T) {
	t.Run("serves the api", func(t *testing.T) {
		app, err := Build(context.Background(), testConfig(t), "test")
		require.NoError(t, err)
		defer app.Close()

		w := httptest.NewRecorder()
		app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/libros", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
	})

	t.Run("seeds the administrator", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Auth.AdminEmail = "Admin@Example.com"
		cfg.Auth.AdminPassword = "superclave"

		app, err := Build(context.Background(), cfg, "test")
		require.NoError(t, err)
		defer app.Close()

		admin, err := users.NewRepository(app.DB.DB).GetByEmail("admin@example.com")
		require.NoError(t, err)
		assert.True(t, admin.IsAdmin)
		assert.Equal(t, "Administrador", admin.Name)
	})

	t.Run("restart keeps the stored administrator password", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Auth.AdminEmail = "admin@example.com"
		cfg.Auth.AdminPassword = "primeraclave"

		app, err := Build(context.Background(), cfg, "test")
		require.NoError(t, err)
		first, err := users.NewRepository(app.DB.DB).GetByEmail("admin@example.com")
		require.NoError(t, err)
		app.Close()

		cfg.Auth.AdminPassword = "otraclave"
		app, err = Build(context.Background(), cfg, "test")
		require.NoError(t, err)
		defer app.Close()

		second, err := users.NewRepository(app.DB.DB).GetByEmail("admin@example.com")
		require.NoError(t, err)
		assert.Equal(t, first.PasswordHash, second.PasswordHash)
	})

	t.Run("does not take over a registered customer", func(t *testing.T) {
		cfg := testConfig(t)
		app, err := Build(context.Background(), cfg, "test")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		body := strings.NewReader(`{"correo":"cliente@example.com","password":"secreto1","nombre":"Cliente"}`)
		req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
		req.Header.Set("Content-Type", "application/json")
		app.Router.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		app.Close()

		cfg.Auth.AdminEmail = "cliente@example.com"
		cfg.Auth.AdminPassword = "tomada123"
		app, err = Build(context.Background(), cfg, "test")
		require.NoError(t, err)
		defer app.Close()

		customer, err := users.NewRepository(app.DB.DB).GetByEmail("cliente@example.com")
		require.NoError(t, err)
		assert.False(t, customer.IsAdmin)
	})

	t.Run("rejects a bad administrator password", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Auth.AdminEmail = "admin@example.com"
		cfg.Auth.AdminPassword = "abc"

		_, err := Build(context.Background(), cfg, "test")
		assert.Error(t, err)
	})

	t.Run("throttling can be disabled", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Auth.MaxLoginAttempts = 0

		app, err := Build(context.Background(), cfg, "test")
		require.NoError(t, err)
		defer app.Close()
		assert.Nil(t, app.limiter)
	})
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, http.NotFoundHandler(), testConfig(t))
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
