package http

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthController_Register(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodPost, "/auth/register", map[string]any{
		"correo":    "Ana@Example.com ",
		"password":  "secreto1",
		"nombre":    "Ana",
		"direccion": "Calle 1",
		"rfc":       "XAXX010101000",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "secreto1")

	user := decode[map[string]any](t, w)
	assert.Equal(t, "ana@example.com", user["correo"])
	assert.Equal(t, "Ana", user["nombre"])
	assert.Equal(t, false, user["es_admin"])
	assert.NotEmpty(t, user["fecha_registro"])

	t.Run("duplicate email", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/auth/register", map[string]any{
			"correo": "ana@example.com", "password": "otraclave", "nombre": "Impostora",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Correo ya registrado", detail(t, w))

		w = s.do(t, http.MethodPost, "/auth/login", map[string]any{"correo": "ana@example.com", "password": "secreto1"})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejections", func(t *testing.T) {
		bodies := []map[string]any{
			{"correo": "no-es-correo", "password": "secreto1", "nombre": "X"},
			{"correo": "b@example.com", "password": "", "nombre": "X"},
			{"correo": "b@example.com", "password": "abc", "nombre": "X"},
			{"correo": "b@example.com", "password": "secreto1", "nombre": ""},
			{"correo": "b@example.com", "password": "secreto1", "nombre": "X", "telefono": "1234567890123456"},
		}
		for _, body := range bodies {
			w := s.do(t, http.MethodPost, "/auth/register", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, body)
		}
	})
}

func TestAuthController_Login(t *testing.T) {
	s := setupTestServer(t)
	id := s.registerUser(t, "login@example.com")

	t.Run("success", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/auth/login", map[string]any{"correo": "LOGIN@example.com", "password": "secreto1"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decode[LoginResponse](t, w)
		assert.Equal(t, "Login exitoso para el usuario Cliente", resp.Message)
		assert.Equal(t, id, resp.UserID)
		assert.False(t, resp.IsAdmin)
	})

	t.Run("failures share one message", func(t *testing.T) {
		wrong := s.do(t, http.MethodPost, "/auth/login", map[string]any{"correo": "login@example.com", "password": "incorrecta"})
		unknown := s.do(t, http.MethodPost, "/auth/login", map[string]any{"correo": "nadie@example.com", "password": "secreto1"})

		assert.Equal(t, http.StatusUnauthorized, wrong.Code)
		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, detail(t, wrong), detail(t, unknown))
		assert.Equal(t, "Correo o contraseña incorrectos", detail(t, wrong))
	})

	t.Run("lockout after repeated failures", func(t *testing.T) {
		s.registerUser(t, "bloqueo@example.com")
		bad := map[string]any{"correo": "bloqueo@example.com", "password": "incorrecta"}
		for i := 0; i < 3; i++ {
			w := s.do(t, http.MethodPost, "/auth/login", bad)
			require.Equal(t, http.StatusUnauthorized, w.Code)
		}

		w := s.do(t, http.MethodPost, "/auth/login", map[string]any{"correo": "bloqueo@example.com", "password": "secreto1"})
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
		assert.Equal(t, "Demasiados intentos de inicio de sesión, intente más tarde", detail(t, w))

		// other accounts are unaffected
		w = s.do(t, http.MethodPost, "/auth/login", map[string]any{"correo": "login@example.com", "password": "secreto1"})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/auth/login", `{"correo":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthController_GetUser(t *testing.T) {
	s := setupTestServer(t)
	id := s.registerUser(t, "perfil@example.com")

	w := s.do(t, http.MethodGet, "/auth/usuarios/"+strconv.Itoa(int(id)), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "perfil@example.com", decode[map[string]any](t, w)["correo"])
	assert.NotContains(t, w.Body.String(), "password")

	w = s.do(t, http.MethodGet, "/auth/usuarios/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Usuario no encontrado", detail(t, w))

	w = s.do(t, http.MethodGet, "/auth/usuarios/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
