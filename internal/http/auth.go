package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/libreria/internal/auth"
	"github.com/mrlokans/libreria/internal/validation"
)

const (
	msgInvalidCredentials = "Correo o contraseña incorrectos"
	msgEmailRegistered    = "Correo ya registrado"
	msgTooManyAttempts    = "Demasiados intentos de inicio de sesión, intente más tarde"
	msgUserNotFound       = "Usuario no encontrado"
)

// LoginResponse is returned by a successful login. No token is issued.
type LoginResponse struct {
	Message string `json:"message"`
	UserID  uint   `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
}

type AuthController struct {
	users             UserService
	limiter           LoginLimiter
	minPasswordLength int
}

// NewAuthController creates the registration and login endpoints.
// limiter may be nil.
func NewAuthController(users UserService, limiter LoginLimiter, minPasswordLength int) *AuthController {
	return &AuthController{
		users:             users,
		limiter:           limiter,
		minPasswordLength: minPasswordLength,
	}
}

func (controller *AuthController) RegisterRoutes(router gin.IRouter) {
	group := router.Group("/auth")
	group.POST("/register", controller.Register)
	group.POST("/login", controller.Login)
	group.GET("/usuarios/:id", controller.GetUser)
}

func (controller *AuthController) Register(c *gin.Context) {
	var in auth.RegisterInput
	if !bindJSON(c, &in) {
		return
	}

	user, err := controller.users.Register(c.Request.Context(), in)
	switch {
	case err == nil:
		respondCreated(c, user)
	case errors.Is(err, auth.ErrUserExists):
		respondBadRequest(c, msgEmailRegistered)
	case errors.Is(err, auth.ErrPasswordRequired):
		respondBadRequest(c, "password: campo requerido")
	case errors.Is(err, auth.ErrPasswordTooShort):
		respondBadRequest(c, fmt.Sprintf("password: debe tener al menos %d caracteres", controller.minPasswordLength))
	case errors.Is(err, validation.ErrInvalid):
		respondBadRequest(c, err.Error())
	default:
		respondInternalError(c, err, "register user")
	}
}

func (controller *AuthController) Login(c *gin.Context) {
	var in auth.LoginInput
	if !bindJSON(c, &in) {
		return
	}

	ip := c.ClientIP()
	if controller.limiter != nil {
		if allowed, retryAfter := controller.limiter.Allow(ip, in.Email); !allowed {
			c.Header("Retry-After", auth.RetryAfterSeconds(retryAfter))
			respondError(c, http.StatusTooManyRequests, msgTooManyAttempts)
			return
		}
	}

	user, err := controller.users.Authenticate(c.Request.Context(), in)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		if controller.limiter != nil {
			controller.limiter.RecordFailure(ip, in.Email)
		}
		respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}
	if err != nil {
		respondInternalError(c, err, "login")
		return
	}

	if controller.limiter != nil {
		controller.limiter.RecordSuccess(ip, in.Email)
	}
	respondOK(c, LoginResponse{
		Message: "Login exitoso para el usuario " + user.Name,
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
	})
}

func (controller *AuthController) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := controller.users.GetUserByID(c.Request.Context(), id)
	if errors.Is(err, auth.ErrUserNotFound) {
		respondNotFound(c, msgUserNotFound)
		return
	}
	if err != nil {
		respondInternalError(c, err, "get user")
		return
	}
	respondOK(c, user)
}
