package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/libreria/internal/config"
	"github.com/mrlokans/libreria/internal/database/users"
	"github.com/mrlokans/libreria/internal/entities"
	"github.com/mrlokans/libreria/internal/logger"
	"github.com/mrlokans/libreria/internal/validation"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrPasswordRequired   = errors.New("password is required")
)

// Transactor runs a unit of work; *database.Database satisfies it.
type Transactor interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// RegisterInput is the body of POST /auth/register.
type RegisterInput struct {
	Email    string `json:"correo"`
	Password string `json:"password"`
	Name     string `json:"nombre"`
	Address  string `json:"direccion"`
	Phone    string `json:"telefono"`
	TaxID    string `json:"rfc"`
}

// LoginInput is the body of POST /auth/login.
type LoginInput struct {
	Email    string `json:"correo"`
	Password string `json:"password"`
}

// Service handles registration, credential checks and user lookups.
type Service struct {
	db     Transactor
	hasher *Hasher
	config config.Auth
	now    func() time.Time
}

// NewService creates a new authentication service.
func NewService(db Transactor, cfg config.Auth) *Service {
	return &Service{
		db:     db,
		hasher: NewHasher(cfg),
		config: cfg,
		now:    time.Now,
	}
}

// NormalizeEmail trims and lowercases an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) checkPassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if n := s.config.MinPasswordLength; n > 0 && len([]rune(password)) < n {
		return fmt.Errorf("%w: at least %d characters", ErrPasswordTooShort, n)
	}
	return nil
}

// Register creates a non-admin user. The stored password is a salted digest.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entities.User, error) {
	user := &entities.User{
		Email:        NormalizeEmail(in.Email),
		Name:         strings.TrimSpace(in.Name),
		Address:      in.Address,
		Phone:        in.Phone,
		TaxID:        in.TaxID,
		RegisteredAt: s.now().UTC(),
	}
	if err := validation.Struct(user); err != nil {
		return nil, err
	}
	if err := s.checkPassword(in.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	err = s.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := users.NewRepository(tx)
		taken, err := repo.EmailTaken(user.Email)
		if err != nil {
			return fmt.Errorf("failed to check existing user: %w", err)
		}
		if taken {
			return ErrUserExists
		}
		err = repo.Create(user)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks credentials. Unknown emails and wrong passwords both
// return ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, in LoginInput) (*entities.User, error) {
	email := NormalizeEmail(in.Email)

	var user *entities.User
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		user, err = users.NewRepository(tx).GetByEmail(email)
		return err
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *Service) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	var user *entities.User
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		user, err = users.NewRepository(tx).GetByID(id)
		return err
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// EnsureAdmin creates an administrator when no user has the given email.
// An existing user is left untouched. Returns true when a user was created.
func (s *Service) EnsureAdmin(ctx context.Context, email, password, name string) (bool, error) {
	return s.ensureAdmin(ctx, email, password, name, false)
}

// PromoteAdmin is EnsureAdmin, except that an existing user with the email
// is made an administrator and gets the new password.
func (s *Service) PromoteAdmin(ctx context.Context, email, password, name string) (bool, error) {
	return s.ensureAdmin(ctx, email, password, name, true)
}

func (s *Service) ensureAdmin(ctx context.Context, email, password, name string, promote bool) (bool, error) {
	email = NormalizeEmail(email)
	if !validation.Email(email) {
		return false, validation.Errors{{Field: "correo", Message: "formato de correo inválido"}}
	}
	if err := s.checkPassword(password); err != nil {
		return false, err
	}
	if name == "" {
		name = "Administrador"
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, err
	}

	created := false
	err = s.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := users.NewRepository(tx)
		existing, err := repo.GetByEmail(email)
		if err == nil {
			if !promote {
				return nil
			}
			return repo.SetAdmin(existing.ID, hash)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		created = true
		return repo.Create(&entities.User{
			Email:        email,
			PasswordHash: hash,
			Name:         name,
			RegisteredAt: s.now().UTC(),
			IsAdmin:      true,
		})
	})
	if err != nil {
		return false, err
	}

	logger.Get().Info().Str("email", email).Bool("created", created).Msg("administrator ensured")
	return created, nil
}
