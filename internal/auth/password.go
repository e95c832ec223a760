package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"

	"github.com/mrlokans/libreria/internal/config"
)

const (
	pbkdf2Prefix  = "$pbkdf2-sha256$"
	pbkdf2SaltLen = 16
	pbkdf2KeyLen  = 32

	// bcrypt has a 72-byte limit
	bcryptMaxPasswordBytes = 72
)

var (
	ErrPasswordTooLong = errors.New("password exceeds maximum length of 72 bytes")
	ErrUnknownScheme   = errors.New("unknown password hash scheme")
)

// passlib's adapted base64: standard alphabet with '.' for '+', no padding.
var ab64 = base64.NewEncoding("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789./").WithPadding(base64.NoPadding)

// Hasher produces and checks one-way password digests.
//
// PBKDF2 digests use the modular crypt format
// $pbkdf2-sha256$<rounds>$<salt>$<checksum>; bcrypt digests are the usual $2a$/$2b$ strings.
// Verify accepts both regardless of the configured scheme.
type Hasher struct {
	scheme     config.HashScheme
	rounds     int
	bcryptCost int
}

// NewHasher creates a hasher from auth config. Zero values fall back to defaults.
func NewHasher(cfg config.Auth) *Hasher {
	h := &Hasher{
		scheme:     cfg.HashScheme,
		rounds:     cfg.PBKDF2Rounds,
		bcryptCost: cfg.BcryptCost,
	}
	if h.scheme == "" {
		h.scheme = config.HashSchemePBKDF2
	}
	if h.rounds <= 0 {
		h.rounds = 29000
	}
	if h.bcryptCost <= 0 {
		h.bcryptCost = bcrypt.DefaultCost
	}
	return h
}

// Hash returns a salted digest of password.
func (h *Hasher) Hash(password string) (string, error) {
	switch h.scheme {
	case config.HashSchemePBKDF2:
		return h.hashPBKDF2(password)
	case config.HashSchemeBcrypt:
		if len(password) > bcryptMaxPasswordBytes {
			return "", ErrPasswordTooLong
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), h.bcryptCost)
		if err != nil {
			return "", err
		}
		return string(hash), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownScheme, h.scheme)
	}
}

// Verify reports whether password matches digest. Malformed digests never match.
func (h *Hasher) Verify(password, digest string) bool {
	switch {
	case strings.HasPrefix(digest, pbkdf2Prefix):
		return verifyPBKDF2(password, digest)
	case strings.HasPrefix(digest, "$2a$"), strings.HasPrefix(digest, "$2b$"), strings.HasPrefix(digest, "$2y$"):
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
	default:
		return false
	}
}

func (h *Hasher) hashPBKDF2(password string) (string, error) {
	salt := make([]byte, pbkdf2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := pbkdf2.Key([]byte(password), salt, h.rounds, pbkdf2KeyLen, sha256.New)
	return fmt.Sprintf("%s%d$%s$%s", pbkdf2Prefix, h.rounds, ab64.EncodeToString(salt), ab64.EncodeToString(key)), nil
}

func verifyPBKDF2(password, digest string) bool {
	parts := strings.Split(strings.TrimPrefix(digest, pbkdf2Prefix), "$")
	if len(parts) != 3 {
		return false
	}
	rounds, err := strconv.Atoi(parts[0])
	if err != nil || rounds <= 0 {
		return false
	}
	salt, err := ab64.DecodeString(parts[1])
	if err != nil {
		return false
	}
	want, err := ab64.DecodeString(parts[2])
	if err != nil || len(want) == 0 {
		return false
	}
	got := pbkdf2.Key([]byte(password), salt, rounds, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}
