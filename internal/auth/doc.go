// Package auth handles user registration and credential checks.
//
// There are no sessions or tokens: a successful login only reports the
// user id and admin flag. Passwords are stored as salted digests produced by
// Hasher (PBKDF2-SHA256 by default, bcrypt optionally).
//
// # Configuration
//
//	AUTH_HASH_SCHEME=pbkdf2_sha256   # or bcrypt
//	AUTH_PBKDF2_ROUNDS=29000
//	AUTH_BCRYPT_COST=12
//	AUTH_MIN_PASSWORD_LENGTH=6
//	AUTH_MAX_LOGIN_ATTEMPTS=5        # 0 disables login throttling
//	AUTH_RATE_LIMIT_WINDOW=15m
//	AUTH_LOCKOUT_DURATION=15m
//	ADMIN_EMAIL / ADMIN_PASSWORD     # optional administrator created at startup
//
// # Usage
//
//	authService := auth.NewService(db, cfg.Auth)
//	user, err := authService.Authenticate(ctx, auth.LoginInput{Email: e, Password: p})
//	if errors.Is(err, auth.ErrInvalidCredentials) { ... }
package auth
