package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/libreria/internal/validation"
)

// Error kinds. Handlers map them to HTTP statuses with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)

// Error carries a kind and the message shown to API clients.
type Error struct {
	Kind   error
	Detail string
}

func (e *Error) Error() string {
	return e.Detail
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func notFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Detail: fmt.Sprintf(format, args...)}
}

func invalid(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Detail: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Detail: fmt.Sprintf(format, args...)}
}

// checkEntity runs struct-tag validation and converts failures to ErrValidation.
func checkEntity(v any) error {
	err := validation.Struct(v)
	if err == nil {
		return nil
	}
	if errors.Is(err, validation.ErrInvalid) {
		return &Error{Kind: ErrValidation, Detail: err.Error()}
	}
	return err
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// dedupe drops repeated ids, keeping first-seen order.
func dedupe(ids []uint) []uint {
	if ids == nil {
		return nil
	}
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// missing returns the ids in want that are absent from found.
func missing(want, found []uint) []uint {
	have := make(map[uint]struct{}, len(found))
	for _, id := range found {
		have[id] = struct{}{}
	}
	var out []uint
	for _, id := range want {
		if _, ok := have[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
