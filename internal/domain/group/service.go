package group

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	shareCodeLength   = 6
	shareCodeAttempts = 10
	maxNameLength     = 100
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, name string) (*Group, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > maxNameLength {
		return nil, ErrInvalidName
	}

	code, err := s.generateUniqueShareCode(ctx)
	if err != nil {
		return nil, err
	}

	group := Group{
		ID:        uuid.NewString(),
		Name:      name,
		ShareCode: &code,
	}
	if err := s.repo.Create(ctx, &group); err != nil {
		return nil, err
	}

	return &group, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Group, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByShareCode(ctx context.Context, code string) (*Group, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrGroupNotFound
	}
	return s.repo.GetByShareCode(ctx, code)
}

func (s *Service) List(ctx context.Context) ([]Summary, error) {
	return s.repo.List(ctx)
}

// EnsureDefault returns the default group, creating it on first access.
// Idempotent: a concurrent create losing the uniqueness race falls back to
// reading the winner's row.
func (s *Service) EnsureDefault(ctx context.Context) (*Group, error) {
	existing, err := s.repo.GetByID(ctx, DefaultGroupID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrGroupNotFound) {
		return nil, err
	}

	existing, err = s.repo.FindDefault(ctx)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrGroupNotFound) {
		return nil, err
	}

	created := Group{
		ID:        DefaultGroupID,
		Name:      DefaultGroupName,
		IsDefault: true,
	}
	if err := s.repo.Create(ctx, &created); err != nil {
		if fallback, getErr := s.repo.GetByID(ctx, DefaultGroupID); getErr == nil {
			return fallback, nil
		}
		return nil, err
	}

	return &created, nil
}

func (s *Service) SetRotationDrawn(ctx context.Context, groupID string, drawn bool) error {
	if _, err := s.repo.GetByID(ctx, groupID); err != nil {
		return err
	}
	return s.repo.SetRotationDrawn(ctx, groupID, drawn)
}

func (s *Service) generateUniqueShareCode(ctx context.Context) (string, error) {
	for i := 0; i < shareCodeAttempts; i++ {
		code, err := generateShareCode(shareCodeLength)
		if err != nil {
			return "", err
		}
		taken, err := s.repo.IsShareCodeTaken(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeGeneration
}

func generateShareCode(length int) (string, error) {
	// No I, O, 0 or 1: the code is read aloud and typed by hand.
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	max := big.NewInt(int64(len(alphabet)))

	var builder strings.Builder
	builder.Grow(length)

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		builder.WriteByte(alphabet[n.Int64()])
	}

	return builder.String(), nil
}
