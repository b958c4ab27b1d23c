package member

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"gold-day-go/internal/grouplock"
)

type Service struct {
	repo     Repository
	validate *validator.Validate
	locks    *grouplock.Keyed
}

// NewService builds the membership service. locks is shared with the
// assignment service so an Add or Remove never interleaves with a draw for
// the same group; nil gets a private instance.
func NewService(repo Repository, locks *grouplock.Keyed) *Service {
	if locks == nil {
		locks = grouplock.New()
	}
	return &Service{
		repo:     repo,
		validate: validator.New(),
		locks:    locks,
	}
}

type nameInput struct {
	Name string `validate:"required,max=50"`
}

// Add creates a member and backfills one unpaid payment per existing
// assignment. New members never become hosts retroactively; the next redraw
// folds them into the rotation.
func (s *Service) Add(ctx context.Context, groupID, name string) (*Member, error) {
	name, err := s.validateName(name)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.GroupExists(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrGroupNotFound
	}

	unlock := s.locks.Lock(groupID)
	defer unlock()

	var created Member
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		taken, err := tx.IsNameTaken(ctx, groupID, name)
		if err != nil {
			return err
		}
		if taken {
			return ErrNameTaken
		}

		member := Member{
			ID:      uuid.NewString(),
			GroupID: groupID,
			Name:    name,
		}
		if err := tx.Create(ctx, &member); err != nil {
			return err
		}

		assignmentIDs, err := tx.ListAssignmentIDs(ctx, groupID)
		if err != nil {
			return err
		}
		for _, assignmentID := range assignmentIDs {
			if err := tx.CreateUnpaidPayment(ctx, member.ID, assignmentID); err != nil {
				return err
			}
		}

		created = member
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// Remove deletes a member together with that member's payments. Assignments
// the member hosted are kept with a cleared host until the next redraw.
func (s *Service) Remove(ctx context.Context, memberID string) error {
	existing, err := s.repo.GetByID(ctx, memberID)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(existing.GroupID)
	defer unlock()

	return s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.ClearHostReferences(ctx, memberID); err != nil {
			return err
		}
		if err := tx.DeletePaymentsByMember(ctx, memberID); err != nil {
			return err
		}
		return tx.Delete(ctx, memberID)
	})
}

// Rename changes the member's name only; views resolve names at read time so
// nothing else needs touching.
func (s *Service) Rename(ctx context.Context, memberID, newName string) (*Member, error) {
	newName, err := s.validateName(newName)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if existing.Name != newName {
		taken, err := s.repo.IsNameTaken(ctx, existing.GroupID, newName)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrNameTaken
		}
	}

	if err := s.repo.UpdateName(ctx, memberID, newName); err != nil {
		return nil, err
	}

	existing.Name = newName
	return existing, nil
}

func (s *Service) List(ctx context.Context, groupID string) ([]Member, error) {
	exists, err := s.repo.GroupExists(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrGroupNotFound
	}
	return s.repo.List(ctx, groupID)
}

func (s *Service) validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if err := s.validate.Struct(nameInput{Name: name}); err != nil {
		return "", ErrInvalidName
	}
	return name, nil
}
