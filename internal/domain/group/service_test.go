package group

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeGroupRepo struct {
	groups       map[string]*Group
	codes        map[string]string
	allCodeTaken bool
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{
		groups: make(map[string]*Group),
		codes:  make(map[string]string),
	}
}

func (r *fakeGroupRepo) Create(ctx context.Context, group *Group) error {
	if _, ok := r.groups[group.ID]; ok {
		return errors.New("duplicate key")
	}
	copied := *group
	r.groups[group.ID] = &copied
	if group.ShareCode != nil {
		r.codes[*group.ShareCode] = group.ID
	}
	return nil
}

func (r *fakeGroupRepo) GetByID(ctx context.Context, id string) (*Group, error) {
	group, ok := r.groups[id]
	if !ok {
		return nil, ErrGroupNotFound
	}
	copied := *group
	return &copied, nil
}

func (r *fakeGroupRepo) GetByShareCode(ctx context.Context, code string) (*Group, error) {
	id, ok := r.codes[code]
	if !ok {
		return nil, ErrGroupNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *fakeGroupRepo) FindDefault(ctx context.Context) (*Group, error) {
	for _, group := range r.groups {
		if group.IsDefault {
			copied := *group
			return &copied, nil
		}
	}
	return nil, ErrGroupNotFound
}

func (r *fakeGroupRepo) List(ctx context.Context) ([]Summary, error) {
	result := make([]Summary, 0, len(r.groups))
	for _, group := range r.groups {
		result = append(result, Summary{Group: *group})
	}
	return result, nil
}

func (r *fakeGroupRepo) SetRotationDrawn(ctx context.Context, id string, drawn bool) error {
	group, ok := r.groups[id]
	if !ok {
		return ErrGroupNotFound
	}
	group.RotationDrawn = drawn
	return nil
}

func (r *fakeGroupRepo) IsShareCodeTaken(ctx context.Context, code string) (bool, error) {
	if r.allCodeTaken {
		return true, nil
	}
	_, ok := r.codes[code]
	return ok, nil
}

func TestCreateGroupSuccess(t *testing.T) {
	repo := newFakeGroupRepo()
	svc := NewService(repo)

	result, err := svc.Create(context.Background(), "  Mahalle Grubu  ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Name != "Mahalle Grubu" {
		t.Fatalf("expected trimmed name, got %q", result.Name)
	}
	if result.ShareCode == nil || len(*result.ShareCode) != 6 {
		t.Fatalf("expected 6-char share code, got %v", result.ShareCode)
	}
	for _, ch := range *result.ShareCode {
		if strings.ContainsRune("IO01", ch) {
			t.Fatalf("expected no ambiguous characters, got %q", *result.ShareCode)
		}
	}
}

func TestCreateGroupInvalidName(t *testing.T) {
	repo := newFakeGroupRepo()
	svc := NewService(repo)

	for _, name := range []string{"", "   ", strings.Repeat("x", 101)} {
		if _, err := svc.Create(context.Background(), name); !errors.Is(err, ErrInvalidName) {
			t.Fatalf("expected ErrInvalidName for %q, got %v", name, err)
		}
	}
}

func TestCreateGroupCodeExhaustion(t *testing.T) {
	repo := newFakeGroupRepo()
	repo.allCodeTaken = true
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), "Grup")
	if !errors.Is(err, ErrCodeGeneration) {
		t.Fatalf("expected ErrCodeGeneration, got %v", err)
	}
}

func TestGetByShareCodeNormalizes(t *testing.T) {
	repo := newFakeGroupRepo()
	code := "ABC234"
	repo.groups["g1"] = &Group{ID: "g1", Name: "Grup", ShareCode: &code}
	repo.codes[code] = "g1"

	svc := NewService(repo)
	result, err := svc.GetByShareCode(context.Background(), "  abc234 ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.ID != "g1" {
		t.Fatalf("expected g1, got %s", result.ID)
	}

	if _, err := svc.GetByShareCode(context.Background(), "   "); !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound for blank code, got %v", err)
	}
}

func TestEnsureDefaultCreatesOnce(t *testing.T) {
	repo := newFakeGroupRepo()
	svc := NewService(repo)

	first, err := svc.EnsureDefault(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if first.ID != DefaultGroupID || first.Name != DefaultGroupName || !first.IsDefault {
		t.Fatalf("unexpected default group %+v", first)
	}

	second, err := svc.EnsureDefault(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same group, got %s and %s", first.ID, second.ID)
	}
	if len(repo.groups) != 1 {
		t.Fatalf("expected exactly one group, got %d", len(repo.groups))
	}
}

func TestEnsureDefaultFindsLegacyRow(t *testing.T) {
	repo := newFakeGroupRepo()
	repo.groups["legacy"] = &Group{ID: "legacy", Name: "Eski Grup", IsDefault: true}

	svc := NewService(repo)
	result, err := svc.EnsureDefault(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.ID != "legacy" {
		t.Fatalf("expected legacy default reused, got %s", result.ID)
	}
	if len(repo.groups) != 1 {
		t.Fatalf("expected no new group created, got %d", len(repo.groups))
	}
}

func TestSetRotationDrawn(t *testing.T) {
	repo := newFakeGroupRepo()
	repo.groups["g1"] = &Group{ID: "g1", Name: "Grup"}

	svc := NewService(repo)
	if err := svc.SetRotationDrawn(context.Background(), "g1", true); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !repo.groups["g1"].RotationDrawn {
		t.Fatalf("expected rotation drawn set")
	}

	err := svc.SetRotationDrawn(context.Background(), "missing", true)
	if !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}
