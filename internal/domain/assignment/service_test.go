package assignment

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

type fakeAssignmentRepo struct {
	groups        map[string]struct{}
	roster        map[string][]RosterMember
	memberGroups  map[string]string
	assignments   map[string]*MonthAssignment
	rotationDrawn map[string]bool
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{
		groups:        make(map[string]struct{}),
		roster:        make(map[string][]RosterMember),
		memberGroups:  make(map[string]string),
		assignments:   make(map[string]*MonthAssignment),
		rotationDrawn: make(map[string]bool),
	}
}

func (r *fakeAssignmentRepo) addGroup(id string) {
	r.groups[id] = struct{}{}
}

func (r *fakeAssignmentRepo) addMember(groupID, id, name string) {
	r.roster[groupID] = append(r.roster[groupID], RosterMember{ID: id, Name: name})
	r.memberGroups[id] = groupID
}

func (r *fakeAssignmentRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeAssignmentRepo) GroupExists(ctx context.Context, groupID string) (bool, error) {
	_, ok := r.groups[groupID]
	return ok, nil
}

func (r *fakeAssignmentRepo) ListRoster(ctx context.Context, groupID string) ([]RosterMember, error) {
	return r.roster[groupID], nil
}

func (r *fakeAssignmentRepo) GetMemberGroup(ctx context.Context, memberID string) (string, error) {
	groupID, ok := r.memberGroups[memberID]
	if !ok {
		return "", ErrMemberNotFound
	}
	return groupID, nil
}

func (r *fakeAssignmentRepo) ListAssignments(ctx context.Context, groupID string) ([]MonthAssignment, error) {
	result := make([]MonthAssignment, 0)
	for _, a := range r.assignments {
		if a.GroupID == groupID {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			return result[i].Year < result[j].Year
		}
		return result[i].Month < result[j].Month
	})
	return result, nil
}

func (r *fakeAssignmentRepo) GetAssignment(ctx context.Context, id string) (*MonthAssignment, error) {
	a, ok := r.assignments[id]
	if !ok {
		return nil, ErrAssignmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *fakeAssignmentRepo) CreateAssignment(ctx context.Context, a *MonthAssignment) error {
	copied := *a
	r.assignments[a.ID] = &copied
	return nil
}

func (r *fakeAssignmentRepo) UpdateHost(ctx context.Context, id string, hostMemberID *string) error {
	a, ok := r.assignments[id]
	if !ok {
		return ErrAssignmentNotFound
	}
	a.HostMemberID = hostMemberID
	return nil
}

func (r *fakeAssignmentRepo) UpdateDeliveryDate(ctx context.Context, id string, date *time.Time) error {
	a, ok := r.assignments[id]
	if !ok {
		return ErrAssignmentNotFound
	}
	a.PreferredDeliveryDate = date
	return nil
}

func (r *fakeAssignmentRepo) DeleteAssignment(ctx context.Context, id string) error {
	delete(r.assignments, id)
	return nil
}

func (r *fakeAssignmentRepo) DeleteAssignmentsBefore(ctx context.Context, groupID string, year int) (int64, error) {
	var count int64
	for id, a := range r.assignments {
		if a.GroupID == groupID && a.Year < year {
			delete(r.assignments, id)
			count++
		}
	}
	return count, nil
}

func (r *fakeAssignmentRepo) CreatePayment(ctx context.Context, p *Payment) error {
	a, ok := r.assignments[p.MonthAssignmentID]
	if !ok {
		return ErrAssignmentNotFound
	}
	a.Payments = append(a.Payments, *p)
	return nil
}

func (r *fakeAssignmentRepo) UpsertPayment(ctx context.Context, memberID, assignmentID string, paid bool, paidAt *time.Time) error {
	a, ok := r.assignments[assignmentID]
	if !ok {
		return ErrAssignmentNotFound
	}
	for i := range a.Payments {
		if a.Payments[i].MemberID == memberID {
			a.Payments[i].Paid = paid
			a.Payments[i].PaidAt = paidAt
			return nil
		}
	}
	a.Payments = append(a.Payments, Payment{
		ID:                "pay-" + memberID + "-" + assignmentID,
		MemberID:          memberID,
		MonthAssignmentID: assignmentID,
		Paid:              paid,
		PaidAt:            paidAt,
	})
	return nil
}

func (r *fakeAssignmentRepo) ResetPayments(ctx context.Context, groupID string) error {
	for _, a := range r.assignments {
		if a.GroupID != groupID {
			continue
		}
		for i := range a.Payments {
			a.Payments[i].Paid = false
			a.Payments[i].PaidAt = nil
		}
	}
	return nil
}

func (r *fakeAssignmentRepo) SetRotationDrawn(ctx context.Context, groupID string) error {
	r.rotationDrawn[groupID] = true
	return nil
}

func newTestService(repo Repository, manualDrawYear int, now time.Time) *Service {
	svc := NewService(repo, nil, manualDrawYear, nil)
	svc.now = func() time.Time { return now }
	return svc
}

func TestRedrawCreatesFullLedger(t *testing.T) {
	repo := newFakeAssignmentRepo()
	repo.addGroup("g1")
	repo.addMember("g1", "m1", "Ayşe")
	repo.addMember("g1", "m2", "Fatma")
	repo.addMember("g1", "m3", "Zeynep")

	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, 0, now)

	seed := int64(42)
	views, err := svc.Redraw(context.Background(), "g1", &seed)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(views))
	}

	hosts := make(map[string]int)
	for i, view := range views {
		if view.Month != 3+i || view.Year != 2025 {
			t.Fatalf("expected month %d/2025, got %d/%d", 3+i, view.Month, view.Year)
		}
		if len(view.Payments) != 3 {
			t.Fatalf("expected 3 payments, got %d", len(view.Payments))
		}
		for _, payment := range view.Payments {
			if payment.Paid {
				t.Fatalf("expected new payments unpaid")
			}
		}
		hosts[view.HostMemberID]++
	}
	for _, id := range []string{"m1", "m2", "m3"} {
		if hosts[id] != 1 {
			t.Fatalf("expected %s to host exactly once, got %d", id, hosts[id])
		}
	}
	if !repo.rotationDrawn["g1"] {
		t.Fatalf("expected rotation marked drawn")
	}
}

func TestRedrawPreservesExistingPayments(t *testing.T) {
	repo := newFakeAssignmentRepo()
	repo.addGroup("g1")
	repo.addMember("g1", "m1", "Ayşe")
	repo.addMember("g1", "m2", "Fatma")

	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	paidAt := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
	host := "m1"
	repo.assignments["a1"] = &MonthAssignment{
		ID:           "a1",
		GroupID:      "g1",
		Month:        3,
		Year:         2025,
		HostMemberID: &host,
		Payments: []Payment{
			{ID: "p1", MemberID: "m1", MonthAssignmentID: "a1", Paid: true, PaidAt: &paidAt},
			{ID: "p2", MemberID: "m2", MonthAssignmentID: "a1"},
		},
	}

	svc := newTestService(repo, 0, now)
	seed := int64(7)
	views, err := svc.Redraw(context.Background(), "g1", &seed)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	kept, ok := repo.assignments["a1"]
	if !ok {
		t.Fatalf("expected existing assignment kept")
	}
	if len(kept.Payments) != 2 {
		t.Fatalf("expected payments preserved, got %d", len(kept.Payments))
	}
	if !kept.Payments[0].Paid || kept.Payments[0].PaidAt == nil {
		t.Fatalf("expected paid payment preserved")
	}

	for _, view := range views {
		if view.Month == 3 && view.ID != "a1" {
			t.Fatalf("expected march assignment reused, got %s", view.ID)
		}
	}
}

func TestRedrawRetiresStaleAssignments(t *testing.T) {
	repo := newFakeAssignmentRepo()
	repo.addGroup("g1")
	repo.addMember("g1", "m1", "Ayşe")
	repo.addMember("g1", "m2", "Fatma")

	repo.assignments["old"] = &MonthAssignment{ID: "old", GroupID: "g1", Month: 1, Year: 2024}

	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, 0, now)

	seed := int64(1)
	if _, err := svc.Redraw(context.Background(), "g1", &seed); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := repo.assignments["old"]; ok {
		t.Fatalf("expected stale assignment deleted")
	}
}

func TestRedrawSeededIsIdempotent(t *testing.T) {
	repo := newFakeAssignmentRepo()
	repo.addGroup("g1")
	repo.addMember("g1", "m1", "Ayşe")
	repo.addMember("g1", "m2", "Fatma")
	repo.addMember("g1", "m3", "Zeynep")

	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, 0, now)

	seed := int64(42)
	first, err := svc.Redraw(context.Background(), "g1", &seed)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := svc.Redraw(context.Background(), "g1", &seed)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("expected same assignment count, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("expected assignment %d reused, got %s and %s", i, first[i].ID, second[i].ID)
		}
		if first[i].HostMemberID != second[i].HostMemberID {
			t.Fatalf("expected same host for slot %d", i)
		}
	}
}

func TestRedrawEmptyRoster(t *testing.T) {
	repo := newFakeAssignmentRepo()
	repo.addGroup("g1")

	svc := newTestService(repo, 0, time.Now())
	_, err := svc.Redraw(context.Background(), "g1", nil)
	if !errors.Is(err, ErrNoMembers) {
		t.Fatalf("expected ErrNoMembers, got %v", err)
	}
}

func TestRedrawGroupNotFound(t *testing.T) {
	repo := newFakeAssignmentRepo()
	svc := newTestService(repo, 0, time.Now())

	_, err := svc.Redraw(context.Background(), "missing", nil)
	if !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestSetPaymentStampsPaidAt(t *testing.T) {
	repo := newFakeAssignmentRepo()
	repo.addGroup("g1")
	repo.addMember("g1", "m1", "Ayşe")
	repo.assignments["a1"] = &MonthAssignment{ID: "a1", GroupID: "g1", Month: 3, Year: 2025}

	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, 0, now)

	if err := svc.SetPayment(context.Background(), "a1", "m1", true); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	payment := repo.assignments["a1"].Payments[0]
	if !payment.Paid {
		t.Fatalf("expected payment paid")
	}
	if payment.PaidAt == nil || !payment.PaidAt.Equal(now.UTC()) {
		t.Fatalf("expected paid_at stamped with now, got %v", payment.PaidAt)
	}

	if err := svc.SetPayment(context.Background(), "a1", "m1", false); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	payment = repo.assignments["a1"].Payments[0]
	if payment.Paid || payment.PaidAt != nil {
		t.Fatalf("expected payment reverted to unpaid, got %+v", payment)
	}
}

func TestSetPaymentCrossGroup(t *testing.T) {
	repo := newFakeAssignmentRepo()
	repo.addGroup("g1")
	repo.addGroup("g2")
	repo.addMember("g2", "m1", "Ayşe")
	repo.assignments["a1"] = &MonthAssignment{ID: "a1", GroupID: "g1", Month: 3, Year: 2025}

	svc := newTestService(repo, 0, time.Now())
	err := svc.SetPayment(context.Background(), "a1", "m1", true)
	if !errors.Is(err, ErrCrossGroupReference) {
		t.Fatalf("expected ErrCrossGroupReference, got %v", err)
	}
}

func TestSetPaymentAssignmentNotFound(t *testing.T) {
	repo := newFakeAssignmentRepo()
	svc := newTestService(repo, 0, time.Now())

	err := svc.SetPayment(context.Background(), "missing", "m1", true)
	if !errors.Is(err, ErrAssignmentNotFound) {
		t.Fatalf("expected ErrAssignmentNotFound, got %v", err)
	}
}

func TestResetPayments(t *testing.T) {
	repo := newFakeAssignmentRepo()
	repo.addGroup("g1")
	paidAt := time.Now()
	repo.assignments["a1"] = &MonthAssignment{
		ID: "a1", GroupID: "g1", Month: 3, Year: 2025,
		Payments: []Payment{
			{ID: "p1", MemberID: "m1", MonthAssignmentID: "a1", Paid: true, PaidAt: &paidAt},
			{ID: "p2", MemberID: "m2", MonthAssignmentID: "a1", Paid: true, PaidAt: &paidAt},
		},
	}

	svc := newTestService(repo, 0, time.Now())
	if err := svc.ResetPayments(context.Background(), "g1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, payment := range repo.assignments["a1"].Payments {
		if payment.Paid || payment.PaidAt != nil {
			t.Fatalf("expected payment reset, got %+v", payment)
		}
	}
}

func TestSetPreferredDeliveryDate(t *testing.T) {
	repo := newFakeAssignmentRepo()
	repo.addGroup("g1")
	repo.assignments["a1"] = &MonthAssignment{ID: "a1", GroupID: "g1", Month: 3, Year: 2025}

	svc := newTestService(repo, 0, time.Now())
	date := time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)
	if err := svc.SetPreferredDeliveryDate(context.Background(), "a1", &date); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.assignments["a1"].PreferredDeliveryDate == nil {
		t.Fatalf("expected delivery date set")
	}

	if err := svc.SetPreferredDeliveryDate(context.Background(), "a1", nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.assignments["a1"].PreferredDeliveryDate != nil {
		t.Fatalf("expected delivery date cleared")
	}

	err := svc.SetPreferredDeliveryDate(context.Background(), "missing", &date)
	if !errors.Is(err, ErrAssignmentNotFound) {
		t.Fatalf("expected ErrAssignmentNotFound, got %v", err)
	}
}

func TestApplyManualDraw(t *testing.T) {
	repo := newFakeAssignmentRepo()
	repo.addGroup("g1")
	repo.addMember("g1", "m1", "Ayşe")
	repo.addMember("g1", "m2", "Fatma")

	now := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestService(repo, 2025, now)

	views, err := svc.ApplyManualDraw(context.Background(), "g1", []ManualEntry{
		{MemberName: "  ayşe ", Month: 5},
		{MemberName: "Fatma", Month: 6},
		{MemberName: "Nobody", Month: 7},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 assignments, unknown names skipped, got %d", len(views))
	}
	for _, view := range views {
		if view.Year != 2025 {
			t.Fatalf("expected pinned year 2025, got %d", view.Year)
		}
		if len(view.Payments) != 2 {
			t.Fatalf("expected full unpaid ledger, got %d payments", len(view.Payments))
		}
	}
	if views[0].HostMemberName != "Ayşe" || views[1].HostMemberName != "Fatma" {
		t.Fatalf("expected case-insensitive name match, got %q and %q", views[0].HostMemberName, views[1].HostMemberName)
	}
	if !repo.rotationDrawn["g1"] {
		t.Fatalf("expected rotation marked drawn")
	}
}

func TestApplyManualDrawInvalidMonth(t *testing.T) {
	repo := newFakeAssignmentRepo()
	repo.addGroup("g1")

	svc := newTestService(repo, 0, time.Now())
	_, err := svc.ApplyManualDraw(context.Background(), "g1", []ManualEntry{{MemberName: "Ayşe", Month: 13}})
	if !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}

func TestPruneBefore(t *testing.T) {
	repo := newFakeAssignmentRepo()
	repo.addGroup("g1")
	repo.assignments["a1"] = &MonthAssignment{ID: "a1", GroupID: "g1", Month: 1, Year: 2023}
	repo.assignments["a2"] = &MonthAssignment{ID: "a2", GroupID: "g1", Month: 1, Year: 2024}
	repo.assignments["a3"] = &MonthAssignment{ID: "a3", GroupID: "g1", Month: 1, Year: 2025}

	svc := newTestService(repo, 0, time.Now())
	deleted, err := svc.PruneBefore(context.Background(), "g1", 2025)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted, got %d", deleted)
	}
	if _, ok := repo.assignments["a3"]; !ok {
		t.Fatalf("expected current year kept")
	}
}

func TestListResolvesNames(t *testing.T) {
	repo := newFakeAssignmentRepo()
	repo.addGroup("g1")
	repo.addMember("g1", "m1", "Ayşe")
	repo.addMember("g1", "m2", "Fatma")

	host := "m2"
	date := time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)
	repo.assignments["a1"] = &MonthAssignment{
		ID: "a1", GroupID: "g1", Month: 3, Year: 2025,
		HostMemberID:          &host,
		PreferredDeliveryDate: &date,
		Payments: []Payment{
			{ID: "p1", MemberID: "m1", MonthAssignmentID: "a1", Paid: true},
		},
	}

	svc := newTestService(repo, 0, time.Now())
	views, err := svc.List(context.Background(), "g1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}

	view := views[0]
	if view.HostMemberName != "Fatma" {
		t.Fatalf("expected host name resolved, got %q", view.HostMemberName)
	}
	if view.PreferredDeliveryDate == nil || *view.PreferredDeliveryDate != "2025-03-20" {
		t.Fatalf("expected formatted delivery date, got %v", view.PreferredDeliveryDate)
	}
	if len(view.Payments) != 2 {
		t.Fatalf("expected one status per roster member, got %d", len(view.Payments))
	}
	if !view.Payments[0].Paid || view.Payments[1].Paid {
		t.Fatalf("expected m1 paid and m2 unpaid, got %+v", view.Payments)
	}
}
