package assignment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"gold-day-go/internal/domain/rotation"
	"gold-day-go/internal/grouplock"
	"gold-day-go/internal/metrics"
)

type Service struct {
	repo           Repository
	metrics        *metrics.Metrics
	manualDrawYear int
	now            func() time.Time
	locks          *grouplock.Keyed
}

// NewService builds the reconciler. manualDrawYear pins the year used when
// recording an externally drawn rotation; zero means the current year. locks
// is shared with the member service so membership changes and draws for one
// group never interleave; nil gets a private instance.
func NewService(repo Repository, m *metrics.Metrics, manualDrawYear int, locks *grouplock.Keyed) *Service {
	if locks == nil {
		locks = grouplock.New()
	}
	return &Service{
		repo:           repo,
		metrics:        m,
		manualDrawYear: manualDrawYear,
		now:            time.Now,
		locks:          locks,
	}
}

// Redraw runs the rotation engine over the current roster and reconciles the
// result against stored assignments: hosts are rewritten in place so payment
// history survives, missing months are created with a full unpaid ledger, and
// assignments outside the new window are retired afterwards. The whole
// reconciliation runs under a per-group lock and a single transaction so
// concurrent redraws serialize instead of racing the uniqueness constraint.
func (s *Service) Redraw(ctx context.Context, groupID string, seed *int64) ([]View, error) {
	unlock := s.locks.Lock(groupID)
	defer unlock()

	exists, err := s.repo.GroupExists(ctx, groupID)
	if err != nil {
		return nil, errors.Join(ErrRedrawFailed, err)
	}
	if !exists {
		return nil, ErrGroupNotFound
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		roster, err := tx.ListRoster(ctx, groupID)
		if err != nil {
			return err
		}
		if len(roster) == 0 {
			return ErrNoMembers
		}

		existing, err := tx.ListAssignments(ctx, groupID)
		if err != nil {
			return err
		}

		memberIDs := make([]string, 0, len(roster))
		for _, m := range roster {
			memberIDs = append(memberIDs, m.ID)
		}

		slots, err := rotation.Assign(memberIDs, s.now(), seed)
		if err != nil {
			return err
		}

		written := make(map[string]struct{}, len(slots))
		for _, slot := range slots {
			host := slot.HostMemberID
			found := findByMonth(existing, slot.Month, slot.Year)
			if found != nil {
				if err := tx.UpdateHost(ctx, found.ID, &host); err != nil {
					return err
				}
				written[found.ID] = struct{}{}
				continue
			}

			created := MonthAssignment{
				ID:           uuid.NewString(),
				GroupID:      groupID,
				Month:        slot.Month,
				Year:         slot.Year,
				HostMemberID: &host,
			}
			if err := tx.CreateAssignment(ctx, &created); err != nil {
				return err
			}
			for _, m := range roster {
				payment := Payment{
					ID:                uuid.NewString(),
					MemberID:          m.ID,
					MonthAssignmentID: created.ID,
				}
				if err := tx.CreatePayment(ctx, &payment); err != nil {
					return err
				}
			}
			written[created.ID] = struct{}{}
		}

		// Retire assignments outside the new window. Runs strictly after the
		// upserts above; the written set guards everything this redraw touched.
		for _, a := range existing {
			if _, ok := written[a.ID]; ok {
				continue
			}
			if err := tx.DeleteAssignment(ctx, a.ID); err != nil {
				return err
			}
		}

		return tx.SetRotationDrawn(ctx, groupID)
	})
	if err != nil {
		if errors.Is(err, ErrNoMembers) || errors.Is(err, rotation.ErrEmptyRoster) {
			return nil, ErrNoMembers
		}
		return nil, errors.Join(ErrRedrawFailed, err)
	}

	s.metrics.ObserveRedraw()
	return s.List(ctx, groupID)
}

// SetPayment upserts the (member, assignment) ledger row. paid_at is stamped
// on the transition to paid and cleared on the transition back.
func (s *Service) SetPayment(ctx context.Context, assignmentID, memberID string, paid bool) error {
	a, err := s.repo.GetAssignment(ctx, assignmentID)
	if err != nil {
		return err
	}

	memberGroup, err := s.repo.GetMemberGroup(ctx, memberID)
	if err != nil {
		return err
	}
	if memberGroup != a.GroupID {
		return ErrCrossGroupReference
	}

	var paidAt *time.Time
	if paid {
		now := s.now().UTC()
		paidAt = &now
	}

	if err := s.repo.UpsertPayment(ctx, memberID, assignmentID, paid, paidAt); err != nil {
		return err
	}

	s.metrics.ObservePaymentUpdate()
	return nil
}

// ResetPayments flips every payment in the group back to unpaid.
func (s *Service) ResetPayments(ctx context.Context, groupID string) error {
	exists, err := s.repo.GroupExists(ctx, groupID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrGroupNotFound
	}
	return s.repo.ResetPayments(ctx, groupID)
}

func (s *Service) SetPreferredDeliveryDate(ctx context.Context, assignmentID string, date *time.Time) error {
	if _, err := s.repo.GetAssignment(ctx, assignmentID); err != nil {
		return err
	}
	return s.repo.UpdateDeliveryDate(ctx, assignmentID, date)
}

// List returns the group's assignments ordered by year then month, with
// member and host names joined in at read time.
func (s *Service) List(ctx context.Context, groupID string) ([]View, error) {
	exists, err := s.repo.GroupExists(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrGroupNotFound
	}

	roster, err := s.repo.ListRoster(ctx, groupID)
	if err != nil {
		return nil, err
	}

	assignments, err := s.repo.ListAssignments(ctx, groupID)
	if err != nil {
		return nil, err
	}

	return buildViews(assignments, roster), nil
}

// ApplyManualDraw records a rotation drawn outside the system, e.g. on paper.
// Entries name members by their display name; unknown names are skipped the
// way the draw sheet would simply not match anyone.
func (s *Service) ApplyManualDraw(ctx context.Context, groupID string, entries []ManualEntry) ([]View, error) {
	for _, entry := range entries {
		if entry.Month < 1 || entry.Month > 12 {
			return nil, ErrInvalidMonth
		}
	}

	unlock := s.locks.Lock(groupID)
	defer unlock()

	exists, err := s.repo.GroupExists(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrGroupNotFound
	}

	year := s.manualDrawYear
	if year == 0 {
		year = s.now().Year()
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		roster, err := tx.ListRoster(ctx, groupID)
		if err != nil {
			return err
		}
		if len(roster) == 0 {
			return ErrNoMembers
		}

		existing, err := tx.ListAssignments(ctx, groupID)
		if err != nil {
			return err
		}

		written := make(map[string]struct{}, len(entries))
		for _, entry := range entries {
			host := findByName(roster, entry.MemberName)
			if host == nil {
				continue
			}

			found := findByMonth(existing, entry.Month, year)
			if found != nil {
				if err := tx.UpdateHost(ctx, found.ID, &host.ID); err != nil {
					return err
				}
				written[found.ID] = struct{}{}
				continue
			}

			created := MonthAssignment{
				ID:           uuid.NewString(),
				GroupID:      groupID,
				Month:        entry.Month,
				Year:         year,
				HostMemberID: &host.ID,
			}
			if err := tx.CreateAssignment(ctx, &created); err != nil {
				return err
			}
			for _, m := range roster {
				payment := Payment{
					ID:                uuid.NewString(),
					MemberID:          m.ID,
					MonthAssignmentID: created.ID,
				}
				if err := tx.CreatePayment(ctx, &payment); err != nil {
					return err
				}
			}
			written[created.ID] = struct{}{}
		}

		for _, a := range existing {
			if _, ok := written[a.ID]; ok {
				continue
			}
			if err := tx.DeleteAssignment(ctx, a.ID); err != nil {
				return err
			}
		}

		return tx.SetRotationDrawn(ctx, groupID)
	})
	if err != nil {
		if errors.Is(err, ErrNoMembers) {
			return nil, ErrNoMembers
		}
		return nil, errors.Join(ErrRedrawFailed, err)
	}

	s.metrics.ObserveRedraw()
	return s.List(ctx, groupID)
}

// PruneBefore deletes every assignment of the group older than the given
// year, payments included.
func (s *Service) PruneBefore(ctx context.Context, groupID string, year int) (int64, error) {
	exists, err := s.repo.GroupExists(ctx, groupID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrGroupNotFound
	}
	return s.repo.DeleteAssignmentsBefore(ctx, groupID, year)
}

func findByMonth(assignments []MonthAssignment, month, year int) *MonthAssignment {
	for i := range assignments {
		if assignments[i].Month == month && assignments[i].Year == year {
			return &assignments[i]
		}
	}
	return nil
}

func findByName(roster []RosterMember, name string) *RosterMember {
	needle := strings.ToLower(strings.TrimSpace(name))
	for i := range roster {
		if strings.ToLower(strings.TrimSpace(roster[i].Name)) == needle {
			return &roster[i]
		}
	}
	return nil
}

func buildViews(assignments []MonthAssignment, roster []RosterMember) []View {
	names := make(map[string]string, len(roster))
	for _, m := range roster {
		names[m.ID] = m.Name
	}

	views := make([]View, 0, len(assignments))
	for _, a := range assignments {
		view := View{
			ID:       a.ID,
			Month:    a.Month,
			Year:     a.Year,
			Payments: make([]PaymentStatus, 0, len(roster)),
		}
		if a.HostMemberID != nil {
			view.HostMemberID = *a.HostMemberID
			view.HostMemberName = names[*a.HostMemberID]
		}
		if a.PreferredDeliveryDate != nil {
			formatted := a.PreferredDeliveryDate.Format("2006-01-02")
			view.PreferredDeliveryDate = &formatted
		}

		paid := make(map[string]bool, len(a.Payments))
		for _, p := range a.Payments {
			paid[p.MemberID] = p.Paid
		}
		for _, m := range roster {
			view.Payments = append(view.Payments, PaymentStatus{
				MemberID:   m.ID,
				MemberName: m.Name,
				Paid:       paid[m.ID],
			})
		}

		views = append(views, view)
	}

	return views
}
