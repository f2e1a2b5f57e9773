package booking

import (
	"context"

	"github.com/barberflowapp/barberflow-api/internal/audit"
	domain "github.com/barberflowapp/barberflow-api/internal/domain/booking"
	"github.com/barberflowapp/barberflow-api/internal/httperr"
	"github.com/barberflowapp/barberflow-api/internal/models"
)

// ======================================================
// SET STATUS (confirm / cancel, back-office)
// ======================================================

type SetStatusInput struct {
	BookingID uint
	UserID    uint
	Status    string // aceita "canceled" e "cancelled"
}

type SetStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache VersionBumper
}

func NewSetStatus(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	cache VersionBumper,
) *SetStatus {
	return &SetStatus{repo: repo, audit: auditDispatcher, cache: cache}
}

func (uc *SetStatus) Execute(
	ctx context.Context,
	in SetStatusInput,
) (*models.Booking, error) {

	target, ok := domain.NormalizeStatus(in.Status)
	if !ok {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	b, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	current, _ := domain.NormalizeStatus(b.Status)
	switch target {
	case domain.StatusConfirmed:
		if err := domain.CanConfirm(current); err != nil {
			return nil, err
		}
	case domain.StatusCancelled:
		if err := domain.CanCancel(current); err != nil {
			return nil, err
		}
	}

	b.Status = string(target)
	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Bump(ctx, b.BarberID)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "booking_" + string(target),
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}

// ======================================================
// DELETE (back-office)
// ======================================================

type DeleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache VersionBumper
}

func NewDeleteBooking(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	cache VersionBumper,
) *DeleteBooking {
	return &DeleteBooking{repo: repo, audit: auditDispatcher, cache: cache}
}

func (uc *DeleteBooking) Execute(ctx context.Context, bookingID, userID uint) error {
	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return httperr.ErrBusiness("booking_not_found")
	}

	if err := uc.repo.DeleteBooking(ctx, bookingID); err != nil {
		return err
	}

	if uc.cache != nil {
		uc.cache.Bump(ctx, b.BarberID)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: &bookingID,
	})

	return nil
}
