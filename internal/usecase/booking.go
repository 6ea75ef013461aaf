package usecase

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"roombook/internal/domain/booking"
	"roombook/internal/infra"
	"roombook/internal/pkg/clock"
	"roombook/internal/pkg/errs"

	"github.com/google/uuid"
)

type CreateBookingParams struct {
	RoomID    string
	UserEmail string
	UserID    string
	Date      string
	StartTime string
	EndTime   string
}

type ModifyBookingParams struct {
	Date      *string
	StartTime *string
	EndTime   *string
}

type BookingUseCase interface {
	CreateBooking(ctx context.Context, params CreateBookingParams) (*booking.Booking, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	GetUserBookings(ctx context.Context, email string, includeCancelled bool) ([]*booking.Booking, error)
	GetRoomBookings(ctx context.Context, roomID string, date *booking.Date, includeCancelled bool) ([]*booking.Booking, error)
	ModifyBooking(ctx context.Context, id uuid.UUID, params ModifyBookingParams) (*booking.Booking, error)
	CancelBooking(ctx context.Context, id uuid.UUID) error
	CheckAvailability(ctx context.Context, roomID, date, startTime, endTime string) (bool, string, error)
}

// roomLocks serializes check-then-write sequences per room. Without it
// two concurrent requests can both pass the availability scan and both
// write, double-booking the room.
type roomLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newRoomLocks() *roomLocks {
	return &roomLocks{locks: make(map[string]*sync.Mutex)}
}

func (r *roomLocks) get(roomID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[roomID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[roomID] = l
	}
	return l
}

type bookingUseCaseImpl struct {
	bookings BookingRepository
	rooms    RoomRepository
	checker  *AvailabilityChecker
	notifier BookingNotifier
	clock    clock.Clock
	locks    *roomLocks
}

func NewBookingUseCase(
	bookings BookingRepository,
	rooms RoomRepository,
	checker *AvailabilityChecker,
	notifier BookingNotifier,
	clk clock.Clock,
) BookingUseCase {
	return &bookingUseCaseImpl{
		bookings: bookings,
		rooms:    rooms,
		checker:  checker,
		notifier: notifier,
		clock:    clk,
		locks:    newRoomLocks(),
	}
}

// CreateBooking validates in a fixed order: required fields, timestamp
// parsing, duration bounds, then availability. The first failure wins
// and nothing is written.
func (u *bookingUseCaseImpl) CreateBooking(ctx context.Context, params CreateBookingParams) (*booking.Booking, error) {
	if err := validateRequiredFields(params); err != nil {
		return nil, err
	}

	date, slot, err := parseCandidate(params.Date, params.StartTime, params.EndTime)
	if err != nil {
		return nil, err
	}

	lock := u.locks.get(params.RoomID)
	lock.Lock()
	defer lock.Unlock()

	ok, _, err := u.checker.IsAvailable(ctx, params.RoomID, date, slot)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.ErrBookingConflict
	}

	b := booking.NewBooking(params.RoomID, params.UserEmail, params.UserID, date, slot, u.clock.Now())
	if err := u.bookings.Put(ctx, b); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to persist booking"), errs.ErrStoreOperationFailed)
	}

	u.notifyConfirmation(ctx, b)

	return b, nil
}

func (u *bookingUseCaseImpl) GetBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, err := u.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Mark(errs.Wrap(err, "failed to find booking"), errs.ErrStoreOperationFailed)
	}
	return b, nil
}

func (u *bookingUseCaseImpl) GetUserBookings(ctx context.Context, email string, includeCancelled bool) ([]*booking.Booking, error) {
	bs, err := u.bookings.FindByUser(ctx, email)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to find user bookings"), errs.ErrStoreOperationFailed)
	}
	return filterCancelled(bs, includeCancelled), nil
}

func (u *bookingUseCaseImpl) GetRoomBookings(ctx context.Context, roomID string, date *booking.Date, includeCancelled bool) ([]*booking.Booking, error) {
	bs, err := u.bookings.FindByRoom(ctx, roomID, date)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to find room bookings"), errs.ErrStoreOperationFailed)
	}
	if date != nil {
		exact := bs[:0]
		for _, b := range bs {
			if b.Date().Equal(*date) {
				exact = append(exact, b)
			}
		}
		bs = exact
	}
	return filterCancelled(bs, includeCancelled), nil
}

// ModifyBooking replaces the record wholesale: the old booking is
// cancelled and a new confirmed one is created with a modified_from
// back-reference. The lead-time check always runs against the existing
// booking's original start, and the availability re-check excludes the
// booking being replaced. On any failure the original stays untouched.
func (u *bookingUseCaseImpl) ModifyBooking(ctx context.Context, id uuid.UUID, params ModifyBookingParams) (*booking.Booking, error) {
	existing, err := u.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !existing.IsActive() {
		return nil, errs.ErrBookingNotActive
	}

	if !existing.Slot().MeetsLeadTimeAt(u.clock.Now(), booking.ModificationLeadTime) {
		return nil, errs.ErrTooLateToModify
	}

	date, slot, err := mergeCandidate(existing, params)
	if err != nil {
		return nil, err
	}

	lock := u.locks.get(existing.RoomID())
	lock.Lock()
	defer lock.Unlock()

	ok, _, err := u.checker.IsAvailableExcluding(ctx, existing.RoomID(), date, slot, existing.ID())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.ErrBookingConflict
	}

	replacement := booking.NewModifiedBooking(existing, date, slot, u.clock.Now())
	if err := u.bookings.Put(ctx, replacement); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to persist replacement booking"), errs.ErrStoreOperationFailed)
	}

	if err := u.bookings.SetStatus(ctx, existing.ID(), booking.StatusCancelled); err != nil {
		// Undo the replacement so the room is not left double-booked.
		if undoErr := u.bookings.SetStatus(ctx, replacement.ID(), booking.StatusCancelled); undoErr != nil {
			slog.Error("failed to undo replacement booking", "booking_id", replacement.ID(), "error", undoErr)
		}
		return nil, errs.Mark(errs.Wrap(err, "failed to cancel superseded booking"), errs.ErrStoreOperationFailed)
	}

	u.notifyConfirmation(ctx, replacement)

	return replacement, nil
}

func (u *bookingUseCaseImpl) CancelBooking(ctx context.Context, id uuid.UUID) error {
	existing, err := u.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	if !existing.IsActive() {
		return errs.ErrBookingNotActive
	}

	if !existing.Slot().MeetsLeadTimeAt(u.clock.Now(), booking.ModificationLeadTime) {
		return errs.ErrTooLateToCancel
	}

	if err := u.bookings.SetStatus(ctx, id, booking.StatusCancelled); err != nil {
		return errs.Mark(errs.Wrap(err, "failed to cancel booking"), errs.ErrStoreOperationFailed)
	}

	u.notifyCancellation(ctx, existing)

	return nil
}

func (u *bookingUseCaseImpl) CheckAvailability(ctx context.Context, roomID, dateStr, startStr, endStr string) (bool, string, error) {
	if roomID == "" || dateStr == "" || startStr == "" || endStr == "" {
		return false, "", errs.ErrMissingField
	}

	date, err := booking.NewDate(dateStr)
	if err != nil {
		return false, "", errs.Mark(err, errs.ErrMalformedTimestamp)
	}
	start, err := booking.ParseTimestamp(startStr)
	if err != nil {
		return false, "", errs.Mark(err, errs.ErrMalformedTimestamp)
	}
	end, err := booking.ParseTimestamp(endStr)
	if err != nil {
		return false, "", errs.Mark(err, errs.ErrMalformedTimestamp)
	}
	slot, err := booking.NewTimeSlot(start, end)
	if err != nil {
		return false, "", errs.Mark(err, errs.ErrMalformedTimestamp)
	}

	return u.checker.IsAvailable(ctx, roomID, date, slot)
}

func validateRequiredFields(params CreateBookingParams) error {
	required := []struct {
		name  string
		value string
	}{
		{"room_id", params.RoomID},
		{"user_email", params.UserEmail},
		{"date", params.Date},
		{"start_time", params.StartTime},
		{"end_time", params.EndTime},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return errs.Mark(errs.New("missing required field: "+f.name), errs.ErrMissingField)
		}
	}
	return nil
}

func parseCandidate(dateStr, startStr, endStr string) (booking.Date, booking.TimeSlot, error) {
	date, err := booking.NewDate(dateStr)
	if err != nil {
		return booking.Date{}, booking.TimeSlot{}, errs.Mark(err, errs.ErrMalformedTimestamp)
	}

	start, err := booking.ParseTimestamp(startStr)
	if err != nil {
		return booking.Date{}, booking.TimeSlot{}, errs.Mark(err, errs.ErrMalformedTimestamp)
	}
	end, err := booking.ParseTimestamp(endStr)
	if err != nil {
		return booking.Date{}, booking.TimeSlot{}, errs.Mark(err, errs.ErrMalformedTimestamp)
	}

	if err := booking.ValidateDuration(start, end); err != nil {
		switch err {
		case booking.ErrDurationTooShort:
			return booking.Date{}, booking.TimeSlot{}, errs.ErrDurationTooShort
		default:
			return booking.Date{}, booking.TimeSlot{}, errs.ErrDurationTooLong
		}
	}

	slot, err := booking.NewTimeSlot(start, end)
	if err != nil {
		return booking.Date{}, booking.TimeSlot{}, errs.Mark(err, errs.ErrMalformedTimestamp)
	}

	return date, slot, nil
}

// mergeCandidate builds the modification target from the existing
// booking, overriding only the fields the caller supplied. Omitted
// timestamps keep their time of day but are re-anchored onto the
// target date, so a date-only change moves the whole slot and the
// replacement's date and timestamps always agree.
func mergeCandidate(existing *booking.Booking, params ModifyBookingParams) (booking.Date, booking.TimeSlot, error) {
	dateStr := existing.Date().String()
	if params.Date != nil {
		dateStr = *params.Date
	}

	startStr := dateStr + "T" + existing.Slot().Start().Format("15:04:05")
	endStr := dateStr + "T" + existing.Slot().End().Format("15:04:05")
	if params.StartTime != nil {
		startStr = *params.StartTime
	}
	if params.EndTime != nil {
		endStr = *params.EndTime
	}

	return parseCandidate(dateStr, startStr, endStr)
}

func filterCancelled(bs []*booking.Booking, includeCancelled bool) []*booking.Booking {
	if includeCancelled {
		return bs
	}
	active := make([]*booking.Booking, 0, len(bs))
	for _, b := range bs {
		if b.IsActive() {
			active = append(active, b)
		}
	}
	return active
}

// Notification failures never fail the request; they are logged and
// dropped. An unknown room skips the mail entirely since there is no
// room detail to render.
func (u *bookingUseCaseImpl) notifyConfirmation(ctx context.Context, b *booking.Booking) {
	rm, err := u.rooms.FindByID(ctx, b.RoomID())
	if err != nil {
		slog.Warn("skipping confirmation mail, room lookup failed", "room_id", b.RoomID(), "error", err)
		return
	}
	if err := u.notifier.SendConfirmation(ctx, b, rm); err != nil {
		slog.Warn("failed to send confirmation mail", "booking_id", b.ID(), "error", err)
	}
}

func (u *bookingUseCaseImpl) notifyCancellation(ctx context.Context, b *booking.Booking) {
	rm, err := u.rooms.FindByID(ctx, b.RoomID())
	if err != nil {
		slog.Warn("skipping cancellation mail, room lookup failed", "room_id", b.RoomID(), "error", err)
		return
	}
	if err := u.notifier.SendCancellation(ctx, b, rm); err != nil {
		slog.Warn("failed to send cancellation mail", "booking_id", b.ID(), "error", err)
	}
}
