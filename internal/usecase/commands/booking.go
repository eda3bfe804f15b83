package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"dinetime-api/internal/domain/booking"
	reqdto "dinetime-api/internal/handler/dto/request"
	"dinetime-api/internal/infra"
	"dinetime-api/internal/pkg/clock"
	"dinetime-api/internal/pkg/errs"
	"dinetime-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrRestaurantNotFound      = errs.New("restaurant not found")
	ErrUnknownSlot             = errs.New("slot is not published by this restaurant")
	ErrNoSlotSelected          = errs.New("no slot selected")
	ErrVerificationRequired    = errs.New("guest phone verification required")
	ErrDuplicateBooking        = errs.New("duplicate booking")
	ErrIdempotencyCheckFailed  = errs.New("idempotency check failed")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateBookingResult struct {
	Booking    *queries.BookingView
	IsReplayed bool
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, identity booking.Identity, sessionID string, idempotencyKey uuid.UUID) (*CreateBookingResult, error)
}

type bookingCommandsImpl struct {
	bookingRepo       BookingRepository
	restaurantRepo    RestaurantRepository
	idempotencyRepo   IdempotencyRepository
	notificationRepo  NotificationRepository
	verificationCache VerificationCache
	bookingQueries    queries.BookingQueries
	tx                TransactionManager
	clock             clock.Clock
}

func NewBookingCommands(
	bookingRepo BookingRepository,
	restaurantRepo RestaurantRepository,
	idempotencyRepo IdempotencyRepository,
	notificationRepo NotificationRepository,
	verificationCache VerificationCache,
	bookingQueries queries.BookingQueries,
	tx TransactionManager,
	clock clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		bookingRepo:       bookingRepo,
		restaurantRepo:    restaurantRepo,
		idempotencyRepo:   idempotencyRepo,
		notificationRepo:  notificationRepo,
		verificationCache: verificationCache,
		bookingQueries:    bookingQueries,
		tx:                tx,
		clock:             clock,
	}
}

// CreateBooking appends exactly one booking record per successful call. A
// guest identity must have a fresh verification for its phone in this
// session, otherwise the call signals ErrVerificationRequired and the client
// runs the OTP round before retrying. The Idempotency-Key dedupes retries
// after transient write failures.
func (b *bookingCommandsImpl) CreateBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	identity booking.Identity,
	sessionID string,
	idempotencyKey uuid.UUID,
) (*CreateBookingResult, error) {
	subject, err := b.verifyIdentity(ctx, identity, sessionID)
	if err != nil {
		return nil, err
	}

	requestHash := b.calculateRequestHash(req)
	expiresAt := b.clock.Now().Add(24 * time.Hour)

	existing, err := b.handleIdempotency(ctx, idempotencyKey, subject, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &CreateBookingResult{Booking: existing, IsReplayed: true}, nil
	}

	view, err := b.createNewBooking(ctx, req, identity, idempotencyKey, subject)
	if err != nil {
		return nil, err
	}
	return &CreateBookingResult{Booking: view, IsReplayed: false}, nil
}

// verifyIdentity gates guests on the verification cache and returns the
// idempotency subject for the caller.
func (b *bookingCommandsImpl) verifyIdentity(ctx context.Context, identity booking.Identity, sessionID string) (string, error) {
	switch id := identity.(type) {
	case booking.Authenticated:
		return id.Email, nil
	case booking.Guest:
		if !b.verificationCache.IsVerified(ctx, sessionID, id.Phone) {
			return "", ErrVerificationRequired
		}
		return sessionID, nil
	default:
		return "", errs.Mark(booking.ErrMissingIdentity, ErrDomainValidation)
	}
}

func (b *bookingCommandsImpl) handleIdempotency(
	ctx context.Context,
	idempotencyKey uuid.UUID,
	subject, requestHash string,
	expiresAt time.Time,
) (*queries.BookingView, error) {
	if err := b.idempotencyRepo.TryInsert(ctx, idempotencyKey, subject, "POST /bookings", requestHash, expiresAt); err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	existing, err := b.idempotencyRepo.Get(ctx, idempotencyKey, subject)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	switch existing.Status {
	case "completed":
		if existing.ResultBookingID != nil {
			return b.bookingQueries.GetByID(ctx, *existing.ResultBookingID)
		}
		return nil, errs.New("completed request missing result booking ID")

	case "processing":
		if existing.RequestHash != requestHash {
			return nil, ErrDuplicateBooking
		}
		// Fresh claim (or a retry of an uncommitted attempt): proceed.
		return nil, nil

	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

func (b *bookingCommandsImpl) createNewBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	identity booking.Identity,
	idempotencyKey uuid.UUID,
	subject string,
) (*queries.BookingView, error) {
	restaurant, err := b.restaurantRepo.FindByID(ctx, req.RestaurantID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	now := b.clock.Now()
	sel, err := booking.ReconstructSelection(req.Date, req.Slot, req.Guests, now)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	if !sel.CanConfirm() {
		return nil, ErrNoSlotSelected
	}
	if !slotPublished(restaurant.Slots, sel.Slot()) {
		return nil, ErrUnknownSlot
	}

	entity, err := booking.NewBooking(sel, identity, restaurant.ID, restaurant.Name)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	return b.executeBookingTransaction(ctx, entity, idempotencyKey, subject)
}

func (b *bookingCommandsImpl) executeBookingTransaction(
	ctx context.Context,
	entity *booking.Booking,
	idempotencyKey uuid.UUID,
	subject string,
) (*queries.BookingView, error) {
	var bookingID uuid.UUID
	txErr := b.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		id, err := b.bookingRepo.Create(ctx, tx, entity)
		if err != nil {
			return err
		}
		bookingID = id

		if err := b.createBookingNotification(ctx, tx, bookingID); err != nil {
			return err
		}

		responseHash := b.calculateIDHash(bookingID)
		return b.idempotencyRepo.UpdateStatusCompleted(ctx, tx, idempotencyKey, subject, responseHash, bookingID)
	})
	if txErr != nil {
		return nil, errs.Mark(txErr, ErrDatabaseOperationFailed)
	}

	// Read-after-write: return the stored view, same shape as a replay.
	view, err := b.bookingQueries.GetByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return view, nil
}

func (b *bookingCommandsImpl) createBookingNotification(ctx context.Context, tx pgx.Tx, bookingID uuid.UUID) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id": bookingID,
		"type":       "booking_created",
	})
	if err != nil {
		return err
	}

	return b.notificationRepo.CreateJob(ctx, tx, "sms", "booking_created", payload, b.clock.Now())
}

func (b *bookingCommandsImpl) calculateRequestHash(req reqdto.CreateBookingRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func (b *bookingCommandsImpl) calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}

func slotPublished(published []string, label string) bool {
	for _, s := range published {
		if s == label {
			return true
		}
	}
	return false
}
