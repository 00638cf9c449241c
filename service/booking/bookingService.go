package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/TonCerques/alugaki/metrics"
	"github.com/TonCerques/alugaki/model"
	bookingrepo "github.com/TonCerques/alugaki/repository/booking"
	chatrepo "github.com/TonCerques/alugaki/repository/chat"
	"github.com/TonCerques/alugaki/repository/store"
	"github.com/google/uuid"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound          ErrCode = "NOT_FOUND"
	ErrInvalidTransition ErrCode = "INVALID_TRANSITION"
	ErrBadStatus         ErrCode = "BAD_STATUS"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

const (
	contractVersion = "v1.0-MVP-BR"
	contractOrigin  = "127.0.0.1 (local)"
)

type CreateReq struct {
	ItemID        string
	RenterID      string
	OwnerID       string
	StartDate     time.Time
	EndDate       time.Time
	TotalPrice    float64
	DepositAmount float64
}

type Created struct {
	Booking    model.Booking
	ChatRoomID string
}

type Service interface {
	// Quote computes the price breakdown for a rental window.
	Quote(dailyPrice, replacementValue float64, start, end time.Time) Quote

	// Create persists the booking, its chat room and the initial system
	// message as one write. The approval policy picks the initial status.
	Create(ctx context.Context, req CreateReq) (*Created, error)

	// UpdateStatus is the owner decision point: approve (AWAITING_PAYMENT)
	// or decline (REJECTED) a pending request. Cancellation from either
	// initial state also goes through here.
	UpdateStatus(ctx context.Context, id string, next model.BookingStatus) (*model.Booking, error)

	// ConfirmPayment moves AWAITING_PAYMENT to CONFIRMED, accepts the
	// contract and writes the contract log.
	ConfirmPayment(ctx context.Context, id, userID string) (*model.Booking, error)

	// Handover moves CONFIRMED to ACTIVE.
	Handover(ctx context.Context, id string) (*model.Booking, error)

	// Return moves ACTIVE to COMPLETED and releases the deposit.
	Return(ctx context.Context, id string) (*model.Booking, error)

	ByID(ctx context.Context, id string) (*model.Booking, error)
	ByUser(ctx context.Context, userID string) ([]model.Booking, error)
}

type service struct {
	s      *store.Store
	b      bookingrepo.Repo
	policy Policy
	log    *slog.Logger
}

func New(s *store.Store, b bookingrepo.Repo, policy Policy, log *slog.Logger) Service {
	return &service{s: s, b: b, policy: policy, log: log}
}

func (s *service) Quote(dailyPrice, replacementValue float64, start, end time.Time) Quote {
	return NewQuote(dailyPrice, replacementValue, start, end)
}

func (s *service) Create(ctx context.Context, req CreateReq) (*Created, error) {
	auto := s.policy.AutoApprove(req.ItemID)
	status := model.BookingPendingApproval
	if auto {
		status = model.BookingAwaitingPayment
	}

	now := time.Now().UTC()
	b := model.Booking{
		ID:            uuid.NewString(),
		ItemID:        req.ItemID,
		RenterID:      req.RenterID,
		OwnerID:       req.OwnerID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		TotalPrice:    req.TotalPrice,
		DepositAmount: req.DepositAmount,
		Status:        status,
		CreatedAt:     now,
	}
	room := model.ChatRoom{
		ID:           uuid.NewString(),
		BookingID:    b.ID,
		Participants: []string{req.RenterID, req.OwnerID},
		UpdatedAt:    now,
	}

	content := fmt.Sprintf("Booking requested for %s. Waiting for the owner's approval.", req.StartDate.Format("Jan 2, 2006"))
	if auto {
		content = fmt.Sprintf("Booking requested for %s. Auto-approved: you can proceed to payment right away.", req.StartDate.Format("Jan 2, 2006"))
	}

	err := s.s.Update(ctx, func(ds *model.Dataset) error {
		ds.Bookings = append(ds.Bookings, b)
		ds.ChatRooms = append(ds.ChatRooms, room)
		chatrepo.Append(ds, room.ID, model.SystemSender, content, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.BookingsCreated.WithLabelValues(strconv.FormatBool(auto)).Inc()
	s.log.Info("booking created", "booking_id", b.ID, "item_id", b.ItemID, "status", string(b.Status))
	return &Created{Booking: b, ChatRoomID: room.ID}, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, next model.BookingStatus) (*model.Booking, error) {
	var from model.BookingStatus
	var note string
	switch next {
	case model.BookingAwaitingPayment:
		from = model.BookingPendingApproval
		note = "Booking approved by the owner. You can proceed to payment."
	case model.BookingRejected:
		from = model.BookingPendingApproval
		note = "Booking declined by the owner."
	case model.BookingCancelled:
		// handled below: cancellation is valid from either initial state
		return s.cancel(ctx, id)
	default:
		return nil, makeErr(ErrBadStatus)
	}
	return s.transition(ctx, id, from, next, note, nil)
}

func (s *service) ConfirmPayment(ctx context.Context, id, userID string) (*model.Booking, error) {
	note := "Payment confirmed! Deposit pre-authorized. Arrange the handover with the owner now."
	return s.transition(ctx, id, model.BookingAwaitingPayment, model.BookingConfirmed, note,
		func(ds *model.Dataset, b *model.Booking) {
			b.ContractAccepted = true
			ds.ContractLogs = append(ds.ContractLogs, model.ContractLog{
				ID:              uuid.NewString(),
				BookingID:       b.ID,
				UserID:          userID,
				ContractVersion: contractVersion,
				IPAddress:       contractOrigin,
				AcceptedAt:      time.Now().UTC(),
			})
		})
}

func (s *service) Handover(ctx context.Context, id string) (*model.Booking, error) {
	note := "Handover confirmed. The rental period has started. Inspection photos saved."
	return s.transition(ctx, id, model.BookingConfirmed, model.BookingActive, note, nil)
}

func (s *service) Return(ctx context.Context, id string) (*model.Booking, error) {
	note := "Item returned. Inspection approved. Deposit released."
	return s.transition(ctx, id, model.BookingActive, model.BookingCompleted, note, nil)
}

func (s *service) ByID(ctx context.Context, id string) (*model.Booking, error) {
	b, err := s.b.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, makeErr(ErrNotFound)
	}
	return b, nil
}

func (s *service) ByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	return s.b.FindByUser(ctx, userID)
}

func (s *service) cancel(ctx context.Context, id string) (*model.Booking, error) {
	var out model.Booking
	err := s.s.Update(ctx, func(ds *model.Dataset) error {
		b := bookingrepo.Find(ds, id)
		if b == nil {
			return makeErr(ErrNotFound)
		}
		if b.Status != model.BookingPendingApproval && b.Status != model.BookingAwaitingPayment {
			return makeErr(ErrInvalidTransition)
		}
		b.Status = model.BookingCancelled
		s.notify(ds, b, "Booking cancelled.")
		out = *b
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.BookingTransitions.WithLabelValues(string(model.BookingCancelled)).Inc()
	return &out, nil
}

// transition applies one edge of the status graph. The booking must be in
// the expected source state; re-invoking an already applied transition fails
// instead of re-running its side effects.
func (s *service) transition(ctx context.Context, id string, from, to model.BookingStatus, note string, extra func(*model.Dataset, *model.Booking)) (*model.Booking, error) {
	var out model.Booking
	err := s.s.Update(ctx, func(ds *model.Dataset) error {
		b := bookingrepo.Find(ds, id)
		if b == nil {
			return makeErr(ErrNotFound)
		}
		if b.Status != from {
			return makeErr(ErrInvalidTransition)
		}
		b.Status = to
		if extra != nil {
			extra(ds, b)
		}
		s.notify(ds, b, note)
		out = *b
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.BookingTransitions.WithLabelValues(string(to)).Inc()
	s.log.Info("booking transition", "booking_id", id, "from", string(from), "to", string(to))
	return &out, nil
}

// notify appends the transition's system message to the booking's room.
// Every status change emits exactly one; callers never emit their own.
func (s *service) notify(ds *model.Dataset, b *model.Booking, note string) {
	room := chatrepo.FindRoomByBooking(ds, b.ID)
	if room == nil {
		return
	}
	chatrepo.Append(ds, room.ID, model.SystemSender, note, time.Now().UTC())
}
