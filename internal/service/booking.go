package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/logger"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/model"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/queue"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/repository"
)

// BookingOptions tunes the booking write path.
type BookingOptions struct {
	Timeout        time.Duration // bound for the whole Create call, retries included
	MaxRetries     int           // replays after a deadlock or lock wait timeout
	RetryBackoff   time.Duration // first backoff step, grows linearly
	PublishTimeout time.Duration // bound for the post-commit event publish
}

// BookingService owns the booking transaction.  A booking and its order
// items are written in one transaction that also holds the slot lock, so
// concurrent bookings of one slot can never exceed its table count.
type BookingService struct {
	db          *sql.DB
	restaurants *repository.RestaurantRepo
	bookings    *repository.BookingRepo
	slots       *repository.SlotRepo
	policy      CapacityPolicy
	publisher   queue.Publisher
	log         *logger.Logger
	opts        BookingOptions
	now         func() time.Time
}

func NewBookingService(db *sql.DB, restaurants *repository.RestaurantRepo, bookings *repository.BookingRepo,
	slots *repository.SlotRepo, policy CapacityPolicy, publisher queue.Publisher, log *logger.Logger, opts BookingOptions) *BookingService {
	if db == nil || restaurants == nil || bookings == nil || slots == nil {
		panic("nil dependency passed to NewBookingService")
	}
	if policy == nil {
		policy = SlotPolicy{}
	}
	if publisher == nil {
		publisher = queue.NopPublisher{}
	}
	if log == nil {
		log = logger.Discard()
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = 20 * time.Millisecond
	}
	if opts.PublishTimeout <= 0 {
		opts.PublishTimeout = 3 * time.Second
	}
	return &BookingService{
		db: db, restaurants: restaurants, bookings: bookings, slots: slots,
		policy: policy, publisher: publisher, log: log, opts: opts, now: time.Now,
	}
}

// normalized is a validated BookingRequest.
type normalized struct {
	req     BookingRequest
	date    string
	slot    string
	special *string
	items   []model.OrderItem
}

func validateBooking(req BookingRequest) (*normalized, error) {
	req.UserName = strings.TrimSpace(req.UserName)
	req.UserEmail = strings.TrimSpace(req.UserEmail)
	switch {
	case req.RestaurantID == 0:
		return nil, missing("restaurantId")
	case req.UserName == "":
		return nil, missing("userName")
	case req.UserEmail == "":
		return nil, missing("userEmail")
	case strings.TrimSpace(req.BookingDate) == "":
		return nil, missing("bookingDate")
	case strings.TrimSpace(req.BookingTime) == "":
		return nil, missing("bookingTime")
	case req.Guests == 0:
		return nil, missing("guests")
	}
	if !validEmail(req.UserEmail) {
		return nil, invalid("userEmail", "Invalid email address")
	}
	date, err := normalizeDate(req.BookingDate)
	if err != nil {
		return nil, onField(err, "bookingDate")
	}
	slot, err := normalizeTime(req.BookingTime)
	if err != nil {
		return nil, onField(err, "bookingTime")
	}

	n := &normalized{req: req, date: date, slot: slot, special: optional(req.SpecialRequests)}
	n.items = make([]model.OrderItem, 0, len(req.OrderItems))
	for i, it := range req.OrderItems {
		if it.MenuItemID == 0 {
			return nil, invalid(fmt.Sprintf("orderItems[%d].menuItemId", i), "Menu item is required")
		}
		if it.Quantity == 0 {
			return nil, invalid(fmt.Sprintf("orderItems[%d].quantity", i), "Quantity must be at least 1")
		}
		n.items = append(n.items, model.OrderItem{
			MenuItemID:      it.MenuItemID,
			Quantity:        it.Quantity,
			SpecialRequests: optional(it.SpecialRequests),
		})
	}
	return n, nil
}

func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

// Create validates req and writes the booking with its order items.  On
// any failure nothing is persisted and exactly one error is returned:
// ValidationError, NotFoundError, ErrCapacityExceeded, ErrUnavailable or
// *StoreError.
func (s *BookingService) Create(ctx context.Context, req BookingRequest) (BookingResult, error) {
	n, err := validateBooking(req)
	if err != nil {
		return BookingResult{}, err
	}

	ctx, cancel := withTimeout(ctx, s.opts.Timeout)
	defer cancel()

	var (
		booking *model.Booking
		rest    *model.Restaurant
	)
	err = withRetry(ctx, s.opts.MaxRetries, s.opts.RetryBackoff, func(attempt int) error {
		if attempt > 0 {
			s.log.Warn("booking_retry", requestID(ctx), "retrying booking transaction",
				slog.Int("attempt", attempt), slog.Uint64("restaurant_id", n.req.RestaurantID))
		}
		var txErr error
		booking, rest, txErr = s.createTx(ctx, n)
		return txErr
	})
	if err != nil {
		return BookingResult{}, storeErr(ctx, "create booking", err)
	}

	s.publish(ctx, booking, rest, n.items)

	msg := msgBookingConfirmed
	if len(n.items) > 0 {
		msg = msgBookingOrderConfirmed
	}
	return BookingResult{Success: true, BookingID: booking.ID, Message: msg}, nil
}

// bookingTxOptions runs the booking transaction at READ COMMITTED: every
// statement reads the latest committed data, so the recount taken after
// the slot lock sees bookings committed while this transaction waited.
// Under REPEATABLE READ the snapshot fixed by the first read would hide them.
var bookingTxOptions = &sql.TxOptions{Isolation: sql.LevelReadCommitted}

func (s *BookingService) createTx(ctx context.Context, n *normalized) (*model.Booking, *model.Restaurant, error) {
	tx, err := s.db.BeginTx(ctx, bookingTxOptions)
	if err != nil {
		return nil, nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rest, err := s.restaurants.GetByIDTx(ctx, tx, n.req.RestaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return nil, nil, NotFoundError{Resource: "restaurant", ID: n.req.RestaurantID}
		}
		return nil, nil, err
	}
	if !withinOpeningHours(n.slot, rest.OpeningTime, rest.ClosingTime) {
		return nil, nil, invalid("bookingTime",
			fmt.Sprintf("%s is open from %s to %s", rest.Name, rest.OpeningTime, rest.ClosingTime))
	}

	if err := s.slots.LockTx(ctx, tx, rest.ID, n.date, n.slot); err != nil {
		return nil, nil, err
	}
	booked, err := s.bookings.BookedTablesTx(ctx, tx, rest.ID, n.date, n.slot)
	if err != nil {
		return nil, nil, err
	}
	needed := s.policy.TablesNeeded(n.req.Guests)
	if needed > remainingTables(rest.Tables, booked) {
		return nil, nil, ErrCapacityExceeded
	}

	if len(n.items) > 0 {
		ids := make([]uint64, 0, len(n.items))
		for _, it := range n.items {
			ids = append(ids, it.MenuItemID)
		}
		found, err := s.restaurants.FilterMenuItemsTx(ctx, tx, rest.ID, ids)
		if err != nil {
			return nil, nil, err
		}
		for i, it := range n.items {
			if _, ok := found[it.MenuItemID]; !ok {
				return nil, nil, invalid(fmt.Sprintf("orderItems[%d].menuItemId", i),
					fmt.Sprintf("Menu item %d is not on the menu of %s", it.MenuItemID, rest.Name))
			}
		}
	}

	b := &model.Booking{
		RestaurantID:    rest.ID,
		UserName:        n.req.UserName,
		UserEmail:       n.req.UserEmail,
		BookingDate:     n.date,
		BookingTime:     n.slot,
		Guests:          n.req.Guests,
		SpecialRequests: n.special,
		TablesUsed:      needed,
	}
	if err := s.bookings.CreateTx(ctx, tx, b); err != nil {
		return nil, nil, err
	}
	items := make([]model.OrderItem, len(n.items))
	for i, it := range n.items {
		it.BookingID = b.ID
		items[i] = it
	}
	if err := s.bookings.CreateOrderItemsBulkTx(ctx, tx, items); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	committed = true
	return b, rest, nil
}

// publish emits the confirmation event.  The booking is already durable,
// so failures are logged and swallowed.
func (s *BookingService) publish(ctx context.Context, b *model.Booking, rest *model.Restaurant, items []model.OrderItem) {
	ev := queue.BookingConfirmedEvent{
		BookingID:      b.ID,
		RestaurantID:   rest.ID,
		RestaurantName: rest.Name,
		UserName:       b.UserName,
		UserEmail:      b.UserEmail,
		BookingDate:    b.BookingDate,
		BookingTime:    b.BookingTime,
		Guests:         b.Guests,
		TablesUsed:     b.TablesUsed,
		OrderItems:     make([]queue.EventOrderItem, 0, len(items)),
		ConfirmedAt:    s.now().UTC().Format(time.RFC3339),
	}
	for _, it := range items {
		ev.OrderItems = append(ev.OrderItems, queue.EventOrderItem{MenuItemID: it.MenuItemID, Quantity: it.Quantity})
	}

	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.PublishTimeout)
	defer cancel()
	if err := s.publisher.PublishBookingConfirmed(pctx, ev); err != nil {
		s.log.Error("booking_publish", requestID(ctx), "booking confirmed event not published", err,
			slog.Uint64("booking_id", b.ID))
		return
	}
	s.log.Info("booking_confirmed", requestID(ctx), "booking committed",
		slog.Uint64("booking_id", b.ID), slog.Uint64("restaurant_id", rest.ID),
		slog.String("slot", b.BookingDate+" "+b.BookingTime), slog.Int("tables_used", int(b.TablesUsed)))
}

type requestIDKey struct{}

// WithRequestID tags ctx with the HTTP request ID so service logs can be
// correlated with access logs.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
