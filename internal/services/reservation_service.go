package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"saveup/internal/models"
	"saveup/internal/repositories"

	"github.com/google/uuid"
)

// PIXProvider is the external payment collaborator that issues PIX codes.
// Implementations live in pkg/pix. Calls are bounded by the context deadline.
type PIXProvider interface {
	GenerateCode(ctx context.Context, amount float64) (code string, providerRef string, err error)
}

// CustomerInfo identifies the buyer at checkout time.
type CustomerInfo struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Contact string `json:"contact" validate:"required"` // email or phone
}

// ReservationService manages short-lived PIX checkout reservations. A
// reservation ties a cart snapshot to a generated PIX code and an expiry
// timestamp before any order row exists. Reservations live only in this
// process: losing them on restart is acceptable, per the durability contract
// (only confirmed orders must survive).
type ReservationService struct {
	productRepo repositories.ProductRepository
	provider    PIXProvider
	ttl         time.Duration
	callTimeout time.Duration
	now         func() time.Time

	store *reservationStore
}

// NewReservationService creates a new ReservationService. ttl is the PIX
// payment window; callTimeout bounds each provider call.
func NewReservationService(
	productRepo repositories.ProductRepository,
	provider PIXProvider,
	ttl time.Duration,
	callTimeout time.Duration,
) *ReservationService {
	return &ReservationService{
		productRepo: productRepo,
		provider:    provider,
		ttl:         ttl,
		callTimeout: callTimeout,
		now:         time.Now,
		store:       newReservationStore(),
	}
}

// SetClock overrides the service clock. Intended for tests.
func (s *ReservationService) SetClock(now func() time.Time) {
	s.now = now
}

// CreateReservation validates the cart, obtains a PIX code from the external
// provider and stores a new Active reservation keyed by a fresh tempId.
// Provider failures surface as *models.PaymentProviderError and leave nothing
// behind: no reservation is recorded unless code generation succeeded.
func (s *ReservationService) CreateReservation(ctx context.Context, cart []models.CartLine, customer CustomerInfo) (*models.PendingPayment, error) {
	if len(cart) == 0 {
		return nil, models.NewValidationError("cart", "cart must not be empty")
	}
	if customer.Contact == "" {
		return nil, models.NewValidationError("contact", "customer contact is required")
	}

	var total float64
	snapshot := make([]models.CartLine, 0, len(cart))
	for _, line := range cart {
		if line.Quantity <= 0 {
			return nil, models.NewValidationError("quantity", fmt.Sprintf("quantity for product %s must be positive", line.ProductID))
		}
		product, err := s.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, models.NewValidationError("product_id", fmt.Sprintf("product %s not found", line.ProductID))
		}
		if product.Stock < line.Quantity {
			return nil, fmt.Errorf("product %s (requested %d, available %d): %w",
				product.Name, line.Quantity, product.Stock, models.ErrInsufficientStock)
		}
		// Snapshot the current catalog price; the client's price-at-add is
		// advisory only and is not trusted for the total.
		snapshot = append(snapshot, models.CartLine{
			ProductID:      line.ProductID,
			Quantity:       line.Quantity,
			UnitPriceAtAdd: product.Price,
		})
		total += product.Price * float64(line.Quantity)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	code, ref, err := s.provider.GenerateCode(callCtx, total)
	if err != nil {
		return nil, &models.PaymentProviderError{Err: err}
	}

	now := s.now()
	reservation := &models.PendingPayment{
		TempID:          uuid.New().String(),
		Cart:            snapshot,
		TotalAmount:     total,
		PixCode:         code,
		PixProviderRef:  ref,
		PixExpiresAt:    now.Add(s.ttl),
		CustomerName:    customer.Name,
		CustomerContact: customer.Contact,
		State:           models.ReservationActive,
		CreatedAt:       now,
	}
	s.store.put(reservation)

	log.Printf("Created reservation %s for %s (total %.2f, expires %s)",
		reservation.TempID, customer.Contact, total, reservation.PixExpiresAt.Format(time.RFC3339))
	return reservation, nil
}

// GetReservation returns the reservation for tempID. Expired entries report
// models.ErrReservationExpired and are evicted lazily.
func (s *ReservationService) GetReservation(tempID string) (*models.PendingPayment, error) {
	return s.store.get(tempID, s.now())
}

// ConsumeReservation marks the reservation consumed and returns it. The
// check-and-set runs in a single critical section, so two concurrent calls
// for the same tempID yield exactly one winner; the loser gets
// models.ErrReservationConsumed. A call at or after PixExpiresAt fails with
// models.ErrReservationExpired (the boundary counts as expired), evaluated
// atomically with the consume attempt.
func (s *ReservationService) ConsumeReservation(tempID string) (*models.PendingPayment, error) {
	return s.store.consume(tempID, s.now())
}

// Sweep drops reservations whose PIX window closed, keeping the in-memory
// store bounded. Returns the number of entries removed.
func (s *ReservationService) Sweep() int {
	return s.store.sweep(s.now())
}
