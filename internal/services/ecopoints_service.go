package services

import (
	"fmt"
	"log"
	"math"
	"time"

	"saveup/internal/models"
	"saveup/internal/repositories"
)

// ComputePoints returns the eco points earned for rescuing one unit of a
// product, given its expiration date and category. The tier table decays with
// the number of days left until expiry; the category multiplier is applied to
// the base and the result is rounded exactly once at the end. A zero
// expiration date is a validation error, never a silent tier default.
func ComputePoints(expiresAt time.Time, category models.Category, now time.Time) (int, error) {
	if expiresAt.IsZero() {
		return 0, models.NewValidationError("expiration_date", "expiration date is required")
	}

	days := daysUntilExpiry(expiresAt, now)

	var base float64
	switch {
	case days <= 0:
		base = 100
	case days == 1:
		base = 80
	case days <= 3:
		base = 60
	case days <= 7:
		base = 40
	case days <= 14:
		base = 25
	case days <= 30:
		base = 15
	default:
		base = 10
	}

	return int(math.Round(base * category.Multiplier())), nil
}

// daysUntilExpiry is ceil((expiration - now) / 24h) as an integer day count.
// Today or past dates yield <= 0.
func daysUntilExpiry(expiresAt, now time.Time) int {
	diff := expiresAt.Sub(now)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// EcoPointsService owns the eco-points ledger: it credits orders and serves
// customer balances. The ledger sum is authoritative; the cached total on the
// customer row is reconciled to it on every read and credit.
type EcoPointsService struct {
	actionRepo   repositories.EcoActionRepository
	productRepo  repositories.ProductRepository
	customerRepo repositories.CustomerRepository
	now          func() time.Time
}

// NewEcoPointsService creates a new EcoPointsService.
func NewEcoPointsService(
	actionRepo repositories.EcoActionRepository,
	productRepo repositories.ProductRepository,
	customerRepo repositories.CustomerRepository,
) *EcoPointsService {
	return &EcoPointsService{
		actionRepo:   actionRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		now:          time.Now,
	}
}

// SetClock overrides the service clock. Intended for tests.
func (s *EcoPointsService) SetClock(now func() time.Time) {
	s.now = now
}

// PointsForOrder computes the total points an order would earn, summing
// per-line points (unit points times quantity, linear scaling).
func (s *EcoPointsService) PointsForOrder(order *models.Order) (int, error) {
	now := s.now()
	total := 0
	for _, item := range order.Items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return 0, fmt.Errorf("product lookup for eco points failed: %w", err)
		}
		unit, err := ComputePoints(product.ExpiresAt, product.Category, now)
		if err != nil {
			return 0, err
		}
		total += unit * item.Quantity
	}
	return total, nil
}

// CreditOrder records the points earned by an order as a single ledger entry
// (one EcoAction per order, not per line). Crediting is idempotent per order:
// a second call for the same order is a no-op. Returns the points credited,
// or 0 when the order was already credited.
func (s *EcoPointsService) CreditOrder(order *models.Order) (int, error) {
	credited, err := s.actionRepo.ExistsForOrder(order.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to check eco ledger for order %s: %w", order.ID, err)
	}
	if credited {
		return 0, nil
	}

	points, err := s.PointsForOrder(order)
	if err != nil {
		return 0, err
	}

	action := &models.EcoAction{
		CustomerIdentifier: order.CustomerContact,
		ActionType:         models.EcoActionOrderRescue,
		PointsEarned:       points,
		OrderID:            order.ID,
		CreatedAt:          s.now(),
	}
	if err := s.actionRepo.Append(action); err != nil {
		return 0, fmt.Errorf("failed to record eco action for order %s: %w", order.ID, err)
	}

	s.reconcileCache(order.CustomerContact)
	return points, nil
}

// Balance returns the authoritative points total for a customer identifier
// (email or phone), reconciling the cached total on the customer row.
func (s *EcoPointsService) Balance(customerIdentifier string) (int, error) {
	total, err := s.actionRepo.SumByCustomer(customerIdentifier)
	if err != nil {
		return 0, err
	}
	s.reconcileCache(customerIdentifier)
	return total, nil
}

// History returns the ledger entries for a customer, newest first.
func (s *EcoPointsService) History(customerIdentifier string) ([]models.EcoAction, error) {
	return s.actionRepo.ListByCustomer(customerIdentifier)
}

// reconcileCache pushes the ledger sum into the customer's cached total.
// Cache drift is tolerable, so failures here are logged and swallowed.
func (s *EcoPointsService) reconcileCache(customerIdentifier string) {
	if s.customerRepo == nil {
		return
	}
	customer, err := s.customerRepo.FindByContact(customerIdentifier)
	if err != nil {
		return // guest checkout, no customer row to reconcile
	}
	total, err := s.actionRepo.SumByCustomer(customerIdentifier)
	if err != nil {
		log.Printf("Failed to sum eco ledger for %s: %v", customerIdentifier, err)
		return
	}
	if customer.EcoPointsCache == total {
		return
	}
	if err := s.customerRepo.UpdatePointsCache(customer.ID, total); err != nil {
		log.Printf("Failed to reconcile points cache for customer %s: %v", customer.ID, err)
	}
}
