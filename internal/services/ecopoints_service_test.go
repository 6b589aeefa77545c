package services_test

import (
	"testing"
	"time"

	"saveup/internal/models"
	"saveup/internal/repositories"
	"saveup/internal/services"

	"github.com/stretchr/testify/assert"
)

var pointsNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func TestComputePoints_TierTable(t *testing.T) {
	cases := []struct {
		name      string
		expiresAt time.Time
		expected  int
	}{
		{"expired yesterday", pointsNow.Add(-24 * time.Hour), 100},
		{"expires today", pointsNow.Add(-time.Hour), 100},
		{"expires this instant", pointsNow, 100},
		{"one day left", pointsNow.Add(24 * time.Hour), 80},
		{"two days left", pointsNow.Add(48 * time.Hour), 60},
		{"three days left", pointsNow.Add(72 * time.Hour), 60},
		{"four days left", pointsNow.Add(4 * 24 * time.Hour), 40},
		{"seven days left", pointsNow.Add(7 * 24 * time.Hour), 40},
		{"eight days left", pointsNow.Add(8 * 24 * time.Hour), 25},
		{"fourteen days left", pointsNow.Add(14 * 24 * time.Hour), 25},
		{"fifteen days left", pointsNow.Add(15 * 24 * time.Hour), 15},
		{"thirty days left", pointsNow.Add(30 * 24 * time.Hour), 15},
		{"thirty-one days left", pointsNow.Add(31 * 24 * time.Hour), 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			points, err := services.ComputePoints(tc.expiresAt, models.CategoryOther, pointsNow)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, points)
		})
	}
}

func TestComputePoints_PartialDaysRoundUp(t *testing.T) {
	// 25 hours out is ceil'd to 2 days, not 1.
	points, err := services.ComputePoints(pointsNow.Add(25*time.Hour), models.CategoryOther, pointsNow)
	assert.NoError(t, err)
	assert.Equal(t, 60, points)
}

func TestComputePoints_CategoryMultipliers(t *testing.T) {
	oneDayOut := pointsNow.Add(24 * time.Hour) // base 80

	cases := []struct {
		category models.Category
		expected int
	}{
		{models.CategoryDairy, 96},       // 80 * 1.2
		{models.CategoryMeatPoultry, 104}, // 80 * 1.3
		{models.CategoryProduce, 88},     // 80 * 1.1
		{models.CategoryBakery, 92},      // 80 * 1.15
		{models.CategoryDeli, 96},        // 80 * 1.2
		{models.CategoryOther, 80},       // 80 * 1.0
	}

	for _, tc := range cases {
		points, err := services.ComputePoints(oneDayOut, tc.category, pointsNow)
		assert.NoError(t, err)
		assert.Equal(t, tc.expected, points, "category %s", tc.category)
	}
}

func TestComputePoints_RoundsOnceAtTheEnd(t *testing.T) {
	// Base 15 (15-30 days tier) times bakery 1.15 is 17.25, which must round
	// to 17. Rounding the base and multiplier separately would not hit this.
	points, err := services.ComputePoints(pointsNow.Add(20*24*time.Hour), models.CategoryBakery, pointsNow)
	assert.NoError(t, err)
	assert.Equal(t, 17, points)
}

func TestComputePoints_UnknownCategoryDefaultsToNeutral(t *testing.T) {
	category := models.ParseCategory("frozen desserts")
	assert.Equal(t, models.CategoryOther, category)
	assert.Equal(t, 1.0, category.Multiplier())

	points, err := services.ComputePoints(pointsNow.Add(24*time.Hour), category, pointsNow)
	assert.NoError(t, err)
	assert.Equal(t, 80, points)
}

func TestComputePoints_MissingExpirationFails(t *testing.T) {
	points, err := services.ComputePoints(time.Time{}, models.CategoryDairy, pointsNow)
	assert.Error(t, err)
	assert.Equal(t, 0, points)

	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestComputePoints_MonotonicallyNonIncreasing(t *testing.T) {
	previous := int(^uint(0) >> 1)
	for days := -2; days <= 60; days++ {
		expiresAt := pointsNow.Add(time.Duration(days) * 24 * time.Hour)
		points, err := services.ComputePoints(expiresAt, models.CategoryDairy, pointsNow)
		assert.NoError(t, err)
		assert.LessOrEqual(t, points, previous, "points increased at %d days out", days)
		previous = points
	}
}

func newEcoFixture(t *testing.T) (*services.EcoPointsService, *repositories.MockProductRepository, *repositories.MockEcoActionRepository, *repositories.MockCustomerRepository) {
	t.Helper()
	productRepo := repositories.NewMockProductRepository()
	actionRepo := repositories.NewMockEcoActionRepository()
	customerRepo := repositories.NewMockCustomerRepository()
	service := services.NewEcoPointsService(actionRepo, productRepo, customerRepo)
	service.SetClock(func() time.Time { return pointsNow })
	return service, productRepo, actionRepo, customerRepo
}

func TestEcoPointsService_CreditOrder(t *testing.T) {
	service, productRepo, _, _ := newEcoFixture(t)

	// cart = [{qty 2, dairy, expires in 1 day}] -> round(80 * 1.2) * 2 = 192
	err := productRepo.Create(&models.Product{
		ID:        "prod-milk",
		Name:      "Whole Milk",
		Category:  models.CategoryDairy,
		Price:     3.50,
		Stock:     10,
		ExpiresAt: pointsNow.Add(24 * time.Hour),
	})
	assert.NoError(t, err)

	order := &models.Order{
		ID:              "order-1",
		CustomerContact: "ana@example.com",
		Items:           []models.OrderItem{{ProductID: "prod-milk", Quantity: 2, PriceAtTime: 3.50}},
	}

	points, err := service.CreditOrder(order)
	assert.NoError(t, err)
	assert.Equal(t, 192, points)

	balance, err := service.Balance("ana@example.com")
	assert.NoError(t, err)
	assert.Equal(t, 192, balance)
}

func TestEcoPointsService_CreditOrderIsIdempotent(t *testing.T) {
	service, productRepo, actionRepo, _ := newEcoFixture(t)

	assert.NoError(t, productRepo.Create(&models.Product{
		ID: "prod-1", Name: "Baguette", Category: models.CategoryBakery,
		Price: 1.20, Stock: 5, ExpiresAt: pointsNow.Add(24 * time.Hour),
	}))

	order := &models.Order{
		ID:              "order-dup",
		CustomerContact: "555-0101",
		Items:           []models.OrderItem{{ProductID: "prod-1", Quantity: 1, PriceAtTime: 1.20}},
	}

	first, err := service.CreditOrder(order)
	assert.NoError(t, err)
	assert.Equal(t, 92, first)

	second, err := service.CreditOrder(order)
	assert.NoError(t, err)
	assert.Equal(t, 0, second, "second credit for the same order must be a no-op")

	actions, err := actionRepo.ListByCustomer("555-0101")
	assert.NoError(t, err)
	assert.Len(t, actions, 1, "exactly one ledger entry per order")
	assert.Equal(t, models.EcoActionOrderRescue, actions[0].ActionType)
	assert.Equal(t, "order-dup", actions[0].OrderID)
}

func TestEcoPointsService_BalanceReconcilesCustomerCache(t *testing.T) {
	service, productRepo, _, customerRepo := newEcoFixture(t)

	assert.NoError(t, productRepo.Create(&models.Product{
		ID: "prod-1", Name: "Chicken Breast", Category: models.CategoryMeatPoultry,
		Price: 8.90, Stock: 3, ExpiresAt: pointsNow.Add(24 * time.Hour),
	}))
	customer := &models.Customer{Name: "Bruna", Email: "bruna@example.com", EcoPointsCache: 9999}
	assert.NoError(t, customerRepo.Create(customer))

	order := &models.Order{
		ID:              "order-rec",
		CustomerContact: "bruna@example.com",
		Items:           []models.OrderItem{{ProductID: "prod-1", Quantity: 1, PriceAtTime: 8.90}},
	}
	_, err := service.CreditOrder(order)
	assert.NoError(t, err)

	balance, err := service.Balance("bruna@example.com")
	assert.NoError(t, err)
	assert.Equal(t, 104, balance)

	// The stale cached total is reconciled to the ledger sum.
	refreshed, err := customerRepo.GetByID(customer.ID)
	assert.NoError(t, err)
	assert.Equal(t, 104, refreshed.EcoPointsCache)
}
