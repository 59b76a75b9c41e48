package fulfillment

import (
	"context"
	"fmt"
	"time"

	restaurantRepo "dinebot/database/repository/restaurant"
	"dinebot/models"

	"go.uber.org/zap"
)

// Hand-rolled collaborator stubs. Each records the calls the flow
// handlers make so tests can assert on side effects.

type stubRestaurantRepo struct {
	restaurants []models.Restaurant
	byID        map[int]*models.Restaurant
	searchID    int
	searchErr   error
	filterCalls []models.RestaurantFilter
}

func (s *stubRestaurantRepo) GetAll(context.Context) ([]models.Restaurant, error) {
	return s.restaurants, nil
}

func (s *stubRestaurantRepo) GetByID(_ context.Context, id int) (*models.Restaurant, error) {
	if r, ok := s.byID[id]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("restaurant %d: %w", id, restaurantRepo.ErrNotFound)
}

func (s *stubRestaurantRepo) SearchByNameAndArea(_ context.Context, name, area string) (int, error) {
	if s.searchErr != nil {
		return 0, s.searchErr
	}
	return s.searchID, nil
}

func (s *stubRestaurantRepo) FilterAdvanced(_ context.Context, filter models.RestaurantFilter) ([]models.Restaurant, error) {
	s.filterCalls = append(s.filterCalls, filter)
	return s.restaurants, nil
}

type stubMenuRepo struct {
	items []models.MenuItem
}

func (s *stubMenuRepo) GetAll(context.Context) ([]models.MenuItem, error) { return s.items, nil }
func (s *stubMenuRepo) GetByID(context.Context, int) (*models.MenuItem, error) {
	if len(s.items) == 0 {
		return nil, nil
	}
	return &s.items[0], nil
}
func (s *stubMenuRepo) GetByRestaurantID(context.Context, int) ([]models.MenuItem, error) {
	return s.items, nil
}
func (s *stubMenuRepo) GetVegItems(context.Context, int) ([]models.MenuItem, error) {
	return s.items, nil
}
func (s *stubMenuRepo) GetNonVegItems(context.Context, int) ([]models.MenuItem, error) {
	return s.items, nil
}
func (s *stubMenuRepo) GetByCategory(context.Context, int, string) ([]models.MenuItem, error) {
	return s.items, nil
}
func (s *stubMenuRepo) SearchItemsByName(context.Context, int, string) ([]models.MenuItem, error) {
	return s.items, nil
}
func (s *stubMenuRepo) GetItemsByPriceRange(context.Context, int, float64, float64) ([]models.MenuItem, error) {
	return s.items, nil
}
func (s *stubMenuRepo) GetCategoriesByRestaurant(context.Context, int) ([]string, error) {
	return nil, nil
}
func (s *stubMenuRepo) AddMenuItem(_ context.Context, item models.NewMenuItem) (*models.MenuItem, error) {
	return &models.MenuItem{ItemName: item.ItemName}, nil
}

type placedOrder struct {
	userID       int
	restaurantID int
	items        []models.OrderLine
}

type stubOrderRepo struct {
	placeCalls  []placedOrder
	receipt     *models.OrderReceipt
	trackResult *models.OrderSummary
	cancelCalls []int
}

func (s *stubOrderRepo) PlaceOrder(_ context.Context, userID, restaurantID int, items []models.OrderLine) (*models.OrderReceipt, error) {
	s.placeCalls = append(s.placeCalls, placedOrder{userID: userID, restaurantID: restaurantID, items: items})
	if s.receipt != nil {
		return s.receipt, nil
	}
	return &models.OrderReceipt{OrderID: 1, TotalPrice: 0}, nil
}

func (s *stubOrderRepo) TrackOrder(context.Context, int) (*models.OrderSummary, error) {
	return s.trackResult, nil
}

func (s *stubOrderRepo) CancelOrder(_ context.Context, orderID int) error {
	s.cancelCalls = append(s.cancelCalls, orderID)
	return nil
}

func (s *stubOrderRepo) UpdateStatus(context.Context, int, string) error { return nil }
func (s *stubOrderRepo) GetOrdersByUser(context.Context, int) ([]models.Order, error) {
	return nil, nil
}
func (s *stubOrderRepo) GetOrdersByRestaurant(context.Context, int) ([]models.Order, error) {
	return nil, nil
}
func (s *stubOrderRepo) GetSalesSummary(context.Context, int) (*models.SalesSummary, error) {
	return &models.SalesSummary{}, nil
}

type stubDineinRepo struct {
	bookCalls   []models.BookingRequest
	booking     *models.Booking
	getBooking  *models.Booking
	cancelCalls []int
}

func (s *stubDineinRepo) BookTable(_ context.Context, req models.BookingRequest) (*models.Booking, error) {
	s.bookCalls = append(s.bookCalls, req)
	return s.booking, nil
}

func (s *stubDineinRepo) GetBookingByID(context.Context, int) (*models.Booking, error) {
	return s.getBooking, nil
}

func (s *stubDineinRepo) GetUserBookings(context.Context, int) ([]models.Booking, error) {
	return nil, nil
}

func (s *stubDineinRepo) CancelBooking(_ context.Context, id int) error {
	s.cancelCalls = append(s.cancelCalls, id)
	return nil
}

func (s *stubDineinRepo) ConfirmBooking(context.Context, int) error { return nil }
func (s *stubDineinRepo) GetRestaurantBookings(context.Context, int) ([]models.Booking, error) {
	return nil, nil
}
func (s *stubDineinRepo) GetAvailableTimeSlots(context.Context, int, string) ([]string, error) {
	return nil, nil
}

type testEnv struct {
	svc         *DefaultFulfillmentService
	restaurants *stubRestaurantRepo
	menus       *stubMenuRepo
	orders      *stubOrderRepo
	dinein      *stubDineinRepo
}

func newTestEnv() *testEnv {
	env := &testEnv{
		restaurants: &stubRestaurantRepo{},
		menus:       &stubMenuRepo{},
		orders:      &stubOrderRepo{},
		dinein:      &stubDineinRepo{},
	}
	env.svc = NewDefaultFulfillmentService(env.restaurants, env.menus, env.orders, env.dinein, zap.NewNop())
	env.svc.now = func() time.Time {
		return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return env
}

const testSession = "projects/test/agent/sessions/abc123"

func webhookReq(intent string, params map[string]any, contexts ...models.WebhookContext) *models.WebhookRequest {
	if params == nil {
		params = map[string]any{}
	}
	return &models.WebhookRequest{
		Session: testSession,
		QueryResult: models.WebhookQueryResult{
			Intent:         models.WebhookIntent{DisplayName: intent},
			Parameters:     params,
			OutputContexts: contexts,
		},
	}
}

func stageContext(stage string, params map[string]any) models.WebhookContext {
	return models.WebhookContext{
		Name:          contextName(testSession, stage),
		LifespanCount: defaultLifespan,
		Parameters:    params,
	}
}
