// Package fulfillment implements the conversational webhook engine:
// an intent-dispatch table plus the dine-in, delivery and
// tracking/cancellation flow handlers. All conversation state lives in
// the caller-echoed output contexts; nothing is stored server-side.
package fulfillment

import (
	"context"
	"time"

	dineinRepo "dinebot/database/repository/dinein"
	menuRepo "dinebot/database/repository/menu"
	orderRepo "dinebot/database/repository/order"
	restaurantRepo "dinebot/database/repository/restaurant"
	"dinebot/models"

	"go.uber.org/zap"
)

// chatbotUserID is the fixed user every webhook order/booking is filed
// under; the platform does not authenticate end users.
const chatbotUserID = 1

// defaultLifespan is the turn count handed to every emitted context.
const defaultLifespan = 5

// Intent display names, matched exactly and case-sensitively.
const (
	IntentWelcome = "Default Welcome Intent"

	IntentDineIn            = "DineInIntent"
	IntentRestaurantForDine = "RestaurantForDine"
	IntentMenuForDine       = "MenuForDine"
	IntentDetailsForDine    = "DetailsForDine"
	IntentBookTableForDine  = "BookTableForDine"
	IntentBookingDetails    = "BookingDetailsForDine"
	IntentConfirmBooking    = "ConfirmBookingForDine"

	IntentDelivery              = "DeliveryIntent"
	IntentRestaurantForDelivery = "RestaurantForDelivery"
	IntentMenuForDelivery       = "MenuForDelivery"
	IntentAddDish               = "AddDishIntent"
	IntentUpdateDish            = "UpdateDishIntent"
	IntentRemoveDish            = "RemoveDishIntent"
	IntentProceedToAddress      = "ProceedToAddressIntent"
	IntentDeliveryAddress       = "DeliveryAddressIntent"
	IntentConfirmOrder          = "ConfirmOrderIntent"

	IntentTrackOrder      = "TrackOrderIntent"
	IntentTrackOrderByID  = "TrackOrderByIDIntent"
	IntentTrackDineIn     = "TrackDineInIntent"
	IntentTrackDineInByID = "TrackDineInByIDIntent"
	IntentCancelConfirm   = "CancelConfirmIntent"
	IntentCancelCommit    = "CancelCommitIntent"
)

// Flow-stage tags. A context named "<session>/contexts/<stage>" marks
// the conversation as being in that stage.
const (
	stageMainChoice = "awaiting_main_choice"

	stageDineIn              = "dine_in"
	stageAwaitDetails        = "await_details"
	stageAwaitBookDetails    = "await_book_details"
	stageAwaitBookingInfo    = "await_booking_info"
	stageAwaitConfirmBooking = "await_confirm_booking"

	stageAwaitingCuisine     = "awaiting_cuisine"
	stageRestaurantSelection = "awaiting_restaurant_selection"
	stageDishSelection       = "awaiting_dish_selection"
	stageAwaitingAddress     = "awaiting_address"
	stageAwaitConfirmOrder   = "awaiting_confirm_order"

	stageAwaitingOrderID  = "awaiting_order_id"
	stageAwaitingDineInID = "awaiting_dine_in_id"
	stageConfirmCancel    = "awaiting_confirm_cancel"
)

const notSupportedReply = "Sorry, that intent is not supported."

// Service handles one fulfillment webhook call per invocation.
type Service interface {
	// HandleFulfillment dispatches the request to the matching intent
	// handler. A returned error means a collaborator failed; the HTTP
	// boundary converts it into a plain-text reply, never a non-200.
	HandleFulfillment(ctx context.Context, req *models.WebhookRequest) (*models.WebhookResponse, error)
}

type handlerFunc func(ctx context.Context, req *models.WebhookRequest) (*models.WebhookResponse, error)

// DefaultFulfillmentService is the production fulfillment engine.
type DefaultFulfillmentService struct {
	Restaurants restaurantRepo.RestaurantRepository
	Menus       menuRepo.MenuRepository
	Orders      orderRepo.OrderRepository
	Dinein      dineinRepo.DineinRepository
	Logger      *zap.Logger

	// now is swapped out by tests; booking dates derive from it.
	now func() time.Time

	handlers map[string]handlerFunc
}

// NewDefaultFulfillmentService wires the engine and registers every
// intent handler. The registry is fixed at construction.
func NewDefaultFulfillmentService(
	restaurants restaurantRepo.RestaurantRepository,
	menus menuRepo.MenuRepository,
	orders orderRepo.OrderRepository,
	dinein dineinRepo.DineinRepository,
	logger *zap.Logger,
) *DefaultFulfillmentService {
	s := &DefaultFulfillmentService{
		Restaurants: restaurants,
		Menus:       menus,
		Orders:      orders,
		Dinein:      dinein,
		Logger:      logger,
		now:         time.Now,
	}
	s.handlers = map[string]handlerFunc{
		IntentWelcome: s.handleWelcome,

		IntentDineIn:            s.handleDineIn,
		IntentRestaurantForDine: s.handleRestaurantForDine,
		IntentMenuForDine:       s.handleMenuForDine,
		IntentDetailsForDine:    s.handleDetailsForDine,
		IntentBookTableForDine:  s.handleBookTablePrompt,
		IntentBookingDetails:    s.handleBookingDetails,
		IntentConfirmBooking:    s.handleConfirmBooking,

		IntentDelivery:              s.handleDelivery,
		IntentRestaurantForDelivery: s.handleRestaurantForDelivery,
		IntentMenuForDelivery:       s.handleMenuForDelivery,
		IntentAddDish:               s.handleAddDish,
		IntentUpdateDish:            s.handleUpdateDish,
		IntentRemoveDish:            s.handleRemoveDish,
		IntentProceedToAddress:      s.handleProceedToAddress,
		IntentDeliveryAddress:       s.handleDeliveryAddress,
		IntentConfirmOrder:          s.handleConfirmOrder,

		IntentTrackOrder:      s.handleTrackOrderPrompt,
		IntentTrackOrderByID:  s.handleTrackOrderByID,
		IntentTrackDineIn:     s.handleTrackDineInPrompt,
		IntentTrackDineInByID: s.handleTrackDineInByID,
		IntentCancelConfirm:   s.handleCancelConfirm,
		IntentCancelCommit:    s.handleCancelCommit,
	}
	return s
}

// HandleFulfillment looks the intent up in the registry; an unmapped
// intent is not an error, it gets the fixed "not supported" reply.
func (s *DefaultFulfillmentService) HandleFulfillment(ctx context.Context, req *models.WebhookRequest) (*models.WebhookResponse, error) {
	intent := req.QueryResult.Intent.DisplayName
	handler, ok := s.handlers[intent]
	if !ok {
		s.Logger.Info("Unsupported intent", zap.String("intent", intent))
		return respond(notSupportedReply), nil
	}

	s.Logger.Debug("Dispatching intent",
		zap.String("intent", intent),
		zap.String("session", req.Session))
	return handler(ctx, req)
}

// respond builds a response from an utterance and the next context set.
func respond(text string, contexts ...models.WebhookContext) *models.WebhookResponse {
	return &models.WebhookResponse{
		FulfillmentText: text,
		OutputContexts:  contexts,
	}
}

// mainChoiceContext is the safe root every failed transition resets to.
func mainChoiceContext(session string) models.WebhookContext {
	return models.WebhookContext{
		Name:          contextName(session, stageMainChoice),
		LifespanCount: defaultLifespan,
	}
}

// apologyReset degrades a failed transition into an apology and a
// restart of the main menu.
func apologyReset(session, text string) *models.WebhookResponse {
	return respond(text, mainChoiceContext(session))
}
