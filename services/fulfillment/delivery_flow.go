package fulfillment

import (
	"context"
	"errors"
	"fmt"

	orderRepo "dinebot/database/repository/order"
	restaurantRepo "dinebot/database/repository/restaurant"
	"dinebot/models"
)

// Delivery flow: cuisine/location → restaurant → dish selection → cart
// edits (a self-loop on the dish-selection stage) → address → order
// confirmation. The cart rides along inside the dish-selection context
// and is discarded once the order is placed or the flow is abandoned.

func (s *DefaultFulfillmentService) handleDelivery(_ context.Context, req *models.WebhookRequest) (*models.WebhookResponse, error) {
	return respond(
		"Sure! Which cuisine and location should I order from?",
		models.WebhookContext{
			Name:          contextName(req.Session, stageAwaitingCuisine),
			LifespanCount: defaultLifespan,
		},
	), nil
}

func (s *DefaultFulfillmentService) handleRestaurantForDelivery(ctx context.Context, req *models.WebhookRequest) (*models.WebhookResponse, error) {
	cuisine := firstString(req.QueryResult.Parameters["cuisine"])
	location := firstString(req.QueryResult.Parameters["location"])

	list, err := s.Restaurants.FilterAdvanced(ctx, models.RestaurantFilter{
		Cuisine:      cuisine,
		Area:         location,
		HomeDelivery: true,
	})
	if err != nil {
		return nil, fmt.Errorf("restaurant search failed: %w", err)
	}
	if len(list) == 0 {
		return apologyReset(req.Session,
			fmt.Sprintf("No %s restaurants deliver in %s. Let's start over — type \"Delivery\" or \"Dine-in\".", cuisine, location)), nil
	}

	return respond(
		fmt.Sprintf("These %s places deliver in %s: %s. Which one?", cuisine, location, restaurantNames(list, 10)),
		models.WebhookContext{
			Name:          contextName(req.Session, stageRestaurantSelection),
			LifespanCount: defaultLifespan,
			Parameters:    map[string]any{"cuisine": cuisine, "location": location},
		},
	), nil
}

func (s *DefaultFulfillmentService) handleMenuForDelivery(ctx context.Context, req *models.WebhookRequest) (*models.WebhookResponse, error) {
	selCtx := findContext(req.QueryResult.OutputContexts, stageRestaurantSelection)
	cuisine := firstString(ctxParam(selCtx, "cuisine"))
	location := firstString(ctxParam(selCtx, "location"))

	restaurantName := firstString(req.QueryResult.Parameters["restaurantname"])
	if restaurantName == "" {
		restaurantName = firstString(ctxParam(selCtx, "restaurantname"))
	}
	if restaurantName == "" {
		return apologyReset(req.Session, "Sorry, I didn't catch which restaurant."), nil
	}

	restaurantID, err := s.Restaurants.SearchByNameAndArea(ctx, restaurantName, location)
	if err != nil {
		if errors.Is(err, restaurantRepo.ErrNotFound) {
			return apologyReset(req.Session,
				fmt.Sprintf("Sorry, I couldn't find %s in %s.", restaurantName, location)), nil
		}
		return nil, fmt.Errorf("restaurant lookup failed: %w", err)
	}

	items, err := s.Menus.GetByRestaurantID(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("menu lookup failed: %w", err)
	}
	if len(items) == 0 {
		return apologyReset(req.Session,
			fmt.Sprintf("No menu items found for %s.", restaurantName)), nil
	}

	return respond(
		fmt.Sprintf("Here's the menu at %s:\n%s\nTell me a dish to add it to your cart.",
			restaurantName, menuListing(items, 10)),
		s.dishSelectionContext(req.Session, cuisine, location, restaurantName, restaurantID, nil),
	), nil
}

// dishSelectionContext re-emits the dish-selection stage carrying the
// cart and restaurant identity; every cart edit loops back here.
func (s *DefaultFulfillmentService) dishSelectionContext(session, cuisine, location, restaurantName string, restaurantID int, cart []models.CartItem) models.WebhookContext {
	return models.WebhookContext{
		Name:          contextName(session, stageDishSelection),
		LifespanCount: defaultLifespan,
		Parameters: map[string]any{
			"cuisine":        cuisine,
			"location":       location,
			"restaurantname": restaurantName,
			"restaurantId":   restaurantID,
			"cart":           cart,
		},
	}
}

// cartEditState pulls the dish-selection context apart for the cart
// mutation handlers.
type cartEditState struct {
	cuisine        string
	location       string
	restaurantName string
	restaurantID   int
	cart           []models.CartItem
}

func dishSelectionState(req *models.WebhookRequest) (*cartEditState, bool) {
	c := findContext(req.QueryResult.OutputContexts, stageDishSelection)
	if c == nil {
		return nil, false
	}
	st := &cartEditState{
		cuisine:        firstString(ctxParam(c, "cuisine")),
		location:       firstString(ctxParam(c, "location")),
		restaurantName: firstString(ctxParam(c, "restaurantname")),
		restaurantID:   firstInt(ctxParam(c, "restaurantId")),
		cart:           cartItems(ctxParam(c, "cart")),
	}
	return st, st.restaurantID != 0
}

func (s *DefaultFulfillmentService) handleAddDish(_ context.Context, req *models.WebhookRequest) (*models.WebhookResponse, error) {
	st, ok := dishSelectionState(req)
	if !ok {
		return apologyReset(req.Session, "Sorry, I lost your order. Let's start over."), nil
	}
	dish := firstString(req.QueryResult.Parameters["dishname"])
	if dish == "" {
		return s.cartReply(req.Session, st, "Which dish should I add?"), nil
	}

	qty := firstInt(req.QueryResult.Parameters["quantity"])
	st.cart = addOrMerge(st.cart, dish, qty)
	return s.cartReply(req.Session, st,
		fmt.Sprintf("Added %s. Cart: %s. Anything else, or shall we proceed to the address?", dish, summarizeCart(st.cart))), nil
}

func (s *DefaultFulfillmentService) handleUpdateDish(_ context.Context, req *models.WebhookRequest) (*models.WebhookResponse, error) {
	st, ok := dishSelectionState(req)
	if !ok {
		return apologyReset(req.Session, "Sorry, I lost your order. Let's start over."), nil
	}
	dish := firstString(req.QueryResult.Parameters["dishname"])
	if dish == "" {
		return s.cartReply(req.Session, st, "Which dish should I update?"), nil
	}

	delta := firstInt(req.QueryResult.Parameters["quantity"])
	st.cart = updateOrInsert(st.cart, dish, delta)
	return s.cartReply(req.Session, st,
		fmt.Sprintf("Done. Cart: %s.", summarizeCart(st.cart))), nil
}

func (s *DefaultFulfillmentService) handleRemoveDish(_ context.Context, req *models.WebhookRequest) (*models.WebhookResponse, error) {
	st, ok := dishSelectionState(req)
	if !ok {
		return apologyReset(req.Session, "Sorry, I lost your order. Let's start over."), nil
	}
	dish := firstString(req.QueryResult.Parameters["dishname"])
	if dish == "" {
		return s.cartReply(req.Session, st, "Which dish should I remove?"), nil
	}

	qty := firstInt(req.QueryResult.Parameters["quantity"])
	cart, found := removeFromCart(st.cart, dish, qty)
	if !found {
		return s.cartReply(req.Session, st,
			fmt.Sprintf("%s is not in your cart. Cart: %s.", dish, summarizeCart(st.cart))), nil
	}
	st.cart = cart
	return s.cartReply(req.Session, st,
		fmt.Sprintf("Removed %s. Cart: %s.", dish, summarizeCart(st.cart))), nil
}

// cartReply re-emits the dish-selection self-loop with the current cart.
func (s *DefaultFulfillmentService) cartReply(session string, st *cartEditState, text string) *models.WebhookResponse {
	return respond(text,
		s.dishSelectionContext(session, st.cuisine, st.location, st.restaurantName, st.restaurantID, st.cart))
}

func (s *DefaultFulfillmentService) handleProceedToAddress(_ context.Context, req *models.WebhookRequest) (*models.WebhookResponse, error) {
	st, ok := dishSelectionState(req)
	if !ok {
		return apologyReset(req.Session, "Sorry, I lost your order. Let's start over."), nil
	}
	if len(st.cart) == 0 {
		return s.cartReply(req.Session, st, "Your cart is empty — add a dish first."), nil
	}

	return respond(
		fmt.Sprintf("Cart: %s. Where should we deliver?", summarizeCart(st.cart)),
		models.WebhookContext{
			Name:          contextName(req.Session, stageAwaitingAddress),
			LifespanCount: defaultLifespan,
			Parameters: map[string]any{
				"restaurantname": st.restaurantName,
				"restaurantId":   st.restaurantID,
				"cart":           st.cart,
			},
		},
	), nil
}

func (s *DefaultFulfillmentService) handleDeliveryAddress(_ context.Context, req *models.WebhookRequest) (*models.WebhookResponse, error) {
	addrCtx := findContext(req.QueryResult.OutputContexts, stageAwaitingAddress)
	restaurantID := firstInt(ctxParam(addrCtx, "restaurantId"))
	cart := cartItems(ctxParam(addrCtx, "cart"))
	if restaurantID == 0 {
		return apologyReset(req.Session, "Sorry, I lost your order. Let's start over."), nil
	}

	address := firstString(req.QueryResult.Parameters["address"])
	if address == "" {
		address = firstString(req.QueryResult.QueryText)
	}
	if address == "" {
		return respond(
			"Please tell me the delivery address.",
			models.WebhookContext{
				Name:          contextName(req.Session, stageAwaitingAddress),
				LifespanCount: defaultLifespan,
				Parameters:    addrCtx.Parameters,
			},
		), nil
	}

	return respond(
		fmt.Sprintf("Deliver %s to %s — shall I place the order?", summarizeCart(cart), address),
		models.WebhookContext{
			Name:          contextName(req.Session, stageAwaitConfirmOrder),
			LifespanCount: defaultLifespan,
			Parameters: map[string]any{
				"restaurantname": firstString(ctxParam(addrCtx, "restaurantname")),
				"restaurantId":   restaurantID,
				"cart":           cart,
				"address":        address,
			},
		},
	), nil
}

func (s *DefaultFulfillmentService) handleConfirmOrder(ctx context.Context, req *models.WebhookRequest) (*models.WebhookResponse, error) {
	confirmCtx := findContext(req.QueryResult.OutputContexts, stageAwaitConfirmOrder)
	restaurantID := firstInt(ctxParam(confirmCtx, "restaurantId"))
	cart := cartItems(ctxParam(confirmCtx, "cart"))
	if restaurantID == 0 {
		return apologyReset(req.Session, "Sorry, I lost your order. Let's start over."), nil
	}
	if len(cart) == 0 {
		return apologyReset(req.Session, "There is nothing to confirm — your cart is empty."), nil
	}

	lines := make([]models.OrderLine, 0, len(cart))
	for _, item := range cart {
		lines = append(lines, models.OrderLine{DishName: item.DishName, Quantity: item.Quantity})
	}

	receipt, err := s.Orders.PlaceOrder(ctx, chatbotUserID, restaurantID, lines)
	if err != nil {
		if errors.Is(err, orderRepo.ErrDishNotFound) {
			return apologyReset(req.Session, "Sorry, one of those dishes is no longer on the menu."), nil
		}
		return nil, fmt.Errorf("order placement failed: %w", err)
	}

	return respond(
		fmt.Sprintf("Order #%d placed! Total ₹%.2f. You can track it anytime with the order id. Anything else?",
			receipt.OrderID, receipt.TotalPrice),
		mainChoiceContext(req.Session),
	), nil
}
