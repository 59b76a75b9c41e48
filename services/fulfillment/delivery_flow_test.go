package fulfillment

import (
	"context"
	"testing"

	"dinebot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dishSelCtx(cart []models.CartItem) models.WebhookContext {
	return stageContext(stageDishSelection, map[string]any{
		"cuisine":        "Italian",
		"location":       "Indiranagar",
		"restaurantname": "Olive Garden",
		"restaurantId":   float64(42),
		"cart":           cart,
	})
}

func TestRestaurantForDeliveryFiltersHomeDelivery(t *testing.T) {
	env := newTestEnv()
	env.restaurants.restaurants = []models.Restaurant{{ID: 1, Name: "Pizza Hub"}}

	resp, err := env.svc.HandleFulfillment(context.Background(), webhookReq(IntentRestaurantForDelivery, map[string]any{
		"cuisine":  "Italian",
		"location": "HSR",
	}))
	require.NoError(t, err)

	require.Len(t, env.restaurants.filterCalls, 1)
	assert.True(t, env.restaurants.filterCalls[0].HomeDelivery)
	assert.False(t, env.restaurants.filterCalls[0].DineInOnly)

	assert.Contains(t, resp.FulfillmentText, "Pizza Hub")
	require.Len(t, resp.OutputContexts, 1)
	assert.Equal(t, contextName(testSession, stageRestaurantSelection), resp.OutputContexts[0].Name)
}

func TestAddDishMergesIntoCart(t *testing.T) {
	env := newTestEnv()

	cart := []models.CartItem{{DishName: "pizza", Quantity: 1}}
	resp, err := env.svc.HandleFulfillment(context.Background(),
		webhookReq(IntentAddDish, map[string]any{"dishname": "Pizza", "quantity": float64(2)}, dishSelCtx(cart)))
	require.NoError(t, err)

	assert.Contains(t, resp.FulfillmentText, "3 × pizza")
	require.Len(t, resp.OutputContexts, 1)
	ctx := resp.OutputContexts[0]
	assert.Equal(t, contextName(testSession, stageDishSelection), ctx.Name, "cart edits self-loop")
	assert.Equal(t, []models.CartItem{{DishName: "pizza", Quantity: 3}}, cartItems(ctx.Parameters["cart"]))
}

func TestAddDishWithoutNamePromptsInPlace(t *testing.T) {
	env := newTestEnv()

	resp, err := env.svc.HandleFulfillment(context.Background(),
		webhookReq(IntentAddDish, nil, dishSelCtx(nil)))
	require.NoError(t, err)

	assert.Equal(t, "Which dish should I add?", resp.FulfillmentText)
	require.Len(t, resp.OutputContexts, 1)
	assert.Equal(t, contextName(testSession, stageDishSelection), resp.OutputContexts[0].Name)
}

func TestAddDishWithoutSelectionContextResets(t *testing.T) {
	env := newTestEnv()

	resp, err := env.svc.HandleFulfillment(context.Background(),
		webhookReq(IntentAddDish, map[string]any{"dishname": "Pizza"}))
	require.NoError(t, err)

	assert.Contains(t, resp.FulfillmentText, "lost your order")
	require.Len(t, resp.OutputContexts, 1)
	assert.Equal(t, contextName(testSession, stageMainChoice), resp.OutputContexts[0].Name)
}

func TestRemoveDishNotInCart(t *testing.T) {
	env := newTestEnv()

	cart := []models.CartItem{{DishName: "Pizza", Quantity: 2}}
	resp, err := env.svc.HandleFulfillment(context.Background(),
		webhookReq(IntentRemoveDish, map[string]any{"dishname": "Burger"}, dishSelCtx(cart)))
	require.NoError(t, err)

	assert.Contains(t, resp.FulfillmentText, "Burger is not in your cart")
	require.Len(t, resp.OutputContexts, 1)
	assert.Equal(t, cart, cartItems(resp.OutputContexts[0].Parameters["cart"]))
}

func TestProceedToAddressWithEmptyCartStays(t *testing.T) {
	env := newTestEnv()

	resp, err := env.svc.HandleFulfillment(context.Background(),
		webhookReq(IntentProceedToAddress, nil, dishSelCtx(nil)))
	require.NoError(t, err)

	assert.Contains(t, resp.FulfillmentText, "cart is empty")
	require.Len(t, resp.OutputContexts, 1)
	assert.Equal(t, contextName(testSession, stageDishSelection), resp.OutputContexts[0].Name)
}

func TestProceedToAddressCarriesCart(t *testing.T) {
	env := newTestEnv()

	cart := []models.CartItem{{DishName: "Pizza", Quantity: 2}}
	resp, err := env.svc.HandleFulfillment(context.Background(),
		webhookReq(IntentProceedToAddress, nil, dishSelCtx(cart)))
	require.NoError(t, err)

	require.Len(t, resp.OutputContexts, 1)
	ctx := resp.OutputContexts[0]
	assert.Equal(t, contextName(testSession, stageAwaitingAddress), ctx.Name)
	assert.Equal(t, cart, cartItems(ctx.Parameters["cart"]))
	assert.Equal(t, 42, firstInt(ctx.Parameters["restaurantId"]))
}

func TestDeliveryAddressFallsBackToQueryText(t *testing.T) {
	env := newTestEnv()

	addr := stageContext(stageAwaitingAddress, map[string]any{
		"restaurantname": "Olive Garden",
		"restaurantId":   float64(42),
		"cart":           []models.CartItem{{DishName: "Pizza", Quantity: 2}},
	})
	req := webhookReq(IntentDeliveryAddress, nil, addr)
	req.QueryResult.QueryText = "14 MG Road, Bangalore"

	resp, err := env.svc.HandleFulfillment(context.Background(), req)
	require.NoError(t, err)

	assert.Contains(t, resp.FulfillmentText, "14 MG Road, Bangalore")
	require.Len(t, resp.OutputContexts, 1)
	ctx := resp.OutputContexts[0]
	assert.Equal(t, contextName(testSession, stageAwaitConfirmOrder), ctx.Name)
	assert.Equal(t, "14 MG Road, Bangalore", ctx.Parameters["address"])
}

func TestConfirmOrderPlacesOrder(t *testing.T) {
	env := newTestEnv()
	env.orders.receipt = &models.OrderReceipt{OrderID: 77, TotalPrice: 649.50}

	confirm := stageContext(stageAwaitConfirmOrder, map[string]any{
		"restaurantId": float64(42),
		"cart": []models.CartItem{
			{DishName: "Pizza", Quantity: 2},
			{DishName: "Coke", Quantity: 1},
		},
		"address": "14 MG Road",
	})
	resp, err := env.svc.HandleFulfillment(context.Background(),
		webhookReq(IntentConfirmOrder, nil, confirm))
	require.NoError(t, err)

	require.Len(t, env.orders.placeCalls, 1)
	call := env.orders.placeCalls[0]
	assert.Equal(t, chatbotUserID, call.userID)
	assert.Equal(t, 42, call.restaurantID)
	assert.Equal(t, []models.OrderLine{
		{DishName: "Pizza", Quantity: 2},
		{DishName: "Coke", Quantity: 1},
	}, call.items)

	assert.Contains(t, resp.FulfillmentText, "Order #77 placed! Total ₹649.50")
	require.Len(t, resp.OutputContexts, 1)
	assert.Equal(t, contextName(testSession, stageMainChoice), resp.OutputContexts[0].Name)
}

func TestConfirmOrderEmptyCartDoesNotPlace(t *testing.T) {
	env := newTestEnv()

	confirm := stageContext(stageAwaitConfirmOrder, map[string]any{
		"restaurantId": float64(42),
		"cart":         []any{},
	})
	resp, err := env.svc.HandleFulfillment(context.Background(),
		webhookReq(IntentConfirmOrder, nil, confirm))
	require.NoError(t, err)

	assert.Contains(t, resp.FulfillmentText, "nothing to confirm")
	assert.Empty(t, env.orders.placeCalls)
	require.Len(t, resp.OutputContexts, 1)
	assert.Equal(t, contextName(testSession, stageMainChoice), resp.OutputContexts[0].Name)
}
