package fulfillment

import (
	"encoding/json"
	"testing"

	"dinebot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindContextMatchesStageSuffix(t *testing.T) {
	contexts := []models.WebhookContext{
		{Name: contextName(testSession, stageMainChoice)},
		{Name: contextName(testSession, stageDishSelection), Parameters: map[string]any{"restaurantId": 7}},
	}

	got := findContext(contexts, stageDishSelection)
	require.NotNil(t, got)
	assert.Equal(t, 7, firstInt(ctxParam(got, "restaurantId")))

	assert.Nil(t, findContext(contexts, stageAwaitingAddress))
	assert.Nil(t, findContext(nil, stageMainChoice))
}

func TestFindContextIgnoresPartialNames(t *testing.T) {
	contexts := []models.WebhookContext{
		{Name: testSession + "/contexts/awaiting_dish_selection_done"},
	}
	assert.Nil(t, findContext(contexts, stageDishSelection))
}

func TestFirstString(t *testing.T) {
	assert.Equal(t, "Italian", firstString("  Italian "))
	assert.Equal(t, "Italian", firstString([]any{"Italian", "Chinese"}))
	assert.Equal(t, "Italian", firstString([]string{"Italian"}))
	assert.Equal(t, "42", firstString(float64(42)))
	assert.Equal(t, "", firstString(nil))
	assert.Equal(t, "", firstString([]any{}))
}

func TestFirstInt(t *testing.T) {
	assert.Equal(t, 4, firstInt(float64(4)))
	assert.Equal(t, 4, firstInt(4))
	assert.Equal(t, 4, firstInt("4"))
	assert.Equal(t, 4, firstInt([]any{float64(4)}))
	assert.Equal(t, 0, firstInt("four"))
	assert.Equal(t, 0, firstInt(nil))
}

func TestCtxParamNilSafe(t *testing.T) {
	assert.Nil(t, ctxParam(nil, "anything"))
	assert.Nil(t, ctxParam(&models.WebhookContext{}, "anything"))
}

func TestCartItemsDecodesJSONRoundTrip(t *testing.T) {
	cart := []models.CartItem{{DishName: "Pizza", Quantity: 2}, {DishName: "Coke", Quantity: 1}}

	// A cart echoed back by the platform arrives as generic JSON.
	raw, err := json.Marshal(cart)
	require.NoError(t, err)
	var echoed any
	require.NoError(t, json.Unmarshal(raw, &echoed))

	assert.Equal(t, cart, cartItems(echoed))
	assert.Equal(t, cart, cartItems(cart), "in-process carts pass through")
}

func TestCartItemsSkipsUnreadableLines(t *testing.T) {
	got := cartItems([]any{
		map[string]any{"dishName": "Pizza", "quantity": float64(2)},
		map[string]any{"quantity": float64(3)},
		map[string]any{"dishname": "Coke", "quantity": float64(0)},
		"not a map",
	})
	assert.Equal(t, []models.CartItem{{DishName: "Pizza", Quantity: 2}}, got)
}
