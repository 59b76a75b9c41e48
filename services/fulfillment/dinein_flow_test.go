package fulfillment

import (
	"context"
	"testing"

	"dinebot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// contextStages extracts the stage suffix of every emitted context.
func contextStages(resp *models.WebhookResponse) []string {
	stages := make([]string, 0, len(resp.OutputContexts))
	for _, c := range resp.OutputContexts {
		stages = append(stages, c.Name)
	}
	return stages
}

func TestWelcomeEmitsSingleMainChoiceContext(t *testing.T) {
	env := newTestEnv()

	resp, err := env.svc.HandleFulfillment(context.Background(), webhookReq(IntentWelcome, nil))
	require.NoError(t, err)

	assert.Equal(t, `Welcome to Zomato Chatbot! Type "Delivery" or "Dine-in" to continue.`, resp.FulfillmentText)
	require.Len(t, resp.OutputContexts, 1)
	assert.Equal(t, contextName(testSession, stageMainChoice), resp.OutputContexts[0].Name)
	assert.Equal(t, defaultLifespan, resp.OutputContexts[0].LifespanCount)
}

func TestUnsupportedIntentGetsFixedReply(t *testing.T) {
	env := newTestEnv()

	resp, err := env.svc.HandleFulfillment(context.Background(), webhookReq("SomeUnknownIntent", nil))
	require.NoError(t, err)
	assert.Equal(t, notSupportedReply, resp.FulfillmentText)
	assert.Empty(t, resp.OutputContexts)
}

func TestRestaurantForDineNoMatchesResetsToMainChoice(t *testing.T) {
	env := newTestEnv()

	resp, err := env.svc.HandleFulfillment(context.Background(), webhookReq(IntentRestaurantForDine, map[string]any{
		"cuisine":  "Italian",
		"location": "Koramangala",
	}))
	require.NoError(t, err)

	assert.Contains(t, resp.FulfillmentText, "No Italian restaurants found in Koramangala.")
	require.Len(t, resp.OutputContexts, 1)
	assert.Equal(t, contextName(testSession, stageMainChoice), resp.OutputContexts[0].Name)

	require.Len(t, env.restaurants.filterCalls, 1)
	assert.True(t, env.restaurants.filterCalls[0].DineInOnly)
	assert.Equal(t, "Italian", env.restaurants.filterCalls[0].Cuisine)
}

func TestRestaurantForDineListsMatches(t *testing.T) {
	env := newTestEnv()
	env.restaurants.restaurants = []models.Restaurant{{ID: 1, Name: "Olive Garden"}, {ID: 2, Name: "Pasta Street"}}

	resp, err := env.svc.HandleFulfillment(context.Background(), webhookReq(IntentRestaurantForDine, map[string]any{
		"cuisine":  []any{"Italian"},
		"location": "Indiranagar",
	}))
	require.NoError(t, err)

	assert.Contains(t, resp.FulfillmentText, "Olive Garden, Pasta Street")
	require.Len(t, resp.OutputContexts, 1)
	assert.Equal(t, contextName(testSession, stageDineIn), resp.OutputContexts[0].Name)
	assert.Equal(t, "Italian", resp.OutputContexts[0].Parameters["cuisine"])
}

func TestMenuForDineCarriesRestaurantIdentity(t *testing.T) {
	env := newTestEnv()
	env.restaurants.searchID = 42
	env.menus.items = []models.MenuItem{{ID: 1, ItemName: "Margherita"}, {ID: 2, ItemName: "Lasagna"}}

	req := webhookReq(IntentMenuForDine,
		map[string]any{"restaurantname": "Olive Garden"},
		stageContext(stageDineIn, map[string]any{"cuisine": "Italian", "location": "Indiranagar"}),
	)
	resp, err := env.svc.HandleFulfillment(context.Background(), req)
	require.NoError(t, err)

	assert.Contains(t, resp.FulfillmentText, "Margherita")
	require.Len(t, resp.OutputContexts, 1)
	ctx := resp.OutputContexts[0]
	assert.Equal(t, contextName(testSession, stageAwaitDetails), ctx.Name)
	assert.Equal(t, 42, ctx.Parameters["restaurantId"])
	assert.Equal(t, "Olive Garden", ctx.Parameters["restaurantname"])
}

func TestBookingDetailsMissingFieldsRepromptsWithoutPersisting(t *testing.T) {
	env := newTestEnv()

	info := stageContext(stageAwaitBookingInfo, map[string]any{
		"restaurantId":   float64(42),
		"restaurantname": "Olive Garden",
	})

	// Missing people.
	resp, err := env.svc.HandleFulfillment(context.Background(),
		webhookReq(IntentBookingDetails, map[string]any{"time": "7 pm"}, info))
	require.NoError(t, err)
	assert.Contains(t, resp.FulfillmentText, "both the time and the number of people")
	require.Len(t, resp.OutputContexts, 1)
	assert.Equal(t, contextName(testSession, stageAwaitBookingInfo), resp.OutputContexts[0].Name,
		"stays in the same stage")

	// Missing time.
	resp, err = env.svc.HandleFulfillment(context.Background(),
		webhookReq(IntentBookingDetails, map[string]any{"people": float64(4)}, info))
	require.NoError(t, err)
	assert.Contains(t, resp.FulfillmentText, "both the time and the number of people")

	assert.Empty(t, env.dinein.bookCalls, "no booking is persisted on a re-prompt")
}

func TestBookingDetailsStagesConfirmation(t *testing.T) {
	env := newTestEnv()

	info := stageContext(stageAwaitBookingInfo, map[string]any{
		"restaurantId":   float64(42),
		"restaurantname": "Olive Garden",
	})
	resp, err := env.svc.HandleFulfillment(context.Background(),
		webhookReq(IntentBookingDetails, map[string]any{"time": "7 pm", "people": float64(4)}, info))
	require.NoError(t, err)

	assert.Contains(t, resp.FulfillmentText, "4 people at 19:00")
	require.Len(t, resp.OutputContexts, 1)
	ctx := resp.OutputContexts[0]
	assert.Equal(t, contextName(testSession, stageAwaitConfirmBooking), ctx.Name)
	assert.Equal(t, "7 pm", ctx.Parameters["time"])
	assert.Equal(t, 4, ctx.Parameters["people"])
	assert.Empty(t, env.dinein.bookCalls)
}

func TestConfirmBookingPersistsWithLocalDate(t *testing.T) {
	env := newTestEnv()
	env.dinein.booking = &models.Booking{ID: 321}

	confirm := stageContext(stageAwaitConfirmBooking, map[string]any{
		"restaurantId":   float64(42),
		"restaurantname": "Olive Garden",
		"time":           "7 pm",
		"people":         float64(4),
	})
	resp, err := env.svc.HandleFulfillment(context.Background(),
		webhookReq(IntentConfirmBooking, nil, confirm))
	require.NoError(t, err)

	require.Len(t, env.dinein.bookCalls, 1)
	call := env.dinein.bookCalls[0]
	assert.Equal(t, chatbotUserID, call.UserID)
	assert.Equal(t, 42, call.RestaurantID)
	assert.Equal(t, "2025-06-15", call.BookingDate, "date comes from the injected clock, shifted to UTC+5:30")
	assert.Equal(t, "19:00:00", call.BookingTime)
	assert.Equal(t, 4, call.PeopleCount)

	assert.Contains(t, resp.FulfillmentText, "booking id 321")
	require.Len(t, resp.OutputContexts, 1)
	assert.Equal(t, contextName(testSession, stageMainChoice), resp.OutputContexts[0].Name)
}

func TestConfirmBookingSynthesizesMissingID(t *testing.T) {
	env := newTestEnv()
	env.dinein.booking = &models.Booking{ID: 0}

	confirm := stageContext(stageAwaitConfirmBooking, map[string]any{
		"restaurantId": float64(42),
		"time":         "7 pm",
		"people":       float64(2),
	})
	resp, err := env.svc.HandleFulfillment(context.Background(),
		webhookReq(IntentConfirmBooking, nil, confirm))
	require.NoError(t, err)

	assert.Contains(t, resp.FulfillmentText, "booking id ")
	assert.NotContains(t, resp.FulfillmentText, "booking id 0", "a reference number is synthesized")
}

func TestConfirmBookingWithoutStagedDetailsResets(t *testing.T) {
	env := newTestEnv()

	resp, err := env.svc.HandleFulfillment(context.Background(), webhookReq(IntentConfirmBooking, nil))
	require.NoError(t, err)

	assert.Contains(t, resp.FulfillmentText, "lost the booking details")
	assert.Empty(t, env.dinein.bookCalls)
	assert.Contains(t, contextStages(resp), contextName(testSession, stageMainChoice))
}
