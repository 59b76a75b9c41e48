package fulfillment

import (
	"context"
	"testing"

	"dinebot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackOrderByIDRequiresPromptContext(t *testing.T) {
	env := newTestEnv()

	// An id without the prompt context is rejected.
	resp, err := env.svc.HandleFulfillment(context.Background(),
		webhookReq(IntentTrackOrderByID, map[string]any{"orderId": float64(42)}))
	require.NoError(t, err)
	assert.Contains(t, resp.FulfillmentText, "valid order id")
	assert.Contains(t, contextStages(resp), contextName(testSession, stageMainChoice))
}

func TestTrackOrderByIDReportsStatus(t *testing.T) {
	env := newTestEnv()
	env.orders.trackResult = &models.OrderSummary{
		Order: models.Order{ID: 42, Status: "preparing", TotalAmount: 300},
		Items: []models.OrderItem{{ItemName: "Pizza", Quantity: 2, Price: 150}},
	}

	resp, err := env.svc.HandleFulfillment(context.Background(),
		webhookReq(IntentTrackOrderByID,
			map[string]any{"orderId": float64(42)},
			stageContext(stageAwaitingOrderID, nil)))
	require.NoError(t, err)

	assert.Contains(t, resp.FulfillmentText, "Order #42 is preparing")
	assert.Contains(t, resp.FulfillmentText, "2 × Pizza")
}

func TestTrackOrderByIDUnknownOrderResets(t *testing.T) {
	env := newTestEnv()

	resp, err := env.svc.HandleFulfillment(context.Background(),
		webhookReq(IntentTrackOrderByID,
			map[string]any{"orderId": float64(9)},
			stageContext(stageAwaitingOrderID, nil)))
	require.NoError(t, err)

	assert.Contains(t, resp.FulfillmentText, "couldn't find an order with id 9")
	assert.Contains(t, contextStages(resp), contextName(testSession, stageMainChoice))
}

func TestTrackDineInByIDReportsBooking(t *testing.T) {
	env := newTestEnv()
	env.dinein.getBooking = &models.Booking{
		ID: 17, RestaurantName: "Olive Garden",
		BookingDate: "2025-06-15", BookingTime: "19:00:00",
		PeopleCount: 4, Status: "booked",
	}

	resp, err := env.svc.HandleFulfillment(context.Background(),
		webhookReq(IntentTrackDineInByID,
			map[string]any{"dineInId": float64(17)},
			stageContext(stageAwaitingDineInID, nil)))
	require.NoError(t, err)

	assert.Contains(t, resp.FulfillmentText, "Booking #17 at Olive Garden")
	assert.Contains(t, resp.FulfillmentText, "booked")
}

func TestCancelConfirmStagesOrderWithoutCancelling(t *testing.T) {
	env := newTestEnv()
	env.orders.trackResult = &models.OrderSummary{
		Order: models.Order{ID: 42, Status: "preparing", TotalAmount: 300},
	}

	resp, err := env.svc.HandleFulfillment(context.Background(),
		webhookReq(IntentCancelConfirm, map[string]any{"orderId": float64(42)}))
	require.NoError(t, err)

	assert.Contains(t, resp.FulfillmentText, "order #42")
	assert.Contains(t, resp.FulfillmentText, "say yes to confirm")
	assert.Empty(t, env.orders.cancelCalls, "confirm stage never cancels")
	assert.Empty(t, env.dinein.cancelCalls)

	require.Len(t, resp.OutputContexts, 1)
	ctx := resp.OutputContexts[0]
	assert.Equal(t, contextName(testSession, stageConfirmCancel), ctx.Name)
	assert.Equal(t, 42, ctx.Parameters["orderId"])
	assert.NotContains(t, ctx.Parameters, "dineInId")
}

func TestCancelCommitCancelsStagedOrderExactlyOnce(t *testing.T) {
	env := newTestEnv()

	resp, err := env.svc.HandleFulfillment(context.Background(),
		webhookReq(IntentCancelCommit, nil,
			stageContext(stageConfirmCancel, map[string]any{"orderId": float64(42)})))
	require.NoError(t, err)

	assert.Equal(t, []int{42}, env.orders.cancelCalls)
	assert.Empty(t, env.dinein.cancelCalls, "only staged targets are cancelled")
	assert.Contains(t, resp.FulfillmentText, "Cancelled order #42")
	assert.Contains(t, contextStages(resp), contextName(testSession, stageMainChoice))
}

func TestCancelCommitCancelsBothStagedTargets(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.HandleFulfillment(context.Background(),
		webhookReq(IntentCancelCommit, nil,
			stageContext(stageConfirmCancel, map[string]any{
				"orderId":  float64(42),
				"dineInId": float64(17),
			})))
	require.NoError(t, err)

	assert.Equal(t, []int{42}, env.orders.cancelCalls)
	assert.Equal(t, []int{17}, env.dinein.cancelCalls)
}

func TestCancelCommitWithoutStagedTargetResets(t *testing.T) {
	env := newTestEnv()

	resp, err := env.svc.HandleFulfillment(context.Background(),
		webhookReq(IntentCancelCommit, nil))
	require.NoError(t, err)

	assert.Contains(t, resp.FulfillmentText, "no pending cancellation")
	assert.Empty(t, env.orders.cancelCalls)
	assert.Empty(t, env.dinein.cancelCalls)
}
