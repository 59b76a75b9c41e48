package fulfillment

import (
	"context"
	"fmt"
	"strings"

	"dinebot/models"
)

// Tracking and cancellation are reachable from any point in the
// conversation: a prompt stage collects the numeric id, and
// cancellation is two-phase: the staged target sits in an
// awaiting_confirm_cancel context until the user confirms.

func (s *DefaultFulfillmentService) handleTrackOrderPrompt(_ context.Context, req *models.WebhookRequest) (*models.WebhookResponse, error) {
	return respond(
		"Sure — what's your order id?",
		models.WebhookContext{
			Name:          contextName(req.Session, stageAwaitingOrderID),
			LifespanCount: defaultLifespan,
		},
	), nil
}

func (s *DefaultFulfillmentService) handleTrackOrderByID(ctx context.Context, req *models.WebhookRequest) (*models.WebhookResponse, error) {
	idCtx := findContext(req.QueryResult.OutputContexts, stageAwaitingOrderID)
	orderID := firstInt(req.QueryResult.Parameters["orderId"])
	if orderID == 0 {
		orderID = firstInt(ctxParam(idCtx, "orderId"))
	}
	if idCtx == nil || orderID == 0 {
		return apologyReset(req.Session, "Sorry, I need a valid order id to track."), nil
	}

	summary, err := s.Orders.TrackOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("order tracking failed: %w", err)
	}
	if summary == nil {
		return apologyReset(req.Session,
			fmt.Sprintf("I couldn't find an order with id %d.", orderID)), nil
	}

	items := make([]string, 0, len(summary.Items))
	for _, it := range summary.Items {
		items = append(items, fmt.Sprintf("%d × %s", it.Quantity, it.ItemName))
	}
	return respond(
		fmt.Sprintf("Order #%d is %s. Items: %s. Total ₹%.2f.",
			summary.ID, summary.Status, strings.Join(items, ", "), summary.TotalAmount),
		mainChoiceContext(req.Session),
	), nil
}

func (s *DefaultFulfillmentService) handleTrackDineInPrompt(_ context.Context, req *models.WebhookRequest) (*models.WebhookResponse, error) {
	return respond(
		"Sure — what's your booking id?",
		models.WebhookContext{
			Name:          contextName(req.Session, stageAwaitingDineInID),
			LifespanCount: defaultLifespan,
		},
	), nil
}

func (s *DefaultFulfillmentService) handleTrackDineInByID(ctx context.Context, req *models.WebhookRequest) (*models.WebhookResponse, error) {
	idCtx := findContext(req.QueryResult.OutputContexts, stageAwaitingDineInID)
	bookingID := firstInt(req.QueryResult.Parameters["dineInId"])
	if bookingID == 0 {
		bookingID = firstInt(ctxParam(idCtx, "dineInId"))
	}
	if idCtx == nil || bookingID == 0 {
		return apologyReset(req.Session, "Sorry, I need a valid booking id to track."), nil
	}

	booking, err := s.Dinein.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("booking tracking failed: %w", err)
	}
	if booking == nil {
		return apologyReset(req.Session,
			fmt.Sprintf("I couldn't find a booking with id %d.", bookingID)), nil
	}

	return respond(
		fmt.Sprintf("Booking #%d at %s on %s at %s for %d people is %s.",
			booking.ID, booking.RestaurantName, booking.BookingDate,
			booking.BookingTime, booking.PeopleCount, booking.Status),
		mainChoiceContext(req.Session),
	), nil
}

// handleCancelConfirm fetches and displays the cancellation target(s)
// and stages them; nothing is cancelled yet.
func (s *DefaultFulfillmentService) handleCancelConfirm(ctx context.Context, req *models.WebhookRequest) (*models.WebhookResponse, error) {
	orderID := firstInt(req.QueryResult.Parameters["orderId"])
	if orderID == 0 {
		orderID = firstInt(ctxParam(findContext(req.QueryResult.OutputContexts, stageAwaitingOrderID), "orderId"))
	}
	dineInID := firstInt(req.QueryResult.Parameters["dineInId"])
	if dineInID == 0 {
		dineInID = firstInt(ctxParam(findContext(req.QueryResult.OutputContexts, stageAwaitingDineInID), "dineInId"))
	}
	if orderID == 0 && dineInID == 0 {
		return apologyReset(req.Session, "Sorry, I need an order id or a booking id to cancel."), nil
	}

	var described []string
	staged := map[string]any{}

	if orderID != 0 {
		summary, err := s.Orders.TrackOrder(ctx, orderID)
		if err != nil {
			return nil, fmt.Errorf("order lookup failed: %w", err)
		}
		if summary == nil {
			return apologyReset(req.Session,
				fmt.Sprintf("I couldn't find an order with id %d.", orderID)), nil
		}
		described = append(described, fmt.Sprintf("order #%d (%s, ₹%.2f)", summary.ID, summary.Status, summary.TotalAmount))
		staged["orderId"] = orderID
	}

	if dineInID != 0 {
		booking, err := s.Dinein.GetBookingByID(ctx, dineInID)
		if err != nil {
			return nil, fmt.Errorf("booking lookup failed: %w", err)
		}
		if booking == nil {
			return apologyReset(req.Session,
				fmt.Sprintf("I couldn't find a booking with id %d.", dineInID)), nil
		}
		described = append(described, fmt.Sprintf("booking #%d at %s (%s %s)",
			booking.ID, booking.RestaurantName, booking.BookingDate, booking.BookingTime))
		staged["dineInId"] = dineInID
	}

	return respond(
		fmt.Sprintf("You want to cancel %s — say yes to confirm.", strings.Join(described, " and ")),
		models.WebhookContext{
			Name:          contextName(req.Session, stageConfirmCancel),
			LifespanCount: defaultLifespan,
			Parameters:    staged,
		},
	), nil
}

// handleCancelCommit performs the staged cancellation(s); each staged
// id is cancelled exactly once.
func (s *DefaultFulfillmentService) handleCancelCommit(ctx context.Context, req *models.WebhookRequest) (*models.WebhookResponse, error) {
	staged := findContext(req.QueryResult.OutputContexts, stageConfirmCancel)
	if staged == nil {
		return apologyReset(req.Session, "There is no pending cancellation."), nil
	}

	orderID := firstInt(ctxParam(staged, "orderId"))
	dineInID := firstInt(ctxParam(staged, "dineInId"))
	if orderID == 0 && dineInID == 0 {
		return apologyReset(req.Session, "There is no pending cancellation."), nil
	}

	var done []string
	if orderID != 0 {
		if err := s.Orders.CancelOrder(ctx, orderID); err != nil {
			return nil, fmt.Errorf("order cancel failed: %w", err)
		}
		done = append(done, fmt.Sprintf("order #%d", orderID))
	}
	if dineInID != 0 {
		if err := s.Dinein.CancelBooking(ctx, dineInID); err != nil {
			return nil, fmt.Errorf("booking cancel failed: %w", err)
		}
		done = append(done, fmt.Sprintf("booking #%d", dineInID))
	}

	return respond(
		fmt.Sprintf("Cancelled %s. Anything else? Type \"Delivery\" or \"Dine-in\".", strings.Join(done, " and ")),
		mainChoiceContext(req.Session),
	), nil
}
