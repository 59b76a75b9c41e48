package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	restaurantRepo "dinebot/database/repository/restaurant"
	"dinebot/models"

	"go.uber.org/zap"
)

// Dine-in flow: greeting → cuisine/location search → menu → details →
// booking prompt → booking details → confirmation. Every transition
// that cannot find its required state apologizes and resets to the
// main choice instead of erroring.

func (s *DefaultFulfillmentService) handleWelcome(_ context.Context, req *models.WebhookRequest) (*models.WebhookResponse, error) {
	return respond(
		`Welcome to Zomato Chatbot! Type "Delivery" or "Dine-in" to continue.`,
		mainChoiceContext(req.Session),
	), nil
}

func (s *DefaultFulfillmentService) handleDineIn(_ context.Context, req *models.WebhookRequest) (*models.WebhookResponse, error) {
	return respond(
		"Great! Which cuisine and location?",
		models.WebhookContext{
			Name:          contextName(req.Session, stageDineIn),
			LifespanCount: defaultLifespan,
		},
	), nil
}

func (s *DefaultFulfillmentService) handleRestaurantForDine(ctx context.Context, req *models.WebhookRequest) (*models.WebhookResponse, error) {
	cuisine := firstString(req.QueryResult.Parameters["cuisine"])
	location := firstString(req.QueryResult.Parameters["location"])

	list, err := s.Restaurants.FilterAdvanced(ctx, models.RestaurantFilter{
		Cuisine:    cuisine,
		Area:       location,
		DineInOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("restaurant search failed: %w", err)
	}

	if len(list) == 0 {
		return apologyReset(req.Session,
			fmt.Sprintf("No %s restaurants found in %s. Let's start over — type \"Delivery\" or \"Dine-in\".", cuisine, location)), nil
	}

	names := restaurantNames(list, 10)
	return respond(
		fmt.Sprintf("Here are some %s restaurants in %s: %s. Which one?", cuisine, location, names),
		models.WebhookContext{
			Name:          contextName(req.Session, stageDineIn),
			LifespanCount: defaultLifespan,
			Parameters:    map[string]any{"cuisine": cuisine, "location": location},
		},
	), nil
}

func (s *DefaultFulfillmentService) handleMenuForDine(ctx context.Context, req *models.WebhookRequest) (*models.WebhookResponse, error) {
	dineCtx := findContext(req.QueryResult.OutputContexts, stageDineIn)
	cuisine := firstString(ctxParam(dineCtx, "cuisine"))
	location := firstString(ctxParam(dineCtx, "location"))

	restaurantName := firstString(ctxParam(dineCtx, "restaurantname"))
	if restaurantName == "" {
		restaurantName = firstString(req.QueryResult.Parameters["restaurantname"])
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
		fmt.Sprintf("Here are some items in %s:\n%s\nWhat would you like?", restaurantName, menuListing(items, 10)),
		models.WebhookContext{
			Name:          contextName(req.Session, stageAwaitDetails),
			LifespanCount: defaultLifespan,
			Parameters: map[string]any{
				"cuisine":        cuisine,
				"location":       location,
				"restaurantname": restaurantName,
				"restaurantId":   restaurantID,
			},
		},
	), nil
}

func (s *DefaultFulfillmentService) handleDetailsForDine(ctx context.Context, req *models.WebhookRequest) (*models.WebhookResponse, error) {
	detailsCtx := findContext(req.QueryResult.OutputContexts, stageAwaitDetails)
	restaurantID := firstInt(ctxParam(detailsCtx, "restaurantId"))
	if restaurantID == 0 {
		return apologyReset(req.Session, "Sorry, I lost track of which restaurant you meant."), nil
	}

	rest, err := s.Restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, restaurantRepo.ErrNotFound) {
			return apologyReset(req.Session, "Sorry, I couldn't find that restaurant anymore."), nil
		}
		return nil, fmt.Errorf("restaurant details failed: %w", err)
	}

	detail := fmt.Sprintf(
		"%s\n%s\nArea: %s\nTimings: %s\nPhone: %s\nDinner rating: %.1f\nAverage cost for two: ₹%.0f\nSay \"book a table\" to reserve.",
		rest.Name, rest.FullAddress, rest.Area, rest.Timing, rest.PhoneNumber, rest.DinnerRating, rest.AverageCost,
	)

	// Stage the booking precursor and re-open the main menu in
	// parallel, so the user can either book or bail out.
	return respond(
		detail,
		models.WebhookContext{
			Name:          contextName(req.Session, stageAwaitBookDetails),
			LifespanCount: defaultLifespan,
			Parameters: map[string]any{
				"restaurantId":   rest.ID,
				"restaurantname": rest.Name,
			},
		},
		mainChoiceContext(req.Session),
	), nil
}

func (s *DefaultFulfillmentService) handleBookTablePrompt(_ context.Context, req *models.WebhookRequest) (*models.WebhookResponse, error) {
	bookCtx := findContext(req.QueryResult.OutputContexts, stageAwaitBookDetails)
	restaurantID := firstInt(ctxParam(bookCtx, "restaurantId"))
	if restaurantID == 0 {
		return apologyReset(req.Session, "Sorry, I lost track of which restaurant you meant."), nil
	}

	return respond(
		"Sure! For what time, and for how many people?",
		models.WebhookContext{
			Name:          contextName(req.Session, stageAwaitBookingInfo),
			LifespanCount: defaultLifespan,
			Parameters: map[string]any{
				"restaurantId":   restaurantID,
				"restaurantname": firstString(ctxParam(bookCtx, "restaurantname")),
			},
		},
	), nil
}

func (s *DefaultFulfillmentService) handleBookingDetails(_ context.Context, req *models.WebhookRequest) (*models.WebhookResponse, error) {
	infoCtx := findContext(req.QueryResult.OutputContexts, stageAwaitBookingInfo)
	restaurantID := firstInt(ctxParam(infoCtx, "restaurantId"))
	if restaurantID == 0 {
		return apologyReset(req.Session, "Sorry, I lost track of which restaurant you meant."), nil
	}

	timeRaw := firstString(req.QueryResult.Parameters["time"])
	people := firstInt(req.QueryResult.Parameters["people"])

	// Both fields are required; re-prompt in place, no state advance.
	if timeRaw == "" || people == 0 {
		return respond(
			"Please tell me both the time and the number of people, e.g. \"7 pm for 4 people\".",
			models.WebhookContext{
				Name:          contextName(req.Session, stageAwaitBookingInfo),
				LifespanCount: defaultLifespan,
				Parameters:    map[string]any{
					"restaurantId":   restaurantID,
					"restaurantname": firstString(ctxParam(infoCtx, "restaurantname")),
				},
			},
		), nil
	}

	restaurantName := firstString(ctxParam(infoCtx, "restaurantname"))
	return respond(
		fmt.Sprintf("Book a table at %s for %d people at %s — shall I confirm?",
			restaurantName, people, parseTimeInput(timeRaw)),
		models.WebhookContext{
			Name:          contextName(req.Session, stageAwaitConfirmBooking),
			LifespanCount: defaultLifespan,
			Parameters: map[string]any{
				"restaurantId":   restaurantID,
				"restaurantname": restaurantName,
				"time":           timeRaw,
				"people":         people,
			},
		},
	), nil
}

func (s *DefaultFulfillmentService) handleConfirmBooking(ctx context.Context, req *models.WebhookRequest) (*models.WebhookResponse, error) {
	confirmCtx := findContext(req.QueryResult.OutputContexts, stageAwaitConfirmBooking)
	restaurantID := firstInt(ctxParam(confirmCtx, "restaurantId"))
	timeRaw := firstString(ctxParam(confirmCtx, "time"))
	people := firstInt(ctxParam(confirmCtx, "people"))
	if restaurantID == 0 || timeRaw == "" || people == 0 {
		return apologyReset(req.Session, "Sorry, I lost the booking details. Let's start over."), nil
	}

	booking, err := s.Dinein.BookTable(ctx, models.BookingRequest{
		UserID:       chatbotUserID,
		RestaurantID: restaurantID,
		BookingDate:  bookingDate(s.now()),
		BookingTime:  bookingTime(timeRaw),
		PeopleCount:  people,
	})
	if err != nil {
		return nil, fmt.Errorf("booking persist failed: %w", err)
	}

	bookingID := 0
	if booking != nil {
		bookingID = booking.ID
	}
	if bookingID == 0 {
		// Some stores do not return the generated id; hand the user a
		// reference number anyway.
		bookingID = 100000 + rand.Intn(900000)
		s.Logger.Warn("Booking store returned no id, synthesized one",
			zap.Int("bookingId", bookingID))
	}

	return respond(
		fmt.Sprintf("Your table for %d is booked at %s today — booking id %d. Anything else? Type \"Delivery\" or \"Dine-in\".",
			people, parseTimeInput(timeRaw), bookingID),
		mainChoiceContext(req.Session),
	), nil
}

// restaurantNames joins up to max restaurant names with commas.
func restaurantNames(list []models.Restaurant, max int) string {
	if len(list) > max {
		list = list[:max]
	}
	names := make([]string, 0, len(list))
	for _, r := range list {
		names = append(names, r.Name)
	}
	return strings.Join(names, ", ")
}

// menuListing renders up to max items as a numbered list.
func menuListing(items []models.MenuItem, max int) string {
	if len(items) > max {
		items = items[:max]
	}
	lines := make([]string, 0, len(items))
	for i, it := range items {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, it.ItemName))
	}
	return strings.Join(lines, "\n")
}
