package services

import (
	"fmt"

	"github.com/travelbuddy-app/travelbuddy-backend/internal/config"
	"github.com/travelbuddy-app/travelbuddy-backend/internal/models"
)

// Planner turns a trip request into an itinerary. The template planner is
// the built-in trivial strategy; a real planning engine can be dropped in
// behind this interface without changing client contracts.
type Planner interface {
	Generate(req *models.TripRequest) (*models.TripPlan, error)
}

// NewPlanner picks the planner for the configured strategy.
func NewPlanner(cfg *config.Config) Planner {
	if cfg.Planner == "budget" {
		return &BudgetPlanner{}
	}
	return &TemplatePlanner{}
}

// TemplatePlanner returns a fixed 3-day itinerary echoing destination,
// budget, members and days from the request. It performs no planning.
type TemplatePlanner struct{}

func (p *TemplatePlanner) Generate(req *models.TripRequest) (*models.TripPlan, error) {
	return &models.TripPlan{
		Destination: req.Destination,
		Budget:      float64(req.Budget),
		Members:     int(req.Members),
		Days:        int(req.Days),
		Itinerary: []models.ItineraryDay{
			{Title: "Day 1", Activities: []models.Activity{
				{Label: "Visit landmark"},
				{Label: "Lunch at cafe"},
			}},
			{Title: "Day 2", Activities: []models.Activity{
				{Label: "Shopping"},
				{Label: "Dinner at local restaurant"},
			}},
			{Title: "Day 3", Activities: []models.Activity{
				{Label: "Museum visit"},
				{Label: "Return home"},
			}},
		},
	}, nil
}

// BudgetPlanner scales the itinerary to the requested day count and fills
// in timed activities with rough costs, a category budget split and
// generic recommendations.
type BudgetPlanner struct{}

func (p *BudgetPlanner) Generate(req *models.TripRequest) (*models.TripPlan, error) {
	budget := float64(req.Budget)
	members := int(req.Members)
	days := int(req.Days)

	perPerson := budget
	if members > 0 {
		perPerson = budget / float64(members)
	}

	itinerary := make([]models.ItineraryDay, 0, days)
	for day := 1; day <= days; day++ {
		itinerary = append(itinerary, models.ItineraryDay{
			Day:   day,
			Title: fmt.Sprintf("Day %d - Exploring %s", day, req.Destination),
			Activities: []models.Activity{
				{Time: "9:00 AM", Activity: "Breakfast at local cafe", Location: req.Destination,
					Cost: 200, Description: "Start your day with local breakfast", Tips: "Look for student discounts"},
				{Time: "11:00 AM", Activity: "Visit main attractions", Location: req.Destination,
					Cost: 500, Description: "Explore popular tourist spots", Tips: "Book tickets online for discounts"},
				{Time: "2:00 PM", Activity: "Lunch at budget restaurant", Location: req.Destination,
					Cost: 300, Description: "Try local cuisine", Tips: "Ask locals for recommendations"},
				{Time: "4:00 PM", Activity: "Cultural exploration", Location: req.Destination,
					Cost: 300, Description: "Immerse in local culture", Tips: "Many museums offer free entry days"},
				{Time: "7:00 PM", Activity: "Dinner and evening stroll", Location: req.Destination,
					Cost: 400, Description: "End the day with local food", Tips: "Street food is cheaper and authentic"},
			},
			TotalDayCost: 1700,
		})
	}

	return &models.TripPlan{
		Destination:     req.Destination,
		Budget:          budget,
		Members:         members,
		Days:            days,
		PerPersonBudget: perPerson,
		Itinerary:       itinerary,
		BudgetBreakdown: &models.BudgetBreakdown{
			Transportation: budget * 0.30,
			Accommodation:  budget * 0.35,
			Food:           budget * 0.20,
			Activities:     budget * 0.10,
			Miscellaneous:  budget * 0.05,
		},
		Recommendations: &models.Recommendations{
			BestRestaurants:    []string{"Local cafes", "Street food stalls"},
			FreeAttractions:    []string{"Public parks", "Historic areas"},
			LocalTransportTips: "Use public transport or walk when possible",
			MustTryFoods:       []string{"Local specialties"},
			SafetyTips:         []string{"Stay in groups", "Keep valuables safe"},
		},
	}, nil
}
