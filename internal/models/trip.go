package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FlexFloat accepts both JSON numbers and numeric strings. The form UI
// submits budget/members/days as strings, older clients send numbers.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*f = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	*f = FlexFloat(v)
	return nil
}

// FlexInt is the integer counterpart of FlexFloat.
type FlexInt int

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*i = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	*i = FlexInt(v)
	return nil
}

// Interests accepts a single string or a list of strings.
type Interests []string

func (in *Interests) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*in = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if single == "" {
		*in = nil
		return nil
	}
	*in = Interests{single}
	return nil
}

// TripRequest is the planning form payload.
type TripRequest struct {
	Destination   string    `json:"destination"`
	Budget        FlexFloat `json:"budget"`
	Members       FlexInt   `json:"members"`
	Days          FlexInt   `json:"days"`
	From          string    `json:"from"`
	Accommodation string    `json:"accommodation"`
	Interests     Interests `json:"interests"`
}

// Activity is one itinerary entry. On the wire it is either a bare string
// label ("Visit landmark") or a detail object with time/cost/tips fields.
// Both forms round-trip unchanged.
type Activity struct {
	Label       string  `json:"-"`
	Activity    string  `json:"activity,omitempty"`
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Time        string  `json:"time,omitempty"`
	Location    string  `json:"location,omitempty"`
	Tips        string  `json:"tips,omitempty"`
	Cost        float64 `json:"cost,omitempty"`
}

type activityDetail Activity

func (a *Activity) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		*a = Activity{Label: label}
		return nil
	}
	var detail activityDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return err
	}
	*a = Activity(detail)
	return nil
}

func (a Activity) MarshalJSON() ([]byte, error) {
	if a.Label != "" {
		return json.Marshal(a.Label)
	}
	return json.Marshal(activityDetail(a))
}

// DisplayName returns the canonical name for rendering: the first present
// of activity, name, description, falling back to the bare label.
func (a Activity) DisplayName() string {
	switch {
	case a.Activity != "":
		return a.Activity
	case a.Name != "":
		return a.Name
	case a.Description != "":
		return a.Description
	default:
		return a.Label
	}
}

// ItineraryDay is one day of a trip plan. Day is optional; some variants
// key days by title only.
type ItineraryDay struct {
	Day          int        `json:"day,omitempty"`
	Title        string     `json:"title"`
	Activities   []Activity `json:"activities"`
	TotalDayCost float64    `json:"total_day_cost,omitempty"`
}

// BudgetBreakdown splits the total budget across spending categories.
type BudgetBreakdown struct {
	Transportation float64 `json:"transportation"`
	Accommodation  float64 `json:"accommodation"`
	Food           float64 `json:"food"`
	Activities     float64 `json:"activities"`
	Miscellaneous  float64 `json:"miscellaneous"`
}

// Recommendations carries extra planner advice. Only the budget planner
// fills this in.
type Recommendations struct {
	BestRestaurants    []string `json:"best_restaurants,omitempty"`
	FreeAttractions    []string `json:"free_attractions,omitempty"`
	LocalTransportTips string   `json:"local_transport_tips,omitempty"`
	MustTryFoods       []string `json:"must_try_foods,omitempty"`
	SafetyTips         []string `json:"safety_tips,omitempty"`
}

// TripPlan is the generated itinerary returned to the client. It echoes
// destination, budget, members and days from the request.
type TripPlan struct {
	Destination     string           `json:"destination"`
	Budget          float64          `json:"budget"`
	Members         int              `json:"members"`
	Days            int              `json:"days"`
	PerPersonBudget float64          `json:"per_person_budget,omitempty"`
	Itinerary       []ItineraryDay   `json:"itinerary"`
	BudgetBreakdown *BudgetBreakdown `json:"budget_breakdown,omitempty"`
	Recommendations *Recommendations `json:"recommendations,omitempty"`
}

// Trip is a saved plan owned by a user.
type Trip struct {
	ID            string   `gorm:"primaryKey" json:"id"`
	UserEmail     string   `gorm:"index;not null" json:"user_email"`
	Destination   string   `json:"destination"`
	Budget        float64  `json:"budget"`
	Members       int      `json:"members"`
	Days          int      `json:"days"`
	FromLocation  string   `json:"from_location"`
	Accommodation string   `json:"accommodation"`
	Interests     string   `json:"interests"`
	Plan          TripPlan `gorm:"serializer:json" json:"plan"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
