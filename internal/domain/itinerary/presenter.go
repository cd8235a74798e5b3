package itinerary

import (
	"time"

	"github.com/FACorreiaa/tripwhisper-api/internal/lib"
	"github.com/FACorreiaa/tripwhisper-api/internal/types"
)

// Response shapes handed to the presentation layer. Activities carry a
// ready-made maps deep link so clients get "open in maps" for free.

type ActivityResponse struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Lat             float64           `json:"lat"`
	Lon             float64           `json:"lon"`
	Categories      []string          `json:"categories"`
	PreferredBlocks []types.TimeBlock `json:"preferred_blocks"`
	Description     string            `json:"description"`
	MapsURL         string            `json:"maps_url"`
}

type SlotResponse struct {
	Block    types.TimeBlock   `json:"block"`
	Activity *ActivityResponse `json:"activity,omitempty"`
}

type DayPlanResponse struct {
	Day   int            `json:"day"`
	Slots []SlotResponse `json:"slots"`
}

type ItineraryResponse struct {
	City        types.CityLocation `json:"city"`
	Days        int                `json:"days"`
	Plan        []DayPlanResponse  `json:"plan"`
	GeneratedAt time.Time          `json:"generated_at"`
}

type LatestResponse struct {
	State  types.GenerationState `json:"state"`
	Result *ItineraryResponse    `json:"result,omitempty"`
}

// ToItineraryResponse shapes a generation result for the HTTP layer.
func ToItineraryResponse(result *types.GenerationResult) *ItineraryResponse {
	plan := make([]DayPlanResponse, 0, len(result.Itinerary))
	for _, day := range result.Itinerary {
		slots := make([]SlotResponse, 0, len(day.Slots))
		for _, slot := range day.Slots {
			slots = append(slots, SlotResponse{
				Block:    slot.Block,
				Activity: toActivityResponse(slot.Activity),
			})
		}
		plan = append(plan, DayPlanResponse{Day: day.Day, Slots: slots})
	}
	return &ItineraryResponse{
		City:        result.City,
		Days:        result.Days,
		Plan:        plan,
		GeneratedAt: result.GeneratedAt,
	}
}

func toActivityResponse(a *types.Activity) *ActivityResponse {
	if a == nil {
		return nil
	}
	return &ActivityResponse{
		ID:              a.ID,
		Name:            a.Name,
		Lat:             a.Lat,
		Lon:             a.Lon,
		Categories:      a.Categories,
		PreferredBlocks: a.PreferredBlocks,
		Description:     a.Description,
		MapsURL:         lib.MapsLinkByCoords(a.Lat, a.Lon, a.Name),
	}
}
