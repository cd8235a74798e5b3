package types

import "time"

// TimeBlock is the unit of scheduling granularity within a day.
type TimeBlock string

const (
	BlockMorning   TimeBlock = "morning"
	BlockAfternoon TimeBlock = "afternoon"
	BlockEvening   TimeBlock = "evening"
)

// BudgetTier is carried through preferences but not yet weighted in scoring;
// OSM data has no reliable price signal.
type BudgetTier string

const (
	BudgetLow  BudgetTier = "low"
	BudgetMid  BudgetTier = "mid"
	BudgetHigh BudgetTier = "high"
)

// PaceTier controls how many time blocks are scheduled per day.
type PaceTier string

const (
	PaceChill    PaceTier = "chill"
	PaceBalanced PaceTier = "balanced"
	PacePacked   PaceTier = "packed"
)

// Preferences are the per-request travel preferences.
type Preferences struct {
	Interests []string   `json:"interests"`
	Budget    BudgetTier `json:"budget"`
	Pace      PaceTier   `json:"pace"`
}

// Activity is a classified point of interest ready for scheduling. Categories
// and PreferredBlocks are derived deterministically from the raw OSM tags and
// kept in rule-table order.
type Activity struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Lat             float64     `json:"lat"`
	Lon             float64     `json:"lon"`
	Categories      []string    `json:"categories"`
	PreferredBlocks []TimeBlock `json:"preferred_blocks"`
	Description     string      `json:"description"`
}

// Slot is one time block within a day. A nil Activity is an open block.
type Slot struct {
	Block    TimeBlock `json:"block"`
	Activity *Activity `json:"activity,omitempty"`
}

// DayPlan holds the ordered slots for one day. Day is 1-based.
type DayPlan struct {
	Day   int    `json:"day"`
	Slots []Slot `json:"slots"`
}

// Itinerary is the full multi-day plan, one DayPlan per requested day.
type Itinerary []DayPlan

// GenerateItineraryRequest is the planner input. Days outside [1,7] are
// clamped rather than rejected.
type GenerateItineraryRequest struct {
	City      string     `json:"city"`
	Days      int        `json:"days"`
	Interests []string   `json:"interests"`
	Budget    BudgetTier `json:"budget"`
	Pace      PaceTier   `json:"pace"`
}

// GenerationState tracks a generation request through its lifecycle.
type GenerationState string

const (
	GenerationIdle      GenerationState = "idle"
	GenerationRunning   GenerationState = "running"
	GenerationCompleted GenerationState = "completed"
	GenerationFailed    GenerationState = "failed"
)

// GenerationResult is a completed generation: the resolved city, the plan,
// and when it finished.
type GenerationResult struct {
	City        CityLocation `json:"city"`
	Itinerary   Itinerary    `json:"itinerary"`
	Days        int          `json:"days"`
	GeneratedAt time.Time    `json:"generated_at"`
}
