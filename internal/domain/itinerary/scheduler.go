package itinerary

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/FACorreiaa/tripwhisper-api/internal/types"
)

// proximityThresholdMeters is how close to the city center an activity must
// be to earn the proximity bonus.
const proximityThresholdMeters = 3000.0

const (
	preferredBlockScore = 2
	proximityBonusScore = 1
)

// BlocksForPace returns the fixed block sequence for every day at the given
// pace.
func BlocksForPace(pace types.PaceTier) []types.TimeBlock {
	switch pace {
	case types.PaceChill:
		return []types.TimeBlock{types.BlockMorning, types.BlockEvening}
	case types.PacePacked:
		return []types.TimeBlock{types.BlockMorning, types.BlockAfternoon, types.BlockEvening}
	default:
		return []types.TimeBlock{types.BlockMorning, types.BlockAfternoon}
	}
}

// scoreActivity ranks one activity for one slot. Budget tier is carried in
// the preferences but not weighted: OSM has no reliable price signal.
func scoreActivity(a types.Activity, prefs types.Preferences, block types.TimeBlock, centerLat, centerLon float64) int {
	score := 0

	for _, b := range a.PreferredBlocks {
		if b == block {
			score += preferredBlockScore
			break
		}
	}

	for _, c := range a.Categories {
		for _, interest := range prefs.Interests {
			if c == interest {
				score++
				break
			}
		}
	}

	if geo.Distance(orb.Point{a.Lon, a.Lat}, orb.Point{centerLon, centerLat}) <= proximityThresholdMeters {
		score += proximityBonusScore
	}

	return score
}

// Schedule greedily fills day/block slots from the activity pool. Each
// activity is used at most once across the whole itinerary; ties go to the
// earliest-listed activity, so identical inputs always produce identical
// output. A slot stays open only when the pool is exhausted.
func Schedule(activities []types.Activity, prefs types.Preferences, days int, centerLat, centerLon float64) types.Itinerary {
	used := make(map[string]struct{}, len(activities))
	plan := make(types.Itinerary, 0, days)

	blocks := BlocksForPace(prefs.Pace)
	for day := 1; day <= days; day++ {
		slots := make([]types.Slot, 0, len(blocks))
		for _, block := range blocks {
			pickIdx := -1
			bestScore := -1
			for i, a := range activities {
				if _, taken := used[a.ID]; taken {
					continue
				}
				if s := scoreActivity(a, prefs, block, centerLat, centerLon); s > bestScore {
					bestScore = s
					pickIdx = i
				}
			}

			slot := types.Slot{Block: block}
			if pickIdx >= 0 {
				picked := activities[pickIdx]
				used[picked.ID] = struct{}{}
				slot.Activity = &picked
			}
			slots = append(slots, slot)
		}
		plan = append(plan, types.DayPlan{Day: day, Slots: slots})
	}

	return plan
}
