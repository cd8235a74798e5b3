package itinerary

import (
	"strconv"

	"github.com/FACorreiaa/tripwhisper-api/internal/types"
)

// Classification is table-driven: each table is an ordered list of
// (predicate, outcome) rules evaluated uniformly, so rules can be added or
// reordered without touching control flow.

type tagPredicate func(tags map[string]string) bool

func tagIs(key string, values ...string) tagPredicate {
	return func(tags map[string]string) bool {
		v, ok := tags[key]
		if !ok {
			return false
		}
		for _, want := range values {
			if v == want {
				return true
			}
		}
		return false
	}
}

func tagPresent(key string) tagPredicate {
	return func(tags map[string]string) bool {
		_, ok := tags[key]
		return ok
	}
}

func anyOf(preds ...tagPredicate) tagPredicate {
	return func(tags map[string]string) bool {
		for _, p := range preds {
			if p(tags) {
				return true
			}
		}
		return false
	}
}

// categoryRules map raw OSM tags to normalized interest categories. Rules
// are a union: an element may match several.
var categoryRules = []struct {
	match    tagPredicate
	category string
}{
	{tagIs("tourism", "museum", "gallery"), "museums"},
	{tagIs("tourism", "attraction", "viewpoint"), "views"},
	{tagPresent("historic"), "culture"},
	{anyOf(tagIs("leisure", "park"), tagPresent("natural")), "nature"},
	{tagIs("amenity", "restaurant", "cafe", "fast_food", "food_court"), "food"},
	{tagIs("amenity", "bar", "pub", "nightclub"), "nightlife"},
	{anyOf(tagIs("tourism", "artwork"), tagIs("man_made", "works")), "hidden"},
}

// timeBlockRules guess the best time of day. First match wins; anything
// unmatched is an all-day activity.
var timeBlockRules = []struct {
	match  tagPredicate
	blocks []types.TimeBlock
}{
	// sunset bias
	{tagIs("tourism", "viewpoint"), []types.TimeBlock{types.BlockEvening}},
	{anyOf(tagIs("leisure", "park"), tagPresent("natural")), []types.TimeBlock{types.BlockMorning, types.BlockAfternoon}},
	{tagIs("tourism", "museum", "gallery"), []types.TimeBlock{types.BlockMorning, types.BlockAfternoon}},
	{tagIs("amenity", "restaurant", "cafe", "fast_food", "food_court", "bar", "pub", "nightclub"), []types.TimeBlock{types.BlockAfternoon, types.BlockEvening}},
}

var allDayBlocks = []types.TimeBlock{types.BlockMorning, types.BlockAfternoon, types.BlockEvening}

// descriptionRules give a short human-readable blurb. First match wins.
var descriptionRules = []struct {
	match tagPredicate
	text  string
}{
	{tagIs("tourism", "museum", "gallery"), "Museum or gallery"},
	{anyOf(tagIs("leisure", "park"), tagPresent("natural")), "Park or green space"},
	{tagIs("tourism", "viewpoint"), "Scenic viewpoint"},
	{tagPresent("historic"), "Historic site or monument"},
	{tagIs("amenity", "restaurant"), "Local restaurant"},
	{tagIs("amenity", "cafe"), "Cafe or coffee spot"},
	{tagIs("amenity", "bar", "pub", "nightclub"), "Nightlife spot"},
}

const fallbackDescription = "Local point of interest"

// Classify returns the normalized categories for a tag set, in rule-table
// order.
func Classify(tags map[string]string) []string {
	var out []string
	for _, rule := range categoryRules {
		if rule.match(tags) {
			out = append(out, rule.category)
		}
	}
	return out
}

// PreferredBlocks returns the time-of-day blocks an element fits best.
func PreferredBlocks(tags map[string]string) []types.TimeBlock {
	for _, rule := range timeBlockRules {
		if rule.match(tags) {
			return rule.blocks
		}
	}
	return allDayBlocks
}

// Describe returns a short blurb for a tag set.
func Describe(tags map[string]string) string {
	for _, rule := range descriptionRules {
		if rule.match(tags) {
			return rule.text
		}
	}
	return fallbackDescription
}

// BuildActivities converts normalized POIs into schedulable activities,
// dropping any whose category union comes out empty.
func BuildActivities(pois []types.RawPointOfInterest) []types.Activity {
	activities := make([]types.Activity, 0, len(pois))
	for _, p := range pois {
		categories := Classify(p.Tags)
		if len(categories) == 0 {
			continue
		}
		activities = append(activities, types.Activity{
			ID:              strconv.FormatInt(p.ExternalID, 10),
			Name:            p.Name,
			Lat:             p.Lat,
			Lon:             p.Lon,
			Categories:      categories,
			PreferredBlocks: PreferredBlocks(p.Tags),
			Description:     Describe(p.Tags),
		})
	}
	return activities
}
