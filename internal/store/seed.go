package store

import "github.com/localpulse/localpulse/pkg/event"

// CuratedEvents returns the baseline catalog. Curated events carry no
// moderation status and are always publicly visible.
func CuratedEvents() []event.Event {
	events := []event.Event{
		{
			ID:              "1",
			Name:            "Indie Night at the Mill",
			Description:     "Three local indie bands on one intimate stage, with the house taps flowing all evening.",
			Category:        event.CategoryMusic,
			Tags:            []string{"live music", "indie", "local bands"},
			Date:            "2025-11-08",
			Time:            "20:00",
			Price:           12,
			PersonalityTags: []string{"E", "N", "F", "P"},
			Vibes:           []string{"energetic", "social", "edgy"},
			GroupSizes:      []event.GroupSize{event.GroupSolo, event.GroupCouple, event.GroupSmall},
			Interactivity:   event.InteractivityLow,
			Capacity:        event.CapacitySmall,
			Venue:           event.VenueIndoor,
			VenueName:       "The Mill",
			Location:        "1042 N Mills Ave, Orlando, FL",
			Duration:        "2-3 hours",
			Image:           "🎸",
		},
		{
			ID:              "2",
			Name:            "Lakefront Food Truck Rally",
			Description:     "Two dozen food trucks circle the lake with live acoustic sets and picnic seating.",
			Category:        event.CategoryFood,
			Tags:            []string{"food trucks", "outdoor dining", "family"},
			Date:            "2025-11-09",
			Time:            "afternoon",
			Price:           0,
			PersonalityTags: []string{"E", "S", "F", "P"},
			Vibes:           []string{"casual", "social"},
			GroupSizes:      []event.GroupSize{event.GroupCouple, event.GroupSmall, event.GroupLarge},
			Interactivity:   event.InteractivityMedium,
			Capacity:        event.CapacityLarge,
			Venue:           event.VenueOutdoor,
			VenueName:       "Lake Eola Park",
			Location:        "512 E Washington St, Orlando, FL",
			Duration:        "2-4 hours",
			Image:           "🍔",
		},
		{
			ID:              "3",
			Name:            "Downtown Gallery Walk",
			Description:     "Self-guided stroll through eight downtown galleries, each pouring wine and showing new work.",
			Category:        event.CategoryArts,
			Tags:            []string{"art", "galleries", "wine"},
			Date:            "2025-11-14",
			Time:            "evening",
			Price:           10,
			PersonalityTags: []string{"I", "N", "F", "J"},
			Vibes:           []string{"cultural", "relaxed"},
			GroupSizes:      []event.GroupSize{event.GroupSolo, event.GroupCouple},
			Interactivity:   event.InteractivityLow,
			Capacity:        event.CapacityMedium,
			Venue:           event.VenueIndoor,
			VenueName:       "Downtown Arts District",
			Location:        "29 S Orange Ave, Orlando, FL",
			Duration:        "1-2 hours",
			Image:           "🎨",
		},
		{
			ID:              "4",
			Name:            "Sunrise Trail Run",
			Description:     "Guided 5k through the wetlands preserve before the heat sets in. All paces welcome.",
			Category:        event.CategoryOutdoor,
			Tags:            []string{"running", "nature", "fitness"},
			Date:            "2025-11-15",
			Time:            "morning",
			Price:           0,
			PersonalityTags: []string{"I", "S", "T", "J"},
			Vibes:           []string{"adventurous", "relaxed"},
			GroupSizes:      []event.GroupSize{event.GroupSolo, event.GroupSmall},
			Interactivity:   event.InteractivityHigh,
			Capacity:        event.CapacitySmall,
			Venue:           event.VenueOutdoor,
			VenueName:       "Shingle Creek Preserve",
			Location:        "4266 W Vine St, Kissimmee, FL",
			Duration:        "1-2 hours",
			Image:           "🌳",
		},
		{
			ID:              "5",
			Name:            "City League Kickball Finals",
			Description:     "The rec league's two best teams settle it under the lights. Bleacher seating, bring a cowbell.",
			Category:        event.CategorySports,
			Tags:            []string{"kickball", "league", "playoffs"},
			Date:            "2025-11-20",
			Time:            "19:30",
			Price:           5,
			PersonalityTags: []string{"E", "S", "T", "P"},
			Vibes:           []string{"energetic", "competitive"},
			GroupSizes:      []event.GroupSize{event.GroupSmall, event.GroupLarge},
			Interactivity:   event.InteractivityHigh,
			Capacity:        event.CapacityMedium,
			Venue:           event.VenueOutdoor,
			VenueName:       "Festival Park",
			Location:        "2911 E Robinson St, Orlando, FL",
			Duration:        "2-3 hours",
			Image:           "⚽",
		},
		{
			ID:              "6",
			Name:            "Intro to Letterpress Workshop",
			Description:     "Hands-on session with a century-old press: set type, mix ink and print your own posters.",
			Category:        event.CategoryEducation,
			Tags:            []string{"workshop", "printing", "crafts"},
			Date:            "2025-11-22",
			Time:            "afternoon",
			Price:           45,
			PersonalityTags: []string{"I", "N", "T", "J"},
			Vibes:           []string{"educational", "intellectual"},
			GroupSizes:      []event.GroupSize{event.GroupSolo, event.GroupCouple},
			Interactivity:   event.InteractivityHigh,
			Capacity:        event.CapacitySmall,
			Venue:           event.VenueIndoor,
			VenueName:       "The Print Shop",
			Location:        "1011 Virginia Dr, Orlando, FL",
			Duration:        "1-2 hours",
			Image:           "📚",
		},
		{
			ID:              "7",
			Name:            "Neighborhood Repair Café",
			Description:     "Bring a broken lamp, a torn jacket or a wobbly chair and fix it alongside volunteer menders.",
			Category:        event.CategoryCommunity,
			Tags:            []string{"repair", "volunteering", "sustainability"},
			Date:            "2025-12-06",
			Time:            "morning",
			Price:           0,
			PersonalityTags: []string{"E", "S", "F", "J"},
			Vibes:           []string{"social", "meaningful"},
			GroupSizes:      []event.GroupSize{event.GroupSolo, event.GroupSmall},
			Interactivity:   event.InteractivityHigh,
			Capacity:        event.CapacitySmall,
			Venue:           event.VenueIndoor,
			VenueName:       "Community Hall",
			Location:        "1219 E Concord St, Orlando, FL",
			Duration:        "2-3 hours",
			Image:           "🤝",
		},
		{
			ID:              "8",
			Name:            "Symphony Under the Stars",
			Description:     "The philharmonic plays a full outdoor program of film scores with fireworks over the finale.",
			Category:        event.CategoryMusic,
			Tags:            []string{"orchestra", "outdoor", "film scores"},
			Date:            "2025-12-13",
			Time:            "20:00",
			Price:           65,
			PersonalityTags: []string{"I", "N", "F", "J"},
			Vibes:           []string{"cultural", "upscale"},
			GroupSizes:      []event.GroupSize{event.GroupCouple, event.GroupSmall, event.GroupLarge},
			Interactivity:   event.InteractivityLow,
			Capacity:        event.CapacityLarge,
			Venue:           event.VenueOutdoor,
			VenueName:       "Harbor Park Amphitheater",
			Location:        "4990 New Broad St, Orlando, FL",
			Duration:        "2-3 hours",
			Image:           "🎻",
		},
	}

	for i := range events {
		events[i].PriceCategory = event.PriceCategoryFor(events[i].Price)
	}
	return events
}
