package models

// Moods offered when planning a trip.
const (
	MoodChill      = "Chill (休闲)"
	MoodEnergetic  = "Energetic (活力)"
	MoodFoodie     = "Foodie (美食)"
	MoodMelancholy = "Melancholy (忧郁)"
	MoodCultural   = "Cultural (文化)"

	// Post-trip only.
	MoodHappy = "Happy (开心)"
	MoodTired = "Tired (累但充实)"
)

// TripMoods lists the moods a route can be generated for, in display order.
var TripMoods = []string{MoodChill, MoodEnergetic, MoodFoodie, MoodMelancholy, MoodCultural}

// PostTripMoods lists the moods accepted in a review.
var PostTripMoods = append(append([]string{}, TripMoods...), MoodHappy, MoodTired)

// IsTripMood reports whether mood is one of TripMoods.
func IsTripMood(mood string) bool {
	for _, m := range TripMoods {
		if m == mood {
			return true
		}
	}
	return false
}
