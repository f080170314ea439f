package tier

// Tier identifies a loyalty level on the Savora card.
type Tier string

const (
	Standard Tier = "STANDARD"
	Premium  Tier = "PREMIUM"
	Gold     Tier = "GOLD"
	Platinum Tier = "PLATINUM"
)

// Level describes the threshold and perks attached to a tier. Multiplier is
// shown on the card screen; point accrual itself uses flat per-type divisors.
type Level struct {
	Tier          Tier
	MinimumPoints int64
	Multiplier    float64
	Benefits      []string
}

// levels is ordered by ascending MinimumPoints; thresholds are distinct so
// tier resolution is unambiguous.
var levels = []Level{
	{
		Tier:          Standard,
		MinimumPoints: 0,
		Multiplier:    1,
		Benefits: []string{
			"Points on every order",
			"Birthday recipe box",
		},
	},
	{
		Tier:          Premium,
		MinimumPoints: 5_000,
		Multiplier:    1.5,
		Benefits: []string{
			"Free delivery on orders over 2500",
			"Early access to seasonal menus",
			"Member-only recipe collections",
		},
	},
	{
		Tier:          Gold,
		MinimumPoints: 15_000,
		Multiplier:    2,
		Benefits: []string{
			"Free delivery on all orders",
			"Priority support",
			"Monthly bonus recipe box",
			"Exclusive chef workshops",
		},
	},
	{
		Tier:          Platinum,
		MinimumPoints: 50_000,
		Multiplier:    3,
		Benefits: []string{
			"Free delivery on all orders",
			"Personal meal-planning concierge",
			"Invitations to chef tastings",
			"Annual anniversary hamper",
		},
	},
}

// Current returns the highest level whose threshold does not exceed the
// given points. Total over non-negative inputs; negative inputs resolve to
// Standard.
func Current(points int64) Level {
	current := levels[0]
	for _, l := range levels[1:] {
		if points < l.MinimumPoints {
			break
		}
		current = l
	}
	return current
}

// Next returns the lowest level whose threshold exceeds the given points and
// how many points are still needed to reach it. ok is false when the points
// already meet the top tier.
func Next(points int64) (next Level, needed int64, ok bool) {
	for _, l := range levels {
		if l.MinimumPoints > points {
			return l, l.MinimumPoints - points, true
		}
	}
	return Level{}, 0, false
}

// Benefits returns the benefit list of the tier implied by the given points.
func Benefits(points int64) []string {
	return Current(points).Benefits
}

// Levels returns a copy of the full tier table, ascending by threshold.
func Levels() []Level {
	out := make([]Level, len(levels))
	copy(out, levels)
	return out
}
