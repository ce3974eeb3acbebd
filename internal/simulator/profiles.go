package simulator

import "math/rand"

// CategoryMix weights how a profile splits its usage across app categories
// at a given hour. Weights need not sum to 1; they are normalized on use.
type CategoryMix struct {
	Productive    float64
	Development   float64
	Social        float64
	Entertainment float64
	Communication float64
	Other         float64
}

// Profile shapes a synthetic user's day: how active each hour is and what
// the activity consists of.
type Profile interface {
	Name() string
	Activity(hour int) float64 // 0..1 fraction of the hour spent on devices
	Mix(hour int) CategoryMix
}

func ParseProfile(name string) Profile {
	switch name {
	case "night_owl":
		return &NightOwlProfile{}
	case "doomscroller":
		return &DoomscrollerProfile{}
	default:
		return &WorkdayProfile{}
	}
}

// WorkdayProfile is a healthy nine-to-five pattern: focused work during
// office hours, light evening use, quiet nights.
type WorkdayProfile struct{}

func (p *WorkdayProfile) Name() string { return "workday" }

func (p *WorkdayProfile) Activity(hour int) float64 {
	switch {
	case hour >= 9 && hour < 12:
		return 0.85
	case hour >= 13 && hour < 17:
		return 0.8
	case hour >= 12 && hour < 13:
		return 0.3
	case hour >= 19 && hour < 22:
		return 0.35
	case hour >= 7 && hour < 9:
		return 0.2
	default:
		return 0.02
	}
}

func (p *WorkdayProfile) Mix(hour int) CategoryMix {
	if hour >= 9 && hour < 17 {
		return CategoryMix{Productive: 5, Development: 3, Communication: 1.5, Social: 0.5}
	}
	return CategoryMix{Social: 2, Entertainment: 3, Other: 1}
}

// NightOwlProfile works late and sleeps through the morning.
type NightOwlProfile struct{}

func (p *NightOwlProfile) Name() string { return "night_owl" }

func (p *NightOwlProfile) Activity(hour int) float64 {
	switch {
	case hour >= 21 || hour < 3:
		return 0.85
	case hour >= 14 && hour < 21:
		return 0.5
	case hour >= 11 && hour < 14:
		return 0.25
	default:
		return 0.02
	}
}

func (p *NightOwlProfile) Mix(hour int) CategoryMix {
	if hour >= 21 || hour < 3 {
		return CategoryMix{Development: 4, Productive: 2, Entertainment: 2, Social: 1}
	}
	return CategoryMix{Productive: 2, Social: 2, Entertainment: 2, Other: 1}
}

// DoomscrollerProfile is the high-fatigue case: long sessions, heavy social
// and entertainment use, late nights, few breaks.
type DoomscrollerProfile struct{}

func (p *DoomscrollerProfile) Name() string { return "doomscroller" }

func (p *DoomscrollerProfile) Activity(hour int) float64 {
	switch {
	case hour >= 8 && hour < 24:
		return 0.9
	case hour < 2:
		return 0.7
	default:
		return 0.1
	}
}

func (p *DoomscrollerProfile) Mix(hour int) CategoryMix {
	return CategoryMix{Social: 5, Entertainment: 4, Other: 1, Productive: 0.5}
}

// pick samples a category name from the mix proportionally to its weight.
func (m CategoryMix) pick(rng *rand.Rand) string {
	type entry struct {
		name   string
		weight float64
	}
	entries := []entry{
		{"productive", m.Productive},
		{"development", m.Development},
		{"social", m.Social},
		{"entertainment", m.Entertainment},
		{"communication", m.Communication},
		{"other", m.Other},
	}

	var total float64
	for _, e := range entries {
		total += e.weight
	}
	if total == 0 {
		return "other"
	}

	r := rng.Float64() * total
	for _, e := range entries {
		r -= e.weight
		if r < 0 {
			return e.name
		}
	}
	return "other"
}
