package arena

// Uses is the remaining use count of a finite-use modifier.
type Uses int

func (u Uses) Active() bool { return u > 0 }

// Grant adds n uses.
func (u Uses) Grant(n int) Uses { return u + Uses(n) }

// ConsumeOne spends a use, never going below zero.
func (u Uses) ConsumeOne() Uses {
	if u <= 0 {
		return 0
	}
	return u - 1
}

// Modifiers holds every effect active on a run. Finite-use counters tick down
// once per resolved stage answer; flags last for the rest of the run.
type Modifiers struct {
	SafeGuard Uses `json:"safe_guard"`
	Flurry    Uses `json:"flurry"`
	Shielded  Uses `json:"shielded"`
	Foresight Uses `json:"foresight"`
	Leech     Uses `json:"leech"`

	DuelArmed bool `json:"duel_armed"`

	Oath          bool `json:"oath"`
	ZoomCurse     bool `json:"zoom_curse"`
	BlurCurse     bool `json:"blur_curse"`
	HeartyApplied bool `json:"hearty_applied"`
}

// finiteEffect is one entry of the finite-use registry. Entries are applied
// in slice order when an answer is scored.
type finiteEffect struct {
	id     string
	uses   func(m *Modifiers) *Uses
	points float64
	loss   func(loss int) int
	heal   int
}

var finiteEffects = []finiteEffect{
	{
		id:     "safe_guard",
		uses:   func(m *Modifiers) *Uses { return &m.SafeGuard },
		points: 0.7,
		loss:   func(int) int { return 0 },
	},
	{
		id:     "flurry",
		uses:   func(m *Modifiers) *Uses { return &m.Flurry },
		points: 1.2,
		loss:   func(int) int { return 2 },
	},
	{
		id:     "shielded",
		uses:   func(m *Modifiers) *Uses { return &m.Shielded },
		points: 0.75,
		loss:   func(l int) int { return max(1, ceilDiv(l, 2)) },
	},
	{
		id:     "foresight",
		uses:   func(m *Modifiers) *Uses { return &m.Foresight },
		points: 0.8,
	},
	{
		id:     "leech",
		uses:   func(m *Modifiers) *Uses { return &m.Leech },
		points: 0.75,
		heal:   1,
	},
}

// active returns the finite effects with uses left, in registry order.
func (m Modifiers) active() []finiteEffect {
	var out []finiteEffect
	for _, e := range finiteEffects {
		if e.uses(&m).Active() {
			out = append(out, e)
		}
	}
	return out
}

// consume spends one use of every effect in snapshot and disarms the duel.
func (m Modifiers) consume(snapshot []finiteEffect) Modifiers {
	for _, e := range snapshot {
		u := e.uses(&m)
		*u = u.ConsumeOne()
	}
	m.DuelArmed = false
	return m
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
