package arena

// oathCap is the maximum HP once the oath flag is set.
const oathCap = 1

// hpCap returns the HP ceiling for m, or -1 when HP is unbounded.
func hpCap(m Modifiers) int {
	if m.Oath {
		return oathCap
	}
	return -1
}

// clampHP enforces 0 <= hp <= cap. Every HP mutation goes through here.
func clampHP(m Modifiers, hp int) int {
	if hp < 0 {
		hp = 0
	}
	if c := hpCap(m); c >= 0 && hp > c {
		hp = c
	}
	return hp
}

func isDead(hp int) bool { return hp <= 0 }

// withHP returns r with HP set to hp after clamping.
func (r Run) withHP(hp int) Run {
	r.HP = clampHP(r.Modifiers, hp)
	return r
}
