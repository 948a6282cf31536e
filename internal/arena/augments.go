package arena

// AugmentID identifies a catalog entry.
type AugmentID string

const (
	AugmentSafeGuard     AugmentID = "safe_guard"
	AugmentBloodPact     AugmentID = "blood_pact"
	AugmentFlurryGambit  AugmentID = "flurry_gambit"
	AugmentHearty        AugmentID = "hearty"
	AugmentShieldedShell AugmentID = "shielded_shell"
	AugmentLeechVines    AugmentID = "leech_vines"
	AugmentClairvoyance  AugmentID = "clairvoyance"
	AugmentLastLifeLens  AugmentID = "last_life_lens"
	AugmentPhantomShroud AugmentID = "phantom_shroud"
	AugmentEternalFlurry AugmentID = "eternal_flurry"
	AugmentDuelFlurry    AugmentID = "duel_flurry"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Weight is the relative draw weight of a rarity.
func (r Rarity) Weight() float64 {
	switch r {
	case RarityCommon:
		return 1
	case RarityRare:
		return 0.6
	case RarityEpic:
		return 0.25
	case RarityLegendary:
		return 0.1
	default:
		return 1
	}
}

// AugmentDefinition is static catalog data. Apply must route HP changes
// through clamping and must fold permanent multipliers into GlobalMultiplier
// at the moment of acquisition; later augments see the product so far, which
// makes acquisition order part of the contract.
type AugmentDefinition struct {
	ID          AugmentID
	Name        string
	Rarity      Rarity
	Description string
	Apply       func(Run) Run
}

const eternalFlurryUses = 999

var catalog = []AugmentDefinition{
	{
		ID:          AugmentSafeGuard,
		Name:        "Safety Net",
		Rarity:      RarityCommon,
		Description: "Next 4 questions: wrong answers deal no HP damage, but you earn 30% fewer points.",
		Apply: func(r Run) Run {
			r.Modifiers.SafeGuard = r.Modifiers.SafeGuard.Grant(4)
			return r
		},
	},
	{
		ID:          AugmentBloodPact,
		Name:        "Blood Pact",
		Rarity:      RarityRare,
		Description: "Lose 3 HP immediately to permanently double your score gains (x2).",
		Apply: func(r Run) Run {
			r = r.withHP(r.HP - 3)
			r.GlobalMultiplier *= 2
			return r
		},
	},
	{
		ID:          AugmentFlurryGambit,
		Name:        "Flurry Gambit",
		Rarity:      RarityRare,
		Description: "Next 4 questions: earn 20% more points, but wrong answers deal 2 HP damage.",
		Apply: func(r Run) Run {
			r.Modifiers.Flurry = r.Modifiers.Flurry.Grant(4)
			return r
		},
	},
	{
		ID:          AugmentHearty,
		Name:        "Hearty",
		Rarity:      RarityCommon,
		Description: "Gain 5 HP now, but you earn 20% fewer points for the rest of the game.",
		Apply: func(r Run) Run {
			if r.Modifiers.HeartyApplied {
				return r
			}
			r.Modifiers.HeartyApplied = true
			r = r.withHP(r.HP + 5)
			r.GlobalMultiplier *= 0.8
			return r
		},
	},
	{
		ID:          AugmentShieldedShell,
		Name:        "Shielded Shell",
		Rarity:      RarityCommon,
		Description: "For the next 4 questions: wrong answers deal half HP damage, and you earn 25% fewer points.",
		Apply: func(r Run) Run {
			r.Modifiers.Shielded = r.Modifiers.Shielded.Grant(4)
			return r
		},
	},
	{
		ID:          AugmentLeechVines,
		Name:        "Leech Vines",
		Rarity:      RarityRare,
		Description: "Next 4 questions: each correct answer heals 1 HP, but you earn 25% fewer points.",
		Apply: func(r Run) Run {
			r.Modifiers.Leech = r.Modifiers.Leech.Grant(4)
			return r
		},
	},
	{
		ID:          AugmentClairvoyance,
		Name:        "Clairvoyance",
		Rarity:      RarityEpic,
		Description: "Next 3 questions: the common name is revealed early, but you earn 20% fewer points.",
		Apply: func(r Run) Run {
			r.Modifiers.Foresight = r.Modifiers.Foresight.Grant(3)
			return r
		},
	},
	{
		ID:          AugmentLastLifeLens,
		Name:        "Last Life Lens",
		Rarity:      RarityLegendary,
		Description: "Set your HP to 1 permanently and zoom the image in, but triple all score gains for the rest of the game.",
		Apply: func(r Run) Run {
			r.Modifiers.Oath = true
			r.Modifiers.ZoomCurse = true
			r.HP = oathCap
			r.GlobalMultiplier *= 3
			return r
		},
	},
	{
		ID:          AugmentPhantomShroud,
		Name:        "Phantom Shroud",
		Rarity:      RarityLegendary,
		Description: "For the rest of the game the animal image is heavily blurred, but you gain 2.5x points.",
		Apply: func(r Run) Run {
			r.Modifiers.BlurCurse = true
			r.GlobalMultiplier *= 2.5
			return r
		},
	},
	{
		ID:          AugmentEternalFlurry,
		Name:        "Eternal Flurry",
		Rarity:      RarityLegendary,
		Description: "Permanent Flurry Gambit: for the rest of the game, you earn 20% more points but wrong answers deal 2 HP damage.",
		Apply: func(r Run) Run {
			r.Modifiers.Flurry = eternalFlurryUses
			return r
		},
	},
	{
		// The description mentions rival lobbies; only the single-player rule exists.
		ID:          AugmentDuelFlurry,
		Name:        "Duel Flurry",
		Rarity:      RarityEpic,
		Description: "Arm a one-question duel. On your next guess, if you are correct you gain triple points; if you are wrong you lose half of your current HP.",
		Apply: func(r Run) Run {
			r.Modifiers.DuelArmed = true
			return r
		},
	},
}

// Catalog returns the built-in augment definitions.
func Catalog() []AugmentDefinition {
	out := make([]AugmentDefinition, len(catalog))
	copy(out, catalog)
	return out
}

func findAugment(defs []AugmentDefinition, id AugmentID) (AugmentDefinition, bool) {
	for _, d := range defs {
		if d.ID == id {
			return d, true
		}
	}
	return AugmentDefinition{}, false
}
