package conditions

const (
	EffectIntoxicated        EffectID = "intoxicated"
	EffectStimulated         EffectID = "stimulated"
	EffectNicotineBuzz       EffectID = "nicotine_buzz"
	EffectExhaustion         EffectID = "exhaustion"
	EffectWounded            EffectID = "wounded"
	EffectHungover           EffectID = "hungover"
	EffectComedown           EffectID = "comedown"
	EffectNicotineWithdrawal EffectID = "nicotine_withdrawal"
	EffectNauseous           EffectID = "nauseous"
	EffectWellFed            EffectID = "well_fed"
	EffectCaffeinated        EffectID = "caffeinated"
	EffectSedated            EffectID = "sedated"

	EffectManic      EffectID = "manic"
	EffectMelancholy EffectID = "melancholy"
	EffectNearDeath  EffectID = "near_death"
	EffectInspired   EffectID = "inspired"
	EffectParanoid   EffectID = "paranoid"

	ArchetypeHardboiled  EffectID = "hardboiled"
	ArchetypeSuperstar   EffectID = "superstar"
	ArchetypeApologetic  EffectID = "apologetic"
	ArchetypeApocalyptic EffectID = "apocalyptic"
	ArchetypeByTheBook   EffectID = "by_the_book"
	ArchetypeArtistic    EffectID = "artistic"
)

const (
	DeepAncientReptilianBrain DeepEffectID = "ancient_reptilian_brain"
	DeepLimbicSystem          DeepEffectID = "limbic_system"
	DeepSpinalCord            DeepEffectID = "spinal_cord"
)

const (
	ConsumableCigarette   = "cigarette"
	ConsumableAlcohol     = "alcohol"
	ConsumableStimulant   = "stimulant"
	ConsumableHealingItem = "healing-item"
	ConsumablePainkiller  = "painkiller"
	ConsumableFood        = "food"
	ConsumableCoffee      = "coffee"
	ConsumableIncense     = "incense"
	ConsumableNecktie     = "necktie"
	ConsumableBadge       = "badge"
)

const (
	archetypeGroup = "archetype"
	partySet       = "party"
)

var defaultEffects = []EffectDefinition{
	{
		ID: EffectIntoxicated, DisplayName: "Intoxicated", SimpleName: "Drunk", Category: CategoryPhysical,
		Boosts:  []Skill{SkillElectrochemistry, SkillDrama, SkillSuggestion},
		Debuffs: []Skill{SkillHandEyeCoordination, SkillReactionSpeed, SkillComposure, SkillLogic},
		Trigger: Trigger{Kind: TriggerCombinator, Set: partySet},
	},
	{
		ID: EffectStimulated, DisplayName: "Stimulated", SimpleName: "Wired", Category: CategoryPhysical,
		Boosts:  []Skill{SkillReactionSpeed, SkillPerception, SkillElectrochemistry},
		Debuffs: []Skill{SkillComposure, SkillEmpathy},
		Trigger: Trigger{Kind: TriggerCombinator, Set: partySet},
	},
	{
		ID: EffectNicotineBuzz, DisplayName: "Nicotine Buzz", SimpleName: "Smoked", Category: CategoryPhysical,
		Boosts:  []Skill{SkillConceptualization, SkillComposure},
		Debuffs: []Skill{SkillEndurance},
	},
	{
		ID: EffectExhaustion, DisplayName: "Exhaustion", SimpleName: "Tired", Category: CategoryPhysical,
		Debuffs: []Skill{SkillEndurance, SkillReactionSpeed, SkillPerception, SkillLogic},
	},
	{
		ID: EffectWounded, DisplayName: "Wounded", SimpleName: "Hurt", Category: CategoryPhysical,
		Debuffs: []Skill{SkillPhysicalInstrument, SkillHandEyeCoordination, SkillSavoirFaire},
	},
	{
		ID: EffectHungover, DisplayName: "Hungover", SimpleName: "Rough", Category: CategoryPhysical,
		Boosts:  []Skill{SkillInlandEmpire},
		Debuffs: []Skill{SkillLogic, SkillPerception, SkillComposure},
	},
	{
		ID: EffectComedown, DisplayName: "Comedown", SimpleName: "Crashing", Category: CategoryPhysical,
		Debuffs: []Skill{SkillVolition, SkillReactionSpeed, SkillEndurance},
	},
	{
		ID: EffectNicotineWithdrawal, DisplayName: "Nicotine Withdrawal", SimpleName: "Itchy", Category: CategoryPhysical,
		Debuffs: []Skill{SkillComposure, SkillVolition},
	},
	{
		ID: EffectNauseous, DisplayName: "Nauseous", SimpleName: "Queasy", Category: CategoryPhysical,
		Debuffs: []Skill{SkillComposure, SkillEndurance},
	},
	{
		ID: EffectWellFed, DisplayName: "Well Fed", SimpleName: "Full", Category: CategoryPhysical,
		Boosts: []Skill{SkillEndurance},
	},
	{
		ID: EffectCaffeinated, DisplayName: "Caffeinated", SimpleName: "Alert", Category: CategoryPhysical,
		Boosts:  []Skill{SkillPerception, SkillLogic},
		Debuffs: []Skill{SkillComposure},
	},
	{
		ID: EffectSedated, DisplayName: "Sedated", SimpleName: "Numb", Category: CategoryPhysical,
		Boosts:  []Skill{SkillPainThreshold},
		Debuffs: []Skill{SkillReactionSpeed, SkillPerception},
	},
	{
		ID: EffectManic, DisplayName: "Manic", SimpleName: "Racing", Category: CategoryMental,
		Boosts:  []Skill{SkillConceptualization, SkillRhetoric, SkillElectrochemistry},
		Debuffs: []Skill{SkillLogic, SkillVolition},
		Trigger: Trigger{Kind: TriggerCombinator, Set: partySet},
	},
	{
		ID: EffectMelancholy, DisplayName: "Melancholy", SimpleName: "Low", Category: CategoryMental,
		Boosts:  []Skill{SkillInlandEmpire},
		Debuffs: []Skill{SkillVolition, SkillAuthority, SkillEspritDeCorps},
	},
	{
		ID: EffectNearDeath, DisplayName: "Near Death", SimpleName: "Fading", Category: CategoryMental,
		Boosts:  []Skill{SkillHalfLight, SkillShivers},
		Debuffs: []Skill{SkillComposure},
		Trigger: Trigger{Kind: TriggerExact},
	},
	{
		ID: EffectInspired, DisplayName: "Inspired", SimpleName: "Lit Up", Category: CategoryMental,
		Boosts: []Skill{SkillConceptualization, SkillDrama, SkillInlandEmpire},
	},
	{
		ID: EffectParanoid, DisplayName: "Paranoid", SimpleName: "Watched", Category: CategoryMental,
		Boosts:  []Skill{SkillHalfLight, SkillPerception},
		Debuffs: []Skill{SkillEmpathy, SkillSuggestion},
	},
	{
		ID: ArchetypeHardboiled, DisplayName: "Hardboiled", SimpleName: "Hardboiled", Category: CategoryArchetype,
		Boosts: []Skill{SkillAuthority, SkillPhysicalInstrument}, Debuffs: []Skill{SkillEmpathy},
		ExclusionGroup: archetypeGroup,
	},
	{
		ID: ArchetypeSuperstar, DisplayName: "Superstar", SimpleName: "Superstar", Category: CategoryArchetype,
		Boosts: []Skill{SkillDrama, SkillSavoirFaire}, Debuffs: []Skill{SkillLogic},
		ExclusionGroup: archetypeGroup,
	},
	{
		ID: ArchetypeApologetic, DisplayName: "Apologetic", SimpleName: "Apologetic", Category: CategoryArchetype,
		Boosts: []Skill{SkillEmpathy, SkillSuggestion}, Debuffs: []Skill{SkillAuthority},
		ExclusionGroup: archetypeGroup,
	},
	{
		ID: ArchetypeApocalyptic, DisplayName: "Apocalyptic", SimpleName: "Apocalyptic", Category: CategoryArchetype,
		Boosts: []Skill{SkillInlandEmpire, SkillShivers}, Debuffs: []Skill{SkillEspritDeCorps},
		ExclusionGroup: archetypeGroup,
	},
	{
		ID: ArchetypeByTheBook, DisplayName: "By the Book", SimpleName: "By the Book", Category: CategoryArchetype,
		Boosts: []Skill{SkillLogic, SkillEspritDeCorps}, Debuffs: []Skill{SkillConceptualization},
		ExclusionGroup: archetypeGroup,
	},
	{
		ID: ArchetypeArtistic, DisplayName: "Artistic", SimpleName: "Artistic", Category: CategoryArchetype,
		Boosts: []Skill{SkillConceptualization, SkillVisualCalculus}, Debuffs: []Skill{SkillEndurance},
		ExclusionGroup: archetypeGroup,
	},
}

var defaultConsumables = []ConsumptionRule{
	{
		Category: ConsumableCigarette, TargetEffectID: EffectNicotineBuzz,
		DurationTicks: 5, Stackable: true, MaxStacks: 3, Cue: "smoke", Addictive: true,
	},
	{
		Category: ConsumableAlcohol, TargetEffectID: EffectIntoxicated,
		DurationTicks: 6, Stackable: true, MaxStacks: 3,
		SideEffectID: EffectNauseous, SideEffectChance: 0.15,
		DirectHeal: DirectHeal{Morale: 5}, Cue: "bubbles", Addictive: true,
	},
	{
		Category: ConsumableStimulant, TargetEffectID: EffectStimulated,
		DurationTicks: 4, Stackable: true, MaxStacks: 2,
		ClearsEffectIDs: []EffectID{EffectExhaustion},
		SideEffectID:    EffectManic, SideEffectChance: 0.25,
		Cue: "sparks", Addictive: true,
	},
	{
		Category: ConsumableHealingItem, MaxStacks: 1,
		ClearsEffectIDs: []EffectID{EffectWounded},
		DirectHeal:      DirectHeal{Health: 25}, Cue: "heal",
	},
	{
		Category: ConsumablePainkiller, TargetEffectID: EffectSedated,
		DurationTicks: 4, MaxStacks: 1,
		DirectHeal: DirectHeal{Health: 10}, Cue: "heal",
	},
	{
		Category: ConsumableFood, TargetEffectID: EffectWellFed,
		DurationTicks: 8, MaxStacks: 1,
		ClearsEffectIDs: []EffectID{EffectNauseous},
		DirectHeal:      DirectHeal{Health: 5, Morale: 5}, Cue: "crumbs",
	},
	{
		Category: ConsumableCoffee, TargetEffectID: EffectCaffeinated,
		DurationTicks: 3, Stackable: true, MaxStacks: 2,
		SideEffectID: EffectParanoid, SideEffectChance: 0.05, Cue: "steam",
	},
	{
		Category: ConsumableIncense, TargetEffectID: EffectInspired,
		DurationTicks: 5, MaxStacks: 1, Cue: "smoke",
	},
	{
		Category: ConsumableNecktie, TargetEffectID: ArchetypeSuperstar,
		DurationTicks: 10, MaxStacks: 1, Cue: "glitter",
	},
	{
		Category: ConsumableBadge, TargetEffectID: ArchetypeByTheBook,
		DurationTicks: 10, MaxStacks: 1, Cue: "shine",
	},
}

var defaultWithdrawals = []WithdrawalRule{
	{EffectID: EffectIntoxicated, WithdrawalEffectID: EffectHungover, DurationTicks: 4},
	{EffectID: EffectStimulated, WithdrawalEffectID: EffectComedown, DurationTicks: 3},
	{EffectID: EffectManic, WithdrawalEffectID: EffectMelancholy, DurationTicks: 3},
	{EffectID: EffectCaffeinated, WithdrawalEffectID: EffectExhaustion, DurationTicks: 2},
	{
		EffectID: EffectNicotineBuzz, WithdrawalEffectID: EffectNicotineWithdrawal, DurationTicks: 4,
		Threshold: &AddictionThreshold{Category: ConsumableCigarette, MinSeverity: 2},
	},
}

var defaultQuotes = map[string]QuotePool{
	ConsumableCigarette: {
		Resist: []string{
			"The pack stays in the pocket. For now.",
			"You roll the lighter between your fingers and put it away.",
			"Your lungs thank you. Your hands do not.",
		},
		Succumb: []string{
			"The lighter is already lit before you decide anything.",
			"One more. It's practically medicinal.",
			"Smoke curls up and the world goes quiet for a moment.",
		},
	},
	ConsumableAlcohol: {
		Resist: []string{
			"You look at the bottle. The bottle looks back. You win, this time.",
			"Not tonight. Maybe not tonight.",
			"You pour it down the sink in your mind and walk away.",
		},
		Succumb: []string{
			"Just a small one, to steady the nerves.",
			"The cap comes off with a sound like forgiveness.",
			"It burns on the way down. Good.",
		},
	},
	ConsumableStimulant: {
		Resist: []string{
			"Your heart is fast enough already.",
			"You close the tin. The itch stays open.",
			"No. You need to be here for this.",
		},
		Succumb: []string{
			"Everything gets sharp and loud at once.",
			"Your teeth buzz. Your thoughts buzz louder.",
			"Speed is a kind of clarity, you tell yourself.",
		},
	},
}

var defaultDeepEffects = []DeepEffectDefinition{
	{ID: DeepAncientReptilianBrain, DisplayName: "Ancient Reptilian Brain", Boosts: []Skill{SkillHalfLight}},
	{ID: DeepLimbicSystem, DisplayName: "Limbic System", Boosts: []Skill{SkillEmpathy}},
	{ID: DeepSpinalCord, DisplayName: "Spinal Cord", Boosts: []Skill{SkillPhysicalInstrument}},
}

var defaultExactTriggers = []ExactTrigger{
	{Source: EffectNearDeath, Deep: []DeepEffectID{DeepAncientReptilianBrain, DeepLimbicSystem}},
}

var defaultCombinators = []CombinatorSet{
	{
		Name:    partySet,
		Members: []EffectID{EffectIntoxicated, EffectStimulated, EffectManic},
		Need:    2,
		Deep:    DeepSpinalCord,
	},
}
