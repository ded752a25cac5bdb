package conditions

type Skill string

const (
	SkillLogic             Skill = "logic"
	SkillEncyclopedia      Skill = "encyclopedia"
	SkillRhetoric          Skill = "rhetoric"
	SkillDrama             Skill = "drama"
	SkillConceptualization Skill = "conceptualization"
	SkillVisualCalculus    Skill = "visual_calculus"

	SkillVolition      Skill = "volition"
	SkillInlandEmpire  Skill = "inland_empire"
	SkillEmpathy       Skill = "empathy"
	SkillAuthority     Skill = "authority"
	SkillEspritDeCorps Skill = "esprit_de_corps"
	SkillSuggestion    Skill = "suggestion"

	SkillEndurance          Skill = "endurance"
	SkillPainThreshold      Skill = "pain_threshold"
	SkillPhysicalInstrument Skill = "physical_instrument"
	SkillElectrochemistry   Skill = "electrochemistry"
	SkillShivers            Skill = "shivers"
	SkillHalfLight          Skill = "half_light"

	SkillHandEyeCoordination Skill = "hand_eye_coordination"
	SkillPerception          Skill = "perception"
	SkillReactionSpeed       Skill = "reaction_speed"
	SkillSavoirFaire         Skill = "savoir_faire"
	SkillInterfacing         Skill = "interfacing"
	SkillComposure           Skill = "composure"
)

// AllSkills lists every skill in display order.
var AllSkills = []Skill{
	SkillLogic, SkillEncyclopedia, SkillRhetoric, SkillDrama, SkillConceptualization, SkillVisualCalculus,
	SkillVolition, SkillInlandEmpire, SkillEmpathy, SkillAuthority, SkillEspritDeCorps, SkillSuggestion,
	SkillEndurance, SkillPainThreshold, SkillPhysicalInstrument, SkillElectrochemistry, SkillShivers, SkillHalfLight,
	SkillHandEyeCoordination, SkillPerception, SkillReactionSpeed, SkillSavoirFaire, SkillInterfacing, SkillComposure,
}

type EffectID string

type DeepEffectID string

type Category string

const (
	CategoryPhysical  Category = "physical"
	CategoryMental    Category = "mental"
	CategoryArchetype Category = "archetype"
)

// TriggerKind says how a primary effect feeds the deep-effect resolver.
type TriggerKind string

const (
	TriggerNone       TriggerKind = ""
	TriggerExact      TriggerKind = "exact"
	TriggerCombinator TriggerKind = "combinator"
)

type Trigger struct {
	Kind TriggerKind `json:"kind,omitempty"`
	// Set names the combinator set when Kind is TriggerCombinator.
	Set string `json:"set,omitempty"`
}

type EffectDefinition struct {
	ID             EffectID `json:"id"`
	DisplayName    string   `json:"display_name"`
	SimpleName     string   `json:"simple_name"`
	Category       Category `json:"category"`
	Boosts         []Skill  `json:"boosts,omitempty"`
	Debuffs        []Skill  `json:"debuffs,omitempty"`
	ExclusionGroup string   `json:"exclusion_group,omitempty"`
	Trigger        Trigger  `json:"trigger,omitempty"`
}

type DirectHeal struct {
	Health int `json:"health,omitempty"`
	Morale int `json:"morale,omitempty"`
}

type ConsumptionRule struct {
	Category         string     `json:"category"`
	TargetEffectID   EffectID   `json:"target_effect_id,omitempty"`
	DurationTicks    int        `json:"duration_ticks"`
	Stackable        bool       `json:"stackable"`
	MaxStacks        int        `json:"max_stacks"`
	ClearsEffectIDs  []EffectID `json:"clears_effect_ids,omitempty"`
	SideEffectID     EffectID   `json:"side_effect_id,omitempty"`
	SideEffectChance float64    `json:"side_effect_chance,omitempty"`
	DirectHeal       DirectHeal `json:"direct_heal"`
	Cue              string     `json:"cue,omitempty"`
	Addictive        bool       `json:"addictive,omitempty"`
}

// AddictionThreshold gates a withdrawal on the severity of an addiction.
type AddictionThreshold struct {
	Category    string `json:"category"`
	MinSeverity int    `json:"min_severity"`
}

type WithdrawalRule struct {
	EffectID           EffectID            `json:"effect_id"`
	WithdrawalEffectID EffectID            `json:"withdrawal_effect_id,omitempty"`
	DurationTicks      int                 `json:"duration_ticks"`
	Threshold          *AddictionThreshold `json:"threshold,omitempty"`
}

type QuotePool struct {
	Resist  []string
	Succumb []string
}

// CombinatorSet activates Deep when at least Need of Members are active.
type CombinatorSet struct {
	Name    string
	Members []EffectID
	Need    int
	Deep    DeepEffectID
}

// ExactTrigger activates every deep effect in Deep whenever Source is active.
type ExactTrigger struct {
	Source EffectID
	Deep   []DeepEffectID
}

type DeepEffectDefinition struct {
	ID          DeepEffectID `json:"id"`
	DisplayName string       `json:"display_name"`
	Boosts      []Skill      `json:"boosts,omitempty"`
}
