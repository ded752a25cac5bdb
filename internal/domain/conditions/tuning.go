package conditions

const (
	MaxVital = 100

	UsesPerSeverity   = 4
	MaxAddictionLevel = 5

	// ItemConsumedDelayMs is the hint attached to the follow-up notification
	// that names the item taken during a relapse.
	ItemConsumedDelayMs = 1500
)
