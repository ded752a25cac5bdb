package ports

type SimulationMetrics interface {
	RecordApply(category string, success bool)
	RecordTick(expired, withdrawals int)
	RecordCraving(outcome string)
	RecordStoreFailure()
}
