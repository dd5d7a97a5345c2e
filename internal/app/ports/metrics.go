package ports

// OpMetrics counts engine operation outcomes, keyed by operation name
// ("care", "stake", "claim", "raid_attack", ...).
type OpMetrics interface {
	RecordSuccess(op, resultCode string)
	RecordConflict(op string)
	RecordFailure(op string)
}
