package quiz

// settleMsg fires after the settle delay that follows an answer. The
// generation token guards against a stale timer advancing a newer question.
type settleMsg struct {
	gen int
}

// flagStateMsg carries the persisted flag state for the word with ID id.
type flagStateMsg struct {
	id      string
	flagged bool
}

// answerErrMsg surfaces a store failure during answer resolution.
type answerErrMsg struct {
	err error
}
