package simulation

// shouldInjectChallenge decides whether the next assistant turn is a
// challenge. The rate challengesRemaining/tasksRemaining distributes the
// remaining challenges across the remaining tasks in expectation: later
// turns see a higher effective rate as the denominator shrinks, but no
// single turn is ever guaranteed a challenge. roll is a uniform value in
// [0,1), injected by the caller so the decision stays a pure function.
func shouldInjectChallenge(challengesInserted, challengesCount, tasksRemaining int, roll float64) bool {
	challengesRemaining := challengesCount - challengesInserted
	if challengesRemaining <= 0 || tasksRemaining <= 0 {
		return false
	}
	return roll < float64(challengesRemaining)/float64(tasksRemaining)
}
