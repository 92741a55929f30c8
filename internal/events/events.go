package events

var SearchPerformedTopic = "SearchPerformedEvent"

// SearchPerformed is published after every completed search request so
// observers (metrics, audit logging) stay decoupled from the orchestrator.
type SearchPerformed struct {
	Query       string
	Source      string
	ResultCount int
	Duration    float64 // seconds
}

var DigestCompletedTopic = "DigestCompletedEvent"

type DigestCompleted struct {
	Sent     int
	Skipped  int
	Failed   int
	Duration float64 // seconds
}
