package match

// Status represents the lifecycle stage of a match. It only moves forward,
// except for an accepted rematch which restarts play.
type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusInProgress Status = "in-progress"
	StatusFinished   Status = "finished"
)

// ParticipantStatus is a participant's state within the current round.
type ParticipantStatus string

const (
	Playing  ParticipantStatus = "playing"
	Standing ParticipantStatus = "standing"
	Busted   ParticipantStatus = "busted"
)
