package domain

// StatusSequence is the ordered ticket lifecycle shown as kanban columns.
var StatusSequence = []TicketStatus{
	StatusNew,
	StatusInProgress,
	StatusWaitingOnUser,
	StatusResolved,
	StatusClosed,
}

// NextStatus returns the lifecycle state following s, clamped at the last
// element. A status outside the sequence is returned unchanged.
func NextStatus(s TicketStatus) TicketStatus {
	for i, known := range StatusSequence {
		if s != known {
			continue
		}
		if i == len(StatusSequence)-1 {
			return s
		}
		return StatusSequence[i+1]
	}
	return s
}

// PrevStatus returns the lifecycle state preceding s, clamped at the first
// element. A status outside the sequence is returned unchanged.
func PrevStatus(s TicketStatus) TicketStatus {
	for i, known := range StatusSequence {
		if s != known {
			continue
		}
		if i == 0 {
			return s
		}
		return StatusSequence[i-1]
	}
	return s
}
