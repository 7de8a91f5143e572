package services

import "github.com/Dosada05/doubles-rounds/models"

// SplitRoster derives the active list and the waitlist from pairs in
// registration order. The first maxPairs pairs are active; the rest wait in
// order, which is also their promotion order. A nil limit makes everyone
// active. Membership is never stored: removing an active pair promotes the
// first waiting pair on the next call.
func SplitRoster(pairs []*models.Pair, maxPairs *int) models.Roster {
	cut := len(pairs)
	if maxPairs != nil && *maxPairs >= 0 && *maxPairs < cut {
		cut = *maxPairs
	}

	roster := models.Roster{
		Active:   make([]*models.Pair, cut),
		Waitlist: make([]*models.Pair, len(pairs)-cut),
	}
	copy(roster.Active, pairs[:cut])
	copy(roster.Waitlist, pairs[cut:])
	return roster
}
