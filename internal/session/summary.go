package session

import "time"

// Summary describes the run so far. It is printed when the app exits.
type Summary struct {
	Duration     time.Duration
	StudySeconds int
	PointsEarned int
	Balance      int
	Armor        int
}

// Summary returns the totals for this run.
func (s *Session) Summary() Summary {
	return Summary{
		Duration:     s.now().Sub(s.started),
		StudySeconds: s.Tracker.Elapsed(),
		PointsEarned: s.earned,
		Balance:      s.Ledger.Balance(),
		Armor:        s.Shop.ArmorCount(),
	}
}
