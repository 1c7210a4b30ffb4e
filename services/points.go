package services

// PointsPolicy maps a match result to the points awarded to one side.
// Two policies run in parallel: the standard table feeds match_points, the
// alternate table feeds alternate_points (the secondary tie-break metric).
type PointsPolicy struct {
	Win  int
	Draw int
	Loss int
}

// Award returns the points for a side that scored goalsFor against
// goalsAgainst.
func (p PointsPolicy) Award(goalsFor, goalsAgainst int) int {
	switch {
	case goalsFor > goalsAgainst:
		return p.Win
	case goalsFor < goalsAgainst:
		return p.Loss
	default:
		return p.Draw
	}
}

var (
	StandardPointsPolicy  = PointsPolicy{Win: 3, Draw: 1, Loss: 0}
	AlternatePointsPolicy = PointsPolicy{Win: 5, Draw: 3, Loss: 1}
)
