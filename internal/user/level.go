package user

// Tier represents a band of impact points
type Tier struct {
	Level     int
	Name      string
	MinPoints int
	MaxPoints int
}

// Available tiers in ascending order
var Tiers = []Tier{
	{Level: 1, Name: "Seedling", MinPoints: 0, MaxPoints: 249},
	{Level: 2, Name: "Sprout", MinPoints: 250, MaxPoints: 749},
	{Level: 3, Name: "Sapling", MinPoints: 750, MaxPoints: 1499},
	{Level: 4, Name: "Grove", MinPoints: 1500, MaxPoints: 2999},
	{Level: 5, Name: "Forest", MinPoints: 3000, MaxPoints: 5999},
	{Level: 6, Name: "Ecosystem", MinPoints: 6000, MaxPoints: 999999},
}

// Points granted for different community actions
const (
	EventJoinedPoints    = 25
	EventOrganizedPoints = 50
	IssueReportedPoints  = 15
	IssueResolvedPoints  = 40
	PostCreatedPoints    = 10
)

// PointsFor returns the points an action grants
func PointsFor(action string) int {
	switch action {
	case "event_joined":
		return EventJoinedPoints
	case "event_organized":
		return EventOrganizedPoints
	case "issue_reported":
		return IssueReportedPoints
	case "issue_resolved":
		return IssueResolvedPoints
	case "post_created":
		return PostCreatedPoints
	default:
		return 0
	}
}

// TierForPoints returns the tier for a given point total
func TierForPoints(points int) Tier {
	for _, tier := range Tiers {
		if points >= tier.MinPoints && points <= tier.MaxPoints {
			return tier
		}
	}
	return Tiers[len(Tiers)-1] // Everything above the table caps at the top tier
}

// LevelForPoints returns the level for a given point total
func LevelForPoints(points int) int {
	return TierForPoints(points).Level
}
