package roster

// Developer is an individual entity receiving reviewers. Names are exact
// identifiers: comparisons are case- and whitespace-sensitive.
type Developer struct {
	Name               string
	ReviewerNumber     int // 0 means "use the configured default"
	PreferredReviewers []string
	Reviewers          []string
}

// Team is a group entity; its reviewers are drawn from its own members
// first, then from the experienced pool outside the team.
type Team struct {
	Name           string
	Members        []string
	ReviewerNumber int
	Reviewers      []string
}
