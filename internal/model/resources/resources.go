package resources

// Hotline describes a crisis hotline surfaced both in crisis escalation
// responses and in the resource directory.
type Hotline struct {
	Name      string `json:"name"`
	Number    string `json:"number"`
	Country   string `json:"country"`
	Available string `json:"available,omitempty"`
}

// Resource points at an external mental health service.
type Resource struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Directory is the static payload served by the resources endpoint.
type Directory struct {
	CrisisHotlines []Hotline  `json:"crisis_hotlines"`
	Resources      []Resource `json:"resources"`
}

// CrisisHotlines returns the fixed hotline list attached to crisis
// escalation responses, in priority order.
func CrisisHotlines() []Hotline {
	return []Hotline{
		{Name: "Mentally Aware Nigeria Initiative", Number: "09010000000", Country: "Nigeria"},
		{Name: "Suicide & Crisis Lifeline", Number: "988", Country: "Global"},
		{Name: "Emergency Services", Number: "112", Country: "Nigeria"},
	}
}

// Seed provides the static resource directory.
func Seed() Directory {
	hotlines := CrisisHotlines()
	for i := range hotlines {
		hotlines[i].Available = "24/7"
	}

	return Directory{
		CrisisHotlines: hotlines,
		Resources: []Resource{
			{
				Type:        "therapy",
				Name:        "BetterHelp Nigeria",
				Description: "Online therapy platform",
				URL:         "https://www.betterhelp.com",
			},
			{
				Type:        "support_group",
				Name:        "Mental Health Foundation Nigeria",
				Description: "Local support groups",
				URL:         "https://www.mhfnigeria.org",
			},
		},
	}
}
