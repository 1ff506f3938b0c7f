package domain

// CandidateProfileDescription is the fixed description a job posting is scored against.
type CandidateProfileDescription struct {
	Name             string
	TargetTitles     []string
	Locations        []string
	Industries       []string
	StagePreferences []string
	Strengths        []string
}

// CandidateProfile is read-only. Nothing at runtime may modify it.
var CandidateProfile = CandidateProfileDescription{
	Name: "Jason Flatford",
	TargetTitles: []string{
		"Chief Product Officer", "Head of Product", "VP of Product", "SVP of Product",
		"VP of Product Engineering", "VP of Technical Product Management", "Chief Innovation Officer",
		"Chief Experience Officer", "Chief AI Officer", "Chief Transformation Officer",
	},
	Locations: []string{"Roanoke, VA", "Washington DC", "Seattle, WA"},
	Industries: []string{
		"SaaS", "AI/ML", "Gaming/Esports", "Civic Tech", "Cybersecurity", "Health Tech",
		"Infrastructure/Civil Tech", "Developer Platforms",
	},
	StagePreferences: []string{"Series A", "Series B", "Series C", "High-growth <500 employees"},
	Strengths: []string{
		"Scaled Melee.gg to 400K+ users, ~70K MAU, ~13K organizer partners",
		"Architected 2M+ LOC multi-tenant SaaS with real-time analytics, multilingual UX, PCI-aware payments",
		"OpenAI-powered analytics & automation to reduce operational workload",
		"Exec leadership + hands-on (.NET, Java/Kotlin/Spring Boot, React/React Native, AWS/Azure; Docker/Terraform; Postgres/MySQL/Mongo/Redis)",
		"Governance/compliance: GDPR, COPPA, PCI, SOC-2",
		"Partnerships with global brands (Wizards of the Coast, Red Bull); PLG and cross-functional leadership",
	},
}
