package rules

// DefaultVersion identifies the built-in tables.
const DefaultVersion = "2024.1"

// Default returns the built-in rule tables. Each call returns a fresh copy so
// callers may mutate the result.
func Default() Tables {
	return Tables{
		Version: DefaultVersion,
		Headers: []HeaderPattern{
			{Section: SectionExperience, Pattern: `(?i)^(work\s+)?experience|employment|history|professional\s+experience`},
			{Section: SectionEducation, Pattern: `(?i)^education|academic|university`},
			{Section: SectionSkills, Pattern: `(?i)^skills|technologies|technical\s+skills|competencies`},
			{Section: SectionProjects, Pattern: `(?i)^projects|portfolio|personal\s+projects`},
			{Section: SectionCertifications, Pattern: `(?i)^certifications|awards|honors|achievements`},
			{Section: SectionSummary, Pattern: `(?i)^summary|profile|about|objective`},
		},
		Roles: []RoleKeywords{
			{Role: "software engineer", Keywords: []string{"javascript", "typescript", "python", "java", "react", "node", "aws", "docker", "sql", "git", "ci/cd", "agile", "rest", "api"}},
			{Role: "product manager", Keywords: []string{"roadmap", "stakeholder", "agile", "scrum", "user stories", "kpi", "strategy", "prioritization", "jira", "analytics", "user research"}},
			{Role: "data scientist", Keywords: []string{"python", "sql", "machine learning", "pandas", "numpy", "scikit-learn", "tensorflow", "pytorch", "visualization", "statistics", "modeling"}},
			{Role: "designer", Keywords: []string{"figma", "sketch", "adobe", "prototyping", "wireframing", "user interface", "user experience", "usability", "research", "interaction"}},
		},
		FallbackRole: RoleKeywords{
			Role:     "general",
			Keywords: []string{"communication", "teamwork", "problem solving", "leadership", "project management"},
		},
		Cliches: []string{
			"hardworking", "team player", "passionate", "motivated", "results-oriented",
			"detail-oriented", "go-getter", "synergy", "thought leader", "ninja", "rockstar",
		},
		Buzzwords: []Buzzword{
			{Term: "AI", Required: []string{"pytorch", "tensorflow", "keras", "scikit", "model", "training", "inference", "llm"}},
			{Term: "Blockchain", Required: []string{"solidity", "smart contract", "ethereum", "web3", "consensus"}},
			{Term: "Microservices", Required: []string{"docker", "kubernetes", "grpc", "message queue", "kafka", "rabbitmq", "service mesh"}},
		},
		DepthIndicators: []string{
			"scaling", "concurrency", "latency", "throughput", "optimization", "cache", "database design",
			"system design", "architecture", "security", "authentication", "ci/cd", "testing", "monitoring",
		},
	}
}
