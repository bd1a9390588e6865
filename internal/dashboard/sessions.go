package dashboard

// PlaceholderSessions stands in for a session backend that does not exist
// yet. A fresh slice is returned on every call.
func PlaceholderSessions() []Session {
	return []Session{{
		Key:    "agent:main:main",
		Model:  "claude-sonnet-4",
		Tokens: TokenUsage{Used: 97000, Max: 200000},
		Cost:   0.31,
		Age:    "16h 42m",
		Status: "active",
	}}
}
