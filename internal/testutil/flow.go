package testutil

// FixedSessionGenerator returns the same session token every time.
//
// Forms stamp their log lines with a session token; a fixed one keeps
// captured logs and scenario traces byte-identical between runs.
//
// Thread-safety: FixedSessionGenerator is stateless and safe for concurrent use.
type FixedSessionGenerator struct {
	token string
}

// NewFixedSessionGenerator creates a new fixed session token generator.
//
// If token is empty, Generate() returns "test-session-default".
func NewFixedSessionGenerator(token string) *FixedSessionGenerator {
	if token == "" {
		token = "test-session-default"
	}
	return &FixedSessionGenerator{token: token}
}

// Generate returns the fixed token.
//
// Implements form.SessionGenerator.
func (g *FixedSessionGenerator) Generate() string {
	return g.token
}
