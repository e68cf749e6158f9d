package api

// FamilySummary is the wire form of one registry entry.
type FamilySummary struct {
	Name        string            `json:"name"`
	Likelihood  string            `json:"likelihood"`
	Parent      string            `json:"parent"`
	Link        string            `json:"link"`
	Priors      map[string]string `json:"priors"`
	Description string            `json:"description,omitempty"`
}

// VariableSummary is the wire form of one registered random variable.
type VariableSummary struct {
	Name         string `json:"name"`
	Dist         string `json:"dist"`
	Summary      string `json:"summary"`
	Observed     bool   `json:"observed"`
	Observations int    `json:"observations,omitempty"`
}

// ModelSummary is the stored result of a build request.
type ModelSummary struct {
	ID        string            `json:"id"`
	Object    string            `json:"object"`
	Name      string            `json:"name"`
	Family    string            `json:"family"`
	CreatedAt int64             `json:"created_at"`
	Labels    []string          `json:"labels"`
	Variables []VariableSummary `json:"variables"`
}

// APIError is the error payload envelope.
type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param,omitempty"`
}
