package harness

// TraceEvent records one executed step.
type TraceEvent struct {
	Step   int      `json:"step"`
	Op     string   `json:"op"` // "seed" or "sample"
	Date   string   `json:"date"`
	User   string   `json:"user,omitempty"`
	Count  int      `json:"count,omitempty"`
	Theme  string   `json:"theme,omitempty"`
	Seed   string   `json:"seed_hex,omitempty"`
	Words  []string `json:"words,omitempty"`
	Error  string   `json:"error,omitempty"` // error kind when the step failed
	Detail string   `json:"-"`               // full error text, kept out of goldens
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expectation, check and assertion held.
	Pass bool `json:"pass"`

	// Trace contains one event per step in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// toCanonical converts the event for model.MarshalCanonical.
func (e TraceEvent) toCanonical() map[string]any {
	m := map[string]any{
		"step": e.Step,
		"op":   e.Op,
		"date": e.Date,
	}
	if e.Op == OpSample {
		m["user"] = e.User
		m["count"] = e.Count
	}
	if e.Theme != "" {
		m["theme"] = e.Theme
	}
	if e.Seed != "" {
		m["seed_hex"] = e.Seed
	}
	if e.Words != nil {
		m["words"] = e.Words
	}
	if e.Error != "" {
		m["error"] = e.Error
	}
	return m
}
