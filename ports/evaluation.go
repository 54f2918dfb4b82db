package ports

// Message is one diagnostic emitted during evaluation, e.g.
// RandomReal::array.
type Message struct {
	Symbol string `json:"symbol"`
	Tag    string `json:"tag"`
	Text   string `json:"text"`
}

// String renders the message the way the evaluator prints it.
func (m Message) String() string {
	return m.Symbol + "::" + m.Tag + ": " + m.Text
}

// Evaluation is the host evaluator's view offered to builtins.
type Evaluation interface {
	// Definitions returns the global configuration store of the evaluation.
	Definitions() ConfigStore

	// Message reports a diagnostic to the user.
	Message(msg Message)
}

// Builtin is a function of the host language implemented in Go.
type Builtin interface {
	// Name returns the head the builtin is registered under.
	Name() string

	// Doc returns the usage documentation in markdown.
	Doc() string
}
