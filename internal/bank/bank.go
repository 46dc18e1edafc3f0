package bank

// Question is a single multiple-choice question as loaded from the bank.
type Question struct {
	// ID is the load-order position of the question in its bank.
	ID int

	// Prompt is the question text shown to the user.
	Prompt string

	// Options holds the answer choices in display order (at least two).
	Options []string

	// Correct is the text of the correct option. It should match exactly one
	// entry in Options; the bank does not enforce this.
	Correct string
}

// OptionText returns the text of option i, or "" if i is out of range.
func (q Question) OptionText(i int) string {
	if i < 0 || i >= len(q.Options) {
		return ""
	}
	return q.Options[i]
}

// CorrectIndex returns the index of the first option equal to Correct, or -1.
func (q Question) CorrectIndex() int {
	for i, opt := range q.Options {
		if opt == q.Correct {
			return i
		}
	}
	return -1
}

// Bank is an immutable, ordered collection of questions.
type Bank struct {
	source    string
	questions []Question
}

// New builds a bank from records, assigning IDs by position.
func New(source string, records []Record) *Bank {
	qs := make([]Question, len(records))
	for i, r := range records {
		opts := make([]string, len(r.Options))
		copy(opts, r.Options)
		qs[i] = Question{
			ID:      i,
			Prompt:  r.Question,
			Options: opts,
			Correct: r.Correct,
		}
	}
	return &Bank{source: source, questions: qs}
}

// Source returns where the bank was loaded from.
func (b *Bank) Source() string {
	return b.source
}

// Len returns the number of questions.
func (b *Bank) Len() int {
	if b == nil {
		return 0
	}
	return len(b.questions)
}

// Question returns the question with the given ID.
func (b *Bank) Question(id int) (Question, bool) {
	if b == nil || id < 0 || id >= len(b.questions) {
		return Question{}, false
	}
	return b.questions[id], true
}

// Questions returns a copy of all questions in load order.
func (b *Bank) Questions() []Question {
	if b == nil {
		return nil
	}
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}
