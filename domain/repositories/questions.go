package repositories

// QuestionPicker selects the interview questions for a new session.
type QuestionPicker interface {
	// PickQuestions returns n question texts. When the pool holds fewer than
	// n questions, the whole pool is returned.
	PickQuestions(n int) []string
}
