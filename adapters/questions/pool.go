package questions

import (
	"math/rand"

	"github.com/prepview/server/domain/repositories"
)

// behavioural interview questions asked across all sessions
var defaultQuestions = []string{
	"Describe a time you faced a challenge and how you handled it.",
	"Tell me about a time you worked in a team.",
	"Describe a situation where you had to learn something quickly.",
	"Tell me about a time when you had to deal with a difficult teammate or stakeholder.",
	"Describe a time you made a mistake and how you handled it.",
	"Tell me about a time you had to work under pressure or a tight deadline.",
	"Describe a time you showed leadership, even if you were not the formal leader.",
	"Tell me about a time when you received critical feedback. How did you respond?",
	"Describe a time when you disagreed with someone at work or school. What did you do?",
	"Tell me about a time you had to prioritize multiple tasks or projects.",
	"Describe a situation where you went above and beyond what was expected.",
	"Tell me about a time when you had to solve a complex problem.",
	"Describe a time when you had to adapt to a major change.",
	"Tell me about a time when you helped someone else succeed.",
	"Describe a project or situation that you are particularly proud of.",
}

// Pool picks interview questions at random from a fixed pool.
type Pool struct {
	questions []string
}

var _ repositories.QuestionPicker = (*Pool)(nil)

// NewPool creates a pool with the default behavioural question set.
func NewPool() *Pool {
	return &Pool{questions: defaultQuestions}
}

// NewPoolWithQuestions creates a pool with a custom question set.
func NewPoolWithQuestions(questions []string) *Pool {
	return &Pool{questions: questions}
}

// PickQuestions implements repositories.QuestionPicker
func (p *Pool) PickQuestions(n int) []string {
	if len(p.questions) <= n {
		picked := make([]string, len(p.questions))
		copy(picked, p.questions)
		return picked
	}

	shuffled := make([]string, len(p.questions))
	copy(shuffled, p.questions)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled[:n]
}
