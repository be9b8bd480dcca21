package questions

import "testing"

func TestPickQuestionsReturnsDistinctPoolMembers(t *testing.T) {
	pool := NewPool()

	picked := pool.PickQuestions(3)
	if len(picked) != 3 {
		t.Fatalf("Expected 3 questions, got %d", len(picked))
	}

	seen := make(map[string]bool)
	for _, q := range picked {
		if seen[q] {
			t.Errorf("Question picked twice: %q", q)
		}
		seen[q] = true

		found := false
		for _, candidate := range defaultQuestions {
			if candidate == q {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Question not from the pool: %q", q)
		}
	}
}

func TestPickQuestionsSmallPool(t *testing.T) {
	pool := NewPoolWithQuestions([]string{"only one", "only two"})

	picked := pool.PickQuestions(3)
	if len(picked) != 2 {
		t.Errorf("Expected the whole pool of 2, got %d", len(picked))
	}
}

func TestPickQuestionsDoesNotMutatePool(t *testing.T) {
	original := []string{"a", "b", "c", "d", "e"}
	pool := NewPoolWithQuestions([]string{"a", "b", "c", "d", "e"})

	for i := 0; i < 10; i++ {
		pool.PickQuestions(3)
	}

	for i, q := range pool.questions {
		if q != original[i] {
			t.Fatalf("Pool mutated at %d: expected %q, got %q", i, original[i], q)
		}
	}
}
