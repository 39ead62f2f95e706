package quiz

import (
	"reflect"
	"testing"
)

func TestSessionReachesDoneAfterAllAnswers(t *testing.T) {
	s := NewSession()
	tags := []string{"active", "adventurous", "spicy", "rich", "drink", "trendy"}

	for i, tag := range tags {
		if s.Done() {
			t.Fatalf("session done after %d answers, want %d", i, len(tags))
		}
		if s.Index() != i {
			t.Fatalf("index = %d, want %d", s.Index(), i)
		}
		s.Answer(tag)
	}

	if !s.Done() {
		t.Fatal("session not done after answering every question")
	}
	if got := s.Tags(); !reflect.DeepEqual(got, tags) {
		t.Fatalf("tags = %v, want %v", got, tags)
	}
}

func TestSessionIsForwardOnly(t *testing.T) {
	s := NewSessionWith(Questions[:2])
	s.Answer("calm")
	if s.Index() != 1 {
		t.Fatalf("index = %d, want 1", s.Index())
	}
	// There is no way back; the only valid moves are Answer and a
	// fresh Session.
	s.Answer("familiar")
	if !s.Done() {
		t.Fatal("want done after two answers on a two-question bank")
	}
}

func TestAnswerAfterDonePanics(t *testing.T) {
	s := NewSessionWith(Questions[:1])
	s.Answer("calm")

	defer func() {
		if recover() == nil {
			t.Fatal("Answer after terminal state did not panic")
		}
	}()
	s.Answer("familiar")
}

func TestTagsReturnsCopy(t *testing.T) {
	s := NewSessionWith(Questions[:2])
	s.Answer("active")
	got := s.Tags()
	got[0] = "mutated"
	if s.Tags()[0] != "active" {
		t.Fatal("Tags exposed internal state")
	}
}

func TestQuestionBankShape(t *testing.T) {
	if len(Questions) != 6 {
		t.Fatalf("question bank has %d entries, want 6", len(Questions))
	}
	for i, q := range Questions {
		if len(q.Answers) != 2 {
			t.Fatalf("question %d has %d answers, want 2", i+1, len(q.Answers))
		}
		for _, a := range q.Answers {
			if a.Type == "" {
				t.Fatalf("question %d has an answer without a type tag", i+1)
			}
		}
	}
}
