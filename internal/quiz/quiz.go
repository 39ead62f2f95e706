package quiz

import "fmt"

// Answer maps a displayed choice onto its taste type tag.
type Answer struct {
	Label string
	Type  string
}

// Question is one entry of the static question bank.
type Question struct {
	Text    string
	Answers []Answer
}

// Questions is the fixed six-question bank of the taste test.
// 질문과 답변-타입 매핑은 정적 데이터이며 계산되지 않는다.
var Questions = []Question{
	{
		Text: "1. 혼밥을 하러 갔을 때, 어떤 분위기의 식당을 더 좋아하나요?",
		Answers: []Answer{
			{Label: "a. 사람 많고 북적북적한 식당", Type: "active"},
			{Label: "b. 조용하고 아늑한 식당", Type: "calm"},
		},
	},
	{
		Text: "2. 메뉴를 고를 때 나는...",
		Answers: []Answer{
			{Label: "a. 항상 새로운 음식을 도전해본다", Type: "adventurous"},
			{Label: "b. 내가 좋아하는 익숙한 메뉴를 고른다", Type: "familiar"},
		},
	},
	{
		Text: "3. 음식에 대해 나는...",
		Answers: []Answer{
			{Label: "a. 매콤하거나 자극적인 맛을 좋아한다", Type: "spicy"},
			{Label: "b. 담백하고 순한 맛을 선호한다", Type: "mild"},
		},
	},
	{
		Text: "4. 국물 있는 음식을 고를 때 나는...",
		Answers: []Answer{
			{Label: "a. 진하고 기름진 국물이 좋다", Type: "rich"},
			{Label: "b. 맑고 깔끔한 국물이 좋다", Type: "light"},
		},
	},
	{
		Text: "5. 음식을 먹고 나면...",
		Answers: []Answer{
			{Label: "a. 입가심으로 음료를 마신다", Type: "drink"},
			{Label: "b. 디저트로 케이크나 아이스크림을 먹는다", Type: "dessert"},
		},
	},
	{
		Text: "6. 친구가 나에게 추천을 부탁할 때 나는...",
		Answers: []Answer{
			{Label: "a. 요즘 핫한 음식을 추천한다", Type: "trendy"},
			{Label: "b. 무난하고 실패 없는 음식을 추천한다", Type: "safe"},
		},
	},
}

// Session advances through the question bank, accumulating one type
// tag per answer. The flow is forward-only: there is no previous
// question, a fresh test always starts a new Session.
type Session struct {
	questions []Question
	index     int
	selected  []string
}

// NewSession starts a session over the default bank.
func NewSession() *Session {
	return NewSessionWith(Questions)
}

// NewSessionWith starts a session over a custom bank.
func NewSessionWith(questions []Question) *Session {
	return &Session{
		questions: questions,
		selected:  make([]string, 0, len(questions)),
	}
}

// Current returns the question awaiting an answer. Calling Current on
// a finished session panics, like Answer.
func (s *Session) Current() Question {
	if s.Done() {
		panic("quiz: Current called on a finished session")
	}
	return s.questions[s.index]
}

// Index returns the zero-based position of the current question.
// Invariant: Index() == len(Tags()) at all times.
func (s *Session) Index() int { return s.index }

// Done reports whether every question has been answered.
func (s *Session) Done() bool { return s.index >= len(s.questions) }

// Answer records tag for the current question and advances. Answering
// a finished session is a programming error and panics; the caller is
// responsible for routing away from the quiz once terminal.
func (s *Session) Answer(tag string) {
	if s.Done() {
		panic(fmt.Sprintf("quiz: Answer(%q) after session finished", tag))
	}
	s.selected = append(s.selected, tag)
	s.index++
}

// Tags returns a copy of the accumulated tag vector, in answer order.
// Only meaningful as a terminal result once Done reports true.
func (s *Session) Tags() []string {
	out := make([]string, len(s.selected))
	copy(out, s.selected)
	return out
}
