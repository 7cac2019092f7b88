package domain

import (
	"errors"
	"fmt"
)

// Question is a multiple-choice entry of the quiz bank.
type Question struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"-"`
	Explanation  string   `json:"-"`
}

// Validate checks that the question has options and a valid correct index.
func (q Question) Validate() error {
	if q.Prompt == "" {
		return errors.New("question has no prompt")
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("question %q: needs at least two options", q.Prompt)
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("question %q: correct index %d out of range", q.Prompt, q.CorrectIndex)
	}
	return nil
}

// Tier is the quiz outcome classification.
type Tier string

const (
	TierExpert        Tier = "EXPERT"
	TierProficient    Tier = "PROFICIENT"
	TierNeedsTraining Tier = "NEEDS_TRAINING"
)

// Absolute tier thresholds for the 20-question bank.
const (
	expertMinScore     = 16
	proficientMinScore = 12
)

// TierForScore classifies a final score.
func TierForScore(score int) Tier {
	switch {
	case score >= expertMinScore:
		return TierExpert
	case score >= proficientMinScore:
		return TierProficient
	default:
		return TierNeedsTraining
	}
}

// Advice returns the closing sentence shown with a tier.
func (t Tier) Advice() string {
	switch t {
	case TierExpert:
		return "Excellent! You demonstrate advanced disaster management knowledge."
	case TierProficient:
		return "Good understanding of emergency procedures. Consider additional training."
	default:
		return "Review emergency protocols and consider professional training courses."
	}
}

// QuizSession is the serializable progress of one quiz run. It is a value:
// transitions return a new session and never modify their input.
type QuizSession struct {
	ID       string `json:"id"`
	Index    int    `json:"index"`
	Score    int    `json:"score"`
	Answered bool   `json:"answered"`
	Finished bool   `json:"finished"`
	// Version is bumped by the session store on every successful write.
	Version int64 `json:"version"`
}

// NewQuizSession returns InProgress(0, 0).
func NewQuizSession(id string) QuizSession {
	return QuizSession{ID: id}
}

// AnswerResult is the feedback for one answered question.
type AnswerResult struct {
	Correct       bool   `json:"correct"`
	Explanation   string `json:"explanation"`
	CorrectOption string `json:"correct_option"`
}

// QuestionBank is a fixed, ordered sequence of questions.
type QuestionBank struct {
	questions []Question
}

// NewQuestionBank validates and wraps questions.
func NewQuestionBank(questions []Question) (*QuestionBank, error) {
	if len(questions) == 0 {
		return nil, errors.New("question bank is empty")
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return &QuestionBank{questions: questions}, nil
}

// DefaultQuestionBank returns the built-in 20-question bank.
func DefaultQuestionBank() *QuestionBank {
	b, err := NewQuestionBank(DefaultQuestions())
	if err != nil {
		panic(err)
	}
	return b
}

// Len returns the number of questions.
func (b *QuestionBank) Len() int { return len(b.questions) }

// Question returns the question at index i.
func (b *QuestionBank) Question(i int) (Question, bool) {
	if i < 0 || i >= len(b.questions) {
		return Question{}, false
	}
	return b.questions[i], true
}

// Current returns the question the session is positioned on.
func (b *QuestionBank) Current(s QuizSession) (Question, error) {
	if s.Finished {
		return Question{}, fmt.Errorf("current question: session finished: %w", ErrInvalidTransition)
	}
	q, ok := b.Question(s.Index)
	if !ok {
		return Question{}, fmt.Errorf("current question: index %d out of range: %w", s.Index, ErrInvalidTransition)
	}
	return q, nil
}

// Answer scores choice against the current question without advancing.
// Answering twice, or answering a finished session, is rejected.
func (b *QuestionBank) Answer(s QuizSession, choice int) (AnswerResult, QuizSession, error) {
	q, err := b.Current(s)
	if err != nil {
		return AnswerResult{}, s, err
	}
	if s.Answered {
		return AnswerResult{}, s, fmt.Errorf("answer: question %d already answered: %w", s.Index+1, ErrInvalidTransition)
	}
	if choice < 0 || choice >= len(q.Options) {
		return AnswerResult{}, s, fmt.Errorf("answer: choice %d: %w", choice, ErrInvalidChoice)
	}

	next := s
	next.Answered = true
	correct := choice == q.CorrectIndex
	if correct {
		next.Score++
	}
	return AnswerResult{
		Correct:       correct,
		Explanation:   q.Explanation,
		CorrectOption: q.Options[q.CorrectIndex],
	}, next, nil
}

// Advance moves past an answered question, finishing after the last one.
func (b *QuestionBank) Advance(s QuizSession) (QuizSession, error) {
	if s.Finished {
		return s, fmt.Errorf("advance: session finished: %w", ErrInvalidTransition)
	}
	if !s.Answered {
		return s, fmt.Errorf("advance: question %d not answered: %w", s.Index+1, ErrInvalidTransition)
	}

	next := s
	next.Answered = false
	if s.Index+1 < len(b.questions) {
		next.Index++
		return next, nil
	}
	next.Index = len(b.questions)
	next.Finished = true
	return next, nil
}

// Restart returns a fresh InProgress(0, 0) session with the same identity.
func Restart(s QuizSession) QuizSession {
	return QuizSession{ID: s.ID, Version: s.Version}
}

// Tier classifies a finished session.
func (b *QuestionBank) Tier(s QuizSession) (Tier, error) {
	if !s.Finished {
		return "", fmt.Errorf("tier: session in progress: %w", ErrInvalidTransition)
	}
	return TierForScore(s.Score), nil
}
