// Package scoring holds the pure computations behind test results: answer
// comparison with negative marking, the readiness blend of subject scores and
// the schedule window of a timed test. Nothing here touches storage or the
// clock; callers pass everything in.
package scoring

import (
	"math"

	"github.com/shopspring/decimal"
)

// Question is the minimum a scorer needs to know about a question.
type Question struct {
	CorrectAnswer string
	Options       []string
}

// Attempt maps a question's position in the test to the option the taker
// selected. Unanswered positions are absent.
type Attempt map[int]string

// ScoreResult is derived from an Attempt and never stored on its own.
type ScoreResult struct {
	CorrectCount int     `json:"correct_count"`
	WrongCount   int     `json:"wrong_count"`
	RawScore     float64 `json:"raw_score"`
	Percentage   float64 `json:"percentage"`
}

// Unanswered reports how many of total questions were left blank.
func (r ScoreResult) Unanswered(total int) int {
	n := total - r.CorrectCount - r.WrongCount
	if n < 0 {
		return 0
	}
	return n
}

// Score compares answers against questions and derives the percentage.
//
// totalQuestions is the test's declared question count and is used as the
// denominator; a value <= 0 falls back to len(questions). When more questions
// are stored than declared, only the first totalQuestions are scored so the
// counts never exceed the denominator. Questions without a correct answer are
// treated as unanswered. The percentage never drops below zero and is rounded
// to two decimals, half away from zero.
func Score(questions []Question, answers Attempt, totalQuestions int, negativeMarkPerWrong float64) ScoreResult {
	var res ScoreResult

	if totalQuestions > 0 && len(questions) > totalQuestions {
		questions = questions[:totalQuestions]
	}
	for i, q := range questions {
		selected, ok := answers[i]
		if !ok || q.CorrectAnswer == "" {
			continue
		}
		if selected == q.CorrectAnswer {
			res.CorrectCount++
		} else {
			res.WrongCount++
		}
	}

	rate := negativeMarkPerWrong
	if rate < 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		rate = 0
	}
	res.RawScore = decimal.NewFromInt(int64(res.CorrectCount)).
		Sub(decimal.NewFromInt(int64(res.WrongCount)).Mul(decimal.NewFromFloat(rate))).
		InexactFloat64()

	denom := totalQuestions
	if denom <= 0 {
		denom = len(questions)
	}
	if denom == 0 {
		return res
	}

	pct := res.RawScore / float64(denom) * 100
	if pct < 0 {
		pct = 0
	}
	res.Percentage = round2(pct)
	return res
}

// round2 rounds half away from zero at two decimals. decimal works from the
// shortest float representation, so 1.005 rounds to 1.01 rather than 1.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
