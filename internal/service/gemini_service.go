package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	insightUnavailable      = "AI analysis not available."
	batchInsightUnavailable = "Batch-level insights unavailable."
)

// StudentSummary is what the insight prompt knows about one student.
type StudentSummary struct {
	Name       string
	TestTitle  string
	Category   string
	Percentage float64
	Correct    int
	Wrong      int
	Unanswered int
	Subjects   map[string]float64
}

// BatchSummary is what the batch insight prompt knows about a test.
type BatchSummary struct {
	TestTitle         string
	Category          string
	Attempts          int
	AveragePercentage float64
	HighestPercentage float64
	LowestPercentage  float64
	Bands             map[string]int
}

// GeminiService writes coaching text for students and interviewers.
type GeminiService interface {
	PracticeTips(ctx context.Context, weakAreas []string) ([]string, error)
	// StudentInsight and BatchInsight never fail; they fall back to a fixed
	// message when the model is unavailable.
	StudentInsight(ctx context.Context, s StudentSummary) string
	BatchInsight(ctx context.Context, b BatchSummary) string
}

type geminiService struct {
	llm GeminiLLMService
}

func NewGeminiService(llm GeminiLLMService) GeminiService {
	return &geminiService{llm: llm}
}

func (s *geminiService) PracticeTips(ctx context.Context, weakAreas []string) ([]string, error) {
	var sb strings.Builder
	sb.WriteString("You are an AI career coach providing personalized practice tips to students preparing for campus placements.\n")
	sb.WriteString("Based on the student's weak areas, provide specific and actionable practice tips.\n")
	sb.WriteString("Write one tip per line, each starting with \"- \", and nothing else.\n\n")
	sb.WriteString("Weak Areas:\n")
	for _, area := range weakAreas {
		if area = strings.TrimSpace(area); area != "" {
			sb.WriteString("- " + area + "\n")
		}
	}

	text, err := s.llm.Generate(ctx, sb.String())
	if err != nil {
		return nil, err
	}
	tips := parseTips(text)
	if len(tips) == 0 {
		return nil, fmt.Errorf("%w: no tips in response", ErrAIUnavailable)
	}
	return tips, nil
}

func (s *geminiService) StudentInsight(ctx context.Context, st StudentSummary) string {
	var sb strings.Builder
	sb.WriteString("Analyze the following student's placement test performance and give a short insight.\n\n")
	fmt.Fprintf(&sb, "Student: %s\n", st.Name)
	fmt.Fprintf(&sb, "Test: %s (%s)\n", st.TestTitle, st.Category)
	fmt.Fprintf(&sb, "Score: %.2f%% (%d correct, %d wrong, %d unanswered)\n", st.Percentage, st.Correct, st.Wrong, st.Unanswered)
	if len(st.Subjects) > 0 {
		sb.WriteString("Subject scores:\n")
		for _, k := range sortedKeys(st.Subjects) {
			fmt.Fprintf(&sb, "%s: %.2f%%\n", k, st.Subjects[k])
		}
	}
	sb.WriteString("\nWrite 3-4 sentences covering strengths and weaknesses, performance level and one improvement suggestion.\n")

	text, err := s.llm.Generate(ctx, sb.String())
	if err != nil {
		logInsightError(err, "StudentInsight")
		return insightUnavailable
	}
	return text
}

func (s *geminiService) BatchInsight(ctx context.Context, b BatchSummary) string {
	if b.Attempts == 0 {
		return batchInsightUnavailable
	}
	var sb strings.Builder
	sb.WriteString("Analyze these batch results for a placement test and provide insights.\n\n")
	fmt.Fprintf(&sb, "Test: %s (%s)\n", b.TestTitle, b.Category)
	fmt.Fprintf(&sb, "Students attempted: %d\n", b.Attempts)
	fmt.Fprintf(&sb, "Average: %.2f%%, highest: %.2f%%, lowest: %.2f%%\n", b.AveragePercentage, b.HighestPercentage, b.LowestPercentage)
	if len(b.Bands) > 0 {
		sb.WriteString("Students per band:\n")
		for _, k := range sortedKeys(b.Bands) {
			fmt.Fprintf(&sb, "%s: %d\n", k, b.Bands[k])
		}
	}
	sb.WriteString("\nGive 4-5 sentences on overall batch performance and the recommended training focus.\n")

	text, err := s.llm.Generate(ctx, sb.String())
	if err != nil {
		logInsightError(err, "BatchInsight")
		return batchInsightUnavailable
	}
	return text
}

func logInsightError(err error, op string) {
	if err == ErrAIUnavailable {
		log.Debug().Str("op", op).Msg("Gemini not configured, using fallback insight")
		return
	}
	log.Warn().Err(err).Str("op", op).Msg("Gemini insight failed, using fallback")
}

// parseTips reads one tip per non-empty line, dropping list markers.
func parseTips(text string) []string {
	var tips []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• ")
		line = trimNumbering(line)
		if line != "" {
			tips = append(tips, line)
		}
	}
	return tips
}

// trimNumbering drops a leading "1." or "2)" marker.
func trimNumbering(line string) string {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		return strings.TrimSpace(line[i+1:])
	}
	return line
}
