package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"
)

// AnswerRow is one line of the long-format diary export: one answered
// question per row.
type AnswerRow struct {
	Date          string
	QuizKind      string
	QuizTimestamp string
	QuestionIndex string
	Field         string
	Value         string
}

// BuildAnswerRows flattens filtered day records into long-format rows,
// ordered by date, then submission order, then question index. The Field
// column carries the schema's semantic name when the index is declared.
func BuildAnswerRows(days []DayRecord) []AnswerRow {
	ordered := make([]DayRecord, len(days))
	copy(ordered, days)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })

	var rows []AnswerRow
	for _, d := range ordered {
		for _, q := range d.Quizzes {
			indices := make([]string, 0, len(q.Answers))
			for idx := range q.Answers {
				indices = append(indices, idx)
			}
			sort.Strings(indices)
			for _, idx := range indices {
				field := ""
				if f, ok := LookupQuestion(q.Kind, idx); ok {
					field = f.Name
				}
				rows = append(rows, AnswerRow{
					Date:          d.Date.Format("2006-01-02"),
					QuizKind:      string(q.Kind),
					QuizTimestamp: q.Timestamp.UTC().Format("2006-01-02T15:04:05Z07:00"),
					QuestionIndex: idx,
					Field:         field,
					Value:         answerString(q.Answers[idx]),
				})
			}
		}
	}
	return rows
}

// ExportAnswersCSV renders rows into the long-format CSV handed to
// clinicians.
func ExportAnswersCSV(rows []AnswerRow) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"date", "quiz_kind", "quiz_timestamp", "question_index", "field", "value"})
	for _, r := range rows {
		rec := []string{r.Date, r.QuizKind, r.QuizTimestamp, r.QuestionIndex, r.Field, r.Value}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// answerString renders any stored answer shape into one CSV cell.
// Multi-valued answers join with a pipe; csv.Writer quotes as needed.
func answerString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return fmt.Sprintf("%d", t)
	case int64:
		return fmt.Sprintf("%d", t)
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case []string:
		return strings.Join(t, " | ")
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, answerString(e))
		}
		return strings.Join(parts, " | ")
	default:
		return fmt.Sprintf("%v", t)
	}
}
