package services

// QuizKind identifies a category of check-in. The values are the exact
// strings stored in report_diario documents; matching is case-sensitive.
type QuizKind string

const (
	KindMorning   QuizKind = "matinal"
	KindNight     QuizKind = "noturno"
	KindEmergency QuizKind = "emergencial"
)

// ValidKind reports whether k is one of the three stored quiz kinds.
func ValidKind(k QuizKind) bool {
	switch k {
	case KindMorning, KindNight, KindEmergency:
		return true
	}
	return false
}

// ValueType declares the expected answer shape for a question.
type ValueType string

const (
	ValueInt    ValueType = "int"    // bounded integer scale
	ValueText   ValueType = "text"   // free text
	ValueMulti  ValueType = "multi"  // one or more string labels
	ValueChoice ValueType = "choice" // single string label
)

// Semantic field names used by the extractor and renderers.
const (
	FieldPainIntensity  = "pain_intensity"
	FieldPainLocations  = "pain_locations"
	FieldSleepQuality   = "sleep_quality"
	FieldNotes          = "notes"
	FieldMedicationUsed = "medication_used"
)

// QuestionField names the semantic meaning and value shape of one question
// index within a quiz kind.
type QuestionField struct {
	Name string
	Type ValueType
}

// questionSchema makes the quiz-taking UI's index conventions explicit.
// The stored documents carry no schema at all; every consumer used to
// hard-code "1" and "2" inline, which is exactly the brittleness this table
// removes. Unknown indices are ignored by the extractor, never an error.
var questionSchema = map[QuizKind]map[string]QuestionField{
	KindMorning: {
		"1": {Name: FieldSleepQuality, Type: ValueInt},
		"2": {Name: FieldPainIntensity, Type: ValueInt},
	},
	KindNight: {
		"1": {Name: FieldPainIntensity, Type: ValueInt},
		"2": {Name: FieldPainLocations, Type: ValueMulti},
		"3": {Name: FieldNotes, Type: ValueText},
	},
	KindEmergency: {
		"1": {Name: FieldPainIntensity, Type: ValueInt},
		"2": {Name: FieldPainLocations, Type: ValueMulti},
		"3": {Name: FieldMedicationUsed, Type: ValueChoice},
	},
}

// LookupQuestion returns the declared field for (kind, index).
func LookupQuestion(kind QuizKind, index string) (QuestionField, bool) {
	m, ok := questionSchema[kind]
	if !ok {
		return QuestionField{}, false
	}
	f, ok := m[index]
	return f, ok
}

// indexOfField returns the question index carrying the given semantic field
// for a kind, or "" when the kind has no such question.
func indexOfField(kind QuizKind, field string) string {
	for idx, f := range questionSchema[kind] {
		if f.Name == field {
			return idx
		}
	}
	return ""
}
