package services

import (
	"testing"
	"time"
)

var filterNow = time.Date(2025, 8, 25, 12, 0, 0, 0, time.UTC)

func dayDoc(id string, daysAgo int, quizzes ...Quiz) RawDocument {
	return RawDocument{ID: id, Date: filterNow.AddDate(0, 0, -daysAgo), Quizzes: quizzes}
}

func TestFilterOwnershipByIDPrefix(t *testing.T) {
	docs := []RawDocument{
		dayDoc("alice@x.com_2025-08-15", 10),
		dayDoc("bob@x.com_2025-08-15", 10),
	}
	days, stats := FilterUserDocuments(docs, "alice@x.com", filterNow)
	if len(days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(days))
	}
	if stats.ByIDPrefix != 1 {
		t.Fatalf("expected 1 prefix match, got %+v", stats)
	}
}

func TestFilterOwnershipFallbackFields(t *testing.T) {
	docs := []RawDocument{
		{ID: "legacy-1", Date: filterNow, UsuarioID: "alice@x.com"},
		{ID: "legacy-2", Date: filterNow, Email: "alice@x.com"},
		{ID: "legacy-3", Date: filterNow, UsuarioID: "bob@x.com"},
	}
	days, stats := FilterUserDocuments(docs, "alice@x.com", filterNow)
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if stats.ByUsuarioID != 1 || stats.ByEmail != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestFilterWindowBoundaries(t *testing.T) {
	docs := []RawDocument{
		dayDoc("alice@x.com_a", 0),
		dayDoc("alice@x.com_b", 30),
		dayDoc("alice@x.com_c", 31),
	}
	days, _ := FilterUserDocuments(docs, "alice@x.com", filterNow)
	if len(days) != 2 {
		t.Fatalf("expected boundary-inclusive window of 2 days, got %d", len(days))
	}
}

func TestFilterOtherUserExcludedRegardlessOfDate(t *testing.T) {
	docs := []RawDocument{dayDoc("bob@x.com_2025-08-15", 10)}
	days, _ := FilterUserDocuments(docs, "alice@x.com", filterNow)
	if len(days) != 0 {
		t.Fatalf("bob's document must not appear in alice's results")
	}
}

func TestFilterSkipsUnparseableDate(t *testing.T) {
	docs := []RawDocument{
		{ID: "legacy-9", UsuarioID: "alice@x.com", Date: "not a date"},
	}
	days, stats := FilterUserDocuments(docs, "alice@x.com", filterNow)
	if len(days) != 0 {
		t.Fatalf("expected unparseable document skipped")
	}
	if stats.Skipped != 1 {
		t.Fatalf("expected skip counted, got %+v", stats)
	}
}

func TestFilterDateFromIDFallback(t *testing.T) {
	docs := []RawDocument{{ID: "alice@x.com_2025-08-15"}}
	days, _ := FilterUserDocuments(docs, "alice@x.com", filterNow)
	if len(days) != 1 {
		t.Fatalf("expected ID-suffix date fallback to retain document")
	}
	if got := days[0].Date.Format("2006-01-02"); got != "2025-08-15" {
		t.Fatalf("expected 2025-08-15, got %s", got)
	}
}

func TestCoerceDateShapes(t *testing.T) {
	cases := []struct {
		in   any
		ok   bool
		want string
	}{
		{time.Date(2025, 8, 15, 3, 0, 0, 0, time.UTC), true, "2025-08-15"},
		{"2025-08-15", true, "2025-08-15"},
		{"2025-08-15T10:30:00Z", true, "2025-08-15"},
		{"", false, ""},
		{nil, false, ""},
		{42, false, ""},
	}
	for _, c := range cases {
		got, ok := CoerceDate(c.in)
		if ok != c.ok {
			t.Fatalf("CoerceDate(%v): ok=%v, want %v", c.in, ok, c.ok)
		}
		if ok && got.Format("2006-01-02") != c.want {
			t.Fatalf("CoerceDate(%v) = %s, want %s", c.in, got.Format("2006-01-02"), c.want)
		}
	}
}

func TestOwnedDocumentsIgnoresWindow(t *testing.T) {
	docs := []RawDocument{
		dayDoc("alice@x.com_old", 400),
		dayDoc("bob@x.com_old", 400),
	}
	owned := OwnedDocuments(docs, "alice@x.com")
	if len(owned) != 1 || owned[0].ID != "alice@x.com_old" {
		t.Fatalf("expected alice's old document only, got %+v", owned)
	}
}
