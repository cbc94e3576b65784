package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dorlog/backend/internal/api"
	"github.com/dorlog/backend/internal/middleware"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	api.NewRouter(api.NewMemoryStore(), t.TempDir()).Register(mux)
	handler := middleware.NoStore(middleware.LocaleMiddleware(middleware.WithAuth(mux)))
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestUserJourneyIntegration(t *testing.T) {
	srv := newTestServer(t)
	client := srv.Client()
	base := srv.URL

	userEmail := fmt.Sprintf("integration_%d@example.com", time.Now().UnixNano())
	password := "Secret123!"

	var registerResp struct {
		Token  string `json:"token"`
		UserID string `json:"userId"`
		Email  string `json:"email"`
	}
	doPost(t, client, base+"/api/auth/register", "", map[string]any{
		"email":    userEmail,
		"password": password,
	}, &registerResp)
	if registerResp.Token == "" || registerResp.UserID == "" {
		t.Fatalf("unexpected register response: %+v", registerResp)
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	doPost(t, client, base+"/api/auth/login", "", map[string]string{
		"email":    userEmail,
		"password": password,
	}, &loginResp)
	token := loginResp.Token
	if token == "" {
		t.Fatalf("login did not return token")
	}

	// Registration seeds the two scheduled reminder slots.
	var remindersResp struct {
		Reminders []struct {
			Kind string `json:"kind"`
		} `json:"reminders"`
	}
	doGet(t, client, base+"/api/reminders", token, &remindersResp)
	if len(remindersResp.Reminders) != 2 {
		t.Fatalf("expected 2 seeded reminders, got %d", len(remindersResp.Reminders))
	}

	var quizResp struct {
		OK        bool   `json:"ok"`
		EntryID   string `json:"entryId"`
		QuizCount int    `json:"quizCount"`
	}
	doPost(t, client, base+"/api/quizzes", token, map[string]any{
		"tipo": "noturno",
		"respostas": map[string]any{
			"1": "7",
			"2": []string{"Neck", "Lower back"},
			"3": "Rough day",
		},
	}, &quizResp)
	if !quizResp.OK || !strings.HasPrefix(quizResp.EntryID, strings.ToLower(userEmail)+"_") {
		t.Fatalf("unexpected quiz response: %+v", quizResp)
	}
	doPost(t, client, base+"/api/quizzes", token, map[string]any{
		"tipo":      "emergencial",
		"respostas": map[string]any{"1": "9", "2": []string{"Neck"}, "3": "yes"},
	}, &quizResp)
	if quizResp.QuizCount != 2 {
		t.Fatalf("expected 2 quizzes on today's entry, got %d", quizResp.QuizCount)
	}

	var summary struct {
		Crisis struct {
			State string `json:"state"`
			Count int    `json:"count"`
		} `json:"crisis"`
		PainPoints struct {
			State  string `json:"state"`
			Points []struct {
				Location string `json:"location"`
				Count    int    `json:"count"`
			} `json:"points"`
		} `json:"pain_points"`
		DaysWithData int `json:"days_with_data"`
	}
	doGet(t, client, base+"/api/reports/summary", token, &summary)
	if summary.Crisis.State != "ok" || summary.Crisis.Count != 1 {
		t.Fatalf("unexpected crisis metric: %+v", summary.Crisis)
	}
	if summary.PainPoints.State != "ok" || len(summary.PainPoints.Points) != 2 {
		t.Fatalf("unexpected pain points: %+v", summary.PainPoints)
	}
	if summary.DaysWithData != 1 {
		t.Fatalf("expected 1 day with data, got %d", summary.DaysWithData)
	}

	var genResp struct {
		Success   bool   `json:"success"`
		ReportURL string `json:"reportUrl"`
	}
	doPost(t, client, base+"/api/generate-report", token, map[string]any{}, &genResp)
	if !genResp.Success || !strings.HasPrefix(genResp.ReportURL, "/reports/") {
		t.Fatalf("unexpected generate response: %+v", genResp)
	}
	html := doGetRaw(t, client, base+genResp.ReportURL, token)
	if !strings.Contains(string(html), "Neck") {
		t.Fatalf("generated report missing pain point; body=%s", string(html))
	}

	csvData := doGetRaw(t, client, base+"/api/export", token)
	if !strings.Contains(string(csvData), "pain_locations") {
		t.Fatalf("export csv missing schema field; csv=%s", string(csvData))
	}

	var export struct {
		Entries []json.RawMessage `json:"entries"`
	}
	doGet(t, client, base+"/api/privacy/export", token, &export)
	if len(export.Entries) != 1 {
		t.Fatalf("expected 1 exported entry, got %d", len(export.Entries))
	}

	var erase struct {
		EntriesDeleted int  `json:"entries_deleted"`
		AccountDeleted bool `json:"account_deleted"`
	}
	doPost(t, client, base+"/api/privacy/erase?hard=true", token, map[string]any{}, &erase)
	if erase.EntriesDeleted != 1 || !erase.AccountDeleted {
		t.Fatalf("unexpected erase result: %+v", erase)
	}
}

func doPost(t *testing.T, client *http.Client, url, token string, body any, out any) {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("http post %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		t.Fatalf("unexpected status %d for %s: %s", resp.StatusCode, url, string(bodyBytes))
	}
	if out != nil {
		decoder := json.NewDecoder(resp.Body)
		if err := decoder.Decode(out); err != nil && err != io.EOF {
			t.Fatalf("decode response from %s: %v", url, err)
		}
	}
}

func doGet(t *testing.T, client *http.Client, url, token string, out any) {
	t.Helper()
	if err := json.Unmarshal(doGetRaw(t, client, url, token), out); err != nil {
		t.Fatalf("decode response from %s: %v", url, err)
	}
}

func doGetRaw(t *testing.T, client *http.Client, url, token string) []byte {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("http get %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response from %s: %v", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d for %s: %s", resp.StatusCode, url, string(body))
	}
	return body
}
