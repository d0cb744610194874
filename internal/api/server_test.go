package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"bookflow/internal/index"
	"bookflow/internal/pipeline"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeProcessor struct {
	processScore int
	approveID    string
	approveText  string
	err          error
}

func (f *fakeProcessor) Process(ctx context.Context, url string, score int) (*pipeline.Result, error) {
	f.processScore = score
	if f.err != nil {
		return nil, f.err
	}
	return &pipeline.Result{ChapterID: "abc123", FinalFile: "chapters/chapter_abc123_final.txt"}, nil
}

func (f *fakeProcessor) Rewrite(ctx context.Context, url string) (*pipeline.Draft, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &pipeline.Draft{ChapterID: "abc123", RewrittenText: "draft text"}, nil
}

func (f *fakeProcessor) Approve(ctx context.Context, chapterID, finalText string, score int) (*pipeline.Result, error) {
	f.approveID = chapterID
	f.approveText = finalText
	if f.err != nil {
		return nil, f.err
	}
	return &pipeline.Result{ChapterID: chapterID}, nil
}

type fakeSearcher struct {
	gotQuery string
	gotTopK  int
	err      error
}

func (f *fakeSearcher) Query(ctx context.Context, text string, topK int) ([]index.Result, error) {
	f.gotQuery = text
	f.gotTopK = topK
	if f.err != nil {
		return nil, f.err
	}
	return []index.Result{
		{Document: index.Document{ChapterID: "ch1", Title: "One", Content: "found text", Score: 4}},
	}, nil
}

func newTestServer(proc *fakeProcessor, search *fakeSearcher) *gin.Engine {
	return NewServer(proc, search, "static").Router()
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleProcess_DefaultsScore(t *testing.T) {
	proc := &fakeProcessor{}
	rec := doJSON(t, newTestServer(proc, &fakeSearcher{}), http.MethodPost, "/process",
		`{"url": "https://example.com/ch1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if proc.processScore != 5 {
		t.Fatalf("missing score must default to 5, got %d", proc.processScore)
	}
	if !strings.Contains(rec.Body.String(), "abc123") {
		t.Fatalf("response missing chapter id: %s", rec.Body.String())
	}
}

func TestHandleProcess_MissingURL(t *testing.T) {
	rec := doJSON(t, newTestServer(&fakeProcessor{}, &fakeSearcher{}), http.MethodPost, "/process", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleProcess_StageFailureIsBadGateway(t *testing.T) {
	proc := &fakeProcessor{err: &pipeline.StageError{Stage: "scrape", Err: errors.New("timeout")}}
	rec := doJSON(t, newTestServer(proc, &fakeSearcher{}), http.MethodPost, "/process",
		`{"url": "https://example.com/ch1"}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 for stage failure, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"stage":"scrape"`) {
		t.Fatalf("response missing stage tag: %s", rec.Body.String())
	}
}

func TestHandleProcess_RejectsOutOfRangeScore(t *testing.T) {
	proc := &fakeProcessor{processScore: -1}
	for _, body := range []string{
		`{"url": "https://example.com/ch1", "feedback_score": 9}`,
		`{"url": "https://example.com/ch1", "feedback_score": -2}`,
	} {
		rec := doJSON(t, newTestServer(proc, &fakeSearcher{}), http.MethodPost, "/process", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", body, rec.Code)
		}
	}
	if proc.processScore != -1 {
		t.Fatalf("pipeline must not run with an out-of-range score, got %d", proc.processScore)
	}
}

func TestHandleApprove_RejectsOutOfRangeScore(t *testing.T) {
	proc := &fakeProcessor{}
	rec := doJSON(t, newTestServer(proc, &fakeSearcher{}), http.MethodPost, "/approve",
		`{"chapter_id": "abc123", "final_text": "text", "feedback_score": 6}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if proc.approveID != "" {
		t.Fatal("pipeline must not run with an out-of-range score")
	}
}

func TestHandleApprove_PassesThrough(t *testing.T) {
	proc := &fakeProcessor{}
	rec := doJSON(t, newTestServer(proc, &fakeSearcher{}), http.MethodPost, "/approve",
		`{"chapter_id": "abc123", "final_text": "the edited chapter", "feedback_score": 4}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if proc.approveID != "abc123" || proc.approveText != "the edited chapter" {
		t.Fatalf("approve arguments not forwarded: id=%q text=%q", proc.approveID, proc.approveText)
	}
}

func TestHandleSearch(t *testing.T) {
	search := &fakeSearcher{}
	rec := doJSON(t, newTestServer(&fakeProcessor{}, search), http.MethodGet, "/search?q=morning&k=7", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if search.gotQuery != "morning" || search.gotTopK != 7 {
		t.Fatalf("query not forwarded: q=%q k=%d", search.gotQuery, search.gotTopK)
	}
	if !strings.Contains(rec.Body.String(), "Chapter ch1") {
		t.Fatalf("formatted results missing: %s", rec.Body.String())
	}
}

func TestHandleSearch_MissingQuery(t *testing.T) {
	rec := doJSON(t, newTestServer(&fakeProcessor{}, &fakeSearcher{}), http.MethodGet, "/search", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleView(t *testing.T) {
	rec := doJSON(t, newTestServer(&fakeProcessor{}, &fakeSearcher{}), http.MethodGet, "/view/abc123", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"chapter_abc123_final.pdf", "chapter_abc123.mp3", "chapter_abc123.png"} {
		if !strings.Contains(body, want) {
			t.Fatalf("view page missing %q", want)
		}
	}
}
