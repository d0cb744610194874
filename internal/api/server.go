// Package api exposes the chapter pipeline and search index over HTTP. It is
// a thin surface: all control flow lives in the pipeline.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookflow/internal/index"
	"bookflow/internal/pipeline"
)

const defaultTopK = 3

// Processor is the subset of the pipeline the HTTP surface drives.
type Processor interface {
	Process(ctx context.Context, url string, score int) (*pipeline.Result, error)
	Rewrite(ctx context.Context, url string) (*pipeline.Draft, error)
	Approve(ctx context.Context, chapterID, finalText string, score int) (*pipeline.Result, error)
}

// Searcher is the query side of the index store.
type Searcher interface {
	Query(ctx context.Context, text string, topK int) ([]index.Result, error)
}

type Server struct {
	processor Processor
	searcher  Searcher
	staticDir string
}

func NewServer(processor Processor, searcher Searcher, staticDir string) *Server {
	return &Server{processor: processor, searcher: searcher, staticDir: staticDir}
}

func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.Static("/static", s.staticDir)
	r.GET("/", s.handleRoot)
	r.POST("/process", s.handleProcess)
	r.POST("/rewrite", s.handleRewrite)
	r.POST("/approve", s.handleApprove)
	r.GET("/search", s.handleSearch)
	r.GET("/view/:chapter_id", s.handleView)
	return r
}

func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

func (s *Server) handleRoot(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte("<h2>Automated Book Workflow API is running</h2>"))
}

type processRequest struct {
	URL           string `json:"url" binding:"required"`
	FeedbackScore int    `json:"feedback_score"`
}

func (s *Server) handleProcess(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.FeedbackScore == 0 {
		req.FeedbackScore = 5
	}
	if req.FeedbackScore < 1 || req.FeedbackScore > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "feedback_score must be between 1 and 5"})
		return
	}

	result, err := s.processor.Process(c.Request.Context(), req.URL, req.FeedbackScore)
	if err != nil {
		s.stageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":          "success",
		"chapter_id":      result.ChapterID,
		"final_text_file": result.FinalFile,
		"pdf_file":        result.PDFFile,
		"audio_file":      result.AudioFile,
		"screenshot":      result.Screenshot,
	})
}

type rewriteRequest struct {
	URL string `json:"url" binding:"required"`
}

func (s *Server) handleRewrite(c *gin.Context) {
	var req rewriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := s.processor.Rewrite(c.Request.Context(), req.URL)
	if err != nil {
		s.stageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"chapter_id":     draft.ChapterID,
		"rewritten_text": draft.RewrittenText,
		"rewritten_file": draft.RewrittenFile,
	})
}

type approveRequest struct {
	ChapterID     string `json:"chapter_id" binding:"required"`
	FinalText     string `json:"final_text" binding:"required"`
	FeedbackScore int    `json:"feedback_score"`
}

func (s *Server) handleApprove(c *gin.Context) {
	var req approveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.FeedbackScore == 0 {
		req.FeedbackScore = 5
	}
	if req.FeedbackScore < 1 || req.FeedbackScore > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "feedback_score must be between 1 and 5"})
		return
	}

	result, err := s.processor.Approve(c.Request.Context(), req.ChapterID, req.FinalText, req.FeedbackScore)
	if err != nil {
		s.stageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":          "success",
		"chapter_id":      result.ChapterID,
		"final_text_file": result.FinalFile,
		"pdf_file":        result.PDFFile,
		"audio_file":      result.AudioFile,
	})
}

func (s *Server) handleSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}
	topK := defaultTopK
	if raw := c.Query("k"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			topK = n
		}
	}

	results, err := s.searcher.Query(c.Request.Context(), query, topK)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": index.FormatResults(results)})
}

func (s *Server) handleView(c *gin.Context) {
	chapterID := c.Param("chapter_id")
	base := "/static/chapter_" + chapterID

	page := fmt.Sprintf(`<html>
<head><title>Chapter Output</title></head>
<body>
	<h2>Final Chapter Output</h2>
	<iframe src="%[1]s_final.pdf" width="100%%" height="600px"></iframe><br>
	<a href="%[1]s_final.pdf" download>Download PDF</a><br><br>

	<h3>Listen to Audio:</h3>
	<audio controls>
		<source src="%[1]s.mp3" type="audio/mpeg">
		Your browser does not support the audio tag.
	</audio><br><br>

	<h3>Screenshot Taken During Scrape:</h3>
	<img src="%[1]s.png" width="600px"><br><br>

	<a href="/">Back to Home</a>
</body>
</html>`, base)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// stageError maps pipeline failures to responses: stage-tagged failures are
// upstream problems (502), anything else is internal.
func (s *Server) stageError(c *gin.Context, err error) {
	var stageErr *pipeline.StageError
	if errors.As(err, &stageErr) {
		c.JSON(http.StatusBadGateway, gin.H{"stage": stageErr.Stage, "error": stageErr.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
