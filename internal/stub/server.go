// Package stub is a local stand-in for the Generation Service. It speaks the
// same wire contract as the real service and is used for development and by
// integration tests.
package stub

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const maxLogoBytes = 10 << 20

// Options configures the stand-in service.
type Options struct {
	// Delay is applied before every generation response.
	Delay time.Duration
	// RejectDrafts makes the drafting endpoint answer success=false.
	RejectDrafts bool
	Logger       logrus.FieldLogger
	Now          func() time.Time
}

type handler struct {
	opts Options
	log  logrus.FieldLogger
}

type validationError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

type draftRequest struct {
	Prompt  *string `json:"prompt"`
	Context string  `json:"context"`
}

// NewRouter returns the gin engine serving /, /generate and /ai/generate-text.
func NewRouter(opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	h := &handler{opts: opts, log: opts.Logger.WithField("component", "stub")}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(Logger(h.log))

	router.GET("/", h.root)
	router.POST("/generate", h.generate)

	ai := router.Group("/ai")
	{
		ai.POST("/generate-text", h.generateText)
	}
	return router
}

func (h *handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "PDF Generator Pro API", "status": "ok"})
}

func (h *handler) generate(c *gin.Context) {
	file, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []validationError{
			{Loc: []string{"body", "logo"}, Msg: "Field required", Type: "missing"},
		}})
		return
	}
	if file.Size > maxLogoBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"detail": fmt.Sprintf("Logo is too large: %d bytes", file.Size)})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not read the logo"})
		return
	}
	defer src.Close()
	logo, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not read the logo"})
		return
	}

	text := c.PostForm("text")
	style := c.DefaultPostForm("style", "minimal")
	if _, ok := templates[style]; !ok {
		h.log.WithField("style", style).Warn("unknown style, using minimal")
		style = "minimal"
	}

	if !h.wait(c) {
		return
	}

	now := h.opts.Now()
	pdf, err := renderDocument(logo, text, style, now)
	if err != nil {
		h.log.WithError(err).WithField("request_id", c.GetString(requestIDKey)).Error("render document")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not render the document"})
		return
	}
	h.log.WithFields(logrus.Fields{
		"request_id": c.GetString(requestIDKey),
		"style":      style,
		"logo":       file.Filename,
		"logo_size":  len(logo),
		"pdf_size":   len(pdf),
	}).Info("document rendered")

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="offer_%s.pdf"`, now.Format("20060102_150405")))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *handler) generateText(c *gin.Context) {
	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []validationError{
			{Loc: []string{"body"}, Msg: "JSON decode error", Type: "json_invalid"},
		}})
		return
	}
	if req.Prompt == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []validationError{
			{Loc: []string{"body", "prompt"}, Msg: "Field required", Type: "missing"},
		}})
		return
	}
	if !h.wait(c) {
		return
	}
	if h.opts.RejectDrafts {
		c.JSON(http.StatusOK, gin.H{"text": "", "success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": draftText(*req.Prompt, req.Context), "success": true})
}

// wait applies the configured delay. It reports false when the client went
// away first.
func (h *handler) wait(c *gin.Context) bool {
	if h.opts.Delay <= 0 {
		return true
	}
	timer := time.NewTimer(h.opts.Delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-c.Request.Context().Done():
		c.Abort()
		return false
	}
}

// draftText produces a deterministic draft so the client flow can be
// exercised without a language model.
func draftText(prompt, context string) string {
	prompt = strings.TrimSpace(prompt)
	context = strings.TrimSpace(context)
	var b strings.Builder
	if context != "" {
		fmt.Fprintf(&b, "%s.\n\n", strings.TrimSuffix(context, "."))
	}
	fmt.Fprintf(&b, "%s: a clear offer, a fair price and a reason to act today.", prompt)
	return cleanText(b.String())
}
