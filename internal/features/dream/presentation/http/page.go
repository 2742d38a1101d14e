package http

import (
	"bytes"
	"context"
	"crypto/rand"
	"embed"
	"encoding/hex"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"

	"dream-canvas/backend/internal/features/dream/application"
	"dream-canvas/backend/internal/features/dream/domain"
)

const sessionCookieName = "dream_canvas_session"

//go:embed templates/index.html
var templatesFS embed.FS

// PageTemplate returns the template set for the Dream Canvas page, for gin's SetHTMLTemplate.
func PageTemplate() *template.Template {
	return template.Must(template.New("index.html").ParseFS(templatesFS, "templates/index.html"))
}

// PageHandler serves the Dream Canvas page and its form submit.
type PageHandler struct {
	dreamService application.DreamService
	canvases     *application.CanvasStore
	timeout      time.Duration
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(dreamService application.DreamService, canvases *application.CanvasStore, timeout time.Duration) *PageHandler {
	return &PageHandler{
		dreamService: dreamService,
		canvases:     canvases,
		timeout:      timeout,
	}
}

type pageData struct {
	DreamDescription   string
	Analyzing          bool
	Themes             []string
	VisualElements     []string
	InterpretationHTML template.HTML
	ImageURL           template.URL
	Notification       *application.Notification
}

// IndexHandler renders the page for the caller's session.
func (h *PageHandler) IndexHandler(c *gin.Context) {
	view := application.CanvasView{State: domain.Idle{}}
	if canvas, ok := h.existingCanvas(c); ok {
		view = canvas.View()
	}

	data := pageData{
		DreamDescription: view.DreamDescription,
		Analyzing:        view.State.Phase() == domain.PhaseAnalyzing,
		Notification:     view.Notification,
	}
	if shown := view.State.Displayed(); shown != nil {
		if shown.Interpretation != nil {
			data.Themes = shown.Interpretation.Themes
			data.VisualElements = shown.Interpretation.VisualElements
			data.InterpretationHTML = renderMarkdown(shown.Interpretation.Interpretation)
		}
		if shown.Image != nil {
			// The generateImage tool only lets http(s) and data:image/ URLs through.
			data.ImageURL = template.URL(shown.Image.ImageURL)
		}
	}

	c.HTML(http.StatusOK, "index.html", data)
}

// AnalyzeHandler runs the pipeline for the submitted form and redirects back to the page.
func (h *PageHandler) AnalyzeHandler(c *gin.Context) {
	canvas := h.sessionCanvas(c)
	dreamDescription := c.PostForm("dream_description")
	gen := canvas.Begin(dreamDescription)

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	result, err := h.dreamService.Analyze(ctx, dreamDescription)
	if err != nil {
		log.Println("[ERROR] Error during dream analysis:", err)
	}
	if !canvas.Finish(gen, result, err) {
		log.Printf("[DEBUG] Dropping outcome of superseded submission %d", gen)
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// existingCanvas returns the canvas of the caller's session without creating one.
func (h *PageHandler) existingCanvas(c *gin.Context) (*application.Canvas, bool) {
	id, err := c.Cookie(sessionCookieName)
	if err != nil || !validSessionID(id) {
		return nil, false
	}
	return h.canvases.Lookup(id)
}

// sessionCanvas returns the canvas of the caller's session, issuing a new
// session ID when the cookie is missing or was not issued by newSessionID.
func (h *PageHandler) sessionCanvas(c *gin.Context) *application.Canvas {
	id, err := c.Cookie(sessionCookieName)
	if err != nil || !validSessionID(id) {
		id = newSessionID()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookieName, id, 0, "/", "", false, true)
	}
	return h.canvases.Get(id)
}

const sessionIDBytes = 16

func newSessionID() string {
	b := make([]byte, sessionIDBytes)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// validSessionID reports whether id has the lowercase hex form newSessionID issues.
func validSessionID(id string) bool {
	if len(id) != 2*sessionIDBytes {
		return false
	}
	for _, r := range id {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

// renderMarkdown converts interpretation markdown to HTML. Raw HTML in the
// source is not passed through.
func renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}
