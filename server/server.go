package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/polis-analysis/postmeta/export"
	"github.com/polis-analysis/postmeta/extractor"
	extractor_handler "github.com/polis-analysis/postmeta/extractor/handler"
	"github.com/polis-analysis/postmeta/extractor/working_context"
	"github.com/polis-analysis/postmeta/model"
)

// ExtractRequest is the single user input: one URL, plus an optional
// Facebook session cookie string scoped to this request only.
type ExtractRequest struct {
	URL             string `json:"url"`
	FacebookCookies string `json:"fb_cookies"`
}

func (r ExtractRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.URL, validation.Required, is.URL),
	)
}

type ExtractResponse struct {
	ExtractionID string             `json:"extraction_id"`
	Post         model.PostRecord   `json:"post"`
	Author       model.AuthorRecord `json:"author"`
	PostCSVURL   string             `json:"post_csv_url"`
	AuthorCSVURL string             `json:"op_csv_url"`
}

type Server struct {
	handler extractor_handler.ExtractJobHandler
	store   *ResultStore
}

func NewServer() *Server {
	return &Server{
		handler: extractor_handler.ExtractJobHandler{},
		store:   NewResultStore(),
	}
}

func (s *Server) RegisterRoutes(router *gin.Engine) {
	router.GET("/", s.dashboardPage)
	router.POST("/api/extract", s.extract)
	router.GET("/api/results/:id/posts.csv", s.downloadPostCSV)
	router.GET("/api/results/:id/ops.csv", s.downloadAuthorCSV)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func (s *Server) extract(c *gin.Context) {
	req := ExtractRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be JSON with a url field"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	creds := working_context.Credentials{
		// Read per request so a key added after startup is picked up and a
		// missing key is a request failure, not a process crash.
		YouTubeAPIKey:   os.Getenv("YOUTUBE_API_KEY"),
		FacebookCookies: req.FacebookCookies,
	}

	post, author, err := s.handler.Extract(c.Request.Context(), req.URL, creds)
	if err != nil {
		status, message := httpStatusForError(err)
		c.JSON(status, gin.H{
			"error":    message,
			"kind":     string(extractor.KindOf(err)),
			"platform": platformOf(err).DisplayName(),
		})
		return
	}

	id := s.store.Put(post, author)
	c.JSON(http.StatusOK, ExtractResponse{
		ExtractionID: id,
		Post:         post,
		Author:       author,
		PostCSVURL:   fmt.Sprintf("/api/results/%s/posts.csv", id),
		AuthorCSVURL: fmt.Sprintf("/api/results/%s/ops.csv", id),
	})
}

func (s *Server) downloadPostCSV(c *gin.Context) {
	result, ok := s.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "extraction result not found, it may have been evicted"})
		return
	}
	buf := &bytes.Buffer{}
	if err := export.WritePostCSV(buf, []model.PostRecord{result.Post}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	serveCSV(c, "posts.csv", buf.Bytes())
}

func (s *Server) downloadAuthorCSV(c *gin.Context) {
	result, ok := s.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "extraction result not found, it may have been evicted"})
		return
	}
	buf := &bytes.Buffer{}
	if err := export.WriteAuthorCSV(buf, []model.AuthorRecord{result.Author}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	serveCSV(c, "ops.csv", buf.Bytes())
}

func serveCSV(c *gin.Context, filename string, body []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", body)
}

// platformOf pulls the platform tag out of a taxonomy error so the UI can
// name the platform it failed on.
func platformOf(err error) model.Platform {
	var e *extractor.Error
	if errors.As(err, &e) {
		return e.Platform
	}
	return model.PlatformUnknown
}

// httpStatusForError maps the extraction taxonomy onto response codes with
// a message specific enough for the UI to render. A request failure never
// takes the process down.
func httpStatusForError(err error) (int, string) {
	switch extractor.KindOf(err) {
	case extractor.KindAuth:
		return http.StatusUnauthorized, "API key required: " + err.Error()
	case extractor.KindAuthRequired:
		return http.StatusUnauthorized, "this content needs a logged-in session: " + err.Error()
	case extractor.KindNotFound:
		return http.StatusNotFound, err.Error()
	case extractor.KindRateLimit:
		return http.StatusTooManyRequests, err.Error()
	case extractor.KindTimeout:
		return http.StatusGatewayTimeout, err.Error()
	case extractor.KindParse, extractor.KindNormalization:
		return http.StatusBadGateway, err.Error()
	case extractor.KindUnsupportedPlatform:
		return http.StatusBadRequest, "unsupported platform: " + err.Error()
	case extractor.KindNotImplemented:
		return http.StatusNotImplemented, err.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
