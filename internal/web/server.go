package web

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/newecon/cleanbrief/internal/pipeline"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server renders the briefing page and serves the JSON API on top of one
// shared pipeline.
type Server struct {
	pipe   *pipeline.Pipeline
	router *gin.Engine
	log    *logrus.Logger
}

func NewServer(pipe *pipeline.Pipeline, log *logrus.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	s := &Server{
		pipe:   pipe,
		router: router,
		log:    log,
	}

	router.GET("/", s.handleIndex)

	api := router.Group("/api")
	{
		api.GET("/articles", s.handleAPIArticles)
		api.GET("/briefing", s.handleAPIBriefing)
	}

	return s
}

// Run starts the web server.
func (s *Server) Run(addr string) error {
	s.log.WithField("addr", addr).Info("starting server")
	return s.router.Run(addr)
}
