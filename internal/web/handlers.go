package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/newecon/cleanbrief/internal/pipeline"
	"github.com/newecon/cleanbrief/internal/render"
)

// sortOption feeds the selector control in the page template.
type sortOption struct {
	Value    pipeline.Order
	Label    string
	Selected bool
}

func sortOptions(current pipeline.Order) []sortOption {
	var opts []sortOption
	for _, o := range pipeline.Orders() {
		opts = append(opts, sortOption{Value: o, Label: o.Label(), Selected: o == current})
	}
	return opts
}

// handleIndex renders the whole page. Each request is a fresh page load, so
// articles are fetched anew and sorted with the selected order. The article
// and briefing regions fail independently: a fetch error in one shows that
// region's failure message without blanking the other.
func (s *Server) handleIndex(c *gin.Context) {
	ctx := c.Request.Context()
	order := pipeline.ParseOrder(c.Query("sort"))
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))

	data := gin.H{
		"Sort":  string(order),
		"Sorts": sortOptions(order),
		"Date":  date,
	}

	articles, err := s.pipe.LoadArticles(ctx)
	if err != nil {
		s.log.WithError(err).Error("loading articles failed")
		data["ArticlesFailed"] = true
	} else {
		data["Cards"] = render.Cards(pipeline.SortArticles(articles, order))
	}

	briefing, found, err := s.pipe.LoadBriefing(ctx, date)
	switch {
	case err != nil:
		s.log.WithError(err).Error("loading briefing failed")
		data["BriefingFailed"] = true
	case found:
		data["Briefing"] = render.ComposeBriefing(briefing)
	}

	c.HTML(http.StatusOK, "index.html", data)
}

// handleAPIArticles serves the cached collection re-sorted; it only reaches
// the remote store when nothing is cached yet.
func (s *Server) handleAPIArticles(c *gin.Context) {
	order := pipeline.ParseOrder(c.Query("sort"))

	articles, err := s.pipe.Reorder(c.Request.Context(), order)
	if err != nil {
		s.log.WithError(err).Error("loading articles failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load articles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sort":     string(order),
		"articles": render.Cards(articles),
	})
}

func (s *Server) handleAPIBriefing(c *gin.Context) {
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))

	briefing, found, err := s.pipe.LoadBriefing(c.Request.Context(), date)
	if err != nil {
		s.log.WithError(err).Error("loading briefing failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load briefing"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "no briefing available for " + date})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":     date,
		"briefing": render.ComposeBriefing(briefing),
	})
}
