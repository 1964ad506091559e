package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gaurav-prasanna/recipepipe/core/imaging"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "recipe-scraper"})
}

func (s *Server) scrape(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing URL parameter"})
		return
	}

	recipe, err := s.scraper.Scrape(c.Request.Context(), url)
	if err != nil {
		s.log.Error("scrape failed", "url", url, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "url": url})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (s *Server) imageProxy(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing URL parameter"})
		return
	}

	data, err := s.images.Convert(c.Request.Context(), url)
	if err != nil {
		s.log.Error("image proxy failed", "url", url, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": imageErrorMessage(err)})
		return
	}

	c.Header("Content-Disposition", `inline; filename="image.jpg"`)
	c.Data(http.StatusOK, "image/jpeg", data)
}

// imageErrorMessage renders err as "<stage>: <cause>" with the stage
// capitalised.
func imageErrorMessage(err error) string {
	for _, stage := range []error{imaging.ErrDownload, imaging.ErrProcess} {
		if errors.Is(err, stage) {
			cause := strings.TrimPrefix(err.Error(), stage.Error()+": ")
			return capitalize(stage.Error()) + ": " + cause
		}
	}
	return "Failed to process image: " + err.Error()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
