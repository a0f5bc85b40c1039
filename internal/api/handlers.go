// Package api serves a processed catalog over HTTP for front-end clients.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/franz/songbook/internal/catalog"
	"github.com/franz/songbook/internal/query"
	"github.com/franz/songbook/internal/stats"
	"github.com/franz/songbook/internal/util"
)

// SongsResponse is the body of GET /api/v1/songs
type SongsResponse struct {
	Query string                    `json:"query"`
	Sort  query.SortKey             `json:"sort"`
	Total int                       `json:"total"`
	Songs []catalog.DisplayableSong `json:"songs"`
}

// GroupResponse is one entry of GET /api/v1/groups
type GroupResponse struct {
	Label string                    `json:"label"`
	Count int                       `json:"count"`
	Songs []catalog.DisplayableSong `json:"songs"`
}

// StatsResponse is the body of GET /api/v1/stats
type StatsResponse struct {
	stats.Statistics
	YearRangeEmpty bool `json:"yearRangeEmpty"`
}

// CatalogHandler serves a read-only catalog. The catalog is never modified
// after construction, so handlers may run concurrently.
type CatalogHandler struct {
	songs []catalog.DisplayableSong
	byKey map[string]int
	stats stats.Statistics
}

// NewCatalogHandler creates a handler over songs
func NewCatalogHandler(songs []catalog.DisplayableSong) *CatalogHandler {
	byKey := make(map[string]int, len(songs))
	for i, s := range songs {
		byKey[s.UniqueKey] = i
	}
	return &CatalogHandler{songs: songs, byKey: byKey, stats: stats.Aggregate(songs)}
}

// ListSongs handles GET /api/v1/songs?q=&sort=&limit=
func (h *CatalogHandler) ListSongs(c *gin.Context) {
	q := c.Query("q")
	sortKey := query.ParseSortKey(c.Query("sort"))

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid limit",
				"details": "limit must be a non-negative integer",
			})
			return
		}
		limit = n
	}

	songs := query.Sort(query.Search(h.songs, q), sortKey)
	total := len(songs)
	if limit > 0 && limit < total {
		songs = songs[:limit]
	}

	c.JSON(http.StatusOK, SongsResponse{Query: q, Sort: sortKey, Total: total, Songs: songs})
}

// GetSong handles GET /api/v1/songs/:key
func (h *CatalogHandler) GetSong(c *gin.Context) {
	i, ok := h.byKey[c.Param("key")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Song not found"})
		return
	}
	c.JSON(http.StatusOK, h.songs[i])
}

// GetRawSong handles GET /api/v1/songs/:key/raw, returning the record in
// its original column labels
func (h *CatalogHandler) GetRawSong(c *gin.Context) {
	i, ok := h.byKey[c.Param("key")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Song not found"})
		return
	}
	c.JSON(http.StatusOK, h.songs[i].Denormalize())
}

// ListGroups handles GET /api/v1/groups?by=
func (h *CatalogHandler) ListGroups(c *gin.Context) {
	key, err := query.ParseGroupKey(c.DefaultQuery("by", string(query.GroupByYear)))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, util.ErrInvalidKey) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{
			"error":   "Invalid group key",
			"details": err.Error(),
		})
		return
	}

	groups := query.GroupBy(h.songs, key)
	resp := make([]GroupResponse, 0, groups.Len())
	for _, g := range groups {
		resp = append(resp, GroupResponse{Label: g.Label, Count: len(g.Songs), Songs: g.Songs})
	}
	c.JSON(http.StatusOK, resp)
}

// GetStats handles GET /api/v1/stats
func (h *CatalogHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, StatsResponse{Statistics: h.stats, YearRangeEmpty: h.stats.YearRange.IsEmpty()})
}

// Health handles GET /healthz
func (h *CatalogHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "songs": len(h.songs)})
}

// NewRouter wires the catalog routes
func NewRouter(songs []catalog.DisplayableSong) *gin.Engine {
	router := gin.New()
	// Keys embed titles, which may contain "/"; match on the escaped path
	router.UseRawPath = true
	router.UnescapePathValues = true
	router.Use(gin.Recovery(), requestLogger())

	h := NewCatalogHandler(songs)
	router.GET("/healthz", h.Health)

	v1 := router.Group("/api/v1")
	v1.GET("/songs", h.ListSongs)
	v1.GET("/songs/:key", h.GetSong)
	v1.GET("/songs/:key/raw", h.GetRawSong)
	v1.GET("/groups", h.ListGroups)
	v1.GET("/stats", h.GetStats)

	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		util.DebugLog("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.RequestURI(), c.Writer.Status(), time.Since(start))
	}
}
