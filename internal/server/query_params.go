package server

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/backoffice/pkg/db/pagination"
)

// pageFromQuery reads pageSize and currentPage. Values that are missing or
// not numbers fall back to the configured defaults instead of failing.
func (s *Server) pageFromQuery(c *gin.Context) pagination.Page {
	page := pagination.Page{
		PageSize:    queryInt(c, "pageSize"),
		CurrentPage: queryInt(c, "currentPage"),
	}
	cfg := s.catalogCfg.Get()
	return page.Normalize(cfg.DefaultPageSize, cfg.MaxPageSize)
}

func queryInt(c *gin.Context, key string) int {
	value, err := parseOptionalInt64(c.Query(key))
	if err != nil || value == nil {
		return 0
	}
	return int(*value)
}

func parseOptionalInt64(value string) (*int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func listPayload[T any](res pagination.Result[T]) gin.H {
	return gin.H{
		"message":    "Success",
		"data":       res.Records,
		"pagination": res.Meta(),
	}
}
