package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/team-maroon/recipify/internal/repository"
	"github.com/team-maroon/recipify/internal/service"
)

// feedParams reads the shared list-view query parameters. Non-numeric ids
// and pages are dropped/defaulted rather than rejected.
func feedParams(c *gin.Context) service.FeedParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	return service.FeedParams{
		Query:   c.Query("q"),
		Include: uintList(c.QueryArray("include")),
		Exclude: uintList(c.QueryArray("exclude")),
		Sort:    c.DefaultQuery("sort", repository.SortNewest),
		Page:    page,
	}
}

func uintList(values []string) []uint {
	var out []uint
	for _, v := range values {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			out = append(out, uint(n))
		}
	}
	return out
}
