package pkg

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/lostfound/internal/domain"
)

const (
	defaultPageIndex = 1
	defaultPageSize  = 10
	maxPageSize      = 100
)

// reservedParams lists query parameter names used for pagination, sorting,
// and eager-loading, not for filtering.
var reservedParams = map[string]bool{
	"page":            true,
	"page_size":       true,
	"sort":            true,
	"include":         true,
	"include_deleted": true,
}

// ParsePageRequest extracts pagination, sorting, filtering, and eager-load
// parameters from query params.
func ParsePageRequest(c *gin.Context) domain.PageRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPageIndex)))
	if page < 1 {
		page = defaultPageIndex
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	var include []string
	for _, name := range strings.Split(c.Query("include"), ",") {
		if name = strings.TrimSpace(name); name != "" {
			include = append(include, name)
		}
	}

	includeDeleted, _ := strconv.ParseBool(c.DefaultQuery("include_deleted", "false"))

	filter := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if reservedParams[key] {
			continue
		}
		if len(values) > 0 && values[0] != "" {
			filter[key] = values[0]
		}
	}

	return domain.PageRequest{
		PageIndex:      page,
		PageSize:       pageSize,
		Sort:           c.Query("sort"),
		Filter:         filter,
		Include:        include,
		IncludeDeleted: includeDeleted,
	}
}

// BuildQuery converts a parsed page request into the typed query
// specification the repositories interpret. Filter keys ending with "__like"
// produce a LIKE condition; others use exact match. Sort uses the
// "field:direction" syntax; anything else falls back to the repository's
// default ordering. Column and relation names are allow-listed by the
// storage adapter, not here.
func BuildQuery(req domain.PageRequest) domain.Query {
	q := domain.Query{
		Include:        req.Include,
		IncludeDeleted: req.IncludeDeleted,
	}

	for key, value := range req.Filter {
		if field, ok := strings.CutSuffix(key, "__like"); ok {
			q = q.Where(field, domain.OpLike, value)
		} else {
			q = q.Where(key, domain.OpEq, value)
		}
	}

	if parts := strings.SplitN(req.Sort, ":", 2); len(parts) == 2 {
		field := strings.TrimSpace(parts[0])
		switch strings.TrimSpace(strings.ToLower(parts[1])) {
		case "asc":
			q = q.OrderBy(field, false)
		case "desc":
			q = q.OrderBy(field, true)
		}
	}

	return q
}
