package tasksrepobridge

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/jrazmi/tasktrack/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktrack/core/scaffolding/fop"
)

// QueryParams are the raw list inputs. Nothing here is rejected: bad paging
// values fall back to defaults and unknown enum values are ignored.
type QueryParams struct {
	Search   string
	Status   string
	Priority string
	Page     string
	Limit    string
}

func parseQueryParams(r *http.Request) QueryParams {
	q := r.URL.Query()
	return QueryParams{
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
		Page:     q.Get("page"),
		Limit:    q.Get("limit"),
	}
}

func (qp QueryParams) toRepository(ownerID string) (tasksrepo.QueryFilter, fop.Page) {
	filter := tasksrepo.ParseQueryFilter(ownerID, qp.Search, qp.Status, qp.Priority)
	return filter, fop.ParsePage(qp.Page, qp.Limit)
}

var errBadIfMatch = errors.New("invalid If-Match")

// parseIfMatch reads a version from an If-Match header. Quoted, weak and bare
// forms are accepted; an empty header means no precondition.
func parseIfMatch(header string) (*int, error) {
	v := strings.TrimSpace(header)
	if v == "" || v == "*" {
		return nil, nil
	}
	v = strings.TrimPrefix(v, "W/")
	v = strings.Trim(v, `"`)

	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return nil, errBadIfMatch
	}
	return &n, nil
}
