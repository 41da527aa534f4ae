package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"medstore/m/internal/store"
)

const dateLayout = "2006-01-02"

// form reads trimmed urlencoded values and collects the first parse error.
type form struct {
	r   *http.Request
	err error
}

func parseForm(r *http.Request) (*form, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: malformed form: %v", store.ErrValidation, err)
	}
	return &form{r: r}, nil
}

func (f *form) String(key string) string {
	return strings.TrimSpace(f.r.PostFormValue(key))
}

func (f *form) Date(key string) time.Time {
	v := f.String(key)
	if v == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation(dateLayout, v, time.UTC)
	if err != nil {
		f.fail(key, v)
	}
	return t
}

// Money returns zero for an empty field.
func (f *form) Money(key string) decimal.Decimal {
	v := f.String(key)
	if v == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		f.fail(key, v)
	}
	return d
}

func (f *form) Int(key string) int64 {
	v := f.String(key)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		f.fail(key, v)
	}
	return n
}

func (f *form) fail(key, value string) {
	if f.err == nil {
		f.err = fmt.Errorf("%w: invalid %s %q", store.ErrValidation, key, value)
	}
}

// Err returns the first parse error.
func (f *form) Err() error {
	return f.err
}

// pager drives the previous/next links of a manage page.
type pager struct {
	Page    int
	Limit   int
	Prev    int
	Next    int
	HasNext bool
}

// parsePage reads ?page=&limit=. Without a positive limit the whole
// collection is listed.
func parsePage(r *http.Request) (store.Page, *pager) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		return store.Page{}, nil
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	return store.Page{Limit: limit, Offset: (page - 1) * limit}, &pager{Page: page, Limit: limit, Prev: page - 1, Next: page + 1}
}

// withPager stores the pager for the listing and marks whether a further
// page may exist.
func withPager(data map[string]any, p *pager, n int) {
	if p == nil {
		return
	}
	p.HasNext = n == p.Limit
	data["Pager"] = p
}
