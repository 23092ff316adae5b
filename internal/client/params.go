package client

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/guttosm/mpdash/internal/domain/models"
)

// Param is one query parameter.
type Param struct {
	Name  string
	Value string
}

// Params is an ordered list of query parameters. Order is kept on the wire so
// requests read the same way in upstream access logs as they do here.
type Params []Param

// Get returns the value of the first parameter called name.
func (p Params) Get(name string) (string, bool) {
	for _, kv := range p {
		if kv.Name == name {
			return kv.Value, true
		}
	}
	return "", false
}

// Encode renders p as a query string ("a=1&b=2") in order.
func (p Params) Encode() string {
	var sb strings.Builder
	for i, kv := range p {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(kv.Name))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(kv.Value))
	}
	return sb.String()
}

// MergeDefaults fills in each default the caller left absent or empty. Caller
// values always win. An empty caller value is replaced in place; an absent
// one is appended. Defaults with an empty value are skipped.
func MergeDefaults(caller, defaults Params) Params {
	out := make(Params, 0, len(caller)+len(defaults))
	out = append(out, caller...)
	for _, d := range defaults {
		if d.Value == "" {
			continue
		}
		if i := out.index(d.Name); i >= 0 {
			if out[i].Value == "" {
				out[i].Value = d.Value
			}
			continue
		}
		out = append(out, d)
	}
	return out
}

func (p Params) index(name string) int {
	for i, kv := range p {
		if kv.Name == name {
			return i
		}
	}
	return -1
}

// FilterParams serializes f for resource r in upstream order: dateFrom,
// dateTo (not for stocks), limit, page. Empty dates are left out.
func FilterParams(r models.Resource, f models.QueryFilter) Params {
	f = f.For(r)
	p := make(Params, 0, 4)
	if f.DateFrom != "" {
		p = append(p, Param{Name: "dateFrom", Value: f.DateFrom})
	}
	if f.DateTo != "" {
		p = append(p, Param{Name: "dateTo", Value: f.DateTo})
	}
	p = append(p,
		Param{Name: "limit", Value: strconv.Itoa(f.Limit)},
		Param{Name: "page", Value: strconv.Itoa(f.Page)},
	)
	return p
}
