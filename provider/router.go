package provider

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Scheme is the only address scheme the router accepts
const Scheme = "content"

// RouteClass classifies a resolved address
type RouteClass int

const (
	// RouteCollection addresses the whole table
	RouteCollection RouteClass = iota + 1

	// RouteItem addresses one record by id
	RouteItem
)

func (c RouteClass) String() string {
	switch c {
	case RouteCollection:
		return "collection"
	case RouteItem:
		return "item"
	default:
		return fmt.Sprintf("RouteClass(%d)", int(c))
	}
}

// Route is the result of resolving an address
type Route struct {
	Class   RouteClass
	Address string
	Table   string
	ID      int64
}

// idSegment matches a positive integer path segment
const idSegment = "#"

type routeEntry struct {
	segments []string
	class    RouteClass
}

// Router maps addresses to route classes. The table is fixed at
// construction and read-only afterwards, so a Router is safe for
// concurrent use.
type Router struct {
	authority string
	table     string
	routes    []routeEntry
}

// NewRouter builds the route table for one table under authority
func NewRouter(authority, table string) *Router {
	return &Router{
		authority: authority,
		table:     table,
		routes: []routeEntry{
			{segments: []string{table}, class: RouteCollection},
			{segments: []string{table, idSegment}, class: RouteItem},
		},
	}
}

// Authority returns the authority the router answers for
func (r *Router) Authority() string {
	return r.authority
}

// Table returns the routed table name
func (r *Router) Table() string {
	return r.table
}

// CollectionAddress returns the address of the whole table
func (r *Router) CollectionAddress() string {
	return Scheme + "://" + r.authority + "/" + r.table
}

// ItemAddress returns the address of the record with the given id
func (r *Router) ItemAddress(id int64) string {
	return WithAppendedID(r.CollectionAddress(), id)
}

// Resolve classifies address or fails with an *AddressError wrapping
// ErrUnknownAddress
func (r *Router) Resolve(address string) (Route, error) {
	u, err := url.Parse(address)
	if err != nil || u.Scheme != Scheme || u.Host != r.authority {
		return Route{}, unknownAddress(address)
	}
	if u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return Route{}, unknownAddress(address)
	}

	// Match the path as written; percent-encoded spellings of the table or
	// id are different addresses
	path := strings.TrimPrefix(u.EscapedPath(), "/")
	if path == "" || strings.HasSuffix(path, "/") {
		return Route{}, unknownAddress(address)
	}
	segments := strings.Split(path, "/")

	for _, entry := range r.routes {
		id, ok := match(entry.segments, segments)
		if !ok {
			continue
		}
		return Route{
			Class:   entry.class,
			Address: address,
			Table:   r.table,
			ID:      id,
		}, nil
	}

	return Route{}, unknownAddress(address)
}

func match(pattern, segments []string) (int64, bool) {
	if len(pattern) != len(segments) {
		return 0, false
	}

	var id int64
	for i, want := range pattern {
		if want != idSegment {
			if segments[i] != want {
				return 0, false
			}
			continue
		}
		parsed, err := parsePositiveID(segments[i])
		if err != nil {
			return 0, false
		}
		id = parsed
	}
	return id, true
}

func parsePositiveID(segment string) (int64, error) {
	// Reject signs and leading zeros so each id has exactly one address
	if segment == "" || segment[0] < '1' || segment[0] > '9' {
		return 0, fmt.Errorf("invalid id segment %q", segment)
	}
	return strconv.ParseInt(segment, 10, 64)
}

// WithAppendedID returns base with id appended as the last path segment
func WithAppendedID(base string, id int64) string {
	return strings.TrimSuffix(base, "/") + "/" + strconv.FormatInt(id, 10)
}

// ParseID returns the id carried in the last path segment of address
func ParseID(address string) (int64, error) {
	i := strings.LastIndex(address, "/")
	if i < 0 {
		return 0, fmt.Errorf("no id segment in %q", address)
	}
	return parsePositiveID(address[i+1:])
}
