// Package policy implements the route authorization table: a static,
// ordered mapping from (method, path pattern) to the capability a request
// must present. It is deliberately transport-agnostic — the gin middleware
// feeds it the method, the raw URL path, and whatever identity the
// authentication middleware attached — so the whole table can be unit
// tested without an HTTP server.
package policy

import (
	"strings"

	"github.com/google/uuid"
)

// Identity is the request-scoped result of token verification. Nil means
// the request is anonymous.
type Identity struct {
	UsuarioID uuid.UUID
	Rol       string
}

type kind int

const (
	kindPublic kind = iota
	kindAuthenticated
	kindRole
)

// Requirement is the capability a rule demands.
type Requirement struct {
	k   kind
	rol string
}

var (
	// Public routes need no identity at all.
	Public = Requirement{k: kindPublic}
	// Authenticated routes accept any verified identity.
	Authenticated = Requirement{k: kindAuthenticated}
)

// Role requires a verified identity whose rol matches exactly.
func Role(rol string) Requirement {
	return Requirement{k: kindRole, rol: rol}
}

// Decision is the outcome of evaluating a request against the table.
type Decision int

const (
	Allow        Decision = iota
	Unauthorized          // 401 — identity required, none present
	Forbidden             // 403 — identity present, wrong role
)

// Rule binds a method and a path pattern to a requirement.
//
// Pattern language: path segments separated by "/"; a "*" segment matches
// exactly one segment; a trailing "/**" matches one or more remaining
// segments. Method "*" matches any method. Tables are declared
// most-specific-first and the first matching rule wins.
type Rule struct {
	Method      string
	Pattern     string
	Requirement Requirement
}

// Table is an ordered set of rules with a deny-by-default posture:
// a request matching no rule requires an authenticated identity.
type Table struct {
	rules []Rule
}

func NewTable(rules ...Rule) *Table {
	return &Table{rules: rules}
}

// Evaluate returns the decision for a request. ident == nil means anonymous.
func (t *Table) Evaluate(method, path string, ident *Identity) Decision {
	req := Authenticated // no rule matched → deny by default
	for _, r := range t.rules {
		if r.Method != "*" && r.Method != method {
			continue
		}
		if matchPattern(r.Pattern, path) {
			req = r.Requirement
			break
		}
	}
	return check(req, ident)
}

func check(req Requirement, ident *Identity) Decision {
	switch req.k {
	case kindPublic:
		return Allow
	case kindAuthenticated:
		if ident == nil {
			return Unauthorized
		}
		return Allow
	default: // kindRole
		if ident == nil {
			return Unauthorized
		}
		if ident.Rol != req.rol {
			return Forbidden
		}
		return Allow
	}
}

func matchPattern(pattern, path string) bool {
	pSegs := split(pattern)
	segs := split(path)

	for i, ps := range pSegs {
		if ps == "**" {
			// trailing wildcard: at least one remaining segment
			return len(segs) > i
		}
		if i >= len(segs) {
			return false
		}
		if ps != "*" && ps != segs[i] {
			return false
		}
	}
	return len(segs) == len(pSegs)
}

func split(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
