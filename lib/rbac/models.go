package rbac

import (
	"office-admin-backend/models"
	"regexp"
)

type HTTPMethod string

const (
	GET    HTTPMethod = "GET"
	POST   HTTPMethod = "POST"
	PUT    HTTPMethod = "PUT"
	DELETE HTTPMethod = "DELETE"
)

// Rule правило доступа к маршруту
type Rule struct {
	Module     models.Module
	Permission models.Permission
	Path       string
	Handler    models.RbacFunc

	pattern *regexp.Regexp
}

type routeTable struct {
	exact    map[string]*Rule
	patterns []*Rule
}

func newRouteTable() *routeTable {
	return &routeTable{exact: map[string]*Rule{}}
}

func (t *routeTable) add(rule *Rule) bool {
	if rule.pattern == nil {
		if _, ok := t.exact[rule.Path]; ok {
			return false
		}
		t.exact[rule.Path] = rule
		return true
	}
	for _, existed := range t.patterns {
		if existed.Path == rule.Path {
			return false
		}
	}
	t.patterns = append(t.patterns, rule)
	return true
}

// find точное совпадение важнее шаблона
func (t *routeTable) find(path string) (*Rule, bool) {
	if rule, ok := t.exact[path]; ok {
		return rule, true
	}
	for _, rule := range t.patterns {
		if rule.pattern.MatchString(path) {
			return rule, true
		}
	}
	return nil, false
}
