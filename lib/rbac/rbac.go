package rbac

import (
	"office-admin-backend/models"
	"regexp"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

type Provider interface {
	GetRule(method, path string) (*Rule, bool)
	GetRuleFunc(method, path string) (models.RbacFunc, bool)
	RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) error
	GetPermissions(role models.UserRole) map[models.Module][]models.Permission
	models.PermissionChecker
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance()
}

// NewInstance набор правил со всеми маршрутами приложения
func NewInstance() Provider {
	i := &impl{
		routes:      map[HTTPMethod]*routeTable{},
		permissions: map[models.UserRole]map[models.Module][]models.Permission{},
	}
	i.initRules()
	return i
}

type impl struct {
	routes      map[HTTPMethod]*routeTable
	permissions map[models.UserRole]map[models.Module][]models.Permission
}

func (i *impl) GetRule(method, path string) (*Rule, bool) {
	table, ok := i.routes[HTTPMethod(strings.ToUpper(method))]
	if !ok {
		return nil, false
	}
	return table.find(normalizePath(path))
}

func (i *impl) GetRuleFunc(method, path string) (models.RbacFunc, bool) {
	rule, ok := i.GetRule(method, path)
	if !ok {
		return nil, false
	}
	return rule.Handler, true
}

// RegisterRule handler == nil - доступ по списку ролей
func (i *impl) RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) error {
	path, method, err := parseSwaggerPattern(swaggerPattern)
	if err != nil {
		return err
	}
	if handler == nil {
		handler = AllowByRoleFunc(roles)
	}
	rule := &Rule{
		Module:     module,
		Permission: permission,
		Path:       path,
		Handler:    handler,
		pattern:    compilePattern(path),
	}
	table, ok := i.routes[method]
	if !ok {
		table = newRouteTable()
		i.routes[method] = table
	}
	if !table.add(rule) {
		return errors.Errorf("правило для %v [%v] уже зарегистрировано", path, method)
	}
	i.grant(module, permission, roles)
	return nil
}

func (i *impl) mustRegister(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) {
	if err := i.RegisterRule(module, permission, roles, swaggerPattern, handler); err != nil {
		panic(err.Error())
	}
}

// grant матрица прав для фронта и для проверок внутри обработчиков
func (i *impl) grant(module models.Module, permission models.Permission, roles []models.UserRole) {
	for _, role := range roles {
		modules, ok := i.permissions[role]
		if !ok {
			modules = map[models.Module][]models.Permission{}
			i.permissions[role] = modules
		}
		if !slices.Contains(modules[module], permission) {
			modules[module] = append(modules[module], permission)
		}
	}
}

func (i *impl) GetPermissions(role models.UserRole) map[models.Module][]models.Permission {
	return i.permissions[role]
}

func (i *impl) HasPermission(role models.UserRole, module models.Module, permission models.Permission) bool {
	return slices.Contains(i.permissions[role][module], permission)
}

func (i *impl) RolesWithPermission(module models.Module, permission models.Permission) []models.UserRole {
	result := []models.UserRole{}
	for _, role := range AllRoles {
		if i.HasPermission(role, module, permission) {
			result = append(result, role)
		}
	}
	return result
}

func AllowFunc() models.RbacFunc {
	return func(userID string, role models.UserRole, uri string) bool {
		return true
	}
}

func AllowByRoleFunc(accessRoles []models.UserRole) models.RbacFunc {
	return func(userID string, role models.UserRole, uri string) bool {
		return slices.Contains(accessRoles, role)
	}
}

// compilePattern nil для пути без параметров
func compilePattern(path string) *regexp.Regexp {
	if !strings.Contains(path, "{") {
		return nil
	}
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	for idx, segment := range segments {
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			segments[idx] = `[^/]+`
			continue
		}
		segments[idx] = regexp.QuoteMeta(segment)
	}
	return regexp.MustCompile("^/" + strings.Join(segments, "/") + "$")
}

// parseSwaggerPattern строка вида "/api/v1/letters/{id} [get]"
func parseSwaggerPattern(pattern string) (path string, method HTTPMethod, err error) {
	pattern = strings.TrimSpace(pattern)
	open := strings.LastIndex(pattern, "[")
	if open == -1 || !strings.HasSuffix(pattern, "]") {
		return "", "", errors.Errorf("не указан метод в правиле (%v)", pattern)
	}
	method = HTTPMethod(strings.ToUpper(strings.TrimSpace(pattern[open+1 : len(pattern)-1])))
	if method == "" {
		return "", "", errors.Errorf("не указан метод в правиле (%v)", pattern)
	}
	return normalizePath(strings.TrimSpace(pattern[:open])), method, nil
}

func normalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
