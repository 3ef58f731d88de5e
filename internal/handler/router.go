package handler

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/edule/internal/config"
	"github.com/xxxsen/edule/internal/middleware"
	"github.com/xxxsen/edule/internal/model"
)

type RouterDeps struct {
	Auth       *AuthHandler
	Users      *UserHandler
	Tuitions   *TuitionHandler
	Applicants *ApplicantHandler
	Connects   *ConnectHandler
	Roles      middleware.RoleChecker
	JWTSecret  []byte
	// Gates overrides DefaultGates per "METHOD /pattern" key.
	Gates map[string]string
}

// DefaultGates is the gate each route gets unless configuration says otherwise.
var DefaultGates = map[string]string{
	"GET /":                       config.GatePublic,
	"POST /users":                 config.GatePublic,
	"POST /tuitions":              config.GateStudent,
	"POST /applicants":            config.GateTutor,
	"POST /connects":              config.GatePublic,
	"GET /jwt":                    config.GatePublic,
	"GET /users/student/:email":   config.GatePublic,
	"GET /users/tutor/:email":     config.GatePublic,
	"GET /users":                  config.GatePublic,
	"GET /tuitions":               config.GateToken,
	"GET /allApplications":        config.GateToken,
	"GET /specificTuition/:id":    config.GatePublic,
	"GET /myProfile":              config.GateToken,
	"GET /profileUpdate/:id":      config.GatePublic,
	"POST /myProfileUpdate/:key":  config.GatePublic,
	"PATCH /myProfileUpdate/:key": config.GatePublic,
}

type route struct {
	method  string
	path    string
	handler gin.HandlerFunc
}

func (r route) key() string {
	return r.method + " " + r.path
}

func routes(deps RouterDeps) []route {
	return []route{
		{http.MethodGet, "/", Health},
		{http.MethodPost, "/users", deps.Users.Create},
		{http.MethodPost, "/tuitions", deps.Tuitions.Create},
		{http.MethodPost, "/applicants", deps.Applicants.Apply},
		{http.MethodPost, "/connects", deps.Connects.Create},
		{http.MethodGet, "/jwt", deps.Auth.IssueToken},
		{http.MethodGet, "/users/student/:email", deps.Users.IsStudent},
		{http.MethodGet, "/users/tutor/:email", deps.Users.IsTutor},
		{http.MethodGet, "/users", deps.Users.List},
		{http.MethodGet, "/tuitions", deps.Tuitions.List},
		{http.MethodGet, "/allApplications", deps.Applicants.List},
		{http.MethodGet, "/specificTuition/:id", deps.Tuitions.Get},
		{http.MethodGet, "/myProfile", deps.Users.MyProfile},
		{http.MethodGet, "/profileUpdate/:id", deps.Users.Get},
		{http.MethodPost, "/myProfileUpdate/:key", deps.Users.UpdateProfile},
		{http.MethodPatch, "/myProfileUpdate/:key", deps.Users.UpdateProfile},
	}
}

// ResolveGates merges overrides onto DefaultGates, rejecting unknown routes
// and gates.
func ResolveGates(overrides map[string]string) (map[string]string, error) {
	gates := make(map[string]string, len(DefaultGates))
	for k, v := range DefaultGates {
		gates[k] = v
	}
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := DefaultGates[k]; !ok {
			return nil, fmt.Errorf("gate override for unknown route %q", k)
		}
		if !config.IsGate(overrides[k]) {
			return nil, fmt.Errorf("route %q: unknown gate %q", k, overrides[k])
		}
		gates[k] = overrides[k]
	}
	return gates, nil
}

func (deps RouterDeps) chain(gate string) []gin.HandlerFunc {
	switch gate {
	case config.GateToken:
		return []gin.HandlerFunc{middleware.JWTAuth(deps.JWTSecret)}
	case config.GateStudent:
		return []gin.HandlerFunc{middleware.JWTAuth(deps.JWTSecret), middleware.RequireRole(deps.Roles, model.RoleStudent)}
	case config.GateTutor:
		return []gin.HandlerFunc{middleware.JWTAuth(deps.JWTSecret), middleware.RequireRole(deps.Roles, model.RoleTutor)}
	}
	return nil
}

func RegisterRoutes(r gin.IRoutes, deps RouterDeps) error {
	gates, err := ResolveGates(deps.Gates)
	if err != nil {
		return err
	}
	for _, rt := range routes(deps) {
		handlers := append(deps.chain(gates[rt.key()]), rt.handler)
		r.Handle(rt.method, rt.path, handlers...)
	}
	return nil
}

// NewEngine builds a gin engine with the given middlewares in front of every
// route.
func NewEngine(deps RouterDeps, middlewares ...gin.HandlerFunc) (*gin.Engine, error) {
	engine := gin.New()
	engine.Use(middlewares...)
	if err := RegisterRoutes(engine, deps); err != nil {
		return nil, err
	}
	return engine, nil
}
