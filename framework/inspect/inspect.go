// Package inspect serves a read-only JSON view of a container's registry.
//
//	GET {prefix}/services              → {"data": {"container": id, "services": [...]}}
//	GET {prefix}/services?shared=true  → shared services only
//	GET {prefix}/services?tag=reports  → services tagged "reports"
//	GET {prefix}/services/{name}       → {"data": {...}} or 404
//
// The inspector never resolves a service; "resolved" only reports whether a
// shared instance is already cached.
package inspect

import (
	"net/http"
	"slices"
	"strconv"

	"github.com/km-arc/go-container/framework/container"
	gohttp "github.com/km-arc/go-container/framework/http"
	"github.com/km-arc/go-container/framework/routing"
	"github.com/km-arc/go-container/framework/validation"
)

// Service is the JSON form of one registration.
type Service struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Type     string   `json:"type,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Shared   bool     `json:"shared"`
	Resolved bool     `json:"resolved"`
}

// Registry is the body of the list endpoint.
type Registry struct {
	Container string    `json:"container"`
	Services  []Service `json:"services"`
}

var listRules = validation.Rules{"shared": "nullable|boolean"}

// Handler serves the inspector endpoints for one container.
type Handler struct {
	c *container.Container
}

// NewHandler creates a Handler for c.
func NewHandler(c *container.Container) *Handler {
	return &Handler{c: c}
}

// Routes mounts the endpoints on r under prefix.
func (h *Handler) Routes(r *routing.Router, prefix string) {
	r.Prefix(prefix, func(r *routing.Router) {
		r.Middleware(noStore)
		r.Get("/services", h.Index)
		r.Get("/services/{name}", h.Show)
	})
}

// Index lists registrations in registration order.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)

	v := validation.Make(req.All(), listRules)
	if v.Fails() {
		res.ValidationError(v.Errors())
		return
	}

	var only *bool
	if req.Has("shared") {
		shared, _ := strconv.ParseBool(req.Query("shared"))
		only = &shared
	}

	tag := req.Query("tag")

	services := make([]Service, 0)
	for _, s := range h.c.Services() {
		if only != nil && s.Shared != *only {
			continue
		}
		item := h.describe(s)
		if tag != "" && !slices.Contains(item.Tags, tag) {
			continue
		}
		services = append(services, item)
	}

	res.Success(Registry{Container: h.c.ID(), Services: services})
}

// Show describes a single registration.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)
	name := req.RouteParam("name")

	for _, s := range h.c.Services() {
		if s.Name == name {
			res.Success(h.describe(s))
			return
		}
	}
	res.NotFound(container.ServiceNotFoundError{Name: name}.Error())
}

func (h *Handler) describe(s container.Service) Service {
	return Service{
		Name:     s.Name,
		Kind:     s.Definition.Kind().String(),
		Type:     s.Definition.TypeName(),
		Tags:     h.c.Tags(s.Name),
		Shared:   s.Shared,
		Resolved: s.Shared && h.c.Resolved(s.Name),
	}
}

// noStore keeps clients from caching a registry that changes at runtime.
func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
