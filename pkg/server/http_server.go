package server

import (
	"encoding/json"
	"net/http"

	"github.com/NYTimes/gziphandler"
	"github.com/gorilla/mux"

	"github.com/pixelport/pixelport/pkg/application"
)

// HTTPServer assembles the router from the application's registered
// controllers and middleware. Unmatched routes answer with JSON errors routed
// through the same middleware chain, so they get request-logged like any
// other request.
type HTTPServer struct {
	app application.Application
}

func New(app application.Application) *HTTPServer {
	return &HTTPServer{app: app}
}

func (s *HTTPServer) Router() *mux.Router {
	r := mux.NewRouter()
	middlewares := s.app.Middleware()
	r.Use(middlewares...)
	for _, controller := range s.app.Controllers() {
		controller.Register(r)
	}
	r.NotFoundHandler = chain(jsonError(http.StatusNotFound, "not found"), middlewares)
	r.MethodNotAllowedHandler = chain(jsonError(http.StatusMethodNotAllowed, "method not allowed"), middlewares)
	return r
}

func (s *HTTPServer) Handler() http.Handler {
	return gziphandler.GzipHandler(s.Router())
}

func (s *HTTPServer) Start(socketAddress string) error {
	return http.ListenAndServe(socketAddress, s.Handler())
}

// mux only applies Use() middleware to matched routes; the catch-all handlers
// need the chain applied by hand.
func chain(h http.Handler, middlewares []mux.MiddlewareFunc) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

func jsonError(status int, message string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
	})
}
