// Package router wires the student handlers onto a net/http ServeMux.
//
// Route table:
//
//	POST /api/InsertStudentData   → insert a student        (function key)
//	GET  /api/GetStudentData?id=  → look a student up by id (function key)
//	GET  /api/health              → liveness                (open)
package router

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/student-functions/internal/http/handlers/student"
	"github.com/aanand-mishra/student-functions/internal/http/middleware"
)

// New returns the function host's handler. functionKey may be empty to
// disable authorization.
func New(fns student.Functions, functionKey string, log *slog.Logger) http.Handler {
	auth := middleware.FunctionKey(functionKey, log)

	router := http.NewServeMux()
	router.Handle("POST /api/InsertStudentData", auth(student.Insert(fns)))
	router.Handle("GET /api/GetStudentData", auth(student.Lookup(fns)))
	router.HandleFunc("GET /api/health", student.Health())

	return router
}
