package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// DiagnosticService is what the connectivity check exercises on the backend
// client.
type DiagnosticService interface {
	Ping(ctx context.Context) error
	ProbeGoogleAuth(ctx context.Context) (int, error)
	BaseURL() string
}

type DiagnosticHandler struct {
	backend DiagnosticService
}

func NewDiagnosticHandler(backendSvc DiagnosticService) *DiagnosticHandler {
	return &DiagnosticHandler{
		backend: backendSvc,
	}
}

type diagnosticTest struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// GetAuthConnection probes the identity backend: is it reachable at all, and
// is the Google auth route registered. Useful when OAuth sign-in mysteriously
// returns the user to the error page.
func (h *DiagnosticHandler) GetAuthConnection(ctx *fiber.Ctx) error {
	serverURL := h.backend.BaseURL()
	tests := make([]diagnosticTest, 0, 2)

	if err := h.backend.Ping(ctx.Context()); err != nil {
		tests = append(tests, diagnosticTest{
			Name:    "Server Reachable",
			Status:  "error",
			Message: fmt.Sprintf("Cannot connect to %s. Is the identity backend running?", serverURL),
		})
	} else {
		tests = append(tests, diagnosticTest{
			Name:    "Server Reachable",
			Status:  "success",
			Message: fmt.Sprintf("Server is running on %s", serverURL),
		})
	}

	status, err := h.backend.ProbeGoogleAuth(ctx.Context())
	switch {
	case err != nil:
		tests = append(tests, diagnosticTest{
			Name:    "Google Auth Endpoint",
			Status:  "error",
			Message: "Cannot connect to server",
		})
	case status == http.StatusNotFound:
		tests = append(tests, diagnosticTest{
			Name:    "Google Auth Endpoint",
			Status:  "error",
			Message: "Endpoint not found (404). Check if the route is registered correctly.",
		})
	case status == http.StatusBadRequest:
		tests = append(tests, diagnosticTest{
			Name:    "Google Auth Endpoint",
			Status:  "success",
			Message: "Endpoint exists and is responding (expected 400 for empty data)",
		})
	default:
		tests = append(tests, diagnosticTest{
			Name:    "Google Auth Endpoint",
			Status:  "warning",
			Message: fmt.Sprintf("Endpoint returned status %d", status),
		})
	}

	allPassed := true
	hasErrors := false
	for _, test := range tests {
		if test.Status != "success" {
			allPassed = false
		}
		if test.Status == "error" {
			hasErrors = true
		}
	}

	code := http.StatusOK
	if hasErrors {
		code = http.StatusBadRequest
	}
	return ctx.Status(code).JSON(fiber.Map{
		"success":        allPassed,
		"hasErrors":      hasErrors,
		"serverUrl":      serverURL,
		"googleEndpoint": serverURL + "/api/auth/google",
		"tests":          tests,
	})
}
