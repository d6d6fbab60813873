package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jombo/internal/domain"

	"github.com/gin-gonic/gin"
)

func TestRespondDomainErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.ValidationError{Field: "seats", Msg: "must be positive"}, http.StatusUnprocessableEntity},
		{"forbidden", domain.ForbiddenError{Msg: "not the driver"}, http.StatusForbidden},
		{"not found", domain.NotFoundError{Resource: "trip"}, http.StatusNotFound},
		{"conflict", domain.ConflictError{Msg: "already exists"}, http.StatusConflict},
		{"internal", domain.InternalError{Err: errors.New("dsn parse failure")}, http.StatusInternalServerError},
		{"unknown", errors.New("anything else"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		RespondDomainError(ctx, c.err)
		if w.Code != c.want {
			t.Errorf("%s: got status %d, want %d", c.name, w.Code, c.want)
		}
	}
}

func TestRespondDomainErrorHidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondDomainError(ctx, domain.InternalError{Err: errors.New("Error 1045: access denied for user root")})
	body := w.Body.String()
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d", w.Code)
	}
	for _, leak := range []string{"1045", "root", "access denied"} {
		if strings.Contains(body, leak) {
			t.Fatalf("internal error detail leaked to client: %s", body)
		}
	}
}
