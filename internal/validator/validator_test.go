package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type signup struct {
	Email string `json:"email" binding:"required"`
	Role  string `json:"userRole"`
}

func bindBody(t *testing.T, body string) map[string]string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	Setup()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var dst signup
	return Bind(c, &dst)
}

func TestBindMissingRequiredUsesJSONName(t *testing.T) {
	fields := bindBody(t, `{"userRole":"student"}`)
	assert.Equal(t, map[string]string{"email": "email is a required field"}, fields)
}

func TestBindEmptyBody(t *testing.T) {
	fields := bindBody(t, ``)
	assert.Equal(t, "request body is empty", fields["detail"])
}

func TestBindSyntaxError(t *testing.T) {
	fields := bindBody(t, `{"email":`)
	assert.Contains(t, fields, "detail")
}

func TestBindOK(t *testing.T) {
	assert.Nil(t, bindBody(t, `{"email":"ada@example.com"}`))
}
