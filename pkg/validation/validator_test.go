package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aldisetiawan/go-user-address-api/pkg/apperrors"
)

type createPayload struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName" binding:"required,max=100"`
	Password  string `json:"password" binding:"required,pwd"`
}

func bindErr(t *testing.T, body string) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	Init()

	var bound error
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var p createPayload
		bound = c.ShouldBindJSON(&p)
		c.Status(http.StatusOK)
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return bound
}

func fieldNames(errs []apperrors.FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestToFieldErrorsNil(t *testing.T) {
	assert.Nil(t, ToFieldErrors(nil))
}

func TestToFieldErrorsAggregatesAllFields(t *testing.T) {
	err := bindErr(t, `{"email":"not-an-email","password":"abc"}`)
	require.Error(t, err)

	fes := ToFieldErrors(err)
	names := fieldNames(fes)
	assert.Contains(t, names, "email")
	assert.Contains(t, names, "firstName")
	assert.Contains(t, names, "password")
}

func TestToFieldErrorsUsesJSONTagNames(t *testing.T) {
	err := bindErr(t, `{}`)
	require.Error(t, err)

	for _, fe := range ToFieldErrors(err) {
		assert.Equal(t, strings.ToLower(fe.Field[:1]), fe.Field[:1], "field %q should be the json tag name", fe.Field)
	}
}

func TestToFieldErrorsMessages(t *testing.T) {
	err := bindErr(t, `{"email":"bad","firstName":"a","password":"abc"}`)
	require.Error(t, err)

	byField := map[string][]string{}
	for _, fe := range ToFieldErrors(err) {
		byField[fe.Field] = fe.Errors
	}
	assert.Contains(t, byField["email"], "must be a valid email")
	assert.Contains(t, byField["password"], "must be at least 6 characters long")
}

func TestToFieldErrorsMalformedJSON(t *testing.T) {
	err := bindErr(t, `{"email": `)
	require.Error(t, err)

	fes := ToFieldErrors(err)
	require.Len(t, fes, 1)
	assert.Equal(t, "payload", fes[0].Field)
}

func TestToFieldErrorsWrongType(t *testing.T) {
	err := bindErr(t, `{"email": 42}`)
	require.Error(t, err)

	fes := ToFieldErrors(err)
	require.NotEmpty(t, fes)
	assert.Equal(t, "payload", fes[0].Field)
}
