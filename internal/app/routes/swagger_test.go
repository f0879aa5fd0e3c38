package routes

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
	"github.com/yigit/coursehub/internal/middleware"
)

var ginParam = regexp.MustCompile(`:(\w+)`)

func TestSwaggerDocumentsEveryRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRouter(router, Controllers{}, middleware.NewAuthMiddleware(nil))

	raw, err := swag.ReadDoc()
	require.NoError(t, err)
	var doc struct {
		BasePath    string                                `json:"basePath"`
		Paths       map[string]map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage            `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	require.Equal(t, "/api/v1", doc.BasePath)

	routes := router.Routes()
	require.NotEmpty(t, routes)
	for _, r := range routes {
		path := ginParam.ReplaceAllString(strings.TrimPrefix(r.Path, doc.BasePath), "{$1}")
		ops, ok := doc.Paths[path]
		if assert.True(t, ok, "undocumented path %s", path) {
			assert.Contains(t, ops, strings.ToLower(r.Method), "undocumented %s %s", r.Method, path)
		}
	}

	for _, def := range []string{"dto.ErrorResponse", "models.CourseDetails", "models.ModuleDetails", "dto.SubmitQuizRequest"} {
		assert.Contains(t, doc.Definitions, def)
	}
}
