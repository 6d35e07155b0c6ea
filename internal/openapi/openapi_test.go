package openapi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petstoreYAML = `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.2.0
tags:
  - name: pets
paths:
  /pets/{petId}:
    parameters:
      - name: petId
        in: path
        required: true
    delete:
      summary: Delete a pet
      tags: [pets]
    get:
      operationId: showPetById
      summary: Info for a specific pet
      tags: [pets]
      parameters:
        - name: verbose
          in: query
  /pets:
    post:
      summary: Create a pet
      description: Adds a pet to the store.
      deprecated: true
      tags: [pets, admin]
`

func TestParseAndEndpoints(t *testing.T) {
	doc, err := Parse([]byte(petstoreYAML))
	require.NoError(t, err)

	assert.Equal(t, "Petstore", doc.Info.Title)
	assert.Equal(t, "1.2.0", doc.Info.Version)
	require.Len(t, doc.Tags, 1)

	endpoints, err := doc.Endpoints()
	require.NoError(t, err)
	require.Len(t, endpoints, 3)

	// Document path order, fixed method order within a path
	assert.Equal(t, "GET /pets/{petId}", endpoints[0].Label())
	assert.Equal(t, "DELETE /pets/{petId}", endpoints[1].Label())
	assert.Equal(t, "POST /pets", endpoints[2].Label())

	get := endpoints[0]
	assert.Equal(t, "showPetById", get.OperationID)
	require.Len(t, get.Parameters, 2)
	assert.Equal(t, "petId", get.Parameters[0].Name)
	assert.True(t, get.Parameters[0].Required)
	assert.Equal(t, "verbose", get.Parameters[1].Name)

	del := endpoints[1]
	assert.Equal(t, "delete_/pets/{petId}", del.OperationID)
	require.Len(t, del.Parameters, 1)

	post := endpoints[2]
	assert.True(t, post.Deprecated)
	assert.Equal(t, "Adds a pet to the store.", post.Description)
	assert.Equal(t, []string{"pets", "admin"}, post.Tags)
}

func TestParseJSON(t *testing.T) {
	doc, err := Parse([]byte(`{"openapi": "3.1.0", "info": {"title": "T", "version": "2"}, "paths": {"/b": {"get": {"summary": "B"}}, "/a": {"put": {}}}}`))
	require.NoError(t, err)

	endpoints, err := doc.Endpoints()
	require.NoError(t, err)
	require.Len(t, endpoints, 2)
	assert.Equal(t, "/b", endpoints[0].Path)
	assert.Equal(t, "PUT", endpoints[1].Method)
	assert.Empty(t, endpoints[1].Summary)
}

func TestParseRejectsNonOpenAPI3(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing field", "info: {title: x}\n"},
		{"swagger 2", "openapi: '2.0'\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, ErrNotOpenAPI3)
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "api.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(petstoreYAML), 0o644))
	doc, err := ParseFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "3.0.3", doc.OpenAPI)

	_, err = ParseFile(filepath.Join(dir, "api.txt"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ParseFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestEndpointsWithoutPaths(t *testing.T) {
	doc, err := Parse([]byte("openapi: 3.0.0\ninfo: {title: empty, version: '0'}\n"))
	require.NoError(t, err)

	endpoints, err := doc.Endpoints()
	require.NoError(t, err)
	assert.Empty(t, endpoints)
}

const bodyYAML = `
openapi: 3.0.0
info: {title: Users, version: 1.0.0}
paths:
  /users:
    post:
      summary: Create user
      requestBody:
        description: The user to create
        required: true
        content:
          application/json: {schema: {type: object}}
          application/xml: {schema: {type: object}}
      responses:
        "201":
          description: Created
          content:
            application/json: {schema: {type: object}}
        "400":
          description: Invalid user
        default:
          description: Unexpected error
    get:
      summary: List users
`

func TestRequestBodyAndResponses(t *testing.T) {
	doc, err := Parse([]byte(bodyYAML))
	require.NoError(t, err)

	endpoints, err := doc.Endpoints()
	require.NoError(t, err)
	require.Len(t, endpoints, 2)

	get := endpoints[0]
	assert.Nil(t, get.RequestBody)
	assert.Empty(t, get.Responses)

	post := endpoints[1]
	require.NotNil(t, post.RequestBody)
	assert.Equal(t, "The user to create", post.RequestBody.Description)
	assert.True(t, post.RequestBody.Required)
	assert.Equal(t, []string{"application/json", "application/xml"}, post.RequestBody.ContentTypes)

	// status codes keep document order, not numeric or map order
	require.Len(t, post.Responses, 3)
	assert.Equal(t, "201", post.Responses[0].Status)
	assert.Equal(t, "Created", post.Responses[0].Description)
	assert.Equal(t, []string{"application/json"}, post.Responses[0].ContentTypes)
	assert.Equal(t, "400", post.Responses[1].Status)
	assert.Empty(t, post.Responses[1].ContentTypes)
	assert.Equal(t, "default", post.Responses[2].Status)
}

func TestResponsesMustBeMapping(t *testing.T) {
	doc, err := Parse([]byte(`
openapi: 3.0.0
info: {title: T, version: "1"}
paths:
  /a:
    get:
      responses: [200]
`))
	require.NoError(t, err)

	_, err = doc.Endpoints()
	assert.ErrorContains(t, err, "GET /a")
}
