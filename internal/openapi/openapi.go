// Package openapi reads OpenAPI 3.x documents and flattens their operations
// into endpoint records.
//
// YAML and JSON documents are both decoded with yaml.v3 so that path order
// in the file is preserved; endpoint order is the tie-breaker for search
// ranking.
package openapi

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"apiscout/internal/domain"
)

var (
	// ErrUnsupportedFormat is returned for files that are not .yaml, .yml or .json
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrNotOpenAPI3 is returned when the openapi field is missing or not 3.x
	ErrNotOpenAPI3 = errors.New("not an OpenAPI 3.x document")
)

// methods lists the operations read from a path item, in emission order
var methods = []string{"get", "post", "put", "patch", "delete", "options", "head"}

// Info is the document's info object
type Info struct {
	Title       string `yaml:"title"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
}

// Tag is a top-level tag declaration
type Tag struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Document is a parsed OpenAPI document
type Document struct {
	OpenAPI string    `yaml:"openapi"`
	Info    Info      `yaml:"info"`
	Tags    []Tag     `yaml:"tags"`
	Paths   yaml.Node `yaml:"paths"`
}

type parameter struct {
	Name        string `yaml:"name"`
	In          string `yaml:"in"`
	Description string `yaml:"description"`
	Required    bool   `yaml:"required"`
}

type requestBody struct {
	Description string    `yaml:"description"`
	Required    bool      `yaml:"required"`
	Content     yaml.Node `yaml:"content"`
}

type response struct {
	Description string    `yaml:"description"`
	Content     yaml.Node `yaml:"content"`
}

type operation struct {
	OperationID string       `yaml:"operationId"`
	Summary     string       `yaml:"summary"`
	Description string       `yaml:"description"`
	Tags        []string     `yaml:"tags"`
	Deprecated  bool         `yaml:"deprecated"`
	Parameters  []parameter  `yaml:"parameters"`
	RequestBody *requestBody `yaml:"requestBody"`
	Responses   yaml.Node    `yaml:"responses"`
}

type pathItem struct {
	Parameters []parameter `yaml:"parameters"`
	Get        *operation  `yaml:"get"`
	Post       *operation  `yaml:"post"`
	Put        *operation  `yaml:"put"`
	Patch      *operation  `yaml:"patch"`
	Delete     *operation  `yaml:"delete"`
	Options    *operation  `yaml:"options"`
	Head       *operation  `yaml:"head"`
}

func (p pathItem) operation(method string) *operation {
	switch method {
	case "get":
		return p.Get
	case "post":
		return p.Post
	case "put":
		return p.Put
	case "patch":
		return p.Patch
	case "delete":
		return p.Delete
	case "options":
		return p.Options
	case "head":
		return p.Head
	}
	return nil
}

// ParseFile loads and validates an OpenAPI document from disk
func ParseFile(path string) (*Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read OpenAPI document: %w", err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes and validates an OpenAPI document
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	if doc.OpenAPI == "" {
		return nil, fmt.Errorf("%w: missing 'openapi' field", ErrNotOpenAPI3)
	}
	if !strings.HasPrefix(doc.OpenAPI, "3.") {
		return nil, fmt.Errorf("%w: got %q", ErrNotOpenAPI3, doc.OpenAPI)
	}

	return &doc, nil
}

// Endpoints flattens the document's paths into endpoint records.
// Paths keep document order; within a path, methods follow the fixed
// get, post, put, patch, delete, options, head order.
func (d *Document) Endpoints() ([]domain.Endpoint, error) {
	if d.Paths.Kind == 0 {
		return nil, nil
	}
	if d.Paths.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("paths must be a mapping, got line %d", d.Paths.Line)
	}

	var endpoints []domain.Endpoint
	for i := 0; i+1 < len(d.Paths.Content); i += 2 {
		path := d.Paths.Content[i].Value

		var item pathItem
		if err := d.Paths.Content[i+1].Decode(&item); err != nil {
			return nil, fmt.Errorf("path %s: %w", path, err)
		}

		for _, method := range methods {
			op := item.operation(method)
			if op == nil {
				continue
			}

			opID := op.OperationID
			if opID == "" {
				opID = method + "_" + path
			}

			params := make([]domain.Parameter, 0, len(item.Parameters)+len(op.Parameters))
			for _, p := range append(append([]parameter{}, item.Parameters...), op.Parameters...) {
				params = append(params, domain.Parameter{
					Name:        p.Name,
					In:          p.In,
					Description: p.Description,
					Required:    p.Required,
				})
			}

			responses, err := op.responses()
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", strings.ToUpper(method), path, err)
			}

			endpoints = append(endpoints, domain.Endpoint{
				Method:      strings.ToUpper(method),
				Path:        path,
				OperationID: opID,
				Summary:     op.Summary,
				Description: op.Description,
				Tags:        op.Tags,
				Deprecated:  op.Deprecated,
				Parameters:  params,
				RequestBody: op.requestBody(),
				Responses:   responses,
			})
		}
	}

	return endpoints, nil
}

func (op *operation) requestBody() *domain.RequestBody {
	if op.RequestBody == nil {
		return nil
	}
	return &domain.RequestBody{
		Description:  op.RequestBody.Description,
		Required:     op.RequestBody.Required,
		ContentTypes: mappingKeys(&op.RequestBody.Content),
	}
}

// responses decodes the responses object keeping status codes in document order
func (op *operation) responses() ([]domain.Response, error) {
	if op.Responses.Kind == 0 {
		return nil, nil
	}
	if op.Responses.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("responses must be a mapping, got line %d", op.Responses.Line)
	}

	out := make([]domain.Response, 0, len(op.Responses.Content)/2)
	for i := 0; i+1 < len(op.Responses.Content); i += 2 {
		status := op.Responses.Content[i].Value

		var r response
		if err := op.Responses.Content[i+1].Decode(&r); err != nil {
			return nil, fmt.Errorf("response %s: %w", status, err)
		}
		out = append(out, domain.Response{
			Status:       status,
			Description:  r.Description,
			ContentTypes: mappingKeys(&r.Content),
		})
	}
	return out, nil
}

// mappingKeys returns the keys of a mapping node in document order
func mappingKeys(n *yaml.Node) []string {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		keys = append(keys, n.Content[i].Value)
	}
	return keys
}
