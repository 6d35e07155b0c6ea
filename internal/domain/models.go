package domain

import "strings"

// Endpoint represents a single API operation loaded from an OpenAPI document
type Endpoint struct {
	Method      string // HTTP verb as supplied by the source document
	Path        string // URL path template, may contain {param} placeholders
	OperationID string
	Summary     string
	Description string
	Tags        []string
	Deprecated  bool
	Parameters  []Parameter
	RequestBody *RequestBody // nil when the operation takes no body
	Responses   []Response   // in document order
	Version     string // API version the endpoint belongs to ("" if unversioned)
}

// Label is the display string used for search results: "METHOD path"
func (e Endpoint) Label() string {
	return strings.ToUpper(e.Method) + " " + e.Path
}

// Key identifies an endpoint within a single version
func (e Endpoint) Key() string {
	return e.Label()
}

// PrimaryTag returns the first tag, or "" when the endpoint is untagged
func (e Endpoint) PrimaryTag() string {
	if len(e.Tags) == 0 {
		return ""
	}
	return e.Tags[0]
}

// Parameter represents an operation parameter
type Parameter struct {
	Name        string
	In          string // query, path, header, cookie
	Description string
	Required    bool
}

// RequestBody describes an operation's request payload
type RequestBody struct {
	Description  string
	Required     bool
	ContentTypes []string
}

// Response describes one documented response of an operation
type Response struct {
	Status       string // status code or "default"
	Description  string
	ContentTypes []string
}

// Version describes one loaded API version
type Version struct {
	ID            string
	Label         string
	IsDefault     bool
	EndpointCount int
}
