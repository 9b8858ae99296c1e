// Package api holds the OpenAPI description of the payments API, the server
// interfaces generated from it, its docs routes and the request validation
// middleware built from it.
package api

//go:generate go tool oapi-codegen -config cfg.yaml openapi.yaml

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var openAPIDocument []byte

var loadSwagger = sync.OnceValues(func() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}
	return doc, nil
})

// GetSwagger returns the parsed OpenAPI document. The result is shared and must not be modified.
func GetSwagger() (*openapi3.T, error) {
	return loadSwagger()
}
