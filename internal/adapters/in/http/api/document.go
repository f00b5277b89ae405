// Package api holds the HTTP contract: the OpenAPI document, its request and
// response types and the echo route table.
package api

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var rawDocument []byte

var (
	loadOnce sync.Once
	document *openapi3.T
	loadErr  error
)

// GetSwagger returns the parsed and validated OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loadOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(rawDocument)
		if err != nil {
			loadErr = fmt.Errorf("error loading OpenAPI document: %w", err)
			return
		}
		if err = doc.Validate(loader.Context); err != nil {
			loadErr = fmt.Errorf("error validating OpenAPI document: %w", err)
			return
		}
		document = doc
	})
	return document, loadErr
}
