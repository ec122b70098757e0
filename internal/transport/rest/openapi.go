package rest

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi"
)

// LoadContract reads and validates the OpenAPI document at path.
func LoadContract(ctx context.Context, path string) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load openapi contract: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi contract: %w", err)
	}
	return doc, nil
}

// UndocumentedRoutes lists "METHOD /path" for every route mounted under
// prefix that has no matching operation in doc. Contract paths are relative
// to prefix.
func UndocumentedRoutes(routes chi.Routes, doc *openapi3.T, prefix string) ([]string, error) {
	var missing []string
	err := chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if !strings.HasPrefix(route, prefix) {
			return nil
		}
		path := strings.TrimSuffix(strings.TrimPrefix(route, prefix), "/")
		if path == "" {
			path = "/"
		}

		item := doc.Paths.Value(path)
		if item == nil || item.GetOperation(method) == nil {
			missing = append(missing, method+" "+path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(missing)
	return missing, nil
}
