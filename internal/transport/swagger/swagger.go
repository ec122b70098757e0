package swagger

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Handler serves the swagger UI for the contract published at contractURL.
func Handler(contractURL string) http.Handler {
	if contractURL == "" {
		contractURL = "/openapi.yml"
	}
	return httpSwagger.Handler(
		httpSwagger.URL(contractURL),
		httpSwagger.DocExpansion("list"),
	)
}
