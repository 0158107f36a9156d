package server

import (
	"github.com/bobmcallan/krxdata/internal/common"
	"github.com/bobmcallan/krxdata/internal/tools"
)

// envelopeSchema is the response body of every tool route.
var envelopeSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": true,
	"description":          "Result envelope. Failures carry an \"error\" string plus the arguments that produced it.",
}

// buildOpenAPI generates an OpenAPI 3.0 document from the operation registry.
func buildOpenAPI(svc *tools.Service, serverURL string) map[string]any {
	paths := map[string]any{
		"/health": map[string]any{
			"get": map[string]any{
				"operationId": "health",
				"summary":     "Liveness check",
				"responses": map[string]any{
					"200": jsonResponse("Server is healthy", map[string]any{
						"type": "object",
						"properties": map[string]any{
							"status": map[string]any{"type": "string", "enum": []any{"healthy"}},
						},
					}),
				},
			},
		},
		"/version": map[string]any{
			"get": map[string]any{
				"operationId": "version",
				"summary":     "Build information",
				"responses": map[string]any{
					"200": jsonResponse("Version, build and commit", map[string]any{"type": "object"}),
				},
			},
		},
	}

	for _, op := range svc.Operations() {
		paths[toolsPrefix+op.Name] = map[string]any{
			"post": map[string]any{
				"operationId": op.Name,
				"summary":     firstLine(op.Description),
				"description": op.Description,
				"requestBody": map[string]any{
					"required": false,
					"content": map[string]any{
						"application/json": map[string]any{"schema": op.InputSchema()},
					},
				},
				"responses": map[string]any{
					"200": jsonResponse("Successful result", envelopeSchema),
					"400": jsonResponse("Invalid request or failed operation", envelopeSchema),
					"500": jsonResponse("Result could not be produced", envelopeSchema),
				},
			},
		}
	}

	doc := map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":       "KRX market data tools",
			"description": "Korea Exchange stock, ETF, index, short selling and investor data as tool calls.",
			"version":     common.GetVersion(),
		},
		"paths": paths,
	}
	if serverURL != "" {
		doc["servers"] = []any{map[string]any{"url": serverURL}}
	}
	return doc
}

func jsonResponse(description string, schema map[string]any) map[string]any {
	return map[string]any{
		"description": description,
		"content": map[string]any{
			"application/json": map[string]any{"schema": schema},
		},
	}
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
