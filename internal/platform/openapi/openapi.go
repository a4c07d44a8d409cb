package openapi

import (
	"net/http"

	"github.com/ehr/nhcx-viewer/internal/platform/fhir"
	"github.com/labstack/echo/v4"
)

// Generator builds an OpenAPI 3.0 document for the bundle API.
type Generator struct {
	version     string
	baseURL     string
	authEnabled bool
}

// NewGenerator creates a new OpenAPI spec generator. When authEnabled is set
// the bundle operations declare the bearer security scheme.
func NewGenerator(version, baseURL string, authEnabled bool) *Generator {
	return &Generator{version: version, baseURL: baseURL, authEnabled: authEnabled}
}

// GenerateSpec produces the OpenAPI 3.0 spec as a map.
func (g *Generator) GenerateSpec() map[string]interface{} {
	idParam := map[string]interface{}{
		"name":        "id",
		"in":          "path",
		"required":    true,
		"description": "Bundle identifier, e.g. claimResp",
		"schema":      map[string]string{"type": "string"},
	}

	paths := map[string]interface{}{
		"/health": map[string]interface{}{
			"get": map[string]interface{}{
				"summary":     "Service health",
				"operationId": "health",
				"tags":        []string{"system"},
				"responses": map[string]interface{}{
					"200": map[string]interface{}{"description": "Healthy"},
					"503": map[string]interface{}{"description": "Bundle store unreachable"},
				},
			},
		},
		"/api/v1/bundles": map[string]interface{}{
			"get": g.operation("listBundles", "List classified bundles",
				[]map[string]interface{}{
					queryParam("_count", "Page size"),
					queryParam("_offset", "Page offset"),
				},
				g.buildResponseWithSchema("Bundle listing", "#/components/schemas/BundleList"),
			),
		},
		"/api/v1/bundles/{id}": map[string]interface{}{
			"get": g.operation("getBundle", "Interpret one bundle",
				[]map[string]interface{}{idParam},
				g.buildResponseWithSchema("Bundle view", "#/components/schemas/BundleView"),
			),
		},
		"/api/v1/bundles/{id}/raw": map[string]interface{}{
			"get": g.operation("getBundleRaw", "Fetch the bundle document as stored",
				[]map[string]interface{}{idParam},
				g.buildResponseWithSchema("FHIR Bundle", "#/components/schemas/Bundle"),
			),
		},
	}

	components := map[string]interface{}{
		"schemas": buildComponentSchemas(),
	}
	if g.authEnabled {
		components["securitySchemes"] = map[string]interface{}{
			"bearerAuth": map[string]interface{}{
				"type":         "http",
				"scheme":       "bearer",
				"bearerFormat": "JWT",
			},
		}
	}

	return map[string]interface{}{
		"openapi": "3.0.3",
		"info": map[string]interface{}{
			"title":       "NHCX Bundle Viewer API",
			"version":     g.version,
			"description": "Classification and interpretation of NHCX FHIR bundles",
		},
		"servers": []map[string]string{
			{"url": g.baseURL},
		},
		"paths":      paths,
		"components": components,
	}
}

func (g *Generator) operation(id, summary string, params []map[string]interface{}, ok map[string]interface{}) map[string]interface{} {
	outcome := g.buildResponseWithSchema("OperationOutcome", "#/components/schemas/OperationOutcome")
	op := map[string]interface{}{
		"summary":     summary,
		"operationId": id,
		"tags":        []string{"bundles"},
		"parameters":  params,
		"responses": map[string]interface{}{
			"200": ok,
			"404": outcome,
			"429": outcome,
			"502": outcome,
			"504": outcome,
		},
	}
	if g.authEnabled {
		op["security"] = []map[string][]string{{"bearerAuth": {}}}
		op["responses"].(map[string]interface{})["401"] = outcome
	}
	return op
}

func queryParam(name, description string) map[string]interface{} {
	return map[string]interface{}{
		"name":        name,
		"in":          "query",
		"description": description,
		"schema":      map[string]string{"type": "integer"},
	}
}

func (g *Generator) buildResponseWithSchema(description, schemaRef string) map[string]interface{} {
	return map[string]interface{}{
		"description": description,
		"content": map[string]interface{}{
			"application/json": map[string]interface{}{
				"schema": map[string]interface{}{"$ref": schemaRef},
			},
		},
	}
}

func buildComponentSchemas() map[string]interface{} {
	return map[string]interface{}{
		"Bundle":           buildBundleSchema(),
		"BundleList":       buildBundleListSchema(),
		"BundleInfo":       buildBundleInfoSchema(),
		"BundleView":       buildBundleViewSchema(),
		"Classification":   buildClassificationSchema(),
		"Stage":            buildStageSchema(),
		"ResourceView":     buildResourceViewSchema(),
		"BenefitSummary":   object(props{"count": integer(), "totalValue": number()}),
		"Money":            object(props{"value": number(), "currency": str()}),
		"OperationOutcome": buildOperationOutcomeSchema(),
	}
}

type props = map[string]interface{}

func object(p props) map[string]interface{} {
	return map[string]interface{}{"type": "object", "properties": p}
}

func ref(name string) map[string]interface{} {
	return map[string]interface{}{"$ref": "#/components/schemas/" + name}
}

func arrayOf(items map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{"type": "array", "items": items}
}

func str() map[string]interface{}     { return map[string]interface{}{"type": "string"} }
func integer() map[string]interface{} { return map[string]interface{}{"type": "integer"} }
func number() map[string]interface{}  { return map[string]interface{}{"type": "number"} }
func boolean() map[string]interface{} { return map[string]interface{}{"type": "boolean"} }

func enum(values ...string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "enum": values}
}

func buildBundleSchema() map[string]interface{} {
	return object(props{
		"resourceType": enum("Bundle"),
		"id":           str(),
		"type":         str(),
		"timestamp":    map[string]interface{}{"type": "string", "format": "date-time"},
		"meta":         object(props{"profile": arrayOf(str())}),
		"entry": arrayOf(object(props{
			"fullUrl":  str(),
			"resource": map[string]interface{}{"type": "object"},
		})),
	})
}

func buildBundleListSchema() map[string]interface{} {
	return object(props{
		"data":     arrayOf(ref("BundleInfo")),
		"total":    integer(),
		"count":    integer(),
		"offset":   integer(),
		"has_more": boolean(),
		"links":    arrayOf(object(props{"relation": str(), "url": str()})),
	})
}

func buildBundleInfoSchema() map[string]interface{} {
	return object(props{
		"id":             str(),
		"name":           str(),
		"classification": ref("Classification"),
	})
}

func buildClassificationSchema() map[string]interface{} {
	return object(props{
		"category":      enum("Eligibility", "PreAuth", "Claim", "Plan", "CoverageInfo", "ClaimStatus", "Unknown"),
		"direction":     enum("request", "response"),
		"title":         str(),
		"description":   str(),
		"resourceType":  str(),
		"resourceId":    str(),
		"resourceCount": integer(),
		"stage":         ref("Stage"),
	})
}

func buildStageSchema() map[string]interface{} {
	return object(props{
		"id":       str(),
		"name":     str(),
		"status":   str(),
		"progress": map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 100},
		"next":     str(),
		"terminal": boolean(),
		"visual":   object(props{"color": str(), "icon": str()}),
	})
}

func buildResourceViewSchema() map[string]interface{} {
	return object(props{
		"resourceType": str(),
		"id":           str(),
		"status":       str(),
		"title":        str(),
		"fields":       arrayOf(object(props{"label": str(), "value": str()})),
	})
}

func buildBundleViewSchema() map[string]interface{} {
	item := object(props{
		"sequence":  integer(),
		"submitted": number(),
		"approved":  number(),
		"status":    enum("approved", "reduced", "rejected"),
	})
	return object(props{
		"id":             str(),
		"name":           str(),
		"bundleId":       str(),
		"bundleType":     str(),
		"timestamp":      str(),
		"classification": ref("Classification"),
		"stages":         arrayOf(ref("Stage")),
		"actions":        arrayOf(object(props{"label": str(), "primary": boolean()})),
		"main":           ref("ResourceView"),
		"resources":      arrayOf(ref("ResourceView")),
		"benefits":       ref("BenefitSummary"),
		"eligibility":    ref("BenefitSummary"),
		"settlement": object(props{
			"requested":  ref("Money"),
			"approved":   ref("Money"),
			"difference": number(),
		}),
		"items":      arrayOf(item),
		"claimTotal": number(),
	})
}

func buildOperationOutcomeSchema() map[string]interface{} {
	return object(props{
		"resourceType": enum("OperationOutcome"),
		"issue": arrayOf(object(props{
			"severity":    enum(fhir.IssueSeverityFatal, fhir.IssueSeverityError, fhir.IssueSeverityWarning, fhir.IssueSeverityInformation),
			"code":        str(),
			"diagnostics": str(),
		})),
	})
}

// ── Swagger UI ──────────────────────────────────────────────────────────

const swaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>NHCX Bundle Viewer API - Swagger UI</title>
  <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" >
  <style>
    html { box-sizing: border-box; overflow-y: scroll; }
    *, *:before, *:after { box-sizing: inherit; }
    body { margin: 0; background: #fafafa; }
  </style>
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: "/api/openapi.json",
      dom_id: '#swagger-ui',
      deepLinking: true,
      presets: [
        SwaggerUIBundle.presets.apis,
        SwaggerUIBundle.SwaggerUIStandalonePreset
      ],
      layout: "BaseLayout"
    })
  </script>
</body>
</html>`

// RegisterRoutes registers the OpenAPI endpoints.
func (g *Generator) RegisterRoutes(apiGroup *echo.Group) {
	apiGroup.GET("/openapi.json", func(c echo.Context) error {
		return c.JSON(http.StatusOK, g.GenerateSpec())
	})
	apiGroup.GET("/docs", func(c echo.Context) error {
		return c.HTML(http.StatusOK, swaggerUIHTML)
	})
}
