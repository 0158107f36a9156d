package server

import (
	"github.com/bobmcallan/krxdata/internal/models"
	"github.com/bobmcallan/krxdata/internal/tools"
)

// toolsPrefix is the route prefix for tool calls.
const toolsPrefix = "/tools/"

// buildToolCatalog describes every registered operation and its HTTP
// mapping. Served by GET /tools.
func buildToolCatalog(svc *tools.Service) []models.ToolDefinition {
	ops := svc.Operations()
	catalog := make([]models.ToolDefinition, 0, len(ops))
	for _, op := range ops {
		def := models.ToolDefinition{
			Name:        op.Name,
			Description: op.Description,
			Method:      "POST",
			Path:        toolsPrefix + op.Name,
		}
		for _, p := range op.Params {
			def.Params = append(def.Params, models.ParamDefinition{
				Name:        p.Name,
				Type:        string(p.Type),
				Description: p.Description,
				Required:    p.Required,
				Default:     p.Default,
				Enum:        p.Enum,
				In:          "body",
			})
		}
		catalog = append(catalog, def)
	}
	return catalog
}
