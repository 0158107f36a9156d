// Package mcpserver exposes the tool operations, reference documents and
// workflow prompts over the Model Context Protocol
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bobmcallan/krxdata/internal/common"
	"github.com/bobmcallan/krxdata/internal/models"
	"github.com/bobmcallan/krxdata/internal/prompts"
	"github.com/bobmcallan/krxdata/internal/resources"
	"github.com/bobmcallan/krxdata/internal/tools"
)

const instructions = "Korean stock market data from the Korea Exchange. " +
	"Tickers are 6-digit strings such as \"005930\" and dates are YYYYMMDD. " +
	"Read krx://pykrx-manual before the first call."

var seoul = time.FixedZone("KST", 9*60*60)

// Server wraps an MCP server bound to a tool service
type Server struct {
	mcp    *mcp.Server
	tools  *tools.Service
	logger *common.Logger
	now    func() time.Time
}

// New creates the MCP server and registers every tool, resource and prompt
func New(name, version string, svc *tools.Service, logger *common.Logger) *Server {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	s := &Server{
		mcp: mcp.NewServer(
			&mcp.Implementation{Name: name, Version: version},
			&mcp.ServerOptions{Instructions: instructions},
		),
		tools:  svc,
		logger: logger,
		now:    time.Now,
	}

	for _, op := range svc.Operations() {
		s.mcp.AddTool(&mcp.Tool{
			Name:        op.Name,
			Description: op.Description,
			InputSchema: op.InputSchema(),
		}, s.toolHandler(op))
	}

	for _, doc := range resources.All() {
		s.mcp.AddResource(&mcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Description: doc.Description,
			MIMEType:    doc.MIMEType,
		}, resourceHandler(doc))
	}

	for _, p := range prompts.All() {
		args := make([]*mcp.PromptArgument, 0, len(p.Arguments))
		for _, a := range p.Arguments {
			desc := a.Description
			if a.Default != "" {
				desc = fmt.Sprintf("%s (default: %s)", desc, a.Default)
			}
			args = append(args, &mcp.PromptArgument{
				Name:        a.Name,
				Description: desc,
				Required:    a.Required,
			})
		}
		s.mcp.AddPrompt(&mcp.Prompt{
			Name:        p.Name,
			Description: p.Description,
			Arguments:   args,
		}, s.promptHandler(p))
	}

	logger.Debug().
		Int("tools", len(svc.Operations())).
		Int("resources", len(resources.All())).
		Int("prompts", len(prompts.All())).
		Msg("MCP server registered")

	return s
}

// MCP returns the underlying protocol server
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}

// RunStdio serves a single session over stdin/stdout until the client
// disconnects or ctx is cancelled
func (s *Server) RunStdio(ctx context.Context) error {
	s.logger.Info().Msg("Serving MCP over stdio")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler returns a streamable HTTP handler. Each request is
// self-contained and answered with a plain JSON body.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, &mcp.StreamableHTTPOptions{
		Stateless:    true,
		JSONResponse: true,
	})
}

func (s *Server) toolHandler(op *tools.Operation) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args map[string]any
		if raw := req.Params.Arguments; len(raw) > 0 {
			if err := json.Unmarshal(raw, &args); err != nil {
				return toolResult(tools.ErrorEnvelope("Invalid arguments: "+err.Error(), "function", op.Name))
			}
		}
		return toolResult(op.Call(ctx, args))
	}
}

// toolResult carries the envelope as JSON text and as structured content.
// Error envelopes are flagged so agents can tell them apart.
func toolResult(env *models.Record) (*mcp.CallToolResult, error) {
	body, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: string(body)}},
		StructuredContent: json.RawMessage(body),
		IsError:           env.IsError(),
	}, nil
}

func resourceHandler(doc resources.Document) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      doc.URI,
				MIMEType: doc.MIMEType,
				Text:     doc.Text,
			}},
		}, nil
	}
}

func (s *Server) promptHandler(p prompts.Prompt) mcp.PromptHandler {
	return func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		var args map[string]string
		if req.Params != nil {
			args = req.Params.Arguments
		}
		text, err := p.Render(args, s.now().In(seoul))
		if err != nil {
			s.logger.Warn().Str("prompt", p.Name).Err(err).Msg("Prompt rejected")
			return nil, err
		}
		s.logger.Info().Str("prompt", p.Name).Msg("Prompt rendered")
		return &mcp.GetPromptResult{
			Description: p.Description,
			Messages: []*mcp.PromptMessage{{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			}},
		}, nil
	}
}
