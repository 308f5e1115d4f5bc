package mcpTools

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"github.com/akolanti/ClaimDocs/internal/domain/documentModel"
	"github.com/akolanti/ClaimDocs/internal/ocr"
	"github.com/akolanti/ClaimDocs/pkg/logger_i"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const ExtractToolName = "extract_document"

type ExtractInput struct {
	Filename      string `json:"filename" jsonschema:"original file name"`
	MediaType     string `json:"mediaType" jsonschema:"media type such as application/pdf or image/png"`
	ContentBase64 string `json:"contentBase64" jsonschema:"file bytes, standard base64"`
}

type ExtractOutput struct {
	Text    string `json:"text"`
	Summary string `json:"summary"`
	Source  string `json:"source"`
}

var errNoContent = errors.New("contentBase64 is empty")

// NewServer exposes single file extraction as an mcp tool.
func NewServer(service ocr.Service) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "claimdocs", Version: "1.0.0"}, nil)
	log := logger_i.NewLogger("MCP")

	mcp.AddTool(server, &mcp.Tool{
		Name:        ExtractToolName,
		Description: "Extract the text of one claim document (pdf, jpeg or png) and return it with a short summary.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in ExtractInput) (*mcp.CallToolResult, ExtractOutput, error) {
		if in.ContentBase64 == "" {
			return nil, ExtractOutput{}, errNoContent
		}
		content, err := base64.StdEncoding.DecodeString(in.ContentBase64)
		if err != nil {
			return nil, ExtractOutput{}, fmt.Errorf("contentBase64 is not valid base64: %w", err)
		}

		log.Info("extract tool called", "filename", in.Filename, "mediaType", in.MediaType, "bytes", len(content))
		outcomes := service.ExtractAll(ctx, []documentModel.InputFile{{
			Name:      in.Filename,
			MediaType: in.MediaType,
			Size:      int64(len(content)),
			Content:   content,
		}})
		if len(outcomes) != 1 {
			return nil, ExtractOutput{}, fmt.Errorf("expected one outcome, got %d", len(outcomes))
		}

		o := outcomes[0]
		return nil, ExtractOutput{Text: o.Text, Summary: o.Summary, Source: string(o.Source)}, nil
	})
	return server
}

// NewHandler serves the tool over streamable http.
func NewHandler(service ocr.Service) http.Handler {
	server := NewServer(service)
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
}
