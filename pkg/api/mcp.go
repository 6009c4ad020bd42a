package api

import (
	"fmt"

	"github.com/hazyhaar/tashkeel/pkg/corpus"
	"github.com/hazyhaar/tashkeel/pkg/kit"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterMCPTools registers the tashkeel MCP tools on the server.
func RegisterMCPTools(srv *server.MCPServer, svc *Service) {
	registerSearchText(srv, svc)
	registerNormalizeText(srv, svc)
	registerSearchCorpus(srv, svc)
	registerListCollections(srv, svc)
}

func registerSearchText(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("search_text",
		mcp.WithDescription("Find the first occurrence of an Arabic term in a text, ignoring diacritics (harakat, tanwin, shadda, sukun). Returns the span in the original text, diacritics included."),
		mcp.WithString("content", mcp.Required(), mcp.Description("The text to search in")),
		mcp.WithString("term", mcp.Required(), mcp.Description("The term to look for, with or without diacritics")),
	)

	kit.RegisterMCPTool(srv, tool, svc.search, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		content, _ := args["content"].(string)
		term, _ := args["term"].(string)
		return &kit.MCPDecodeResult{Request: &searchReq{Content: content, Term: term}}, nil
	})
}

func registerNormalizeText(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("normalize_text",
		mcp.WithDescription("Strip Arabic diacritics from a text and return the index map from each kept character to its original position."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The text to normalize")),
	)

	kit.RegisterMCPTool(srv, tool, svc.normalize, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		text, _ := req.GetArguments()["text"].(string)
		return &kit.MCPDecodeResult{Request: &normalizeReq{Text: text}}, nil
	})
}

func registerSearchCorpus(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("search_corpus",
		mcp.WithDescription("Search the stored Arabic passages for a term, ignoring diacritics. Each hit carries the first match span in that passage."),
		mcp.WithString("term", mcp.Required(), mcp.Description("The term to look for")),
		mcp.WithString("collections", mcp.Description("Comma-separated collection filter")),
		mcp.WithNumber("limit", mcp.Description(fmt.Sprintf("Maximum hits (default %d, max %d)", corpus.DefaultLimit, corpus.MaxLimit))),
	)

	kit.RegisterMCPTool(srv, tool, svc.corpusSearch, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		term, _ := args["term"].(string)
		if term == "" {
			return nil, fmt.Errorf("missing term")
		}
		opts := &corpus.SearchOptions{}
		if v, _ := args["collections"].(string); v != "" {
			opts.Collections = splitList(v)
		}
		if v, ok := args["limit"].(float64); ok {
			opts.Limit = int(v)
		}
		return &kit.MCPDecodeResult{Request: &corpusSearchReq{Term: term, Opts: opts}}, nil
	})
}

func registerListCollections(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("list_collections",
		mcp.WithDescription("List the stored passage collections with their passage counts."),
	)

	kit.RegisterMCPTool(srv, tool, svc.listCollections, func(_ mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil}, nil
	})
}
