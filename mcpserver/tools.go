package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/jonwraymond/luacene/document"
	"github.com/jonwraymond/luacene/facade"
	"github.com/jonwraymond/luacene/handle"
)

type pathArgs struct {
	Path string `json:"path" jsonschema:"index directory"`
}

type handleArgs struct {
	Handle string `json:"handle" jsonschema:"handle ID returned by an earlier call"`
}

type addDocumentArgs struct {
	Handle string         `json:"handle" jsonschema:"writer handle ID"`
	Fields map[string]any `json:"fields" jsonschema:"field name to string, [value, store, index, termVector] or {value, store, index, termVector}"`
}

type searchArgs struct {
	Handle string `json:"handle" jsonschema:"searcher handle ID"`
	Query  string `json:"query" jsonschema:"query string; unqualified terms search the contents field"`
}

type hitArgs struct {
	Handle   string `json:"handle" jsonschema:"hit set handle ID"`
	Position int    `json:"position" jsonschema:"1-based hit position"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "open_writer",
		Description: "Create an index at path, replacing any existing index, and return a writer handle",
	}, s.openWriter)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "open_searcher",
		Description: "Open the index at path read-only and return a searcher handle",
	}, s.openSearcher)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_document",
		Description: "Add one document to a writer",
	}, s.addDocument)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "flush",
		Description: "Commit a writer's buffered documents",
	}, s.flush)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "optimize",
		Description: "Commit and merge a writer's index into one segment",
	}, s.optimize)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Run a query on a searcher and return a hit set handle with ranked hit IDs",
	}, s.search)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "hit",
		Description: "Return the stored fields of the hit at a 1-based position",
	}, s.hit)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "release",
		Description: "Release a writer, searcher, or hit set handle",
	}, s.release)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "handles",
		Description: "List live handle IDs",
	}, s.listHandles)
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s", ErrMissingArgument, name)
	}
	return nil
}

func (s *Server) openWriter(ctx context.Context, req *mcp.CallToolRequest, args pathArgs) (*mcp.CallToolResult, any, error) {
	if err := required("path", args.Path); err != nil {
		return nil, nil, err
	}
	w, err := s.eng.OpenWriter(args.Path)
	if err != nil {
		return nil, nil, err
	}
	id := s.handles.Put(w)
	s.log.Debug("writer opened", zap.String("handle", id), zap.String("path", w.Path()))
	return nil, map[string]any{"handle": id, "path": w.Path()}, nil
}

func (s *Server) openSearcher(ctx context.Context, req *mcp.CallToolRequest, args pathArgs) (*mcp.CallToolResult, any, error) {
	if err := required("path", args.Path); err != nil {
		return nil, nil, err
	}
	sr, err := s.eng.OpenSearcher(args.Path)
	if err != nil {
		return nil, nil, err
	}
	n, err := sr.DocCount()
	if err != nil {
		_ = sr.Release()
		return nil, nil, err
	}
	id := s.handles.Put(sr)
	s.log.Debug("searcher opened", zap.String("handle", id), zap.String("path", sr.Path()))
	return nil, map[string]any{"handle": id, "path": sr.Path(), "documents": n}, nil
}

func (s *Server) writer(id string) (*facade.Writer, error) {
	if err := required("handle", id); err != nil {
		return nil, err
	}
	return handle.Lookup[*facade.Writer](s.handles, id, handle.KindWriter)
}

func (s *Server) addDocument(ctx context.Context, req *mcp.CallToolRequest, args addDocumentArgs) (*mcp.CallToolResult, any, error) {
	w, err := s.writer(args.Handle)
	if err != nil {
		return nil, nil, err
	}
	if len(args.Fields) == 0 {
		return nil, nil, fmt.Errorf("%w: fields", ErrMissingArgument)
	}
	if err := w.AddDocument(document.Map(args.Fields)); err != nil {
		return nil, nil, err
	}
	pending, err := w.Pending()
	if err != nil {
		return nil, nil, err
	}
	return nil, map[string]any{"added": true, "pending": pending}, nil
}

func (s *Server) flush(ctx context.Context, req *mcp.CallToolRequest, args handleArgs) (*mcp.CallToolResult, any, error) {
	w, err := s.writer(args.Handle)
	if err != nil {
		return nil, nil, err
	}
	if err := w.Flush(); err != nil {
		return nil, nil, err
	}
	n, err := w.DocCount()
	if err != nil {
		return nil, nil, err
	}
	return nil, map[string]any{"ok": true, "documents": n}, nil
}

func (s *Server) optimize(ctx context.Context, req *mcp.CallToolRequest, args handleArgs) (*mcp.CallToolResult, any, error) {
	w, err := s.writer(args.Handle)
	if err != nil {
		return nil, nil, err
	}
	if err := w.Optimize(ctx); err != nil {
		return nil, nil, err
	}
	return nil, map[string]any{"ok": true}, nil
}

func (s *Server) search(ctx context.Context, req *mcp.CallToolRequest, args searchArgs) (*mcp.CallToolResult, any, error) {
	if err := required("handle", args.Handle); err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(args.Query) == "" {
		return nil, nil, fmt.Errorf("%w: query is empty", ErrInvalidArgument)
	}
	sr, err := handle.Lookup[*facade.Searcher](s.handles, args.Handle, handle.KindSearcher)
	if err != nil {
		return nil, nil, err
	}
	hits, err := sr.Search(ctx, args.Query)
	if err != nil {
		return nil, nil, err
	}
	n, err := hits.Len()
	if err != nil {
		_ = hits.Release()
		return nil, nil, err
	}
	ranked := make([]map[string]any, 0, n)
	for i := 1; i <= n; i++ {
		h, err := hits.Hit(i)
		if err != nil {
			_ = hits.Release()
			return nil, nil, err
		}
		ranked = append(ranked, map[string]any{"position": i, "id": h.ID, "score": h.Score})
	}
	id := s.handles.Put(hits)
	s.log.Debug("search complete", zap.String("handle", id), zap.String("query", args.Query), zap.Int("hits", n))
	return nil, map[string]any{"handle": id, "length": n, "hits": ranked}, nil
}

func (s *Server) hit(ctx context.Context, req *mcp.CallToolRequest, args hitArgs) (*mcp.CallToolResult, any, error) {
	if err := required("handle", args.Handle); err != nil {
		return nil, nil, err
	}
	hits, err := handle.Lookup[*facade.Hits](s.handles, args.Handle, handle.KindHits)
	if err != nil {
		return nil, nil, err
	}
	doc, err := hits.At(args.Position)
	if err != nil {
		return nil, nil, err
	}
	return nil, map[string]any{"position": args.Position, "fields": doc.Map()}, nil
}

func (s *Server) release(ctx context.Context, req *mcp.CallToolRequest, args handleArgs) (*mcp.CallToolResult, any, error) {
	if err := required("handle", args.Handle); err != nil {
		return nil, nil, err
	}
	if err := s.handles.Release(args.Handle); err != nil {
		return nil, nil, err
	}
	return nil, map[string]any{"released": args.Handle}, nil
}

func (s *Server) listHandles(ctx context.Context, req *mcp.CallToolRequest, args struct{}) (*mcp.CallToolResult, any, error) {
	return nil, map[string]any{"handles": s.handles.IDs()}, nil
}
