package mcptools

import (
	"context"

	"github.com/chris-regnier/thankful/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) listEntries(ctx context.Context, req *mcp.CallToolRequest, in ListInput) (*mcp.CallToolResult, ListOutput, error) {
	start, err := parseBound(in.StartDate)
	if err != nil {
		return nil, ListOutput{}, err
	}
	end, err := parseBound(in.EndDate)
	if err != nil {
		return nil, ListOutput{}, err
	}

	entries, err := s.repo.List(ctx, storage.ListOptions{
		StartDate: start,
		EndDate:   end,
		Limit:     in.Limit,
	})
	if err != nil {
		return nil, ListOutput{}, err
	}

	results := make([]EntryResult, 0, len(entries))
	for _, e := range entries {
		results = append(results, EntryResult{
			Date:    e.Key(),
			ID:      e.ID,
			Preview: e.Preview(100),
		})
	}
	return nil, ListOutput{Entries: results}, nil
}
