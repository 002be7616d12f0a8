package mcptools

import (
	"context"
	"time"

	"github.com/chris-regnier/thankful/internal/entry"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

func (s *Server) getEntry(ctx context.Context, req *mcp.CallToolRequest, in DateInput) (*mcp.CallToolResult, EntryOutput, error) {
	sess, err := s.sessionFor(ctx, in.Date)
	if err != nil {
		return nil, EntryOutput{}, err
	}

	out := EntryOutput{
		Date:        entry.FormatDate(sess.Date()),
		Label:       sess.DateLabel(),
		Content:     sess.Content().Get(),
		IsEmpty:     sess.IsEmpty().Get(),
		Hint:        sess.Hint(),
		Inspiration: sess.Inspiration(),
	}
	if e := sess.Entry().Get(); e != nil {
		out.ID = e.ID
		out.UpdatedAt = e.UpdatedAt.Format(time.RFC3339)
	}
	return nil, out, nil
}

func (s *Server) saveEntry(ctx context.Context, req *mcp.CallToolRequest, in SaveEntryInput) (*mcp.CallToolResult, SaveEntryOutput, error) {
	sess, err := s.sessionFor(ctx, in.Date)
	if err != nil {
		return nil, SaveEntryOutput{}, err
	}

	sess.SetContent(in.Content)
	sess.Save()
	if err := sess.Flush(ctx); err != nil {
		return nil, SaveEntryOutput{}, err
	}

	saved, err := s.repo.GetByDate(ctx, sess.Date())
	if err != nil {
		return nil, SaveEntryOutput{}, err
	}
	s.logger.Info("entry saved over mcp", zap.String("date", saved.Key()))

	return nil, SaveEntryOutput{
		Date:    saved.Key(),
		ID:      saved.ID,
		Preview: saved.Preview(200),
	}, nil
}

func (s *Server) shareEntry(ctx context.Context, req *mcp.CallToolRequest, in DateInput) (*mcp.CallToolResult, ShareOutput, error) {
	sess, err := s.sessionFor(ctx, in.Date)
	if err != nil {
		return nil, ShareOutput{}, err
	}
	return nil, ShareOutput{
		Date: entry.FormatDate(sess.Date()),
		Text: sess.ShareText(),
	}, nil
}

func (s *Server) drawPrompt(ctx context.Context, req *mcp.CallToolRequest, in DateInput) (*mcp.CallToolResult, PromptOutput, error) {
	sess, err := s.sessionFor(ctx, in.Date)
	if err != nil {
		return nil, PromptOutput{}, err
	}
	return nil, PromptOutput{
		Date:   entry.FormatDate(sess.Date()),
		Prompt: sess.DrawNextPrompt(),
	}, nil
}
