// Package mcptools exposes the journal over the Model Context Protocol. Each
// tool call goes through an entry session, so clients see the same labels,
// hints and share text as the terminal screen.
package mcptools

import (
	"context"
	"sync"
	"time"

	"github.com/chris-regnier/thankful/internal/resources"
	"github.com/chris-regnier/thankful/internal/session"
	"github.com/chris-regnier/thankful/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Server owns the MCP server and the entry sessions opened by its tools.
// Sessions stay open until Close so prompt rotation carries across calls.
type Server struct {
	mcp     *mcp.Server
	repo    *storage.Live
	res     resources.Provider
	opts    []session.Option
	now     func() time.Time
	logger  *zap.Logger
	version string

	mu       sync.Mutex
	sessions map[string]*session.Session
	closed   bool
}

// Option configures a Server.
type Option func(*Server)

// WithClock sets the clock used for "today" and passed to sessions.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithSessionOptions adds options for every session the server opens.
func WithSessionOptions(opts ...session.Option) Option {
	return func(s *Server) { s.opts = append(s.opts, opts...) }
}

// WithVersion sets the implementation version reported to clients.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// New creates an MCP server with the journal tools registered.
func New(repo *storage.Live, res resources.Provider, opts ...Option) *Server {
	s := &Server{
		repo:     repo,
		res:      res,
		now:      time.Now,
		logger:   zap.NewNop(),
		version:  "dev",
		sessions: make(map[string]*session.Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.opts = append([]session.Option{session.WithClock(s.now), session.WithLogger(s.logger)}, s.opts...)

	s.mcp = mcp.NewServer(&mcp.Implementation{
		Name:    "thankful",
		Version: s.version,
	}, nil)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_entry",
		Description: "Read the gratitude entry for a date along with its label, hint and inspiration",
	}, s.getEntry)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "save_entry",
		Description: "Replace the gratitude entry for a date",
	}, s.saveEntry)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "share_entry",
		Description: "Compose the shareable sentence for a date, e.g. \"Today I am thankful for ...\"",
	}, s.shareEntry)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "draw_prompt",
		Description: "Draw the next writing prompt for a date",
	}, s.drawPrompt)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_entries",
		Description: "List gratitude entries, newest first, optionally within a date range",
	}, s.listEntries)

	return s
}

// Run serves on t until the client disconnects or ctx ends.
func (s *Server) Run(ctx context.Context, t mcp.Transport) error {
	return s.mcp.Run(ctx, t)
}

// Connect starts serving a single connection on t in the background. It is
// used with in-memory transports.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.mcp.Connect(ctx, t, nil)
}

// sessionFor returns the open session for date, opening it on first use.
func (s *Server) sessionFor(ctx context.Context, date string) (*session.Session, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, session.ErrClosed
	}
	if sess, ok := s.sessions[date]; ok {
		s.mu.Unlock()
		return sess, nil
	}
	sess, err := session.New(context.Background(), date, s.repo, s.res, s.opts...)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.sessions[date] = sess
	s.mu.Unlock()

	if err := sess.WaitLoaded(ctx); err != nil {
		return nil, err
	}
	return sess, nil
}

// Close closes every session the tools opened.
func (s *Server) Close() error {
	s.mu.Lock()
	s.closed = true
	sessions := s.sessions
	s.sessions = map[string]*session.Session{}
	s.mu.Unlock()

	var first error
	for date, sess := range sessions {
		if err := sess.Close(); err != nil {
			s.logger.Warn("closing session", zap.String("date", date), zap.Error(err))
			if first == nil {
				first = err
			}
		}
	}
	return first
}
