// Package server exposes loaded terminfo key tables over HTTP.
package server

import (
	"context"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"golang.org/x/time/rate"

	"github.com/samcharles93/keyinfo/internal/loader"
	"github.com/samcharles93/keyinfo/internal/locate"
	"github.com/samcharles93/keyinfo/internal/logger"
	"github.com/samcharles93/keyinfo/internal/rawbuf"
	"github.com/samcharles93/keyinfo/internal/version"
	"github.com/samcharles93/keyinfo/pkg/terminfo"
)

type Config struct {
	Resolver *locate.Resolver
	Options  loader.Options
	Logger   logger.Logger
	// RateLimit is the sustained request rate per second for /v1 routes.
	// Zero or less disables limiting.
	RateLimit float64
	Burst     int
	// Watch evicts cached entries when their file changes.
	Watch bool
}

type Server struct {
	cfg     Config
	log     logger.Logger
	cache   *Cache
	watcher *Watcher
	limiter *rate.Limiter
	clock   func() time.Time
}

func New(cfg Config) (*Server, error) {
	if cfg.Resolver == nil {
		cfg.Resolver = locate.New(nil)
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}
	s := &Server{
		cfg:   cfg,
		log:   log.With("component", "server"),
		cache: NewCache(),
		clock: time.Now,
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = max(1, int(cfg.RateLimit))
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	if cfg.Watch {
		w, err := NewWatcher(s.cache, s.log)
		if err != nil {
			return nil, err
		}
		s.watcher = w
	}
	return s, nil
}

func (s *Server) Close() error {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Close()
}

func (s *Server) Cache() *Cache { return s.cache }

func (s *Server) Register(e *echo.Echo) {
	e.GET("/healthz", s.handleHealth)

	var mw []echo.MiddlewareFunc
	if s.limiter != nil {
		mw = append(mw, RateLimit(s.limiter))
	}
	g := e.Group("/v1", mw...)
	g.GET("/terminals", s.handleList)
	g.GET("/terminals/:name", s.handleGetTerminal)
	g.GET("/terminals/:name/lookup", s.handleLookup)
	g.DELETE("/terminals/:name", s.handleDeleteTerminal)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "ok",
		"version": version.String(),
		"cached":  s.cache.Len(),
	})
}

type terminalList struct {
	Object string   `json:"object"`
	Data   []string `json:"data"`
	Cached []string `json:"cached"`
}

func (s *Server) handleList(c *echo.Context) error {
	names, err := s.cfg.Resolver.List(c.QueryParam("prefix"))
	if err != nil {
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error(), "")
	}
	return c.JSON(http.StatusOK, terminalList{
		Object: "list",
		Data:   names,
		Cached: s.cache.Names(),
	})
}

type terminalResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	LoadedAt int64  `json:"loaded_at"`
	loader.Document
}

func (s *Server) handleGetTerminal(c *echo.Context) error {
	entry, err := s.entry(c.Request().Context(), c.Param("name"))
	if err != nil {
		return s.writeLoadError(c, err)
	}
	return c.JSON(http.StatusOK, terminalResponse{
		ID:       entry.ID,
		Name:     entry.Name,
		LoadedAt: entry.LoadedAt.Unix(),
		Document: entry.Doc,
	})
}

type lookupResponse struct {
	Terminal     string `json:"terminal"`
	Sequence     string `json:"sequence"`
	Found        bool   `json:"found"`
	Key          int    `json:"key,omitempty"`
	KeyName      string `json:"key_name,omitempty"`
	Modifier     int    `json:"modifier"`
	ModifierName string `json:"modifier_name,omitempty"`
}

func (s *Server) handleLookup(c *echo.Context) error {
	seq, param, err := sequenceFromQuery(c)
	if err != nil {
		return writeBadRequest(c, err.Error(), param)
	}
	entry, err := s.entry(c.Request().Context(), c.Param("name"))
	if err != nil {
		return s.writeLoadError(c, err)
	}

	resp := lookupResponse{Terminal: entry.Name, Sequence: rawbuf.Armor(seq)}
	if m, ok := entry.Result.Table.Lookup(seq); ok {
		resp.Found = true
		resp.Key = int(m.Key)
		resp.KeyName = m.Key.Name()
		resp.Modifier = int(m.Mod)
		resp.ModifierName = m.Mod.String()
	}
	return c.JSON(http.StatusOK, resp)
}

func sequenceFromQuery(c *echo.Context) ([]byte, string, error) {
	hexStr := strings.TrimSpace(c.QueryParam("hex"))
	armored := c.QueryParam("seq")
	switch {
	case hexStr != "" && armored != "":
		return nil, "hex", errors.New("hex and seq are mutually exclusive")
	case hexStr != "":
		seq, err := hex.DecodeString(hexStr)
		if err != nil {
			return nil, "hex", err
		}
		if len(seq) == 0 {
			return nil, "hex", errors.New("empty sequence")
		}
		return seq, "hex", nil
	case armored != "":
		seq, err := rawbuf.Unarmor(armored)
		if err != nil {
			return nil, "seq", err
		}
		return seq, "seq", nil
	default:
		return nil, "seq", errors.New("one of hex or seq is required")
	}
}

func (s *Server) handleDeleteTerminal(c *echo.Context) error {
	name := c.Param("name")
	if !s.cache.Delete(name) {
		return writeNotFound(c, "terminal not loaded: "+name)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"name":    name,
		"deleted": true,
	})
}

func (s *Server) writeLoadError(c *echo.Context, err error) error {
	switch {
	case errors.Is(err, locate.ErrInvalidName):
		return writeBadRequest(c, err.Error(), "name")
	case errors.Is(err, locate.ErrNotFound), errors.Is(err, os.ErrNotExist):
		return writeNotFound(c, err.Error())
	case errors.Is(err, context.Canceled):
		return writeError(c, http.StatusServiceUnavailable, "server_error", err.Error(), "")
	default:
		return writeError(c, http.StatusUnprocessableEntity, "load_error", err.Error(), "name")
	}
}

// entry returns the cached table for name, loading it on first use.
func (s *Server) entry(ctx context.Context, name string) (*Entry, error) {
	name = strings.TrimSpace(name)
	if e, ok := s.cache.Get(name); ok {
		return e, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.cfg.Resolver.Resolve(name)
	if err != nil {
		return nil, err
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	ctx = logger.WithContext(ctx, s.log.With("terminal", name))
	res, err := loader.LoadFile(ctx, path, s.cfg.Options)
	if err != nil {
		if isFatalFormat(err) {
			s.log.Warn("load failed", "terminal", name, "path", path, "error", err)
		}
		return nil, err
	}

	e := &Entry{
		ID:       uuid.NewString(),
		Name:     name,
		Path:     path,
		LoadedAt: s.clock(),
		Result:   res,
		Doc:      loader.NewDocument(res),
	}
	stored := s.cache.Put(e)
	if stored == e && s.watcher != nil {
		if err := s.watcher.Track(path); err != nil {
			s.log.Warn("cannot watch terminfo entry", "path", path, "error", err)
		}
	}
	s.log.Debug("terminal loaded", "terminal", name, "path", path, "id", stored.ID)
	return stored, nil
}

func isFatalFormat(err error) bool {
	return errors.Is(err, terminfo.ErrTruncated) ||
		errors.Is(err, terminfo.ErrBadMagic) ||
		errors.Is(err, terminfo.ErrCorruptHeader) ||
		errors.Is(err, terminfo.ErrCorruptString)
}
