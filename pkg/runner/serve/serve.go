// Package serve runs the HTTP API.
package serve

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/config"
	"tableflip.dev/planner/pkg/gcal"
	"tableflip.dev/planner/pkg/server"
)

// DefaultTokenTTL is how long a printed token stays valid.
const DefaultTokenTTL = 24 * time.Hour

// Serve wires the store, the calendar client and the HTTP server together.
type Serve struct {
	Service  *app.Service
	Settings *config.Settings
	Addr     string

	// PrintToken writes a signed bearer token to Out before serving.
	PrintToken bool
	TokenTTL   time.Duration
	Out        io.Writer
}

// Handler builds the server without starting it.
func (s *Serve) Handler() *server.Server {
	opts := server.Options{
		JWTSecret: s.Settings.Server.JWTSecret,
		MonthCap:  s.Settings.Calendar.MonthCap,
	}
	if g := s.Settings.Google; g.ClientID != "" {
		opts.Google = gcal.New(gcal.Config{
			ClientID:     g.ClientID,
			ClientSecret: g.ClientSecret,
			RedirectURI:  g.RedirectURI,
		})
	}
	return server.New(s.Service, opts)
}

// Do serves until ctx is cancelled.
func (s *Serve) Do(ctx context.Context) error {
	addr := s.Addr
	if addr == "" {
		addr = s.Settings.Server.Addr
	}
	if s.PrintToken {
		if err := s.printToken(); err != nil {
			return err
		}
	}

	go func() {
		if err := s.Service.Follow(ctx); err != nil {
			log.WithError(err).Debug("serve: not following store changes")
		}
	}()

	return s.Handler().Start(ctx, addr)
}

func (s *Serve) printToken() error {
	secret := s.Settings.Server.JWTSecret
	if secret == "" {
		return fmt.Errorf("serve: --print-token needs server.jwt_secret")
	}
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	tok, err := server.NewAuth([]byte(secret)).Sign("planner-cli", ttl)
	if err != nil {
		return fmt.Errorf("serve: sign token: %w", err)
	}
	out := s.Out
	if out == nil {
		out = os.Stdout
	}
	_, _ = fmt.Fprintln(out, tok)
	return nil
}
