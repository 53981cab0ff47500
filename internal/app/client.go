package app

import (
	"context"
	"log"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
	"github.com/nicowave/aws-study-flashcards-app.com-sub000/internal/bridge"
	"github.com/nicowave/aws-study-flashcards-app.com-sub000/internal/config"
	"github.com/nicowave/aws-study-flashcards-app.com-sub000/internal/progress"
)

// authEventSource is the slice of the identity service the client runtime
// consumes
type authEventSource interface {
	Subscribe() (<-chan domain.AuthEvent, func())
}

// ClientRuntime composes the client-side study core for one subdomain: the
// session bridge, the local progress engine, and the auth-state subscription
// driving both. A signed-out report triggers one bridge recovery; a recovered
// session is fed back into the engine so progress syncs resume.
type ClientRuntime struct {
	Bridge  *bridge.Bridge
	Engine  *progress.Engine
	Cookies *bridge.MemoryCookieStore

	unsubscribe func()
	done        chan struct{}
}

// NewClientRuntime builds and starts the runtime. It returns an error only
// when the local progress store cannot be created.
func NewClientRuntime(cfg *config.Config, events authEventSource, profiles domain.ProfileService) (*ClientRuntime, error) {
	store, err := progress.NewFileStore(cfg.ProgressDataDir)
	if err != nil {
		return nil, err
	}

	cookies := bridge.NewMemoryCookieStore()
	exchange := bridge.NewClient(cfg.AuthBaseURL, cfg.ClientOrigin, 0)
	br := bridge.New(cookies, exchange, exchange)

	syncer := progress.NewSyncer(profiles, 0)
	engine := progress.NewEngine(cfg.CertID, store, syncer)

	ch, unsubscribe := events.Subscribe()
	r := &ClientRuntime{
		Bridge:      br,
		Engine:      engine,
		Cookies:     cookies,
		unsubscribe: unsubscribe,
		done:        make(chan struct{}),
	}
	go r.run(ch)
	return r, nil
}

func (r *ClientRuntime) run(ch <-chan domain.AuthEvent) {
	defer close(r.done)
	for event := range ch {
		r.Engine.HandleAuthEvent(event)

		if event.State == domain.StateSignedIn && event.Session != nil {
			continue
		}

		// signed out: the bridge tries one recovery through the shared
		// cookie; a recovered session re-arms the engine's sync
		result, err := r.Bridge.HandleAuthEvent(context.Background(), event)
		if err != nil {
			log.Printf("CLIENT_RECOVERY_FAILED: error=%v", err)
			continue
		}
		if result != nil {
			r.Engine.HandleAuthEvent(domain.AuthEvent{State: domain.StateSignedIn, Session: result.Session})
		}
	}
}

// Close unsubscribes from auth events and waits for the loop to drain
func (r *ClientRuntime) Close() {
	r.unsubscribe()
	<-r.done
}
