package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/km-arc/go-container/framework/app"
	"github.com/km-arc/go-container/framework/container"
	gohttp "github.com/km-arc/go-container/framework/http"
)

// Clock is constructed by type name.
type Clock struct{ started time.Time }

func NewClock(...any) (any, error) { return &Clock{started: time.Now()}, nil }

// Counter is shared, so every request sees the same instance.
type Counter struct{ hits atomic.Int64 }

// Greeter is transient and container-aware: it looks up the shared Counter
// itself instead of receiving it.
type Greeter struct {
	container.BaseAware
	name string
}

func (g *Greeter) Greet() string {
	counter := container.MustResolve[*Counter](g.Container(), "counter")
	return fmt.Sprintf("Hello, %s! (greeting #%d)", g.name, counter.hits.Add(1))
}

// DemoServiceProvider registers the demo services.
type DemoServiceProvider struct {
	container.BaseProvider
}

func (p *DemoServiceProvider) Register(c *container.Container) error {
	clock := container.RegisterType[Clock](NewClock)

	c.MustSetShared("clock", container.Type(clock)).
		MustSetShared("counter", container.Instance(&Counter{})).
		MustSet("greeter", container.Callable(func(params ...any) (any, error) {
			name := "world"
			if len(params) > 0 {
				if s, ok := params[0].(string); ok && s != "" {
					name = s
				}
			}
			return &Greeter{name: name}, nil
		}), false)
	return nil
}

func main() {
	application := app.New() // loads .env automatically

	if err := application.Register(&DemoServiceProvider{}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := application.Boot(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	r := application.Router()

	// GET /?name=Taylor
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		request, res := gohttp.NewRequest(req), gohttp.NewResponse(w)

		greeter, err := container.Resolve[*Greeter](application.Container, "greeter", request.Query("name"))
		if err != nil {
			res.ServerError(err.Error())
			return
		}
		clock := container.MustResolve[*Clock](application.Container, "clock")

		res.Success(map[string]any{
			"message": greeter.Greet(),
			"uptime":  time.Since(clock.started).Round(time.Millisecond).String(),
		})
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.RunContext(ctx); err != nil {
		logger := application.Logger()
		logger.Fatal().Err(err).Msg("server error")
	}
}
