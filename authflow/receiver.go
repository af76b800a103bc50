package authflow

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// RouteCallback is the path the provider redirect lands on.
const RouteCallback = "/callback"

const closePage = `<!doctype html>
<html><body>
<p>Login complete. You can close this window.</p>
<script>window.close()</script>
</body></html>
`

// Receiver is the loopback listener standing in for the authorization
// window's callback page: it turns the provider redirect into a Callback
// invocation and renders a minimal close-this-window page.
type Receiver struct {
	callback *Callback
	addr     string
	srv      *http.Server
	ln       net.Listener
	log      zerolog.Logger
}

func NewReceiver(callback *Callback, addr string, log zerolog.Logger) *Receiver {
	return &Receiver{
		callback: callback,
		addr:     addr,
		log:      log,
	}
}

// Start listens on the loopback address and returns the URL the provider
// should redirect to. Port 0 in the address picks a free port.
func (r *Receiver) Start() (string, error) {
	ln, err := net.Listen("tcp", r.addr)
	if err != nil {
		return "", errors.Wrap(err, "[Receiver.Start] listen")
	}
	r.ln = ln

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+RouteCallback, r.handle)
	r.srv = &http.Server{Handler: mux}

	go func() {
		if err := r.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			r.log.Error().Err(err).Msg("callback receiver stopped")
		}
	}()

	return "http://" + ln.Addr().String() + RouteCallback, nil
}

func (r *Receiver) handle(w http.ResponseWriter, req *http.Request) {
	query := req.URL.Query()
	r.callback.Handle(req.Context(), query.Get("code"), query.Get("state"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, closePage)
}

// Close shuts the listener down.
func (r *Receiver) Close() error {
	if r.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.srv.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "[Receiver.Close] shutdown")
	}
	return nil
}
