package authflow_test

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/postdrop/postdrop-go/authflow"
)

func TestReceiverHandlesRedirect(t *testing.T) {
	var gotCode, gotState string
	f := newCallbackFixture(t, func(w http.ResponseWriter, r *http.Request) {
		gotState = r.URL.Query().Get("state")
		var req struct {
			Code string `json:"code"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotCode = req.Code

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(storedLogin()))
	})

	receiver := authflow.NewReceiver(f.callback, "127.0.0.1:0", zerolog.Nop())
	redirectURL, err := receiver.Start()
	require.NoError(t, err)
	defer func() {
		require.NoError(t, receiver.Close())
	}()

	resp, err := http.Get(redirectURL + "?code=the-code&state=echoed-state")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "window.close()")

	require.Equal(t, "the-code", gotCode)
	require.Equal(t, "echoed-state", gotState)
	require.True(t, f.sessions.IsAuthenticated())
}
