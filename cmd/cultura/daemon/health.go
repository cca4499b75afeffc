package daemoncmder

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/papercomputeco/cultura/pkg/daemon"
)

// loadState reads the daemon state under the daemon lock.
func loadState(manager *daemon.Manager) (*daemon.State, error) {
	lock, err := manager.Lock()
	if err != nil {
		return nil, err
	}
	state, err := manager.LoadState()
	if releaseErr := lock.Release(); releaseErr != nil && err == nil {
		err = releaseErr
	}
	return state, err
}

// stateHealthy reports whether the daemon process is alive and its API
// answers /ping.
func stateHealthy(ctx context.Context, state *daemon.State) bool {
	if state == nil || state.PID == 0 || state.APIURL == "" {
		return false
	}
	if !daemon.ProcessAlive(state.PID) {
		return false
	}
	return apiReachable(ctx, state.APIURL)
}

func apiReachable(ctx context.Context, apiURL string) bool {
	client := &http.Client{Timeout: 2 * time.Second}
	url := strings.TrimRight(apiURL, "/") + "/ping"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
