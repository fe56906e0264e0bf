package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/dtroode/authgate/internal/model"
)

// YandexNetwork is the network name the Yandex provider is registered under.
const YandexNetwork = "yandex"

// ErrRejected means the provider answered but did not accept the token.
var ErrRejected = errors.New("provider rejected the token")

var _ model.IdentityProvider = (*Yandex)(nil)

// YandexConfig configures the Yandex passport provider.
type YandexConfig struct {
	ClientID    string
	AuthURL     string
	InfoURL     string
	RedirectURL string
	Timeout     time.Duration
}

// Yandex exchanges a Yandex OAuth token for the passport profile.
type Yandex struct {
	cfg     YandexConfig
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

type yandexInfo struct {
	Login     string `json:"login"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// NewYandex creates the provider. Transport failures trip a circuit breaker;
// rejected tokens do not.
func NewYandex(cfg YandexConfig) *Yandex {
	return &Yandex{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "yandex-passport",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, ErrRejected)
			},
		}),
	}
}

// AuthURL returns the address the user is sent to for an implicit-flow token.
func (y *Yandex) AuthURL() string {
	q := url.Values{}
	q.Set("response_type", "token")
	q.Set("redirect_uri", y.cfg.RedirectURL)
	q.Set("client_id", y.cfg.ClientID)
	return y.cfg.AuthURL + "?" + q.Encode()
}

// Exchange fetches the profile of the token owner. It makes one request and
// never retries.
func (y *Yandex) Exchange(ctx context.Context, token string) (model.ExternalProfile, error) {
	if token == "" {
		return model.ExternalProfile{}, fmt.Errorf("%w: empty token", ErrRejected)
	}

	res, err := y.breaker.Execute(func() (interface{}, error) {
		return y.fetch(ctx, token)
	})
	if err != nil {
		return model.ExternalProfile{}, fmt.Errorf("yandex exchange failed: %w", err)
	}

	info := res.(yandexInfo)
	return model.ExternalProfile{
		Login:     info.Login,
		FirstName: info.FirstName,
		LastName:  info.LastName,
	}, nil
}

func (y *Yandex) fetch(ctx context.Context, token string) (yandexInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, y.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, y.cfg.InfoURL+"?format=json", nil)
	if err != nil {
		return yandexInfo{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+token)

	resp, err := y.client.Do(req)
	if err != nil {
		return yandexInfo{}, fmt.Errorf("failed to call passport: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		_, _ = io.Copy(io.Discard, resp.Body)
		return yandexInfo{}, fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return yandexInfo{}, fmt.Errorf("passport answered with status %d", resp.StatusCode)
	}

	var info yandexInfo
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&info); err != nil {
		return yandexInfo{}, fmt.Errorf("failed to decode passport response: %w", err)
	}

	return info, nil
}
