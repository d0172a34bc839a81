package session

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"vitrine/config"
	deliverycontext "vitrine/internal/delivery/context"
	"vitrine/internal/domain/entity"
	"vitrine/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultLookupTimeout = 10 * time.Second

// remoteProvider resolves the subject through the hosted auth collaborator's
// "who am I" endpoint, forwarding the caller's own cookie/authorization
// material. The service never holds credentials of its own.
type remoteProvider struct {
	endpoint   string
	httpClient *http.Client
}

// accountResponse mirrors the BaaS account payload. Only the identity fields
// are consumed.
type accountResponse struct {
	ID    string `json:"$id"`
	Email string `json:"email"`
}

// NewRemoteProvider is the constructor for remoteProvider.
func NewRemoteProvider(cfg *config.Config) (service.SessionProvider, error) {
	if cfg.Session == nil || cfg.Session.Endpoint == "" {
		return nil, errors.New("session endpoint must be provided")
	}

	timeout := cfg.Session.Timeout
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}

	return &remoteProvider{
		endpoint: cfg.Session.Endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// CurrentSubject performs the "who am I" call on behalf of the caller.
func (p *remoteProvider) CurrentSubject(ctx context.Context) (*entity.Subject, error) {
	creds := deliverycontext.GetCredentials(ctx)
	if creds.Cookie == "" && creds.Authorization == "" {
		return nil, errors.New("no session credentials presented")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if creds.Cookie != "" {
		req.Header.Set("Cookie", creds.Cookie)
	}
	if creds.Authorization != "" {
		req.Header.Set("Authorization", creds.Authorization)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "session lookup failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("session lookup returned status %d", resp.StatusCode)
	}

	var account accountResponse
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, errors.Wrap(err, "failed to decode session response")
	}

	if account.Email == "" || account.ID == "" {
		return nil, errors.New("session response is missing identity fields")
	}

	return &entity.Subject{Email: account.Email, ID: account.ID}, nil
}
