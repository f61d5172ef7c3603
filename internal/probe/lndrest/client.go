// internal/probe/lndrest/client.go
package lndrest

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/net/http2"
	"google.golang.org/grpc/codes"

	"github.com/tamzrod/engine-watch/internal/engine"
)

const (
	pathGetInfo = "/v1/getinfo"
	pathGenSeed = "/v1/genseed"

	macaroonHeader = "Grpc-Metadata-macaroon"

	// maxBody bounds what is read from the node per call.
	maxBody = 1 << 20
)

// Client implements the engine probes over the node's REST gateway.
// This adapter only maps responses; it has no retries and no state.
type Client struct {
	base     *url.URL
	http     *http.Client
	macaroon string
}

// Config is minimal transport config.
type Config struct {
	Endpoint     string
	TLSCertPath  string
	MacaroonPath string
	Timeout      time.Duration
}

// New builds a client. The TLS certificate, when given, is the only trusted root.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("lndrest: endpoint required")
	}

	base, err := url.Parse(strings.TrimRight(cfg.Endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("lndrest: endpoint: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("lndrest: endpoint scheme %q not supported", base.Scheme)
	}

	hc, err := buildHTTPClient(cfg.TLSCertPath, cfg.Timeout)
	if err != nil {
		return nil, err
	}

	c := &Client{base: base, http: hc}

	if cfg.MacaroonPath != "" {
		raw, err := os.ReadFile(cfg.MacaroonPath)
		if err != nil {
			return nil, fmt.Errorf("lndrest: read macaroon: %w", err)
		}
		c.macaroon = hex.EncodeToString(raw)
	}

	return c, nil
}

// buildHTTPClient returns an HTTP/2-capable client pinned to certPath.
func buildHTTPClient(certPath string, timeout time.Duration) (*http.Client, error) {
	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}

	if certPath != "" {
		pem, err := os.ReadFile(certPath)
		if err != nil {
			return nil, fmt.Errorf("lndrest: read tls cert: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("lndrest: parse tls cert %s", certPath)
		}
		tlsConfig.RootCAs = pool
	}

	tr := &http.Transport{TLSClientConfig: tlsConfig}
	if err := http2.ConfigureTransport(tr); err != nil {
		return nil, fmt.Errorf("lndrest: http2: %w", err)
	}

	return &http.Client{Transport: tr, Timeout: timeout}, nil
}

// ---- engine probes ----

type infoResponse struct {
	Version       string `json:"version"`
	SyncedToChain bool   `json:"synced_to_chain"`
	Chains        []struct {
		Chain   string `json:"chain"`
		Network string `json:"network"`
	} `json:"chains"`
}

// GetInfo implements engine.InfoProbe.
func (c *Client) GetInfo() (*engine.Info, error) {
	body, err := c.get(pathGetInfo)
	if err != nil {
		return nil, err
	}

	var resp infoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("lndrest: decode getinfo: %w", err)
	}

	info := &engine.Info{
		Version:       resp.Version,
		SyncedToChain: resp.SyncedToChain,
	}
	for _, ch := range resp.Chains {
		info.Chains = append(info.Chains, engine.Chain{Chain: ch.Chain, Network: ch.Network})
	}
	return info, nil
}

// GenSeed implements engine.SeedProbe. The generated seed is discarded.
func (c *Client) GenSeed() error {
	_, err := c.get(pathGenSeed)
	return err
}

// CheckAvailable implements engine.AvailabilityProbe.
func (c *Client) CheckAvailable() error {
	_, err := c.get(pathGetInfo)
	return err
}

// ---- request helpers ----

// gatewayError is the JSON body the REST gateway sends on failure.
type gatewayError struct {
	Code    *int   `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) get(path string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, c.base.String()+path, nil)
	if err != nil {
		return nil, fmt.Errorf("lndrest: build request: %w", err)
	}
	if c.macaroon != "" {
		req.Header.Set(macaroonHeader, c.macaroon)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// A rejected certificate is local misconfiguration, not node state.
		if isCertError(err) {
			return nil, fmt.Errorf("lndrest: %s: %w", path, err)
		}
		return nil, fmt.Errorf("lndrest: %s: %w", path, transportError(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("lndrest: %s: %w", path, transportError(err))
	}

	if resp.StatusCode/100 == 2 {
		return body, nil
	}
	return nil, fmt.Errorf("lndrest: %s: %w", path, decodeFailure(resp.StatusCode, body))
}

// decodeFailure maps a non-2xx response onto the node's (code, message).
func decodeFailure(httpStatus int, body []byte) *engine.ProbeError {
	var ge gatewayError
	if err := json.Unmarshal(body, &ge); err == nil && ge.Code != nil {
		msg := ge.Message
		if msg == "" {
			msg = ge.Error
		}
		return &engine.ProbeError{Code: *ge.Code, Message: msg}
	}

	// No gateway body: fall back to the HTTP status.
	code := codes.Unknown
	switch httpStatus {
	case http.StatusNotImplemented:
		code = codes.Unimplemented
	case http.StatusServiceUnavailable:
		code = codes.Unavailable
	case http.StatusUnauthorized:
		code = codes.Unauthenticated
	case http.StatusForbidden:
		code = codes.PermissionDenied
	case http.StatusGatewayTimeout:
		code = codes.DeadlineExceeded
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(httpStatus)
	}
	return &engine.ProbeError{Code: int(code), Message: msg}
}

func isCertError(err error) bool {
	var (
		verifyErr    *tls.CertificateVerificationError
		authorityErr x509.UnknownAuthorityError
		hostErr      x509.HostnameError
		invalidErr   x509.CertificateInvalidError
	)
	return errors.As(err, &verifyErr) ||
		errors.As(err, &authorityErr) ||
		errors.As(err, &hostErr) ||
		errors.As(err, &invalidErr)
}

// transportError reports a node that could not be reached as a probe failure.
func transportError(err error) *engine.ProbeError {
	code := codes.Unavailable

	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		code = codes.DeadlineExceeded
	}
	return &engine.ProbeError{Code: int(code), Message: err.Error()}
}
