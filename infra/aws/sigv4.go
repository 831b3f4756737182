package aws

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/go-resty/resty/v2"
)

// SigningTransport signs every request with SigV4 for service in region.
type SigningTransport struct {
	Base        http.RoundTripper
	Credentials sdkaws.CredentialsProvider
	Service     string
	Region      string
	signer      *v4.Signer
	now         func() time.Time
}

func NewSigningTransport(creds sdkaws.CredentialsProvider, service, region string) *SigningTransport {
	return &SigningTransport{
		Base:        http.DefaultTransport,
		Credentials: creds,
		Service:     service,
		Region:      region,
		signer:      v4.NewSigner(),
		now:         time.Now,
	}
}

func (t *SigningTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	signed := req.Clone(ctx)

	var body []byte
	if req.Body != nil && req.Body != http.NoBody {
		b, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, fmt.Errorf("sigv4: read body: %w", err)
		}
		_ = req.Body.Close()
		body = b
		signed.Body = io.NopCloser(bytes.NewReader(body))
	}
	sum := sha256.Sum256(body)

	creds, err := t.Credentials.Retrieve(ctx)
	if err != nil {
		return nil, fmt.Errorf("sigv4: retrieve credentials: %w", err)
	}
	if err := t.signer.SignHTTP(ctx, creds, signed, hex.EncodeToString(sum[:]), t.Service, t.Region, t.now()); err != nil {
		return nil, fmt.Errorf("sigv4: sign: %w", err)
	}
	return t.Base.RoundTrip(signed)
}

// NewSignedClient returns a resty client whose requests are SigV4 signed
// with the credentials of awsCfg.
func NewSignedClient(awsCfg sdkaws.Config, service string, timeout time.Duration) *resty.Client {
	transport := NewSigningTransport(awsCfg.Credentials, service, awsCfg.Region)
	return resty.NewWithClient(&http.Client{Transport: transport, Timeout: timeout})
}
