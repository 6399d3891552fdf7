// Package yemot is a client for the Yemot (call2all) file API, the IVR
// storage namespace holding caller recordings and synthesized responses.
package yemot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/itamarh/voicedca/internal/config"
)

// Client calls the Yemot file API. Failures surface as transport errors;
// the client performs no retries of its own.
type Client struct {
	httpClient  *http.Client
	apiURL      string
	token       string
	responseExt string
}

// NewClient creates a new Yemot file API client from configuration.
func NewClient(cfg *config.YemotConfig) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.TimeoutDuration()},
		apiURL:      strings.TrimSuffix(cfg.APIURL, "/"),
		token:       cfg.Token(),
		responseExt: cfg.ResponseExt,
	}
}

// NormalizePath turns a recording reference from the IVR request into a full
// remote path in the ivr2 namespace.
func NormalizePath(p string) string {
	if strings.HasPrefix(p, "ivr2:/") {
		return p
	}
	return "ivr2:/" + strings.TrimPrefix(p, "/")
}

// ResponsePath builds a fresh remote path for a spoken response to the given
// callback phone. The file name embeds a UUID so concurrent requests from
// the same caller never collide.
func (c *Client) ResponsePath(phone string) string {
	return fmt.Sprintf("ivr2:/%s/Phone/%s/result_%s.wav", c.responseExt, strings.TrimSpace(phone), uuid.NewString())
}

// Download fetches the raw bytes of a remote file. The path is normalized
// into the ivr2 namespace, so the bare recording reference from the IVR
// request works as-is.
func (c *Client) Download(ctx context.Context, remotePath string) ([]byte, error) {
	q := url.Values{}
	q.Set("token", c.token)
	q.Set("path", NormalizePath(remotePath))

	u := fmt.Sprintf("%s/DownloadFile?%s", c.apiURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yemot download: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yemot download read: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yemot download: status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// Upload stores data at the given remote path as a WAV attachment.
func (c *Client) Upload(ctx context.Context, remotePath string, data []byte) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("token", c.token); err != nil {
		return err
	}
	if err := w.WriteField("path", remotePath); err != nil {
		return err
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, path.Base(remotePath)))
	header.Set("Content-Type", "audio/wav")
	part, err := w.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := part.Write(data); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	u := fmt.Sprintf("%s/UploadFile", c.apiURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("yemot upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("yemot upload: status %d, body: %s", resp.StatusCode, string(body))
	}
	return nil
}
