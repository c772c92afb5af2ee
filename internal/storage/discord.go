package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/saddexed/clips/internal/classify"
	"github.com/saddexed/clips/internal/models"
)

// DiscordStore uploads files as message attachments to a fixed Discord
// channel and uses the resulting CDN attachment URL as permanent storage.
type DiscordStore struct {
	apiURL    string
	channelID string
	token     string
	client    *http.Client
}

// NewDiscordStore builds a store for one channel. apiURL is the API base
// without a trailing slash, e.g. "https://discord.com/api/v9".
func NewDiscordStore(apiURL, channelID, token string) *DiscordStore {
	return &DiscordStore{
		apiURL:    strings.TrimRight(apiURL, "/"),
		channelID: channelID,
		token:     token,
		client:    &http.Client{Timeout: 2 * time.Minute},
	}
}

type discordMessage struct {
	Attachments []struct {
		URL string `json:"url"`
	} `json:"attachments"`
}

// Upload posts data as the first attachment of a new channel message and
// returns its URL. The attachment content type is the fixed representative
// value for the classified media type, not sniffed from the bytes.
func (s *DiscordStore) Upload(ctx context.Context, filename string, mediaType models.MediaType, data []byte) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files[0]"; filename=%q`, filename))
	hdr.Set("Content-Type", classify.ContentType(mediaType))
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return "", fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("build multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("build multipart body: %w", err)
	}

	url := fmt.Sprintf("%s/channels/%s/messages", s.apiURL, s.channelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", s.token)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &UploadError{Message: err.Error()}
	}
	defer resp.Body.Close()

	// message-create responses carry the full author object and signed
	// attachment URLs, so the success body can run well past a few KiB
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &UploadError{Status: resp.StatusCode, Message: "read response: " + err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := strings.TrimSpace(string(respBody))
		if len(detail) > 4096 {
			detail = detail[:4096]
		}
		return "", &UploadError{Status: resp.StatusCode, Message: detail}
	}

	var msg discordMessage
	if err := json.Unmarshal(respBody, &msg); err != nil {
		return "", &UploadError{Status: resp.StatusCode, Message: "unparseable response: " + err.Error()}
	}
	if len(msg.Attachments) == 0 {
		return "", &UploadError{Status: resp.StatusCode, Message: "no attachment URL returned"}
	}
	return msg.Attachments[0].URL, nil
}
