package recognizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

const (
	defaultEncoderURL  = "http://localhost:8000"
	defaultMaxImgSize  = 1920
	faceEncodeEndpoint = "/embed/face"
)

// Client computes face encodings using the encoder sidecar service.
type Client struct {
	baseURL      string
	maxImageSize int
	client       *http.Client
}

// NewClient creates a new encoder service client.
func NewClient(baseURL string, maxImageSize int) *Client {
	if baseURL == "" {
		baseURL = defaultEncoderURL
	}
	if maxImageSize <= 0 {
		maxImageSize = defaultMaxImgSize
	}
	return &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		maxImageSize: maxImageSize,
		client:       &http.Client{},
	}
}

// faceDetection represents a single detected face in the encoder response
type faceDetection struct {
	FaceIndex int       `json:"face_index"`
	Dim       int       `json:"dim"`
	Embedding []float32 `json:"embedding"`
	BBox      []float64 `json:"bbox"` // [x1, y1, x2, y2]
	DetScore  float64   `json:"det_score"`
}

// faceResponse represents the response from the face encoding endpoint
type faceResponse struct {
	FacesCount int             `json:"faces_count"`
	Faces      []faceDetection `json:"faces"`
	Model      string          `json:"model"`
}

// postMultipartImage constructs a multipart form with the image data and
// posts it to the given endpoint. The part carries an explicit Content-Type
// header based on magic byte detection.
func (c *Client) postMultipartImage(ctx context.Context, endpoint string, imageData []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="image.jpg"`)
	h.Set("Content-Type", detectMIMEType(imageData))
	part, err := writer.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}

	if _, err := part.Write(imageData); err != nil {
		return nil, fmt.Errorf("failed to write image data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("encoder error (status %d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// DetectAndEncode sends the image to the encoder service and returns one
// encoding per detected face. The image is normalized (downscaled and
// re-encoded) before upload; undecodable data surfaces as an error here.
func (c *Client) DetectAndEncode(ctx context.Context, imageData []byte) ([]Encoding, error) {
	normalized, err := NormalizeImage(imageData, c.maxImageSize)
	if err != nil {
		return nil, err
	}

	body, err := c.postMultipartImage(ctx, faceEncodeEndpoint, normalized)
	if err != nil {
		return nil, err
	}

	var resp faceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse encoder response: %w", err)
	}

	encodings := make([]Encoding, 0, len(resp.Faces))
	for _, face := range resp.Faces {
		if len(face.Embedding) == 0 {
			return nil, errors.New("empty embedding returned")
		}
		encodings = append(encodings, Encoding(face.Embedding))
	}
	return encodings, nil
}

// detectMIMEType detects the MIME type from image data
func detectMIMEType(data []byte) string {
	if len(data) < 8 {
		return "application/octet-stream"
	}
	// JPEG: FF D8 FF
	if data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return "image/jpeg"
	}
	// PNG: 89 50 4E 47 0D 0A 1A 0A
	if data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47 {
		return "image/png"
	}
	return "application/octet-stream"
}
