package image

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"strings"
	"time"

	_ "image/gif" // 支援 GIF
	_ "image/png" // 支援 PNG

	_ "golang.org/x/image/webp" // 支援 WebP
)

// Service 傳單圖片處理服務
type Service struct {
	maxSizeBytes int64
	httpClient   *http.Client
}

// NewService 創建新的圖片處理服務
func NewService(maxSizeBytes int64) *Service {
	return &Service{
		maxSizeBytes: maxSizeBytes,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ProcessImage 將傳單圖片（URL、data URI 或裸 base64）統一為 JPEG data URI
func (s *Service) ProcessImage(imageData string) (string, error) {
	raw, err := s.fetchBytes(imageData)
	if err != nil {
		return "", err
	}

	if int64(len(raw)) > s.maxSizeBytes {
		return "", fmt.Errorf("image size exceeds maximum limit of %d bytes", s.maxSizeBytes)
	}

	// 解碼圖片
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	// 檢查圖片格式
	if !isSupportedFormat(format) {
		return "", fmt.Errorf("unsupported image format: %s", format)
	}

	// 統一轉換為 JPEG 格式
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode image as JPEG: %w", err)
	}

	encodedData := base64.StdEncoding.EncodeToString(buf.Bytes())
	return fmt.Sprintf("data:image/jpeg;base64,%s", encodedData), nil
}

// fetchBytes 取得圖片原始位元組：URL 先下載，data URI 去前綴，其餘視為裸 base64
func (s *Service) fetchBytes(imageData string) ([]byte, error) {
	if strings.HasPrefix(imageData, "http://") || strings.HasPrefix(imageData, "https://") {
		resp, err := s.httpClient.Get(imageData)
		if err != nil {
			return nil, fmt.Errorf("failed to download image: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("failed to download image: status code %d", resp.StatusCode)
		}

		// 限制讀取量，避免超大回應撐爆記憶體
		raw, err := io.ReadAll(io.LimitReader(resp.Body, s.maxSizeBytes+1))
		if err != nil {
			return nil, fmt.Errorf("failed to read image data: %w", err)
		}
		return raw, nil
	}

	payload := imageData
	if strings.HasPrefix(imageData, "data:image/") {
		parts := strings.Split(imageData, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid base64 data format")
		}
		payload = parts[1]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 data: %w", err)
	}
	return raw, nil
}

// isSupportedFormat 檢查圖片格式是否支援
func isSupportedFormat(format string) bool {
	supportedFormats := map[string]bool{
		"jpeg": true,
		"jpg":  true,
		"png":  true,
		"gif":  true,
		"webp": true,
	}
	return supportedFormats[format]
}
