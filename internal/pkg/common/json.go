package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// ParseJSON 解析 JSON 字符串到結構體
func ParseJSON(data string, v interface{}) error {
	return decodeJSON(strings.NewReader(data), v, false)
}

// ParseJSONStrict 解析 JSON 字符串到結構體（禁止未知欄位）
func ParseJSONStrict(data string, v interface{}) error {
	return decodeJSON(strings.NewReader(data), v, true)
}

// ParseJSONBytes 解析 JSON 位元組切片到結構體
func ParseJSONBytes(data []byte, v interface{}) error {
	return decodeJSON(bytes.NewReader(data), v, false)
}

// DecodeJSON 使用統一設定解析 JSON
func DecodeJSON(r io.Reader, v interface{}) error {
	return decodeJSON(r, v, false)
}

// DecodeJSONStrict 使用統一設定解析 JSON，禁止未知欄位
func DecodeJSONStrict(r io.Reader, v interface{}) error {
	return decodeJSON(r, v, true)
}

func decodeJSON(r io.Reader, v interface{}, disallowUnknown bool) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if disallowUnknown {
		dec.DisallowUnknownFields()
	}

	if err := dec.Decode(v); err != nil {
		return err
	}

	// 確保沒有多餘資料
	for {
		t, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		// 若讀到額外 token，視為錯誤
		if t != nil {
			return fmt.Errorf("unexpected extra JSON data")
		}
	}
}

var unquotedKeyPattern = regexp.MustCompile(`([{\[,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)

// QuoteJSONKeys 將未加雙引號的鍵補上雙引號
func QuoteJSONKeys(raw string) string {
	return unquotedKeyPattern.ReplaceAllString(raw, `$1"$2":`)
}

// ToJSON 將結構體轉換為 JSON 字符串
func ToJSON(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

var (
	fencePattern   = regexp.MustCompile("```(?:json)?")
	trailerPattern = regexp.MustCompile(`\}\s*,?\s*\}\s*$`)
)

// RepairJSONObject 從模型輸出中搶救出一個可解析的 JSON 物件。
// 依序套用：程式碼圍欄剝除、前後空白修剪、第一個 '{' 到最後一個 '}'
// 的切片、括號補齊與尾端 "},}" 修正，最後補上未加引號的鍵。
// 修復後仍無法解析時回傳 ErrParseFailure。
func RepairJSONObject(raw string) (string, error) {
	content := fencePattern.ReplaceAllString(raw, "")
	content = strings.TrimSpace(content)

	if len(content) < 10 {
		return "", WrapError(ErrParseFailure, fmt.Errorf("AI 回應內容過短: %d 字元", len(content)))
	}

	start := strings.Index(content, "{")
	if start == -1 {
		return "", WrapError(ErrParseFailure, fmt.Errorf("AI 回應中找不到 JSON 物件"))
	}
	end := strings.LastIndex(content, "}")
	if end > start {
		content = content[start : end+1]
	} else {
		// 模型截斷輸出時常缺最後一個右括號，補一個再試
		content = content[start:] + "}"
	}

	if _, ok := tryParseObject(content); ok {
		return content, nil
	}

	// 常見壞尾：物件結束後多掛一個 '}' 或 ',}'
	if trailerPattern.MatchString(content) {
		fixed := trailerPattern.ReplaceAllString(content, "}")
		if _, ok := tryParseObject(fixed); ok {
			return fixed, nil
		}
	}

	// 補齊未加引號的鍵後再試一次
	quoted := QuoteJSONKeys(content)
	if _, ok := tryParseObject(quoted); ok {
		return quoted, nil
	}
	if trailerPattern.MatchString(quoted) {
		fixed := trailerPattern.ReplaceAllString(quoted, "}")
		if _, ok := tryParseObject(fixed); ok {
			return fixed, nil
		}
	}

	return "", WrapError(ErrParseFailure, fmt.Errorf("repaired content is still not valid JSON"))
}

func tryParseObject(content string) (map[string]interface{}, bool) {
	var obj map[string]interface{}
	if err := ParseJSON(content, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// AIRequest OpenRouter chat completions 請求結構
type AIRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
}

// AIResponse AI 響應結構
type AIResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Message 消息結構
type Message struct {
	Role    string    `json:"role"`
	Content []Content `json:"content"`
}

// Content 內容結構
type Content struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL 圖片 URL 結構
type ImageURL struct {
	URL string `json:"url"`
}
