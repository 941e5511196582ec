package script

import (
	"encoding/json"
	"strings"

	"roboshorts/types"
)

// scriptPayload is the JSON shape the LLM is asked for. Models sometimes
// return tags as an array instead of the requested comma-separated string,
// so both are accepted.
type scriptPayload struct {
	Title string  `json:"title"`
	Body  string  `json:"body"`
	Tags  tagList `json:"tags"`
}

type tagList []string

func (t *tagList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*t = cleanTags(arr)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = cleanTags(strings.Split(s, ","))
	return nil
}

func cleanTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// parseScript extracts the JSON object embedded in the LLM response. If no
// object can be found or decoded, it falls back to a script built from the
// item's title and the raw response text.
func parseScript(item types.NewsItem, raw string) types.Script {
	if obj, ok := extractJSONObject(raw); ok {
		var payload scriptPayload
		if err := json.Unmarshal([]byte(obj), &payload); err == nil {
			s := types.Script{
				Title: strings.TrimSpace(payload.Title),
				Body:  strings.TrimSpace(payload.Body),
				Tags:  payload.Tags,
			}
			if s.Title == "" {
				s.Title = fallbackTitle(item)
			}
			if s.Body == "" {
				s.Body = fallbackTitle(item)
			}
			if len(s.Tags) == 0 {
				s.Tags = append([]string(nil), defaultTags...)
			}
			return s
		}
	}

	return types.Script{
		Title: fallbackTitle(item),
		Body:  raw,
		Tags:  append([]string(nil), defaultTags...),
	}
}

func fallbackTitle(item types.NewsItem) string {
	if title := strings.TrimSpace(item.Title); title != "" {
		return title
	}
	return "Robotics update"
}

// extractJSONObject returns the first balanced brace-delimited JSON object
// in text. The scan honors string literals and escapes, so braces inside
// prose or values do not truncate the object.
func extractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	for start >= 0 {
		if obj, ok := scanObject(text, start); ok {
			return obj, true
		}
		next := strings.IndexByte(text[start+1:], '{')
		if next < 0 {
			return "", false
		}
		start += 1 + next
	}
	return "", false
}

func scanObject(text string, start int) (string, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				candidate := text[start : i+1]
				if json.Valid([]byte(candidate)) {
					return candidate, true
				}
				return "", false
			}
		}
	}
	return "", false
}
