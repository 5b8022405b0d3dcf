package vault

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aayoawoyemi/Ori-Mnemos/internal/models"
)

var wikilinkRe = regexp.MustCompile(`\[\[(.*?)\]\]`)

// ParseResult holds the output of parsing a single note file, before it is
// joined with path/title context by the Reader.
type ParseResult struct {
	Frontmatter map[string]any
	Body        string
	Links       []string
	Warnings    []string
}

// Parse splits a Markdown file into frontmatter and body, and extracts link
// tokens from the body. A missing or malformed header yields a body-only
// result with a warning, never an error (§4.1, §7).
func Parse(data []byte) *ParseResult {
	fm, body, warn := splitFrontmatter(data)
	links := extractLinks(body)

	r := &ParseResult{Frontmatter: fm, Body: body, Links: links}
	if warn != "" {
		r.Warnings = append(r.Warnings, warn)
	}
	return r
}

func splitFrontmatter(data []byte) (map[string]any, string, string) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data), ""
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, string(data), "header: no closing delimiter, treating as body-only"
	}

	yamlBlock := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	var fm map[string]any
	if err := yaml.Unmarshal(yamlBlock, &fm); err != nil {
		return nil, string(data), "header: invalid YAML, treating as body-only: " + err.Error()
	}

	return fm, body, ""
}

// extractLinks returns deduplicated wikilink targets, preserving encounter
// order. [[Target|Alias]] resolves to Target.
func extractLinks(body string) []string {
	matches := wikilinkRe.FindAllStringSubmatch(body, -1)
	seen := make(map[string]struct{}, len(matches))
	var out []string
	for _, m := range matches {
		raw := m[1]
		target := raw
		if i := strings.Index(raw, "|"); i >= 0 {
			target = raw[:i]
		}
		target = strings.TrimSpace(target)
		if target == "" {
			continue
		}
		if _, ok := seen[target]; ok {
			continue
		}
		seen[target] = struct{}{}
		out = append(out, target)
	}
	return out
}

// applyFrontmatter projects recognized header keys onto n, leaving
// unrecognized keys in n.Extra. now is used as the default for a missing
// created/last_accessed so cold-start notes still get a sane age.
func applyFrontmatter(n *models.Note, fm map[string]any, now time.Time) []string {
	var warnings []string
	n.Created = now
	n.LastAccessed = now
	n.Status = models.StatusInbox
	n.Extra = map[string]any{}

	for k, v := range fm {
		switch k {
		case "type":
			if s, ok := v.(string); ok {
				n.Type = models.Type(s)
			}
		case "description":
			if s, ok := v.(string); ok {
				n.Description = s
			}
		case "project":
			n.Project = toStringSlice(v)
		case "status":
			if s, ok := v.(string); ok {
				n.Status = models.Status(s)
			}
		case "created":
			if t, ok := parseDate(v); ok {
				n.Created = t
			} else {
				warnings = append(warnings, "header: unparseable created date")
			}
		case "last_accessed":
			if t, ok := parseDate(v); ok {
				n.LastAccessed = t
			} else {
				warnings = append(warnings, "header: unparseable last_accessed date")
			}
		case "access_count":
			if i, ok := toInt(v); ok && i >= 0 {
				n.AccessCount = i
			} else {
				warnings = append(warnings, "header: invalid access_count")
			}
		default:
			n.Extra[k] = v
		}
	}

	if n.LastAccessed.Before(n.Created) {
		n.LastAccessed = n.Created
	}
	return warnings
}

func toStringSlice(v any) []string {
	switch vv := v.(type) {
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if vv == "" {
			return nil
		}
		return []string{vv}
	}
	return nil
}

func toInt(v any) (int, bool) {
	switch vv := v.(type) {
	case int:
		return vv, true
	case int64:
		return int(vv), true
	case float64:
		return int(vv), true
	case string:
		n, err := strconv.Atoi(vv)
		return n, err == nil
	}
	return 0, false
}

func parseDate(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
