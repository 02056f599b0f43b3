// Package langdetect infers a language tag for fenced code blocks that
// carry no info string, so the presentation layer can still pick a syntax
// highlighter. Detection uses go-enry with a small pattern pre-pass for
// the languages that dominate real documents.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Fallback is returned whenever detection is not confident.
const Fallback = "text"

// classifierCandidates bounds the enry classifier to languages that
// plausibly appear in fenced blocks.
//
//nolint:gochecknoglobals // Read-only candidate list
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript", "Ruby", "Rust",
	"Java", "C", "C++", "SQL", "JSON", "YAML", "HTML", "CSS", "Swift",
	"Kotlin", "Dockerfile",
}

// Infer returns a lower-cased fence tag for the given code body.
// Returns Fallback ("text") when nothing matches confidently; never
// returns an empty string.
func Infer(code []byte) string {
	if len(bytes.TrimSpace(code)) == 0 {
		return Fallback
	}

	// Shebangs are the most reliable signal.
	if lang, ok := enry.GetLanguageByShebang(code); ok {
		return normalize(lang)
	}

	if lang := inferByPattern(code); lang != "" {
		return lang
	}

	if lang, ok := enry.GetLanguageByClassifier(code, classifierCandidates); ok && lang != "" {
		return normalize(lang)
	}

	return Fallback
}

// inferByPattern checks a handful of near-unambiguous structural markers
// before paying for the classifier.
func inferByPattern(code []byte) string {
	trimmed := bytes.TrimSpace(code)
	text := string(code)

	switch {
	case bytes.HasPrefix(trimmed, []byte("package ")) && strings.Contains(text, "func "):
		return "go"
	case strings.Contains(text, "def ") && strings.Contains(text, "):"):
		return "python"
	case bytes.HasPrefix(trimmed, []byte("<!DOCTYPE")) || bytes.HasPrefix(trimmed, []byte("<html")):
		return "html"
	case looksLikeJSON(trimmed):
		return "json"
	case bytes.HasPrefix(trimmed, []byte("FROM ")) && strings.Contains(text, "RUN "):
		return "dockerfile"
	case hasSQLVerb(trimmed):
		return "sql"
	case strings.Contains(text, "fn main()") || strings.Contains(text, "println!"):
		return "rust"
	}

	return ""
}

func looksLikeJSON(trimmed []byte) bool {
	if len(trimmed) == 0 {
		return false
	}
	first := trimmed[0]
	return (first == '{' || first == '[') && bytes.Contains(trimmed, []byte(`"`))
}

func hasSQLVerb(trimmed []byte) bool {
	upper := strings.ToUpper(string(trimmed))
	for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE TABLE"} {
		if strings.HasPrefix(upper, verb) {
			return true
		}
	}
	return false
}

// normalize converts enry language names to lower-case fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
