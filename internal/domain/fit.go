package domain

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type Verdict string

const (
	VerdictYes        Verdict = "yes"
	VerdictBorderline Verdict = "borderline"
	VerdictNo         Verdict = "no"
)

const (
	MaxStrengths     = 6
	MaxGaps          = 6
	MaxResumeBullets = 6
	MaxTags          = 10
)

// FitResult is the scored assessment of one job description.
type FitResult struct {
	Score             int      `json:"score"`
	Verdict           Verdict  `json:"verdict"`
	Rationale         string   `json:"rationale"`
	Strengths         []string `json:"strengths"`
	Gaps              []string `json:"gaps"`
	ResumeBullets     []string `json:"resume_bullets"`
	CoverLetterOpener string   `json:"cover_letter_opener"`
	Tags              []string `json:"tags"`
}

// Source records where the scored text came from.
type Source string

const (
	SourcePaste  Source = "paste"
	SourceUpload Source = "upload"
	SourceBoth   Source = "both"
)

// UploadedFile is a job description file as received, before extraction.
type UploadedFile struct {
	Filename  string
	MediaType string
	Size      int64
	Data      []byte
}

type FitCheckInput struct {
	PastedText string
	File       *UploadedFile
	Token      string
}

type FitUsecase interface {
	// CheckFit verifies, extracts, scores and sanitizes a job description.
	CheckFit(ctx context.Context, in *FitCheckInput, meta RequestMeta) (*FitResult, error)
}

// FitNotifier is told about scored results. Implementations decide whether to act.
type FitNotifier interface {
	Notify(ctx context.Context, result FitResult, jobText string, source Source) error
}

// SanitizeFitResult coerces an untrusted decoded JSON value into a FitResult.
// Every field is handled on its own, so a malformed response never breaks the shape.
// It accepts anything, never panics, and sanitize(sanitize(x)) == sanitize(x).
func SanitizeFitResult(raw any) FitResult {
	obj := asObject(raw)
	return FitResult{
		Score:             sanitizeScore(obj["score"]),
		Verdict:           sanitizeVerdict(obj["verdict"]),
		Rationale:         scalarString(obj["rationale"]),
		Strengths:         stringList(obj["strengths"], MaxStrengths),
		Gaps:              stringList(obj["gaps"], MaxGaps),
		ResumeBullets:     stringList(obj["resume_bullets"], MaxResumeBullets),
		CoverLetterOpener: scalarString(obj["cover_letter_opener"]),
		Tags:              stringList(obj["tags"], MaxTags),
	}
}

func asObject(raw any) map[string]any {
	switch v := raw.(type) {
	case map[string]any:
		return v
	case FitResult:
		return v.fields()
	case *FitResult:
		if v != nil {
			return v.fields()
		}
	}
	return map[string]any{}
}

func (r FitResult) fields() map[string]any {
	return map[string]any{
		"score":               float64(r.Score),
		"verdict":             string(r.Verdict),
		"rationale":           r.Rationale,
		"strengths":           toAnySlice(r.Strengths),
		"gaps":                toAnySlice(r.Gaps),
		"resume_bullets":      toAnySlice(r.ResumeBullets),
		"cover_letter_opener": r.CoverLetterOpener,
		"tags":                toAnySlice(r.Tags),
	}
}

func toAnySlice(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

// sanitizeScore rounds half up (floor(x+0.5)) and clamps to [0,100].
// Numeric strings are parsed; anything else scores 0.
func sanitizeScore(v any) int {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Floor(f + 0.5)
	switch {
	case f < 0:
		return 0
	case f > 100:
		return 100
	}
	return int(f)
}

func sanitizeVerdict(v any) Verdict {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case Verdict:
		s = string(t)
	}
	switch Verdict(s) {
	case VerdictYes, VerdictBorderline, VerdictNo:
		return Verdict(s)
	}
	return VerdictBorderline
}

// scalarString stringifies scalars. Missing values and objects become "".
func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	}
	return ""
}

// stringList keeps the scalar entries of an array, as strings, up to max.
func stringList(v any, max int) []string {
	out := []string{}
	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case []string:
		items = toAnySlice(t)
	default:
		return out
	}
	for _, item := range items {
		if len(out) == max {
			break
		}
		switch item.(type) {
		case nil, map[string]any, []any:
			continue
		}
		out = append(out, scalarString(item))
	}
	return out
}
