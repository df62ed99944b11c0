package validate

import (
	"math"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/cakeshelf/cakeshelf/internal/model"
)

const (
	CommentMinLen = 5
	CommentMaxLen = 200
	YumFactorMin  = 1
	YumFactorMax  = 5
)

// CakeDraft validates a full create payload. All four fields are required.
// Violations are accumulated in field declaration order (name, comment,
// imageUrl, yumFactor) rather than short-circuiting on the first failure.
func CakeDraft(payload map[string]interface{}) (*model.CakeDraft, []model.FieldViolation) {
	return checkFields(payload, true)
}

// CakePatch validates a partial update payload. Only supplied fields are
// checked; omitted fields stay nil on the returned draft.
func CakePatch(payload map[string]interface{}) (*model.CakeDraft, []model.FieldViolation) {
	return checkFields(payload, false)
}

func checkFields(payload map[string]interface{}, requireAll bool) (*model.CakeDraft, []model.FieldViolation) {
	var draft model.CakeDraft
	var violations []model.FieldViolation

	if raw, ok := payload["name"]; ok || requireAll {
		if v, fv := checkName(raw, ok); fv != nil {
			violations = append(violations, *fv)
		} else {
			draft.Name = v
		}
	}
	if raw, ok := payload["comment"]; ok || requireAll {
		if v, fv := checkComment(raw, ok); fv != nil {
			violations = append(violations, *fv)
		} else {
			draft.Comment = v
		}
	}
	if raw, ok := payload["imageUrl"]; ok || requireAll {
		if v, fv := checkImageURL(raw, ok); fv != nil {
			violations = append(violations, *fv)
		} else {
			draft.ImageURL = v
		}
	}
	if raw, ok := payload["yumFactor"]; ok || requireAll {
		if v, fv := checkYumFactor(raw, ok); fv != nil {
			violations = append(violations, *fv)
		} else {
			draft.YumFactor = v
		}
	}

	if len(violations) > 0 {
		return nil, violations
	}
	return &draft, nil
}

func checkName(raw interface{}, present bool) (*string, *model.FieldViolation) {
	if !present || raw == nil {
		return nil, &model.FieldViolation{Field: "name", Message: "Name is required"}
	}
	s, ok := raw.(string)
	if !ok {
		return nil, &model.FieldViolation{Field: "name", Message: "Name must be a string"}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, &model.FieldViolation{Field: "name", Message: "Name is required"}
	}
	return &s, nil
}

func checkComment(raw interface{}, present bool) (*string, *model.FieldViolation) {
	if !present || raw == nil {
		return nil, &model.FieldViolation{Field: "comment", Message: "Comment is required"}
	}
	s, ok := raw.(string)
	if !ok {
		return nil, &model.FieldViolation{Field: "comment", Message: "Comment is required"}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, &model.FieldViolation{Field: "comment", Message: "Comment is required"}
	}
	if utf8.RuneCountInString(s) < CommentMinLen {
		return nil, &model.FieldViolation{Field: "comment", Message: "Comment must be at least 5 characters long"}
	}
	if utf8.RuneCountInString(s) > CommentMaxLen {
		return nil, &model.FieldViolation{Field: "comment", Message: "Comment must not exceed 200 characters"}
	}
	return &s, nil
}

func checkImageURL(raw interface{}, present bool) (*string, *model.FieldViolation) {
	if !present || raw == nil {
		return nil, &model.FieldViolation{Field: "imageUrl", Message: "Image URL is required"}
	}
	s, ok := raw.(string)
	if !ok {
		return nil, &model.FieldViolation{Field: "imageUrl", Message: "Image URL is required"}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, &model.FieldViolation{Field: "imageUrl", Message: "Image URL is required"}
	}
	if !isURL(s) {
		return nil, &model.FieldViolation{Field: "imageUrl", Message: "Image URL must be a valid URL"}
	}
	return &s, nil
}

func checkYumFactor(raw interface{}, present bool) (*int, *model.FieldViolation) {
	if !present || raw == nil {
		return nil, &model.FieldViolation{Field: "yumFactor", Message: "Yum factor is required"}
	}
	// encoding/json decodes all JSON numbers into float64.
	f, ok := raw.(float64)
	if !ok || f != math.Trunc(f) {
		return nil, &model.FieldViolation{Field: "yumFactor", Message: "Yum factor must be an integer between 1 and 5"}
	}
	v := int(f)
	if v < YumFactorMin || v > YumFactorMax {
		return nil, &model.FieldViolation{Field: "yumFactor", Message: "Yum factor must be an integer between 1 and 5"}
	}
	return &v, nil
}

func isURL(s string) bool {
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Record re-checks a full cake record against every field invariant. The
// service runs it after applying a partial update so invariants hold for every
// stored record, never just for the fields a client happened to send.
func Record(c *model.Cake) []model.FieldViolation {
	payload := map[string]interface{}{
		"name":      c.Name,
		"comment":   c.Comment,
		"imageUrl":  c.ImageURL,
		"yumFactor": float64(c.YumFactor),
	}
	_, violations := checkFields(payload, true)
	return violations
}

// CakeID checks that a path-supplied identifier is a well-formed record id
// (UUID). It fails fast before any store access is attempted.
func CakeID(id string) *model.FieldViolation {
	if _, err := uuid.Parse(id); err != nil {
		return &model.FieldViolation{Field: "id", Message: "Invalid cake ID format"}
	}
	return nil
}
