package domain

import (
	"strings"
	"unicode/utf8"
)

const (
	maxTitleLength     = 200
	maxSummaryLength   = 2000
	previewSummaryRune = 100
)

// SessionAbstractParams carries raw abstract fields. Prerequisites is a pointer
// because "not provided" is invalid while "" is allowed.
type SessionAbstractParams struct {
	Title              string
	Summary            string
	Outline            string
	LearningObjectives string
	TargetAudience     string
	Prerequisites      *string
}

// SessionAbstract is the descriptive content of a submitted talk.
type SessionAbstract struct {
	title              string
	summary            string
	outline            string
	learningObjectives string
	targetAudience     string
	prerequisites      string
}

// NewSessionAbstract validates p and returns the abstract. The first failing
// field is reported.
func NewSessionAbstract(p SessionAbstractParams) (SessionAbstract, error) {
	if strings.TrimSpace(p.Title) == "" {
		return SessionAbstract{}, newValidationError("title", "cannot be empty")
	}
	if utf8.RuneCountInString(p.Title) > maxTitleLength {
		return SessionAbstract{}, newValidationError("title", "is too long (max 200 characters)")
	}
	if strings.TrimSpace(p.Summary) == "" {
		return SessionAbstract{}, newValidationError("summary", "cannot be empty")
	}
	if utf8.RuneCountInString(p.Summary) > maxSummaryLength {
		return SessionAbstract{}, newValidationError("summary", "is too long (max 2000 characters)")
	}
	if strings.TrimSpace(p.Outline) == "" {
		return SessionAbstract{}, newValidationError("outline", "cannot be empty")
	}
	if strings.TrimSpace(p.LearningObjectives) == "" {
		return SessionAbstract{}, newValidationError("learning_objectives", "cannot be empty")
	}
	if strings.TrimSpace(p.TargetAudience) == "" {
		return SessionAbstract{}, newValidationError("target_audience", "cannot be empty")
	}
	if p.Prerequisites == nil {
		return SessionAbstract{}, newValidationError("prerequisites", "must be provided (may be empty)")
	}
	return SessionAbstract{
		title:              p.Title,
		summary:            p.Summary,
		outline:            p.Outline,
		learningObjectives: p.LearningObjectives,
		targetAudience:     p.TargetAudience,
		prerequisites:      *p.Prerequisites,
	}, nil
}

func (a SessionAbstract) Title() string              { return a.title }
func (a SessionAbstract) Summary() string            { return a.summary }
func (a SessionAbstract) Outline() string            { return a.outline }
func (a SessionAbstract) LearningObjectives() string { return a.learningObjectives }
func (a SessionAbstract) TargetAudience() string     { return a.targetAudience }
func (a SessionAbstract) Prerequisites() string      { return a.prerequisites }

// Preview returns "title - summary", with the summary cut at 100 characters.
func (a SessionAbstract) Preview() string {
	summary := a.summary
	if utf8.RuneCountInString(summary) > previewSummaryRune {
		summary = string([]rune(summary)[:previewSummaryRune]) + "..."
	}
	return a.title + " - " + summary
}

// IsBeginnerFriendly reports whether the prerequisites ask for nothing.
func (a SessionAbstract) IsBeginnerFriendly() bool {
	p := strings.ToLower(a.prerequisites)
	return strings.TrimSpace(p) == "" ||
		strings.Contains(p, "none") ||
		strings.Contains(p, "no prerequisite")
}

func (a SessionAbstract) String() string {
	return a.Preview()
}
