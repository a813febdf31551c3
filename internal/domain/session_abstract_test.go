package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validAbstractParams() SessionAbstractParams {
	return SessionAbstractParams{
		Title:              "The One Ring",
		Summary:            "Why one ring rules them all.",
		Outline:            "Forging, losing, destroying.",
		LearningObjectives: "Know when to walk into Mordor.",
		TargetAudience:     "Hobbits",
		Prerequisites:      strPtr(""),
	}
}

func TestNewSessionAbstract(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(p *SessionAbstractParams)
		wantField string
	}{
		{name: "valid with empty prerequisites", modify: func(p *SessionAbstractParams) {}},
		{name: "blank title", modify: func(p *SessionAbstractParams) { p.Title = " " }, wantField: "title"},
		{name: "title too long", modify: func(p *SessionAbstractParams) { p.Title = strings.Repeat("t", 201) }, wantField: "title"},
		{name: "blank summary", modify: func(p *SessionAbstractParams) { p.Summary = "" }, wantField: "summary"},
		{name: "summary too long", modify: func(p *SessionAbstractParams) { p.Summary = strings.Repeat("s", 2001) }, wantField: "summary"},
		{name: "blank outline", modify: func(p *SessionAbstractParams) { p.Outline = "" }, wantField: "outline"},
		{name: "blank objectives", modify: func(p *SessionAbstractParams) { p.LearningObjectives = "" }, wantField: "learning_objectives"},
		{name: "blank audience", modify: func(p *SessionAbstractParams) { p.TargetAudience = "" }, wantField: "target_audience"},
		{name: "missing prerequisites", modify: func(p *SessionAbstractParams) { p.Prerequisites = nil }, wantField: "prerequisites"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validAbstractParams()
			tt.modify(&p)
			a, err := NewSessionAbstract(p)
			if tt.wantField != "" {
				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, tt.wantField, verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, p.Title, a.Title())
			assert.Equal(t, "", a.Prerequisites())
		})
	}
}

func TestSessionAbstract_Preview(t *testing.T) {
	p := validAbstractParams()
	a, err := NewSessionAbstract(p)
	require.NoError(t, err)
	assert.Equal(t, "The One Ring - Why one ring rules them all.", a.Preview())

	p.Summary = strings.Repeat("x", 150)
	a, err = NewSessionAbstract(p)
	require.NoError(t, err)
	assert.Equal(t, "The One Ring - "+strings.Repeat("x", 100)+"...", a.Preview())

	p.Summary = strings.Repeat("y", 100)
	a, err = NewSessionAbstract(p)
	require.NoError(t, err)
	assert.Equal(t, "The One Ring - "+strings.Repeat("y", 100), a.Preview())
}

func TestSessionAbstract_IsBeginnerFriendly(t *testing.T) {
	tests := []struct {
		prereq string
		want   bool
	}{
		{prereq: "", want: true},
		{prereq: "   ", want: true},
		{prereq: "None", want: true},
		{prereq: "No prerequisites at all", want: true},
		{prereq: "Solid Go experience", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.prereq, func(t *testing.T) {
			p := validAbstractParams()
			p.Prerequisites = strPtr(tt.prereq)
			a, err := NewSessionAbstract(p)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.IsBeginnerFriendly())
		})
	}
}
