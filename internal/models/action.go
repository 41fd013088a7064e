package models

import (
	"fmt"
	"strings"
)

// ActionKind is the transformation requested of the AI.
type ActionKind int

const (
	Proofread ActionKind = iota
	ToneChange
	Draft
)

var actionNames = map[ActionKind]string{
	Proofread:  "proofread",
	ToneChange: "tone",
	Draft:      "draft",
}

var actionLabels = map[ActionKind]string{
	Proofread:  "Proofread",
	ToneChange: "Change Tone",
	Draft:      "Draft",
}

// Actions lists every action in display order.
func Actions() []ActionKind {
	return []ActionKind{Proofread, ToneChange, Draft}
}

// String returns the wire name used by the AI gateway ("proofread", "tone", "draft").
func (a ActionKind) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Label returns the human readable button label.
func (a ActionKind) Label() string {
	if label, ok := actionLabels[a]; ok {
		return label
	}
	return a.String()
}

func (a ActionKind) Valid() bool {
	_, ok := actionNames[a]
	return ok
}

// Next cycles to the following action, wrapping around.
func (a ActionKind) Next() ActionKind {
	return ActionKind((int(a) + 1) % len(actionNames))
}

// ParseAction accepts the wire name or the label, case-insensitively.
func ParseAction(s string) (ActionKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for kind, name := range actionNames {
		if s == name || s == strings.ToLower(actionLabels[kind]) {
			return kind, nil
		}
	}
	if s == "tonechange" || s == "tone-change" {
		return ToneChange, nil
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// Tone is one of the fixed rewrite tones. Only meaningful for ToneChange.
type Tone string

const (
	Professional Tone = "professional"
	Casual       Tone = "casual"
	Friendly     Tone = "friendly"
	Formal       Tone = "formal"
	Enthusiastic Tone = "enthusiastic"
	Empathetic   Tone = "empathetic"
	Confident    Tone = "confident"
	Concise      Tone = "concise"
)

// DefaultTone is used whenever no valid tone is configured.
const DefaultTone = Professional

var tones = []Tone{Professional, Casual, Friendly, Formal, Enthusiastic, Empathetic, Confident, Concise}

// Tones returns the tone options in display order.
func Tones() []Tone {
	out := make([]Tone, len(tones))
	copy(out, tones)
	return out
}

func (t Tone) Valid() bool {
	for _, candidate := range tones {
		if t == candidate {
			return true
		}
	}
	return false
}

// Label capitalises the tone for display.
func (t Tone) Label() string {
	if t == "" {
		return ""
	}
	s := string(t)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Next cycles to the following tone, wrapping around. Unknown tones restart at the first.
func (t Tone) Next() Tone {
	for i, candidate := range tones {
		if t == candidate {
			return tones[(i+1)%len(tones)]
		}
	}
	return tones[0]
}

func ParseTone(s string) (Tone, error) {
	t := Tone(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown tone %q", s)
	}
	return t, nil
}
