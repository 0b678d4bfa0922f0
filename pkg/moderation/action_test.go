package moderation

import (
	"testing"
	"time"
)

func TestEncodeDecodeCustomID(t *testing.T) {
	customID := EncodeCustomID(ActionWarn, "123456789")
	if customID != "warn:123456789" {
		t.Errorf("EncodeCustomID = %v, want warn:123456789", customID)
	}

	kind, targetID, err := DecodeCustomID(customID)
	if err != nil {
		t.Fatalf("DecodeCustomID devolvió error: %v", err)
	}
	if kind != ActionWarn {
		t.Errorf("kind = %v, want %v", kind, ActionWarn)
	}
	if targetID != "123456789" {
		t.Errorf("targetID = %v, want 123456789", targetID)
	}
}

func TestDecodeCustomIDInvalid(t *testing.T) {
	cases := []string{
		"",
		"warn",
		"warn:",
		"kick:123456789",
		"123456789",
	}
	for _, c := range cases {
		if _, _, err := DecodeCustomID(c); err == nil {
			t.Errorf("DecodeCustomID(%q) no devolvió error", c)
		}
	}
}

func TestActionKindIsValid(t *testing.T) {
	valid := []ActionKind{ActionBan, ActionWarn, ActionMute, ActionUnban, ActionUnwarn, ActionUnmute}
	for _, k := range valid {
		if !k.IsValid() {
			t.Errorf("IsValid(%v) = false, want true", k)
		}
	}
	if ActionKind("kick").IsValid() {
		t.Error("IsValid(kick) = true, want false")
	}
	if ActionKind("").IsValid() {
		t.Error("IsValid de cadena vacía = true, want false")
	}
}

func TestActionKindIsRemoval(t *testing.T) {
	if ActionBan.IsRemoval() || ActionWarn.IsRemoval() || ActionMute.IsRemoval() {
		t.Error("acciones de castigo marcadas como levantamiento")
	}
	if !ActionUnban.IsRemoval() || !ActionUnwarn.IsRemoval() || !ActionUnmute.IsRemoval() {
		t.Error("acciones de levantamiento no marcadas como tales")
	}
}

func TestParseMuteDuration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"", DefaultMuteDuration},
		{"30m", 30 * time.Minute},
		{"2h", 2 * time.Hour},
		{"1d", 24 * time.Hour},
		{"3d", 72 * time.Hour},
		{"  45M  ", 45 * time.Minute},
		{"basura", DefaultMuteDuration},
		{"-5m", DefaultMuteDuration},
		{"0s", DefaultMuteDuration},
		{"60d", MaxMuteDuration},
		{"900h", MaxMuteDuration},
	}
	for _, c := range cases {
		if got := ParseMuteDuration(c.in); got != c.want {
			t.Errorf("ParseMuteDuration(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
