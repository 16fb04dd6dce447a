package store

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidKey = errors.New("invalid key")

type Kind string

const (
	KindBestRace Kind = "best-race"
	KindBestLap  Kind = "best-lap"
)

const ext = ".json"

// Key identifies a persisted record. LapCount is only used for races.
type Key struct {
	Scope    string // usually the track name
	Kind     Kind
	LapCount int
}

func BestRaceKey(scope string, lapCount int) Key {
	return Key{Scope: scope, Kind: KindBestRace, LapCount: lapCount}
}

func BestLapKey(scope string) Key {
	return Key{Scope: scope, Kind: KindBestLap}
}

// BaseName is the file name without extension, e.g. "Monza_BestRace_3laps"
func (k Key) BaseName() string {
	switch k.Kind {
	case KindBestRace:
		return fmt.Sprintf("%s_BestRace_%dlaps", k.Scope, k.LapCount)
	case KindBestLap:
		return fmt.Sprintf("%s_BestLap", k.Scope)
	default:
		return fmt.Sprintf("%s_%s", k.Scope, k.Kind)
	}
}

func (k Key) FileName() string {
	return k.BaseName() + ext
}

func (k Key) String() string {
	return k.BaseName()
}

// Validate rejects scopes that cannot be used as part of a file name.
func (k Key) Validate() error {
	if strings.ContainsAny(k.Scope, `/\`) || strings.Contains(k.Scope, "..") {
		return fmt.Errorf("scope %q: %w", k.Scope, ErrInvalidKey)
	}
	return nil
}

// Token is the key usable by key-value backends with a restricted charset
// (nats kv allows [-/_=.a-zA-Z0-9]). Bytes outside [-_a-zA-Z0-9] are written
// as =XX so distinct keys never share a token.
func (k Key) Token() string {
	name := k.BaseName()
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c == '-', c == '_':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "=%02X", c)
		}
	}
	return b.String()
}
