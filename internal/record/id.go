package record

import (
	"encoding/binary"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrIdentifierExhausted is returned when unique identifier generation
// hits its retry cap. The id space is effectively unbounded relative to any
// realistic collection size, so in practice this never fires.
var ErrIdentifierExhausted = errors.New("identifier generation exhausted retry budget")

// maxIDAttempts caps the retry loop in GenerateUnique.
const maxIDAttempts = 1000

// Generator produces opaque record identifiers.
//
// Implementations must make two calls in the same process differ with
// overwhelming probability; uniqueness against already-stored identifiers
// is handled separately by GenerateUnique.
type Generator interface {
	Generate() string
}

// TokenGenerator is the production Generator.
//
// Tokens have the form "<millis base36>_<6 base36 chars>": a time-based
// prefix that keeps tokens roughly sortable by creation time, joined to a
// random suffix drawn from a freshly generated UUID.
//
// The suffix covers the full 36^6 space. Taking hex characters straight
// off the UUID would shrink it to 16^6, small enough that two ids minted
// in the same millisecond collide at observable rates.
//
// Thread-safety: TokenGenerator is stateless and safe for concurrent use.
type TokenGenerator struct{}

const (
	suffixLen   = 6
	suffixSpace = 36 * 36 * 36 * 36 * 36 * 36
)

// Generate returns a new identifier token.
func (TokenGenerator) Generate() string {
	prefix := strconv.FormatInt(time.Now().UnixMilli(), 36)

	u := uuid.New()
	suffix := strconv.FormatUint(binary.BigEndian.Uint64(u[:8])%suffixSpace, 36)
	if pad := suffixLen - len(suffix); pad > 0 {
		suffix = strings.Repeat("0", pad) + suffix
	}
	return prefix + "_" + suffix
}

// GenerateUnique draws identifiers from gen until one is absent from
// existing, then records it in existing and returns it.
//
// The retry loop protects against the astronomically rare collision and,
// more importantly, against deliberately supplied ids during import. It is
// capped at maxIDAttempts, past which ErrIdentifierExhausted is returned.
func GenerateUnique(gen Generator, existing map[string]struct{}) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := gen.Generate()
		if _, taken := existing[id]; taken {
			continue
		}
		existing[id] = struct{}{}
		return id, nil
	}
	return "", ErrIdentifierExhausted
}
