package id

import (
	cryptoRand "crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu   sync.Mutex
	mono io.Reader
)

func init() {
	// Seed a PRNG from crypto/rand so ULID entropy is unpredictable.
	// We use ulid.Monotonic so IDs generated within the same millisecond remain
	// lexicographically increasing.
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	mono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// New returns a ULID string (time-sortable identifier), used for import
// run ids.
//
// ULIDs are lexicographically sortable by generation time, which makes them
// ideal for journaling/trading records and SQLite indexes.
func New() string {
	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), mono)
	if err != nil {
		// Errors are extremely unlikely unless time goes backwards or entropy fails.
		panic(err)
	}
	return id.String()
}

// ForTrade derives a deterministic trade id from the fields that identify
// an execution. Re-importing the same statement produces the same ids, so
// the journal's unique constraint turns a re-import into a clean rejection
// instead of silent double-counting. fill distinguishes split fills that
// share symbol, timestamp, quantity, price, and code; the caller assigns
// it by occurrence order within the statement.
func ForTrade(symbol string, at time.Time, quantity, price float64, code string, fill int) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%.8f|%.8f|%s|%d", symbol, at.UTC().UnixNano(), quantity, price, code, fill)
	return "T" + hex.EncodeToString(h.Sum(nil))[:24]
}
