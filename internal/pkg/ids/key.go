package ids

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/airenas/minutes/internal/pkg/utils"
)

// DefaultKeyPrefix is a folder for uploaded audio in a bucket
const DefaultKeyPrefix = "mom_audio/"

// KeyGenerator makes object store keys for uploaded files.
// Keys are not checked for collisions.
type KeyGenerator interface {
	NewKey(fileName string) string
}

// NewKeyGenerator returns generator by strategy name: random or uuid
func NewKeyGenerator(name, prefix string) (KeyGenerator, error) {
	switch name {
	case "", "random":
		return &RandomSuffixKey{prefix: prefix, intn: rand.Intn}, nil
	case "uuid":
		return &UUIDKey{prefix: prefix}, nil
	}
	return nil, errors.Errorf("unknown key strategy '%s'", name)
}

// RandomSuffixKey makes <prefix><stem>_<1000..9999><ext>
type RandomSuffixKey struct {
	prefix string
	intn   func(int) int
}

// NewKey returns key keeping file extension
func (g *RandomSuffixKey) NewKey(fileName string) string {
	stem, ext := utils.SplitName(fileName)
	return fmt.Sprintf("%s%s_%d%s", g.prefix, stem, 1000+g.intn(9000), ext)
}

// UUIDKey makes <prefix><uuid hex>_<name>
type UUIDKey struct {
	prefix string
}

// NewKey returns unique key
func (g *UUIDKey) NewKey(fileName string) string {
	stem, ext := utils.SplitName(fileName)
	u := uuid.New()
	return fmt.Sprintf("%s%x_%s%s", g.prefix, u[:], stem, ext)
}
