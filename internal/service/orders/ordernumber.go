package orders

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const orderNumberPrefix = "GM"

// NewOrderNumber builds a human-readable order number. The random
// suffix keeps it unguessable; the unique index on orders.order_number
// is what actually guarantees uniqueness.
func NewOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s-%s-%s", orderNumberPrefix, time.Now().UTC().Format("20060102"), suffix)
}
