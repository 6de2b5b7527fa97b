package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryKey(t *testing.T) {
	entry := Entry{ProductID: 12, SizeID: 34}
	assert.Equal(t, "12-34", entry.Key())
}

func TestEntrySubtotal(t *testing.T) {
	entry := Entry{Quantity: 3, Price: 150000}
	assert.Equal(t, 450000, entry.Subtotal())
}
