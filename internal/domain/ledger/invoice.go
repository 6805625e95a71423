package ledger

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/smbc/backend/internal/domain/shared"
)

const invoicePrefix = "INV"

// InvoiceNumber is a formatted daily invoice number, INV-YYYYMMDD-NNNN
type InvoiceNumber string

// FormatInvoiceNumber builds the invoice number for a day and sequence
func FormatInvoiceNumber(day time.Time, seq int64) InvoiceNumber {
	return InvoiceNumber(fmt.Sprintf("%s-%s-%04d", invoicePrefix, day.Format("20060102"), seq))
}

// String returns the string representation of InvoiceNumber
func (n InvoiceNumber) String() string {
	return string(n)
}

// Parse splits the number back into its day and sequence
func (n InvoiceNumber) Parse() (time.Time, int64, error) {
	parts := strings.Split(string(n), "-")
	if len(parts) != 3 || parts[0] != invoicePrefix {
		return time.Time{}, 0, shared.NewValidationError(fmt.Sprintf("malformed invoice number %q", n))
	}
	day, err := time.Parse("20060102", parts[1])
	if err != nil {
		return time.Time{}, 0, shared.NewValidationError(fmt.Sprintf("malformed invoice date in %q", n))
	}
	seq, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || seq < 1 || len(parts[2]) < 4 {
		return time.Time{}, 0, shared.NewValidationError(fmt.Sprintf("malformed invoice sequence in %q", n))
	}
	return day, seq, nil
}

// InvoiceCounter is the per-day counter row
type InvoiceCounter struct {
	InvoiceDate time.Time
	LastSeq     int64
}

// InvoiceSequence issues invoice numbers from a per-day counter.
// Next must run inside the transaction that persists the rows using the number,
// so a rollback undoes the increment together with the rows.
type InvoiceSequence interface {
	// Next atomically increments the counter for day and returns the new number
	Next(ctx context.Context, day time.Time) (InvoiceNumber, error)
	// Peek returns the number Next would issue, without reserving it
	Peek(ctx context.Context, day time.Time) (InvoiceNumber, error)
}
