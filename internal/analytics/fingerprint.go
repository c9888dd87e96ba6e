package analytics

import (
	"encoding/binary"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/shopspring/decimal"

	"github.com/GTDGit/inventory_api/internal/models"
)

// Fingerprint hashes every input that Compute reads. Products are hashed
// field by field because the low-stock list copies them into the output.
// Sale dates are folded in as their last-month window membership at now, so
// the key changes exactly when the window does.
func Fingerprint(products []models.Product, sales []models.Sale, now time.Time) uint64 {
	h := hasher{d: xxhash.New()}

	h.int(int64(len(products)))
	for i := range products {
		p := &products[i]
		h.str(p.ID)
		h.str(p.OwnerID)
		h.str(p.Name)
		h.str(p.Category)
		h.int(int64(p.Stock))
		h.int(int64(p.MinStock))
		h.dec(p.PurchasePrice)
		h.dec(p.SalePrice)
		h.optStr(p.Description)
		h.optStr(p.Supplier)
		h.time(p.CreatedAt)
		h.time(p.LastUpdated)
	}

	h.int(int64(len(sales)))
	for i := range sales {
		s := &sales[i]
		h.str(s.ID)
		h.str(s.ProductID)
		h.int(int64(s.Quantity))
		h.dec(s.TotalPrice)
		h.bool(InLastMonth(s.Date, now))
	}

	return h.d.Sum64()
}

type hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

func (h *hasher) int(v int64) {
	binary.LittleEndian.PutUint64(h.buf[:], uint64(v))
	_, _ = h.d.Write(h.buf[:])
}

// str is length-prefixed so adjacent fields can't run together.
func (h *hasher) str(s string) {
	h.int(int64(len(s)))
	_, _ = h.d.WriteString(s)
}

// optStr keeps nil apart from an empty string.
func (h *hasher) optStr(s *string) {
	if s == nil {
		h.bool(false)
		return
	}
	h.bool(true)
	h.str(*s)
}

func (h *hasher) time(t time.Time) {
	h.int(t.UnixNano())
	_, offset := t.Zone()
	h.int(int64(offset))
}

func (h *hasher) dec(v decimal.Decimal) {
	h.str(v.String())
}

func (h *hasher) bool(v bool) {
	if v {
		h.int(1)
		return
	}
	h.int(0)
}
