package curve

import (
	"fmt"
	"strings"
)

// Transaction is a change to a curve: splines to delete and splines to insert. Operations return transactions instead of modifying their input, the caller decides whether to apply them.
type Transaction struct {
	Delete []*Spline
	Insert []*Spline
}

// Replace schedules the deletion of old and the insertion of s.
func (tx *Transaction) Replace(old, s *Spline) {
	tx.Delete = append(tx.Delete, old)
	tx.Insert = append(tx.Insert, s)
}

// Empty returns true if the transaction changes nothing.
func (tx *Transaction) Empty() bool {
	return tx == nil || len(tx.Delete) == 0 && len(tx.Insert) == 0
}

// Merge appends the changes of o.
func (tx *Transaction) Merge(o *Transaction) *Transaction {
	if o != nil {
		tx.Delete = append(tx.Delete, o.Delete...)
		tx.Insert = append(tx.Insert, o.Insert...)
	}
	return tx
}

// Apply removes the deleted splines from c and appends the inserted splines. Either all changes are applied or, if a deleted spline is not in c, none.
func (tx *Transaction) Apply(c *Curve) error {
	if tx == nil {
		return nil
	}

	deleted := map[*Spline]bool{}
	for _, s := range tx.Delete {
		if c.Index(s) == -1 {
			return fmt.Errorf("delete: %w", ErrNotInCurve)
		}
		deleted[s] = true
	}

	splines := c.Splines[:0:0]
	for _, s := range c.Splines {
		if !deleted[s] {
			splines = append(splines, s)
		}
	}
	c.Splines = append(splines, tx.Insert...)
	return nil
}

func (tx *Transaction) String() string {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "Transaction(-%d +%d)", len(tx.Delete), len(tx.Insert))
	for _, s := range tx.Insert {
		sb.WriteString(" ")
		sb.WriteString(s.String())
	}
	return sb.String()
}
