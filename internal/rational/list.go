package rational

import (
	"fmt"
	"slices"
)

// List is an ordered, growable sequence of Rationals. Values are coerced
// through Promote on insertion, so every element is a valid Rational.
type List struct {
	items []Rational
}

func NewList() *List {
	return &List{}
}

// ListOf builds a List from values, coercing each like Append.
func ListOf(values ...any) (*List, error) {
	l := NewList()
	for _, v := range values {
		if err := l.Append(v); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *List) Len() int {
	return len(l.items)
}

// Append adds v to the end of the list.
func (l *List) Append(v any) error {
	r, err := Promote(v)
	if err != nil {
		return err
	}
	l.items = append(l.items, r)
	return nil
}

func (l *List) Get(i int) (Rational, error) {
	if err := l.checkIndex(i); err != nil {
		return Rational{}, err
	}
	return l.items[i], nil
}

// Set replaces the element at i, coercing v like Append.
func (l *List) Set(i int, v any) error {
	if err := l.checkIndex(i); err != nil {
		return err
	}
	r, err := Promote(v)
	if err != nil {
		return err
	}
	l.items[i] = r
	return nil
}

func (l *List) checkIndex(i int) error {
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("%w: %d with length %d", ErrIndexOutOfRange, i, len(l.items))
	}
	return nil
}

// Items returns a copy of the elements in order.
func (l *List) Items() []Rational {
	return slices.Clone(l.items)
}

// Merge returns a new list holding l's elements followed by other's: every
// element when other is a *List, otherwise other itself coerced like Append.
// Neither l nor other is modified.
func (l *List) Merge(other any) (*List, error) {
	merged := &List{items: slices.Clone(l.items)}
	if err := merged.extend(other); err != nil {
		return nil, err
	}
	return merged, nil
}

// MergeInPlace is Merge applied to l itself. It returns l.
func (l *List) MergeInPlace(other any) (*List, error) {
	if err := l.extend(other); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *List) extend(other any) error {
	if o, ok := other.(*List); ok {
		if o != nil {
			l.items = append(l.items, o.items...)
		}
		return nil
	}
	return l.Append(other)
}

// Sum folds the elements left to right with Add, starting from 0/1.
func (l *List) Sum() (Rational, error) {
	total := FromInt(0)
	for _, item := range l.items {
		next, err := total.Add(item)
		if err != nil {
			return Rational{}, err
		}
		total = next
	}
	return total, nil
}
