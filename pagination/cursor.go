// Package pagination implements id-keyed cursor paging over ordered slices.
//
// A page query asks the store for size+1 rows. The extra row is only a
// probe telling whether more rows exist; it is never returned to the caller,
// so no separate count query is needed.
package pagination

import (
	"fmt"

	"gorm.io/gorm"
)

type Direction int

const (
	// Descending reads newest first and continues with id < cursor.
	Descending Direction = iota
	// Ascending reads oldest first and continues with id > cursor.
	Ascending
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 50
)

// Cursor is the continuation part of a page response.
type Cursor struct {
	NextCursor *uint `json:"nextCursor"`
	HasNext    bool  `json:"hasNext"`
}

type Page[T any] struct {
	Items  []T
	Cursor Cursor
}

// Policy bounds caller supplied page sizes.
type Policy struct {
	DefaultSize int
	MaxSize     int
}

func DefaultPolicy() Policy {
	return Policy{DefaultSize: DefaultPageSize, MaxSize: MaxPageSize}
}

// Normalize maps non-positive sizes to the default and clamps to the maximum.
func (p Policy) Normalize(size int) int {
	def := p.DefaultSize
	if def <= 0 {
		def = DefaultPageSize
	}
	if size <= 0 {
		size = def
	}
	if p.MaxSize > 0 && size > p.MaxSize {
		size = p.MaxSize
	}
	return size
}

// Scope orders by column in dir, skips everything up to and including
// cursor, and fetches one probe row past size.
func Scope(column string, dir Direction, cursor *uint, size int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch dir {
		case Ascending:
			if cursor != nil {
				db = db.Where(fmt.Sprintf("%s > ?", column), *cursor)
			}
			db = db.Order(fmt.Sprintf("%s ASC", column))
		default:
			if cursor != nil {
				db = db.Where(fmt.Sprintf("%s < ?", column), *cursor)
			}
			db = db.Order(fmt.Sprintf("%s DESC", column))
		}
		return db.Limit(size + 1)
	}
}

// Trim drops the probe row and reports whether it was present.
func Trim[T any](rows []T, size int) ([]T, bool) {
	if len(rows) > size {
		return rows[:size], true
	}
	return rows, false
}

// NewPage builds the page for items, using the id of the last item as the
// next cursor. An empty page has a nil cursor.
func NewPage[T any](items []T, hasNext bool, idOf func(T) uint) Page[T] {
	page := Page[T]{Items: items, Cursor: Cursor{HasNext: hasNext}}
	if len(items) > 0 {
		last := idOf(items[len(items)-1])
		page.Cursor.NextCursor = &last
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return page
}

// Map converts the items of a page while keeping its cursor.
func Map[T, R any](page Page[T], fn func(T) R) Page[R] {
	out := make([]R, 0, len(page.Items))
	for _, item := range page.Items {
		out = append(out, fn(item))
	}
	return Page[R]{Items: out, Cursor: page.Cursor}
}
