package pagination

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type row struct {
	ID uint
}

// sliceStore mimics a store answering an ordered slice query with the
// size+1 probe convention.
func sliceStore(ids []uint, dir Direction, cursor *uint, size int) []row {
	sorted := append([]uint(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool {
		if dir == Ascending {
			return sorted[i] < sorted[j]
		}
		return sorted[i] > sorted[j]
	})

	var out []row
	for _, id := range sorted {
		if cursor != nil {
			if dir == Ascending && id <= *cursor {
				continue
			}
			if dir == Descending && id >= *cursor {
				continue
			}
		}
		out = append(out, row{ID: id})
		if len(out) == size+1 {
			break
		}
	}
	return out
}

func walk(t *testing.T, ids []uint, dir Direction, size int) []uint {
	t.Helper()
	var seen []uint
	var cursor *uint
	for i := 0; i < len(ids)+2; i++ {
		items, hasNext := Trim(sliceStore(ids, dir, cursor, size), size)
		page := NewPage(items, hasNext, func(r row) uint { return r.ID })
		for _, r := range page.Items {
			seen = append(seen, r.ID)
		}
		if !page.Cursor.HasNext {
			return seen
		}
		cursor = page.Cursor.NextCursor
	}
	t.Fatal("paging did not terminate")
	return nil
}

func TestPagingIsExhaustiveAndOrdered(t *testing.T) {
	ids := make([]uint, 0, 47)
	for i := uint(1); i <= 47; i++ {
		ids = append(ids, i*3)
	}

	desc := walk(t, ids, Descending, 10)
	require.Len(t, desc, len(ids))
	assert.True(t, sort.SliceIsSorted(desc, func(i, j int) bool { return desc[i] > desc[j] }))

	asc := walk(t, ids, Ascending, 7)
	require.Len(t, asc, len(ids))
	assert.True(t, sort.SliceIsSorted(asc, func(i, j int) bool { return asc[i] < asc[j] }))
}

func TestTwentyFiveCommentsInPagesOfTwenty(t *testing.T) {
	ids := make([]uint, 0, 25)
	for i := uint(1); i <= 25; i++ {
		ids = append(ids, i)
	}

	items, hasNext := Trim(sliceStore(ids, Ascending, nil, 20), 20)
	first := NewPage(items, hasNext, func(r row) uint { return r.ID })
	require.Len(t, first.Items, 20)
	assert.True(t, first.Cursor.HasNext)
	require.NotNil(t, first.Cursor.NextCursor)
	assert.Equal(t, first.Items[19].ID, *first.Cursor.NextCursor)

	items, hasNext = Trim(sliceStore(ids, Ascending, first.Cursor.NextCursor, 20), 20)
	second := NewPage(items, hasNext, func(r row) uint { return r.ID })
	assert.Len(t, second.Items, 5)
	assert.False(t, second.Cursor.HasNext)
	assert.Equal(t, uint(25), *second.Cursor.NextCursor)
}

func TestEmptyPageHasNilCursor(t *testing.T) {
	page := NewPage[row](nil, false, func(r row) uint { return r.ID })
	assert.Nil(t, page.Cursor.NextCursor)
	assert.False(t, page.Cursor.HasNext)
	assert.NotNil(t, page.Items)
}

func TestPolicyNormalize(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, DefaultPageSize, p.Normalize(0))
	assert.Equal(t, DefaultPageSize, p.Normalize(-3))
	assert.Equal(t, 10, p.Normalize(10))
	assert.Equal(t, MaxPageSize, p.Normalize(500))

	custom := Policy{DefaultSize: 5, MaxSize: 0}
	assert.Equal(t, 5, custom.Normalize(0))
	assert.Equal(t, 1000, custom.Normalize(1000))
}

func TestMapKeepsCursor(t *testing.T) {
	next := uint(3)
	page := Page[row]{Items: []row{{ID: 4}, {ID: 3}}, Cursor: Cursor{NextCursor: &next, HasNext: true}}
	mapped := Map(page, func(r row) uint { return r.ID * 10 })
	assert.Equal(t, []uint{40, 30}, mapped.Items)
	assert.Equal(t, page.Cursor, mapped.Cursor)
}

type post struct {
	ID    uint
	Title string
}

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=test dbname=test sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestScopeBuildsSliceQuery(t *testing.T) {
	db := dryRunDB(t)

	var posts []post
	stmt := db.Model(&post{}).Scopes(Scope("id", Descending, nil, 20)).Find(&posts).Statement
	sql := stmt.SQL.String()
	assert.Contains(t, sql, "ORDER BY id DESC")
	assert.Contains(t, sql, "LIMIT 21")
	assert.NotContains(t, sql, "WHERE")

	cursor := uint(100)
	stmt = db.Model(&post{}).Scopes(Scope("id", Ascending, &cursor, 5)).Find(&posts).Statement
	sql = stmt.SQL.String()
	assert.Contains(t, sql, "WHERE id > $1")
	assert.Contains(t, sql, "ORDER BY id ASC")
	assert.Contains(t, sql, "LIMIT 6")
	assert.Equal(t, []interface{}{uint(100)}, stmt.Vars)
}
