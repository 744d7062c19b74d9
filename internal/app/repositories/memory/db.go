// Package memory provides in-process stores used by tests and by the "memory" database
// driver. All tables share one lock, so multi-table operations are atomic.
package memory

import (
	"sync"
	"time"

	"github.com/yigit/uniactivity/internal/app/models"
)

type (
	// DB holds every table of the in-memory storage
	DB struct {
		sync.RWMutex
		users       table[models.User]
		classes     table[models.Class]
		assistances table[models.Assistance]
		now         func() time.Time
	}

	// table keeps rows by id and remembers insertion order
	table[T any] struct {
		rows  map[string]*T
		order []string
	}
)

// Open creates an empty database
func Open() *DB {
	return &DB{
		users:       newTable[models.User](),
		classes:     newTable[models.Class](),
		assistances: newTable[models.Assistance](),
		now:         time.Now,
	}
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[string]*T)}
}

func (t *table[T]) insert(id string, row *T) {
	t.rows[id] = row
	t.order = append(t.order, id)
}

func (t *table[T]) remove(id string) {
	if _, ok := t.rows[id]; !ok {
		return
	}
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// each visits rows in insertion order until fn returns false
func (t *table[T]) each(fn func(row *T) bool) {
	for _, id := range t.order {
		if !fn(t.rows[id]) {
			return
		}
	}
}
