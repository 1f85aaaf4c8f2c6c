package inmemdb

import (
	"sync"

	"github.com/iwneis/neishelper/core/checklist"
)

type (
	// DB keeps every table in memory; used by tests and the "memory" database engine.
	DB struct {
		checklist *checklistTable
	}

	checklistTable struct {
		mutex sync.RWMutex
		table map[string]checklist.Record
	}
)

func Open() *DB {
	return &DB{
		checklist: &checklistTable{table: make(map[string]checklist.Record)},
	}
}
