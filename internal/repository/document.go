package repository

import (
	"fmt"
	"os"
	"sync"

	applogger "CardPulse/pkg/logger"

	"github.com/tidwall/gjson"
)

// lazy holds a value loaded on first use and kept until reset.
// A failed load is logged and replaced by the zero value.
type lazy[T any] struct {
	mu     sync.Mutex
	loaded bool
	val    T
}

func (l *lazy[T]) get(load func() (T, error), log *applogger.Logger, what string) T {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded {
		return l.val
	}
	v, err := load()
	if err != nil {
		log.Error("load failed, continuing empty", applogger.String("document", what), applogger.Error(err))
		var zero T
		v = zero
	}
	l.val = v
	l.loaded = true
	return l.val
}

func (l *lazy[T]) reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	var zero T
	l.val = zero
	l.loaded = false
}

// readDocument reads a JSON file and checks it parses.
func readDocument(path string) (gjson.Result, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	if !gjson.ValidBytes(b) {
		return gjson.Result{}, fmt.Errorf("parse %s: invalid json", path)
	}
	return gjson.ParseBytes(b), nil
}

// keyed is a JSON object flattened to keys in document order.
type keyed struct {
	keys   []string
	values []gjson.Result
}

func keyedObject(doc gjson.Result) keyed {
	var k keyed
	doc.ForEach(func(key, value gjson.Result) bool {
		k.keys = append(k.keys, key.String())
		k.values = append(k.values, value)
		return true
	})
	return k
}
