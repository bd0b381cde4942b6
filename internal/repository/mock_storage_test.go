package repository

import (
	"context"

	"gorm.io/gorm"
)

// ── Mock StorageRepository ──

type mockStorage struct {
	docs map[string][]byte
	err  error // returned by every method when set
}

func newMockStorage() *mockStorage {
	return &mockStorage{docs: make(map[string][]byte)}
}

func (m *mockStorage) Get(_ context.Context, key string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	if doc, ok := m.docs[key]; ok {
		return doc, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStorage) Set(_ context.Context, key string, value []byte) error {
	if m.err != nil {
		return m.err
	}
	m.docs[key] = append([]byte(nil), value...)
	return nil
}

func (m *mockStorage) Delete(_ context.Context, key string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.docs, key)
	return nil
}
