// Copyright © 2018 One Concern

package storage

import (
	"context"
	"io"

	"go.uber.org/zap"
)

// Instrument decorates a store to log all operations at the debug level
func Instrument(l *zap.Logger, store Store) Store {
	if l == nil {
		l = zap.NewNop()
	}
	return &instrumentedStore{
		store: store,
		l:     l.With(zap.String("store", store.String())),
	}
}

type instrumentedStore struct {
	store Store
	l     *zap.Logger
}

func (i *instrumentedStore) done(op string, err error, fields ...zap.Field) {
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	i.l.Debug("storage "+op, fields...)
}

func (i *instrumentedStore) Has(ctx context.Context, key string) (bool, error) {
	has, err := i.store.Has(ctx, key)
	i.done("has", err, zap.String("key", key), zap.Bool("has", has))
	return has, err
}

func (i *instrumentedStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	rdr, err := i.store.Get(ctx, key)
	i.done("get", err, zap.String("key", key))
	return rdr, err
}

func (i *instrumentedStore) Put(ctx context.Context, key string, rdr io.Reader, exclusive bool) error {
	err := i.store.Put(ctx, key, rdr, exclusive)
	i.done("put", err, zap.String("key", key), zap.Bool("exclusive", exclusive))
	return err
}

func (i *instrumentedStore) Delete(ctx context.Context, key string) error {
	err := i.store.Delete(ctx, key)
	i.done("delete", err, zap.String("key", key))
	return err
}

func (i *instrumentedStore) Keys(ctx context.Context) ([]string, error) {
	keys, err := i.store.Keys(ctx)
	i.done("keys", err, zap.Int("count", len(keys)))
	return keys, err
}

func (i *instrumentedStore) KeysPrefix(ctx context.Context, token, prefix, delimiter string, count int) ([]string, string, error) {
	keys, next, err := i.store.KeysPrefix(ctx, token, prefix, delimiter, count)
	i.done("keys with prefix", err, zap.String("prefix", prefix), zap.Int("count", len(keys)))
	return keys, next, err
}

func (i *instrumentedStore) Clear(ctx context.Context) error {
	err := i.store.Clear(ctx)
	i.done("clear", err)
	return err
}

func (i *instrumentedStore) String() string {
	return i.store.String()
}
