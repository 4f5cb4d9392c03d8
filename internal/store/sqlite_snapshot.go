package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"go.uber.org/zap"
)

// sqliteSnapshotStore keeps the snapshot blob in the session_snapshots table.
type sqliteSnapshotStore struct {
	db     *sql.DB
	key    string
	logger *zap.Logger
}

func (s *sqliteSnapshotStore) Load(ctx context.Context) (*SessionSnapshot, error) {
	t := entsql.Table(snapshotTable.Name)
	query, args := builder().Select(t.C("data")).
		From(t).
		Where(entsql.EQ(t.C("snapshot_key"), s.key)).
		Query()

	var data string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable("load snapshot", err)
	}
	return decodeOrDiscard([]byte(data), s.logger, s.key)
}

func (s *sqliteSnapshotStore) Save(ctx context.Context, snap *SessionSnapshot) error {
	b, err := EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	query, args := builder().Insert(snapshotTable.Name).
		Columns("snapshot_key", "data", "updated_at_ms").
		Values(s.key, string(b), time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("snapshot_key"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return unavailable("save snapshot", err)
	}
	return nil
}

func (s *sqliteSnapshotStore) Clear(ctx context.Context) error {
	query, args := builder().Delete(snapshotTable.Name).
		Where(entsql.EQ("snapshot_key", s.key)).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return unavailable("clear snapshot", err)
	}
	return nil
}

// decodeOrDiscard decodes a stored blob, treating a corrupt one as absent.
func decodeOrDiscard(data []byte, logger *zap.Logger, key string) (*SessionSnapshot, error) {
	snap, err := DecodeSnapshot(data)
	if errors.Is(err, ErrCorrupt) {
		logger.Warn("discarding corrupt snapshot",
			zap.String("key", key),
			zap.Int("bytes", len(data)),
			zap.Error(err),
		)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}
