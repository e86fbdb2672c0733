package persist

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/realmcore/server/internal/spell"
)

// SpellRepo stores the spells each character has learned.
type SpellRepo struct {
	db *DB
}

func NewSpellRepo(db *DB) *SpellRepo {
	return &SpellRepo{db: db}
}

func (r *SpellRepo) LoadByChar(ctx context.Context, charID uint32) ([]spell.ID, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT spell_id FROM character_spells WHERE char_id = $1 ORDER BY spell_id`, int64(charID),
	)
	if err != nil {
		return nil, fmt.Errorf("query spells of %d: %w", charID, err)
	}
	ids, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (spell.ID, error) {
		var id int32
		err := row.Scan(&id)
		return spell.ID(id), err
	})
	if err != nil {
		return nil, fmt.Errorf("scan spells of %d: %w", charID, err)
	}
	return ids, nil
}

// Add stores learned spells. Spells already stored are left alone.
func (r *SpellRepo) Add(ctx context.Context, charID uint32, ids ...spell.ID) error {
	if len(ids) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, id := range ids {
		batch.Queue(
			`INSERT INTO character_spells (char_id, spell_id) VALUES ($1, $2)
			 ON CONFLICT (char_id, spell_id) DO NOTHING`,
			int64(charID), int32(id),
		)
	}
	if err := r.db.Pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("add spells of %d: %w", charID, err)
	}
	return nil
}

func (r *SpellRepo) Remove(ctx context.Context, charID uint32, id spell.ID) error {
	if _, err := r.db.Pool.Exec(ctx,
		`DELETE FROM character_spells WHERE char_id = $1 AND spell_id = $2`, int64(charID), int32(id),
	); err != nil {
		return fmt.Errorf("remove spell %d of %d: %w", id, charID, err)
	}
	return nil
}
