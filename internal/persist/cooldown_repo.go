package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/realmcore/server/internal/spell"
)

// CooldownRow is one stored cooldown. SpellID is zero for category
// cooldowns and Category is zero for spell cooldowns.
type CooldownRow struct {
	CharID   int64
	SpellID  int32
	Category int32
	Until    time.Time
}

// CooldownRepo stores player spell cooldowns. It implements
// spell.CooldownStore.
type CooldownRepo struct {
	db  *DB
	now func() time.Time
}

var _ spell.CooldownStore = (*CooldownRepo)(nil)

func NewCooldownRepo(db *DB) *CooldownRepo {
	return &CooldownRepo{db: db, now: time.Now}
}

// LoadByChar returns the cooldowns of a character that have not run out.
func (r *CooldownRepo) LoadByChar(ctx context.Context, charID int64) ([]CooldownRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT char_id, spell_id, category, until
		 FROM spell_cooldowns
		 WHERE char_id = $1 AND until > $2
		 ORDER BY spell_id, category`, charID, r.now(),
	)
	if err != nil {
		return nil, fmt.Errorf("query cooldowns of %d: %w", charID, err)
	}
	defer rows.Close()

	var result []CooldownRow
	for rows.Next() {
		var c CooldownRow
		if err := rows.Scan(&c.CharID, &c.SpellID, &c.Category, &c.Until); err != nil {
			return nil, fmt.Errorf("scan cooldown: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// Save replaces every stored cooldown of the character in one transaction.
func (r *CooldownRepo) Save(ctx context.Context, charID int64, cds []CooldownRow) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("cooldowns begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM spell_cooldowns WHERE char_id = $1`, charID); err != nil {
		return fmt.Errorf("clear cooldowns of %d: %w", charID, err)
	}
	if len(cds) > 0 {
		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"spell_cooldowns"},
			[]string{"char_id", "spell_id", "category", "until"},
			pgx.CopyFromSlice(len(cds), func(i int) ([]any, error) {
				c := cds[i]
				return []any{charID, c.SpellID, c.Category, c.Until}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("copy cooldowns of %d: %w", charID, err)
		}
	}
	return tx.Commit(ctx)
}

// DeleteExpired removes cooldowns that ran out before the given time and
// returns how many were removed.
func (r *CooldownRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM spell_cooldowns WHERE until <= $1`, before)
	if err != nil {
		return 0, fmt.Errorf("delete expired cooldowns: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *CooldownRepo) LoadCooldowns(ctx context.Context, charID uint32) ([]spell.Cooldown, error) {
	rows, err := r.LoadByChar(ctx, int64(charID))
	if err != nil {
		return nil, err
	}
	return cooldownsFromRows(rows), nil
}

func (r *CooldownRepo) SaveCooldowns(ctx context.Context, charID uint32, cds []spell.Cooldown) error {
	return r.Save(ctx, int64(charID), cooldownRows(int64(charID), cds))
}

func cooldownRows(charID int64, cds []spell.Cooldown) []CooldownRow {
	out := make([]CooldownRow, 0, len(cds))
	for _, cd := range cds {
		out = append(out, CooldownRow{
			CharID:   charID,
			SpellID:  int32(cd.SpellID),
			Category: int32(cd.Category),
			Until:    cd.Until.UTC(),
		})
	}
	return out
}

func cooldownsFromRows(rows []CooldownRow) []spell.Cooldown {
	out := make([]spell.Cooldown, 0, len(rows))
	for _, r := range rows {
		out = append(out, spell.Cooldown{
			SpellID:  spell.ID(r.SpellID),
			Category: uint32(r.Category),
			Until:    r.Until,
		})
	}
	return out
}
