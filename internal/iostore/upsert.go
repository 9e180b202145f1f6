package iostore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mtgtools/deckconv/pkg/carddb"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ApplyBatch validates payload and applies it in a single transaction,
// upserting in foreign-key order: sets first, then the card, then its
// printings. Any invariant violation, from a malformed UUID to a unique
// or foreign-key constraint, rolls the whole batch back; a partially
// synced card never satisfies a later lookup.
func (s *Store) ApplyBatch(
	ctx context.Context, payload *carddb.CardPayload,
) error {
	if err := payload.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("apply batch for %q: %w", payload.Name, err)
	}
	defer tx.Rollback()

	for i := range payload.Printings {
		if err = upsertSetTx(ctx, tx, &payload.Printings[i]); err != nil {
			return err
		}
	}
	if err = upsertCardTx(ctx, tx, payload); err != nil {
		return err
	}
	for i := range payload.Printings {
		err = upsertPrintingTx(ctx, tx, payload.OracleID, &payload.Printings[i])
		if err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return storeErr("apply batch for "+payload.Name, err)
	}
	return nil
}

// UpsertSet inserts or updates a single set row keyed by its unique
// abbreviation.
func (s *Store) UpsertSet(
	ctx context.Context, pr *carddb.PrintingPayload,
) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return upsertSetTx(ctx, tx, pr)
	})
}

// UpsertCard inserts or updates a single card row keyed by its oracle
// UUID.
func (s *Store) UpsertCard(
	ctx context.Context, payload *carddb.CardPayload,
) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return upsertCardTx(ctx, tx, payload)
	})
}

// UpsertPrinting inserts or updates a single printing row keyed by its
// Scryfall UUID. The referenced card and set must already exist.
func (s *Store) UpsertPrinting(
	ctx context.Context, oracleID string, pr *carddb.PrintingPayload,
) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return upsertPrintingTx(ctx, tx, oracleID, pr)
	})
}

func (s *Store) inTx(
	ctx context.Context, fn func(tx *sql.Tx) error,
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return storeErr("commit", err)
	}
	return nil
}

func upsertSetTx(
	ctx context.Context, tx *sql.Tx, pr *carddb.PrintingPayload,
) error {
	_, err := tx.ExecContext(ctx, `
INSERT INTO card_sets (name, abbreviation, released_at, paper_legal)
VALUES (?, ?, ?, ?)
ON CONFLICT (abbreviation) DO UPDATE SET
    name = excluded.name,
    released_at = excluded.released_at,
    paper_legal = excluded.paper_legal`,
		pr.SetName, strings.ToLower(pr.SetAbbreviation),
		pr.ReleasedAt, pr.PaperLegal)
	if err != nil {
		return storeErr("upsert set "+pr.SetAbbreviation, err)
	}
	return nil
}

func upsertCardTx(
	ctx context.Context, tx *sql.Tx, payload *carddb.CardPayload,
) error {
	_, err := tx.ExecContext(ctx, `
INSERT INTO cards (name, card_type, oracle_id)
VALUES (?, ?, ?)
ON CONFLICT (oracle_id) DO UPDATE SET
    name = excluded.name,
    card_type = excluded.card_type`,
		payload.Name, payload.CardType, payload.OracleID)
	if err != nil {
		return storeErr("upsert card "+payload.Name, err)
	}
	return nil
}

func upsertPrintingTx(
	ctx context.Context, tx *sql.Tx,
	oracleID string, pr *carddb.PrintingPayload,
) error {
	cardID, err := rowID(ctx, tx,
		"SELECT id FROM cards WHERE oracle_id = ?", oracleID)
	if err != nil {
		return carddb.IntegrityError(
			"printing "+pr.ScryfallID+" references missing card "+oracleID, err)
	}
	setID, err := rowID(ctx, tx,
		"SELECT id FROM card_sets WHERE abbreviation = ?",
		strings.ToLower(pr.SetAbbreviation))
	if err != nil {
		return carddb.IntegrityError(
			"printing "+pr.ScryfallID+" references missing set "+
				pr.SetAbbreviation, err)
	}
	rarityID, err := rowID(ctx, tx,
		"SELECT id FROM rarities WHERE name = ?", string(pr.Rarity))
	if err != nil {
		return carddb.IntegrityError(
			"printing "+pr.ScryfallID+" references unknown rarity "+
				string(pr.Rarity), err)
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO printings
    (card_id, set_id, collector_number, rarity_id, scryfall_id)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (scryfall_id) DO UPDATE SET
    card_id = excluded.card_id,
    set_id = excluded.set_id,
    collector_number = excluded.collector_number,
    rarity_id = excluded.rarity_id`,
		cardID, setID, pr.CollectorNumber, rarityID, pr.ScryfallID)
	if err != nil {
		return storeErr("upsert printing "+pr.ScryfallID, err)
	}
	return nil
}

func rowID(
	ctx context.Context, tx *sql.Tx, query string, args ...any,
) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, query, args...).Scan(&id)
	return id, err
}

// storeErr maps SQLite constraint failures to the IntegrityViolation
// failure kind; everything else is wrapped as-is.
func storeErr(op string, err error) error {
	var serr *sqlite.Error
	if errors.As(err, &serr) &&
		serr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return carddb.IntegrityError(op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
