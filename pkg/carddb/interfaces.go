package carddb

import "context"

// Store is the read/write contract of the local card database. The
// store exclusively owns all persisted rows; the resolver only reads,
// and writes are routed through the SourceAdapter as whole payloads.
type Store interface {
	// LookupPrinting returns every printing whose card name matches name
	// exactly (case-sensitive, as stored), narrowed conjunctively by any
	// supplied hints. Zero, one or many rows may match.
	LookupPrinting(
		ctx context.Context, name string, hints Hints,
	) ([]PrintingRecord, error)

	// ApplyBatch validates payload and applies it in one transaction,
	// upserting in foreign-key order: sets, then the card, then its
	// printings. Any invariant violation rolls the whole batch back.
	ApplyBatch(ctx context.Context, payload *CardPayload) error

	// Version returns the persisted schema version.
	Version(ctx context.Context) (int, error)

	Close() error
}

// SourceAdapter fetches card data from the external source of truth and
// syncs it into the Store. Rate limits, timeouts and endpoints are
// explicit adapter configuration, never ambient state, so the resolver
// and store stay independently testable with a fake adapter.
type SourceAdapter interface {
	// FetchCardByName queries the remote API for the exact card name,
	// forwarding hints as additional filters. Names are not unique
	// across oracle identities, so results come back as one normalized
	// payload per oracle ID, ordered as the source reports them. Zero
	// remote matches are a NotFound failure; transport-level problems
	// are SourceUnavailable.
	FetchCardByName(
		ctx context.Context, name string, hints Hints,
	) ([]*CardPayload, error)

	// Sync applies a fetched payload to the store.
	Sync(ctx context.Context, payload *CardPayload) error
}

// Resolver maps a human-entered card name plus optional hints to exactly
// one printing. It is the sole entry point deck-format readers call.
type Resolver interface {
	Resolve(
		ctx context.Context, name string, hints Hints,
	) (*PrintingRecord, error)
}
