package cli

import (
	"github.com/roach88/dtslog/internal/record"
	"github.com/roach88/dtslog/internal/store"
)

// openStore opens the database from the global --db flag and wraps its
// default slot in a Store. The returned cleanup closes the database.
func openStore(opts *RootOptions) (*store.Store, func(), error) {
	db, err := store.Open(opts.Database)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return store.New(db.Slot(store.DefaultSlot)), func() { db.Close() }, nil
}

// parseView maps the --view flag onto a Kind, rejecting anything that is
// neither forward nor received (unlike imports, the flag is explicit user
// input and a typo should not silently become "forward").
func parseView(s string) (record.Kind, error) {
	k := record.Kind(s)
	if !k.Valid() {
		return "", NewExitError(ExitCommandError, "invalid view "+s+": must be forward or received")
	}
	return k, nil
}
