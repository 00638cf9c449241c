package store

import "github.com/TonCerques/alugaki/model"

// A migration upgrades the dataset to one schema revision. apply must be
// idempotent and reports whether it changed anything.
type migration struct {
	version int
	name    string
	apply   func(ds *model.Dataset) bool
}

var migrations = []migration{
	{1, "seed canonical accounts and starter catalog", seedCanonical},
	{2, "reassign deprecated demo owner", reassignDemoOwner},
}

// Migrate applies pending revisions in order and records the resulting
// version. Returns true when the dataset needs to be persisted.
func Migrate(ds *model.Dataset) bool {
	changed := false
	for _, m := range migrations {
		if ds.SchemaVersion >= m.version {
			continue
		}
		m.apply(ds)
		ds.SchemaVersion = m.version
		changed = true
	}
	return changed
}

// SchemaVersion is the revision a fully migrated dataset carries.
func SchemaVersion() int {
	return migrations[len(migrations)-1].version
}

func reassignDemoOwner(ds *model.Dataset) bool {
	changed := false
	for i := range ds.Items {
		if ds.Items[i].OwnerID == DeprecatedOwnerID {
			ds.Items[i].OwnerID = CanonicalOwnerID
			changed = true
		}
	}
	return changed
}
