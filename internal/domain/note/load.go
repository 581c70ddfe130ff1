package note

// LoadStatus describes how a Load attempt ended.
type LoadStatus string

const (
	LoadOK          LoadStatus = "ok"
	LoadEmpty       LoadStatus = "empty"
	LoadMalformed   LoadStatus = "malformed"
	LoadUnavailable LoadStatus = "unavailable"
)

// LoadResult is the outcome of reading the store. Callers that only render
// notes use Notes, which treats every failure as an empty collection.
type LoadResult struct {
	Status LoadStatus
	Err    error
	notes  []Note
}

// Loaded builds a successful result.
func Loaded(notes []Note) LoadResult {
	return LoadResult{Status: LoadOK, notes: notes}
}

// Empty builds a result for an absent slot.
func Empty() LoadResult {
	return LoadResult{Status: LoadEmpty}
}

// Malformed builds a result for a slot whose contents could not be parsed.
func Malformed(err error) LoadResult {
	return LoadResult{Status: LoadMalformed, Err: err}
}

// Unavailable builds a result for a storage read failure.
func Unavailable(err error) LoadResult {
	return LoadResult{Status: LoadUnavailable, Err: err}
}

// Failed reports whether the store could not produce a collection.
func (r LoadResult) Failed() bool {
	return r.Status == LoadMalformed || r.Status == LoadUnavailable
}

// Notes returns the loaded collection, or an empty one for any other outcome.
func (r LoadResult) Notes() []Note {
	if r.Status != LoadOK || r.notes == nil {
		return []Note{}
	}
	out := make([]Note, len(r.notes))
	copy(out, r.notes)
	return out
}
