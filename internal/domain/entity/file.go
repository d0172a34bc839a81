package entity

// FileContent is the raw result of an authenticated fetch from the backing
// object store, before it is wrapped into a delivery handle.
type FileContent struct {
	Data        []byte
	ContentType string
	Size        int64
}
