package model

import (
	"bytes"
	"encoding/json"
	"path"
	"strings"
)

// FileRefKind discriminates the FileRef variant.
type FileRefKind int

const (
	// FileRefEmpty means no document is attached or stored.
	FileRefEmpty FileRefKind = iota
	// FileRefRemote references a previously persisted document by URL.
	FileRefRemote
	// FileRefPending carries a new binary payload awaiting upload. A pending
	// ref may still remember the remote URL it is about to replace.
	FileRefPending
)

// FileRef is a tagged variant over the three document states so the "has a
// new file to upload" check is exhaustive instead of a truthiness probe.
// Construct values through EmptyFile, RemoteFile, or PendingFile.
type FileRef struct {
	kind FileRefKind
	url  string
	name string
	ext  string
	data []byte
}

// EmptyFile returns the zero document ref.
func EmptyFile() FileRef { return FileRef{} }

// RemoteFile references an already stored document.
func RemoteFile(url, name, ext string) FileRef {
	if strings.TrimSpace(url) == "" {
		return FileRef{}
	}
	return FileRef{kind: FileRefRemote, url: url, name: name, ext: normalizeExt(ext, name)}
}

// PendingFile wraps a freshly selected binary payload.
func PendingFile(name string, data []byte) FileRef {
	if len(data) == 0 {
		return FileRef{}
	}
	return FileRef{kind: FileRefPending, name: name, ext: normalizeExt("", name), data: data}
}

// Replace returns a pending ref carrying the new payload while retaining the
// receiver's remote URL, matching the transient old-url-plus-new-file state
// the edit flow goes through before submission.
func (f FileRef) Replace(name string, data []byte) FileRef {
	next := PendingFile(name, data)
	if next.kind == FileRefPending {
		next.url = f.url
	}
	return next
}

func (f FileRef) Kind() FileRefKind { return f.kind }
func (f FileRef) URL() string       { return f.url }
func (f FileRef) Name() string      { return f.name }
func (f FileRef) Ext() string       { return f.ext }

// Data returns the pending binary payload, nil otherwise.
func (f FileRef) Data() []byte {
	if f.kind != FileRefPending {
		return nil
	}
	return f.data
}

// Equal reports whether two refs describe the same document state, byte
// payload included.
func (f FileRef) Equal(other FileRef) bool {
	return f.kind == other.kind &&
		f.url == other.url &&
		f.name == other.name &&
		f.ext == other.ext &&
		bytes.Equal(f.data, other.data)
}

// IsEmpty reports whether nothing is attached or stored.
func (f FileRef) IsEmpty() bool { return f.kind == FileRefEmpty }

// HasUpload reports whether the ref contributes a binary part on submission.
func (f FileRef) HasUpload() bool { return f.kind == FileRefPending }

type fileRefJSON struct {
	URL     string `json:"url,omitempty"`
	Name    string `json:"name,omitempty"`
	Ext     string `json:"ext,omitempty"`
	Pending bool   `json:"pending,omitempty"`
}

// MarshalJSON emits the descriptor without the binary payload.
func (f FileRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(fileRefJSON{
		URL:     f.url,
		Name:    f.name,
		Ext:     f.ext,
		Pending: f.kind == FileRefPending,
	})
}

// UnmarshalJSON restores a remote or empty ref. Pending payloads never round
// trip through JSON; they only exist in memory between selection and submit.
func (f *FileRef) UnmarshalJSON(data []byte) error {
	var raw fileRefJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = RemoteFile(raw.URL, raw.Name, raw.Ext)
	return nil
}

func normalizeExt(ext, name string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if trimmed != "" {
		return strings.ToLower(trimmed)
	}
	fromName := strings.TrimPrefix(path.Ext(name), ".")
	return strings.ToLower(fromName)
}
