package indexer

import (
	"strings"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/singleflight"

	"github.com/usestring/ghspec/pkg/apispec"
)

// Indexer maintains in-memory indexes over document entries using Roaring
// bitmaps. Document IDs follow document order: REST endpoints, then GraphQL
// endpoints, then commands.
type Indexer struct {
	mu sync.RWMutex

	path         string
	stamp        fileStamp
	refreshGroup singleflight.Group

	docs       []*EntryMeta
	lastSyncAt time.Time

	// Inverted indexes
	idxKind   map[string]*roaring.Bitmap
	idxMethod map[string]*roaring.Bitmap
	idxName   map[string]*roaring.Bitmap // tokens of entry names
	idxToken  map[string]*roaring.Bitmap // tokens of targets and descriptions
	idxField  map[string]*roaring.Bitmap // tokens of property paths
}

// New creates an Indexer for the document at path. It is empty until the
// first Refresh.
func New(path string) *Indexer {
	idx := &Indexer{path: path}
	idx.reset()
	return idx
}

// NewFromDocument creates an Indexer already built from doc.
func NewFromDocument(doc *apispec.Document) *Indexer {
	idx := &Indexer{}
	idx.Build(doc)
	return idx
}

func (idx *Indexer) reset() {
	idx.docs = make([]*EntryMeta, 0, 64)
	idx.idxKind = make(map[string]*roaring.Bitmap)
	idx.idxMethod = make(map[string]*roaring.Bitmap)
	idx.idxName = make(map[string]*roaring.Bitmap)
	idx.idxToken = make(map[string]*roaring.Bitmap)
	idx.idxField = make(map[string]*roaring.Bitmap)
}

// Build replaces the index contents with the entries of doc.
func (idx *Indexer) Build(doc *apispec.Document) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.reset()
	for _, kind := range apispec.APIKinds {
		eps := doc.Endpoints(kind)
		if eps == nil {
			continue
		}
		for pair := eps.Oldest(); pair != nil; pair = pair.Next() {
			idx.add(fromEndpoint(kind, pair.Key, pair.Value))
		}
	}
	if cmds := doc.Commands(); cmds != nil {
		for pair := cmds.Oldest(); pair != nil; pair = pair.Next() {
			idx.add(fromCommand(pair.Key, pair.Value))
		}
	}
	idx.lastSyncAt = time.Now()
}

// add indexes meta. Caller must hold the write lock.
func (idx *Indexer) add(meta *EntryMeta) {
	docID := uint32(len(idx.docs))
	meta.DocID = docID
	idx.docs = append(idx.docs, meta)

	addToBitmap(idx.idxKind, meta.Kind, docID)
	if meta.Method != "" {
		addToBitmap(idx.idxMethod, strings.ToUpper(meta.Method), docID)
	}
	for _, t := range Tokenize(meta.Name) {
		addToBitmap(idx.idxName, t, docID)
	}
	for _, t := range TokenizeAll(meta.Target, meta.Description) {
		addToBitmap(idx.idxToken, t, docID)
	}
	for _, t := range TokenizeAll(meta.Fields...) {
		addToBitmap(idx.idxField, t, docID)
	}
}

// GetMeta returns metadata for a document ID.
func (idx *Indexer) GetMeta(docID uint32) *EntryMeta {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if int(docID) >= len(idx.docs) {
		return nil
	}
	return idx.docs[docID]
}

// AllDocIDs returns a bitmap of every indexed entry.
func (idx *Indexer) AllDocIDs() *roaring.Bitmap {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	bm := roaring.New()
	if n := len(idx.docs); n > 0 {
		bm.AddRange(0, uint64(n))
	}
	return bm
}

// DocCount returns the number of indexed entries.
func (idx *Indexer) DocCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.docs)
}

// LastSyncTime returns when the index was last built.
func (idx *Indexer) LastSyncTime() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.lastSyncAt
}

// GetBitmapForKind returns entries of one kind: "rest", "graphql" or "cli".
func (idx *Indexer) GetBitmapForKind(kind string) *roaring.Bitmap {
	return idx.lookup(idx.idxKind, strings.ToLower(kind))
}

// GetBitmapForMethod returns endpoints declared with the HTTP method.
func (idx *Indexer) GetBitmapForMethod(method string) *roaring.Bitmap {
	return idx.lookup(idx.idxMethod, strings.ToUpper(method))
}

// GetBitmapForNameToken returns entries whose name contains the token.
func (idx *Indexer) GetBitmapForNameToken(token string) *roaring.Bitmap {
	return idx.lookup(idx.idxName, token)
}

// GetBitmapForToken returns entries whose target or description contains the
// token.
func (idx *Indexer) GetBitmapForToken(token string) *roaring.Bitmap {
	return idx.lookup(idx.idxToken, token)
}

// GetBitmapForFieldToken returns entries whose schema declares a property
// path containing the token.
func (idx *Indexer) GetBitmapForFieldToken(token string) *roaring.Bitmap {
	return idx.lookup(idx.idxField, token)
}

// lookup returns a copy so callers can combine bitmaps freely.
func (idx *Indexer) lookup(index map[string]*roaring.Bitmap, key string) *roaring.Bitmap {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if bm, ok := index[key]; ok {
		return bm.Clone()
	}
	return nil
}

func addToBitmap(index map[string]*roaring.Bitmap, key string, docID uint32) {
	bm, ok := index[key]
	if !ok {
		bm = roaring.New()
		index[key] = bm
	}
	bm.Add(docID)
}
