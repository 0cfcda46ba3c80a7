package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"

	"github.com/dmitrijs2005/filemeta/internal/common"
	"github.com/dmitrijs2005/filemeta/internal/dbx"
	"github.com/dmitrijs2005/filemeta/internal/logging"
	"github.com/dmitrijs2005/filemeta/internal/server/events"
	"github.com/dmitrijs2005/filemeta/internal/server/models"
	"github.com/dmitrijs2005/filemeta/internal/server/repositories/files"
	"github.com/dmitrijs2005/filemeta/internal/server/repositories/quotas"
	"github.com/dmitrijs2005/filemeta/internal/server/repositories/uploads"
)

// --- logger ---

type logEntry struct {
	level string
	msg   string
	args  []any
}

type recLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recLogger) add(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, args: args})
}

func (l *recLogger) Debug(_ context.Context, msg string, args ...any) { l.add("debug", msg, args) }
func (l *recLogger) Info(_ context.Context, msg string, args ...any)  { l.add("info", msg, args) }
func (l *recLogger) Warn(_ context.Context, msg string, args ...any)  { l.add("warn", msg, args) }
func (l *recLogger) Error(_ context.Context, msg string, args ...any) { l.add("error", msg, args) }
func (l *recLogger) With(args ...any) logging.Logger                  { return l }

func (l *recLogger) find(level, msg string) (logEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.level == level && e.msg == msg {
			return e, true
		}
	}
	return logEntry{}, false
}

// --- transactor ---

// passTx runs fn directly; the in-memory store has no rollback.
type passTx struct{}

func (passTx) Conn() dbx.DBTX { return nil }
func (passTx) WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	return fn(ctx, nil)
}

// --- events ---

type recPublisher struct {
	mu   sync.Mutex
	sent []events.Event
	err  error
}

func (p *recPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, e)
	return nil
}

func (p *recPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, len(p.sent))
	for i, e := range p.sent {
		out[i] = e.Type
	}
	return out
}

// --- cache ---

// mapCache mirrors RedisFileCache: invalidated ids stay uncacheable.
type mapCache struct {
	mu          sync.Mutex
	data        map[string]models.File
	tombstones  map[string]bool
	invalidated []string
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string]models.File{}, tombstones: map[string]bool{}}
}

func (c *mapCache) Get(_ context.Context, id string) (*models.File, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.data[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &f, nil
}

func (c *mapCache) Set(_ context.Context, f *models.File) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[f.ID]; ok || c.tombstones[f.ID] {
		return nil
	}
	c.data[f.ID] = *f
	return nil
}

func (c *mapCache) Invalidate(_ context.Context, ids ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		delete(c.data, id)
		c.tombstones[id] = true
	}
	c.invalidated = append(c.invalidated, ids...)
	return nil
}

// --- blobs ---

type recBlobs struct {
	aborted []string
	err     error
}

func (b *recBlobs) AbortMultipartUpload(_ context.Context, bucket, key, uploadID string) error {
	b.aborted = append(b.aborted, uploadID)
	return b.err
}

// --- in-memory store ---

type memStore struct {
	mu      sync.Mutex
	quotas  map[string]models.Quota
	files   map[string]models.File
	uploads map[string]models.Upload

	// deletion order of MarkDeleted
	deletedOrder []string
	// owners passed to LockOwner, in order
	locked []string

	casCalls int
	// failRelease makes every negative CAS fail with errRelease.
	failRelease bool
	// alwaysConflict makes every CAS report a lost race.
	alwaysConflict bool
}

func newMemStore() *memStore {
	return &memStore{
		quotas:  map[string]models.Quota{},
		files:   map[string]models.File{},
		uploads: map[string]models.Upload{},
	}
}

type memQuotas struct{ s *memStore }

func (r memQuotas) Get(_ context.Context, ownerID string) (*models.Quota, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.quotas[ownerID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &q, nil
}

func (r memQuotas) Insert(_ context.Context, q *models.Quota) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.quotas[q.OwnerID]; ok {
		return false, nil
	}
	r.s.quotas[q.OwnerID] = *q
	return true, nil
}

var errRelease = errors.New("connection lost")

func (r memQuotas) CompareAndSwapUsed(_ context.Context, ownerID string, oldUsed, newUsed uint64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.casCalls++
	if r.s.failRelease && newUsed < oldUsed {
		return false, errRelease
	}
	if r.s.alwaysConflict {
		return false, nil
	}
	q, ok := r.s.quotas[ownerID]
	if !ok || q.Used != oldUsed {
		return false, nil
	}
	q.Used = newUsed
	r.s.quotas[ownerID] = q
	return true, nil
}

type memFiles struct{ s *memStore }

func (r memFiles) Create(_ context.Context, f *models.File) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.files {
		if o.Deleted {
			continue
		}
		if f.IsRootFolder && o.IsRootFolder && o.OwnerID == f.OwnerID {
			return files.ErrRootFolderExists
		}
		if f.ParentID != "" && o.ParentID == f.ParentID && o.OwnerID == f.OwnerID && o.Name == f.Name {
			return common.ErrFileExistsWithSameName
		}
		if f.Key != "" && o.Key == f.Key {
			return common.ErrKeyAlreadyExists
		}
	}
	r.s.files[f.ID] = *f
	return nil
}

func (r memFiles) get(id string, includeDeleted bool) (*models.File, error) {
	f, ok := r.s.files[id]
	if !ok || (f.Deleted && !includeDeleted) {
		return nil, common.ErrorNotFound
	}
	return &f, nil
}

func (r memFiles) GetByID(_ context.Context, id string, includeDeleted bool) (*models.File, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.get(id, includeDeleted)
}

func (r memFiles) GetByKey(_ context.Context, key string) (*models.File, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.files {
		if !f.Deleted && f.Key == key {
			return &f, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memFiles) GetRoot(_ context.Context, ownerID string) (*models.File, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.files {
		if !f.Deleted && f.IsRootFolder && f.OwnerID == ownerID {
			return &f, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memFiles) FindInFolder(_ context.Context, ownerID, parentID, name string) (*models.File, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.files {
		if !f.Deleted && f.OwnerID == ownerID && f.ParentID == parentID && f.Name == name {
			return &f, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memFiles) ListByFolder(_ context.Context, parentID string, foldersOnly bool) ([]*models.File, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.File
	for _, f := range r.s.files {
		if f.Deleted || f.ParentID != parentID || (foldersOnly && !f.IsFolder()) {
			continue
		}
		out = append(out, &f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsFolder() != out[j].IsFolder() {
			return out[i].IsFolder()
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r memFiles) Update(_ context.Context, f *models.File) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, err := r.get(f.ID, false); err != nil {
		return err
	}
	r.s.files[f.ID] = *f
	return nil
}

func (r memFiles) MarkDeleted(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, err := r.get(id, false)
	if err != nil {
		return err
	}
	f.Deleted = true
	r.s.files[id] = *f
	r.s.deletedOrder = append(r.s.deletedOrder, id)
	return nil
}

func (r memFiles) IsAncestor(_ context.Context, ancestorID, nodeID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id := nodeID; id != ""; {
		if id == ancestorID {
			return true, nil
		}
		f, ok := r.s.files[id]
		if !ok {
			break
		}
		id = f.ParentID
	}
	return false, nil
}

func (r memFiles) LockOwner(_ context.Context, ownerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.locked = append(r.s.locked, ownerID)
	return nil
}

type memUploads struct{ s *memStore }

func (r memUploads) Create(_ context.Context, u *models.Upload) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.uploads {
		if o.Key == u.Key && o.Bucket == u.Bucket {
			return common.ErrKeyAlreadyExists
		}
		if !u.IsUpdate && !o.IsUpdate && o.OwnerID == u.OwnerID && o.ParentID == u.ParentID && o.Name == u.Name {
			return common.ErrFileExistsWithSameName
		}
	}
	r.s.uploads[u.ID] = *u
	return nil
}

func (r memUploads) find(match func(models.Upload) bool) (string, *models.Upload) {
	for id, u := range r.s.uploads {
		if match(u) {
			return id, &u
		}
	}
	return "", nil
}

func (r memUploads) GetByUploadID(_ context.Context, uploadID string) (*models.Upload, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, u := r.find(func(u models.Upload) bool { return u.UploadID == uploadID })
	if u == nil {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (r memUploads) GetByKey(_ context.Context, key, bucket string) (*models.Upload, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, u := r.find(func(u models.Upload) bool { return u.Key == key && u.Bucket == bucket })
	if u == nil {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (r memUploads) SetUploadID(_ context.Context, key, bucket, uploadID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id, u := r.find(func(u models.Upload) bool { return u.Key == key && u.Bucket == bucket })
	if u == nil {
		return common.ErrorNotFound
	}
	u.UploadID = uploadID
	r.s.uploads[id] = *u
	return nil
}

func (r memUploads) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.uploads[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.uploads, id)
	return nil
}

func (r memUploads) DeleteByUploadID(_ context.Context, uploadID string) (*models.Upload, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id, u := r.find(func(u models.Upload) bool { return u.UploadID == uploadID })
	if u == nil {
		return nil, common.ErrorNotFound
	}
	delete(r.s.uploads, id)
	return u, nil
}

func (r memUploads) DeleteByKey(_ context.Context, key, bucket string) (*models.Upload, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id, u := r.find(func(u models.Upload) bool { return u.Key == key && u.Bucket == bucket })
	if u == nil {
		return nil, common.ErrorNotFound
	}
	delete(r.s.uploads, id)
	return u, nil
}

type memManager struct{ s *memStore }

func (m memManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m memManager) Quotas(dbx.DBTX) quotas.Repository          { return memQuotas{m.s} }
func (m memManager) Files(dbx.DBTX) files.Repository            { return memFiles{m.s} }
func (m memManager) Uploads(dbx.DBTX) uploads.Repository        { return memUploads{m.s} }

// --- fixture ---

type fixture struct {
	store   *memStore
	logger  *recLogger
	events  *recPublisher
	cache   *mapCache
	blobs   *recBlobs
	quotas  *QuotaService
	uploads *UploadService
	files   *FileService
}

func newFixture(limit uint64) *fixture {
	fx := &fixture{
		store:  newMemStore(),
		logger: &recLogger{},
		events: &recPublisher{},
		cache:  newMapCache(),
		blobs:  &recBlobs{},
	}
	m := memManager{fx.store}
	fx.quotas = NewQuotaService(passTx{}, m, limit, fx.logger)
	fx.uploads = NewUploadService(passTx{}, m, fx.quotas, fx.blobs, fx.events, fx.logger)
	fx.files = NewFileService(passTx{}, m, fx.quotas, fx.cache, fx.events, fx.logger)
	return fx
}

func (fx *fixture) used(owner string) uint64 {
	fx.store.mu.Lock()
	defer fx.store.mu.Unlock()
	return fx.store.quotas[owner].Used
}

func (fx *fixture) uploadCount() int {
	fx.store.mu.Lock()
	defer fx.store.mu.Unlock()
	return len(fx.store.uploads)
}
