package provider

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"content-provider/models"

	"github.com/google/uuid"
)

const (
	dirTypePrefix  = "vnd.android.cursor.dir/"
	itemTypePrefix = "vnd.android.cursor.item/"
)

// Provider exposes a single table through content addresses.
// It checks that each operation fits the route class of its address,
// delegates to the table store and fires one change notification per
// successful mutating call.
type Provider struct {
	store    TableStore
	router   *Router
	notifier Notifier
	logger   *slog.Logger
}

// New creates a provider over store. A nil notifier discards
// notifications and a nil logger uses slog.Default().
func New(store TableStore, router *Router, notifier Notifier, logger *slog.Logger) *Provider {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		store:    store,
		router:   router,
		notifier: notifier,
		logger:   logger,
	}
}

// Router returns the provider's route table
func (p *Provider) Router() *Router {
	return p.router
}

// Type returns the content type of the address
func (p *Provider) Type(address string) (string, error) {
	route, err := p.router.Resolve(address)
	if err != nil {
		return "", err
	}

	suffix := p.router.Authority() + "." + route.Table
	if route.Class == RouteItem {
		return itemTypePrefix + suffix, nil
	}
	return dirTypePrefix + suffix, nil
}

// Query returns every record for a collection address, or the matching
// record (if any) for an item address
func (p *Provider) Query(address string) (cheeses []models.Cheese, err error) {
	start := time.Now()
	defer func() { p.logCall("query", address, start, int64(len(cheeses)), err) }()

	route, err := p.router.Resolve(address)
	if err != nil {
		return nil, err
	}

	if route.Class == RouteCollection {
		cheeses, err = p.store.SelectAll()
	} else {
		cheeses, err = p.store.SelectByID(route.ID)
	}
	if err != nil {
		return nil, storeFailure("query", err)
	}
	return cheeses, nil
}

// Insert adds cheese to the collection and returns the address of the
// new record. Any id on cheese is ignored.
func (p *Provider) Insert(address string, cheese models.Cheese) (inserted string, err error) {
	start := time.Now()
	defer func() { p.logCall("insert", address, start, boolCount(err == nil), err) }()

	route, err := p.router.Resolve(address)
	if err != nil {
		return "", err
	}

	inserted, err = insert(p.store, route, cheese)
	if err != nil {
		return "", err
	}

	p.notifier.Notify(route.Address)
	return inserted, nil
}

// Update overwrites the record at an item address and returns the
// number of rows affected
func (p *Provider) Update(address string, cheese models.Cheese) (count int64, err error) {
	start := time.Now()
	defer func() { p.logCall("update", address, start, count, err) }()

	route, err := p.router.Resolve(address)
	if err != nil {
		return 0, err
	}

	count, err = update(p.store, route, cheese)
	if err != nil {
		return 0, err
	}

	p.notifier.Notify(route.Address)
	return count, nil
}

// Delete removes the record at an item address and returns the number
// of rows affected
func (p *Provider) Delete(address string) (count int64, err error) {
	start := time.Now()
	defer func() { p.logCall("delete", address, start, count, err) }()

	route, err := p.router.Resolve(address)
	if err != nil {
		return 0, err
	}

	count, err = deleteByID(p.store, route)
	if err != nil {
		return 0, err
	}

	p.notifier.Notify(route.Address)
	return count, nil
}

// BulkInsert adds every cheese to the collection in one store call and
// returns the number inserted
func (p *Provider) BulkInsert(address string, cheeses []models.Cheese) (count int, err error) {
	start := time.Now()
	defer func() { p.logCall("bulk_insert", address, start, int64(count), err) }()

	route, err := p.router.Resolve(address)
	if err != nil {
		return 0, err
	}
	if route.Class != RouteCollection {
		return 0, invalidRoute(address, "cannot insert with ID")
	}

	rows := make([]models.Cheese, len(cheeses))
	for i, cheese := range cheeses {
		cheese.ID = 0
		rows[i] = cheese
	}

	ids, err := p.store.InsertAll(rows)
	if err != nil {
		return 0, storeFailure("bulk insert", err)
	}

	p.notifier.Notify(route.Address)
	return len(ids), nil
}

func insert(s CheeseStore, route Route, cheese models.Cheese) (string, error) {
	if route.Class != RouteCollection {
		return "", invalidRoute(route.Address, "cannot insert with ID")
	}

	cheese.ID = 0
	id, err := s.Insert(&cheese)
	if err != nil {
		return "", storeFailure("insert", err)
	}
	return WithAppendedID(route.Address, id), nil
}

func update(s CheeseStore, route Route, cheese models.Cheese) (int64, error) {
	if route.Class != RouteItem {
		return 0, invalidRoute(route.Address, "cannot update without ID")
	}

	cheese.ID = route.ID
	count, err := s.Update(cheese)
	if err != nil {
		return 0, storeFailure("update", err)
	}
	return count, nil
}

func deleteByID(s CheeseStore, route Route) (int64, error) {
	if route.Class != RouteItem {
		return 0, invalidRoute(route.Address, "cannot delete without ID")
	}

	count, err := s.DeleteByID(route.ID)
	if err != nil {
		return 0, storeFailure("delete", err)
	}
	return count, nil
}

func boolCount(ok bool) int64 {
	if ok {
		return 1
	}
	return 0
}

// logCall records one provider call. Rejected addresses log at warn,
// store failures at error, successes at debug.
func (p *Provider) logCall(op, address string, start time.Time, count int64, err error) {
	attrs := []slog.Attr{
		slog.String("call_id", uuid.New().String()),
		slog.String("op", op),
		slog.String("address", address),
		slog.Duration("latency", time.Since(start)),
	}

	ctx := context.Background()
	switch {
	case err == nil:
		attrs = append(attrs, slog.Int64("count", count))
		p.logger.LogAttrs(ctx, slog.LevelDebug, "call completed", attrs...)
	case errors.Is(err, ErrStoreFailure):
		attrs = append(attrs, slog.String("error", err.Error()))
		p.logger.LogAttrs(ctx, slog.LevelError, "store error", attrs...)
	default:
		attrs = append(attrs, slog.String("error", err.Error()))
		p.logger.LogAttrs(ctx, slog.LevelWarn, "call rejected", attrs...)
	}
}
