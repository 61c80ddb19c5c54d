package controllers_test

import (
	"context"
	"errors"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"toolmarket-backend/models"
	"toolmarket-backend/repository"
)

var errStoreDown = errors.New("connection refused")

// ---- in-memory repositories ----

type memTools struct {
	mu    sync.Mutex
	byID  map[primitive.ObjectID]models.Tool
	order []primitive.ObjectID
	err   error
	// beforeSet runs between the read and the write of a stock decrement.
	beforeSet func()
}

func newMemTools() *memTools {
	return &memTools{byID: map[primitive.ObjectID]models.Tool{}}
}

func (m *memTools) put(tool models.Tool) primitive.ObjectID {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tool.ID.IsZero() {
		tool.ID = primitive.NewObjectID()
	}
	if _, ok := m.byID[tool.ID]; !ok {
		m.order = append(m.order, tool.ID)
	}
	m.byID[tool.ID] = tool
	return tool.ID
}

func (m *memTools) get(id primitive.ObjectID) models.Tool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id]
}

func (m *memTools) All(ctx context.Context) ([]models.Tool, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tools := make([]models.Tool, 0, len(m.order))
	for _, id := range m.order {
		tools = append(tools, m.byID[id])
	}
	return tools, nil
}

func (m *memTools) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tool, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tool, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &tool, nil
}

func (m *memTools) Create(ctx context.Context, tool *models.Tool) (*repository.InsertResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	id := m.put(*tool)
	return &repository.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (m *memTools) DecrementStock(ctx context.Context, id primitive.ObjectID, amount models.Quantity) (*repository.StockChange, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	tool, ok := m.byID[id]
	m.mu.Unlock()
	if !ok {
		return nil, repository.ErrNotFound
	}

	if m.beforeSet != nil {
		m.beforeSet()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	stored := m.byID[id]
	if stored.AvailableQuan != tool.AvailableQuan {
		return nil, repository.ErrStockConflict
	}
	next := tool.AvailableQuan - amount
	stored.AvailableQuan = next
	m.byID[id] = stored
	return &repository.StockChange{
		From:   tool.AvailableQuan,
		To:     next,
		Result: &repository.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1},
	}, nil
}

func (m *memTools) Delete(ctx context.Context, id primitive.ObjectID) (*repository.DeleteResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return &repository.DeleteResult{Acknowledged: true}, nil
	}
	delete(m.byID, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return &repository.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

type memUsers struct {
	mu    sync.Mutex
	bySub map[models.SubjectID]models.User
	err   error
}

func newMemUsers() *memUsers {
	return &memUsers{bySub: map[models.SubjectID]models.User{}}
}

func (m *memUsers) get(uid models.SubjectID) (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.bySub[uid]
	return u, ok
}

func (m *memUsers) All(ctx context.Context) ([]models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]models.User, 0, len(m.bySub))
	for _, u := range m.bySub {
		users = append(users, u)
	}
	return users, nil
}

func (m *memUsers) FindBySubject(ctx context.Context, uid models.SubjectID) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.get(uid)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) UpsertProfile(ctx context.Context, uid models.SubjectID, fields bson.M) (*repository.UpdateResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	u, exists := m.bySub[uid]
	if !exists {
		u = models.User{ID: primitive.NewObjectID(), UserID: uid, Profile: bson.M{}}
	}
	if u.Profile == nil {
		u.Profile = bson.M{}
	}
	modified := false
	for k, v := range fields {
		if old, ok := u.Profile[k]; !ok || !reflect.DeepEqual(old, v) {
			modified = true
		}
		u.Profile[k] = v
	}
	m.bySub[uid] = u

	if !exists {
		return &repository.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: u.ID}, nil
	}
	res := &repository.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if modified {
		res.ModifiedCount = 1
	}
	return res, nil
}

func (m *memUsers) PromoteToAdmin(ctx context.Context, uid models.SubjectID) (*repository.UpdateResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.bySub[uid]
	if !ok {
		return &repository.UpdateResult{Acknowledged: true}, nil
	}
	res := &repository.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if u.Role != models.RoleAdmin {
		res.ModifiedCount = 1
	}
	u.Role = models.RoleAdmin
	m.bySub[uid] = u
	return res, nil
}

type memOrders struct {
	mu    sync.Mutex
	byID  map[primitive.ObjectID]models.Order
	order []primitive.ObjectID
	err   error
}

func newMemOrders() *memOrders {
	return &memOrders{byID: map[primitive.ObjectID]models.Order{}}
}

func (m *memOrders) get(id primitive.ObjectID) models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id]
}

func (m *memOrders) filter(keep func(models.Order) bool) ([]models.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	orders := make([]models.Order, 0)
	for _, id := range m.order {
		if o := m.byID[id]; keep(o) {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (m *memOrders) All(ctx context.Context) ([]models.Order, error) {
	return m.filter(func(models.Order) bool { return true })
}

func (m *memOrders) ByBuyer(ctx context.Context, buyerID models.SubjectID) ([]models.Order, error) {
	return m.filter(func(o models.Order) bool { return o.BuyerID == buyerID })
}

func (m *memOrders) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &o, nil
}

func (m *memOrders) Create(ctx context.Context, order *models.Order) (*repository.InsertResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o := *order
	o.ID = primitive.NewObjectID()
	m.byID[o.ID] = o
	m.order = append(m.order, o.ID)
	return &repository.InsertResult{Acknowledged: true, InsertedID: o.ID}, nil
}

func (m *memOrders) update(id primitive.ObjectID, apply func(*models.Order)) (*repository.UpdateResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byID[id]
	if !ok {
		return &repository.UpdateResult{Acknowledged: true}, nil
	}
	apply(&o)
	m.byID[id] = o
	return &repository.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *memOrders) MarkPaid(ctx context.Context, id primitive.ObjectID, transactionID string) (*repository.UpdateResult, error) {
	return m.update(id, func(o *models.Order) {
		o.PaymentStatus = models.PaymentPaid
		o.TransactionID = transactionID
	})
}

func (m *memOrders) SetShipmentStatus(ctx context.Context, id primitive.ObjectID, status string) (*repository.UpdateResult, error) {
	return m.update(id, func(o *models.Order) { o.ShipmentStatus = status })
}

func (m *memOrders) Delete(ctx context.Context, id primitive.ObjectID) (*repository.DeleteResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return &repository.DeleteResult{Acknowledged: true}, nil
	}
	delete(m.byID, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return &repository.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

type memReviews struct {
	mu      sync.Mutex
	reviews []models.Review
}

func (m *memReviews) All(ctx context.Context) ([]models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Review{}, m.reviews...), nil
}

func (m *memReviews) Create(ctx context.Context, review models.Review) (*repository.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := primitive.NewObjectID()
	doc := models.Review{}
	for k, v := range review {
		doc[k] = v
	}
	doc["_id"] = id
	m.reviews = append(m.reviews, doc)
	return &repository.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

type memBlogs struct {
	blogs []models.Blog
}

func (m *memBlogs) All(ctx context.Context) ([]models.Blog, error) {
	return m.blogs, nil
}

// ---- collaborators ----

type fakePayments struct {
	amount   int64
	currency string
	err      error
}

func (f *fakePayments) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error) {
	f.amount, f.currency = amount, currency
	if f.err != nil {
		return "", f.err
	}
	return "pi_123_secret_456", nil
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(ctx context.Context) error { return f.err }
