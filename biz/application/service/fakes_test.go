package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"yoga-master/biz/application/dto/yoga"
	"yoga-master/biz/infrastructure/consts"
	"yoga-master/biz/infrastructure/repository/applied"
	"yoga-master/biz/infrastructure/repository/cart"
	"yoga-master/biz/infrastructure/repository/class"
	"yoga-master/biz/infrastructure/repository/enrolled"
	"yoga-master/biz/infrastructure/repository/payment"
	"yoga-master/biz/infrastructure/repository/user"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var errStore = errors.New("store unavailable")

type fakeUserMapper struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*user.User
}

func newFakeUserMapper(users ...*user.User) *fakeUserMapper {
	m := &fakeUserMapper{users: map[primitive.ObjectID]*user.User{}}
	for _, u := range users {
		_ = m.Insert(context.Background(), u)
	}
	return m
}

func (m *fakeUserMapper) Insert(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.users {
		if v.Email == u.Email {
			return consts.ErrRepeatedSignUp
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *fakeUserMapper) Update(_ context.Context, u *user.User) (*mongo.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.users[u.ID]
	if !ok {
		return &mongo.UpdateResult{}, nil
	}
	u.CreateTime = old.CreateTime
	cp := *u
	m.users[u.ID] = &cp
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *fakeUserMapper) FindOne(_ context.Context, id string) (*user.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[oid]
	if !ok {
		return nil, consts.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *fakeUserMapper) FindOneByEmail(_ context.Context, email string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, consts.ErrNotFound
}

func (m *fakeUserMapper) FindMany(_ context.Context, _, _ int64) ([]*user.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := lo.Values(m.users)
	return users, int64(len(users)), nil
}

func (m *fakeUserMapper) FindByRole(_ context.Context, role string) ([]*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return lo.Filter(lo.Values(m.users), func(u *user.User, _ int) bool { return u.Role == role }), nil
}

func (m *fakeUserMapper) CountByRole(ctx context.Context, role string) (int64, error) {
	users, _ := m.FindByRole(ctx, role)
	return int64(len(users)), nil
}

func (m *fakeUserMapper) Delete(_ context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, consts.ErrInvalidObjectId
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[oid]; !ok {
		return 0, nil
	}
	delete(m.users, oid)
	return 1, nil
}

type fakeClassMapper struct {
	mu      sync.Mutex
	classes map[string]*class.Class
	users   *fakeUserMapper
}

func newFakeClassMapper(classes ...*class.Class) *fakeClassMapper {
	m := &fakeClassMapper{classes: map[string]*class.Class{}}
	for _, c := range classes {
		_ = m.Insert(context.Background(), c)
	}
	return m
}

func (m *fakeClassMapper) get(id string) *class.Class {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *m.classes[id]
	return &cp
}

func (m *fakeClassMapper) Insert(_ context.Context, c *class.Class) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	cp := *c
	m.classes[c.ID.Hex()] = &cp
	return nil
}

func (m *fakeClassMapper) UpdateContent(_ context.Context, c *class.Class) (*mongo.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.classes[c.ID.Hex()]
	if !ok {
		return &mongo.UpdateResult{}, nil
	}
	old.Name, old.Description, old.Price = c.Name, c.Description, c.Price
	old.AvailableSeats, old.Image, old.VideoLink = c.AvailableSeats, c.Image, c.VideoLink
	old.Status = consts.ClassPending
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *fakeClassMapper) UpdateStatus(_ context.Context, id, status, reason string) (*mongo.UpdateResult, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, consts.ErrInvalidObjectId
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.classes[id]
	if !ok {
		return &mongo.UpdateResult{}, nil
	}
	c.Status, c.Reason = status, reason
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *fakeClassMapper) FindOne(_ context.Context, id string) (*class.Class, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, consts.ErrInvalidObjectId
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.classes[id]
	if !ok {
		return nil, consts.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *fakeClassMapper) FindMany(_ context.Context, status string, _, _ int64) ([]*class.Class, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	found := lo.Filter(lo.Values(m.classes), func(c *class.Class, _ int) bool {
		return status == "" || c.Status == status
	})
	return found, int64(len(found)), nil
}

func (m *fakeClassMapper) FindByInstructor(_ context.Context, email string) ([]*class.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return lo.Filter(lo.Values(m.classes), func(c *class.Class, _ int) bool {
		return c.InstructorEmail == email
	}), nil
}

func (m *fakeClassMapper) FindByIDs(_ context.Context, ids []string) ([]*class.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return lo.FilterMap(ids, func(id string, _ int) (*class.Class, bool) {
		c, ok := m.classes[id]
		return c, ok
	}), nil
}

func (m *fakeClassMapper) FindPopular(_ context.Context, limit int64) ([]*class.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	found := lo.Filter(lo.Values(m.classes), func(c *class.Class, _ int) bool {
		return c.Status == consts.ClassApproved
	})
	sort.Slice(found, func(i, j int) bool {
		if found[i].TotalEnrolled != found[j].TotalEnrolled {
			return found[i].TotalEnrolled > found[j].TotalEnrolled
		}
		return found[i].Name < found[j].Name
	})
	if int64(len(found)) > limit {
		found = found[:limit]
	}
	return found, nil
}

func (m *fakeClassMapper) CountByStatus(ctx context.Context, status string) (int64, error) {
	_, n, err := m.FindMany(ctx, status, 0, 0)
	return n, err
}

// PopularInstructors 与聚合管道的语义一致
func (m *fakeClassMapper) PopularInstructors(ctx context.Context, limit int64) ([]*class.InstructorRank, error) {
	m.mu.Lock()
	sums := map[string]int64{}
	for _, c := range m.classes {
		sums[c.InstructorEmail] += c.TotalEnrolled
	}
	m.mu.Unlock()

	ranks := make([]*class.InstructorRank, 0, len(sums))
	for email, total := range sums {
		r := &class.InstructorRank{Email: email, TotalEnrolled: total}
		if m.users != nil {
			r.Instructor, _ = m.users.FindOneByEmail(ctx, email)
		}
		ranks = append(ranks, r)
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].TotalEnrolled != ranks[j].TotalEnrolled {
			return ranks[i].TotalEnrolled > ranks[j].TotalEnrolled
		}
		return ranks[i].Email < ranks[j].Email
	})
	if int64(len(ranks)) > limit {
		ranks = ranks[:limit]
	}
	return ranks, nil
}

func (m *fakeClassMapper) Enroll(_ context.Context, id string) (*mongo.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.classes[id]
	if !ok || c.Status != consts.ClassApproved || c.AvailableSeats <= 0 {
		return &mongo.UpdateResult{}, nil
	}
	c.AvailableSeats--
	c.TotalEnrolled++
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *fakeClassMapper) Unenroll(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.classes[id]
	c.AvailableSeats++
	c.TotalEnrolled--
	return nil
}

func (m *fakeClassMapper) DelCache(context.Context, ...string) error {
	return nil
}

type fakeCartMapper struct {
	mu    sync.Mutex
	items []*cart.Cart
}

func (m *fakeCartMapper) Insert(_ context.Context, c *cart.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if item.ClassId == c.ClassId && item.UserMail == c.UserMail {
			return consts.ErrAlreadyInCart
		}
	}
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	m.items = append(m.items, c)
	return nil
}

func (m *fakeCartMapper) InsertMany(_ context.Context, items []*cart.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, items...)
	return nil
}

func (m *fakeCartMapper) FindOne(_ context.Context, classId, email string) (*cart.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := lo.Find(m.items, func(item *cart.Cart) bool {
		return item.ClassId == classId && item.UserMail == email
	})
	if !ok {
		return nil, consts.ErrNotFound
	}
	return item, nil
}

func (m *fakeCartMapper) FindByUser(_ context.Context, email string) ([]*cart.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return lo.Filter(m.items, func(item *cart.Cart, _ int) bool { return item.UserMail == email }), nil
}

func (m *fakeCartMapper) FindForCheckout(_ context.Context, email string, classIds []string) ([]*cart.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return lo.Filter(m.items, func(item *cart.Cart, _ int) bool {
		return item.UserMail == email && lo.Contains(classIds, item.ClassId)
	}), nil
}

func (m *fakeCartMapper) DeleteOne(_ context.Context, classId, email string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	before := len(m.items)
	m.items = lo.Reject(m.items, func(item *cart.Cart, _ int) bool {
		return item.ClassId == classId && item.UserMail == email
	})
	return int64(before - len(m.items)), nil
}

func (m *fakeCartMapper) DeleteByIDs(_ context.Context, ids []primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	before := len(m.items)
	m.items = lo.Reject(m.items, func(item *cart.Cart, _ int) bool { return lo.Contains(ids, item.ID) })
	return int64(before - len(m.items)), nil
}

func (m *fakeCartMapper) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

type fakePaymentMapper struct {
	mu        sync.Mutex
	payments  []*payment.Payment
	failWrite bool
}

func (m *fakePaymentMapper) Insert(_ context.Context, p *payment.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite {
		return errStore
	}
	if lo.ContainsBy(m.payments, func(old *payment.Payment) bool { return old.TransactionId == p.TransactionId }) {
		return consts.ErrDuplicateTransaction
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	m.payments = append(m.payments, p)
	return nil
}

func (m *fakePaymentMapper) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments = lo.Reject(m.payments, func(p *payment.Payment, _ int) bool { return p.ID == id })
	return nil
}

func (m *fakePaymentMapper) FindByEmail(_ context.Context, email string, _, _ int64) ([]*payment.Payment, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	found := lo.Filter(m.payments, func(p *payment.Payment, _ int) bool { return p.UserEmail == email })
	sort.Slice(found, func(i, j int) bool { return found[i].Date.After(found[j].Date) })
	return found, int64(len(found)), nil
}

func (m *fakePaymentMapper) CountByEmail(ctx context.Context, email string) (int64, error) {
	_, n, err := m.FindByEmail(ctx, email, 0, 0)
	return n, err
}

func (m *fakePaymentMapper) ExistsTransaction(_ context.Context, transactionId string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return lo.ContainsBy(m.payments, func(p *payment.Payment) bool { return p.TransactionId == transactionId }), nil
}

func (m *fakePaymentMapper) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.payments)
}

type fakeEnrolledMapper struct {
	mu      sync.Mutex
	records []*enrolled.Enrolled
	classes *fakeClassMapper
}

func (m *fakeEnrolledMapper) Insert(_ context.Context, e *enrolled.Enrolled) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	m.records = append(m.records, e)
	return nil
}

func (m *fakeEnrolledMapper) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = lo.Reject(m.records, func(e *enrolled.Enrolled, _ int) bool { return e.ID == id })
	return nil
}

func (m *fakeEnrolledMapper) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.records)), nil
}

func (m *fakeEnrolledMapper) FindClasses(ctx context.Context, email string) ([]*enrolled.EnrolledClass, error) {
	m.mu.Lock()
	records := lo.Filter(m.records, func(e *enrolled.Enrolled, _ int) bool { return e.UserEmail == email })
	m.mu.Unlock()

	result := make([]*enrolled.EnrolledClass, 0)
	for _, e := range records {
		for _, id := range e.ClassesId {
			c, err := m.classes.FindOne(ctx, id)
			if err != nil {
				continue
			}
			result = append(result, &enrolled.EnrolledClass{Classes: c})
		}
	}
	return result, nil
}

type fakeAppliedMapper struct {
	mu   sync.Mutex
	apps map[string]*applied.Application
}

func (m *fakeAppliedMapper) Insert(_ context.Context, a *applied.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.apps == nil {
		m.apps = map[string]*applied.Application{}
	}
	if _, ok := m.apps[a.Email]; ok {
		return consts.ErrRepeatedApplication
	}
	a.ID = primitive.NewObjectID()
	m.apps[a.Email] = a
	return nil
}

func (m *fakeAppliedMapper) FindOneByEmail(_ context.Context, email string) (*applied.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apps[email]
	if !ok {
		return nil, consts.ErrNotFound
	}
	return a, nil
}

type fakeRankingCache struct {
	mu          sync.Mutex
	data        map[string]any
	invalidated int
}

func (m *fakeRankingCache) Get(_ context.Context, key string, v any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cached, ok := m.data[key]
	if !ok {
		return false, nil
	}
	switch dst := v.(type) {
	case *[]*yoga.Class:
		*dst = cached.([]*yoga.Class)
	case *[]*yoga.PopularInstructor:
		*dst = cached.([]*yoga.PopularInstructor)
	}
	return true, nil
}

func (m *fakeRankingCache) Set(_ context.Context, key string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = map[string]any{}
	}
	m.data[key] = v
	return nil
}

func (m *fakeRankingCache) Invalidate(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	m.invalidated++
	return nil
}

type fakeLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

func (l *fakeLocker) Acquire(_ context.Context, email string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held == nil {
		l.held = map[string]bool{}
	}
	if l.held[email] {
		return nil, consts.ErrCheckoutInProgress
	}
	l.held[email] = true
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, email)
	}, nil
}
