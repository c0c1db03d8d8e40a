// Package memstore holds in-memory stand-ins for the MongoDB repositories
// and the list cache. Tests use them in place of a live cluster.
package memstore

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/shapeshed/shapeshed-backend/internal/model"
	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// errNonNumericInc matches the server refusing $inc on a non-numeric field.
var errNonNumericInc = errors.New("cannot apply $inc to a value of non-numeric type")

// Users mimics the users collection, including $addToSet / $pull.
type Users struct {
	mu    sync.Mutex
	Docs  map[primitive.ObjectID]*model.User
	Err   error
	OnGet func() // runs after FindByEmail, before it returns
}

// NewUsers returns an empty users collection.
func NewUsers() *Users {
	return &Users{Docs: map[primitive.ObjectID]*model.User{}}
}

func (m *Users) List(context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []model.User{}
	for _, u := range m.Docs {
		out = append(out, *u)
	}
	return out, nil
}

func (m *Users) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if m.OnGet != nil {
		defer m.OnGet()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.Docs {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *Users) Create(_ context.Context, u *model.User) (*model.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	cp := *u
	cp.ID = primitive.NewObjectID()
	cp.Extra = maps.Clone(u.Extra)
	m.Docs[cp.ID] = &cp
	return &model.InsertResult{Acknowledged: true, InsertedID: cp.ID}, nil
}

func (m *Users) Count(email string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, u := range m.Docs {
		if u.Email == email {
			n++
		}
	}
	return n
}

func (m *Users) mutate(id primitive.ObjectID, fn func(u *model.User) bool) (*model.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.Docs[id]
	if !ok {
		return &model.UpdateResult{Acknowledged: true}, nil
	}
	res := &model.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if fn(u) {
		res.ModifiedCount = 1
	}
	return res, nil
}

// list returns the array stored at key. A missing field counts as an empty
// array, as $addToSet and $pull treat it.
func list(u *model.User, key string) []any {
	switch t := u.Extra[key].(type) {
	case []any:
		return t
	case primitive.A:
		return t
	}
	return []any{}
}

func setField(u *model.User, key string, v any) {
	if u.Extra == nil {
		u.Extra = bson.M{}
	}
	u.Extra[key] = v
}

func addToSet(u *model.User, key, v string) bool {
	items := list(u, key)
	if slices.Contains(items, any(v)) {
		return false
	}
	setField(u, key, append(items, v))
	return true
}

func (m *Users) AddSelectedClass(_ context.Context, id primitive.ObjectID, classID string) (*model.UpdateResult, error) {
	return m.mutate(id, func(u *model.User) bool { return addToSet(u, model.UserFieldSelectedClasses, classID) })
}

func (m *Users) AddEnrolledClass(_ context.Context, id primitive.ObjectID, classID string) (*model.UpdateResult, error) {
	return m.mutate(id, func(u *model.User) bool { return addToSet(u, model.UserFieldEnrolledClasses, classID) })
}

func (m *Users) RemoveSelectedClass(_ context.Context, id primitive.ObjectID, classID string) (*model.UpdateResult, error) {
	return m.mutate(id, func(u *model.User) bool {
		if _, ok := u.Extra[model.UserFieldSelectedClasses]; !ok {
			return false
		}
		items := list(u, model.UserFieldSelectedClasses)
		before := len(items)
		items = slices.DeleteFunc(slices.Clone(items), func(e any) bool { return e == any(classID) })
		setField(u, model.UserFieldSelectedClasses, items)
		return len(items) != before
	})
}

func (m *Users) SetRole(_ context.Context, id primitive.ObjectID, role string) (*model.UpdateResult, error) {
	return m.mutate(id, func(u *model.User) bool {
		changed := u.Extra[model.UserFieldRole] != any(role)
		setField(u, model.UserFieldRole, role)
		return changed
	})
}

// Classes mimics the classes collection.
type Classes struct {
	mu      sync.Mutex
	Docs    map[primitive.ObjectID]*model.Class
	Err     error
	NameErr map[string]error
	Lookups int
}

// NewClasses returns an empty classes collection.
func NewClasses() *Classes {
	return &Classes{Docs: map[primitive.ObjectID]*model.Class{}, NameErr: map[string]error{}}
}

// Add stores a class directly and returns its id.
func (m *Classes) Add(name string, seats int) primitive.ObjectID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := primitive.NewObjectID()
	m.Docs[id] = &model.Class{ID: id, Fields: bson.M{
		model.ClassFieldName:           name,
		model.ClassFieldAvailableSeats: int64(seats),
	}}
	return id
}

func (m *Classes) List(context.Context) ([]model.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []model.Class{}
	for _, c := range m.Docs {
		out = append(out, *c)
	}
	return out, nil
}

func (m *Classes) FindByName(_ context.Context, name string) (*model.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lookups++
	if err := m.NameErr[name]; err != nil {
		return nil, err
	}
	for _, c := range m.Docs {
		if c.Name() == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *Classes) Create(_ context.Context, c *model.Class) (*model.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	cp := *c
	cp.ID = primitive.NewObjectID()
	cp.Fields = maps.Clone(c.Fields)
	m.Docs[cp.ID] = &cp
	return &model.InsertResult{Acknowledged: true, InsertedID: cp.ID}, nil
}

func (m *Classes) SetStatus(_ context.Context, id primitive.ObjectID, status string) (*model.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.Docs[id]
	if !ok {
		return &model.UpdateResult{Acknowledged: true}, nil
	}
	if c.Fields == nil {
		c.Fields = bson.M{}
	}
	c.Fields[model.ClassFieldStatus] = status
	return &model.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *Classes) DecrementSeats(_ context.Context, id primitive.ObjectID) (*model.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.Docs[id]
	if !ok {
		return &model.UpdateResult{Acknowledged: true}, nil
	}
	if c.Fields == nil {
		c.Fields = bson.M{}
	}
	switch n := c.Fields[model.ClassFieldAvailableSeats].(type) {
	case nil:
		c.Fields[model.ClassFieldAvailableSeats] = int64(-1)
	case int32:
		c.Fields[model.ClassFieldAvailableSeats] = n - 1
	case int64:
		c.Fields[model.ClassFieldAvailableSeats] = n - 1
	case float64:
		c.Fields[model.ClassFieldAvailableSeats] = n - 1
	default:
		return nil, errNonNumericInc
	}
	return &model.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *Classes) Seats(id primitive.ObjectID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cast.ToInt(m.Docs[id].Fields[model.ClassFieldAvailableSeats])
}

// Instructors mimics the instructors collection.
type Instructors struct {
	mu   sync.Mutex
	Docs map[primitive.ObjectID]*model.Instructor
	Err  error
}

// NewInstructors returns an empty instructors collection.
func NewInstructors() *Instructors {
	return &Instructors{Docs: map[primitive.ObjectID]*model.Instructor{}}
}

// Add stores an instructor teaching the named classes.
func (m *Instructors) Add(classes ...string) primitive.ObjectID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := primitive.NewObjectID()
	m.Docs[id] = &model.Instructor{ID: id, Classes: classes}
	return id
}

func (m *Instructors) List(context.Context) ([]model.Instructor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []model.Instructor{}
	for _, i := range m.Docs {
		out = append(out, *i)
	}
	return out, nil
}

func (m *Instructors) GetByID(_ context.Context, id primitive.ObjectID) (*model.Instructor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	i, ok := m.Docs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *i
	return &cp, nil
}

func (m *Instructors) Create(_ context.Context, i *model.Instructor) (*model.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *i
	cp.ID = primitive.NewObjectID()
	m.Docs[cp.ID] = &cp
	return &model.InsertResult{Acknowledged: true, InsertedID: cp.ID}, nil
}

// Cache records what the services put in and take out.
type Cache struct {
	mu      sync.Mutex
	Entries map[string]any
	Deletes int
}

func NewCache() *Cache {
	return &Cache{Entries: map[string]any{}}
}

func (c *Cache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.Entries[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *[]model.Class:
		*d = v.([]model.Class)
	case *[]model.Instructor:
		*d = v.([]model.Instructor)
	}
	return true, nil
}

func (c *Cache) Set(_ context.Context, key string, v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Entries[key] = v
	return nil
}

func (c *Cache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.Entries, k)
	}
	c.Deletes++
	return nil
}
