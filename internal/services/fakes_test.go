package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gourdmobile/backend/internal/models"
	"github.com/gourdmobile/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// fakePostRepo stores deep copies so callers cannot mutate stored state without SavePost.
type fakePostRepo struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]models.Post
	saves int
}

func newFakePostRepo(posts ...models.Post) *fakePostRepo {
	r := &fakePostRepo{posts: map[primitive.ObjectID]models.Post{}}
	for _, p := range posts {
		r.posts[p.ID] = clonePost(p)
	}
	return r
}

func clonePost(p models.Post) models.Post {
	out := p
	if p.Images != nil {
		out.Images = append([]string{}, p.Images...)
	}
	if p.Comments != nil {
		out.Comments = make([]models.Comment, len(p.Comments))
		for i, c := range p.Comments {
			cc := c
			if c.Replies != nil {
				cc.Replies = append([]models.Reply{}, c.Replies...)
			}
			out.Comments[i] = cc
		}
	}
	return out
}

func (r *fakePostRepo) stored(id primitive.ObjectID) models.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	return clonePost(r.posts[id])
}

func (r *fakePostRepo) CreatePost(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now().UTC()
	post.UpdatedAt = post.CreatedAt
	r.posts[post.ID] = clonePost(*post)
	return nil
}

func (r *fakePostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repositories.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[objID]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	out := clonePost(p)
	return &out, nil
}

func (r *fakePostRepo) GetAllPosts(_ context.Context, skip, limit int64) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]models.Post, 0, len(r.posts))
	for _, p := range r.posts {
		all = append(all, clonePost(p))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if skip >= int64(len(all)) {
		return []models.Post{}, nil
	}
	all = all[skip:]
	if limit > 0 && limit < int64(len(all)) {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakePostRepo) SavePost(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[post.ID]; !ok {
		return repositories.ErrPostNotFound
	}
	r.saves++
	r.posts[post.ID] = clonePost(*post)
	return nil
}

func (r *fakePostRepo) DeletePost(_ context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repositories.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[objID]; !ok {
		return repositories.ErrPostNotFound
	}
	delete(r.posts, objID)
	return nil
}

func (r *fakePostRepo) IncrementLikesCount(_ context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repositories.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[objID]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	p.Likes++
	r.posts[objID] = p
	out := clonePost(p)
	return &out, nil
}

type fakeUserRepo struct {
	users     map[uint]*models.User
	nextID    uint
	createErr error
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uint]*models.User{}, nextID: 100}
	for i := range users {
		u := users[i]
		r.users[u.ID] = &u
	}
	return r
}

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	user.ID = r.nextID
	u := *user
	r.users[u.ID] = &u
	return nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *u
	return &out, nil
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByFirebaseUID(uid string) (*models.User, error) {
	for _, u := range r.users {
		if u.FirebaseUID != nil && *u.FirebaseUID == uid {
			out := *u
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUsersByIDs(ids []uint) ([]models.User, error) {
	out := []models.User{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) GetUsers() ([]models.User, error) {
	out := []models.User{}
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) CountUsers() (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	u := *user
	r.users[u.ID] = &u
	return nil
}

func (r *fakeUserRepo) DeleteUser(id uint) (bool, error) {
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

type fakeCategoryRepo struct {
	categories map[uint]models.Category
}

func newFakeCategoryRepo(categories ...models.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{categories: map[uint]models.Category{}}
	for _, c := range categories {
		r.categories[c.ID] = c
	}
	return r
}

func (r *fakeCategoryRepo) CreateCategory(c *models.Category) error {
	c.ID = uint(len(r.categories) + 1)
	r.categories[c.ID] = *c
	return nil
}

func (r *fakeCategoryRepo) GetCategoryByID(id uint) (*models.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *fakeCategoryRepo) GetCategoriesByIDs(ids []uint) ([]models.Category, error) {
	out := []models.Category{}
	for _, id := range ids {
		if c, ok := r.categories[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) GetCategories() ([]models.Category, error) {
	out := []models.Category{}
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCategoryRepo) DeleteCategory(id uint) (bool, error) {
	if _, ok := r.categories[id]; !ok {
		return false, nil
	}
	delete(r.categories, id)
	return true, nil
}

type fakeGourdRepo struct {
	types     []models.GourdType
	varieties []models.Variety
}

func (r *fakeGourdRepo) CreateGourdType(gt *models.GourdType) error {
	gt.ID = uint(len(r.types) + 1)
	r.types = append(r.types, *gt)
	return nil
}

func (r *fakeGourdRepo) GetGourdTypes() ([]models.GourdType, error) { return r.types, nil }

func (r *fakeGourdRepo) GetGourdTypesByIDs(ids []uint) ([]models.GourdType, error) {
	out := []models.GourdType{}
	for _, t := range r.types {
		for _, id := range ids {
			if t.ID == id {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

func (r *fakeGourdRepo) CreateVariety(v *models.Variety) error {
	v.ID = uint(len(r.varieties) + 1)
	r.varieties = append(r.varieties, *v)
	return nil
}

func (r *fakeGourdRepo) GetVarieties() ([]models.Variety, error) { return r.varieties, nil }

func (r *fakeGourdRepo) GetVarietiesByIDs(ids []uint) ([]models.Variety, error) {
	out := []models.Variety{}
	for _, v := range r.varieties {
		for _, id := range ids {
			if v.ID == id {
				out = append(out, v)
			}
		}
	}
	return out, nil
}

type fakeChatRepo struct {
	chats         []models.Chat
	conversations []models.ConversationSummary
}

func (r *fakeChatRepo) CreateChat(_ context.Context, chat *models.Chat) error {
	chat.ID = primitive.NewObjectID()
	chat.CreatedAt = time.Now().UTC()
	chat.UpdatedAt = chat.CreatedAt
	r.chats = append(r.chats, *chat)
	return nil
}

func (r *fakeChatRepo) GetConversations(context.Context, string) ([]models.ConversationSummary, error) {
	return r.conversations, nil
}

func (r *fakeChatRepo) GetChatsByUser(_ context.Context, userID uint) ([]models.Chat, error) {
	out := []models.Chat{}
	for _, c := range r.chats {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeChatRepo) GetChatsByRoom(_ context.Context, room string) ([]models.Chat, error) {
	out := []models.Chat{}
	for _, c := range r.chats {
		if c.Room == room {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeChatRepo) GetChatsBetween(_ context.Context, a, b uint) ([]models.Chat, error) {
	out := []models.Chat{}
	for _, c := range r.chats {
		if (c.SenderID == a && c.UserID == b) || (c.SenderID == b && c.UserID == a) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeChatRepo) UpdateChat(_ context.Context, id primitive.ObjectID, req *models.UpdateChatRequest) (*models.Chat, error) {
	for i := range r.chats {
		if r.chats[i].ID == id {
			if req.Message != "" {
				r.chats[i].Message = req.Message
			}
			if req.Room != "" {
				r.chats[i].Room = req.Room
			}
			out := r.chats[i]
			return &out, nil
		}
	}
	return nil, repositories.ErrChatNotFound
}

func (r *fakeChatRepo) DeleteChat(_ context.Context, id primitive.ObjectID) error {
	for i := range r.chats {
		if r.chats[i].ID == id {
			r.chats = append(r.chats[:i], r.chats[i+1:]...)
			return nil
		}
	}
	return repositories.ErrChatNotFound
}

type fakeMonitoringRepo struct {
	records map[primitive.ObjectID]models.Monitoring
	saves   int
}

func newFakeMonitoringRepo(records ...models.Monitoring) *fakeMonitoringRepo {
	r := &fakeMonitoringRepo{records: map[primitive.ObjectID]models.Monitoring{}}
	for _, m := range records {
		r.records[m.ID] = m
	}
	return r
}

func (r *fakeMonitoringRepo) CreateMonitoring(_ context.Context, m *models.Monitoring) error {
	m.ID = primitive.NewObjectID()
	r.records[m.ID] = *m
	return nil
}

func (r *fakeMonitoringRepo) GetMonitoringByID(_ context.Context, id primitive.ObjectID) (*models.Monitoring, error) {
	m, ok := r.records[id]
	if !ok {
		return nil, repositories.ErrMonitoringNotFound
	}
	return &m, nil
}

func (r *fakeMonitoringRepo) GetMonitorings(context.Context) ([]models.Monitoring, error) {
	out := []models.Monitoring{}
	for _, m := range r.records {
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMonitoringRepo) GetMonitoringsByUser(_ context.Context, userID uint) ([]models.Monitoring, error) {
	out := []models.Monitoring{}
	for _, m := range r.records {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMonitoringRepo) SaveMonitoring(_ context.Context, m *models.Monitoring) error {
	if _, ok := r.records[m.ID]; !ok {
		return repositories.ErrMonitoringNotFound
	}
	r.saves++
	r.records[m.ID] = *m
	return nil
}

func (r *fakeMonitoringRepo) DeleteMonitoring(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.records[id]; !ok {
		return repositories.ErrMonitoringNotFound
	}
	delete(r.records, id)
	return nil
}

// memoryTokenStore is a TokenStore kept in a map.
type memoryTokenStore struct {
	revoked map[string]time.Duration
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{revoked: map[string]time.Duration{}}
}

func (s *memoryTokenStore) Revoke(_ context.Context, id string, ttl time.Duration) error {
	s.revoked[id] = ttl
	return nil
}

func (s *memoryTokenStore) IsRevoked(_ context.Context, id string) (bool, error) {
	_, ok := s.revoked[id]
	return ok, nil
}
