package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/community-board/api-go/models"
	"github.com/community-board/api-go/pagination"
	"github.com/community-board/api-go/repositories"
	"github.com/stretchr/testify/mock"
)

// memDB is an in-memory record store. A failed transaction restores the
// snapshot taken when it started.
type memDB struct {
	users    map[uint]models.User
	posts    map[uint]models.Post
	images   map[uint]models.PostImage
	comments map[uint]models.Comment
	likes    map[uint]models.PostLike
	tokens   map[uint]models.RefreshToken
	nextID   uint

	// fail makes the named operation return the error, e.g. "likes.Create".
	fail map[string]error
	// skip makes the named lookup report ErrNotFound regardless of content.
	skip map[string]bool
	txs  int
}

func newMemDB() *memDB {
	return &memDB{
		users:    map[uint]models.User{},
		posts:    map[uint]models.Post{},
		images:   map[uint]models.PostImage{},
		comments: map[uint]models.Comment{},
		likes:    map[uint]models.PostLike{},
		tokens:   map[uint]models.RefreshToken{},
		fail:     map[string]error{},
		skip:     map[string]bool{},
	}
}

func (m *memDB) id() uint {
	m.nextID++
	return m.nextID
}

func copyMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (m *memDB) snapshot() memDB {
	return memDB{
		users:    copyMap(m.users),
		posts:    copyMap(m.posts),
		images:   copyMap(m.images),
		comments: copyMap(m.comments),
		likes:    copyMap(m.likes),
		tokens:   copyMap(m.tokens),
		nextID:   m.nextID,
		fail:     m.fail,
		skip:     m.skip,
		txs:      m.txs,
	}
}

func (m *memDB) err(op string) error {
	return m.fail[op]
}

type fakeStore struct {
	db *memDB
}

func newFakeStore() *fakeStore {
	return &fakeStore{db: newMemDB()}
}

func (s *fakeStore) Users() repositories.UserRepository                 { return fakeUsers{s.db} }
func (s *fakeStore) Posts() repositories.PostRepository                 { return fakePosts{s.db} }
func (s *fakeStore) Comments() repositories.CommentRepository           { return fakeComments{s.db} }
func (s *fakeStore) Likes() repositories.LikeRepository                 { return fakeLikes{s.db} }
func (s *fakeStore) RefreshTokens() repositories.RefreshTokenRepository { return fakeTokens{s.db} }

func (s *fakeStore) WithinTransaction(ctx context.Context, fn func(tx repositories.Store) error) error {
	snap := s.db.snapshot()
	s.db.txs++
	if err := fn(s); err != nil {
		txs := s.db.txs
		*s.db = snap
		s.db.txs = txs
		return err
	}
	return nil
}

// seeding helpers

func (s *fakeStore) addUser(email, nickname string) models.User {
	u := models.User{ID: s.db.id(), Email: email, Nickname: nickname, Password: "hashed:Secret1!"}
	s.db.users[u.ID] = u
	return u
}

func (s *fakeStore) addPost(userID uint, title string) models.Post {
	p := models.Post{ID: s.db.id(), Title: title, Content: "content of " + title, UserID: userID}
	s.db.posts[p.ID] = p
	return p
}

func (s *fakeStore) addComment(userID, postID uint, content string) models.Comment {
	c := models.Comment{ID: s.db.id(), Content: content, UserID: userID, PostID: postID}
	s.db.comments[c.ID] = c
	return c
}

func (s *fakeStore) addLike(userID, postID uint) models.PostLike {
	l := models.PostLike{ID: s.db.id(), UserID: userID, PostID: postID}
	s.db.likes[l.ID] = l
	return l
}

func (s *fakeStore) likeRows(postID uint) int64 {
	var n int64
	for _, l := range s.db.likes {
		if l.PostID == postID {
			n++
		}
	}
	return n
}

type fakeUsers struct{ db *memDB }

func (r fakeUsers) FindByID(_ context.Context, id uint) (*models.User, error) {
	if err := r.db.err("users.FindByID"); err != nil {
		return nil, err
	}
	u, ok := r.db.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (r fakeUsers) find(match func(models.User) bool) (*models.User, error) {
	for _, u := range r.db.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if err := r.db.err("users.FindByEmail"); err != nil {
		return nil, err
	}
	if r.db.skip["users.FindByEmail"] {
		return nil, repositories.ErrNotFound
	}
	return r.find(func(u models.User) bool { return u.Email == email })
}

func (r fakeUsers) FindByNickname(_ context.Context, nickname string) (*models.User, error) {
	if r.db.skip["users.FindByNickname"] {
		return nil, repositories.ErrNotFound
	}
	return r.find(func(u models.User) bool { return u.Nickname == nickname })
}

func (r fakeUsers) unique(u *models.User) error {
	for _, other := range r.db.users {
		if other.ID == u.ID {
			continue
		}
		if other.Email == u.Email {
			return fmt.Errorf("%w: users_email_key", repositories.ErrDuplicate)
		}
		if other.Nickname == u.Nickname {
			return fmt.Errorf("%w: users_nickname_key", repositories.ErrDuplicate)
		}
	}
	return nil
}

func (r fakeUsers) Create(_ context.Context, u *models.User) error {
	if err := r.unique(u); err != nil {
		return err
	}
	u.ID = r.db.id()
	r.db.users[u.ID] = *u
	return nil
}

func (r fakeUsers) Save(_ context.Context, u *models.User) error {
	if err := r.db.err("users.Save"); err != nil {
		return err
	}
	if err := r.unique(u); err != nil {
		return err
	}
	r.db.users[u.ID] = *u
	return nil
}

type fakePosts struct{ db *memDB }

func (r fakePosts) imagesOf(postID uint) []models.PostImage {
	var out []models.PostImage
	for _, img := range r.db.images {
		if img.PostID == postID {
			out = append(out, img)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out
}

func (r fakePosts) FindByID(_ context.Context, id uint) (*models.Post, error) {
	p, ok := r.db.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	p.User = r.db.users[p.UserID]
	p.Images = r.imagesOf(id)
	return &p, nil
}

func (r fakePosts) Create(_ context.Context, p *models.Post) error {
	if err := r.db.err("posts.Create"); err != nil {
		return err
	}
	p.ID = r.db.id()
	for i := range p.Images {
		p.Images[i].ID = r.db.id()
		p.Images[i].PostID = p.ID
		r.db.images[p.Images[i].ID] = p.Images[i]
	}
	stored := *p
	stored.Images = nil
	r.db.posts[p.ID] = stored
	return nil
}

func (r fakePosts) Save(_ context.Context, p *models.Post) error {
	if err := r.db.err("posts.Save"); err != nil {
		return err
	}
	stored := *p
	stored.User = models.User{}
	stored.Images = nil
	r.db.posts[p.ID] = stored
	return nil
}

func (r fakePosts) ReplaceImages(_ context.Context, postID uint, urls []string) error {
	if err := r.db.err("posts.ReplaceImages"); err != nil {
		return err
	}
	for id, img := range r.db.images {
		if img.PostID == postID {
			delete(r.db.images, id)
		}
	}
	for _, img := range models.NewPostImages(urls) {
		img.ID = r.db.id()
		img.PostID = postID
		r.db.images[img.ID] = img
	}
	return nil
}

func (r fakePosts) Delete(_ context.Context, p *models.Post) error {
	for id, l := range r.db.likes {
		if l.PostID == p.ID {
			delete(r.db.likes, id)
		}
	}
	for id, c := range r.db.comments {
		if c.PostID == p.ID {
			delete(r.db.comments, id)
		}
	}
	for id, img := range r.db.images {
		if img.PostID == p.ID {
			delete(r.db.images, id)
		}
	}
	delete(r.db.posts, p.ID)
	return nil
}

func (r fakePosts) IncrementViewCount(_ context.Context, id uint) error {
	p, ok := r.db.posts[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.ViewCount++
	r.db.posts[id] = p
	return nil
}

func (r fakePosts) Slice(_ context.Context, cursor *uint, size int) ([]models.PostSummary, bool, error) {
	if err := r.db.err("posts.Slice"); err != nil {
		return nil, false, err
	}
	var rows []models.PostSummary
	for _, p := range r.db.posts {
		if cursor != nil && p.ID >= *cursor {
			continue
		}
		author := r.db.users[p.UserID]
		var urls []string
		for _, img := range r.imagesOf(p.ID) {
			urls = append(urls, img.ImageURL)
		}
		rows = append(rows, models.PostSummary{
			ID:             p.ID,
			Title:          p.Title,
			UserID:         p.UserID,
			AuthorNickname: author.Nickname,
			ViewCount:      p.ViewCount,
			LikeCount:      fakeLikes(r).count(p.ID),
			CommentCount:   fakeComments(r).count(p.ID),
			ImageURLs:      urls,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })
	if len(rows) > size+1 {
		rows = rows[:size+1]
	}
	items, hasNext := pagination.Trim(rows, size)
	return items, hasNext, nil
}

type fakeComments struct{ db *memDB }

func (r fakeComments) count(postID uint) int64 {
	var n int64
	for _, c := range r.db.comments {
		if c.PostID == postID {
			n++
		}
	}
	return n
}

func (r fakeComments) FindByID(_ context.Context, id uint) (*models.Comment, error) {
	c, ok := r.db.comments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c.User = r.db.users[c.UserID]
	return &c, nil
}

func (r fakeComments) Create(_ context.Context, c *models.Comment) error {
	c.ID = r.db.id()
	r.db.comments[c.ID] = *c
	return nil
}

func (r fakeComments) Save(_ context.Context, c *models.Comment) error {
	if err := r.db.err("comments.Save"); err != nil {
		return err
	}
	r.db.comments[c.ID] = *c
	return nil
}

func (r fakeComments) Delete(_ context.Context, c *models.Comment) error {
	delete(r.db.comments, c.ID)
	return nil
}

func (r fakeComments) CountByPost(_ context.Context, postID uint) (int64, error) {
	return r.count(postID), nil
}

func (r fakeComments) SliceByPost(_ context.Context, postID uint, cursor *uint, size int) ([]models.Comment, bool, error) {
	var rows []models.Comment
	for _, c := range r.db.comments {
		if c.PostID != postID || (cursor != nil && c.ID <= *cursor) {
			continue
		}
		c.User = r.db.users[c.UserID]
		rows = append(rows, c)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	if len(rows) > size+1 {
		rows = rows[:size+1]
	}
	items, hasNext := pagination.Trim(rows, size)
	return items, hasNext, nil
}

type fakeLikes struct{ db *memDB }

func (r fakeLikes) count(postID uint) int64 {
	var n int64
	for _, l := range r.db.likes {
		if l.PostID == postID {
			n++
		}
	}
	return n
}

func (r fakeLikes) FindByPostAndUser(_ context.Context, postID, userID uint) (*models.PostLike, error) {
	if r.db.skip["likes.FindByPostAndUser"] {
		return nil, repositories.ErrNotFound
	}
	for _, l := range r.db.likes {
		if l.PostID == postID && l.UserID == userID {
			return &l, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r fakeLikes) Create(_ context.Context, like *models.PostLike) error {
	if err := r.db.err("likes.Create"); err != nil {
		return err
	}
	for _, l := range r.db.likes {
		if l.PostID == like.PostID && l.UserID == like.UserID {
			return fmt.Errorf("%w: idx_post_likes_user_post", repositories.ErrDuplicate)
		}
	}
	like.ID = r.db.id()
	r.db.likes[like.ID] = *like
	return nil
}

func (r fakeLikes) Delete(_ context.Context, like *models.PostLike) error {
	if err := r.db.err("likes.Delete"); err != nil {
		return err
	}
	if _, ok := r.db.likes[like.ID]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.db.likes, like.ID)
	return nil
}

func (r fakeLikes) CountByPost(_ context.Context, postID uint) (int64, error) {
	return r.count(postID), nil
}

func (r fakeLikes) LikedPostIDs(_ context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	out := map[uint]bool{}
	for _, l := range r.db.likes {
		if l.UserID != userID {
			continue
		}
		for _, id := range postIDs {
			if id == l.PostID {
				out[id] = true
			}
		}
	}
	return out, nil
}

type fakeTokens struct{ db *memDB }

func (r fakeTokens) Create(_ context.Context, t *models.RefreshToken) error {
	t.ID = r.db.id()
	r.db.tokens[t.ID] = *t
	return nil
}

func (r fakeTokens) FindByToken(_ context.Context, token string) (*models.RefreshToken, error) {
	for _, t := range r.db.tokens {
		if t.Token == token {
			return &t, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r fakeTokens) Delete(_ context.Context, t *models.RefreshToken) error {
	if err := r.db.err("tokens.Delete"); err != nil {
		return err
	}
	if _, ok := r.db.tokens[t.ID]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.db.tokens, t.ID)
	return nil
}

func (r fakeTokens) DeleteByUser(_ context.Context, userID uint) error {
	for id, t := range r.db.tokens {
		if t.UserID == userID {
			delete(r.db.tokens, id)
		}
	}
	return nil
}

func (r fakeTokens) countFor(userID uint) int {
	n := 0
	for _, t := range r.db.tokens {
		if t.UserID == userID {
			n++
		}
	}
	return n
}

// fakeHasher prefixes plaintexts so hashes are predictable in assertions.
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (fakeHasher) Compare(hash, plain string) error {
	if strings.TrimPrefix(hash, "hashed:") != plain {
		return fmt.Errorf("mismatch")
	}
	return nil
}

type mockHasher struct {
	mock.Mock
}

func (m *mockHasher) Hash(plain string) (string, error) {
	args := m.Called(plain)
	return args.String(0), args.Error(1)
}

func (m *mockHasher) Compare(hash, plain string) error {
	return m.Called(hash, plain).Error(0)
}

type stubGoogle struct {
	email    string
	verified bool
	err      error
}

func (g stubGoogle) ResolveEmail(context.Context, string) (string, bool, error) {
	return g.email, g.verified, g.err
}
