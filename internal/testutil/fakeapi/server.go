// Package fakeapi is an in-memory stand-in for the /api/users backend, used by tests.
// It mirrors the real API's query semantics and adds fault injection hooks.
package fakeapi

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/usagers-client/internal/model"
)

// BasePath is where the resource is mounted.
const BasePath = "/api/users"

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Fault overrides the next matching response. Zero fields keep the normal behavior.
type Fault struct {
	Status      int
	ContentType string
	Body        string
	Delay       time.Duration
}

// Server holds the dataset and the gin engine serving it.
type Server struct {
	mu     sync.Mutex
	users  []model.User
	nextID int64
	now    func() time.Time

	faults   []Fault
	requests []*http.Request
	delays   map[string]time.Duration // keyed by search term

	engine *gin.Engine
}

// New returns an empty fake API.
func New() *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{
		nextID: 1,
		now:    time.Now,
		delays: map[string]time.Duration{},
	}
	r := gin.New()
	r.Use(s.record, s.inject)
	g := r.Group(BasePath)
	{
		g.GET("", s.list)
		g.GET("/:id", s.get)
		g.POST("", s.create)
		g.PUT("/:id", s.update)
		g.DELETE("/:id", s.delete)
	}
	s.engine = r
	return s
}

// Handler exposes the engine for httptest.
func (s *Server) Handler() http.Handler { return s.engine }

// Start serves the fake on a loopback listener and returns the resource URL.
func (s *Server) Start() (*httptest.Server, string) {
	ts := httptest.NewServer(s.engine)
	return ts, ts.URL + BasePath
}

// SetNow pins the clock used for ages and created_at.
func (s *Server) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Seed inserts users directly, assigning ids in order.
func (s *Server) Seed(in ...model.UserInput) []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.User, 0, len(in))
	for _, u := range in {
		out = append(out, s.insertLocked(u))
	}
	return out
}

// FailNext queues a fault for the next request.
func (s *Server) FailNext(f Fault) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = append(s.faults, f)
}

// DelaySearch slows down list requests whose search term equals term.
func (s *Server) DelaySearch(term string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays[term] = d
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*http.Request(nil), s.requests...)
}

// ListRequests returns the query of every GET on the collection.
func (s *Server) ListRequests() []string {
	var out []string
	for _, r := range s.Requests() {
		if r.Method == http.MethodGet && r.URL.Path == BasePath {
			out = append(out, r.URL.RawQuery)
		}
	}
	return out
}

func (s *Server) record(c *gin.Context) {
	s.mu.Lock()
	s.requests = append(s.requests, c.Request.Clone(c.Request.Context()))
	s.mu.Unlock()
	c.Next()
}

func (s *Server) inject(c *gin.Context) {
	s.mu.Lock()
	var f *Fault
	if len(s.faults) > 0 {
		f = &s.faults[0]
		s.faults = s.faults[1:]
	}
	delay := time.Duration(0)
	if c.Request.Method == http.MethodGet && c.Request.URL.Path == BasePath {
		delay = s.delays[c.Query("search")]
	}
	s.mu.Unlock()

	if f != nil && f.Delay > 0 {
		delay = f.Delay
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-c.Request.Context().Done():
			c.Abort()
			return
		}
	}
	if f == nil || f.Status == 0 {
		c.Next()
		return
	}
	ct := f.ContentType
	if ct == "" {
		ct = "application/json; charset=utf-8"
	}
	c.Data(f.Status, ct, []byte(f.Body))
	c.Abort()
}

func (s *Server) list(c *gin.Context) {
	page := 1
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		page = p
	}
	limit := defaultLimit
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= maxLimit {
		limit = l
	}
	search := strings.ToLower(c.Query("search"))
	niveau := c.Query("filter_niveau")
	ageMin, hasMin := atoiOK(c.Query("filter_age_min"))
	ageMax, hasMax := atoiOK(c.Query("filter_age_max"))

	s.mu.Lock()
	now := s.now()
	matched := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		if search != "" &&
			!strings.Contains(strings.ToLower(u.FirstName), search) &&
			!strings.Contains(strings.ToLower(u.LastName), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}
		if niveau != "" && u.NiveauNatation != niveau {
			continue
		}
		age := AgeOn(u.DateNaissance, now)
		if hasMin && age < ageMin {
			continue
		}
		if hasMax && age > ageMax {
			continue
		}
		u.Age = age
		matched = append(matched, u)
	}
	s.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := len(matched)
	offset := (page - 1) * limit
	items := []model.User{}
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		items = matched[offset:end]
	}
	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}

	c.JSON(http.StatusOK, model.UsersPage{
		Users:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	})
}

func (s *Server) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usager non trouvé"})
		return
	}
	c.JSON(http.StatusOK, s.withAgeLocked(s.users[i]))
}

// userRequest reproduces the API's binding rules.
type userRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	DateNaissance  string `json:"date_naissance" binding:"required"`
	NiveauNatation string `json:"niveau_natation" binding:"required"`
}

func (r userRequest) input() model.UserInput {
	return model.UserInput{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		DateNaissance:  r.DateNaissance,
		NiveauNatation: r.NiveauNatation,
	}
}

func (s *Server) create(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTakenLocked(req.Email, 0) {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
		return
	}
	u := s.insertLocked(req.input())
	c.JSON(http.StatusCreated, s.withAgeLocked(u))
}

func (s *Server) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usager non trouvé"})
		return
	}
	if s.emailTakenLocked(req.Email, id) {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
		return
	}
	u := &s.users[i]
	u.FirstName = req.FirstName
	u.LastName = req.LastName
	u.Email = req.Email
	u.DateNaissance = req.DateNaissance
	u.NiveauNatation = req.NiveauNatation
	c.JSON(http.StatusOK, s.withAgeLocked(*u))
}

func (s *Server) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usager non trouvé"})
		return
	}
	s.users = append(s.users[:i], s.users[i+1:]...)
	c.JSON(http.StatusOK, gin.H{"message": "Usager supprimé avec succès"})
}

func (s *Server) insertLocked(in model.UserInput) model.User {
	u := model.User{
		ID:             s.nextID,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		DateNaissance:  in.DateNaissance,
		NiveauNatation: in.NiveauNatation,
		CreatedAt:      s.now().UTC().Truncate(time.Second),
	}
	s.nextID++
	s.users = append(s.users, u)
	return u
}

func (s *Server) indexLocked(id int64) int {
	for i, u := range s.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) emailTakenLocked(email string, except int64) bool {
	for _, u := range s.users {
		if u.ID != except && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (s *Server) withAgeLocked(u model.User) model.User {
	u.Age = AgeOn(u.DateNaissance, s.now())
	return u
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID invalide"})
		return 0, false
	}
	return id, true
}

func atoiOK(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// AgeOn returns the age in full years at now for a YYYY-MM-DD birth date, 0 when unparsable.
func AgeOn(birth string, now time.Time) int {
	b, err := time.Parse(model.DateLayout, birth)
	if err != nil {
		return 0
	}
	age := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		age--
	}
	return age
}
