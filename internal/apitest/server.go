// Package apitest поднимает фейковый backend мастерской для тестов:
// настоящие HTTP обмены через httptest, данные в памяти.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/frontandrew/workshop/internal/domain"
	"github.com/frontandrew/workshop/internal/gateway"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Server - backend в памяти. Реализует ровно тот срез REST контракта,
// который нужен клиенту: auth, справочник клиентов, каталоги работ и
// запчастей, агрегат заказ-наряда со строками и линковку роль-право.
type Server struct {
	mu sync.Mutex

	srv *httptest.Server

	Email       string
	Password    string
	Token       string
	Permissions []string

	nextID    int64
	customers map[string]*domain.Customer
	employees map[string]*domain.Employee
	services  map[string]*domain.Service
	carParts  map[string]*domain.CarPart
	orders    map[string]*domain.ServiceOrder
	links     map[int64]*domain.RolePermission

	failStatus  int
	failMessage string
}

// NewServer создает и запускает фейковый backend.
func NewServer() *Server {
	s := &Server{
		Email:       "admin@workshop.local",
		Password:    "admin123",
		Token:       "test-token-" + uuid.NewString(),
		Permissions: []string{"HOME_VIEW"},
		customers:   map[string]*domain.Customer{},
		employees:   map[string]*domain.Employee{},
		services:    map[string]*domain.Service{},
		carParts:    map[string]*domain.CarPart{},
		orders:      map[string]*domain.ServiceOrder{},
		links:       map[int64]*domain.RolePermission{},
	}
	s.srv = httptest.NewServer(s.router())
	return s
}

// URL возвращает базовый адрес API.
func (s *Server) URL() string { return s.srv.URL }

// Close останавливает сервер.
func (s *Server) Close() { s.srv.Close() }

// FailNext заставляет следующий запрос ответить заданным статусом.
func (s *Server) FailNext(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
	s.failMessage = message
}

// id выделяет следующий числовой идентификатор.
func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

func nowMillis() int64 { return time.Now().UnixMilli() }

// Seed-методы наполняют справочники напрямую, без HTTP.

func (s *Server) SeedCustomer(c domain.Customer) domain.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.UUID == "" {
		c.UUID = uuid.NewString()
	}
	c.ID = s.id()
	for i := range c.Cars {
		if c.Cars[i].UUID == "" {
			c.Cars[i].UUID = uuid.NewString()
		}
		c.Cars[i].ID = s.id()
	}
	c.CreatedAt = nowMillis()
	c.UpdatedAt = c.CreatedAt
	s.customers[c.UUID] = &c
	return c
}

func (s *Server) SeedEmployee(e domain.Employee) domain.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.UUID == "" {
		e.UUID = uuid.NewString()
	}
	e.ID = s.id()
	s.employees[e.UUID] = &e
	return e
}

func (s *Server) SeedService(svc domain.Service) domain.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	if svc.UUID == "" {
		svc.UUID = uuid.NewString()
	}
	svc.ID = s.id()
	s.services[svc.UUID] = &svc
	return svc
}

func (s *Server) SeedCarPart(p domain.CarPart) domain.CarPart {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.UUID == "" {
		p.UUID = uuid.NewString()
	}
	p.ID = s.id()
	s.carParts[p.UUID] = &p
	return p
}

// Order возвращает заказ, как его видит сервер.
func (s *Server) Order(uuid string) *domain.ServiceOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[uuid]
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.failureMiddleware)

	r.Post("/auth/login", s.handleLogin)

	// Всё остальное - только с валидным bearer токеном.
	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/auth/me/permissions", s.handleMyPermissions)

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", s.handleCustomerSearch)
			r.Get("/list", s.handleCustomerList)
			r.Post("/", s.handleCustomerCreate)
			r.Get("/{uuid}", s.handleCustomerGet)
			r.Put("/{uuid}", s.handleCustomerUpdate)
			r.Delete("/{uuid}", s.handleCustomerDelete)
		})

		r.Get("/customer-cars", s.handleCustomerCars)
		r.Get("/services/list", s.handleServiceList)
		r.Get("/car-parts/list", s.handleCarPartList)

		r.Route("/service-orders", func(r chi.Router) {
			r.Post("/", s.handleOrderCreate)
			r.Get("/{uuid}", s.handleOrderGet)
			r.Put("/{uuid}", s.handleOrderUpdate)
			r.Delete("/{uuid}", s.handleOrderDelete)
		})

		r.Post("/service-order-services", s.handleServiceLineCreate)
		r.Delete("/service-order-services/{id}", s.handleServiceLineDelete)
		r.Post("/service-order-parts", s.handlePartLineCreate)
		r.Delete("/service-order-parts/{id}", s.handlePartLineDelete)

		r.Post("/role-permissions", s.handleLinkCreate)
		r.Get("/role-permissions", s.handleLinkFind)
		r.Delete("/role-permissions/{id}", s.handleLinkDelete)
	})

	return r
}

// failureMiddleware отдаёт подготовленную ошибку ровно один раз.
func (s *Server) failureMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		status, message := s.failStatus, s.failMessage
		s.failStatus, s.failMessage = 0, ""
		s.mu.Unlock()

		if status != 0 {
			writeError(w, status, message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header != "Bearer "+s.Token {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email != s.Email || req.Password != s.Password {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, gateway.LoginResult{
		Token:       s.Token,
		Permissions: s.Permissions,
	})
}

func (s *Server) handleMyPermissions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Permissions)
}

func (s *Server) handleCustomerSearch(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]domain.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		all = append(all, *c)
	}

	// Фильтр приходит как {field}={value}: ?name=smith, ?email=...
	for _, field := range []string{"name", "email"} {
		if !r.URL.Query().Has(field) {
			continue
		}
		value := strings.ToLower(r.URL.Query().Get(field))
		filtered := all[:0]
		for _, c := range all {
			haystack := c.Name
			if field == "email" {
				haystack = c.Email
			}
			if strings.Contains(strings.ToLower(haystack), value) {
				filtered = append(filtered, c)
			}
		}
		all = filtered
	}

	order := r.URL.Query().Get("order")
	sort.Slice(all, func(i, j int) bool {
		if order == "desc" {
			return all[i].Name > all[j].Name
		}
		return all[i].Name < all[j].Name
	})

	pageNumber, _ := strconv.Atoi(r.URL.Query().Get("pageNumber"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize <= 0 {
		pageSize = 10
	}

	total := len(all)
	start := pageNumber * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	writeJSON(w, http.StatusOK, gateway.Page[domain.Customer]{
		Content:       all[start:end],
		TotalElements: int64(total),
		TotalPages:    (total + pageSize - 1) / pageSize,
	})
}

func (s *Server) handleCustomerList(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]domain.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		all = append(all, *c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	writeJSON(w, http.StatusOK, all)
}

func (s *Server) handleCustomerGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[chi.URLParam(r, "uuid")]
	if !ok {
		writeError(w, http.StatusNotFound, "customer not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleCustomerCreate(w http.ResponseWriter, r *http.Request) {
	var dto domain.CustomerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &domain.Customer{
		ID:           s.id(),
		UUID:         uuid.NewString(),
		Name:         dto.Name,
		Email:        dto.Email,
		AddressLine1: dto.AddressLine1,
		AddressLine2: dto.AddressLine2,
		City:         dto.City,
		County:       dto.County,
		PostalCode:   dto.PostalCode,
		Country:      dto.Country,
		DateOfBirth:  dto.DateOfBirth,
		Phone:        dto.Phone,
		CreatedAt:    nowMillis(),
		UpdatedAt:    nowMillis(),
	}
	s.customers[c.UUID] = c
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleCustomerUpdate(w http.ResponseWriter, r *http.Request) {
	var dto domain.CustomerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[chi.URLParam(r, "uuid")]
	if !ok {
		writeError(w, http.StatusNotFound, "customer not found")
		return
	}
	c.Name = dto.Name
	c.Email = dto.Email
	c.Phone = dto.Phone
	c.UpdatedAt = nowMillis()
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleCustomerDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := chi.URLParam(r, "uuid")
	if _, ok := s.customers[key]; !ok {
		writeError(w, http.StatusNotFound, "customer not found")
		return
	}
	delete(s.customers, key)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleCustomerCars(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var cars []domain.CustomerCar
	for _, c := range s.customers {
		owner := *c
		owner.Cars = nil
		for _, car := range c.Cars {
			car.Customer = &owner
			cars = append(cars, car)
		}
	}
	sort.Slice(cars, func(i, j int) bool { return cars[i].ID < cars[j].ID })
	writeJSON(w, http.StatusOK, cars)
}

func (s *Server) handleServiceList(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]domain.Service, 0, len(s.services))
	for _, svc := range s.services {
		all = append(all, *svc)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	writeJSON(w, http.StatusOK, all)
}

func (s *Server) handleCarPartList(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]domain.CarPart, 0, len(s.carParts))
	for _, p := range s.carParts {
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	writeJSON(w, http.StatusOK, all)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
