package apitest

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"github.com/frontandrew/workshop/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Обработчики агрегата заказ-наряда. Сервер - источник истины: строки
// живут внутри заказа, проведение строки запчасти списывает склад.

func (s *Server) handleOrderCreate(w http.ResponseWriter, r *http.Request) {
	var dto domain.ServiceOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[dto.CustomerUUID]
	if !ok {
		writeError(w, http.StatusNotFound, "customer not found")
		return
	}
	car := findCar(customer, dto.CustomerCarUUID)
	if car == nil {
		writeError(w, http.StatusBadRequest, "car does not belong to customer")
		return
	}
	employee, ok := s.employees[dto.EmployeeUUID]
	if !ok {
		writeError(w, http.StatusNotFound, "employee not found")
		return
	}
	if !dto.Status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	order := &domain.ServiceOrder{
		ID:           s.id(),
		UUID:         uuid.NewString(),
		Customer:     customer,
		CustomerCar:  car,
		Employee:     employee,
		Status:       dto.Status,
		WorkRequired: dto.WorkRequired,
		Observations: dto.Observations,
		ServiceLines: []domain.ServiceOrderLine{},
		CarPartLines: []domain.CarPartOrderLine{},
		CreatedAt:    nowMillis(),
		UpdatedAt:    nowMillis(),
	}
	s.orders[order.UUID] = order
	writeJSON(w, http.StatusCreated, order)
}

func (s *Server) handleOrderGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[chi.URLParam(r, "uuid")]
	if !ok {
		writeError(w, http.StatusNotFound, "service order not found")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleOrderUpdate(w http.ResponseWriter, r *http.Request) {
	var dto domain.ServiceOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[chi.URLParam(r, "uuid")]
	if !ok {
		writeError(w, http.StatusNotFound, "service order not found")
		return
	}
	if customer, ok := s.customers[dto.CustomerUUID]; ok {
		order.Customer = customer
		if car := findCar(customer, dto.CustomerCarUUID); car != nil {
			order.CustomerCar = car
		}
	}
	if employee, ok := s.employees[dto.EmployeeUUID]; ok {
		order.Employee = employee
	}
	order.Status = dto.Status
	order.WorkRequired = dto.WorkRequired
	order.Observations = dto.Observations
	order.UpdatedAt = nowMillis()
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleOrderDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := chi.URLParam(r, "uuid")
	if _, ok := s.orders[key]; !ok {
		writeError(w, http.StatusNotFound, "service order not found")
		return
	}
	delete(s.orders, key)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleServiceLineCreate(w http.ResponseWriter, r *http.Request) {
	var dto domain.ServiceLineDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[dto.ServiceOrderUUID]
	if !ok {
		writeError(w, http.StatusNotFound, "service order not found")
		return
	}
	service, ok := s.services[dto.ServiceUUID]
	if !ok {
		writeError(w, http.StatusNotFound, "service not found")
		return
	}

	line := domain.ServiceOrderLine{
		ID:        s.id(),
		Service:   service,
		Quantity:  dto.Quantity,
		Amount:    dto.Amount,
		CreatedAt: nowMillis(),
		UpdatedAt: nowMillis(),
	}
	order.ServiceLines = append(order.ServiceLines, line)
	sortServiceLines(order)
	order.UpdatedAt = nowMillis()
	writeJSON(w, http.StatusCreated, line)
}

func (s *Server) handleServiceLineDelete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, order := range s.orders {
		for i, line := range order.ServiceLines {
			if line.ID == id {
				order.ServiceLines = append(order.ServiceLines[:i], order.ServiceLines[i+1:]...)
				order.UpdatedAt = nowMillis()
				w.WriteHeader(http.StatusOK)
				return
			}
		}
	}
	writeError(w, http.StatusNotFound, "service line not found")
}

func (s *Server) handlePartLineCreate(w http.ResponseWriter, r *http.Request) {
	var dto domain.CarPartLineDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[dto.ServiceOrderUUID]
	if !ok {
		writeError(w, http.StatusNotFound, "service order not found")
		return
	}
	part, ok := s.carParts[dto.CarPartUUID]
	if !ok {
		writeError(w, http.StatusNotFound, "car part not found")
		return
	}

	// Списание склада - ответственность сервера, клиент его не трогает.
	part.StockQuantity -= dto.Quantity

	line := domain.CarPartOrderLine{
		ID:        s.id(),
		CarPart:   part,
		Quantity:  dto.Quantity,
		Amount:    dto.Amount,
		CreatedAt: nowMillis(),
		UpdatedAt: nowMillis(),
	}
	order.CarPartLines = append(order.CarPartLines, line)
	sortPartLines(order)
	order.UpdatedAt = nowMillis()
	writeJSON(w, http.StatusCreated, line)
}

func (s *Server) handlePartLineDelete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, order := range s.orders {
		for i, line := range order.CarPartLines {
			if line.ID == id {
				order.CarPartLines = append(order.CarPartLines[:i], order.CarPartLines[i+1:]...)
				order.UpdatedAt = nowMillis()
				w.WriteHeader(http.StatusOK)
				return
			}
		}
	}
	writeError(w, http.StatusNotFound, "part line not found")
}

func (s *Server) handleLinkCreate(w http.ResponseWriter, r *http.Request) {
	var link domain.RolePermission
	if err := json.NewDecoder(r.Body).Decode(&link); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	link.ID = s.id()
	s.links[link.ID] = &link
	writeJSON(w, http.StatusCreated, link)
}

func (s *Server) handleLinkFind(w http.ResponseWriter, r *http.Request) {
	roleID, _ := strconv.ParseInt(r.URL.Query().Get("roleId"), 10, 64)
	permissionID, _ := strconv.ParseInt(r.URL.Query().Get("permissionId"), 10, 64)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, link := range s.links {
		if link.RoleID == roleID && link.PermissionID == permissionID {
			writeJSON(w, http.StatusOK, link)
			return
		}
	}
	writeError(w, http.StatusNotFound, "role permission not found")
}

func (s *Server) handleLinkDelete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.links[id]; !ok {
		writeError(w, http.StatusNotFound, "role permission not found")
		return
	}
	delete(s.links, id)
	w.WriteHeader(http.StatusOK)
}

func findCar(customer *domain.Customer, carUUID string) *domain.CustomerCar {
	for i := range customer.Cars {
		if customer.Cars[i].UUID == carUUID {
			return &customer.Cars[i]
		}
	}
	return nil
}

func sortServiceLines(order *domain.ServiceOrder) {
	sort.Slice(order.ServiceLines, func(i, j int) bool {
		return order.ServiceLines[i].ID < order.ServiceLines[j].ID
	})
}

func sortPartLines(order *domain.ServiceOrder) {
	sort.Slice(order.CarPartLines, func(i, j int) bool {
		return order.CarPartLines[i].ID < order.CarPartLines[j].ID
	})
}
